package bizsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error codes returned by the business service.
const (
	ErrorCodeInvalidRequest        = "invalid_request"
	ErrorCodeInvalidRole           = "invalid_role"
	ErrorCodeForbidden             = "forbidden"
	ErrorCodeNotFound              = "not_found"
	ErrorCodeInvalidTransition     = "invalid_transition"
	ErrorCodeInvalidState          = "invalid_state"
	ErrorCodeInviteExpired         = "invite_expired"
	ErrorCodeInviteAlreadyAccepted = "invite_already_accepted"
	ErrorCodeInviteCancelled       = "invite_cancelled"
	ErrorCodeConflict              = "conflict"
	ErrorCodeUnauthorized          = "unauthorized"
	ErrorCodeServerError           = "server_error"
)

// APIError is a typed error parsed from a service error envelope. Client code
// can switch on Code or StatusCode.
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine-readable error code (e.g., "forbidden", "invite_expired")
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// IsCode reports whether err is an APIError carrying the given code.
func IsCode(err error, code string) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Code == code
}

// parseErrorResponse turns a non-2xx HTTP response into a typed APIError.
// Returns nil if the response indicates success.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	// Fallback: create generic error from status code
	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
