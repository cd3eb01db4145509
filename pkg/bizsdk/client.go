package bizsdk

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SDKClient is a client for the business service. It provides access to
// unauthenticated operations and creates authenticated Sessions from access
// tokens issued by the identity service.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new business service client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewSession wraps an identity-service access token in an authenticated
// session. The business service does not issue or refresh tokens; when the
// token expires the caller obtains a new one from the identity service and
// creates a new session.
func (c *SDKClient) NewSession(accessToken string) *Session {
	return &Session{client: c, accessToken: accessToken}
}

// GetLiveness checks the liveness endpoint.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/livez", nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}

// GetReadiness checks the readiness endpoint.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/readyz", nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}

// ValidateInvitation looks up an invitation by raw token without
// authenticating. An invitee calls this before signing in to see what they
// were invited to.
func (c *SDKClient) ValidateInvitation(ctx context.Context, token string) (*ValidateInvitationResponse, error) {
	path := "/v1/invitations/validate?token=" + url.QueryEscape(token)
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var view ValidateInvitationResponse
	if err := decodeJSON(resp, &view, http.StatusOK); err != nil {
		return nil, err
	}
	return &view, nil
}
