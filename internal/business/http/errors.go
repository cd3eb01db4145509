package http

import (
	"errors"
	"net/http"

	"github.com/bizkopa/bizkopa/internal/business/service"
	"github.com/bizkopa/bizkopa/pkg/httpx"
	"github.com/bizkopa/bizkopa/pkg/slogx"
)

// writeServiceError maps the service error taxonomy onto the wire envelope.
// Every handler funnels its service errors through here so the mapping stays
// in one place.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid or missing request parameters")
	case errors.Is(err, service.ErrInvalidRole):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_role", "Role must be manager or staff")
	case errors.Is(err, service.ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, "forbidden", "You do not have permission to perform this action")
	case errors.Is(err, service.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "The requested resource does not exist")
	case errors.Is(err, service.ErrInvalidTransition):
		httpx.WriteError(w, http.StatusConflict, "invalid_transition", "The change would violate a membership rule")
	case errors.Is(err, service.ErrInvalidState):
		httpx.WriteError(w, http.StatusConflict, "invalid_state", "The invitation is no longer pending")
	case errors.Is(err, service.ErrInviteExpired):
		httpx.WriteError(w, http.StatusGone, "invite_expired", "This invitation has expired")
	case errors.Is(err, service.ErrAlreadyAccepted):
		httpx.WriteError(w, http.StatusConflict, "invite_already_accepted", "This invitation has already been accepted")
	case errors.Is(err, service.ErrInviteCancelled):
		httpx.WriteError(w, http.StatusConflict, "invite_cancelled", "This invitation has been cancelled")
	case errors.Is(err, service.ErrConflict):
		httpx.WriteError(w, http.StatusConflict, "conflict", "The resource was modified concurrently, retry")
	default:
		slogx.FromContext(r.Context()).Error("unhandled service error", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "An internal error occurred")
	}
}

// requireAccountID fetches the authenticated account id, writing a 401 when
// absent. The authn middleware should make absence impossible on secured
// routes; this is the backstop.
func requireAccountID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := httpx.AccountIDFromCtx(r.Context())
	if id == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return "", false
	}
	return id, true
}

// identityFromRequest builds the service identity from verified claims.
func identityFromRequest(r *http.Request) service.Identity {
	ctx := r.Context()
	return service.Identity{
		AccountID: httpx.AccountIDFromCtx(ctx),
		Email:     httpx.EmailFromCtx(ctx),
		Name:      httpx.NameFromCtx(ctx),
	}
}
