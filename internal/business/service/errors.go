package service

import "errors"

// Error taxonomy shared by all services. Handlers map these onto the wire;
// nothing here is transient, so callers never retry except after ErrConflict.
var (
	// ErrForbidden: the actor lacks the required role or relationship to the
	// target. Never retried.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound: no such organization, membership, invitation or token.
	ErrNotFound = errors.New("not found")

	// ErrInvalidRequest: malformed or missing input.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInvalidRole: the requested role is outside the allowed set for the
	// operation (invitations never offer owner).
	ErrInvalidRole = errors.New("invalid role")

	// ErrInvalidTransition: the change would violate a membership invariant,
	// e.g. granting owner through changeRole or demoting the sole owner.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrInvalidState: the invitation is not in a state the operation
	// applies to (resend/cancel require pending).
	ErrInvalidState = errors.New("invalid state")

	// Terminal invitation states reached via normal attempted use.
	ErrInviteExpired   = errors.New("invitation expired")
	ErrAlreadyAccepted = errors.New("invitation already accepted")
	ErrInviteCancelled = errors.New("invitation cancelled")

	// ErrConflict: a concurrent mutation invalidated the request; safe to
	// retry after re-reading state.
	ErrConflict = errors.New("conflict")
)
