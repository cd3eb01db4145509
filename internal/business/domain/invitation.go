package domain

import "time"

// InvitationStatus is the stored state of an invitation. pending is the only
// state transitions are possible from; the rest are terminal.
type InvitationStatus string

const (
	InvitationPending   InvitationStatus = "pending"
	InvitationAccepted  InvitationStatus = "accepted"
	InvitationExpired   InvitationStatus = "expired"
	InvitationCancelled InvitationStatus = "cancelled"
)

// IsTerminal reports whether no further transition is possible.
func (s InvitationStatus) IsTerminal() bool {
	return s != InvitationPending
}

// Invitation is an outstanding offer for an email address to join an
// organization at a given role. The offered role is never owner. The raw
// token is handed out exactly once at create/resend time; only its SHA-256
// fingerprint is stored.
type Invitation struct {
	ID             string
	OrganizationID string
	Email          string
	Role           Role
	TokenHash      string
	Status         InvitationStatus
	CreatedBy      string
	ExpiresAt      time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// EffectiveStatus derives the status a reader must be told at the given
// instant: a pending invitation past its expiry reads as expired even though
// the stored row has not been swept yet.
func (i Invitation) EffectiveStatus(now time.Time) InvitationStatus {
	if i.Status == InvitationPending && now.After(i.ExpiresAt) {
		return InvitationExpired
	}
	return i.Status
}
