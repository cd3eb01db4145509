package store

import (
	"context"
	"errors"
	"time"

	"github.com/bizkopa/bizkopa/internal/business/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Organizations() Organizations
	Memberships() Memberships
	Invitations() Invitations
	Accounts() Accounts

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// All multi-step invariant checks (single owner, accept-once) run through
	// this; the driver's single-writer transaction serializes them.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Organizations interface {
	// CreateOrganization inserts a new organization (id is provided by the app via ULID).
	CreateOrganization(ctx context.Context, o domain.Organization) error

	// GetOrganizationByID returns an organization by id.
	GetOrganizationByID(ctx context.Context, id string) (domain.Organization, error)

	// UpdateOrganization writes the profile fields and bumps updated_at.
	UpdateOrganization(ctx context.Context, o domain.Organization) error

	// DeleteOrganization removes the organization; memberships and
	// invitations cascade per schema.
	DeleteOrganization(ctx context.Context, id string) error
}

type Memberships interface {
	// CreateMembership inserts a new membership row.
	CreateMembership(ctx context.Context, m domain.Membership) error

	// UpsertMembership inserts, or replaces the role of an existing
	// (organization, account) row. Used by invitation acceptance.
	UpsertMembership(ctx context.Context, m domain.Membership) error

	// GetMembership returns the row for one (organization, account) pair.
	GetMembership(ctx context.Context, organizationID, accountID string) (domain.Membership, error)

	// ListByAccount returns every organization the account belongs to with
	// the account's own role, ordered by organization creation.
	ListByAccount(ctx context.Context, accountID string) ([]domain.OrganizationMembership, error)

	// ListMembers returns all memberships of an organization joined with the
	// mirrored account profiles.
	ListMembers(ctx context.Context, organizationID string) ([]domain.Member, error)

	// UpdateRole sets the role for one pair and bumps updated_at.
	UpdateRole(ctx context.Context, organizationID, accountID string, role domain.Role) error

	// DeleteMembership removes one pair.
	DeleteMembership(ctx context.Context, organizationID, accountID string) error

	// CountByRole counts the organization's memberships holding role.
	CountByRole(ctx context.Context, organizationID string, role domain.Role) (int, error)
}

type Invitations interface {
	// CreateInvitation writes a new invitation (token_hash is the SHA-256
	// fingerprint of the opaque token).
	CreateInvitation(ctx context.Context, inv domain.Invitation) error

	// GetInvitationByID returns an invitation by id.
	GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error)

	// GetInvitationByTokenHash returns an invitation by token fingerprint,
	// whatever its status.
	GetInvitationByTokenHash(ctx context.Context, hash string) (domain.Invitation, error)

	// ListByOrganization returns all invitations for an organization, newest
	// first. Status filtering happens in the service because expiry is
	// derived at read time.
	ListByOrganization(ctx context.Context, organizationID string) ([]domain.Invitation, error)

	// RefreshToken swaps in a new token fingerprint and expiry (resend).
	RefreshToken(ctx context.Context, id, tokenHash string, expiresAt time.Time) error

	// UpdateStatus transitions the stored status and bumps updated_at.
	UpdateStatus(ctx context.Context, id string, status domain.InvitationStatus) error

	// MarkLapsedExpired persists expired status on every pending invitation
	// whose expiry has passed. Housekeeping; reads never depend on it.
	MarkLapsedExpired(ctx context.Context, now time.Time) (int64, error)
}

type Accounts interface {
	// UpsertAccount refreshes the local mirror of an identity-service account.
	UpsertAccount(ctx context.Context, a domain.Account) error

	// GetAccountByID returns a mirrored account.
	GetAccountByID(ctx context.Context, id string) (domain.Account, error)
}
