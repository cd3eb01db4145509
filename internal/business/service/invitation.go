package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bizkopa/bizkopa/internal/business/domain"
	"github.com/bizkopa/bizkopa/internal/business/store"
	"github.com/bizkopa/bizkopa/pkg/cryptox"
	"github.com/bizkopa/bizkopa/pkg/idx"
	"github.com/bizkopa/bizkopa/pkg/slogx"
)

// DefaultInviteTTL is how long a newly minted or resent invitation stays
// redeemable.
const DefaultInviteTTL = 7 * 24 * time.Hour

type InvitationService struct {
	Store store.Store

	// InviteTTL overrides DefaultInviteTTL when positive.
	InviteTTL time.Duration
}

// CreatedInvitation pairs a stored invitation with its raw token. The token
// exists only in this value; after it is delivered there is no way to read
// it back.
type CreatedInvitation struct {
	Invitation domain.Invitation
	Token      string
}

// InvitationView is what an invitee sees when validating a token: enough to
// decide whether to accept, nothing that identifies other members.
type InvitationView struct {
	Email            string
	Role             domain.Role
	OrganizationName string
	Status           domain.InvitationStatus
	ExpiresAt        time.Time
}

func (s *InvitationService) ttl() time.Duration {
	if s.InviteTTL > 0 {
		return s.InviteTTL
	}
	return DefaultInviteTTL
}

// Create mints a pending invitation for an email address at manager or staff.
// Owners and managers may invite; the owner role is never offered.
func (s *InvitationService) Create(
	ctx context.Context,
	organizationID, actorID, email string,
	role domain.Role,
) (CreatedInvitation, error) {
	log := slogx.FromContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return CreatedInvitation{}, ErrInvalidRequest
	}
	if role != domain.RoleManager && role != domain.RoleStaff {
		return CreatedInvitation{}, ErrInvalidRole
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return CreatedInvitation{}, fmt.Errorf("failed to generate invite token: %w", err)
	}

	inv := domain.Invitation{
		ID:             idx.New().String(),
		OrganizationID: organizationID,
		Email:          email,
		Role:           role,
		TokenHash:      cryptox.FingerprintToken(token),
		Status:         domain.InvitationPending,
		CreatedBy:      actorID,
		ExpiresAt:      time.Now().Add(s.ttl()),
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Organizations().GetOrganizationByID(ctx, organizationID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}

		actor, err := tx.Memberships().GetMembership(ctx, organizationID, actorID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrForbidden
			}
			return err
		}
		if !domain.Can(actor.Role, domain.ActionInviteMember) {
			return ErrForbidden
		}

		if err := tx.Invitations().CreateInvitation(ctx, inv); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrConflict
			}
			return err
		}
		return nil
	})
	if err != nil {
		return CreatedInvitation{}, err
	}

	stored, err := s.Store.Invitations().GetInvitationByID(ctx, inv.ID)
	if err != nil {
		return CreatedInvitation{}, err
	}

	log.Info("invitation created",
		slog.String("organization_id", organizationID),
		slog.String("invitation_id", inv.ID),
		slog.String("role", string(role)),
	)

	return CreatedInvitation{Invitation: stored, Token: token}, nil
}

// List returns an organization's invitations, optionally filtered by
// effective status. A pending row past expiry matches "expired", not
// "pending", whether or not housekeeping has swept it yet.
func (s *InvitationService) List(
	ctx context.Context,
	organizationID, actorID string,
	status domain.InvitationStatus,
) ([]domain.Invitation, error) {
	if _, err := s.Store.Organizations().GetOrganizationByID(ctx, organizationID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	actor, err := s.Store.Memberships().GetMembership(ctx, organizationID, actorID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	if !domain.Can(actor.Role, domain.ActionInviteMember) {
		return nil, ErrForbidden
	}

	all, err := s.Store.Invitations().ListByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	out := make([]domain.Invitation, 0, len(all))
	for _, inv := range all {
		inv.Status = inv.EffectiveStatus(now)
		if status != "" && inv.Status != status {
			continue
		}
		out = append(out, inv)
	}
	return out, nil
}

// Resend rotates the token and pushes out the expiry of a pending
// invitation. A lapsed-but-unswept invitation can still be resent; swept or
// otherwise terminal ones cannot.
func (s *InvitationService) Resend(
	ctx context.Context,
	organizationID, actorID, invitationID string,
) (CreatedInvitation, error) {
	log := slogx.FromContext(ctx)

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return CreatedInvitation{}, fmt.Errorf("failed to generate invite token: %w", err)
	}
	expiresAt := time.Now().Add(s.ttl())

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		inv, err := s.manageableInvitation(ctx, tx, organizationID, actorID, invitationID)
		if err != nil {
			return err
		}
		if inv.Status.IsTerminal() {
			return ErrInvalidState
		}
		return tx.Invitations().RefreshToken(ctx, invitationID, cryptox.FingerprintToken(token), expiresAt)
	})
	if err != nil {
		return CreatedInvitation{}, err
	}

	stored, err := s.Store.Invitations().GetInvitationByID(ctx, invitationID)
	if err != nil {
		return CreatedInvitation{}, err
	}

	log.Info("invitation resent",
		slog.String("organization_id", organizationID),
		slog.String("invitation_id", invitationID),
	)

	return CreatedInvitation{Invitation: stored, Token: token}, nil
}

// Cancel revokes a pending invitation. The token stops working immediately.
func (s *InvitationService) Cancel(
	ctx context.Context,
	organizationID, actorID, invitationID string,
) error {
	log := slogx.FromContext(ctx)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		inv, err := s.manageableInvitation(ctx, tx, organizationID, actorID, invitationID)
		if err != nil {
			return err
		}
		if inv.Status.IsTerminal() {
			return ErrInvalidState
		}
		return tx.Invitations().UpdateStatus(ctx, invitationID, domain.InvitationCancelled)
	})
	if err != nil {
		return err
	}

	log.Info("invitation cancelled",
		slog.String("organization_id", organizationID),
		slog.String("invitation_id", invitationID),
	)
	return nil
}

// Validate looks up an invitation by raw token and reports what accepting it
// would mean. Unauthenticated; possession of the token is the credential.
func (s *InvitationService) Validate(ctx context.Context, token string) (InvitationView, error) {
	if token == "" {
		return InvitationView{}, ErrInvalidRequest
	}

	inv, err := s.Store.Invitations().GetInvitationByTokenHash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return InvitationView{}, ErrNotFound
		}
		return InvitationView{}, err
	}

	org, err := s.Store.Organizations().GetOrganizationByID(ctx, inv.OrganizationID)
	if err != nil {
		return InvitationView{}, err
	}

	return InvitationView{
		Email:            inv.Email,
		Role:             inv.Role,
		OrganizationName: org.Name,
		Status:           inv.EffectiveStatus(time.Now()),
		ExpiresAt:        inv.ExpiresAt,
	}, nil
}

// Accept redeems a token for the authenticated account, creating or updating
// the membership and retiring the invitation, all in one transaction.
// Whoever holds the token may accept; the invitation email is informational.
func (s *InvitationService) Accept(
	ctx context.Context,
	actor Identity,
	token string,
) (domain.Membership, error) {
	log := slogx.FromContext(ctx)

	if token == "" {
		return domain.Membership{}, ErrInvalidRequest
	}

	var membership domain.Membership
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		inv, err := tx.Invitations().GetInvitationByTokenHash(ctx, cryptox.FingerprintToken(token))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}

		switch inv.EffectiveStatus(time.Now()) {
		case domain.InvitationPending:
		case domain.InvitationExpired:
			return ErrInviteExpired
		case domain.InvitationAccepted:
			return ErrAlreadyAccepted
		case domain.InvitationCancelled:
			return ErrInviteCancelled
		default:
			return ErrInvalidState
		}

		// Accepting must never displace the owner role.
		existing, err := tx.Memberships().GetMembership(ctx, inv.OrganizationID, actor.AccountID)
		if err == nil && existing.Role == domain.RoleOwner {
			return ErrInvalidTransition
		}
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}

		if err := mirrorAccount(ctx, tx, actor); err != nil {
			return err
		}

		membership = domain.Membership{
			OrganizationID: inv.OrganizationID,
			AccountID:      actor.AccountID,
			Role:           inv.Role,
		}
		if err := tx.Memberships().UpsertMembership(ctx, membership); err != nil {
			return err
		}

		return tx.Invitations().UpdateStatus(ctx, inv.ID, domain.InvitationAccepted)
	})
	if err != nil {
		return domain.Membership{}, err
	}

	stored, err := s.Store.Memberships().GetMembership(ctx, membership.OrganizationID, actor.AccountID)
	if err != nil {
		return domain.Membership{}, err
	}

	log.Info("invitation accepted",
		slog.String("organization_id", stored.OrganizationID),
		slog.String("account_id", actor.AccountID),
		slog.String("role", string(stored.Role)),
	)
	return stored, nil
}

// manageableInvitation loads an invitation for a resend/cancel style
// operation, checking the actor can manage invites and the invitation really
// belongs to the named organization.
func (s *InvitationService) manageableInvitation(
	ctx context.Context,
	st store.Store,
	organizationID, actorID, invitationID string,
) (domain.Invitation, error) {
	if _, err := st.Organizations().GetOrganizationByID(ctx, organizationID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invitation{}, ErrNotFound
		}
		return domain.Invitation{}, err
	}

	actor, err := st.Memberships().GetMembership(ctx, organizationID, actorID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invitation{}, ErrForbidden
		}
		return domain.Invitation{}, err
	}
	if !domain.Can(actor.Role, domain.ActionInviteMember) {
		return domain.Invitation{}, ErrForbidden
	}

	inv, err := st.Invitations().GetInvitationByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invitation{}, ErrNotFound
		}
		return domain.Invitation{}, err
	}
	if inv.OrganizationID != organizationID {
		return domain.Invitation{}, ErrNotFound
	}
	return inv, nil
}
