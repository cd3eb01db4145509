package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/bizkopa/bizkopa/internal/business/domain"
	"github.com/bizkopa/bizkopa/internal/business/store"
	"github.com/bizkopa/bizkopa/pkg/slogx"
)

type MemberService struct {
	Store store.Store
}

// ListForAccount returns every organization the account belongs to, with the
// account's role in each. Needs no authorization beyond the identity itself.
func (s *MemberService) ListForAccount(
	ctx context.Context,
	accountID string,
) ([]domain.OrganizationMembership, error) {
	return s.Store.Memberships().ListByAccount(ctx, accountID)
}

// ListMembers returns the member roster of an organization. Any member may
// read it.
func (s *MemberService) ListMembers(
	ctx context.Context,
	organizationID, actorID string,
) ([]domain.Member, error) {
	if _, err := s.organization(ctx, s.Store, organizationID); err != nil {
		return nil, err
	}

	actor, err := s.membership(ctx, s.Store, organizationID, actorID)
	if err != nil {
		return nil, err
	}
	if !domain.Can(actor.Role, domain.ActionView) {
		return nil, ErrForbidden
	}

	return s.Store.Memberships().ListMembers(ctx, organizationID)
}

// ChangeRole moves a member between manager and staff. Only the owner may
// change roles, and the owner role itself is never granted this way.
func (s *MemberService) ChangeRole(
	ctx context.Context,
	organizationID, actorID, targetID string,
	newRole domain.Role,
) error {
	log := slogx.FromContext(ctx)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := s.organization(ctx, tx, organizationID); err != nil {
			return err
		}

		actor, err := s.membership(ctx, tx, organizationID, actorID)
		if err != nil {
			return err
		}
		if !domain.Can(actor.Role, domain.ActionChangeRole) {
			return ErrForbidden
		}

		target, err := s.target(ctx, tx, organizationID, actorID, targetID)
		if err != nil {
			return err
		}
		if err := authorizeTarget(actor, target); err != nil {
			return err
		}

		// The single owner is assigned at creation and never reassigned here.
		if newRole == domain.RoleOwner {
			return ErrInvalidTransition
		}
		if newRole != domain.RoleManager && newRole != domain.RoleStaff {
			return ErrInvalidRole
		}

		return tx.Memberships().UpdateRole(ctx, organizationID, targetID, newRole)
	})
	if err != nil {
		return err
	}

	log.Info("member role changed",
		slog.String("organization_id", organizationID),
		slog.String("account_id", targetID),
		slog.String("role", string(newRole)),
	)
	return nil
}

// RemoveMember deletes a membership. Owners may remove managers and staff;
// managers may remove staff only. Nobody removes themselves or the owner.
func (s *MemberService) RemoveMember(
	ctx context.Context,
	organizationID, actorID, targetID string,
) error {
	log := slogx.FromContext(ctx)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := s.organization(ctx, tx, organizationID); err != nil {
			return err
		}

		actor, err := s.membership(ctx, tx, organizationID, actorID)
		if err != nil {
			return err
		}
		if !domain.Can(actor.Role, domain.ActionRemoveMember) {
			return ErrForbidden
		}

		target, err := s.target(ctx, tx, organizationID, actorID, targetID)
		if err != nil {
			return err
		}
		if err := authorizeTarget(actor, target); err != nil {
			return err
		}

		return tx.Memberships().DeleteMembership(ctx, organizationID, targetID)
	})
	if err != nil {
		return err
	}

	log.Info("member removed",
		slog.String("organization_id", organizationID),
		slog.String("account_id", targetID),
	)
	return nil
}

// authorizeTarget enforces the rules shared by every member-targeting
// mutation: the target can never be the owner, and a manager can only act on
// staff.
func authorizeTarget(actor, target domain.Membership) error {
	if target.Role == domain.RoleOwner {
		return ErrForbidden
	}
	if actor.Role == domain.RoleManager && target.Role != domain.RoleStaff {
		return ErrForbidden
	}
	return nil
}

func (s *MemberService) organization(
	ctx context.Context,
	st store.Store,
	organizationID string,
) (domain.Organization, error) {
	org, err := st.Organizations().GetOrganizationByID(ctx, organizationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Organization{}, ErrNotFound
		}
		return domain.Organization{}, err
	}
	return org, nil
}

func (s *MemberService) membership(
	ctx context.Context,
	st store.Store,
	organizationID, accountID string,
) (domain.Membership, error) {
	m, err := st.Memberships().GetMembership(ctx, organizationID, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Membership{}, ErrForbidden
		}
		return domain.Membership{}, err
	}
	return m, nil
}

// target resolves the member being acted on. Acting on yourself is forbidden
// before anything else is considered; a target who is not a member is simply
// not found.
func (s *MemberService) target(
	ctx context.Context,
	st store.Store,
	organizationID, actorID, targetID string,
) (domain.Membership, error) {
	if targetID == actorID {
		return domain.Membership{}, ErrForbidden
	}
	m, err := st.Memberships().GetMembership(ctx, organizationID, targetID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Membership{}, ErrNotFound
		}
		return domain.Membership{}, err
	}
	return m, nil
}
