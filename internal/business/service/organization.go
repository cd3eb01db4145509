package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/bizkopa/bizkopa/internal/business/domain"
	"github.com/bizkopa/bizkopa/internal/business/store"
	"github.com/bizkopa/bizkopa/pkg/idx"
	"github.com/bizkopa/bizkopa/pkg/slogx"
)

type OrganizationService struct {
	Store store.Store
}

// Create makes a new organization with the caller as its owner. The owner
// membership is written in the same transaction as the organization, so the
// exactly-one-owner invariant holds from the first instant.
func (s *OrganizationService) Create(
	ctx context.Context,
	actor Identity,
	profile domain.Organization,
) (domain.Organization, error) {
	log := slogx.FromContext(ctx)

	if strings.TrimSpace(profile.Name) == "" {
		return domain.Organization{}, ErrInvalidRequest
	}

	org := domain.Organization{
		ID:       idx.New().String(),
		Name:     strings.TrimSpace(profile.Name),
		Industry: profile.Industry,
		Phone:    profile.Phone,
		Email:    profile.Email,
		Address:  profile.Address,
		IsActive: true,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := mirrorAccount(ctx, tx, actor); err != nil {
			return err
		}
		if err := tx.Organizations().CreateOrganization(ctx, org); err != nil {
			return err
		}
		return tx.Memberships().CreateMembership(ctx, domain.Membership{
			OrganizationID: org.ID,
			AccountID:      actor.AccountID,
			Role:           domain.RoleOwner,
		})
	})
	if err != nil {
		log.Error("failed to create organization", slog.Any("error", err))
		return domain.Organization{}, err
	}

	log.Info("organization created",
		slog.String("organization_id", org.ID),
		slog.String("owner_id", actor.AccountID),
	)

	return s.Store.Organizations().GetOrganizationByID(ctx, org.ID)
}

// Get returns one organization. The actor must be a member.
func (s *OrganizationService) Get(
	ctx context.Context,
	organizationID, actorID string,
) (domain.Organization, error) {
	org, err := s.Store.Organizations().GetOrganizationByID(ctx, organizationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Organization{}, ErrNotFound
		}
		return domain.Organization{}, err
	}

	actor, err := s.actorMembership(ctx, s.Store, organizationID, actorID)
	if err != nil {
		return domain.Organization{}, err
	}
	if !domain.Can(actor.Role, domain.ActionView) {
		return domain.Organization{}, ErrForbidden
	}

	return org, nil
}

// UpdateProfile applies a partial profile patch. Owners and managers only.
func (s *OrganizationService) UpdateProfile(
	ctx context.Context,
	organizationID, actorID string,
	patch domain.OrganizationPatch,
) (domain.Organization, error) {
	log := slogx.FromContext(ctx)

	var updated domain.Organization
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		org, err := tx.Organizations().GetOrganizationByID(ctx, organizationID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}

		actor, err := s.actorMembership(ctx, tx, organizationID, actorID)
		if err != nil {
			return err
		}
		if !domain.Can(actor.Role, domain.ActionEditProfile) {
			return ErrForbidden
		}

		if patch.Name != nil {
			if strings.TrimSpace(*patch.Name) == "" {
				return ErrInvalidRequest
			}
			org.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Industry != nil {
			org.Industry = *patch.Industry
		}
		if patch.Phone != nil {
			org.Phone = *patch.Phone
		}
		if patch.Email != nil {
			org.Email = *patch.Email
		}
		if patch.Address != nil {
			org.Address = *patch.Address
		}

		if err := tx.Organizations().UpdateOrganization(ctx, org); err != nil {
			return err
		}

		updated, err = tx.Organizations().GetOrganizationByID(ctx, organizationID)
		return err
	})
	if err != nil {
		return domain.Organization{}, err
	}

	log.Debug("organization profile updated",
		slog.String("organization_id", organizationID),
		slog.String("actor_id", actorID),
	)

	return updated, nil
}

// Delete removes the organization and cascades to all memberships and
// invitations. Owner only; not reversible.
func (s *OrganizationService) Delete(ctx context.Context, organizationID, actorID string) error {
	log := slogx.FromContext(ctx)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Organizations().GetOrganizationByID(ctx, organizationID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}

		actor, err := s.actorMembership(ctx, tx, organizationID, actorID)
		if err != nil {
			return err
		}
		if !domain.Can(actor.Role, domain.ActionDeleteOrganization) {
			return ErrForbidden
		}

		return tx.Organizations().DeleteOrganization(ctx, organizationID)
	})
	if err != nil {
		return err
	}

	log.Info("organization deleted",
		slog.String("organization_id", organizationID),
		slog.String("actor_id", actorID),
	)
	return nil
}

// actorMembership resolves the actor's membership in an organization,
// translating a missing row into Forbidden: the organization exists, the
// caller simply has no standing in it.
func (s *OrganizationService) actorMembership(
	ctx context.Context,
	st store.Store,
	organizationID, actorID string,
) (domain.Membership, error) {
	m, err := st.Memberships().GetMembership(ctx, organizationID, actorID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Membership{}, ErrForbidden
		}
		return domain.Membership{}, err
	}
	return m, nil
}
