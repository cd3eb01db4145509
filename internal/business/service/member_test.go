package service

import (
	"context"
	"testing"

	"github.com/bizkopa/bizkopa/internal/business/domain"
	"github.com/stretchr/testify/require"
)

func TestListForAccount(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &MemberService{Store: st}

	first := seedOrganization(t, st, "alice", "First")
	second := seedOrganization(t, st, "bob", "Second")
	seedMember(t, st, second.ID, "alice", domain.RoleStaff)

	t.Run("returns every organization with own role", func(t *testing.T) {
		got, err := svc.ListForAccount(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.Equal(t, first.ID, got[0].Organization.ID)
		require.Equal(t, domain.RoleOwner, got[0].Role)
		require.Equal(t, second.ID, got[1].Organization.ID)
		require.Equal(t, domain.RoleStaff, got[1].Role)
	})

	t.Run("empty for an account with no memberships", func(t *testing.T) {
		got, err := svc.ListForAccount(ctx, "nobody")
		require.NoError(t, err)
		require.Empty(t, got)
	})
}

func TestListMembers(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &MemberService{Store: st}

	org := seedOrganization(t, st, "alice", "Acme")
	seedMember(t, st, org.ID, "sam", domain.RoleStaff)

	t.Run("staff can read the roster", func(t *testing.T) {
		got, err := svc.ListMembers(ctx, org.ID, "sam")
		require.NoError(t, err)
		require.Len(t, got, 2)
	})

	t.Run("roster includes mirrored profiles", func(t *testing.T) {
		got, err := svc.ListMembers(ctx, org.ID, "alice")
		require.NoError(t, err)

		byID := map[string]domain.Member{}
		for _, m := range got {
			byID[m.Membership.AccountID] = m
		}
		require.Equal(t, "sam@example.com", byID["sam"].Profile.Email)
		require.Equal(t, domain.RoleStaff, byID["sam"].Membership.Role)
	})

	t.Run("non-member is forbidden", func(t *testing.T) {
		_, err := svc.ListMembers(ctx, org.ID, "mallory")
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("unknown organization is not found", func(t *testing.T) {
		_, err := svc.ListMembers(ctx, "nope", "alice")
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestChangeRole(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &MemberService{Store: st}

	org := seedOrganization(t, st, "alice", "Acme")
	seedMember(t, st, org.ID, "mandy", domain.RoleManager)
	seedMember(t, st, org.ID, "sam", domain.RoleStaff)

	t.Run("owner promotes staff to manager", func(t *testing.T) {
		require.NoError(t, svc.ChangeRole(ctx, org.ID, "alice", "sam", domain.RoleManager))

		m, err := st.Memberships().GetMembership(ctx, org.ID, "sam")
		require.NoError(t, err)
		require.Equal(t, domain.RoleManager, m.Role)

		require.NoError(t, svc.ChangeRole(ctx, org.ID, "alice", "sam", domain.RoleStaff))
	})

	t.Run("manager cannot change roles", func(t *testing.T) {
		err := svc.ChangeRole(ctx, org.ID, "mandy", "sam", domain.RoleManager)
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("owner role is never granted", func(t *testing.T) {
		err := svc.ChangeRole(ctx, org.ID, "alice", "sam", domain.RoleOwner)
		require.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		err := svc.ChangeRole(ctx, org.ID, "alice", "sam", domain.Role("admin"))
		require.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("cannot target self", func(t *testing.T) {
		err := svc.ChangeRole(ctx, org.ID, "alice", "alice", domain.RoleManager)
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("cannot target the owner", func(t *testing.T) {
		// The self check fires first, so use a second org where mandy is
		// owner and alice a would-be actor without standing.
		other := seedOrganization(t, st, "mandy", "Other")
		seedMember(t, st, other.ID, "alice", domain.RoleManager)

		err := svc.ChangeRole(ctx, other.ID, "alice", "mandy", domain.RoleStaff)
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("unknown target is not found", func(t *testing.T) {
		err := svc.ChangeRole(ctx, org.ID, "alice", "ghost", domain.RoleStaff)
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRemoveMember(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &MemberService{Store: st}

	org := seedOrganization(t, st, "alice", "Acme")
	seedMember(t, st, org.ID, "mandy", domain.RoleManager)
	seedMember(t, st, org.ID, "max", domain.RoleManager)
	seedMember(t, st, org.ID, "sam", domain.RoleStaff)

	t.Run("staff cannot remove", func(t *testing.T) {
		err := svc.RemoveMember(ctx, org.ID, "sam", "mandy")
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("manager cannot remove a manager", func(t *testing.T) {
		err := svc.RemoveMember(ctx, org.ID, "mandy", "max")
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("nobody removes the owner", func(t *testing.T) {
		err := svc.RemoveMember(ctx, org.ID, "mandy", "alice")
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("cannot remove self", func(t *testing.T) {
		err := svc.RemoveMember(ctx, org.ID, "mandy", "mandy")
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("manager removes staff", func(t *testing.T) {
		require.NoError(t, svc.RemoveMember(ctx, org.ID, "mandy", "sam"))

		_, err := st.Memberships().GetMembership(ctx, org.ID, "sam")
		require.Error(t, err)
	})

	t.Run("owner removes a manager", func(t *testing.T) {
		require.NoError(t, svc.RemoveMember(ctx, org.ID, "alice", "max"))
	})

	t.Run("removed member loses access", func(t *testing.T) {
		_, err := svc.ListMembers(ctx, org.ID, "sam")
		require.ErrorIs(t, err, ErrForbidden)
	})
}
