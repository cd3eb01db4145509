package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCan(t *testing.T) {
	t.Parallel()

	cases := []struct {
		role    Role
		action  Action
		allowed bool
	}{
		{RoleOwner, ActionView, true},
		{RoleOwner, ActionEditProfile, true},
		{RoleOwner, ActionDeleteOrganization, true},
		{RoleOwner, ActionInviteMember, true},
		{RoleOwner, ActionChangeRole, true},
		{RoleOwner, ActionRemoveMember, true},

		{RoleManager, ActionView, true},
		{RoleManager, ActionEditProfile, true},
		{RoleManager, ActionDeleteOrganization, false},
		{RoleManager, ActionInviteMember, true},
		{RoleManager, ActionChangeRole, false},
		{RoleManager, ActionRemoveMember, true},

		{RoleStaff, ActionView, true},
		{RoleStaff, ActionEditProfile, false},
		{RoleStaff, ActionDeleteOrganization, false},
		{RoleStaff, ActionInviteMember, false},
		{RoleStaff, ActionChangeRole, false},
		{RoleStaff, ActionRemoveMember, false},
	}

	for _, tc := range cases {
		t.Run(string(tc.role)+"/"+string(tc.action), func(t *testing.T) {
			require.Equal(t, tc.allowed, Can(tc.role, tc.action))
		})
	}
}

func TestCanOnlyOwnerDeletes(t *testing.T) {
	t.Parallel()

	for _, role := range []Role{RoleOwner, RoleManager, RoleStaff} {
		require.Equal(t, role == RoleOwner, Can(role, ActionDeleteOrganization))
	}
}

func TestCanDeniesUnknowns(t *testing.T) {
	t.Parallel()

	require.False(t, Can(Role("admin"), ActionView))
	require.False(t, Can(RoleOwner, Action("dropTables")))
}

func TestParseRole(t *testing.T) {
	t.Parallel()

	t.Run("normalizes case and whitespace", func(t *testing.T) {
		role, err := ParseRole("  Manager ")
		require.NoError(t, err)
		require.Equal(t, RoleManager, role)
	})

	t.Run("rejects unknown roles", func(t *testing.T) {
		_, err := ParseRole("superuser")
		require.ErrorIs(t, err, ErrUnknownRole)
	})
}

func TestRoleOrdering(t *testing.T) {
	t.Parallel()

	require.Greater(t, RoleOwner.Level(), RoleManager.Level())
	require.Greater(t, RoleManager.Level(), RoleStaff.Level())
	require.Greater(t, RoleStaff.Level(), Role("").Level())
}
