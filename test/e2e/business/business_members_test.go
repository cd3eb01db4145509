package business_test

import (
	"testing"

	"github.com/bizkopa/bizkopa/pkg/bizsdk"
	"github.com/stretchr/testify/require"
)

// seedOrgWithMember creates an organization for ownerID and brings memberID
// in at the given role through the invitation flow.
func seedOrgWithMember(
	t *testing.T,
	baseURL string,
	owner *bizsdk.Session,
	memberID, role string,
) *bizsdk.Organization {
	t.Helper()
	ctx := t.Context()

	org, err := owner.CreateOrganization(ctx, bizsdk.CreateOrganizationRequest{Name: "Members Test"})
	require.NoError(t, err)

	created, err := owner.CreateInvitation(ctx, org.ID, bizsdk.CreateInvitationRequest{
		Email: memberID + "@example.com",
		Role:  role,
	})
	require.NoError(t, err)

	member := sessionFor(t, baseURL, memberID)
	_, err = member.AcceptInvitation(ctx, created.Token)
	require.NoError(t, err)

	return org
}

// TestMemberRoleChange verifies owner-driven promotion and the guardrails
// around the owner role.
func TestMemberRoleChange(t *testing.T) {
	baseURL, cleanup := setupBusinessContainer(t)
	defer cleanup()

	ctx := t.Context()
	owner := sessionFor(t, baseURL, "rc-owner")
	org := seedOrgWithMember(t, baseURL, owner, "rc-sam", "staff")

	// Promote staff to manager.
	require.NoError(t, owner.ChangeMemberRole(ctx, org.ID, "rc-sam", "manager"))

	roster, err := owner.ListMembers(ctx, org.ID)
	require.NoError(t, err)
	for _, m := range roster.Members {
		if m.AccountID == "rc-sam" {
			require.Equal(t, "manager", m.Role)
		}
	}

	// The owner role is never assignable.
	err = owner.ChangeMemberRole(ctx, org.ID, "rc-sam", "owner")
	requireAPIError(t, err, bizsdk.ErrorCodeInvalidTransition)

	// A manager cannot change roles at all.
	sam := sessionFor(t, baseURL, "rc-sam")
	err = sam.ChangeMemberRole(ctx, org.ID, "rc-owner", "staff")
	requireAPIError(t, err, bizsdk.ErrorCodeForbidden)
}

// TestMemberRemoval verifies the manager-targets-staff-only rule and that a
// removed member loses access immediately.
func TestMemberRemoval(t *testing.T) {
	baseURL, cleanup := setupBusinessContainer(t)
	defer cleanup()

	ctx := t.Context()
	owner := sessionFor(t, baseURL, "rm-owner")
	org := seedOrgWithMember(t, baseURL, owner, "rm-manager", "manager")

	// Add a staff member too.
	created, err := owner.CreateInvitation(ctx, org.ID, bizsdk.CreateInvitationRequest{
		Email: "rm-staff@example.com",
		Role:  "staff",
	})
	require.NoError(t, err)
	staff := sessionFor(t, baseURL, "rm-staff")
	_, err = staff.AcceptInvitation(ctx, created.Token)
	require.NoError(t, err)

	manager := sessionFor(t, baseURL, "rm-manager")

	// A manager can never remove the owner or themselves.
	err = manager.RemoveMember(ctx, org.ID, "rm-owner")
	requireAPIError(t, err, bizsdk.ErrorCodeForbidden)
	err = manager.RemoveMember(ctx, org.ID, "rm-manager")
	requireAPIError(t, err, bizsdk.ErrorCodeForbidden)

	// A manager can remove staff.
	require.NoError(t, manager.RemoveMember(ctx, org.ID, "rm-staff"))

	// The removed member has lost access.
	_, err = staff.ListMembers(ctx, org.ID)
	requireAPIError(t, err, bizsdk.ErrorCodeForbidden)

	orgs, err := staff.ListOrganizations(ctx)
	require.NoError(t, err)
	require.Empty(t, orgs.Organizations)
}

// TestOrganizationDeleteCascades verifies owner-only deletion and that
// memberships and invitations vanish with the organization.
func TestOrganizationDeleteCascades(t *testing.T) {
	baseURL, cleanup := setupBusinessContainer(t)
	defer cleanup()

	ctx := t.Context()
	client := bizsdk.NewSDKClient(baseURL)

	owner := sessionFor(t, baseURL, "del-owner")
	org := seedOrgWithMember(t, baseURL, owner, "del-manager", "manager")

	pending, err := owner.CreateInvitation(ctx, org.ID, bizsdk.CreateInvitationRequest{
		Email: "pending@example.com",
		Role:  "staff",
	})
	require.NoError(t, err)

	// Managers cannot delete.
	manager := sessionFor(t, baseURL, "del-manager")
	err = manager.DeleteOrganization(ctx, org.ID)
	requireAPIError(t, err, bizsdk.ErrorCodeForbidden)

	require.NoError(t, owner.DeleteOrganization(ctx, org.ID))

	_, err = owner.GetOrganization(ctx, org.ID)
	requireAPIError(t, err, bizsdk.ErrorCodeNotFound)

	// The pending invitation died with the organization.
	_, err = client.ValidateInvitation(ctx, pending.Token)
	requireAPIError(t, err, bizsdk.ErrorCodeNotFound)

	orgs, err := manager.ListOrganizations(ctx)
	require.NoError(t, err)
	require.Empty(t, orgs.Organizations)
}

// TestWorkspaceAgainstLiveService exercises the client-side workspace cache
// against a real server: refresh, selection, and reconciliation after a
// membership disappears.
func TestWorkspaceAgainstLiveService(t *testing.T) {
	baseURL, cleanup := setupBusinessContainer(t)
	defer cleanup()

	ctx := t.Context()

	owner := sessionFor(t, baseURL, "ws-owner")
	first, err := owner.CreateOrganization(ctx, bizsdk.CreateOrganizationRequest{Name: "First"})
	require.NoError(t, err)
	second, err := owner.CreateOrganization(ctx, bizsdk.CreateOrganizationRequest{Name: "Second"})
	require.NoError(t, err)

	w := bizsdk.NewWorkspace(owner, t.TempDir()+"/workspace.json")

	orgs, err := w.Refresh(ctx)
	require.NoError(t, err)
	require.Len(t, orgs, 2)

	require.True(t, w.SetActive(second.ID))

	// Deleting the active organization must push the selection back to a
	// surviving membership on the next refresh.
	require.NoError(t, owner.DeleteOrganization(ctx, second.ID))

	orgs, err = w.Refresh(ctx)
	require.NoError(t, err)
	require.Len(t, orgs, 1)

	active, ok := w.Active()
	require.True(t, ok)
	require.Equal(t, first.ID, active.Organization.ID)
}
