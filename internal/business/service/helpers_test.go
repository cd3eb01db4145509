package service

import (
	"context"
	"testing"

	"github.com/bizkopa/bizkopa/internal/business/domain"
	"github.com/bizkopa/bizkopa/internal/business/store"
	"github.com/bizkopa/bizkopa/internal/business/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func identity(accountID string) Identity {
	return Identity{
		AccountID: accountID,
		Email:     accountID + "@example.com",
		Name:      "Test " + accountID,
	}
}

// seedOrganization creates an organization owned by ownerID and returns it.
func seedOrganization(t *testing.T, st store.Store, ownerID, name string) domain.Organization {
	t.Helper()

	orgs := &OrganizationService{Store: st}
	org, err := orgs.Create(context.Background(), identity(ownerID), domain.Organization{Name: name})
	require.NoError(t, err)
	return org
}

// seedMember adds accountID to the organization at role via the invitation
// flow's membership upsert, mirroring the account first.
func seedMember(t *testing.T, st store.Store, organizationID, accountID string, role domain.Role) {
	t.Helper()

	ctx := context.Background()
	require.NoError(t, mirrorAccount(ctx, st, identity(accountID)))
	require.NoError(t, st.Memberships().CreateMembership(ctx, domain.Membership{
		OrganizationID: organizationID,
		AccountID:      accountID,
		Role:           role,
	}))
}
