package service

import (
	"context"
	"testing"
	"time"

	"github.com/bizkopa/bizkopa/internal/business/domain"
	"github.com/bizkopa/bizkopa/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestInvitationCreate(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &InvitationService{Store: st}

	org := seedOrganization(t, st, "alice", "Acme")
	seedMember(t, st, org.ID, "mandy", domain.RoleManager)
	seedMember(t, st, org.ID, "sam", domain.RoleStaff)

	t.Run("manager invites staff", func(t *testing.T) {
		created, err := svc.Create(ctx, org.ID, "mandy", "new@example.com", domain.RoleStaff)
		require.NoError(t, err)
		require.NotEmpty(t, created.Token)
		require.Equal(t, domain.InvitationPending, created.Invitation.Status)
		require.Equal(t, "new@example.com", created.Invitation.Email)
		require.WithinDuration(t, time.Now().Add(DefaultInviteTTL), created.Invitation.ExpiresAt, time.Minute)

		// Only the fingerprint lands in the store.
		require.Equal(t, cryptox.FingerprintToken(created.Token), created.Invitation.TokenHash)
		require.NotEqual(t, created.Token, created.Invitation.TokenHash)
	})

	t.Run("email is normalized", func(t *testing.T) {
		created, err := svc.Create(ctx, org.ID, "alice", "  UPPER@Example.COM ", domain.RoleManager)
		require.NoError(t, err)
		require.Equal(t, "upper@example.com", created.Invitation.Email)
	})

	t.Run("staff cannot invite", func(t *testing.T) {
		_, err := svc.Create(ctx, org.ID, "sam", "x@example.com", domain.RoleStaff)
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("owner role is never offered", func(t *testing.T) {
		_, err := svc.Create(ctx, org.ID, "alice", "x@example.com", domain.RoleOwner)
		require.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("bad email rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, org.ID, "alice", "not-an-email", domain.RoleStaff)
		require.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("unknown organization is not found", func(t *testing.T) {
		_, err := svc.Create(ctx, "nope", "alice", "x@example.com", domain.RoleStaff)
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestInvitationList(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &InvitationService{Store: st}

	org := seedOrganization(t, st, "alice", "Acme")
	seedMember(t, st, org.ID, "sam", domain.RoleStaff)

	pending, err := svc.Create(ctx, org.ID, "alice", "p@example.com", domain.RoleStaff)
	require.NoError(t, err)

	cancelled, err := svc.Create(ctx, org.ID, "alice", "c@example.com", domain.RoleStaff)
	require.NoError(t, err)
	require.NoError(t, svc.Cancel(ctx, org.ID, "alice", cancelled.Invitation.ID))

	lapsed, err := svc.Create(ctx, org.ID, "alice", "l@example.com", domain.RoleStaff)
	require.NoError(t, err)
	require.NoError(t, st.Invitations().RefreshToken(ctx,
		lapsed.Invitation.ID, lapsed.Invitation.TokenHash, time.Now().Add(-time.Hour)))

	t.Run("unfiltered returns everything", func(t *testing.T) {
		got, err := svc.List(ctx, org.ID, "alice", "")
		require.NoError(t, err)
		require.Len(t, got, 3)
	})

	t.Run("pending filter excludes lapsed rows", func(t *testing.T) {
		got, err := svc.List(ctx, org.ID, "alice", domain.InvitationPending)
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, pending.Invitation.ID, got[0].ID)
	})

	t.Run("expired filter includes lapsed-but-unswept rows", func(t *testing.T) {
		got, err := svc.List(ctx, org.ID, "alice", domain.InvitationExpired)
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, lapsed.Invitation.ID, got[0].ID)
		require.Equal(t, domain.InvitationExpired, got[0].Status)
	})

	t.Run("staff cannot list invitations", func(t *testing.T) {
		_, err := svc.List(ctx, org.ID, "sam", "")
		require.ErrorIs(t, err, ErrForbidden)
	})
}

func TestInvitationAccept(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &InvitationService{Store: st}

	org := seedOrganization(t, st, "alice", "Acme")

	t.Run("valid token grants membership", func(t *testing.T) {
		created, err := svc.Create(ctx, org.ID, "alice", "bob@example.com", domain.RoleManager)
		require.NoError(t, err)

		m, err := svc.Accept(ctx, identity("bob"), created.Token)
		require.NoError(t, err)
		require.Equal(t, org.ID, m.OrganizationID)
		require.Equal(t, domain.RoleManager, m.Role)

		inv, err := st.Invitations().GetInvitationByID(ctx, created.Invitation.ID)
		require.NoError(t, err)
		require.Equal(t, domain.InvitationAccepted, inv.Status)
	})

	t.Run("second accept of the same token fails", func(t *testing.T) {
		created, err := svc.Create(ctx, org.ID, "alice", "carol@example.com", domain.RoleStaff)
		require.NoError(t, err)

		_, err = svc.Accept(ctx, identity("carol"), created.Token)
		require.NoError(t, err)

		_, err = svc.Accept(ctx, identity("dave"), created.Token)
		require.ErrorIs(t, err, ErrAlreadyAccepted)

		// carol kept her membership, dave gained nothing.
		_, err = st.Memberships().GetMembership(ctx, org.ID, "dave")
		require.Error(t, err)
	})

	t.Run("token possession is the credential", func(t *testing.T) {
		created, err := svc.Create(ctx, org.ID, "alice", "intended@example.com", domain.RoleStaff)
		require.NoError(t, err)

		m, err := svc.Accept(ctx, identity("someone-else"), created.Token)
		require.NoError(t, err)
		require.Equal(t, domain.RoleStaff, m.Role)
	})

	t.Run("accept updates the role of an existing member", func(t *testing.T) {
		created, err := svc.Create(ctx, org.ID, "alice", "bob@example.com", domain.RoleStaff)
		require.NoError(t, err)

		m, err := svc.Accept(ctx, identity("bob"), created.Token)
		require.NoError(t, err)
		require.Equal(t, domain.RoleStaff, m.Role)
	})

	t.Run("owner cannot be demoted by accepting", func(t *testing.T) {
		created, err := svc.Create(ctx, org.ID, "alice", "alice@example.com", domain.RoleStaff)
		require.NoError(t, err)

		_, err = svc.Accept(ctx, identity("alice"), created.Token)
		require.ErrorIs(t, err, ErrInvalidTransition)

		m, err := st.Memberships().GetMembership(ctx, org.ID, "alice")
		require.NoError(t, err)
		require.Equal(t, domain.RoleOwner, m.Role)
	})

	t.Run("expired token rejected even before the sweep", func(t *testing.T) {
		created, err := svc.Create(ctx, org.ID, "alice", "late@example.com", domain.RoleStaff)
		require.NoError(t, err)
		require.NoError(t, st.Invitations().RefreshToken(ctx,
			created.Invitation.ID, created.Invitation.TokenHash, time.Now().Add(-time.Minute)))

		_, err = svc.Accept(ctx, identity("late"), created.Token)
		require.ErrorIs(t, err, ErrInviteExpired)
	})

	t.Run("cancelled token rejected", func(t *testing.T) {
		created, err := svc.Create(ctx, org.ID, "alice", "gone@example.com", domain.RoleStaff)
		require.NoError(t, err)
		require.NoError(t, svc.Cancel(ctx, org.ID, "alice", created.Invitation.ID))

		_, err = svc.Accept(ctx, identity("gone"), created.Token)
		require.ErrorIs(t, err, ErrInviteCancelled)
	})

	t.Run("unknown token is not found", func(t *testing.T) {
		_, err := svc.Accept(ctx, identity("x"), "no-such-token")
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestInvitationValidate(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &InvitationService{Store: st}

	org := seedOrganization(t, st, "alice", "Acme")

	t.Run("reports email, role, organization and expiry", func(t *testing.T) {
		created, err := svc.Create(ctx, org.ID, "alice", "bob@example.com", domain.RoleManager)
		require.NoError(t, err)

		view, err := svc.Validate(ctx, created.Token)
		require.NoError(t, err)
		require.Equal(t, "bob@example.com", view.Email)
		require.Equal(t, domain.RoleManager, view.Role)
		require.Equal(t, "Acme", view.OrganizationName)
		require.Equal(t, domain.InvitationPending, view.Status)
	})

	t.Run("lapsed token reads expired", func(t *testing.T) {
		created, err := svc.Create(ctx, org.ID, "alice", "old@example.com", domain.RoleStaff)
		require.NoError(t, err)
		require.NoError(t, st.Invitations().RefreshToken(ctx,
			created.Invitation.ID, created.Invitation.TokenHash, time.Now().Add(-time.Hour)))

		view, err := svc.Validate(ctx, created.Token)
		require.NoError(t, err)
		require.Equal(t, domain.InvitationExpired, view.Status)
	})

	t.Run("unknown token is not found", func(t *testing.T) {
		_, err := svc.Validate(ctx, "bogus")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty token is invalid", func(t *testing.T) {
		_, err := svc.Validate(ctx, "")
		require.ErrorIs(t, err, ErrInvalidRequest)
	})
}

func TestInvitationResendAndCancel(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &InvitationService{Store: st}

	org := seedOrganization(t, st, "alice", "Acme")
	seedMember(t, st, org.ID, "sam", domain.RoleStaff)

	t.Run("resend rotates the token", func(t *testing.T) {
		created, err := svc.Create(ctx, org.ID, "alice", "bob@example.com", domain.RoleStaff)
		require.NoError(t, err)

		resent, err := svc.Resend(ctx, org.ID, "alice", created.Invitation.ID)
		require.NoError(t, err)
		require.NotEqual(t, created.Token, resent.Token)

		// Old token stops working, new one validates.
		_, err = svc.Validate(ctx, created.Token)
		require.ErrorIs(t, err, ErrNotFound)

		view, err := svc.Validate(ctx, resent.Token)
		require.NoError(t, err)
		require.Equal(t, domain.InvitationPending, view.Status)
	})

	t.Run("resend revives a lapsed-but-unswept invitation", func(t *testing.T) {
		created, err := svc.Create(ctx, org.ID, "alice", "slow@example.com", domain.RoleStaff)
		require.NoError(t, err)
		require.NoError(t, st.Invitations().RefreshToken(ctx,
			created.Invitation.ID, created.Invitation.TokenHash, time.Now().Add(-time.Hour)))

		resent, err := svc.Resend(ctx, org.ID, "alice", created.Invitation.ID)
		require.NoError(t, err)
		require.True(t, resent.Invitation.ExpiresAt.After(time.Now()))
	})

	t.Run("resend of a cancelled invitation fails", func(t *testing.T) {
		created, err := svc.Create(ctx, org.ID, "alice", "c@example.com", domain.RoleStaff)
		require.NoError(t, err)
		require.NoError(t, svc.Cancel(ctx, org.ID, "alice", created.Invitation.ID))

		_, err = svc.Resend(ctx, org.ID, "alice", created.Invitation.ID)
		require.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("cancel is not idempotent", func(t *testing.T) {
		created, err := svc.Create(ctx, org.ID, "alice", "x@example.com", domain.RoleStaff)
		require.NoError(t, err)
		require.NoError(t, svc.Cancel(ctx, org.ID, "alice", created.Invitation.ID))

		err = svc.Cancel(ctx, org.ID, "alice", created.Invitation.ID)
		require.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("staff cannot resend or cancel", func(t *testing.T) {
		created, err := svc.Create(ctx, org.ID, "alice", "y@example.com", domain.RoleStaff)
		require.NoError(t, err)

		_, err = svc.Resend(ctx, org.ID, "sam", created.Invitation.ID)
		require.ErrorIs(t, err, ErrForbidden)

		err = svc.Cancel(ctx, org.ID, "sam", created.Invitation.ID)
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("invitation from another organization is not found", func(t *testing.T) {
		other := seedOrganization(t, st, "zoe", "Other")
		created, err := svc.Create(ctx, other.ID, "zoe", "z@example.com", domain.RoleStaff)
		require.NoError(t, err)

		err = svc.Cancel(ctx, org.ID, "alice", created.Invitation.ID)
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestHousekeepingSweep(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &InvitationService{Store: st}

	org := seedOrganization(t, st, "alice", "Acme")

	created, err := svc.Create(ctx, org.ID, "alice", "old@example.com", domain.RoleStaff)
	require.NoError(t, err)
	require.NoError(t, st.Invitations().RefreshToken(ctx,
		created.Invitation.ID, created.Invitation.TokenHash, time.Now().Add(-time.Hour)))

	fresh, err := svc.Create(ctx, org.ID, "alice", "new@example.com", domain.RoleStaff)
	require.NoError(t, err)

	n, err := st.Invitations().MarkLapsedExpired(ctx, time.Now())
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	swept, err := st.Invitations().GetInvitationByID(ctx, created.Invitation.ID)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationExpired, swept.Status)

	kept, err := st.Invitations().GetInvitationByID(ctx, fresh.Invitation.ID)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationPending, kept.Status)
}
