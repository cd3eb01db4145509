package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEffectiveStatus(t *testing.T) {
	t.Parallel()

	now := time.Now()

	t.Run("pending before expiry stays pending", func(t *testing.T) {
		inv := Invitation{Status: InvitationPending, ExpiresAt: now.Add(time.Hour)}
		require.Equal(t, InvitationPending, inv.EffectiveStatus(now))
	})

	t.Run("pending past expiry reads expired", func(t *testing.T) {
		inv := Invitation{Status: InvitationPending, ExpiresAt: now.Add(-time.Minute)}
		require.Equal(t, InvitationExpired, inv.EffectiveStatus(now))
	})

	t.Run("terminal states are unaffected by time", func(t *testing.T) {
		for _, status := range []InvitationStatus{InvitationAccepted, InvitationExpired, InvitationCancelled} {
			inv := Invitation{Status: status, ExpiresAt: now.Add(-time.Hour)}
			require.Equal(t, status, inv.EffectiveStatus(now))
		}
	})
}

func TestIsTerminal(t *testing.T) {
	t.Parallel()

	require.False(t, InvitationPending.IsTerminal())
	require.True(t, InvitationAccepted.IsTerminal())
	require.True(t, InvitationExpired.IsTerminal())
	require.True(t, InvitationCancelled.IsTerminal())
}
