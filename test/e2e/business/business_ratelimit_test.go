package business_test

import (
	"testing"

	"github.com/bizkopa/bizkopa/pkg/bizsdk"
	"github.com/stretchr/testify/require"
)

// TestRateLimitValidateEndpoint verifies the unauthenticated token lookup is
// rate limited. This endpoint has the strict profile (10 req/min per IP) to
// slow down token guessing.
func TestRateLimitValidateEndpoint(t *testing.T) {
	baseURL, cleanup := setupBusinessContainerWithDefaultRateLimits(t)
	defer cleanup()

	ctx := t.Context()
	client := bizsdk.NewSDKClient(baseURL)

	// The strict profile allows a burst of 10; the 11th rapid request must
	// be rejected with 429.
	var lastErr error
	for i := range 11 {
		_, err := client.ValidateInvitation(ctx, "guessed-token")
		if i < 10 {
			// Bad token, not rate limited yet.
			requireAPIError(t, err, bizsdk.ErrorCodeNotFound)
		} else {
			lastErr = err
		}
	}

	require.Error(t, lastErr)
	apiErr, ok := lastErr.(*bizsdk.APIError)
	require.True(t, ok, "expected APIError, got %v", lastErr)
	require.Equal(t, 429, apiErr.StatusCode)

	t.Logf("Successfully rate limited after 10 requests to /v1/invitations/validate")
}

// TestRateLimitDoesNotAffectHealth verifies health checks use the lenient
// profile and survive a monitoring-style burst.
func TestRateLimitDoesNotAffectHealth(t *testing.T) {
	baseURL, cleanup := setupBusinessContainerWithDefaultRateLimits(t)
	defer cleanup()

	ctx := t.Context()
	client := bizsdk.NewSDKClient(baseURL)

	for range 30 {
		health, err := client.GetLiveness(ctx)
		require.NoError(t, err)
		require.Equal(t, "ok", health.Status)
	}
}
