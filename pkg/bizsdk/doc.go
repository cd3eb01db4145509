/*
Package bizsdk provides a client SDK for the Bizkopa business service.

# SDKClient vs Session

The package is organized around two main types:

  - SDKClient: unauthenticated operations (health checks, invitation token
    validation) and a factory for authenticated Sessions
  - Session: authenticated operations using an access token issued by the
    identity service

Create an SDKClient for public endpoints:

	client := bizsdk.NewSDKClient("https://business.example.com")

	// Check service health
	health, err := client.GetLiveness(ctx)

	// Inspect an invitation before signing in
	view, err := client.ValidateInvitation(ctx, token)

Wrap an identity-service access token to perform authenticated calls:

	session := client.NewSession(accessToken)

	org, err := session.CreateOrganization(ctx, bizsdk.CreateOrganizationRequest{Name: "Acme"})
	created, err := session.CreateInvitation(ctx, org.ID, bizsdk.CreateInvitationRequest{
		Email: "new@example.com",
		Role:  "staff",
	})

The business service does not issue or refresh tokens. When a token expires,
obtain a new one from the identity service and create a new Session.

# Workspace

Workspace is a client-local cache of "which organizations am I in, and which
one am I working in right now", persisted across restarts:

	w := bizsdk.NewWorkspace(session, filepath.Join(cfgDir, "workspace.json"))

	orgs, err := w.Refresh(ctx)   // authoritative fetch, replaces the cache
	active, ok := w.Active()      // the current selection, if any
	w.SetActive(orgs[1].Organization.ID)

The cache is never authoritative: each Refresh replaces the list wholesale
and re-validates the active selection, so a revoked membership disappears on
the next fetch.

# Errors

Failed calls return *APIError with the service's machine-readable code:

	_, err := session.AcceptInvitation(ctx, token)
	if bizsdk.IsCode(err, bizsdk.ErrorCodeInviteExpired) {
		// ask the inviter to resend
	}
*/
package bizsdk
