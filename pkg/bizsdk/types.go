package bizsdk

import "time"

// ErrorResponse is the error envelope every endpoint returns on failure.
// Client code should use the APIError type from errors.go instead.
type ErrorResponse struct {
	// Error is the machine-readable error code (e.g., "forbidden", "invite_expired")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// ============================================================================
// Organization Types
// ============================================================================

// Organization is the full organization profile.
type Organization struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Industry string `json:"industry,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	Address  string `json:"address,omitempty"`
	IsActive bool   `json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateOrganizationRequest is the body of POST /v1/organizations.
// Name is the only required field.
type CreateOrganizationRequest struct {
	Name     string `json:"name"`
	Industry string `json:"industry,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	Address  string `json:"address,omitempty"`
}

// UpdateOrganizationRequest is the body of PATCH /v1/organizations/{id}.
// Omitted fields are left untouched.
type UpdateOrganizationRequest struct {
	Name     *string `json:"name,omitempty"`
	Industry *string `json:"industry,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Email    *string `json:"email,omitempty"`
	Address  *string `json:"address,omitempty"`
}

// OrganizationMembership is one entry of GET /v1/organizations: an
// organization paired with the caller's own role in it.
type OrganizationMembership struct {
	Organization Organization `json:"organization"`
	Role         string       `json:"role"`
}

// OrganizationList is the response of GET /v1/organizations.
type OrganizationList struct {
	Organizations []OrganizationMembership `json:"organizations"`
}

// ============================================================================
// Member Types
// ============================================================================

// Member is one entry of the member roster.
type Member struct {
	AccountID string    `json:"account_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Role      string    `json:"role"`
	JoinedAt  time.Time `json:"joined_at"`
}

// MemberList is the response of GET /v1/organizations/{id}/members.
type MemberList struct {
	Members []Member `json:"members"`
}

// ChangeRoleRequest is the body of PATCH /v1/organizations/{id}/members/{accountID}.
// Role must be "manager" or "staff"; the owner role is never assignable.
type ChangeRoleRequest struct {
	Role string `json:"role"`
}

// Membership is the caller's own membership, returned by invitation accept.
type Membership struct {
	OrganizationID string    `json:"organization_id"`
	AccountID      string    `json:"account_id"`
	Role           string    `json:"role"`
	JoinedAt       time.Time `json:"joined_at"`
}

// ============================================================================
// Invitation Types
// ============================================================================

// Invitation is one entry of the invitation list. The raw token never
// appears here; it is only delivered at create and resend time.
type Invitation struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// InvitationList is the response of GET /v1/organizations/{id}/invitations.
type InvitationList struct {
	Invitations []Invitation `json:"invitations"`
}

// CreateInvitationRequest is the body of POST /v1/organizations/{id}/invitations.
// Role must be "manager" or "staff".
type CreateInvitationRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// InvitationTokenResponse is returned by invitation create and resend. It is
// the only place the raw token ever appears; there is no way to read it back
// later.
type InvitationTokenResponse struct {
	Invitation Invitation `json:"invitation"`
	Token      string     `json:"token"`
}

// ValidateInvitationResponse describes what accepting a token would mean,
// returned by GET /v1/invitations/validate. Status reflects expiry at read
// time: a lapsed invitation reads "expired" whether or not it has been swept.
type ValidateInvitationResponse struct {
	Email            string    `json:"email"`
	Role             string    `json:"role"`
	OrganizationName string    `json:"organization_name"`
	Status           string    `json:"status"`
	ExpiresAt        time.Time `json:"expires_at"`
}

// AcceptInvitationRequest is the body of POST /v1/invitations/accept.
type AcceptInvitationRequest struct {
	Token string `json:"token"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is returned by the liveness and readiness endpoints.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Uptime  string `json:"uptime,omitempty"`

	// Checks is only populated by the readiness endpoint.
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the status of critical dependencies.
type HealthChecks struct {
	Database string `json:"database"`
}
