package domain

import "time"

// Membership is the (organization, account, role) relation. At most one row
// exists per (organization, account) pair.
type Membership struct {
	OrganizationID string
	AccountID      string
	Role           Role
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// OrganizationMembership pairs an organization with the caller's own role in
// it, the unit returned by list-for-account.
type OrganizationMembership struct {
	Organization Organization
	Role         Role
}

// Member pairs a membership with the member's mirrored profile, the unit
// returned by list-members.
type Member struct {
	Membership Membership
	Profile    Account
}
