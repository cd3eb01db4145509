package domain

import "time"

// Organization is a tenant boundary. Every organization has exactly one
// owner membership for its entire lifetime.
type Organization struct {
	ID        string
	Name      string
	Industry  string
	Phone     string
	Email     string
	Address   string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrganizationPatch carries a partial profile update. Nil fields are left
// untouched.
type OrganizationPatch struct {
	Name     *string
	Industry *string
	Phone    *string
	Email    *string
	Address  *string
}
