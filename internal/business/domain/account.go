package domain

import "time"

// Account is a local mirror of an identity-service account: just enough to
// render member lists without calling back into the identity service. The
// identity service owns the record; this row is refreshed from verified
// token claims whenever the account touches this service.
type Account struct {
	ID        string
	Email     string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
