package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenInvalid = errors.New("jwtx: token invalid")
	ErrTokenExpired = errors.New("jwtx: token expired")
	ErrWrongIssuer  = errors.New("jwtx: unexpected issuer")
)

// Claims is the subset of identity-service token claims this service cares
// about. Subject is the stable account identifier every operation keys on;
// Email and Name feed the local account mirror.
type Claims struct {
	Subject   string
	Email     string
	Name      string
	Issuer    string
	ExpiresAt time.Time
}

// ValidateExpiry reports whether the claims are still within their validity
// window.
func (c Claims) ValidateExpiry() error {
	if !c.ExpiresAt.IsZero() && time.Now().After(c.ExpiresAt) {
		return ErrTokenExpired
	}
	return nil
}

// tokenClaims is the wire shape parsed by golang-jwt.
type tokenClaims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`

	jwt.RegisteredClaims
}
