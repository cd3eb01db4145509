package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Sign mints an HS256 token for the given claims. The real issuer is the
// identity service; this exists so tests and local tooling can stand in for
// it without running one.
func Sign(secret []byte, c Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	tc := tokenClaims{
		Email: c.Email,
		Name:  c.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.Subject,
			Issuer:    c.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, tc).SignedString(secret)
}
