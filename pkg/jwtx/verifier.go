package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier checks a raw bearer token and returns the verified claims.
// The identity service issues the tokens; this service only consumes them.
type Verifier interface {
	Verify(raw string) (Claims, error)
}

// HMACVerifier verifies HS256 tokens signed with a secret shared with the
// identity service.
type HMACVerifier struct {
	Secret []byte
	Issuer string // expected iss claim; empty skips the check
}

func NewHMACVerifier(secret []byte, issuer string) *HMACVerifier {
	return &HMACVerifier{Secret: secret, Issuer: issuer}
}

func (v *HMACVerifier) Verify(raw string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return v.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	tc, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return Claims{}, ErrTokenInvalid
	}

	if v.Issuer != "" && tc.Issuer != v.Issuer {
		return Claims{}, ErrWrongIssuer
	}
	if tc.Subject == "" {
		return Claims{}, fmt.Errorf("%w: missing sub", ErrTokenInvalid)
	}

	claims := Claims{
		Subject: tc.Subject,
		Email:   tc.Email,
		Name:    tc.Name,
		Issuer:  tc.Issuer,
	}
	if tc.ExpiresAt != nil {
		claims.ExpiresAt = tc.ExpiresAt.Time
	}
	return claims, nil
}
