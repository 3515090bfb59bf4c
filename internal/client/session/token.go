package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpired decodes the expiry claim locally, without verifying the
// signature and without a network call. A malformed token is treated as
// expired so it gets discarded; a token without an expiry claim is left for
// the server to judge.
func tokenExpired(raw string, now time.Time) bool {
	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(now)
}
