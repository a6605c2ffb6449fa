package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Inspector extracts scheduling hints from session tokens without verifying
// them. The zero value is not usable; call [NewInspector].
type Inspector struct {
	parser *jwt.Parser
}

// NewInspector returns an inspector that parses without claims validation:
// an already-expired token still yields its expiry, letting the caller decide
// what "too late to renew" means.
func NewInspector() *Inspector {
	return &Inspector{
		parser: jwt.NewParser(jwt.WithoutClaimsValidation()),
	}
}

// ExpiresAt returns the token's exp claim. ok is false for empty tokens,
// non-JWT tokens, and JWTs without an exp claim.
func (i *Inspector) ExpiresAt(raw string) (expiry time.Time, ok bool) {
	if i == nil || raw == "" {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := i.parser.ParseUnverified(raw, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
