package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	raw, err := tok.SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return raw
}

func TestExpiresAtReadsExpClaim(t *testing.T) {
	want := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	raw := signedToken(t, jwt.MapClaims{
		"sub": "ana",
		"exp": want.Unix(),
	})

	expiry, ok := NewInspector().ExpiresAt(raw)
	if !ok {
		t.Fatalf("expected exp to be readable")
	}
	if !expiry.Equal(want) {
		t.Fatalf("expiry %v != %v", expiry, want)
	}
}

func TestExpiresAtAcceptsExpiredTokens(t *testing.T) {
	past := time.Now().Add(-time.Hour).Truncate(time.Second)
	raw := signedToken(t, jwt.MapClaims{"exp": past.Unix()})

	expiry, ok := NewInspector().ExpiresAt(raw)
	if !ok {
		t.Fatalf("an expired token must still yield its expiry")
	}
	if !expiry.Equal(past) {
		t.Fatalf("expiry %v != %v", expiry, past)
	}
}

func TestExpiresAtWithoutExpClaim(t *testing.T) {
	raw := signedToken(t, jwt.MapClaims{"sub": "ana"})

	if _, ok := NewInspector().ExpiresAt(raw); ok {
		t.Fatalf("token without exp must yield ok=false")
	}
}

func TestExpiresAtOpaqueToken(t *testing.T) {
	cases := []string{
		"",
		"abc123",
		"not.a.jwt",
		"F9A3B1C7E2D4",
	}

	insp := NewInspector()
	for _, raw := range cases {
		if _, ok := insp.ExpiresAt(raw); ok {
			t.Fatalf("opaque token %q yielded an expiry", raw)
		}
	}
}

func TestExpiresAtNilInspector(t *testing.T) {
	var insp *Inspector
	if _, ok := insp.ExpiresAt("anything"); ok {
		t.Fatalf("nil inspector must yield ok=false")
	}
}
