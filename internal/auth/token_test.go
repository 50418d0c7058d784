package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

// TestTokenRoundTrip verifies an issued token validates with its subject.
func TestTokenRoundTrip(t *testing.T) {
	s := NewTokenService(testSecret)

	token, err := s.Issue("admin", time.Hour)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	claims, err := s.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.Subject != "admin" {
		t.Errorf("expected subject %q, got %q", "admin", claims.Subject)
	}
	if !claims.ExpiresAt.After(time.Now()) {
		t.Errorf("expected expiry in the future, got %v", claims.ExpiresAt)
	}
}

// TestTokenExpired verifies an expired token is rejected with ErrTokenExpired.
func TestTokenExpired(t *testing.T) {
	s := NewTokenService(testSecret)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	token, err := s.Issue("admin", time.Hour)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// Still valid just before expiry
	s.now = func() time.Time { return base.Add(59 * time.Minute) }
	if _, err := s.Validate(token); err != nil {
		t.Fatalf("expected token to be valid before expiry, got %v", err)
	}

	// Rejected after expiry
	s.now = func() time.Time { return base.Add(2 * time.Hour) }
	if _, err := s.Validate(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

// TestTokenWrongSecret verifies a token signed with another secret is
// rejected with ErrTokenSignature.
func TestTokenWrongSecret(t *testing.T) {
	other := NewTokenService([]byte("another-secret-another-secret-32"))
	token, err := other.Issue("admin", time.Hour)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	s := NewTokenService(testSecret)
	if _, err := s.Validate(token); !errors.Is(err, ErrTokenSignature) {
		t.Errorf("expected ErrTokenSignature, got %v", err)
	}
}

// TestTokenMalformed verifies garbage input is rejected with ErrTokenMalformed.
func TestTokenMalformed(t *testing.T) {
	s := NewTokenService(testSecret)

	for _, token := range []string{"", "garbage", "a.b.c", "only.twoparts"} {
		if _, err := s.Validate(token); !errors.Is(err, ErrTokenMalformed) {
			t.Errorf("Validate(%q): expected ErrTokenMalformed, got %v", token, err)
		}
	}
}

// TestTokenMissingExpiry verifies a signed token without an exp claim is
// rejected rather than treated as immortal.
func TestTokenMissingExpiry(t *testing.T) {
	s := NewTokenService(testSecret)

	claims := jwt.RegisteredClaims{
		Subject: "admin",
		Issuer:  tokenIssuer,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	if _, err := s.Validate(token); !errors.Is(err, ErrTokenMalformed) {
		t.Errorf("expected ErrTokenMalformed, got %v", err)
	}
}

// TestTokensIndependent verifies issuing a second token does not invalidate
// the first.
func TestTokensIndependent(t *testing.T) {
	s := NewTokenService(testSecret)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	first, err := s.Issue("admin", time.Hour)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	s.now = func() time.Time { return base.Add(time.Minute) }
	second, err := s.Issue("admin", time.Hour)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if first == second {
		t.Errorf("expected distinct tokens for separate logins")
	}

	for _, token := range []string{first, second} {
		if _, err := s.Validate(token); err != nil {
			t.Errorf("expected token to remain valid, got %v", err)
		}
	}
}
