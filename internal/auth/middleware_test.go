package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// newTestHandler wraps a trivial handler with the guard middleware.
func newTestHandler(t *testing.T, g *AccessGuard) http.Handler {
	t.Helper()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		admin := AdminFromContext(r.Context())
		if admin == nil {
			t.Errorf("expected admin in request context")
		}
		w.WriteHeader(http.StatusOK)
	})

	return Middleware(g)(next)
}

// TestMiddlewareMissingToken verifies an absent Authorization header yields 403.
func TestMiddlewareMissingToken(t *testing.T) {
	tokens := NewTokenService(testSecret)
	g := NewAccessGuard(tokens, newIdentityStore("admin", "h", true), nil)
	handler := newTestHandler(t, g)

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic YWRtaW46YWRtaW4="},
		{"bare scheme", "Bearer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusForbidden {
				t.Errorf("expected status 403, got %d", rec.Code)
			}
		})
	}
}

// TestMiddlewareInvalidToken verifies rejected tokens yield 401.
func TestMiddlewareInvalidToken(t *testing.T) {
	tokens := NewTokenService(testSecret)
	g := NewAccessGuard(tokens, newIdentityStore("admin", "h", true), nil)
	handler := newTestHandler(t, g)

	expired := NewTokenService(testSecret)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.Issue("admin", time.Hour)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage token", "garbage"},
		{"expired token", expiredToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected status 401, got %d", rec.Code)
			}
		})
	}
}

// TestMiddlewareValidToken verifies a valid token reaches the handler with
// the admin attached to the context.
func TestMiddlewareValidToken(t *testing.T) {
	tokens := NewTokenService(testSecret)
	g := NewAccessGuard(tokens, newIdentityStore("admin", "h", true), nil)
	handler := newTestHandler(t, g)

	token, err := tokens.Issue("admin", time.Hour)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
}
