package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// TestMaxBodySizeAllowsSmallBody verifies bodies under the limit pass.
func TestMaxBodySizeAllowsSmallBody(t *testing.T) {
	handler := MaxBodySize(1024)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("unexpected read error: %v", err)
		}
		if len(body) != 10 {
			t.Errorf("expected 10 bytes, got %d", len(body))
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/", strings.NewReader("0123456789"))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
}

// TestMaxBodySizeRejectsLargeBody verifies reads past the limit fail.
func TestMaxBodySizeRejectsLargeBody(t *testing.T) {
	handler := MaxBodySize(16)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := io.ReadAll(r.Body)
		if err == nil {
			t.Errorf("expected read past the limit to fail")
		}
		// MaxBytesReader has already written 413 to the response
	}))

	req := httptest.NewRequest("POST", "/", strings.NewReader(strings.Repeat("a", 64)))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
}
