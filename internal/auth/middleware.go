package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rudimedia/site-api/internal/metrics"
)

// Middleware returns Chi-compatible middleware that gates a route subtree
// behind the AccessGuard. A missing token yields 403, any rejected token
// yields 401, and the authorized admin is attached to the request context.
func Middleware(guard *AccessGuard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)

			admin, err := guard.Authorize(r.Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, ErrMissingCredential):
					metrics.RecordAuthFailure("missing_credential")
					writeJSONError(w, http.StatusForbidden, "authentication required")
				case errors.Is(err, ErrUnauthorized):
					metrics.RecordAuthFailure("unauthorized")
					writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
				default:
					writeJSONError(w, http.StatusInternalServerError, "internal error")
				}
				return
			}

			ctx := WithAdmin(r.Context(), admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken gets the token from an "Authorization: Bearer <token>" header.
func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// writeJSONError writes a JSON error response.
func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(map[string]string{"error": message})
	if err != nil {
		// Encoding errors are not critical for error responses
		_ = err
	}
}
