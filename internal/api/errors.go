package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rudimedia/site-api/internal/slug"
	"github.com/rudimedia/site-api/internal/storage"
)

// Standard error codes for API responses.
const (
	// ErrCodeInvalidRequest indicates a malformed request body.
	ErrCodeInvalidRequest = "invalid_request"

	// ErrCodeInvalidCredentials indicates a failed login attempt.
	ErrCodeInvalidCredentials = "invalid_credentials"

	// ErrCodeUnauthorized indicates a rejected bearer token.
	ErrCodeUnauthorized = "unauthorized"

	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound = "not_found"

	// ErrCodeInternalError indicates a server error.
	ErrCodeInternalError = "internal_error"
)

// APIError is the standard error response format for JSON APIs.
type APIError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteError writes a JSON error response with the given status code, error code, and message.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := APIError{
		Error:   code,
		Message: message,
	}
	// Encoding errors are not critical since headers are already sent
	encErr := json.NewEncoder(w).Encode(resp)
	if encErr != nil {
		_ = encErr
	}
}

// writeJSON writes a JSON success response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encErr := json.NewEncoder(w).Encode(v)
	if encErr != nil {
		_ = encErr
	}
}

// writeServiceError maps service-layer failures onto HTTP responses.
// Slug exhaustion and hash corruption are server faults: they are logged
// with full context and reported as plain 500s.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		WriteError(w, http.StatusNotFound, ErrCodeNotFound, "resource not found")
	case errors.Is(err, slug.ErrExhausted):
		s.logger.Error("slug allocation exhausted",
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		WriteError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal error")
	default:
		s.logger.Error("request failed",
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		WriteError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal error")
	}
}
