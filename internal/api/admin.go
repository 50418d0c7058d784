package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rudimedia/site-api/internal/auth"
	"github.com/rudimedia/site-api/internal/metrics"
)

// LoginRequest is the request body for POST /api/admin/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// handleLogin authenticates an admin and issues a bearer token.
// POST /api/admin/login
//
// Every credential failure returns the same 401 body; unknown usernames
// are not distinguishable from wrong passwords.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid JSON")
		return
	}

	if req.Username == "" || req.Password == "" {
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "username and password required")
		return
	}

	admin, err := s.auth.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			metrics.RecordAuthFailure("invalid_credentials")
			WriteError(w, http.StatusUnauthorized, ErrCodeInvalidCredentials, "invalid credentials")
			return
		}
		// Corrupt hash or storage failure: server fault
		s.logger.Error("login failed", slog.Any("error", err))
		WriteError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal error")
		return
	}

	token, err := s.tokens.Issue(admin.Username, s.tokenTTL)
	if err != nil {
		s.logger.Error("failed to issue token", slog.Any("error", err))
		WriteError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.tokenTTL.Seconds()),
	})
}

// WhoamiResponse describes the authorized admin.
type WhoamiResponse struct {
	Username string `json:"username"`
	IsActive bool   `json:"is_active"`
}

// handleWhoami returns the identity behind the presented token.
// GET /api/admin/me
func (s *Server) handleWhoami(w http.ResponseWriter, r *http.Request) {
	admin := auth.AdminFromContext(r.Context())
	if admin == nil {
		// The guard middleware always sets this; reaching here means the
		// route was wired without it.
		WriteError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, WhoamiResponse{
		Username: admin.Username,
		IsActive: admin.IsActive,
	})
}

// handleListContacts returns all contact form entries.
// GET /api/admin/contacts
func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := s.contacts.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, contacts)
}

// SetLogLevelRequest is the request body for POST /api/admin/loglevel
type SetLogLevelRequest struct {
	Level string `json:"level"`
}

// handleSetLogLevel changes the runtime log level.
// POST /api/admin/loglevel
// Body: {"level": "debug|info|warn|error"}
func (s *Server) handleSetLogLevel(w http.ResponseWriter, r *http.Request) {
	var req SetLogLevelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid JSON")
		return
	}

	var level slog.Level
	switch req.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid level (must be: debug, info, warn, error)")
		return
	}

	s.logLevel.Set(level)
	s.logger.Info("log level changed", "new_level", req.Level)

	writeJSON(w, http.StatusOK, map[string]string{"level": req.Level})
}
