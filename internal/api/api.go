// Package api assembles the HTTP surface of the site backend: public blog
// and contact endpoints plus the admin API behind the access guard.
package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/rudimedia/site-api/internal/auth"
	"github.com/rudimedia/site-api/internal/contact"
	"github.com/rudimedia/site-api/internal/content"
)

const version = "1.0.0"

// Pinger is the storage health probe used by the readiness endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config carries the collaborators for a Server. All services are
// constructed by the caller; the server owns no global state.
type Config struct {
	Posts       *content.Service
	Contacts    *contact.Service
	Auth        *auth.Authenticator
	Guard       *auth.AccessGuard
	Tokens      *auth.TokenService
	TokenTTL    time.Duration
	Uploads     UploadStore
	Pinger      Pinger
	CORSOrigins []string
	Logger      *slog.Logger
	LogLevel    *slog.LevelVar
}

// Server holds the HTTP handlers.
type Server struct {
	posts       *content.Service
	contacts    *contact.Service
	auth        *auth.Authenticator
	guard       *auth.AccessGuard
	tokens      *auth.TokenService
	tokenTTL    time.Duration
	uploads     UploadStore
	pinger      Pinger
	corsOrigins []string
	logger      *slog.Logger
	logLevel    *slog.LevelVar
}

// NewServer creates a Server from its collaborators.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logLevel := cfg.LogLevel
	if logLevel == nil {
		logLevel = new(slog.LevelVar)
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &Server{
		posts:       cfg.Posts,
		contacts:    cfg.Contacts,
		auth:        cfg.Auth,
		guard:       cfg.Guard,
		tokens:      cfg.Tokens,
		tokenTTL:    ttl,
		uploads:     cfg.Uploads,
		pinger:      cfg.Pinger,
		corsOrigins: cfg.CORSOrigins,
		logger:      logger,
		logLevel:    logLevel,
	}
}
