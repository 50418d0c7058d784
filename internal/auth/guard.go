package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/rudimedia/site-api/internal/storage"
)

var (
	// ErrMissingCredential indicates no bearer token was presented.
	ErrMissingCredential = errors.New("auth: missing credential")

	// ErrUnauthorized is the unified external-facing error for every token
	// problem: malformed, bad signature, expired, or an identity that no
	// longer exists or is inactive.
	ErrUnauthorized = errors.New("auth: unauthorized")
)

// AccessGuard authorizes incoming requests as an active admin. It is the
// sole gate for every admin-only operation.
type AccessGuard struct {
	tokens *TokenService
	store  IdentityStore
	logger *slog.Logger
}

// NewAccessGuard creates an AccessGuard.
func NewAccessGuard(tokens *TokenService, store IdentityStore, logger *slog.Logger) *AccessGuard {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccessGuard{tokens: tokens, store: store, logger: logger}
}

// Authorize validates a bearer token and re-fetches the admin it names.
// Token claims are not trusted for currency: the identity's live state
// always wins, so a disabled account is rejected even while its tokens
// are still validly signed and unexpired.
func (g *AccessGuard) Authorize(ctx context.Context, bearerToken string) (*storage.Admin, error) {
	if bearerToken == "" {
		return nil, ErrMissingCredential
	}

	claims, err := g.tokens.Validate(bearerToken)
	if err != nil {
		// The variant is logged for operators but never exposed.
		g.logger.Debug("token rejected", "reason", err)
		return nil, ErrUnauthorized
	}

	admin, err := g.store.GetAdminByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			g.logger.Debug("token subject no longer exists", "subject", claims.Subject)
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	if !admin.IsActive {
		g.logger.Debug("token subject is inactive", "subject", claims.Subject)
		return nil, ErrUnauthorized
	}

	return admin, nil
}
