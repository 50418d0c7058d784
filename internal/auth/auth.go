package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/rudimedia/site-api/internal/storage"
)

// ErrInvalidCredentials is the single failure returned for every login
// problem: unknown username, wrong password, or inactive account. Callers
// must not be able to tell these apart, by message or by timing.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// IdentityStore is the subset of storage needed to resolve admin identities.
type IdentityStore interface {
	GetAdminByUsername(ctx context.Context, username string) (*storage.Admin, error)
}

// dummyHash is a valid bcrypt hash (cost 12) of a throwaway value. When a
// login names an unknown username, we verify the supplied password against
// this hash so the request costs one bcrypt comparison either way.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// Authenticator verifies admin login attempts.
type Authenticator struct {
	store  IdentityStore
	logger *slog.Logger
}

// NewAuthenticator creates an Authenticator.
func NewAuthenticator(store IdentityStore, logger *slog.Logger) *Authenticator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Authenticator{store: store, logger: logger}
}

// Authenticate checks a username/password pair and returns the admin
// identity on success. All credential failures return ErrInvalidCredentials.
// A corrupt stored hash is surfaced as a server fault, not a user error.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (*storage.Admin, error) {
	admin, err := a.store.GetAdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Burn a bcrypt comparison so unknown usernames take as
			// long as wrong passwords.
			_, _ = VerifyPassword(password, dummyHash)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := VerifyPassword(password, admin.PasswordHash)
	if err != nil {
		a.logger.Error("stored password hash is corrupt",
			"username", username,
			"admin_id", admin.ID,
			"error", err,
		)
		return nil, err
	}

	if !ok || !admin.IsActive {
		return nil, ErrInvalidCredentials
	}

	return admin, nil
}
