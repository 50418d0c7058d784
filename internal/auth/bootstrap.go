package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/rudimedia/site-api/internal/storage"
)

// BootstrapStore is the subset of storage needed to bootstrap an admin.
type BootstrapStore interface {
	GetAdminByUsername(ctx context.Context, username string) (*storage.Admin, error)
	CreateAdmin(ctx context.Context, username, passwordHash string) (*storage.Admin, error)
}

// BootstrapService creates the initial admin account. It never runs as an
// implicit side effect of server start; the operator invokes it explicitly.
type BootstrapService struct {
	store  BootstrapStore
	logger *slog.Logger
}

// NewBootstrapService creates a BootstrapService.
func NewBootstrapService(store BootstrapStore, logger *slog.Logger) *BootstrapService {
	if logger == nil {
		logger = slog.Default()
	}
	return &BootstrapService{store: store, logger: logger}
}

// EnsureAdmin creates the named admin account if it does not exist.
// Idempotent: an existing account is left untouched, including its
// password. Returns true when an account was created.
func (b *BootstrapService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	_, err := b.store.GetAdminByUsername(ctx, username)
	if err == nil {
		b.logger.Info("admin account already exists, skipping bootstrap", "username", username)
		return false, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return false, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return false, err
	}

	if _, err := b.store.CreateAdmin(ctx, username, hash); err != nil {
		// A concurrent bootstrap may have won the race; that still counts
		// as the account existing.
		if errors.Is(err, storage.ErrDuplicate) {
			return false, nil
		}
		return false, err
	}

	b.logger.Info("admin account created", "username", username)
	return true, nil
}
