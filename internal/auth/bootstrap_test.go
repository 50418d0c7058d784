package auth

import (
	"context"
	"testing"

	"github.com/rudimedia/site-api/internal/storage"
	"github.com/rudimedia/site-api/internal/testutil/mockstore"
)

// TestEnsureAdminCreates verifies a missing account is created with a
// verifiable password hash.
func TestEnsureAdminCreates(t *testing.T) {
	var storedHash string
	store := &mockstore.MockStorage{
		CreateAdminFunc: func(_ context.Context, username, passwordHash string) (*storage.Admin, error) {
			storedHash = passwordHash
			return &storage.Admin{ID: 1, Username: username, PasswordHash: passwordHash, IsActive: true}, nil
		},
	}

	b := NewBootstrapService(store, nil)

	created, err := b.EnsureAdmin(context.Background(), "admin", "admin123")
	if err != nil {
		t.Fatalf("EnsureAdmin failed: %v", err)
	}
	if !created {
		t.Errorf("expected account to be created")
	}

	ok, err := VerifyPassword("admin123", storedHash)
	if err != nil || !ok {
		t.Errorf("expected stored hash to verify the password, ok=%v err=%v", ok, err)
	}
}

// TestEnsureAdminIdempotent verifies an existing account is left untouched.
func TestEnsureAdminIdempotent(t *testing.T) {
	createCalled := false
	store := &mockstore.MockStorage{
		GetAdminByUsernameFunc: func(_ context.Context, u string) (*storage.Admin, error) {
			return &storage.Admin{ID: 1, Username: u, PasswordHash: "existing-hash", IsActive: true}, nil
		},
		CreateAdminFunc: func(_ context.Context, username, passwordHash string) (*storage.Admin, error) {
			createCalled = true
			return nil, nil
		},
	}

	b := NewBootstrapService(store, nil)

	created, err := b.EnsureAdmin(context.Background(), "admin", "new-password")
	if err != nil {
		t.Fatalf("EnsureAdmin failed: %v", err)
	}
	if created {
		t.Errorf("expected no account to be created")
	}
	if createCalled {
		t.Errorf("expected CreateAdmin not to be called for an existing account")
	}
}

// TestEnsureAdminLostRace verifies a concurrent bootstrap winning the insert
// is treated as the account already existing.
func TestEnsureAdminLostRace(t *testing.T) {
	store := &mockstore.MockStorage{
		CreateAdminFunc: func(_ context.Context, _, _ string) (*storage.Admin, error) {
			return nil, storage.ErrDuplicate
		},
	}

	b := NewBootstrapService(store, nil)

	created, err := b.EnsureAdmin(context.Background(), "admin", "admin123")
	if err != nil {
		t.Fatalf("EnsureAdmin failed: %v", err)
	}
	if created {
		t.Errorf("expected lost race to count as existing account")
	}
}
