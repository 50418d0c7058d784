// Package mockstore provides a configurable mock implementation of storage interfaces for testing.
//
// The MockStorage type uses function fields for each method, allowing tests to customize behavior
// as needed while providing sensible defaults for methods that aren't customized.
package mockstore

import (
	"context"

	"github.com/rudimedia/site-api/internal/storage"
)

// MockStorage is a configurable mock implementation of storage.Storage.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a sensible default value.
type MockStorage struct {
	// Admin operations
	CreateAdminFunc         func(ctx context.Context, username, passwordHash string) (*storage.Admin, error)
	GetAdminByUsernameFunc  func(ctx context.Context, username string) (*storage.Admin, error)
	UpdateAdminPasswordFunc func(ctx context.Context, id int64, passwordHash string) error
	SetAdminActiveFunc      func(ctx context.Context, id int64, active bool) error

	// Post operations
	CreatePostFunc    func(ctx context.Context, post *storage.Post) error
	GetPostFunc       func(ctx context.Context, id string) (*storage.Post, error)
	GetPostBySlugFunc func(ctx context.Context, slug string) (*storage.Post, error)
	ListPostsFunc     func(ctx context.Context, publishedOnly bool) ([]*storage.Post, error)
	UpdatePostFunc    func(ctx context.Context, post *storage.Post) error
	DeletePostFunc    func(ctx context.Context, id string) error
	SlugExistsFunc    func(ctx context.Context, slug, excludeID string) (bool, error)

	// Contact operations
	CreateContactFunc func(ctx context.Context, contact *storage.Contact) error
	ListContactsFunc  func(ctx context.Context) ([]*storage.Contact, error)

	// Lifecycle
	PingFunc  func(ctx context.Context) error
	CloseFunc func() error
}

// CreateAdmin creates a new admin account.
func (m *MockStorage) CreateAdmin(ctx context.Context, username, passwordHash string) (*storage.Admin, error) {
	if m.CreateAdminFunc != nil {
		return m.CreateAdminFunc(ctx, username, passwordHash)
	}
	return &storage.Admin{ID: 1, Username: username, PasswordHash: passwordHash, IsActive: true}, nil
}

// GetAdminByUsername retrieves an admin by username.
func (m *MockStorage) GetAdminByUsername(ctx context.Context, username string) (*storage.Admin, error) {
	if m.GetAdminByUsernameFunc != nil {
		return m.GetAdminByUsernameFunc(ctx, username)
	}
	return nil, storage.ErrNotFound
}

// UpdateAdminPassword replaces an admin's password hash.
func (m *MockStorage) UpdateAdminPassword(ctx context.Context, id int64, passwordHash string) error {
	if m.UpdateAdminPasswordFunc != nil {
		return m.UpdateAdminPasswordFunc(ctx, id, passwordHash)
	}
	return nil
}

// SetAdminActive enables or disables an admin account.
func (m *MockStorage) SetAdminActive(ctx context.Context, id int64, active bool) error {
	if m.SetAdminActiveFunc != nil {
		return m.SetAdminActiveFunc(ctx, id, active)
	}
	return nil
}

// CreatePost stores a new post.
func (m *MockStorage) CreatePost(ctx context.Context, post *storage.Post) error {
	if m.CreatePostFunc != nil {
		return m.CreatePostFunc(ctx, post)
	}
	return nil
}

// GetPost retrieves a post by ID.
func (m *MockStorage) GetPost(ctx context.Context, id string) (*storage.Post, error) {
	if m.GetPostFunc != nil {
		return m.GetPostFunc(ctx, id)
	}
	return nil, storage.ErrNotFound
}

// GetPostBySlug retrieves a post by slug.
func (m *MockStorage) GetPostBySlug(ctx context.Context, slug string) (*storage.Post, error) {
	if m.GetPostBySlugFunc != nil {
		return m.GetPostBySlugFunc(ctx, slug)
	}
	return nil, storage.ErrNotFound
}

// ListPosts retrieves posts, optionally restricted to published ones.
func (m *MockStorage) ListPosts(ctx context.Context, publishedOnly bool) ([]*storage.Post, error) {
	if m.ListPostsFunc != nil {
		return m.ListPostsFunc(ctx, publishedOnly)
	}
	return []*storage.Post{}, nil
}

// UpdatePost replaces a stored post.
func (m *MockStorage) UpdatePost(ctx context.Context, post *storage.Post) error {
	if m.UpdatePostFunc != nil {
		return m.UpdatePostFunc(ctx, post)
	}
	return nil
}

// DeletePost deletes a post by ID.
func (m *MockStorage) DeletePost(ctx context.Context, id string) error {
	if m.DeletePostFunc != nil {
		return m.DeletePostFunc(ctx, id)
	}
	return nil
}

// SlugExists reports whether another post already holds the slug.
func (m *MockStorage) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	if m.SlugExistsFunc != nil {
		return m.SlugExistsFunc(ctx, slug, excludeID)
	}
	return false, nil
}

// CreateContact stores a contact form entry.
func (m *MockStorage) CreateContact(ctx context.Context, contact *storage.Contact) error {
	if m.CreateContactFunc != nil {
		return m.CreateContactFunc(ctx, contact)
	}
	return nil
}

// ListContacts retrieves all contact entries.
func (m *MockStorage) ListContacts(ctx context.Context) ([]*storage.Contact, error) {
	if m.ListContactsFunc != nil {
		return m.ListContactsFunc(ctx)
	}
	return []*storage.Contact{}, nil
}

// Ping verifies database connectivity.
func (m *MockStorage) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

// Close closes the storage connection.
func (m *MockStorage) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}
