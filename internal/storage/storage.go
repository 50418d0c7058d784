// Package storage provides types and interfaces for SQLite persistence operations.
package storage

import (
	"context"
)

// Storage defines the interface for SQLite persistence operations.
type Storage interface {
	// Admin operations
	CreateAdmin(ctx context.Context, username, passwordHash string) (*Admin, error)
	GetAdminByUsername(ctx context.Context, username string) (*Admin, error)
	UpdateAdminPassword(ctx context.Context, id int64, passwordHash string) error
	SetAdminActive(ctx context.Context, id int64, active bool) error

	// Post operations
	CreatePost(ctx context.Context, post *Post) error
	GetPost(ctx context.Context, id string) (*Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*Post, error)
	ListPosts(ctx context.Context, publishedOnly bool) ([]*Post, error)
	UpdatePost(ctx context.Context, post *Post) error
	DeletePost(ctx context.Context, id string) error
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)

	// Contact operations
	CreateContact(ctx context.Context, contact *Contact) error
	ListContacts(ctx context.Context) ([]*Contact, error)

	// Lifecycle
	Ping(ctx context.Context) error
	Close() error
}
