// Package content implements blog post management with unique slug
// assignment.
package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rudimedia/site-api/internal/metrics"
	"github.com/rudimedia/site-api/internal/slug"
	"github.com/rudimedia/site-api/internal/storage"
)

// writeAttempts bounds how often a write is retried with a freshly
// allocated slug after losing a slug race at the storage layer.
const writeAttempts = 3

// defaultAuthor is attached to posts created without an explicit author.
const defaultAuthor = "Arjanit Rudi"

// Store is the subset of storage needed for post management.
type Store interface {
	CreatePost(ctx context.Context, post *storage.Post) error
	GetPost(ctx context.Context, id string) (*storage.Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*storage.Post, error)
	ListPosts(ctx context.Context, publishedOnly bool) ([]*storage.Post, error)
	UpdatePost(ctx context.Context, post *storage.Post) error
	DeletePost(ctx context.Context, id string) error
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
}

// Service manages blog posts.
type Service struct {
	store  Store
	slugs  *slug.Allocator
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a content Service. The slug allocator must share the
// same store so uniqueness checks see all live posts.
func NewService(store Store, slugs *slug.Allocator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  store,
		slugs:  slugs,
		logger: logger,
		now:    time.Now,
	}
}

// CreateInput holds the caller-supplied fields for a new post.
type CreateInput struct {
	Title     string
	Content   string
	Excerpt   string
	Author    string
	Tags      []string
	Published bool
}

// UpdateInput holds optional field updates. Nil fields are left unchanged.
type UpdateInput struct {
	Title     *string
	Content   *string
	Excerpt   *string
	Tags      []string
	Published *bool
}

// Create stores a new post with a freshly allocated slug.
//
// The allocator's uniqueness read and the insert are two steps, so a
// concurrent create may win the slug in between. The UNIQUE constraint on
// the slug column catches that at write time, and the slug is re-allocated
// rather than surfacing the storage error.
func (s *Service) Create(ctx context.Context, in CreateInput) (*storage.Post, error) {
	author := in.Author
	if author == "" {
		author = defaultAuthor
	}

	for attempt := 0; attempt < writeAttempts; attempt++ {
		sl, err := s.slugs.Allocate(ctx, in.Title, "")
		if err != nil {
			return nil, err
		}

		now := s.now().UTC()
		post := &storage.Post{
			ID:        uuid.NewString(),
			Title:     in.Title,
			Content:   in.Content,
			Excerpt:   in.Excerpt,
			Author:    author,
			Slug:      sl,
			Published: in.Published,
			Tags:      in.Tags,
			CreatedAt: now,
			UpdatedAt: now,
		}

		err = s.store.CreatePost(ctx, post)
		if errors.Is(err, storage.ErrDuplicate) {
			metrics.RecordSlugCollision()
			s.logger.Debug("lost slug race, re-allocating", "slug", sl, "attempt", attempt+1)
			continue
		}
		if err != nil {
			return nil, err
		}

		return post, nil
	}

	return nil, slug.ErrExhausted
}

// Update applies the given field changes to a post. The slug is re-derived
// only when the title actually changes; the uniqueness check then excludes
// the post's own ID so an unchanged effective slug is kept.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*storage.Post, error) {
	post, err := s.store.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}

	titleChanged := in.Title != nil && *in.Title != post.Title

	if in.Title != nil {
		post.Title = *in.Title
	}
	if in.Content != nil {
		post.Content = *in.Content
	}
	if in.Excerpt != nil {
		post.Excerpt = *in.Excerpt
	}
	if in.Tags != nil {
		post.Tags = in.Tags
	}
	if in.Published != nil {
		post.Published = *in.Published
	}

	for attempt := 0; attempt < writeAttempts; attempt++ {
		if titleChanged {
			sl, err := s.slugs.Allocate(ctx, post.Title, post.ID)
			if err != nil {
				return nil, err
			}
			post.Slug = sl
		}

		post.UpdatedAt = s.now().UTC()

		err = s.store.UpdatePost(ctx, post)
		if errors.Is(err, storage.ErrDuplicate) && titleChanged {
			metrics.RecordSlugCollision()
			s.logger.Debug("lost slug race on update, re-allocating", "slug", post.Slug, "attempt", attempt+1)
			continue
		}
		if err != nil {
			return nil, err
		}

		return post, nil
	}

	return nil, slug.ErrExhausted
}

// Delete removes a post by ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.DeletePost(ctx, id)
}

// Get retrieves a post by ID.
func (s *Service) Get(ctx context.Context, id string) (*storage.Post, error) {
	return s.store.GetPost(ctx, id)
}

// GetBySlug retrieves a post by slug.
func (s *Service) GetBySlug(ctx context.Context, sl string) (*storage.Post, error) {
	return s.store.GetPostBySlug(ctx, sl)
}

// List returns posts newest first. publishedOnly hides drafts.
func (s *Service) List(ctx context.Context, publishedOnly bool) ([]*storage.Post, error) {
	return s.store.ListPosts(ctx, publishedOnly)
}

// validate input sizes at the service boundary so every transport shares
// the same limits.
const (
	maxTitleLen   = 300
	maxContentLen = 1 << 20 // 1 MiB of HTML
)

// Validate checks a CreateInput for obviously bad field values.
func (in CreateInput) Validate() error {
	if in.Title == "" {
		return fmt.Errorf("title is required")
	}
	if len(in.Title) > maxTitleLen {
		return fmt.Errorf("title exceeds %d characters", maxTitleLen)
	}
	if in.Content == "" {
		return fmt.Errorf("content is required")
	}
	if len(in.Content) > maxContentLen {
		return fmt.Errorf("content too large")
	}
	return nil
}
