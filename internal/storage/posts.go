package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// CreatePost inserts a new blog post.
// Returns ErrDuplicate if the slug is already taken; callers are expected
// to re-allocate the slug and retry rather than surface this error.
func (s *SQLiteStorage) CreatePost(ctx context.Context, post *Post) error {
	tagsJSON, err := marshalStringArray(post.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO posts (id, title, content, excerpt, author, slug, published, tags, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		post.ID, post.Title, post.Content, post.Excerpt, post.Author,
		post.Slug, post.Published, string(tagsJSON), post.CreatedAt, post.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

// GetPost retrieves a post by ID.
// Returns ErrNotFound if the post doesn't exist.
func (s *SQLiteStorage) GetPost(ctx context.Context, id string) (*Post, error) {
	return s.getPost(ctx, "id", id)
}

// GetPostBySlug retrieves a post by its slug.
// Returns ErrNotFound if the slug doesn't exist.
func (s *SQLiteStorage) GetPostBySlug(ctx context.Context, slug string) (*Post, error) {
	return s.getPost(ctx, "slug", slug)
}

// ListPosts returns posts ordered newest first.
// When publishedOnly is true, drafts are excluded.
// Returns empty slice if no posts exist.
func (s *SQLiteStorage) ListPosts(ctx context.Context, publishedOnly bool) ([]*Post, error) {
	query := "SELECT id, title, content, excerpt, author, slug, published, tags, created_at, updated_at FROM posts"
	if publishedOnly {
		query += " WHERE published = TRUE"
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var posts []*Post

	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}

	// Return empty slice instead of nil
	if posts == nil {
		posts = make([]*Post, 0)
	}

	return posts, nil
}

// UpdatePost replaces all mutable fields of a post.
// Returns ErrNotFound if the post doesn't exist and ErrDuplicate if the
// new slug collides with another post.
func (s *SQLiteStorage) UpdatePost(ctx context.Context, post *Post) error {
	tagsJSON, err := marshalStringArray(post.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE posts SET title = ?, content = ?, excerpt = ?, author = ?, slug = ?, published = ?, tags = ?, updated_at = ?
		 WHERE id = ?`,
		post.Title, post.Content, post.Excerpt, post.Author, post.Slug,
		post.Published, string(tagsJSON), post.UpdatedAt, post.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to update post: %w", err)
	}

	return requireRowAffected(result)
}

// DeletePost deletes a post by ID.
// Returns ErrNotFound if the post doesn't exist.
func (s *SQLiteStorage) DeletePost(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM posts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	return requireRowAffected(result)
}

// SlugExists reports whether any post other than excludeID holds the slug.
// Pass an empty excludeID when creating a new post.
//
// This is an advisory read: the UNIQUE constraint on posts.slug remains
// the authority, and concurrent writers are resolved at insert time.
func (s *SQLiteStorage) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var count int64

	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM posts WHERE slug = ? AND id != ?",
		slug, excludeID).
		Scan(&count)

	if err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}

	return count > 0, nil
}

// postScanner is satisfied by both *sql.Row and *sql.Rows.
type postScanner interface {
	Scan(dest ...any) error
}

func scanPost(row postScanner) (*Post, error) {
	var p Post
	var tagsJSON string

	err := row.Scan(&p.ID, &p.Title, &p.Content, &p.Excerpt, &p.Author,
		&p.Slug, &p.Published, &tagsJSON, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := unmarshalStringArray(tagsJSON, &p.Tags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
	}

	return &p, nil
}

func (s *SQLiteStorage) getPost(ctx context.Context, column, value string) (*Post, error) {
	query := "SELECT id, title, content, excerpt, author, slug, published, tags, created_at, updated_at FROM posts WHERE " + column + " = ?"

	post, err := scanPost(s.db.QueryRowContext(ctx, query, value))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return post, nil
}

// marshalStringArray is a helper to marshal a string array to JSON.
func marshalStringArray(arr []string) ([]byte, error) {
	if arr == nil {
		arr = []string{}
	}
	return json.Marshal(arr)
}

// unmarshalStringArray is a helper to unmarshal a JSON string array.
func unmarshalStringArray(data string, arr *[]string) error {
	return json.Unmarshal([]byte(data), arr)
}
