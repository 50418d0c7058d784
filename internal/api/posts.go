package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rudimedia/site-api/internal/content"
)

// handleListPosts returns published posts, newest first.
// GET /api/blog/posts
//
// Drafts are never exposed here; admins list everything through
// GET /api/admin/posts instead.
func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.posts.List(r.Context(), true)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

// handleGetPost returns a single post by ID.
// GET /api/blog/posts/{postID}
func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	post, err := s.posts.Get(r.Context(), chi.URLParam(r, "postID"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// handleGetPostBySlug returns a single post by slug.
// GET /api/blog/posts/slug/{slug}
func (s *Server) handleGetPostBySlug(w http.ResponseWriter, r *http.Request) {
	post, err := s.posts.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// handleListAllPosts returns all posts including drafts.
// GET /api/admin/posts
func (s *Server) handleListAllPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.posts.List(r.Context(), false)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

// CreatePostRequest is the request body for POST /api/admin/posts
type CreatePostRequest struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Excerpt   string   `json:"excerpt"`
	Author    string   `json:"author"`
	Tags      []string `json:"tags"`
	Published *bool    `json:"published"`
}

// handleCreatePost creates a new blog post with a unique slug.
// POST /api/admin/posts
func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid JSON")
		return
	}

	published := true
	if req.Published != nil {
		published = *req.Published
	}

	in := content.CreateInput{
		Title:     req.Title,
		Content:   req.Content,
		Excerpt:   req.Excerpt,
		Author:    req.Author,
		Tags:      req.Tags,
		Published: published,
	}

	if err := in.Validate(); err != nil {
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}

	post, err := s.posts.Create(r.Context(), in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, post)
}

// UpdatePostRequest is the request body for PUT /api/admin/posts/{postID}.
// Absent fields are left unchanged.
type UpdatePostRequest struct {
	Title     *string  `json:"title"`
	Content   *string  `json:"content"`
	Excerpt   *string  `json:"excerpt"`
	Tags      []string `json:"tags"`
	Published *bool    `json:"published"`
}

// handleUpdatePost updates a blog post. The slug changes only when the
// title does.
// PUT /api/admin/posts/{postID}
func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	var req UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid JSON")
		return
	}

	if req.Title != nil && *req.Title == "" {
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "title cannot be empty")
		return
	}

	post, err := s.posts.Update(r.Context(), chi.URLParam(r, "postID"), content.UpdateInput{
		Title:     req.Title,
		Content:   req.Content,
		Excerpt:   req.Excerpt,
		Tags:      req.Tags,
		Published: req.Published,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// handleDeletePost deletes a blog post.
// DELETE /api/admin/posts/{postID}
func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	if err := s.posts.Delete(r.Context(), chi.URLParam(r, "postID")); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "post deleted"})
}
