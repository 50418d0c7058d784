package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// UploadStore persists uploaded files and resolves them for serving.
type UploadStore interface {
	// Save stores the content of r under a fresh name with the given
	// extension and returns that name.
	Save(ctx context.Context, ext string, r io.Reader) (string, error)

	// Path resolves a stored file name to a filesystem path. It returns
	// an error for names that would escape the upload directory.
	Path(name string) (string, error)
}

// DiskUploadStore stores uploads as flat files in a single directory.
type DiskUploadStore struct {
	dir string
}

// NewDiskUploadStore creates the upload directory if needed.
func NewDiskUploadStore(dir string) (*DiskUploadStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &DiskUploadStore{dir: dir}, nil
}

// Save writes the reader's content to a new uuid-named file.
func (d *DiskUploadStore) Save(_ context.Context, ext string, r io.Reader) (string, error) {
	name := uuid.NewString() + ext
	path := filepath.Join(d.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	return name, nil
}

// Path rejects anything that is not a bare file name.
func (d *DiskUploadStore) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("invalid file name")
	}
	return filepath.Join(d.dir, name), nil
}

// imageExtensions maps the accepted upload content types to the file
// extension stored on disk.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// UploadResponse points at the stored file.
type UploadResponse struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// handleUpload stores an image from a multipart form.
// POST /api/admin/uploads, field name "file".
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "missing file field")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	ext, ok := imageExtensions[contentType]
	if !ok {
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "unsupported file type (must be jpeg, png, gif or webp)")
		return
	}

	name, err := s.uploads.Save(r.Context(), ext, file)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, UploadResponse{
		Filename: name,
		URL:      "/uploads/" + name,
	})
}

// handleServeUpload serves a stored upload.
// GET /uploads/{file}
func (s *Server) handleServeUpload(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "file")

	path, err := s.uploads.Path(name)
	if err != nil {
		WriteError(w, http.StatusNotFound, ErrCodeNotFound, "resource not found")
		return
	}

	if _, err := os.Stat(path); err != nil {
		WriteError(w, http.StatusNotFound, ErrCodeNotFound, "resource not found")
		return
	}

	http.ServeFile(w, r, path)
}
