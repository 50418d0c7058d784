package storage

import "errors"

var (
	// ErrDuplicate is returned when attempting to create a resource that
	// violates a uniqueness constraint (username or slug).
	ErrDuplicate = errors.New("resource already exists")

	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = errors.New("resource not found")
)
