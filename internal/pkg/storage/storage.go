package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by Get when nothing is stored at the path.
var ErrNotFound = errors.New("file not found")

// ErrInvalidPath is returned when a path escapes the storage root.
var ErrInvalidPath = errors.New("invalid file path")

// Storage defines the interface for file storage operations.
// Paths are slash-separated and relative to the storage root.
type Storage interface {
	// Save writes content to path, creating parent folders as needed.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get opens the file at path. Returns ErrNotFound when it does not exist.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the file at path. Missing files are not an error.
	Delete(ctx context.Context, path string) error
}
