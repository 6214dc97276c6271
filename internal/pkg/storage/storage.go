package storage

import (
	"context"
	"io"
)

// Blobs is the interface for storing uploaded job-photo content. Paths are
// relative to the store root; callers decide the layout.
type Blobs interface {
	// Save writes content at path, creating parent directories as needed.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get opens the blob at path for reading.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the blob at path. Deleting a missing blob is not an error.
	Delete(ctx context.Context, path string) error
}
