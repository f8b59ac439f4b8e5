// Package fsx abstracts file storage behind a small filesystem port so
// services stay independent of the backing store.
package fsx

import (
	"context"
	"path"
)

// FileSystem is the storage port used for uploaded files.
type FileSystem interface {
	// WriteFile stores data at the given path, overwriting existing content.
	WriteFile(ctx context.Context, filePath string, data []byte) error

	// ReadFile returns the content stored at the path.
	ReadFile(ctx context.Context, filePath string) ([]byte, error)

	// Delete removes the file at the path. Deleting a missing file is not
	// an error.
	Delete(ctx context.Context, filePath string) error

	// Join builds a storage path from segments.
	Join(parts ...string) string
}

// JoinPath is the default slash-separated join used by adapters.
func JoinPath(parts ...string) string {
	return path.Join(parts...)
}
