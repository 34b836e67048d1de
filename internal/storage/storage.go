// Package storage holds binary artifacts such as resumes, addressed by key.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no artifact exists under a key.
var ErrNotFound = errors.New("artifact not found")

// ArtifactStore uploads and downloads blobs by key.
type ArtifactStore interface {
	Upload(ctx context.Context, key, contentType string, data []byte) error
	Download(ctx context.Context, key string) ([]byte, error)
}
