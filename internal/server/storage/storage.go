// Package storage holds the object storage behind user avatars.
package storage

import (
	"context"
	"io"
)

// AvatarStore saves and serves avatar image objects. Keys are opaque to
// callers; Save picks one and returns it for persisting on the profile.
type AvatarStore interface {
	// Save stores content under a fresh key derived from the original
	// file name and returns that key.
	Save(ctx context.Context, originalName string, content []byte) (string, error)

	// Open returns the object content and its media type. The caller
	// closes the reader.
	Open(ctx context.Context, key string) (io.ReadCloser, string, error)
}
