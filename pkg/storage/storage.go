package storage

import (
	"context"
	"io"
)

// Store abstracts where uploaded images live.
type Store interface {
	// Save writes the reader's contents under dir and returns the generated
	// object name. originalName is only consulted for its extension.
	Save(ctx context.Context, dir, originalName string, r io.Reader) (string, error)

	// Open returns a reader for the named object under dir.
	Open(ctx context.Context, dir, name string) (io.ReadCloser, error)

	// Remove deletes the named object under dir if it exists.
	Remove(ctx context.Context, dir, name string) error
}
