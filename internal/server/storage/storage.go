// Package storage stores movie assets (posters, actor pictures) in an
// S3-compatible blob container and hands back publicly resolvable URLs.
package storage

import (
	"context"
	"io"
)

// Upload describes a file to store: the original client-side name (its
// extension is preserved), the content type, and the payload.
type Upload struct {
	FileName    string
	ContentType string
	Body        io.Reader
}

// FileStorage stores and deletes files in a named container.
//
// Store returns the public URL of the stored file, or an empty string with a
// nil error when the backing connection secret is unavailable. Callers must
// treat an empty URL as "storage unavailable". Delete resolves the stored
// object name from a URL or path and removes it; it silently no-ops on an
// empty route or when the connection secret is unavailable.
type FileStorage interface {
	Store(ctx context.Context, container string, file Upload) (string, error)
	Delete(ctx context.Context, route, container string) error
}
