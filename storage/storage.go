// Package storage keeps uploaded images on local disk or in an S3 bucket.
package storage

import (
	"context"
	"errors"
	"path"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidPath = errors.New("storage: path escapes storage root")
	ErrEmptyPath   = errors.New("storage: empty path")
)

// Storage is a key-addressed blob store. Keys are slash separated paths relative to the
// store root, e.g. "services/0b6c....png".
type Storage interface {
	// Put stores the upload under dir and returns its key.
	Put(ctx context.Context, dir string, file *Upload) (string, error)
	// Delete removes the object at key. A missing object is not an error.
	Delete(ctx context.Context, key string) error
	// URL returns the public address of key.
	URL(key string) string
}

// newKey builds "dir/<uuid><ext>" with dir reduced to safe path segments.
func newKey(dir, ext string) string {
	name := uuid.NewString() + ext
	dir = cleanDir(dir)
	if dir == "" {
		return name
	}
	return dir + "/" + name
}

func cleanDir(dir string) string {
	dir = path.Clean("/" + strings.ReplaceAll(dir, "\\", "/"))
	return strings.Trim(dir, "/")
}

func joinURL(base, key string) string {
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(key, "/")
}
