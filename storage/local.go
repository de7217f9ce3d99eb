package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Local keeps files below a directory that is served publicly under publicURL.
type Local struct {
	root      string
	publicURL string
}

func NewLocal(root, publicURL string) (*Local, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}
	if err := os.MkdirAll(absRoot, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &Local{root: absRoot, publicURL: publicURL}, nil
}

func (l *Local) Root() string {
	return l.root
}

func (l *Local) Put(ctx context.Context, dir string, file *Upload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key := newKey(dir, extOf(file))
	full, err := l.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create directory for %s: %w", key, err)
	}
	if err := os.WriteFile(full, file.Data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", key, err)
	}
	return key, nil
}

func (l *Local) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	full, err := l.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (l *Local) URL(key string) string {
	return joinURL(l.publicURL, key)
}

// resolve maps key to an absolute path and refuses anything outside root.
func (l *Local) resolve(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrEmptyPath
	}

	full, err := filepath.Abs(filepath.Join(l.root, filepath.FromSlash(key)))
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", key, err)
	}
	if full == l.root || !strings.HasPrefix(full, l.root+string(os.PathSeparator)) {
		return "", ErrInvalidPath
	}
	return full, nil
}
