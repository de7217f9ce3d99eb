// Package storagetest provides sample images and an in-memory Storage for tests.
package storagetest

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/storage"
)

var ErrInjected = errors.New("storagetest: injected failure")

// PNG returns a minimal payload detected as image/png.
func PNG() []byte {
	return append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)
}

// GIF returns a minimal payload detected as image/gif.
func GIF() []byte {
	return append([]byte("GIF89a"), make([]byte, 32)...)
}

// Memory is a Storage held in a map. Setting FailDeletes makes every Delete fail after
// recording the attempt.
type Memory struct {
	mu          sync.Mutex
	objects     map[string][]byte
	deleted     []string
	FailDeletes bool
	FailPuts    bool
}

var _ storage.Storage = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{objects: map[string][]byte{}}
}

func (m *Memory) Put(_ context.Context, dir string, file *storage.Upload) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailPuts {
		return "", ErrInjected
	}
	key := dir + "/" + uuid.NewString() + file.Ext
	m.objects[key] = file.Data
	return key, nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, key)
	if m.FailDeletes {
		return ErrInjected
	}
	delete(m.objects, key)
	return nil
}

func (m *Memory) URL(key string) string {
	return "https://cdn.test/" + key
}

func (m *Memory) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok
}

// Keys returns every stored key.
func (m *Memory) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	return keys
}

// Deleted returns every key passed to Delete, in call order.
func (m *Memory) Deleted() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.deleted...)
}
