package storage

import (
	"context"
	"errors"
	"io"
	"sync"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
	reviewapp "github.com/storefront/backend/internal/application/review"
)

// Ensure MemoryObjectStorage satisfies both application-layer storage ports
var (
	_ catalogapp.ObjectStorage = (*MemoryObjectStorage)(nil)
	_ reviewapp.ObjectStorage  = (*MemoryObjectStorage)(nil)
)

// MemoryObjectStorage keeps objects in process memory. It backs local
// development and tests where no S3-compatible service is available.
type MemoryObjectStorage struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryObjectStorage creates an empty in-memory store
func NewMemoryObjectStorage() *MemoryObjectStorage {
	return &MemoryObjectStorage{
		objects: make(map[string][]byte),
	}
}

// Put stores the content under the given key and returns the key as the path
func (m *MemoryObjectStorage) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	m.objects[key] = data
	m.mu.Unlock()
	return key, nil
}

// Delete removes an object. Deleting a missing key is not an error.
func (m *MemoryObjectStorage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}

	m.mu.Lock()
	delete(m.objects, key)
	m.mu.Unlock()
	return nil
}

// Get returns the stored content for a key
func (m *MemoryObjectStorage) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[key]
	return data, ok
}

// Len returns the number of stored objects
func (m *MemoryObjectStorage) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
