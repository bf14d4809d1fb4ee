// Package memory keeps collections in process memory. It backs tests and the
// "memory" store driver.
package memory

import (
	"context"
	"sync"

	"github.com/utafrali/LocalBizGo/internal/store"
)

// Backend implements store.Backend using an in-memory map.
type Backend struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// New creates an empty in-memory backend.
func New() *Backend {
	return &Backend{docs: make(map[string][]byte)}
}

func (b *Backend) Load(_ context.Context, collection string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, ok := b.docs[collection]
	if !ok {
		return nil, store.ErrNotExist
	}
	return append([]byte(nil), data...), nil
}

func (b *Backend) Save(_ context.Context, collection string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.docs[collection] = append([]byte(nil), data...)
	return nil
}

func (b *Backend) Close() error { return nil }
