package store

import (
	"context"
	"sync"
)

// MemoryBackend keeps the document in process memory. Used in tests and for
// throwaway instances.
type MemoryBackend struct {
	mu     sync.RWMutex
	data   []byte
	exists bool
}

// NewMemoryBackend returns an empty backend; nothing is stored until the
// first Write.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

// NewMemoryBackendWith returns a backend pre-loaded with data.
func NewMemoryBackendWith(data []byte) *MemoryBackend {
	return &MemoryBackend{data: append([]byte(nil), data...), exists: true}
}

func (b *MemoryBackend) Name() string { return "memory" }

func (b *MemoryBackend) Read(_ context.Context) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.exists {
		return nil, ErrNotExist
	}
	return append([]byte(nil), b.data...), nil
}

func (b *MemoryBackend) Write(_ context.Context, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = append([]byte(nil), data...)
	b.exists = true
	return nil
}
