package store

import (
	"context"
	"sync"

	"github.com/dshills/inkwell/internal/snapshot"
)

// MemoryStore keeps an encoded snapshot in memory.
type MemoryStore struct {
	mu   sync.RWMutex
	data []byte
}

// NewMemoryStore creates an empty memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save replaces the stored snapshot.
func (m *MemoryStore) Save(ctx context.Context, s snapshot.Snapshot) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	data, err := snapshot.Encode(s)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.data = data
	m.mu.Unlock()
	return nil
}

// Load returns the stored snapshot.
func (m *MemoryStore) Load(ctx context.Context) (snapshot.Snapshot, error) {
	if err := checkContext(ctx); err != nil {
		return snapshot.Snapshot{}, err
	}

	m.mu.RLock()
	data := m.data
	m.mu.RUnlock()

	if data == nil {
		return snapshot.Snapshot{}, ErrNotFound
	}
	return snapshot.Decode(data)
}
