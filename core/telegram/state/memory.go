package state

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu   sync.RWMutex
	recs map[int64]Record
}

// NewMemoryStore constructs an in-memory Store for tests and development.
// Records do not survive process restarts.
func NewMemoryStore() Store {
	return &memoryStore{recs: make(map[int64]Record)}
}

func (m *memoryStore) Load(_ context.Context, userID int64) (Record, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.recs[userID]
	return rec, ok, nil
}

func (m *memoryStore) Save(_ context.Context, userID int64, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs[userID] = rec
	return nil
}

func (m *memoryStore) Delete(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.recs, userID)
	return nil
}
