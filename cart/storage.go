package cart

import (
	"context"
	"errors"
	"sync"
)

// ErrNoSnapshot is returned by Load when a session has nothing persisted.
var ErrNoSnapshot = errors.New("no cart snapshot")

// Storage persists one serialized CartState snapshot per session key.
type Storage interface {
	Load(ctx context.Context, sessionID string) ([]byte, error)
	Save(ctx context.Context, sessionID string, snapshot []byte) error
}

// MemoryStorage keeps snapshots in a map. Used in tests and as the
// fallback when Redis is unreachable at startup.
type MemoryStorage struct {
	mu        sync.Mutex
	snapshots map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{snapshots: make(map[string][]byte)}
}

func (m *MemoryStorage) Load(_ context.Context, sessionID string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, ok := m.snapshots[sessionID]
	if !ok {
		return nil, ErrNoSnapshot
	}
	cp := make([]byte, len(snap))
	copy(cp, snap)
	return cp, nil
}

func (m *MemoryStorage) Save(_ context.Context, sessionID string, snapshot []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(snapshot))
	copy(cp, snapshot)
	m.snapshots[sessionID] = cp
	return nil
}
