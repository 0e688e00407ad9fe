package cart

import "sync"

// Manager hands out one Store per session id. Stores are created lazily and
// rehydrate from storage exactly once, before any consumer reads them.
type Manager struct {
	mu      sync.Mutex
	storage Storage
	stores  map[string]*Store
}

func NewManager(storage Storage) *Manager {
	return &Manager{storage: storage, stores: make(map[string]*Store)}
}

func (m *Manager) ForSession(sessionID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.stores[sessionID]; ok {
		return s
	}
	s := NewStore(m.storage, sessionID)
	m.stores[sessionID] = s
	return s
}
