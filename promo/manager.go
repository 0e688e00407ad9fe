package promo

import "sync"

// Manager hands out one Engine per session id.
type Manager struct {
	mu        sync.Mutex
	validator Validator
	engines   map[string]*Engine
}

func NewManager(validator Validator) *Manager {
	return &Manager{validator: validator, engines: make(map[string]*Engine)}
}

func (m *Manager) ForSession(sessionID string) *Engine {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.engines[sessionID]; ok {
		return e
	}
	e := NewEngine(m.validator)
	m.engines[sessionID] = e
	return e
}
