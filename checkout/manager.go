package checkout

import (
	"sync"

	"github.com/cookiesandbiscadm-arch/yumyum/cart"
	"github.com/cookiesandbiscadm-arch/yumyum/promo"
)

// Manager hands out one Orchestrator per session id, wired to that
// session's cart store and promo engine, so the double-submit guard spans
// concurrent requests from the same session.
type Manager struct {
	mu     sync.Mutex
	carts  *cart.Manager
	promos *promo.Manager
	gw     Gateway
	orchs  map[string]*Orchestrator
}

func NewManager(carts *cart.Manager, promos *promo.Manager, gw Gateway) *Manager {
	return &Manager{
		carts:  carts,
		promos: promos,
		gw:     gw,
		orchs:  make(map[string]*Orchestrator),
	}
}

func (m *Manager) ForSession(sessionID string) *Orchestrator {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o, ok := m.orchs[sessionID]; ok {
		return o
	}
	o := New(m.carts.ForSession(sessionID), m.promos.ForSession(sessionID), m.gw)
	m.orchs[sessionID] = o
	return o
}
