package cart

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/cookiesandbiscadm-arch/yumyum/models"
	"github.com/shopspring/decimal"
)

// Store owns one session's CartState and is its only legal mutator.
// Every mutation recomputes the total and writes the full snapshot to
// storage before returning, so a reload never sees a stale total.
type Store struct {
	mu        sync.Mutex
	storage   Storage
	sessionID string
	state     models.CartState
}

// NewStore rehydrates the session's snapshot synchronously. A missing or
// unparseable snapshot yields an empty cart; it never fails.
func NewStore(storage Storage, sessionID string) *Store {
	s := &Store{storage: storage, sessionID: sessionID}
	s.state = models.CartState{Items: []models.CartItem{}, Total: decimal.Zero}

	snap, err := storage.Load(context.Background(), sessionID)
	if err != nil {
		return s
	}
	var state models.CartState
	if err := json.Unmarshal(snap, &state); err != nil {
		// Corrupt snapshot: discard and start empty.
		return s
	}
	if state.Items == nil {
		state.Items = []models.CartItem{}
	}
	s.state = state
	s.recomputeTotal()
	return s
}

// AddItem merges by product id: an existing line gains count, a new line is
// inserted with display fields copied from the product. Count values below
// 1 are treated as 1. Always succeeds.
func (s *Store) AddItem(p models.Product, count int) {
	if count < 1 {
		count = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Items {
		if s.state.Items[i].ID == p.ID {
			s.state.Items[i].Quantity += count
			s.persist()
			return
		}
	}
	item := models.NewCartItem(p)
	item.Quantity = count
	s.state.Items = append(s.state.Items, item)
	s.persist()
}

// UpdateQuantity sets a line's quantity directly. Zero or negative removes
// the line. An unknown id is a no-op.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Items {
		if s.state.Items[i].ID != productID {
			continue
		}
		if quantity <= 0 {
			s.state.Items = append(s.state.Items[:i], s.state.Items[i+1:]...)
		} else {
			s.state.Items[i].Quantity = quantity
		}
		s.persist()
		return
	}
}

// RemoveItem deletes the line with that product id if present.
func (s *Store) RemoveItem(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Items {
		if s.state.Items[i].ID == productID {
			s.state.Items = append(s.state.Items[:i], s.state.Items[i+1:]...)
			s.persist()
			return
		}
	}
}

// Clear empties the cart and persists the empty state.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Items = []models.CartItem{}
	s.persist()
}

// State returns a copy of the current cart state.
func (s *Store) State() models.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]models.CartItem, len(s.state.Items))
	copy(items, s.state.Items)
	return models.CartState{Items: items, Total: s.state.Total}
}

// Subtotal returns the current derived total.
func (s *Store) Subtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Total
}

// IsEmpty reports whether the cart holds no items.
func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.Items) == 0
}

func (s *Store) recomputeTotal() {
	total := decimal.Zero
	for _, item := range s.state.Items {
		total = total.Add(item.LineTotal())
	}
	s.state.Total = total
}

// persist recomputes the total and writes the snapshot synchronously.
// Callers must hold s.mu. A storage failure keeps the in-memory state and
// is logged; mutations themselves never fail.
func (s *Store) persist() {
	s.recomputeTotal()
	snap, err := json.Marshal(s.state)
	if err != nil {
		log.Printf("⚠️ cart: failed to serialize snapshot for %s: %v", s.sessionID, err)
		return
	}
	if err := s.storage.Save(context.Background(), s.sessionID, snap); err != nil {
		log.Printf("⚠️ cart: failed to persist snapshot for %s: %v", s.sessionID, err)
	}
}
