// internal/domain/cart/memory_store.go
package cart

import (
	"context"
	"sync"
)

// MemorySessionStore keeps guest carts in process memory. It backs
// tests and single-node setups without Redis.
type MemorySessionStore struct {
	mu    sync.RWMutex
	carts map[string]SessionCart
}

// NewMemorySessionStore creates an in-memory session store
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{carts: make(map[string]SessionCart)}
}

// Get returns the guest cart for the session, or an empty cart
func (s *MemorySessionStore) Get(_ context.Context, sessionID string) (SessionCart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.carts[sessionID]
	if !ok {
		return SessionCart{}, nil
	}
	cart := make(SessionCart, len(stored))
	for key, line := range stored {
		cart[key] = line
	}
	return cart, nil
}

// Save writes the guest cart
func (s *MemorySessionStore) Save(_ context.Context, sessionID string, cart SessionCart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make(SessionCart, len(cart))
	for key, line := range cart {
		stored[key] = line
	}
	s.carts[sessionID] = stored
	return nil
}

// Delete removes the guest cart
func (s *MemorySessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, sessionID)
	return nil
}
