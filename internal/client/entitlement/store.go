// Package entitlement holds the session's usage/credit state and decides
// whether a computation run is allowed.
package entitlement

import (
	"sync"

	"github.com/dmitrijs2005/glidepath/internal/client/models"
)

// Store is the session-owned container for the current entitlement. For a
// guest session it stays at the zero-credit placeholder; for an authenticated
// session it is replaced wholesale after every fetch.
type Store struct {
	mu  sync.RWMutex
	ent models.Entitlement
}

// NewStore returns a store holding the guest placeholder entitlement.
func NewStore() *Store {
	s := &Store{}
	s.Reset()
	return s
}

// Current returns a copy of the entitlement.
func (s *Store) Current() models.Entitlement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ent
}

// Replace swaps in a freshly fetched entitlement.
func (s *Store) Replace(ent models.Entitlement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ent = ent
}

// Reset restores the zero-credit placeholder. Called on every identity
// transition; guest usage never carries over.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ent = models.Entitlement{SubscriptionStatus: models.SubscriptionNone}
}
