// Package session owns the mutable per-session state of the client: the
// current identity, the entitlement store, the unsaved-result cache, and the
// cached profile list. It replaces the ambient globals of the web client with
// one explicit container that is fully reset on every identity change.
package session

import (
	"sync"

	"github.com/dmitrijs2005/glidepath/internal/client/entitlement"
	"github.com/dmitrijs2005/glidepath/internal/client/models"
	"github.com/dmitrijs2005/glidepath/internal/client/simcache"
)

// Identity is either a guest (zero value) or an authenticated user.
type Identity struct {
	UserID string
	Email  string
}

// IsGuest reports whether the identity has no stable user id.
func (i Identity) IsGuest() bool { return i.UserID == "" }

// Session is the state container for one client session. The entitlement
// store and result cache are owned exclusively by the session and are never
// shared across identities.
type Session struct {
	mu       sync.RWMutex
	identity Identity
	profiles []models.Profile
	selected string

	Entitlements *entitlement.Store
	Results      *simcache.Cache
}

func New() *Session {
	return &Session{
		Entitlements: entitlement.NewStore(),
		Results:      simcache.New(),
	}
}

// Identity returns the current identity.
func (s *Session) Identity() Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

// UserID returns the current user id, empty for guests.
func (s *Session) UserID() string {
	return s.Identity().UserID
}

// SetIdentity switches the session to a new identity and resets everything
// the old identity owned: entitlement placeholder, unsaved results, profile
// list and selection. Guest usage never carries over to an authenticated
// identity, nor the reverse.
func (s *Session) SetIdentity(identity Identity) {
	s.mu.Lock()
	s.identity = identity
	s.profiles = nil
	s.selected = ""
	s.mu.Unlock()

	s.Entitlements.Reset()
	s.Results.Reset()
}

// Profiles returns the cached profile list.
func (s *Session) Profiles() []models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profiles
}

// SetProfiles replaces the cached profile list. A selection pointing at a
// profile that no longer exists is dropped.
func (s *Session) SetProfiles(profiles []models.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles = profiles
	if s.selected == "" {
		return
	}
	for _, p := range profiles {
		if p.ID == s.selected {
			return
		}
	}
	s.selected = ""
}

// SelectProfile marks a profile as the save target. Returns false when the
// id is not in the cached list.
func (s *Session) SelectProfile(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.profiles {
		if p.ID == id {
			s.selected = id
			return true
		}
	}
	return false
}

// SelectedProfile returns the id of the save-target profile, empty when none
// is selected.
func (s *Session) SelectedProfile() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}
