// Package session owns the client-side session: it persists the bearer
// token, derives the current identity from the token's claims and
// answers role questions for the shell. It is the only holder of
// session state; nothing else touches the storage directly.
package session

import (
	"log"
	"sync"

	"github.com/sweetshop/sweetshop-client/internal/model"
)

// Store is the session store. All methods are safe for concurrent use;
// Login sets the token and the identity under one lock so callers never
// observe a token without its identity.
type Store struct {
	mu       sync.RWMutex
	storage  Storage
	token    string
	identity *model.Identity
}

// New returns an anonymous store backed by the given storage. Call
// Restore before first use to rehydrate a persisted session.
func New(storage Storage) *Store {
	return &Store{storage: storage}
}

// Restore rehydrates the session from persisted state at startup. Any
// failure — unreadable storage, malformed token, unexpected claim
// shape — discards the persisted state and leaves the session
// anonymous. It never panics and has no error return; a bad persisted
// token is not the caller's problem.
func (s *Store) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.storage.Load()
	if err != nil || st.Token == "" {
		if err != nil {
			log.Printf("session: discarding unreadable state: %v", err)
			s.clearLocked()
		}
		return
	}

	// A cached identity wins; otherwise derive one from the token.
	id := st.Identity
	if id == nil {
		derived, err := DecodeIdentity(st.Token)
		if err != nil {
			log.Printf("session: discarding undecodable token: %v", err)
			s.clearLocked()
			return
		}
		id = &derived
	}

	s.token = st.Token
	s.identity = id
}

// Login persists the token and installs the identity. When the caller
// already has an identity (a login response including the user record)
// it is used as-is; otherwise it is derived from the token. On a decode
// failure nothing changes and ErrDecode is returned.
func (s *Store) Login(token string, identity *model.Identity) error {
	id := identity
	if id == nil {
		derived, err := DecodeIdentity(token)
		if err != nil {
			return err
		}
		id = &derived
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.storage.Save(State{Token: token, Identity: id}); err != nil {
		return err
	}
	s.token = token
	s.identity = id
	return nil
}

// Logout clears the session unconditionally. Storage failures are
// logged and swallowed: logout must never fail from the caller's view,
// and the in-memory state is gone either way.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

// clearLocked drops memory and storage. Caller holds s.mu.
func (s *Store) clearLocked() {
	s.token = ""
	s.identity = nil
	if err := s.storage.Clear(); err != nil {
		log.Printf("session: clear storage: %v", err)
	}
}

// Token returns the current bearer token, empty when anonymous.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Identity returns the current identity and whether a session exists.
func (s *Store) Identity() (model.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return model.Identity{}, false
	}
	return *s.identity, true
}

// IsAdmin is a pure derivation from the current identity. No session
// means false, not an error.
func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil && s.identity.Role.IsAdmin()
}
