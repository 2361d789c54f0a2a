package auth

import (
	"fmt"
	"sync"
	"time"
)

// LoginState holds the per-attempt secrets generated when a sign-in starts:
// the PKCE verifier to replay at the token exchange, the provider handling
// the attempt, and the post-login redirect target.
type LoginState struct {
	State      string
	Provider   string
	Verifier   string
	RedirectTo string
	CreatedAt  time.Time
}

// LoginStateStore provides thread-safe in-memory storage for pending login
// attempts, keyed by the OAuth state parameter. Entries are one-time use and
// expire after the TTL.
type LoginStateStore struct {
	mu     sync.Mutex
	states map[string]*LoginState
	ttl    time.Duration
}

// NewLoginStateStore creates a new store with the given TTL for pending logins.
func NewLoginStateStore(ttl time.Duration) *LoginStateStore {
	return &LoginStateStore{
		states: make(map[string]*LoginState),
		ttl:    ttl,
	}
}

// Create generates a state value and records the pending login under it.
func (s *LoginStateStore) Create(provider, verifier, redirectTo string) (*LoginState, error) {
	state, err := NewState()
	if err != nil {
		return nil, fmt.Errorf("generating login state: %w", err)
	}

	ls := &LoginState{
		State:      state,
		Provider:   provider,
		Verifier:   verifier,
		RedirectTo: redirectTo,
		CreatedAt:  time.Now(),
	}

	s.mu.Lock()
	s.states[state] = ls
	s.mu.Unlock()

	return ls, nil
}

// Consume retrieves and removes a pending login by state (one-time use).
// Returns nil if the state is unknown or expired.
func (s *LoginStateStore) Consume(state string) *LoginState {
	s.mu.Lock()
	defer s.mu.Unlock()

	ls, ok := s.states[state]
	if !ok {
		return nil
	}
	delete(s.states, state)

	if time.Since(ls.CreatedAt) > s.ttl {
		return nil
	}
	return ls
}

// Cleanup removes expired pending logins from the store.
func (s *LoginStateStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for state, ls := range s.states {
		if now.Sub(ls.CreatedAt) > s.ttl {
			delete(s.states, state)
		}
	}
}
