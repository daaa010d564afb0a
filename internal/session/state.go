// Package session owns the mutable session state and the reactions to
// transport lifecycle and wire events.
package session

import "sync"

// State is the single shared holder of the local identity. Components that
// need the current identity read it through here on every use instead of
// caching a copy, so an async gap never leaves them with a stale name.
type State struct {
	mu       sync.RWMutex
	identity string
	joined   bool
}

// NewState creates session state with the locally asserted display name.
func NewState(displayName string) *State {
	return &State{identity: displayName}
}

// Identity returns the current display name.
func (s *State) Identity() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

// SetIdentity overwrites the identity with the server-assigned value and
// returns the previous one. Only the join acknowledgment calls this; the
// identity is immutable for the rest of the session.
func (s *State) SetIdentity(name string) (old string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old = s.identity
	s.identity = name
	s.joined = true
	return old
}

// Joined reports whether the join handshake has completed at least once.
func (s *State) Joined() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.joined
}
