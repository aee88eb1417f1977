package stepstore

import (
	"sync"
	"time"
)

// MemoryStore is the session-scoped in-memory Store. Each session's entries
// share one deadline that is pushed forward on every write, so an active
// checkout never expires mid-flight.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntries
	ttl      time.Duration
	now      func() time.Time
}

type sessionEntries struct {
	values   map[string][]byte
	deadline time.Time
}

// NewMemoryStore creates a MemoryStore whose sessions expire ttl after
// their last write. A ttl of zero disables expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*sessionEntries),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the value under key for the session, if present.
func (s *MemoryStore) Get(sessionToken, key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, ok := s.live(sessionToken)
	if !ok {
		return nil, false
	}

	value, ok := entries.values[key]
	if !ok {
		return nil, false
	}

	out := make([]byte, len(value))
	copy(out, value)
	return out, true
}

// Set stores value under key for the session and extends its deadline.
func (s *MemoryStore) Set(sessionToken, key string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, ok := s.live(sessionToken)
	if !ok {
		entries = &sessionEntries{values: make(map[string][]byte)}
		s.sessions[sessionToken] = entries
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	entries.values[key] = stored

	if s.ttl > 0 {
		entries.deadline = s.now().Add(s.ttl)
	}
}

// Delete removes the value under key for the session. No-op if absent.
// A session with no remaining entries is dropped entirely.
func (s *MemoryStore) Delete(sessionToken, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, ok := s.live(sessionToken)
	if !ok {
		return
	}

	delete(entries.values, key)
	if len(entries.values) == 0 {
		delete(s.sessions, sessionToken)
	}
}

// Sweep drops every expired session and returns how many were removed.
// Callers run it periodically; correctness does not depend on it because
// live() also checks deadlines on access.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ttl <= 0 {
		return 0
	}

	now := s.now()
	removed := 0
	for token, entries := range s.sessions {
		if entries.deadline.Before(now) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed
}

// live returns the session's entries unless the session has expired, in
// which case it is dropped. Caller must hold s.mu.
func (s *MemoryStore) live(sessionToken string) (*sessionEntries, bool) {
	entries, ok := s.sessions[sessionToken]
	if !ok {
		return nil, false
	}
	if s.ttl > 0 && entries.deadline.Before(s.now()) {
		delete(s.sessions, sessionToken)
		return nil, false
	}
	return entries, true
}
