package session

import (
	"sync"
	"time"
)

type entry[T any] struct {
	value   T
	addedAt time.Time
}

// Store is the coordination substrate for every interactive flow: a
// process-wide map from token to session payload. One Store instance exists
// per flow type. Pop is the claim primitive — it removes and returns in one
// step so two concurrent callbacks can never both start a session's
// terminal action.
type Store[T any] struct {
	mu      sync.Mutex
	entries map[string]entry[T]
	ttl     time.Duration
}

// NewStore builds a store whose entries expire ttl after insertion.
// ttl <= 0 disables expiry.
func NewStore[T any](ttl time.Duration) *Store[T] {
	return &Store[T]{
		entries: make(map[string]entry[T]),
		ttl:     ttl,
	}
}

func (s *Store[T]) Put(token string, v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked(time.Now())
	s.entries[token] = entry[T]{value: v, addedAt: time.Now()}
}

// Get looks a session up without claiming it. Used for authorization
// checks ahead of a state transition.
func (s *Store[T]) Get(token string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked(time.Now())
	e, ok := s.entries[token]
	if !ok {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Pop atomically removes and returns the session, claiming exclusive
// ownership. A second Pop for the same token returns false.
func (s *Store[T]) Pop(token string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked(time.Now())
	e, ok := s.entries[token]
	if !ok {
		var zero T
		return zero, false
	}
	delete(s.entries, token)
	return e.value, true
}

func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep drops entries older than the TTL relative to now and reports how
// many were removed. Stores also sweep opportunistically on access, so a
// background ticker is optional.
func (s *Store[T]) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked(now)
}

func (s *Store[T]) sweepLocked(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}
	removed := 0
	for token, e := range s.entries {
		if now.Sub(e.addedAt) > s.ttl {
			delete(s.entries, token)
			removed++
		}
	}
	return removed
}
