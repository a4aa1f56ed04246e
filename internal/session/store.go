package session

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	updatedAt time.Time
}

// Store is a keyed map whose entries expire a fixed time after their last
// write. Expired entries are swept lazily on every Put and Get; there is no
// background goroutine.
type Store[V any] struct {
	mu      sync.Mutex
	entries map[string]entry[V]
	maxAge  time.Duration
	now     func() time.Time
}

type Option[V any] func(*Store[V])

// WithClock replaces time.Now, mostly for tests.
func WithClock[V any](now func() time.Time) Option[V] {
	return func(s *Store[V]) {
		s.now = now
	}
}

func New[V any](maxAge time.Duration, opts ...Option[V]) *Store[V] {
	s := &Store[V]{
		entries: make(map[string]entry[V]),
		maxAge:  maxAge,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store[V]) Put(key string, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)
	s.entries[key] = entry[V]{value: value, updatedAt: now}
}

// Get returns the live value for key, or def when the key is absent or has
// expired.
func (s *Store[V]) Get(key string, def V) V {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweep(s.now())
	e, ok := s.entries[key]
	if !ok {
		return def
	}
	return e.value
}

func (s *Store[V]) Lookup(key string) (V, bool) {
	var zero V
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweep(s.now())
	e, ok := s.entries[key]
	if !ok {
		return zero, false
	}
	return e.value, true
}

func (s *Store[V]) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
}

func (s *Store[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

// sweep must be called with mu held. Entries without a timestamp count as
// expired.
func (s *Store[V]) sweep(now time.Time) {
	for k, e := range s.entries {
		if e.updatedAt.IsZero() || now.Sub(e.updatedAt) > s.maxAge {
			delete(s.entries, k)
		}
	}
}
