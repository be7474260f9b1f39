package cache

import (
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

type entry struct {
	payload     []byte
	contentType string
	storedAt    time.Time
}

// Store is an in-memory TTL cache for rendered API responses, keyed by
// xxHash of the request path. Everything here is as volatile as the
// data it fronts.
type Store struct {
	mu      sync.RWMutex
	entries map[uint64]entry
	maxAge  time.Duration
}

func NewStore(maxAge time.Duration) *Store {
	return &Store{
		entries: make(map[uint64]entry),
		maxAge:  maxAge,
	}
}

func keyFor(path string) uint64 {
	return xxhash.Sum64String(path)
}

// Get returns the cached payload for a path if present and fresh.
func (s *Store) Get(path string) ([]byte, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[keyFor(path)]
	if !ok {
		return nil, "", false
	}
	if time.Since(e.storedAt) > s.maxAge {
		return nil, "", false
	}
	return e.payload, e.contentType, true
}

func (s *Store) Set(path string, payload []byte, contentType string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[keyFor(path)] = entry{
		payload:     append([]byte(nil), payload...),
		contentType: contentType,
		storedAt:    time.Now(),
	}
}

// Invalidate drops the cached response for specific paths.
func (s *Store) Invalidate(paths ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, path := range paths {
		delete(s.entries, keyFor(path))
	}
}

// Clear drops everything; admin mutations call this rather than
// tracking which public responses a write touches.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[uint64]entry)
}

// StartPruning removes expired entries on a timer until stop is closed.
func (s *Store) StartPruning(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.prune()
			case <-stop:
				return
			}
		}
	}()
}

func (s *Store) prune() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, e := range s.entries {
		if time.Since(e.storedAt) > s.maxAge {
			delete(s.entries, key)
		}
	}
}
