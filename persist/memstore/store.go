// Package memstore provides an in-memory persist.Store. It backs tests and
// short-lived consoles that should not leave a session snapshot behind.
package memstore

import (
	"context"
	"sync"

	"github.com/campusauth/goSession/persist"
)

// Store is an in-memory two-slot store. The zero value is not usable; call
// [New].
type Store struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// New returns an empty store.
func New() *Store {
	return &Store{slots: make(map[string][]byte)}
}

// Get implements persist.Store.
func (s *Store) Get(_ context.Context, slot string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.slots[slot]
	if !ok {
		return nil, persist.ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set implements persist.Store.
func (s *Store) Set(_ context.Context, slot string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[slot] = stored
	return nil
}

// Delete implements persist.Store.
func (s *Store) Delete(_ context.Context, slot string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, slot)
	return nil
}
