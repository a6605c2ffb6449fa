// Package filestore provides a persist.Store backed by one JSON file per slot
// in a local directory. It is the default backend for a single-operator
// console: the on-disk layout plays the role browser local storage played in
// the original web console.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/campusauth/goSession/persist"
)

// Store persists slots as files named <slot>.json under a directory.
// Writes go through a temp file and rename so a crash mid-write never
// leaves a half-written record for the next restore to trip over.
type Store struct {
	dir string
	mu  sync.Mutex
}

// New creates the directory (0700) if needed and returns a store rooted at it.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("filestore: dir is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("%w: %v", persist.ErrUnavailable, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(slot string) string {
	return filepath.Join(s.dir, slot+".json")
}

// Get implements persist.Store.
func (s *Store) Get(_ context.Context, slot string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(slot))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, persist.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", persist.ErrUnavailable, err)
	}
	return data, nil
}

// Set implements persist.Store.
func (s *Store) Set(_ context.Context, slot string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, slot+"-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", persist.ErrUnavailable, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", persist.ErrUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", persist.ErrUnavailable, err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", persist.ErrUnavailable, err)
	}
	if err := os.Rename(tmpName, s.path(slot)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", persist.ErrUnavailable, err)
	}
	return nil
}

// Delete implements persist.Store.
func (s *Store) Delete(_ context.Context, slot string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(slot)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %v", persist.ErrUnavailable, err)
	}
	return nil
}
