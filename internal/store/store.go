// Package store persists named collections as flat JSON array files under
// a data directory. Collections are append-only from the API's point of
// view; every write replaces the whole file.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

type Store struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(dir string) *Store {
	return &Store{
		dir:   dir,
		locks: make(map[string]*sync.Mutex),
	}
}

// collLock serializes read-modify-write cycles per collection so that two
// concurrent appends cannot overwrite each other's state.
func (s *Store) collLock(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[name]
	if !ok {
		l = &sync.Mutex{}
		s.locks[name] = l
	}
	return l
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// ReadCollection decodes the named collection into out. A missing file is
// initialized on disk with an empty array and decoded as such.
func (s *Store) ReadCollection(name string, out any) error {
	l := s.collLock(name)
	l.Lock()
	defer l.Unlock()
	return s.read(name, out)
}

func (s *Store) read(name string, out any) error {
	raw, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		if err := s.write(name, []json.RawMessage{}); err != nil {
			return err
		}
		raw = []byte("[]")
	} else if err != nil {
		return fmt.Errorf("store: read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("store: decode %s: %w", name, err)
	}
	return nil
}

// Append loads the full collection, appends entry and persists the whole
// array back, atomically via a temp file rename.
func (s *Store) Append(name string, entry any) error {
	l := s.collLock(name)
	l.Lock()
	defer l.Unlock()

	var collection []json.RawMessage
	if err := s.read(name, &collection); err != nil {
		return err
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("store: encode entry for %s: %w", name, err)
	}
	collection = append(collection, raw)

	return s.write(name, collection)
}

// Ensure creates the collection file with an empty array when missing.
func (s *Store) Ensure(name string) error {
	var collection []json.RawMessage
	return s.ReadCollection(name, &collection)
}

func (s *Store) write(name string, collection []json.RawMessage) error {
	payload, err := json.MarshalIndent(collection, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", name, err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("store: mkdir %s: %w", s.dir, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("store: temp file for %s: %w", name, err)
	}
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("store: write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store: close %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store: rename %s: %w", name, err)
	}
	return nil
}
