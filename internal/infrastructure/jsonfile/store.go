package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store persists a single collection as one JSON array file. Every write
// loads the whole collection, mutates it and rewrites the file, so a mutex
// serializes all read-modify-write sequences: two interleaved registrations
// or confirmations must not drop each other's records.
type Store[T any] struct {
	mu   sync.Mutex
	path string
}

// NewStore opens (or prepares to create) the collection file at path.
func NewStore[T any](path string) (*Store[T], error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store[T]{path: path}, nil
}

// All returns a snapshot of the collection.
func (s *Store[T]) All() ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Mutate runs fn over the current collection under the store lock and
// rewrites the file with whatever fn returns. When fn fails, nothing is
// written.
func (s *Store[T]) Mutate(fn func(items []T) ([]T, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.load()
	if err != nil {
		return err
	}
	items, err = fn(items)
	if err != nil {
		return err
	}
	return s.save(items)
}

// load reads the collection file. A missing file is an empty collection.
// Caller must hold s.mu.
func (s *Store[T]) load() ([]T, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	return items, nil
}

// save rewrites the collection file atomically: marshal to a temp file in
// the same directory, then rename over the target. A crash mid-write leaves
// the previous file intact. Caller must hold s.mu.
func (s *Store[T]) save(items []T) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", s.path, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}
