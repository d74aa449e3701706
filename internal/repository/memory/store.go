package memory

import (
	"bytes"
	"context"
	"sync"

	"github.com/mamadbah2/dairy/internal/repository"
)

// Store keeps blobs in process memory. It backs tests and throwaway runs.
type Store struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// New returns an empty store.
func New() *Store {
	return &Store{blobs: make(map[string][]byte)}
}

// Get returns a copy of the blob stored under key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.blobs[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return bytes.Clone(value), nil
}

// Put stores a copy of value under key.
func (s *Store) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blobs[key] = bytes.Clone(value)
	return nil
}

// Close is a no-op.
func (s *Store) Close(context.Context) error {
	return nil
}
