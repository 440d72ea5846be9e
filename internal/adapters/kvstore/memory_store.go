package kvstore

import (
	"context"
	"sync"
)

// MemoryStore is an in-process document store for tests and throwaway
// runs. Safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: map[string]string{}}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	body, ok := s.docs[key]
	return body, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs[key] = value
	return nil
}
