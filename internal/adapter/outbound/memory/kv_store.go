// Package memory provides in-memory adapter implementations for tests and
// ephemeral runs.
package memory

import (
	"context"
	"sync"
)

// KVStore is a mutex-guarded in-memory key-value store.
type KVStore struct {
	mu      sync.Mutex
	entries map[string][]byte
}

// NewKVStore creates an empty store.
func NewKVStore() *KVStore {
	return &KVStore{entries: make(map[string][]byte)}
}

// Get returns the value stored under key.
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

// Set stores value under key.
func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.entries[key] = stored
	return nil
}

// Delete removes key.
func (s *KVStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

// Close is a no-op.
func (s *KVStore) Close() error {
	return nil
}
