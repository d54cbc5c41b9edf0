package storage

import (
	"context"
	"sync"
)

// MemoryBackend is a process-local backend for tests and dry runs.
type MemoryBackend struct {
	mu   sync.RWMutex
	data Entries
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(Entries)}
}

func (b *MemoryBackend) Namespace(owner string) Store {
	return &memoryStore{backend: b, namespace: owner}
}

func (b *MemoryBackend) Dump(_ context.Context) (Entries, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make(Entries, len(b.data))
	for namespace, keys := range b.data {
		copied := make(map[string]string, len(keys))
		for k, v := range keys {
			copied[k] = v
		}
		out[namespace] = copied
	}
	return out, nil
}

func (b *MemoryBackend) Restore(_ context.Context, entries Entries) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for namespace, keys := range entries {
		if b.data[namespace] == nil {
			b.data[namespace] = make(map[string]string, len(keys))
		}
		for k, v := range keys {
			b.data[namespace][k] = v
		}
	}
	return nil
}

type memoryStore struct {
	backend   *MemoryBackend
	namespace string
}

func (s *memoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.backend.mu.RLock()
	defer s.backend.mu.RUnlock()

	value, ok := s.backend.data[s.namespace][key]
	return value, ok, nil
}

func (s *memoryStore) Set(_ context.Context, key, value string) error {
	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()

	if s.backend.data[s.namespace] == nil {
		s.backend.data[s.namespace] = make(map[string]string)
	}
	s.backend.data[s.namespace][key] = value
	return nil
}

func (s *memoryStore) Remove(_ context.Context, key string) error {
	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()

	delete(s.backend.data[s.namespace], key)
	return nil
}
