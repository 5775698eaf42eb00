package store

import (
	"context"
	"sync"
)

// MemoryStore keeps slots in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string][]byte
	events *broadcaster
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data:   make(map[string][]byte),
		events: newBroadcaster(),
	}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	s.data[key] = append([]byte(nil), value...)
	s.mu.Unlock()

	s.events.publish(Event{Key: key})
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()

	s.events.publish(Event{Key: key})
	return nil
}

func (s *MemoryStore) Subscribe(ctx context.Context) (<-chan Event, error) {
	return s.events.subscribe(ctx), nil
}
