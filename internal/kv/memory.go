package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore — хранилище в памяти. Используется в тестах.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore возвращает пустое хранилище в памяти.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Get десериализует значение слота в result, false — если слот пуст.
func (s *MemoryStore) Get(_ context.Context, key string, result any) (bool, error) {
	const op = "kv.MemoryStore.Get"
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, result); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// Set сериализует значение и перезаписывает слот.
func (s *MemoryStore) Set(_ context.Context, key string, value any) error {
	const op = "kv.MemoryStore.Set"
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.mu.Lock()
	s.data[key] = data
	s.mu.Unlock()
	return nil
}

// Delete удаляет слот.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}
