package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore хранит каждый слот в отдельном JSON-файле каталога данных —
// аналог per-origin хранилища браузера. Записи синхронные, через
// временный файл с переименованием.
type FileStore struct {
	dir string
	mu  sync.RWMutex
}

// NewFileStore создаёт каталог данных (если отсутствует) и возвращает хранилище.
func NewFileStore(dir string) (*FileStore, error) {
	const op = "kv.NewFileStore"
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get читает слот и десериализует его в result.
// Возвращает false, если файл слота отсутствует.
func (s *FileStore) Get(_ context.Context, key string, result any) (bool, error) {
	const op = "kv.FileStore.Get"
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if err := json.Unmarshal(data, result); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// Set сериализует значение и перезаписывает слот целиком.
func (s *FileStore) Set(_ context.Context, key string, value any) error {
	const op = "kv.FileStore.Set"
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Delete удаляет файл слота. Отсутствующий слот — no-op.
func (s *FileStore) Delete(_ context.Context, key string) error {
	const op = "kv.FileStore.Delete"
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
