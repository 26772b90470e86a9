package repository

import (
	"context"
	"fmt"

	"github.com/investwisepro/admin-console/internal/kv"
	"github.com/investwisepro/admin-console/internal/models"
)

// GetSystemHealth возвращает последний снимок состояния или nil.
// История снимков не ведётся.
func (s *Storage) GetSystemHealth(ctx context.Context) (*models.SystemHealth, error) {
	const op = "repository.GetSystemHealth"
	var health models.SystemHealth
	found, err := s.kv.Get(ctx, kv.KeySystemHealth, &health)
	if err != nil {
		s.logCorrupt(op, kv.KeySystemHealth, err)
		return nil, nil
	}
	if !found {
		return nil, nil
	}
	return &health, nil
}

// SaveSystemHealth перезаписывает снимок состояния.
func (s *Storage) SaveSystemHealth(ctx context.Context, health models.SystemHealth) error {
	const op = "repository.SaveSystemHealth"
	if err := s.kv.Set(ctx, kv.KeySystemHealth, health); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
