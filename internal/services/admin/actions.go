package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/investwisepro/admin-console/internal/events"
	"github.com/investwisepro/admin-console/internal/lib/sl"
)

// Симулируемые системные действия.
const (
	ActionClearCache      = "clear_cache"
	ActionBackup          = "backup"
	ActionRestartServices = "restart_services"
)

// ErrUnknownAction возвращается для неизвестного действия.
var ErrUnknownAction = errors.New("unknown system action")

// actionDelay — фиксированная задержка симулируемого действия.
var actionDelay = 500 * time.Millisecond

// RunAction выполняет симулируемое системное действие. Очистка кэша
// дополнительно инвалидирует кэш сводки; остальные действия только
// выдерживают паузу и публикуют уведомление о завершении.
func (s *Service) RunAction(ctx context.Context, action string) error {
	const op = "services.admin.RunAction"

	switch action {
	case ActionClearCache, ActionBackup, ActionRestartServices:
	default:
		return fmt.Errorf("%s: %w: %s", op, ErrUnknownAction, action)
	}

	select {
	case <-time.After(actionDelay):
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	}

	if action == ActionClearCache {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.Warn("stats cache invalidation failed", sl.Op(op), sl.Err(err))
		}
	}

	if s.sink != nil {
		s.sink.HandleEvent(ctx, events.ActionCompleted{Action: action})
	}
	return nil
}
