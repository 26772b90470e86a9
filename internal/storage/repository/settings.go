package repository

import (
	"context"
	"fmt"

	"github.com/investwisepro/admin-console/internal/kv"
	"github.com/investwisepro/admin-console/internal/models"
)

// ListNotificationSettings возвращает сохранённые переключатели
// уведомлений. Пустой результат означает, что дефолты ещё не засеяны.
func (s *Storage) ListNotificationSettings(ctx context.Context) ([]models.NotificationSetting, error) {
	const op = "repository.ListNotificationSettings"
	var settings []models.NotificationSetting
	if _, err := s.kv.Get(ctx, kv.KeyNotificationSettings, &settings); err != nil {
		s.logCorrupt(op, kv.KeyNotificationSettings, err)
		return nil, nil
	}
	return settings, nil
}

// SaveNotificationSettings перезаписывает переключатели уведомлений.
func (s *Storage) SaveNotificationSettings(ctx context.Context, settings []models.NotificationSetting) error {
	const op = "repository.SaveNotificationSettings"
	if err := s.kv.Set(ctx, kv.KeyNotificationSettings, settings); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListSystemSettings возвращает сохранённые системные настройки.
func (s *Storage) ListSystemSettings(ctx context.Context) ([]models.SystemSetting, error) {
	const op = "repository.ListSystemSettings"
	var settings []models.SystemSetting
	if _, err := s.kv.Get(ctx, kv.KeySystemSettings, &settings); err != nil {
		s.logCorrupt(op, kv.KeySystemSettings, err)
		return nil, nil
	}
	return settings, nil
}

// SaveSystemSettings перезаписывает системные настройки.
func (s *Storage) SaveSystemSettings(ctx context.Context, settings []models.SystemSetting) error {
	const op = "repository.SaveSystemSettings"
	if err := s.kv.Set(ctx, kv.KeySystemSettings, settings); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
