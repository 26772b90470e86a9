package repository

import (
	"context"
	"fmt"

	"github.com/investwisepro/admin-console/internal/kv"
	"github.com/investwisepro/admin-console/internal/models"
)

// ListNotifications возвращает уведомления, новые — в начале списка.
func (s *Storage) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	const op = "repository.ListNotifications"
	var items []models.Notification
	if _, err := s.kv.Get(ctx, kv.KeyNotifications, &items); err != nil {
		s.logCorrupt(op, kv.KeyNotifications, err)
		return nil, nil
	}
	return items, nil
}

// SaveNotifications перезаписывает список уведомлений целиком.
func (s *Storage) SaveNotifications(ctx context.Context, items []models.Notification) error {
	const op = "repository.SaveNotifications"
	if err := s.kv.Set(ctx, kv.KeyNotifications, items); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// PrependNotification добавляет уведомление в начало списка.
func (s *Storage) PrependNotification(ctx context.Context, n models.Notification) error {
	items, err := s.ListNotifications(ctx)
	if err != nil {
		return err
	}
	return s.SaveNotifications(ctx, append([]models.Notification{n}, items...))
}

// MarkNotificationRead помечает уведомление прочитанным.
// Повторная пометка и отсутствующий ID — no-op.
func (s *Storage) MarkNotificationRead(ctx context.Context, id string) error {
	items, err := s.ListNotifications(ctx)
	if err != nil {
		return err
	}
	for i, n := range items {
		if n.ID == id {
			if n.IsRead {
				return nil
			}
			items[i].IsRead = true
			return s.SaveNotifications(ctx, items)
		}
	}
	return nil
}

// MarkAllNotificationsRead помечает все уведомления прочитанными.
func (s *Storage) MarkAllNotificationsRead(ctx context.Context) error {
	items, err := s.ListNotifications(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		items[i].IsRead = true
	}
	return s.SaveNotifications(ctx, items)
}

// DeleteNotification удаляет уведомление по ID. Отсутствующий ID не ошибка.
func (s *Storage) DeleteNotification(ctx context.Context, id string) error {
	items, err := s.ListNotifications(ctx)
	if err != nil {
		return err
	}
	filtered := items[:0]
	for _, n := range items {
		if n.ID != id {
			filtered = append(filtered, n)
		}
	}
	return s.SaveNotifications(ctx, filtered)
}
