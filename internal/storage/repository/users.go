package repository

import (
	"context"
	"fmt"

	"github.com/investwisepro/admin-console/internal/kv"
	"github.com/investwisepro/admin-console/internal/models"
)

// ListUsers возвращает всех зарегистрированных пользователей.
func (s *Storage) ListUsers(ctx context.Context) ([]models.User, error) {
	const op = "repository.ListUsers"
	var users []models.User
	if _, err := s.kv.Get(ctx, kv.KeyUsers, &users); err != nil {
		s.logCorrupt(op, kv.KeyUsers, err)
		return nil, nil
	}
	return users, nil
}

// SaveUsers перезаписывает список пользователей целиком.
func (s *Storage) SaveUsers(ctx context.Context, users []models.User) error {
	const op = "repository.SaveUsers"
	if err := s.kv.Set(ctx, kv.KeyUsers, users); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateUser заменяет пользователя с совпадающим ID.
// Отсутствующий пользователь — no-op.
func (s *Storage) UpdateUser(ctx context.Context, updated models.User) error {
	const op = "repository.UpdateUser"
	users, err := s.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	for i, u := range users {
		if u.ID == updated.ID {
			users[i] = updated
			return s.SaveUsers(ctx, users)
		}
	}
	return nil
}

// DeleteUser удаляет пользователя по ID (фильтрация с перезаписью).
func (s *Storage) DeleteUser(ctx context.Context, id string) error {
	const op = "repository.DeleteUser"
	users, err := s.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	filtered := users[:0]
	for _, u := range users {
		if u.ID != id {
			filtered = append(filtered, u)
		}
	}
	return s.SaveUsers(ctx, filtered)
}

// GetAdminCredentials возвращает учётные данные администратора или nil.
func (s *Storage) GetAdminCredentials(ctx context.Context) (*models.AdminCredentials, error) {
	const op = "repository.GetAdminCredentials"
	var creds models.AdminCredentials
	found, err := s.kv.Get(ctx, kv.KeyAdminCredentials, &creds)
	if err != nil {
		s.logCorrupt(op, kv.KeyAdminCredentials, err)
		return nil, nil
	}
	if !found {
		return nil, nil
	}
	return &creds, nil
}

// SaveAdminCredentials сохраняет учётные данные администратора.
func (s *Storage) SaveAdminCredentials(ctx context.Context, creds models.AdminCredentials) error {
	const op = "repository.SaveAdminCredentials"
	if err := s.kv.Set(ctx, kv.KeyAdminCredentials, creds); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
