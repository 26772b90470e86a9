package repository

import (
	"context"
	"fmt"

	"github.com/investwisepro/admin-console/internal/kv"
	"github.com/investwisepro/admin-console/internal/models"
)

// ListContacts возвращает все обращения, новые — в начале списка.
func (s *Storage) ListContacts(ctx context.Context) ([]models.ContactSubmission, error) {
	const op = "repository.ListContacts"
	var contacts []models.ContactSubmission
	if _, err := s.kv.Get(ctx, kv.KeyContactSubmissions, &contacts); err != nil {
		s.logCorrupt(op, kv.KeyContactSubmissions, err)
		return nil, nil
	}
	return contacts, nil
}

// SaveContacts перезаписывает список обращений целиком.
func (s *Storage) SaveContacts(ctx context.Context, contacts []models.ContactSubmission) error {
	const op = "repository.SaveContacts"
	if err := s.kv.Set(ctx, kv.KeyContactSubmissions, contacts); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// PrependContact добавляет обращение в начало списка.
func (s *Storage) PrependContact(ctx context.Context, c models.ContactSubmission) error {
	contacts, err := s.ListContacts(ctx)
	if err != nil {
		return err
	}
	return s.SaveContacts(ctx, append([]models.ContactSubmission{c}, contacts...))
}

// UpdateContactStatus меняет статус обращения по ID.
// Отсутствующее обращение — no-op.
func (s *Storage) UpdateContactStatus(ctx context.Context, id, status string) error {
	contacts, err := s.ListContacts(ctx)
	if err != nil {
		return err
	}
	for i, c := range contacts {
		if c.ID == id {
			contacts[i].Status = status
			return s.SaveContacts(ctx, contacts)
		}
	}
	return nil
}

// DeleteContact удаляет обращение по ID. Отсутствующий ID не ошибка:
// список остаётся неизменным.
func (s *Storage) DeleteContact(ctx context.Context, id string) error {
	contacts, err := s.ListContacts(ctx)
	if err != nil {
		return err
	}
	filtered := contacts[:0]
	for _, c := range contacts {
		if c.ID != id {
			filtered = append(filtered, c)
		}
	}
	return s.SaveContacts(ctx, filtered)
}
