// Package contact содержит бизнес-логику обращений через контактную форму.
package contact

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/investwisepro/admin-console/internal/events"
	"github.com/investwisepro/admin-console/internal/lib/clock"
	"github.com/investwisepro/admin-console/internal/lib/sl"
	"github.com/investwisepro/admin-console/internal/models"
)

// Repository описывает контракт для хранения обращений.
type Repository interface {
	ListContacts(ctx context.Context) ([]models.ContactSubmission, error)
	PrependContact(ctx context.Context, c models.ContactSubmission) error
	UpdateContactStatus(ctx context.Context, id, status string) error
	DeleteContact(ctx context.Context, id string) error
}

// EventSink принимает типизированные события консоли.
// Обработка best-effort: сбой получателя не влияет на сохранение обращения.
type EventSink interface {
	HandleEvent(ctx context.Context, ev events.Event)
}

// Broadcaster публикует широковещательное сообщение об изменении
// списка обращений, чтобы открытые представления могли обновиться.
type Broadcaster interface {
	Broadcast(msg models.BroadcastMessage) error
}

// Service реализует операции над обращениями.
type Service struct {
	repo        Repository
	sink        EventSink   // может быть nil
	broadcaster Broadcaster // может быть nil
	clock       clock.Clock
	log         *slog.Logger
}

// New создает новый Service. sink и broadcaster могут быть nil.
func New(repo Repository, sink EventSink, broadcaster Broadcaster, clk clock.Clock, log *slog.Logger) *Service {
	return &Service{repo: repo, sink: sink, broadcaster: broadcaster, clock: clk, log: log}
}

// Add сохраняет новое обращение со статусом new в начало списка
// и публикует событие ContactReceived.
func (s *Service) Add(ctx context.Context, req models.ContactRequest) (*models.ContactSubmission, error) {
	const op = "services.contact.Add"

	c := models.ContactSubmission{
		ID:        "contact_" + uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		Timestamp: s.clock.Now(),
		Status:    models.ContactStatusNew,
	}
	if err := s.repo.PrependContact(ctx, c); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.sink != nil {
		s.sink.HandleEvent(ctx, events.ContactReceived{Subject: c.Subject, Email: c.Email})
	}
	s.broadcastChanged()
	return &c, nil
}

// broadcastChanged публикует сигнал contact_submissions_updated после
// каждой мутации списка. Сбой публикации не считается ошибкой операции.
func (s *Service) broadcastChanged() {
	if s.broadcaster == nil {
		return
	}
	if err := s.broadcaster.Broadcast(models.BroadcastMessage{Type: "contact_submissions_updated"}); err != nil {
		s.log.Warn("failed to broadcast contacts update", sl.Err(err))
	}
}

// List возвращает все обращения, новые — первыми.
func (s *Service) List(ctx context.Context) ([]models.ContactSubmission, error) {
	return s.repo.ListContacts(ctx)
}

// Recent возвращает не более n последних обращений.
func (s *Service) Recent(ctx context.Context, n int) ([]models.ContactSubmission, error) {
	contacts, err := s.repo.ListContacts(ctx)
	if err != nil {
		return nil, err
	}
	if len(contacts) > n {
		contacts = contacts[:n]
	}
	return contacts, nil
}

// UpdateStatus меняет статус обращения. Неизвестный ID — no-op.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) error {
	if err := s.repo.UpdateContactStatus(ctx, id, status); err != nil {
		return err
	}
	s.broadcastChanged()
	return nil
}

// Delete удаляет обращение. Повторное удаление — no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteContact(ctx, id); err != nil {
		return err
	}
	s.broadcastChanged()
	return nil
}

// Counts возвращает количество обращений по статусам.
func (s *Service) Counts(ctx context.Context) (models.ContactCounts, error) {
	contacts, err := s.repo.ListContacts(ctx)
	if err != nil {
		return models.ContactCounts{}, err
	}
	counts := models.ContactCounts{Total: len(contacts)}
	for _, c := range contacts {
		switch c.Status {
		case models.ContactStatusNew:
			counts.New++
		case models.ContactStatusRead:
			counts.Read++
		case models.ContactStatusReplied:
			counts.Replied++
		}
	}
	return counts, nil
}
