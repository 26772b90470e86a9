package repository

import (
	"context"
	"fmt"

	"github.com/investwisepro/admin-console/internal/kv"
	"github.com/investwisepro/admin-console/internal/models"
)

// ListSessions возвращает все сессии, включая завершённые.
func (s *Storage) ListSessions(ctx context.Context) ([]models.Session, error) {
	const op = "repository.ListSessions"
	var sessions []models.Session
	if _, err := s.kv.Get(ctx, kv.KeySessions, &sessions); err != nil {
		s.logCorrupt(op, kv.KeySessions, err)
		return nil, nil
	}
	return sessions, nil
}

// SaveSessions перезаписывает список сессий целиком.
func (s *Storage) SaveSessions(ctx context.Context, sessions []models.Session) error {
	const op = "repository.SaveSessions"
	if err := s.kv.Set(ctx, kv.KeySessions, sessions); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetSession возвращает активную сессию по идентификатору или nil.
func (s *Storage) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	sessions, err := s.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	for _, sess := range sessions {
		if sess.SessionID == sessionID && sess.IsActive {
			found := sess
			return &found, nil
		}
	}
	return nil, nil
}

// EndSession переводит сессию в неактивное состояние.
// Сессии никогда не удаляются из списка.
func (s *Storage) EndSession(ctx context.Context, sessionID string) error {
	const op = "repository.EndSession"
	sessions, err := s.ListSessions(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	for i, sess := range sessions {
		if sess.SessionID == sessionID {
			sessions[i].IsActive = false
			return s.SaveSessions(ctx, sessions)
		}
	}
	return nil
}

// GetCurrentSessionID возвращает сохранённый указатель текущей сессии.
func (s *Storage) GetCurrentSessionID(ctx context.Context) (string, error) {
	const op = "repository.GetCurrentSessionID"
	var id string
	if _, err := s.kv.Get(ctx, kv.KeyCurrentUser, &id); err != nil {
		s.logCorrupt(op, kv.KeyCurrentUser, err)
		return "", nil
	}
	return id, nil
}

// SetCurrentSessionID запоминает текущую сессию. Одновременно
// признаётся только одна сессия, как в исходной системе.
func (s *Storage) SetCurrentSessionID(ctx context.Context, id string) error {
	const op = "repository.SetCurrentSessionID"
	if err := s.kv.Set(ctx, kv.KeyCurrentUser, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ClearCurrentSessionID сбрасывает указатель текущей сессии.
func (s *Storage) ClearCurrentSessionID(ctx context.Context) error {
	const op = "repository.ClearCurrentSessionID"
	if err := s.kv.Delete(ctx, kv.KeyCurrentUser); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
