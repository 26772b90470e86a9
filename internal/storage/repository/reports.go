package repository

import (
	"context"
	"fmt"

	"github.com/investwisepro/admin-console/internal/kv"
	"github.com/investwisepro/admin-console/internal/models"
)

// ListReports возвращает все отчёты, новые — в начале списка.
func (s *Storage) ListReports(ctx context.Context) ([]models.Report, error) {
	const op = "repository.ListReports"
	var reports []models.Report
	if _, err := s.kv.Get(ctx, kv.KeyReports, &reports); err != nil {
		s.logCorrupt(op, kv.KeyReports, err)
		return nil, nil
	}
	return reports, nil
}

// SaveReports перезаписывает список отчётов целиком.
func (s *Storage) SaveReports(ctx context.Context, reports []models.Report) error {
	const op = "repository.SaveReports"
	if err := s.kv.Set(ctx, kv.KeyReports, reports); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// PrependReport добавляет отчёт в начало списка. Строка в статусе
// generating персистится сразу, чтобы параллельное чтение видело
// отчёт в процессе генерации.
func (s *Storage) PrependReport(ctx context.Context, r models.Report) error {
	reports, err := s.ListReports(ctx)
	if err != nil {
		return err
	}
	return s.SaveReports(ctx, append([]models.Report{r}, reports...))
}

// GetReport возвращает отчёт по ID или nil.
func (s *Storage) GetReport(ctx context.Context, id string) (*models.Report, error) {
	reports, err := s.ListReports(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range reports {
		if r.ID == id {
			found := r
			return &found, nil
		}
	}
	return nil, nil
}

// UpdateReport заменяет отчёт с совпадающим ID.
func (s *Storage) UpdateReport(ctx context.Context, updated models.Report) error {
	reports, err := s.ListReports(ctx)
	if err != nil {
		return err
	}
	for i, r := range reports {
		if r.ID == updated.ID {
			reports[i] = updated
			return s.SaveReports(ctx, reports)
		}
	}
	return nil
}

// DeleteReport удаляет отчёт по ID. Отсутствующий ID не ошибка.
func (s *Storage) DeleteReport(ctx context.Context, id string) error {
	reports, err := s.ListReports(ctx)
	if err != nil {
		return err
	}
	filtered := reports[:0]
	for _, r := range reports {
		if r.ID != id {
			filtered = append(filtered, r)
		}
	}
	return s.SaveReports(ctx, filtered)
}
