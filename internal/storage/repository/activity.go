package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/investwisepro/admin-console/internal/kv"
	"github.com/investwisepro/admin-console/internal/models"
)

// ListCalculations возвращает журнал расчётов, новые записи в начале.
func (s *Storage) ListCalculations(ctx context.Context) ([]models.ActivityRecord, error) {
	const op = "repository.ListCalculations"
	var records []models.ActivityRecord
	if _, err := s.kv.Get(ctx, kv.KeyCalculations, &records); err != nil {
		s.logCorrupt(op, kv.KeyCalculations, err)
		return nil, nil
	}
	return records, nil
}

// ListExports возвращает журнал экспортов, новые записи в начале.
func (s *Storage) ListExports(ctx context.Context) ([]models.ActivityRecord, error) {
	const op = "repository.ListExports"
	var records []models.ActivityRecord
	if _, err := s.kv.Get(ctx, kv.KeyExports, &records); err != nil {
		s.logCorrupt(op, kv.KeyExports, err)
		return nil, nil
	}
	return records, nil
}

// PrependCalculation добавляет запись расчёта в начало журнала,
// обрезая журнал до последних 1000 записей.
func (s *Storage) PrependCalculation(ctx context.Context, r models.ActivityRecord) error {
	const op = "repository.PrependCalculation"
	records, err := s.ListCalculations(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	records = append([]models.ActivityRecord{r}, records...)
	if len(records) > maxLogEntries {
		records = records[:maxLogEntries]
	}
	if err := s.kv.Set(ctx, kv.KeyCalculations, records); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// PrependExport добавляет запись экспорта в начало журнала,
// обрезая журнал до последних 1000 записей.
func (s *Storage) PrependExport(ctx context.Context, r models.ActivityRecord) error {
	const op = "repository.PrependExport"
	records, err := s.ListExports(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	records = append([]models.ActivityRecord{r}, records...)
	if len(records) > maxLogEntries {
		records = records[:maxLogEntries]
	}
	if err := s.kv.Set(ctx, kv.KeyExports, records); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// TouchLastActivity запоминает время последнего действия.
func (s *Storage) TouchLastActivity(ctx context.Context, t time.Time) error {
	const op = "repository.TouchLastActivity"
	if err := s.kv.Set(ctx, kv.KeyLastActivity, t); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
