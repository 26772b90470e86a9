// Package health пересчитывает и хранит синтетический снимок состояния
// системы. Хранится только последний снимок, история не ведётся.
package health

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/investwisepro/admin-console/internal/events"
	"github.com/investwisepro/admin-console/internal/lib/clock"
	"github.com/investwisepro/admin-console/internal/lib/sl"
	"github.com/investwisepro/admin-console/internal/models"
)

// Пороги классификации подсистем. Чем выше замер, тем хуже состояние.
const (
	apiErrorAt   = 0.9
	apiWarningAt = 0.7

	databaseErrorAt   = 0.95
	databaseWarningAt = 0.85

	cacheErrorAt   = 0.92
	cacheWarningAt = 0.8
)

// Repository описывает контракт для хранения снимка состояния.
type Repository interface {
	GetSystemHealth(ctx context.Context) (*models.SystemHealth, error)
	SaveSystemHealth(ctx context.Context, health models.SystemHealth) error
}

// EventSink принимает события деградации подсистем.
type EventSink interface {
	HandleEvent(ctx context.Context, ev events.Event)
}

// Service пересчитывает снимок состояния по требованию и по таймеру.
type Service struct {
	repo     Repository
	source   MetricsSource
	sink     EventSink // может быть nil
	clock    clock.Clock
	log      *slog.Logger
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New создает новый Service. sink может быть nil.
func New(repo Repository, source MetricsSource, sink EventSink, clk clock.Clock, interval time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		source:   source,
		sink:     sink,
		clock:    clk,
		log:      log,
		interval: interval,
	}
}

// Current возвращает последний снимок, пересчитывая его при первом чтении.
func (s *Service) Current(ctx context.Context) (*models.SystemHealth, error) {
	const op = "services.health.Current"

	snapshot, err := s.repo.GetSystemHealth(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if snapshot != nil {
		return snapshot, nil
	}
	return s.Refresh(ctx)
}

// Refresh строит новый снимок из источника замеров, сохраняет его
// и публикует HealthDegraded для подсистем, ухудшившихся с прошлого снимка.
func (s *Service) Refresh(ctx context.Context) (*models.SystemHealth, error) {
	const op = "services.health.Refresh"

	previous, err := s.repo.GetSystemHealth(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	m := s.source.Sample()
	now := s.clock.Now()
	snapshot := models.SystemHealth{
		APIStatus:         classify(m.APIScore, apiErrorAt, apiWarningAt),
		DatabaseStatus:    classify(m.DatabaseScore, databaseErrorAt, databaseWarningAt),
		CacheStatus:       classify(m.CacheScore, cacheErrorAt, cacheWarningAt),
		Uptime:            fmt.Sprintf("%.2f%%", m.UptimePercent),
		LastBackup:        now.Add(-m.BackupAge),
		ActiveConnections: m.ActiveConnections,
		Performance: models.Performance{
			ResponseTime: m.ResponseTime,
			ErrorRate:    m.ErrorRate,
			Throughput:   m.Throughput,
		},
	}
	if err := s.repo.SaveSystemHealth(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.emitDegradations(ctx, previous, snapshot)
	return &snapshot, nil
}

// Start запускает периодический пересчёт снимка. Повторный вызов — no-op.
func (s *Service) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done

	go s.run(ctx, done)
	s.log.Info("health monitor started", slog.Duration("interval", s.interval))
}

// Stop останавливает периодический пересчёт и ждёт завершения горутины.
func (s *Service) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	s.log.Info("health monitor stopped")
}

func (s *Service) run(ctx context.Context, done chan struct{}) {
	const op = "services.health.run"
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Refresh(ctx); err != nil {
				s.log.Error("failed to refresh system health", sl.Op(op), sl.Err(err))
			}
		}
	}
}

func (s *Service) emitDegradations(ctx context.Context, previous *models.SystemHealth, current models.SystemHealth) {
	if s.sink == nil {
		return
	}

	components := []struct {
		name     string
		previous string
		current  string
	}{
		{"api", statusOrHealthy(previous, func(h *models.SystemHealth) string { return h.APIStatus }), current.APIStatus},
		{"database", statusOrHealthy(previous, func(h *models.SystemHealth) string { return h.DatabaseStatus }), current.DatabaseStatus},
		{"cache", statusOrHealthy(previous, func(h *models.SystemHealth) string { return h.CacheStatus }), current.CacheStatus},
	}
	for _, c := range components {
		if c.current != models.StatusHealthy && c.current != c.previous {
			s.sink.HandleEvent(ctx, events.HealthDegraded{Component: c.name, Status: c.current})
		}
	}
}

func statusOrHealthy(h *models.SystemHealth, pick func(*models.SystemHealth) string) string {
	if h == nil {
		return models.StatusHealthy
	}
	return pick(h)
}

func classify(score, errorAt, warningAt float64) string {
	switch {
	case score > errorAt:
		return models.StatusError
	case score > warningAt:
		return models.StatusWarning
	default:
		return models.StatusHealthy
	}
}
