// Package admin пересчитывает агрегированную сводку панели
// администратора, ведёт журналы активности, системные настройки
// и симулируемые системные действия.
package admin

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/investwisepro/admin-console/internal/events"
	"github.com/investwisepro/admin-console/internal/lib/clock"
	"github.com/investwisepro/admin-console/internal/lib/sl"
	"github.com/investwisepro/admin-console/internal/models"
)

// Порог отметки выручки: событие публикуется при пересечении
// каждого следующего кратного значения.
const revenueMilestoneStep = 1000.0

// Repository описывает данные, из которых строится сводка.
type Repository interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	ListContacts(ctx context.Context) ([]models.ContactSubmission, error)
	ListCalculations(ctx context.Context) ([]models.ActivityRecord, error)
	ListExports(ctx context.Context) ([]models.ActivityRecord, error)
	PrependCalculation(ctx context.Context, r models.ActivityRecord) error
	PrependExport(ctx context.Context, r models.ActivityRecord) error
	TouchLastActivity(ctx context.Context, t time.Time) error
	GetSystemHealth(ctx context.Context) (*models.SystemHealth, error)
	ListSystemSettings(ctx context.Context) ([]models.SystemSetting, error)
	SaveSystemSettings(ctx context.Context, settings []models.SystemSetting) error
}

// EventSink принимает события консоли.
type EventSink interface {
	HandleEvent(ctx context.Context, ev events.Event)
}

// GrowthSource поставляет синтетический процент роста сценария.
// В тестах заменяется детерминированной заглушкой.
type GrowthSource interface {
	ScenarioGrowth(name string) float64
}

// RandomGrowth — случайный рост в диапазоне [0, 25).
type RandomGrowth struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomGrowth создает источник с собственным генератором.
func NewRandomGrowth() *RandomGrowth {
	return &RandomGrowth{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// ScenarioGrowth возвращает случайный процент роста.
func (g *RandomGrowth) ScenarioGrowth(string) float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return math.Round(g.rng.Float64()*250) / 10
}

// FixedGrowth возвращает один и тот же рост. Используется в тестах.
type FixedGrowth struct {
	V float64
}

// ScenarioGrowth возвращает заданный процент роста.
func (g FixedGrowth) ScenarioGrowth(string) float64 { return g.V }

// Service реализует агрегацию и журналы активности.
type Service struct {
	repo   Repository
	cache  StatsCache
	sink   EventSink // может быть nil
	growth GrowthSource
	clock  clock.Clock
	log    *slog.Logger
}

// New создает новый Service. sink может быть nil,
// cache — NoopCache, если Redis не настроен.
func New(repo Repository, cache StatsCache, sink EventSink, growth GrowthSource, clk clock.Clock, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		sink:   sink,
		growth: growth,
		clock:  clk,
		log:    log,
	}
}

// Stats возвращает агрегированную сводку. Результат кэшируется
// на короткое время; сбой кэша не мешает пересчёту.
func (s *Service) Stats(ctx context.Context) (*models.AdminStats, error) {
	const op = "services.admin.Stats"

	if cached, ok, err := s.cache.Get(ctx); err != nil {
		s.log.Warn("stats cache read failed", sl.Op(op), sl.Err(err))
	} else if ok {
		return cached, nil
	}

	stats, err := s.aggregate(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(ctx, *stats); err != nil {
		s.log.Warn("stats cache write failed", sl.Op(op), sl.Err(err))
	}
	return stats, nil
}

// RecordActivity добавляет запись в журнал расчётов или экспортов,
// обновляет отметку последней активности и публикует RevenueMilestone
// при пересечении очередной отметки выручки.
func (s *Service) RecordActivity(ctx context.Context, kind, user, label string) (*models.ActivityRecord, error) {
	const op = "services.admin.RecordActivity"

	before, err := s.revenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	r := models.ActivityRecord{
		ID:        "activity_" + uuid.NewString(),
		Type:      kind,
		User:      user,
		Timestamp: s.clock.Now(),
		Status:    "completed",
	}
	switch kind {
	case models.ActivityCalculation:
		r.Scenario = label
		err = s.repo.PrependCalculation(ctx, r)
	case models.ActivityExport:
		r.Template = label
		err = s.repo.PrependExport(ctx, r)
	default:
		return nil, fmt.Errorf("%s: unknown activity kind: %s", op, kind)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.TouchLastActivity(ctx, r.Timestamp); err != nil {
		s.log.Warn("failed to touch last activity", sl.Op(op), sl.Err(err))
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("stats cache invalidation failed", sl.Op(op), sl.Err(err))
	}

	after, err := s.revenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if s.sink != nil && math.Floor(after/revenueMilestoneStep) > math.Floor(before/revenueMilestoneStep) {
		s.sink.HandleEvent(ctx, events.RevenueMilestone{Revenue: after})
	}
	return &r, nil
}

// RecentActivity объединяет последние записи обоих журналов:
// по 5 из каждого, сортировка по времени, не более 10.
func (s *Service) RecentActivity(ctx context.Context) ([]models.ActivityRecord, error) {
	const op = "services.admin.RecentActivity"

	calcs, err := s.repo.ListCalculations(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	exports, err := s.repo.ListExports(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	merged := append(head(calcs, 5), head(exports, 5)...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp.After(merged[j].Timestamp)
	})
	return head(merged, 10), nil
}

// aggregate пересчитывает сводку из хранилищ.
func (s *Service) aggregate(ctx context.Context) (*models.AdminStats, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	contacts, err := s.repo.ListContacts(ctx)
	if err != nil {
		return nil, err
	}
	calcs, err := s.repo.ListCalculations(ctx)
	if err != nil {
		return nil, err
	}
	exports, err := s.repo.ListExports(ctx)
	if err != nil {
		return nil, err
	}
	health, err := s.repo.GetSystemHealth(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.RecentActivity(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	active := 0
	for _, u := range users {
		if now.Sub(u.LastLogin) <= 30*24*time.Hour {
			active++
		}
	}
	newContacts := 0
	for _, c := range contacts {
		if c.Status == models.ContactStatusNew {
			newContacts++
		}
	}

	return &models.AdminStats{
		TotalUsers:        len(users),
		ActiveUsers:       active,
		TotalCalculations: len(calcs),
		TotalExports:      len(exports),
		Revenue:           revenueOf(len(calcs), len(exports)),
		GrowthRate:        15 + float64(len(calcs))/100,
		TotalContacts:     len(contacts),
		NewContacts:       newContacts,
		PopularScenarios:  s.popularScenarios(calcs),
		ExportStats:       exportStats(exports),
		RecentActivity:    recent,
		SystemHealth:      health,
	}, nil
}

// popularScenarios группирует расчёты по сценариям и возвращает
// пять самых используемых.
func (s *Service) popularScenarios(calcs []models.ActivityRecord) []models.ScenarioUsage {
	byScenario := map[string]int{}
	for _, c := range calcs {
		if c.Scenario != "" {
			byScenario[c.Scenario]++
		}
	}
	scenarios := make([]models.ScenarioUsage, 0, len(byScenario))
	for name, usage := range byScenario {
		scenarios = append(scenarios, models.ScenarioUsage{
			Name:   name,
			Usage:  usage,
			Growth: s.growth.ScenarioGrowth(name),
		})
	}
	sort.Slice(scenarios, func(i, j int) bool {
		if scenarios[i].Usage != scenarios[j].Usage {
			return scenarios[i].Usage > scenarios[j].Usage
		}
		return scenarios[i].Name < scenarios[j].Name
	})
	if len(scenarios) > 5 {
		scenarios = scenarios[:5]
	}
	return scenarios
}

// exportStats группирует экспорты по шаблонам с целочисленными процентами.
func exportStats(exports []models.ActivityRecord) []models.TemplateStat {
	if len(exports) == 0 {
		return nil
	}
	byTemplate := map[string]int{}
	for _, e := range exports {
		if e.Template != "" {
			byTemplate[e.Template]++
		}
	}
	stats := make([]models.TemplateStat, 0, len(byTemplate))
	for template, count := range byTemplate {
		stats = append(stats, models.TemplateStat{
			Template:   template,
			Count:      count,
			Percentage: count * 100 / len(exports),
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Template < stats[j].Template
	})
	return stats
}

func (s *Service) revenue(ctx context.Context) (float64, error) {
	calcs, err := s.repo.ListCalculations(ctx)
	if err != nil {
		return 0, err
	}
	exports, err := s.repo.ListExports(ctx)
	if err != nil {
		return 0, err
	}
	return revenueOf(len(calcs), len(exports)), nil
}

// revenueOf — детерминированная линейная функция счётчиков,
// унаследованная от исходной системы.
func revenueOf(calculations, exports int) float64 {
	return float64(exports)*25 + float64(calculations)*2
}

func head(records []models.ActivityRecord, n int) []models.ActivityRecord {
	if len(records) > n {
		records = records[:n]
	}
	return append([]models.ActivityRecord(nil), records...)
}
