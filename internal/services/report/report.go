// Package report реализует жизненный цикл отчётов: запись создаётся
// в статусе generating, генерация идёт в фоне и переводит запись в
// completed с готовым файлом либо в failed.
package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/investwisepro/admin-console/internal/config"
	"github.com/investwisepro/admin-console/internal/events"
	"github.com/investwisepro/admin-console/internal/lib/clock"
	"github.com/investwisepro/admin-console/internal/lib/sl"
	"github.com/investwisepro/admin-console/internal/models"
)

// Ошибки сервиса отчётов.
var (
	ErrReportNotFound = errors.New("report not found")
	ErrReportNotReady = errors.New("report is not ready for download")
)

// Косметические размеры готовых отчётов.
var reportSizes = []string{"856 KB", "1.2 MB", "1.8 MB", "2.4 MB", "3.1 MB"}

// Имена отчётов по типам.
var reportNames = map[string]string{
	models.ReportTypeUser:        "User Analytics Report",
	models.ReportTypeCalculation: "Calculation Usage Report",
	models.ReportTypeExport:      "Export Statistics Report",
	models.ReportTypeSupport:     "Support Requests Report",
	models.ReportTypeSystem:      "System Health Report",
	models.ReportTypeRevenue:     "Revenue Report",
}

// Repository описывает данные, нужные для генерации и хранения отчётов.
type Repository interface {
	ListReports(ctx context.Context) ([]models.Report, error)
	PrependReport(ctx context.Context, r models.Report) error
	GetReport(ctx context.Context, id string) (*models.Report, error)
	UpdateReport(ctx context.Context, updated models.Report) error
	DeleteReport(ctx context.Context, id string) error

	ListUsers(ctx context.Context) ([]models.User, error)
	ListContacts(ctx context.Context) ([]models.ContactSubmission, error)
	ListCalculations(ctx context.Context) ([]models.ActivityRecord, error)
	ListExports(ctx context.Context) ([]models.ActivityRecord, error)
	GetSystemHealth(ctx context.Context) (*models.SystemHealth, error)
}

// EventSink принимает события жизненного цикла отчётов.
type EventSink interface {
	HandleEvent(ctx context.Context, ev events.Event)
}

// Service реализует операции над отчётами.
type Service struct {
	repo  Repository
	sink  EventSink // может быть nil
	clock clock.Clock
	cfg   config.Reports
	log   *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
	wg  sync.WaitGroup
}

// New создает новый Service. sink может быть nil.
func New(repo Repository, sink EventSink, clk clock.Clock, cfg config.Reports, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		sink:  sink,
		clock: clk,
		cfg:   cfg,
		log:   log,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Generate сохраняет запись отчёта в статусе generating и запускает
// генерацию в фоне. Возвращает запись сразу, не дожидаясь результата.
func (s *Service) Generate(ctx context.Context, req models.GenerateReportRequest) (*models.Report, error) {
	const op = "services.report.Generate"

	r := models.Report{
		ID:        "report_" + uuid.NewString(),
		Name:      reportNames[req.Type],
		Type:      req.Type,
		Format:    req.Format,
		CreatedAt: s.clock.Now(),
		Status:    models.ReportStatusGenerating,
	}
	if err := s.repo.PrependReport(ctx, r); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		s.finish(ctx, r)
	}()
	return &r, nil
}

// Flush дожидается завершения всех фоновых генераций.
// Используется при остановке сервиса и в тестах.
func (s *Service) Flush() {
	s.wg.Wait()
}

// List возвращает все отчёты, новые — первыми.
func (s *Service) List(ctx context.Context) ([]models.Report, error) {
	return s.repo.ListReports(ctx)
}

// Download возвращает запись отчёта и путь к его файлу.
func (s *Service) Download(ctx context.Context, id string) (*models.Report, string, error) {
	const op = "services.report.Download"

	r, err := s.repo.GetReport(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	if r == nil {
		return nil, "", ErrReportNotFound
	}
	if r.Status != models.ReportStatusCompleted {
		return nil, "", ErrReportNotReady
	}
	return r, filepath.Join(s.cfg.Dir, r.FileName), nil
}

// Delete удаляет запись отчёта и его файл. Повторное удаление — no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	const op = "services.report.Delete"

	r, err := s.repo.GetReport(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if r != nil && r.FileName != "" {
		if err := os.Remove(filepath.Join(s.cfg.Dir, r.FileName)); err != nil && !os.IsNotExist(err) {
			s.log.Warn("failed to remove report file", sl.Op(op), sl.Err(err))
		}
	}
	return s.repo.DeleteReport(ctx, id)
}

// finish выполняет генерацию: искусственная задержка, рендеринг,
// запись файла и перевод записи в completed либо failed.
func (s *Service) finish(ctx context.Context, r models.Report) {
	const op = "services.report.finish"

	select {
	case <-time.After(s.delay()):
	case <-ctx.Done():
		s.fail(r, ctx.Err())
		return
	}

	rows, err := s.buildRows(ctx, r.Type)
	if err != nil {
		s.fail(r, err)
		return
	}

	var content []byte
	switch r.Format {
	case models.ReportFormatPDF:
		content, err = renderHTML(r.Name, s.clock.Now(), rows)
	default:
		content, err = renderCSV(r.Name, s.clock.Now(), rows)
	}
	if err != nil {
		s.fail(r, err)
		return
	}

	fileName := buildFileName(r.Name, r.Format, s.clock.Now())
	if err := os.MkdirAll(s.cfg.Dir, 0o755); err != nil {
		s.fail(r, err)
		return
	}
	if err := os.WriteFile(filepath.Join(s.cfg.Dir, fileName), content, 0o644); err != nil {
		s.fail(r, err)
		return
	}

	r.Status = models.ReportStatusCompleted
	r.Size = s.pickSize()
	r.FileName = fileName
	r.DownloadURL = "/api/v1/reports/" + r.ID + "/download"
	if err := s.repo.UpdateReport(ctx, r); err != nil {
		s.log.Error("failed to complete report", sl.Op(op), sl.Err(err))
		return
	}

	if s.sink != nil {
		s.sink.HandleEvent(ctx, events.ReportReady{Report: r})
	}
	s.log.Info("report generated",
		slog.String("id", r.ID), slog.String("type", r.Type), slog.String("file", fileName))
}

// fail переводит запись в failed. Ошибка перевода только логируется:
// откатывать уже нечего.
func (s *Service) fail(r models.Report, cause error) {
	const op = "services.report.fail"

	s.log.Error("report generation failed",
		sl.Op(op), slog.String("id", r.ID), sl.Err(cause))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	r.Status = models.ReportStatusFailed
	if err := s.repo.UpdateReport(ctx, r); err != nil {
		s.log.Error("failed to mark report as failed", sl.Op(op), sl.Err(err))
		return
	}
	if s.sink != nil {
		s.sink.HandleEvent(ctx, events.ReportFailed{Report: r, Reason: cause.Error()})
	}
}

func (s *Service) delay() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cfg.MaxDelay <= s.cfg.MinDelay {
		return s.cfg.MinDelay
	}
	return s.cfg.MinDelay + time.Duration(s.rng.Int63n(int64(s.cfg.MaxDelay-s.cfg.MinDelay)))
}

func (s *Service) pickSize() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return reportSizes[s.rng.Intn(len(reportSizes))]
}

// buildRows собирает содержимое отчёта из хранилищ по его типу.
func (s *Service) buildRows(ctx context.Context, reportType string) ([]row, error) {
	switch reportType {
	case models.ReportTypeUser:
		return s.userRows(ctx)
	case models.ReportTypeCalculation:
		return s.calculationRows(ctx)
	case models.ReportTypeExport:
		return s.exportRows(ctx)
	case models.ReportTypeSupport:
		return s.supportRows(ctx)
	case models.ReportTypeSystem:
		return s.systemRows(ctx)
	case models.ReportTypeRevenue:
		return s.revenueRows(ctx)
	default:
		return nil, fmt.Errorf("unknown report type: %s", reportType)
	}
}

func (s *Service) userRows(ctx context.Context) ([]row, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	active, fresh := 0, 0
	for _, u := range users {
		if now.Sub(u.LastLogin) <= 30*24*time.Hour {
			active++
		}
		if now.Sub(u.RegistrationDate) <= 7*24*time.Hour {
			fresh++
		}
	}
	return []row{
		{"Total users", fmt.Sprintf("%d", len(users))},
		{"Active users (30d)", fmt.Sprintf("%d", active)},
		{"New users (7d)", fmt.Sprintf("%d", fresh)},
	}, nil
}

func (s *Service) calculationRows(ctx context.Context) ([]row, error) {
	calcs, err := s.repo.ListCalculations(ctx)
	if err != nil {
		return nil, err
	}
	byScenario := map[string]int{}
	for _, c := range calcs {
		byScenario[c.Scenario]++
	}
	top, topCount := "", 0
	for name, count := range byScenario {
		if count > topCount {
			top, topCount = name, count
		}
	}
	rows := []row{
		{"Total calculations", fmt.Sprintf("%d", len(calcs))},
		{"Distinct scenarios", fmt.Sprintf("%d", len(byScenario))},
	}
	if top != "" {
		rows = append(rows, row{"Top scenario", fmt.Sprintf("%s (%d)", top, topCount)})
	}
	return rows, nil
}

func (s *Service) exportRows(ctx context.Context) ([]row, error) {
	exports, err := s.repo.ListExports(ctx)
	if err != nil {
		return nil, err
	}
	byTemplate := map[string]int{}
	for _, e := range exports {
		byTemplate[e.Template]++
	}
	rows := []row{{"Total exports", fmt.Sprintf("%d", len(exports))}}
	for template, count := range byTemplate {
		rows = append(rows, row{"Template " + template, fmt.Sprintf("%d", count)})
	}
	return rows, nil
}

func (s *Service) supportRows(ctx context.Context) ([]row, error) {
	contacts, err := s.repo.ListContacts(ctx)
	if err != nil {
		return nil, err
	}
	counts := map[string]int{}
	for _, c := range contacts {
		counts[c.Status]++
	}
	return []row{
		{"Total submissions", fmt.Sprintf("%d", len(contacts))},
		{"New", fmt.Sprintf("%d", counts[models.ContactStatusNew])},
		{"Read", fmt.Sprintf("%d", counts[models.ContactStatusRead])},
		{"Replied", fmt.Sprintf("%d", counts[models.ContactStatusReplied])},
	}, nil
}

func (s *Service) systemRows(ctx context.Context) ([]row, error) {
	health, err := s.repo.GetSystemHealth(ctx)
	if err != nil {
		return nil, err
	}
	if health == nil {
		return []row{{"System health", "no snapshot recorded"}}, nil
	}
	return []row{
		{"API", health.APIStatus},
		{"Database", health.DatabaseStatus},
		{"Cache", health.CacheStatus},
		{"Uptime", health.Uptime},
		{"Active connections", fmt.Sprintf("%d", health.ActiveConnections)},
		{"Response time", fmt.Sprintf("%d ms", health.Performance.ResponseTime)},
		{"Error rate", fmt.Sprintf("%.2f%%", health.Performance.ErrorRate*100)},
		{"Throughput", fmt.Sprintf("%d rpm", health.Performance.Throughput)},
	}, nil
}

func (s *Service) revenueRows(ctx context.Context) ([]row, error) {
	calcs, err := s.repo.ListCalculations(ctx)
	if err != nil {
		return nil, err
	}
	exports, err := s.repo.ListExports(ctx)
	if err != nil {
		return nil, err
	}
	revenue := float64(len(exports))*25 + float64(len(calcs))*2
	growth := 15 + float64(len(calcs))/100
	return []row{
		{"Revenue", fmt.Sprintf("$%.2f", revenue)},
		{"Growth rate", fmt.Sprintf("%.2f%%", growth)},
		{"Calculations", fmt.Sprintf("%d", len(calcs))},
		{"Exports", fmt.Sprintf("%d", len(exports))},
	}, nil
}

// buildFileName строит имя файла вида <имя>_<дата>.<расширение>.
// Excel сохраняется с расширением csv.
func buildFileName(name, format string, at time.Time) string {
	ext := "csv"
	if format == models.ReportFormatPDF {
		ext = "pdf"
	}
	return fmt.Sprintf("%s_%s.%s", sanitize(name), at.Format("2006-01-02"), ext)
}

// sanitize приводит имя к нижнему регистру и заменяет всё,
// кроме букв и цифр, на подчёркивания.
func sanitize(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
