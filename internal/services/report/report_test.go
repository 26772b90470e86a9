package report

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/investwisepro/admin-console/internal/config"
	"github.com/investwisepro/admin-console/internal/events"
	"github.com/investwisepro/admin-console/internal/kv"
	"github.com/investwisepro/admin-console/internal/lib/clock"
	"github.com/investwisepro/admin-console/internal/models"
	"github.com/investwisepro/admin-console/internal/storage/repository"
)

type recordingSink struct {
	events []events.Event
}

func (s *recordingSink) HandleEvent(_ context.Context, ev events.Event) {
	s.events = append(s.events, ev)
}

func newTestService(t *testing.T, sink EventSink) *Service {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	repo := repository.New(kv.NewMemoryStore(), log)
	cfg := config.Reports{Dir: t.TempDir()} // нулевая задержка в тестах
	clk := clock.Fixed{T: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
	return New(repo, sink, clk, cfg, log)
}

func TestGenerateLifecycleCompleted(t *testing.T) {
	sink := &recordingSink{}
	s := newTestService(t, sink)
	ctx := context.Background()

	r, err := s.Generate(ctx, models.GenerateReportRequest{Type: models.ReportTypeRevenue, Format: models.ReportFormatCSV})
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusGenerating, r.Status)
	assert.Equal(t, "Revenue Report", r.Name)

	s.Flush()

	reports, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	done := reports[0]
	assert.Equal(t, models.ReportStatusCompleted, done.Status)
	assert.Equal(t, "/api/v1/reports/"+r.ID+"/download", done.DownloadURL)
	assert.NotEmpty(t, done.Size)

	_, path, err := s.Download(ctx, r.ID)
	require.NoError(t, err)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Revenue Report")

	require.Len(t, sink.events, 1)
	_, ok := sink.events[0].(events.ReportReady)
	assert.True(t, ok)
}

func TestGeneratePDFRendersHTML(t *testing.T) {
	s := newTestService(t, nil)
	ctx := context.Background()

	r, err := s.Generate(ctx, models.GenerateReportRequest{Type: models.ReportTypeUser, Format: models.ReportFormatPDF})
	require.NoError(t, err)
	s.Flush()

	_, path, err := s.Download(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, ".pdf", filepath.Ext(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "<html>")
}

func TestGenerateUnknownTypeFails(t *testing.T) {
	sink := &recordingSink{}
	s := newTestService(t, sink)
	ctx := context.Background()

	r, err := s.Generate(ctx, models.GenerateReportRequest{Type: "bogus", Format: models.ReportFormatCSV})
	require.NoError(t, err)
	s.Flush()

	reports, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, models.ReportStatusFailed, reports[0].Status)
	assert.Empty(t, reports[0].DownloadURL)

	_, _, err = s.Download(ctx, r.ID)
	assert.ErrorIs(t, err, ErrReportNotReady)

	require.Len(t, sink.events, 1)
	failed, ok := sink.events[0].(events.ReportFailed)
	require.True(t, ok)
	assert.NotEmpty(t, failed.Reason)
}

func TestDownloadUnknownReport(t *testing.T) {
	s := newTestService(t, nil)
	_, _, err := s.Download(context.Background(), "report_ghost")
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestDeleteRemovesFile(t *testing.T) {
	s := newTestService(t, nil)
	ctx := context.Background()

	r, err := s.Generate(ctx, models.GenerateReportRequest{Type: models.ReportTypeSupport, Format: models.ReportFormatCSV})
	require.NoError(t, err)
	s.Flush()

	_, path, err := s.Download(ctx, r.ID)
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, r.ID))
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))

	// повторное удаление — no-op
	require.NoError(t, s.Delete(ctx, r.ID))

	reports, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestBuildFileName(t *testing.T) {
	at := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		format string
		want   string
	}{
		{"User Analytics Report", models.ReportFormatPDF, "user_analytics_report_2026-08-01.pdf"},
		{"Revenue Report", models.ReportFormatCSV, "revenue_report_2026-08-01.csv"},
		{"Revenue Report", models.ReportFormatExcel, "revenue_report_2026-08-01.csv"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, buildFileName(tc.name, tc.format, at))
	}
}
