package health

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func newTestService(t *testing.T, source MetricsSource, sink EventSink) *Service {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	repo := repository.New(kv.NewMemoryStore(), log)
	clk := clock.Fixed{T: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
	return New(repo, source, sink, clk, time.Minute, log)
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name  string
		score float64
		want  string
	}{
		{"здоровая подсистема", 0.5, models.StatusHealthy},
		{"порог warning не включается", 0.7, models.StatusHealthy},
		{"warning", 0.75, models.StatusWarning},
		{"порог error не включается", 0.9, models.StatusWarning},
		{"error", 0.95, models.StatusError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, classify(tc.score, apiErrorAt, apiWarningAt))
		})
	}
}

func TestRefreshPersistsSnapshot(t *testing.T) {
	source := FixedSource{M: Metrics{
		APIScore:          0.1,
		DatabaseScore:     0.1,
		CacheScore:        0.1,
		UptimePercent:     99.9,
		BackupAge:         2 * time.Hour,
		ActiveConnections: 120,
		ResponseTime:      80,
		ErrorRate:         0.01,
		Throughput:        950,
	}}
	s := newTestService(t, source, nil)
	ctx := context.Background()

	snapshot, err := s.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.StatusHealthy, snapshot.APIStatus)
	assert.Equal(t, "99.90%", snapshot.Uptime)
	assert.Equal(t, 120, snapshot.ActiveConnections)

	stored, err := s.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, snapshot, stored)
}

func TestCurrentRefreshesOnFirstRead(t *testing.T) {
	s := newTestService(t, FixedSource{M: Metrics{UptimePercent: 99.5}}, nil)

	snapshot, err := s.Current(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Equal(t, models.StatusHealthy, snapshot.APIStatus)
}

func TestRefreshEmitsDegradationOnce(t *testing.T) {
	sink := &recordingSink{}
	s := newTestService(t, FixedSource{M: Metrics{APIScore: 0.95}}, sink)
	ctx := context.Background()

	_, err := s.Refresh(ctx)
	require.NoError(t, err)
	require.Len(t, sink.events, 1)
	ev, ok := sink.events[0].(events.HealthDegraded)
	require.True(t, ok)
	assert.Equal(t, "api", ev.Component)
	assert.Equal(t, models.StatusError, ev.Status)

	// статус не изменился: повторного события нет
	_, err = s.Refresh(ctx)
	require.NoError(t, err)
	assert.Len(t, sink.events, 1)
}

func TestStartStopIdempotent(t *testing.T) {
	s := newTestService(t, FixedSource{}, nil)
	ctx := context.Background()

	s.Start(ctx)
	s.Start(ctx) // повторный запуск — no-op
	s.Stop()
	s.Stop() // повторная остановка — no-op
}
