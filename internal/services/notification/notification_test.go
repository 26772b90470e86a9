package notification

import (
	"context"
	"errors"
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

type recordingBroadcaster struct {
	messages []models.BroadcastMessage
	err      error
}

func (b *recordingBroadcaster) Broadcast(msg models.BroadcastMessage) error {
	if b.err != nil {
		return b.err
	}
	b.messages = append(b.messages, msg)
	return nil
}

func newTestService(t *testing.T, b Broadcaster) *Service {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	repo := repository.New(kv.NewMemoryStore(), log)
	return New(repo, b, clock.Fixed{T: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}, log)
}

func TestCreatePrependsAndBroadcasts(t *testing.T) {
	b := &recordingBroadcaster{}
	s := newTestService(t, b)
	ctx := context.Background()

	first, err := s.Create(ctx, models.NotificationTypeSystem, "first", models.PriorityLow)
	require.NoError(t, err)
	second, err := s.Create(ctx, models.NotificationTypeSystem, "second", models.PriorityHigh)
	require.NoError(t, err)

	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	// новые в начале
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID)

	require.Len(t, b.messages, 2)
	assert.Equal(t, "new_notification", b.messages[0].Type)
	assert.Equal(t, "first", b.messages[0].Notification.Message)
}

func TestCreateSurvivesBroadcastFailure(t *testing.T) {
	b := &recordingBroadcaster{err: errors.New("channel closed")}
	s := newTestService(t, b)
	ctx := context.Background()

	n, err := s.Create(ctx, models.NotificationTypeUser, "hello", models.PriorityMedium)
	require.NoError(t, err)
	require.NotNil(t, n)

	items, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCreateWithoutBroadcaster(t *testing.T) {
	s := newTestService(t, nil)
	_, err := s.Create(context.Background(), models.NotificationTypeUser, "hello", models.PriorityLow)
	require.NoError(t, err)
}

func TestUnreadCountAndMarkRead(t *testing.T) {
	s := newTestService(t, nil)
	ctx := context.Background()

	n1, err := s.Create(ctx, models.NotificationTypeSystem, "a", models.PriorityLow)
	require.NoError(t, err)
	_, err = s.Create(ctx, models.NotificationTypeSystem, "b", models.PriorityLow)
	require.NoError(t, err)

	count, err := s.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, s.MarkRead(ctx, n1.ID))
	// повторная пометка — no-op
	require.NoError(t, s.MarkRead(ctx, n1.ID))

	count, err = s.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, s.MarkAllRead(ctx))
	count, err = s.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestHandleEvent(t *testing.T) {
	cases := []struct {
		name         string
		event        events.Event
		wantType     string
		wantPriority string
	}{
		{
			name:         "регистрация пользователя",
			event:        events.UserRegistered{Email: "a@b.com", Name: "A"},
			wantType:     models.NotificationTypeUser,
			wantPriority: models.PriorityMedium,
		},
		{
			name:         "деградация до error",
			event:        events.HealthDegraded{Component: "api", Status: models.StatusError},
			wantType:     models.NotificationTypeSystem,
			wantPriority: models.PriorityHigh,
		},
		{
			name:         "деградация до warning",
			event:        events.HealthDegraded{Component: "cache", Status: models.StatusWarning},
			wantType:     models.NotificationTypeSystem,
			wantPriority: models.PriorityMedium,
		},
		{
			name:         "отметка выручки",
			event:        events.RevenueMilestone{Revenue: 10000},
			wantType:     models.NotificationTypeRevenue,
			wantPriority: models.PriorityHigh,
		},
		{
			name:         "отчет готов",
			event:        events.ReportReady{Report: models.Report{Name: "Monthly"}},
			wantType:     models.NotificationTypeReport,
			wantPriority: models.PriorityLow,
		},
		{
			name:         "отчет не сгенерирован",
			event:        events.ReportFailed{Report: models.Report{Name: "Monthly"}, Reason: "disk full"},
			wantType:     models.NotificationTypeReport,
			wantPriority: models.PriorityHigh,
		},
		{
			name:         "новое обращение",
			event:        events.ContactReceived{Subject: "Help", Email: "a@b.com"},
			wantType:     models.NotificationTypeSupport,
			wantPriority: models.PriorityMedium,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestService(t, nil)
			ctx := context.Background()

			s.HandleEvent(ctx, tc.event)

			items, err := s.List(ctx)
			require.NoError(t, err)
			require.Len(t, items, 1)
			assert.Equal(t, tc.wantType, items[0].Type)
			assert.Equal(t, tc.wantPriority, items[0].Priority)
		})
	}
}

func TestToggleSettingSuppressesCreation(t *testing.T) {
	s := newTestService(t, nil)
	ctx := context.Background()

	require.NoError(t, s.ToggleSetting(ctx, "notify_user", false))

	n, err := s.Create(ctx, models.NotificationTypeUser, "hidden", models.PriorityLow)
	require.NoError(t, err)
	assert.Nil(t, n)

	items, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	// другие категории не затронуты
	n, err = s.Create(ctx, models.NotificationTypeSystem, "visible", models.PriorityLow)
	require.NoError(t, err)
	assert.NotNil(t, n)
}

func TestToggleUnknownSetting(t *testing.T) {
	s := newTestService(t, nil)
	err := s.ToggleSetting(context.Background(), "notify_ghost", true)
	assert.ErrorIs(t, err, ErrSettingNotFound)
}

func TestSettingsSeededOnce(t *testing.T) {
	s := newTestService(t, nil)
	ctx := context.Background()

	first, err := s.Settings(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	require.NoError(t, s.ToggleSetting(ctx, first[0].ID, false))

	again, err := s.Settings(ctx)
	require.NoError(t, err)
	assert.False(t, again[0].Enabled, "повторное чтение не должно пересеивать дефолты")
}
