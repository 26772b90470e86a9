package contact

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

type recordingBroadcaster struct {
	messages []models.BroadcastMessage
}

func (b *recordingBroadcaster) Broadcast(msg models.BroadcastMessage) error {
	b.messages = append(b.messages, msg)
	return nil
}

func newTestService(t *testing.T, sink EventSink) *Service {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	repo := repository.New(kv.NewMemoryStore(), log)
	return New(repo, sink, nil, clock.Fixed{T: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}, log)
}

func TestAddPrependsWithStatusNew(t *testing.T) {
	sink := &recordingSink{}
	s := newTestService(t, sink)
	ctx := context.Background()

	first, err := s.Add(ctx, models.ContactRequest{Name: "Alice", Email: "a@b.com", Subject: "First", Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, models.ContactStatusNew, first.Status)

	second, err := s.Add(ctx, models.ContactRequest{Name: "Bob", Email: "b@b.com", Subject: "Second", Message: "hi"})
	require.NoError(t, err)

	contacts, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	// новые в начале
	assert.Equal(t, second.ID, contacts[0].ID)
	assert.Equal(t, first.ID, contacts[1].ID)

	require.Len(t, sink.events, 2)
	ev, ok := sink.events[0].(events.ContactReceived)
	require.True(t, ok)
	assert.Equal(t, "First", ev.Subject)
}

func TestUpdateStatus(t *testing.T) {
	s := newTestService(t, nil)
	ctx := context.Background()

	c, err := s.Add(ctx, models.ContactRequest{Name: "Alice", Email: "a@b.com", Subject: "S", Message: "m"})
	require.NoError(t, err)

	require.NoError(t, s.UpdateStatus(ctx, c.ID, models.ContactStatusReplied))

	contacts, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ContactStatusReplied, contacts[0].Status)

	// неизвестный ID — no-op
	require.NoError(t, s.UpdateStatus(ctx, "contact_ghost", models.ContactStatusRead))
}

func TestDeleteIdempotent(t *testing.T) {
	s := newTestService(t, nil)
	ctx := context.Background()

	c, err := s.Add(ctx, models.ContactRequest{Name: "Alice", Email: "a@b.com", Subject: "S", Message: "m"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, c.ID))
	require.NoError(t, s.Delete(ctx, c.ID))

	contacts, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, contacts)
}

func TestCounts(t *testing.T) {
	s := newTestService(t, nil)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		c, err := s.Add(ctx, models.ContactRequest{Name: "N", Email: "n@b.com", Subject: "S", Message: "m"})
		require.NoError(t, err)
		ids = append(ids, c.ID)
	}
	require.NoError(t, s.UpdateStatus(ctx, ids[0], models.ContactStatusRead))
	require.NoError(t, s.UpdateStatus(ctx, ids[1], models.ContactStatusReplied))

	counts, err := s.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ContactCounts{Total: 3, New: 1, Read: 1, Replied: 1}, counts)
}

func TestMutationsBroadcast(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	repo := repository.New(kv.NewMemoryStore(), log)
	broadcaster := &recordingBroadcaster{}
	s := New(repo, nil, broadcaster, clock.Fixed{T: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}, log)
	ctx := context.Background()

	c, err := s.Add(ctx, models.ContactRequest{Name: "N", Email: "n@b.com", Subject: "S", Message: "m"})
	require.NoError(t, err)
	require.NoError(t, s.UpdateStatus(ctx, c.ID, models.ContactStatusRead))
	require.NoError(t, s.Delete(ctx, c.ID))

	// сигнал публикуется после каждой мутации списка
	require.Len(t, broadcaster.messages, 3)
	for _, msg := range broadcaster.messages {
		assert.Equal(t, "contact_submissions_updated", msg.Type)
	}
}

func TestRecentLimit(t *testing.T) {
	s := newTestService(t, nil)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		_, err := s.Add(ctx, models.ContactRequest{Name: "N", Email: "n@b.com", Subject: "S", Message: "m"})
		require.NoError(t, err)
	}

	recent, err := s.Recent(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, recent, 5)
}
