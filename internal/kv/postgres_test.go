package kv

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/investwisepro/admin-console/internal/migrations"
)

func setupPostgresStore(t *testing.T) (*PostgresStore, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	store, err := NewPostgresStore(dsn)
	require.NoError(t, err)

	migrationsPath, err := filepath.Abs("../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(store.DB, migrationsPath))

	cleanup := func() {
		_ = store.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return store, cleanup
}

func TestPostgresStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	store, cleanup := setupPostgresStore(t)
	defer cleanup()

	ctx := context.Background()

	t.Run("отсутствующий слот", func(t *testing.T) {
		var got []string
		found, err := store.Get(ctx, "missing", &got)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("запись и чтение слота", func(t *testing.T) {
		want := []string{"alpha", "beta"}
		require.NoError(t, store.Set(ctx, KeyUsers, want))

		var got []string
		found, err := store.Get(ctx, KeyUsers, &got)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, want, got)
	})

	t.Run("перезапись слота целиком", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, KeySessions, map[string]string{"a": "1"}))
		require.NoError(t, store.Set(ctx, KeySessions, map[string]string{"b": "2"}))

		var got map[string]string
		found, err := store.Get(ctx, KeySessions, &got)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, map[string]string{"b": "2"}, got)
	})

	t.Run("удаление слота", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, KeyReports, []int{1, 2, 3}))
		require.NoError(t, store.Delete(ctx, KeyReports))

		var got []int
		found, err := store.Get(ctx, KeyReports, &got)
		require.NoError(t, err)
		assert.False(t, found)

		// Повторное удаление отсутствующего слота не является ошибкой.
		require.NoError(t, store.Delete(ctx, KeyReports))
	})
}
