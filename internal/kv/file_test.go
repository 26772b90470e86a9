package kv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	var missing []string
	found, err := store.Get(ctx, KeyUsers, &missing)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, KeyUsers, []string{"a", "b"}))

	var got []string
	found, err = store.Get(ctx, KeyUsers, &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestFileStoreDelete(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, KeyCurrentUser, "sess-1"))
	require.NoError(t, store.Delete(ctx, KeyCurrentUser))

	var got string
	found, err := store.Get(ctx, KeyCurrentUser, &got)
	require.NoError(t, err)
	assert.False(t, found)

	// повторное удаление отсутствующего слота не ошибка
	require.NoError(t, store.Delete(ctx, KeyCurrentUser))
}

func TestFileStoreMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, KeyUsers+".json"), []byte("{broken"), 0o644))

	var got []string
	_, err = store.Get(context.Background(), KeyUsers, &got)
	assert.Error(t, err)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, KeyReports, map[string]int{"n": 1}))

	var got map[string]int
	found, err := store.Get(ctx, KeyReports, &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1, got["n"])

	require.NoError(t, store.Delete(ctx, KeyReports))
	found, err = store.Get(ctx, KeyReports, &got)
	require.NoError(t, err)
	assert.False(t, found)
}
