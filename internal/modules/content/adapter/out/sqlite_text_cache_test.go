package out_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contentout "jornada/internal/modules/content/adapter/out"
	"jornada/internal/modules/content/domain"
)

func newCache(t *testing.T) *contentout.SQLiteTextCache {
	t.Helper()
	cache, err := contentout.NewSQLiteTextCache(filepath.Join(t.TempDir(), "nested", "offline.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestSQLiteTextCachePutGetRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cache := newCache(t)
	savedAt := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	require.NoError(t, cache.Put(ctx, domain.NewCachedText("ARC", "Gênesis 1-4", "1 No princípio...", savedAt)))

	got, ok, err := cache.Get(ctx, domain.OfflineKey("ARC", "Gênesis 1-4"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Gênesis 1-4", got.Reference)
	assert.Equal(t, "ARC", got.Edition)
	assert.Equal(t, "1 No princípio...", got.Text)
	assert.True(t, savedAt.Equal(got.SavedAt))

	_, ok, err = cache.Get(ctx, domain.OfflineKey("KJV", "Gênesis 1-4"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteTextCachePutOverwrites(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cache := newCache(t)
	now := time.Now().UTC()

	require.NoError(t, cache.Put(ctx, domain.NewCachedText("ARC", "Salmos 23", "old", now)))
	require.NoError(t, cache.Put(ctx, domain.NewCachedText("ARC", "Salmos 23", "new", now)))

	got, ok, err := cache.Get(ctx, domain.OfflineKey("ARC", "Salmos 23"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "new", got.Text)

	items, err := cache.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestSQLiteTextCacheRemoveAndClearKeepIndexConsistent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cache := newCache(t)
	now := time.Now().UTC()

	for _, ref := range []string{"Gênesis 1-4", "Gênesis 5-8", "Gênesis 9-11"} {
		require.NoError(t, cache.Put(ctx, domain.NewCachedText("ARC", ref, "texto "+ref, now)))
	}

	removed, err := cache.Remove(ctx, domain.OfflineKey("ARC", "Gênesis 5-8"))
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = cache.Remove(ctx, domain.OfflineKey("ARC", "Gênesis 5-8"))
	require.NoError(t, err)
	assert.False(t, removed)

	items, err := cache.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		_, ok, err := cache.Get(ctx, item.Key)
		require.NoError(t, err)
		assert.True(t, ok, "index entry %s has no text", item.Key)
	}

	cleared, err := cache.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, cleared)
	items, err = cache.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSQLiteTextCachePersistsAcrossReopen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "offline.db")

	first, err := contentout.NewSQLiteTextCache(path)
	require.NoError(t, err)
	require.NoError(t, first.Put(ctx, domain.NewCachedText("KJV", "John 3", "For God so loved", time.Now())))
	require.NoError(t, first.Close())

	second, err := contentout.NewSQLiteTextCache(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })
	_, ok, err := second.Get(ctx, domain.OfflineKey("KJV", "John 3"))
	require.NoError(t, err)
	assert.True(t, ok)
}
