package cache_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pamela-lang/pamela/internal/cache"
)

func openTestCache(t *testing.T) *cache.Cache {
	t.Helper()
	path := filepath.Join(t.TempDir(), "compile.db")
	c, err := cache.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCacheMissThenHit(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	_, ok, err := c.Lookup(ctx, "deadbeef")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Store(ctx, "deadbeef", []string{"a.pamela"}, []byte(`{"a":1}`)))

	got, ok, err := c.Lookup(ctx, "deadbeef")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"a":1}`, string(got))
}

func TestCacheStoreIsIdempotent(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Store(ctx, "h1", []string{"a.pamela"}, []byte(`{"a":1}`)))
	require.NoError(t, c.Store(ctx, "h1", []string{"a.pamela"}, []byte(`{"a":1}`)))

	got, ok, err := c.Lookup(ctx, "h1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"a":1}`, string(got))
}
