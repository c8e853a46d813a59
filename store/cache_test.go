package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingResolver struct {
	disabled []string
	public   []string
	err      error
	calls    int
}

func (r *countingResolver) ResolveGroups(context.Context, string) ([]string, []string, error) {
	r.calls++
	return r.disabled, r.public, r.err
}

func newTestCache(t *testing.T, inner GroupResolver) (*CachedResolver, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCachedResolver(inner, client, time.Minute, nil, nil), mr
}

func TestCachedResolver_MissThenHit(t *testing.T) {
	inner := &countingResolver{disabled: []string{"archive"}, public: []string{"week1"}}
	cache, _ := newTestCache(t, inner)
	ctx := context.Background()

	disabled, public, err := cache.ResolveGroups(ctx, "bio200")
	require.NoError(t, err)
	assert.Equal(t, []string{"archive"}, disabled)
	assert.Equal(t, []string{"week1"}, public)
	assert.Equal(t, 1, inner.calls)

	// Second call is served from cache.
	disabled, public, err = cache.ResolveGroups(ctx, "bio200")
	require.NoError(t, err)
	assert.Equal(t, []string{"archive"}, disabled)
	assert.Equal(t, []string{"week1"}, public)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedResolver_TTLExpiry(t *testing.T) {
	inner := &countingResolver{public: []string{"week1"}}
	cache, mr := newTestCache(t, inner)
	ctx := context.Background()

	_, _, err := cache.ResolveGroups(ctx, "bio200")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, _, err = cache.ResolveGroups(ctx, "bio200")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedResolver_RedisDownFallsThrough(t *testing.T) {
	inner := &countingResolver{public: []string{"week1"}}
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewCachedResolver(inner, client, time.Minute, nil, nil)
	mr.Close()

	_, public, err := cache.ResolveGroups(context.Background(), "bio200")
	require.NoError(t, err)
	assert.Equal(t, []string{"week1"}, public)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedResolver_InnerErrorPropagates(t *testing.T) {
	inner := &countingResolver{err: errors.New("database down")}
	cache, _ := newTestCache(t, inner)

	_, _, err := cache.ResolveGroups(context.Background(), "bio200")
	assert.Error(t, err)
}

func TestCachedResolver_Invalidate(t *testing.T) {
	inner := &countingResolver{public: []string{"week1"}}
	cache, _ := newTestCache(t, inner)
	ctx := context.Background()

	_, _, err := cache.ResolveGroups(ctx, "bio200")
	require.NoError(t, err)
	require.NoError(t, cache.Invalidate(ctx, "bio200"))

	_, _, err = cache.ResolveGroups(ctx, "bio200")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedResolver_DropsCorruptEntry(t *testing.T) {
	inner := &countingResolver{public: []string{"week1"}}
	cache, mr := newTestCache(t, inner)
	require.NoError(t, mr.Set(cacheKey("bio200"), "{not json"))

	_, public, err := cache.ResolveGroups(context.Background(), "bio200")
	require.NoError(t, err)
	assert.Equal(t, []string{"week1"}, public)
	assert.Equal(t, 1, inner.calls)
}
