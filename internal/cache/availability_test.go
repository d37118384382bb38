package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapshot struct {
	Date  string `json:"date"`
	Slots []int  `json:"slots"`
}

func newTestCache(t *testing.T, ttl time.Duration) *AvailabilityCache {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return New(rdb, ttl)
}

func TestAvailabilityCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t, time.Minute)

	var got snapshot
	require.False(t, c.GetDay(ctx, 1, "2026-09-10", &got), "empty cache should miss")

	want := snapshot{Date: "2026-09-10", Slots: []int{480, 510, 540}}
	c.SetDay(ctx, 1, "2026-09-10", want)

	require.True(t, c.GetDay(ctx, 1, "2026-09-10", &got))
	assert.Equal(t, want, got)

	// Another room's key is independent.
	assert.False(t, c.GetDay(ctx, 2, "2026-09-10", &got))
}

func TestAvailabilityCacheInvalidate(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t, time.Minute)

	c.SetDay(ctx, 1, "2026-09-10", snapshot{Date: "2026-09-10"})
	c.Invalidate(ctx, 1, "2026-09-10")

	var got snapshot
	assert.False(t, c.GetDay(ctx, 1, "2026-09-10", &got), "invalidated key should miss")
}

func TestAvailabilityCacheDisabled(t *testing.T) {
	ctx := context.Background()
	c := New(nil, time.Minute)

	// A nil client disables the cache without panics.
	c.SetDay(ctx, 1, "2026-09-10", snapshot{})
	c.Invalidate(ctx, 1, "2026-09-10")

	var got snapshot
	assert.False(t, c.GetDay(ctx, 1, "2026-09-10", &got))
}
