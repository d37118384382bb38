// Package cache provides an optional Redis cache for day availability
// snapshots. Values are JSON with a TTL; a nil Redis client turns every
// operation into a no-op so callers never branch on whether caching is on.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// AvailabilityCache caches per room+date availability snapshots.
type AvailabilityCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New creates a cache. rdb may be nil to disable caching.
func New(rdb *redis.Client, ttl time.Duration) *AvailabilityCache {
	return &AvailabilityCache{rdb: rdb, ttl: ttl}
}

func key(roomID int64, date string) string {
	return fmt.Sprintf("availability:%d:%s", roomID, date)
}

// GetDay reads a cached snapshot into out. Returns false on miss, decode
// failure or when caching is disabled.
func (c *AvailabilityCache) GetDay(ctx context.Context, roomID int64, date string, out any) bool {
	if c == nil || c.rdb == nil || c.ttl <= 0 {
		return false
	}
	val, err := c.rdb.Get(ctx, key(roomID, date)).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		return false
	}
	return true
}

// SetDay stores a snapshot. Failures are dropped; the cache is advisory.
func (c *AvailabilityCache) SetDay(ctx context.Context, roomID int64, date string, val any) {
	if c == nil || c.rdb == nil || c.ttl <= 0 {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, key(roomID, date), data, c.ttl).Err()
}

// Invalidate drops the snapshot for room+date. Called after every write
// that can change availability.
func (c *AvailabilityCache) Invalidate(ctx context.Context, roomID int64, date string) {
	if c == nil || c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, key(roomID, date)).Err()
}
