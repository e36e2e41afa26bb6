// Package dedup tracks job URLs seen in earlier sweeps using Redis. The
// orchestrator's per-sweep URL set is authoritative for in-run dedup; this
// cache only spares the store from re-upserting URLs that were already
// inserted, so entries are marked after a successful insert, never before.
package dedup

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// URLCache checks and records seen job URLs in Redis with a TTL.
type URLCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewURLCache creates a Redis-backed seen-URL cache.
func NewURLCache(client *redis.Client, prefix string, ttl time.Duration) *URLCache {
	if prefix == "" {
		prefix = "job:seen"
	}
	if ttl == 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &URLCache{client: client, prefix: prefix, ttl: ttl}
}

// Seen reports whether url was marked in an earlier sweep.
func (c *URLCache) Seen(ctx context.Context, url string) (bool, error) {
	exists, err := c.client.Exists(ctx, c.key(url)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return exists > 0, nil
}

// Mark records url as seen with the cache TTL.
func (c *URLCache) Mark(ctx context.Context, url string) error {
	if err := c.client.Set(ctx, c.key(url), time.Now().Unix(), c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *URLCache) key(url string) string {
	return fmt.Sprintf("%s:%s", c.prefix, url)
}
