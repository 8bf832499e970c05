package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResultCache stores computed KPI sections in Redis keyed by section name
// and window. Every calculator is a pure function of (window, snapshot), so
// a short TTL is the only invalidation needed. A nil or unreachable Redis
// degrades to recomputation, never to a request failure.
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewResultCache(client *redis.Client, ttl time.Duration) *ResultCache {
	return &ResultCache{client: client, ttl: ttl}
}

func cacheKey(section string, w Window) string {
	return fmt.Sprintf("kpi:%s:%s:%s", section, w.StartDate(), w.EndDate())
}

// Get unmarshals a cached section into dest and reports whether it was
// present.
func (c *ResultCache) Get(ctx context.Context, section string, w Window, dest any) bool {
	if c == nil || c.client == nil {
		return false
	}

	raw, err := c.client.Get(ctx, cacheKey(section, w)).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Debug("kpi cache read failed", "section", section, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		slog.Debug("kpi cache entry unreadable", "section", section, "error", err)
		return false
	}
	return true
}

func (c *ResultCache) Set(ctx context.Context, section string, w Window, value any) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		slog.Debug("kpi cache marshal failed", "section", section, "error", err)
		return
	}
	if err := c.client.Set(ctx, cacheKey(section, w), raw, c.ttl).Err(); err != nil {
		slog.Debug("kpi cache write failed", "section", section, "error", err)
	}
}
