// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// pageKeyPrefix is the Valkey key prefix for cached pages.
	pageKeyPrefix = "page:"

	// DefaultPageTTL is how long a rendered page stays cached.
	DefaultPageTTL = 5 * time.Minute

	scanBatch = 100
)

// PageCache stores rendered HTML in Valkey. Every page exists once per
// theme marker, since the marker is rendered into the root element.
//
// A nil *PageCache is valid and never hits, so handlers need no branch
// when Valkey is not configured.
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPageCache creates a new page cache backed by the given Valkey client.
func NewPageCache(client *redis.Client, ttl time.Duration) *PageCache {
	if ttl <= 0 {
		ttl = DefaultPageTTL
	}
	return &PageCache{client: client, ttl: ttl}
}

// PageKey returns the cache key for a page rendered with a theme marker.
func PageKey(page, marker string) string {
	return page + ":" + marker
}

// Get retrieves cached HTML for a page key.
func (pc *PageCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if pc == nil {
		return nil, false
	}
	val, err := pc.client.Get(ctx, pageKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("page cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("page cache hit", "key", key)
	return val, true
}

// Set stores rendered HTML for a page key with the configured TTL. Errors
// are logged; the caller has already served the page.
func (pc *PageCache) Set(ctx context.Context, key string, html []byte) {
	if pc == nil {
		return
	}
	if err := pc.client.Set(ctx, pageKeyPrefix+key, html, pc.ttl).Err(); err != nil {
		slog.Warn("page cache set error", "key", key, "error", err)
	}
}

// Invalidate removes every cached variant of a page.
func (pc *PageCache) Invalidate(ctx context.Context, page string) {
	pc.deleteMatching(ctx, pageKeyPrefix+page+":*")
}

// InvalidateAll removes all cached pages by scanning for the prefix. It is
// called at startup because a new binary may ship different templates.
func (pc *PageCache) InvalidateAll(ctx context.Context) {
	pc.deleteMatching(ctx, pageKeyPrefix+"*")
}

// deleteMatching unlinks keys matching pattern in batches of scanBatch.
func (pc *PageCache) deleteMatching(ctx context.Context, pattern string) {
	if pc == nil {
		return
	}
	var deleted int
	batch := make([]string, 0, scanBatch)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := pc.client.Unlink(ctx, batch...).Err(); err != nil {
			slog.Warn("page cache unlink error", "pattern", pattern, "error", err)
		} else {
			deleted += len(batch)
		}
		batch = batch[:0]
	}

	iter := pc.client.Scan(ctx, 0, pattern, scanBatch).Iterator()
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == scanBatch {
			flush()
		}
	}
	flush()
	if err := iter.Err(); err != nil {
		slog.Warn("page cache scan error", "pattern", pattern, "error", err)
	}
	if deleted > 0 {
		slog.Info("page cache cleared", "pattern", pattern, "deleted", deleted)
	}
}
