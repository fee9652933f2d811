// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Tests that need Valkey are skipped when it is unavailable.
package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"blogsquare/internal/cache"
	"blogsquare/internal/carousel"
	"blogsquare/internal/contact"
	"blogsquare/internal/middleware"
	"blogsquare/internal/render"
	"blogsquare/internal/site"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:     envOr("VALKEY_HOST", "localhost") + ":" + envOr("VALKEY_PORT", "6379"),
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		for _, pattern := range []string{"page:*", "prefs:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// testOptions keeps the contact form and carousel timers short.
var testOptions = PublicOptions{
	ThemeStore: "cookie",
	Contact:    contact.Options{Latency: 5 * time.Millisecond, ResetAfter: 50 * time.Millisecond},
	Carousel:   carousel.Options{Interval: 30 * time.Millisecond, Transition: 10 * time.Millisecond},
}

// testEnv holds the dependencies for handler tests.
type testEnv struct {
	Renderer  *render.Renderer
	Site      *site.Site
	PageCache *cache.PageCache
	Public    *Public
}

// newTestEnv builds the page handlers with the built-in categories and no
// page cache.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithCache(t, nil)
}

func newTestEnvWithCache(t *testing.T, pc *cache.PageCache) *testEnv {
	t.Helper()

	renderer, err := render.New(true)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	s, err := site.New(context.Background(), nil, true)
	if err != nil {
		t.Fatalf("site.New: %v", err)
	}

	return &testEnv{
		Renderer:  renderer,
		Site:      s,
		PageCache: pc,
		Public:    NewPublic(renderer, s, pc, testOptions),
	}
}

// serve runs h behind the cookie-backed Theme middleware.
func serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	middleware.Theme(middleware.ThemeOptions{})(h).ServeHTTP(rec, req)
	return rec
}
