// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package theme

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Storage is durable key-value storage for the theme preference.
// Get reports ok=false when the key has never been written.
type Storage interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// MemoryStorage keeps values for the lifetime of the process only. The
// controller falls back to it when durable storage fails.
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStorage returns an empty in-memory store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

// Get returns the stored value for key.
func (m *MemoryStorage) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set stores value under key.
func (m *MemoryStorage) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// CookieMaxAge is how long the preference cookie survives in the browser.
const CookieMaxAge = 365 * 24 * time.Hour

// CookieStorage persists values as cookies in the visitor's browser. It is
// bound to a single request/response pair: reads come from the request and
// writes go out as Set-Cookie headers. Cookies are readable from JavaScript
// so the first-paint script can see the stored marker.
type CookieStorage struct {
	r       *http.Request
	w       http.ResponseWriter
	secure  bool
	written map[string]string
}

// NewCookieStorage binds cookie storage to one request.
func NewCookieStorage(w http.ResponseWriter, r *http.Request, secure bool) *CookieStorage {
	return &CookieStorage{r: r, w: w, secure: secure, written: make(map[string]string)}
}

// Get returns the cookie value, preferring a value written earlier in the
// same request over the one the browser sent.
func (c *CookieStorage) Get(_ context.Context, key string) (string, bool, error) {
	if v, ok := c.written[key]; ok {
		return v, true, nil
	}
	cookie, err := c.r.Cookie(key)
	if err != nil {
		return "", false, nil // No cookie = never persisted.
	}
	return cookie.Value, true, nil
}

// Set writes the cookie on the response.
func (c *CookieStorage) Set(_ context.Context, key, value string) error {
	http.SetCookie(c.w, &http.Cookie{
		Name:     key,
		Value:    value,
		Path:     "/",
		MaxAge:   int(CookieMaxAge.Seconds()),
		HttpOnly: false,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	c.written[key] = value
	return nil
}
