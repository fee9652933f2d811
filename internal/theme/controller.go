// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package theme

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"
)

// ClientHintHeader carries the browser's prefers-color-scheme value when the
// server has asked for it via Accept-CH.
const ClientHintHeader = "Sec-CH-Prefers-Color-Scheme"

// PrefersDark reports whether the request signals a system-level dark mode
// preference. An absent or unknown hint counts as light.
func PrefersDark(r *http.Request) bool {
	v := strings.Trim(strings.TrimSpace(r.Header.Get(ClientHintHeader)), `"`)
	return strings.EqualFold(v, "dark")
}

// Controller is the single source of truth for the active theme of one
// page view. It is safe for concurrent use.
type Controller struct {
	mu       sync.Mutex
	storage  Storage
	scope    *Scope
	mode     Mode
	degraded bool
	subs     map[int]func(Mode)
	nextSub  int
}

// New runs the startup contract: the persisted marker wins, then the
// environment preference, then light. The chosen mode is applied to scope
// before New returns. A storage read failure degrades the controller to
// in-memory state and selects light.
func New(ctx context.Context, storage Storage, scope *Scope, prefersDark bool) *Controller {
	if scope == nil {
		scope = NewScope()
	}
	c := &Controller{
		storage: storage,
		scope:   scope,
		subs:    make(map[int]func(Mode)),
	}
	c.mode = c.initialMode(ctx, prefersDark)
	c.scope.Apply(c.mode)
	return c
}

func (c *Controller) initialMode(ctx context.Context, prefersDark bool) Mode {
	stored, ok, err := c.storage.Get(ctx, StorageKey)
	if err != nil {
		c.degrade(err)
		return Light
	}
	if ok {
		if m, valid := ParseMarker(stored); valid {
			return m
		}
		slog.Debug("ignoring unknown persisted theme", "value", stored)
	}
	if prefersDark {
		return Dark
	}
	return Light
}

// Mode returns the active mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Marker returns the marker class of the active mode.
func (c *Controller) Marker() string {
	return c.Mode().Marker()
}

// RootClass returns the root scope's class attribute. Pages render it
// into <html class="...">.
func (c *Controller) RootClass() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scope.String()
}

// Degraded reports whether durable storage failed and the controller is
// running on session-only state.
func (c *Controller) Degraded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.degraded
}

// Toggle flips the mode, re-applies the marker and persists the new value
// before returning. It returns the new mode.
func (c *Controller) Toggle(ctx context.Context) Mode {
	c.mu.Lock()
	next := c.mode.Opposite()
	c.mu.Unlock()
	c.Set(ctx, next)
	return next
}

// Set makes mode active, applies it and persists it synchronously.
// Subscribers are notified after the write.
func (c *Controller) Set(ctx context.Context, mode Mode) {
	if mode != Dark {
		mode = Light
	}

	c.mu.Lock()
	c.mode = mode
	c.scope.Apply(mode)
	if err := c.storage.Set(ctx, StorageKey, mode.Marker()); err != nil {
		c.degrade(err)
		// MemoryStorage never fails.
		_ = c.storage.Set(ctx, StorageKey, mode.Marker())
	}
	subs := make([]func(Mode), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(mode)
	}
}

// Subscribe registers fn to be called after every change. The returned
// function removes the subscription.
func (c *Controller) Subscribe(fn func(Mode)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// degrade swaps durable storage for in-memory storage. It does not lock;
// callers either hold c.mu or are still constructing c.
func (c *Controller) degrade(err error) {
	if c.degraded {
		return
	}
	slog.Warn("theme storage unavailable, using session-only state", "error", err)
	c.storage = NewMemoryStorage()
	c.degraded = true
}

type ctxKey struct{}

// WithController stores c in the context.
func WithController(ctx context.Context, c *Controller) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// FromContext returns the controller stored by WithController, or nil.
func FromContext(ctx context.Context) *Controller {
	c, _ := ctx.Value(ctxKey{}).(*Controller)
	return c
}
