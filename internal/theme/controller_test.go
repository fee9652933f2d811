// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package theme

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// failingStorage returns errors for reads and/or writes.
type failingStorage struct {
	failGet bool
	failSet bool
	sets    int
}

func (f *failingStorage) Get(_ context.Context, _ string) (string, bool, error) {
	if f.failGet {
		return "", false, errors.New("storage disabled")
	}
	return "", false, nil
}

func (f *failingStorage) Set(_ context.Context, _, _ string) error {
	f.sets++
	if f.failSet {
		return errors.New("quota exceeded")
	}
	return nil
}

// markerCount returns how many theme markers are on the scope.
func markerCount(s *Scope) int {
	n := 0
	if s.Has(LightMarker) {
		n++
	}
	if s.Has(DarkMarker) {
		n++
	}
	return n
}

func TestNewInitialMode(t *testing.T) {
	tests := []struct {
		name        string
		stored      string
		prefersDark bool
		want        Mode
	}{
		{"no value, prefers light", "", false, Light},
		{"no value, prefers dark", "", true, Dark},
		{"stored light beats prefers dark", LightMarker, true, Light},
		{"stored dark beats prefers light", DarkMarker, false, Dark},
		{"unknown stored value falls through to preference", "solarized", true, Dark},
		{"unknown stored value without preference", "solarized", false, Light},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			storage := NewMemoryStorage()
			if tt.stored != "" {
				storage.Set(ctx, StorageKey, tt.stored)
			}
			scope := NewScope()

			c := New(ctx, storage, scope, tt.prefersDark)

			if c.Mode() != tt.want {
				t.Errorf("mode: got %q, want %q", c.Mode(), tt.want)
			}
			if !scope.Has(tt.want.Marker()) {
				t.Errorf("scope %q should carry %q", scope, tt.want.Marker())
			}
			if markerCount(scope) != 1 {
				t.Errorf("expected exactly one marker, got %q", scope)
			}
		})
	}
}

func TestNewRemovesStaleMarkers(t *testing.T) {
	// Both markers present before startup, plus an unrelated class.
	scope := NewScope("antialiased", LightMarker, DarkMarker)

	New(context.Background(), NewMemoryStorage(), scope, true)

	if markerCount(scope) != 1 || !scope.Has(DarkMarker) {
		t.Errorf("scope after startup: got %q, want only %q marker", scope, DarkMarker)
	}
	if !scope.Has("antialiased") {
		t.Error("unrelated classes must be kept")
	}
}

func TestToggleKeepsExactlyOneMarker(t *testing.T) {
	ctx := context.Background()
	scope := NewScope()
	c := New(ctx, NewMemoryStorage(), scope, false)

	want := Light
	for i := 0; i < 7; i++ {
		want = want.Opposite()
		got := c.Toggle(ctx)
		if got != want {
			t.Fatalf("toggle %d: got %q, want %q", i+1, got, want)
		}
		if markerCount(scope) != 1 {
			t.Fatalf("toggle %d: expected exactly one marker, got %q", i+1, scope)
		}
		if !scope.Has(want.Marker()) {
			t.Fatalf("toggle %d: scope %q missing %q", i+1, scope, want.Marker())
		}
	}
}

func TestReloadRestoresLastToggle(t *testing.T) {
	for n := 0; n <= 4; n++ {
		ctx := context.Background()
		storage := NewMemoryStorage()

		// First page view: environment prefers dark.
		c := New(ctx, storage, NewScope(), true)
		last := c.Mode()
		for i := 0; i < n; i++ {
			last = c.Toggle(ctx)
		}

		// "Reload" with the opposite environment signal.
		reloaded := New(ctx, storage, NewScope(), false)

		if n == 0 {
			// Nothing persisted yet, so the new environment signal decides.
			if reloaded.Mode() != Light {
				t.Errorf("n=0: got %q, want light", reloaded.Mode())
			}
			continue
		}
		if reloaded.Mode() != last {
			t.Errorf("n=%d: reload got %q, want %q", n, reloaded.Mode(), last)
		}
	}
}

func TestTogglePersistsSynchronously(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	c := New(ctx, storage, NewScope(), false)

	c.Toggle(ctx)

	v, ok, _ := storage.Get(ctx, StorageKey)
	if !ok || v != DarkMarker {
		t.Errorf("persisted value: got %q (ok=%v), want %q", v, ok, DarkMarker)
	}
}

func TestStorageReadFailureDegradesToLight(t *testing.T) {
	ctx := context.Background()
	storage := &failingStorage{failGet: true}
	scope := NewScope()

	c := New(ctx, storage, scope, true)

	if c.Mode() != Light {
		t.Errorf("mode: got %q, want light on storage failure", c.Mode())
	}
	if !c.Degraded() {
		t.Error("controller should report degraded state")
	}

	// Toggling still works in memory and never touches the broken storage.
	if got := c.Toggle(ctx); got != Dark {
		t.Errorf("toggle: got %q, want dark", got)
	}
	if storage.sets != 0 {
		t.Errorf("broken storage written %d times, want 0", storage.sets)
	}
	if !scope.Has(DarkMarker) || markerCount(scope) != 1 {
		t.Errorf("scope: got %q", scope)
	}
}

func TestRootClassFollowsScope(t *testing.T) {
	ctx := context.Background()
	c := New(ctx, NewMemoryStorage(), NewScope("antialiased"), false)

	if got, want := c.RootClass(), "antialiased "+LightMarker; got != want {
		t.Errorf("RootClass: got %q, want %q", got, want)
	}
	c.Toggle(ctx)
	if got, want := c.RootClass(), "antialiased "+DarkMarker; got != want {
		t.Errorf("RootClass after toggle: got %q, want %q", got, want)
	}
}

func TestStorageWriteFailureKeepsMode(t *testing.T) {
	ctx := context.Background()
	storage := &failingStorage{failSet: true}
	c := New(ctx, storage, NewScope(), false)

	if c.Degraded() {
		t.Fatal("controller should not be degraded before a failed write")
	}

	if got := c.Toggle(ctx); got != Dark {
		t.Errorf("toggle: got %q, want dark", got)
	}
	if !c.Degraded() {
		t.Error("controller should be degraded after a failed write")
	}
	if got := c.Toggle(ctx); got != Light {
		t.Errorf("second toggle: got %q, want light", got)
	}
	if storage.sets != 1 {
		t.Errorf("broken storage written %d times, want 1", storage.sets)
	}

	// The session-only fallback holds the latest value.
	got, ok, err := c.storage.Get(ctx, StorageKey)
	if err != nil || !ok || got != LightMarker {
		t.Errorf("fallback storage: got %q, %v, %v; want %q", got, ok, err, LightMarker)
	}
}

func TestSubscribe(t *testing.T) {
	ctx := context.Background()
	c := New(ctx, NewMemoryStorage(), NewScope(), false)

	var got []Mode
	unsubscribe := c.Subscribe(func(m Mode) { got = append(got, m) })

	c.Toggle(ctx)
	c.Toggle(ctx)
	unsubscribe()
	c.Toggle(ctx)

	if len(got) != 2 || got[0] != Dark || got[1] != Light {
		t.Errorf("notifications: got %v, want [dark light]", got)
	}
}

func TestSetNormalizesUnknownMode(t *testing.T) {
	ctx := context.Background()
	scope := NewScope()
	c := New(ctx, NewMemoryStorage(), scope, true)

	c.Set(ctx, Mode("sepia"))

	if c.Mode() != Light || !scope.Has(LightMarker) {
		t.Errorf("unknown mode should become light, got %q / %q", c.Mode(), scope)
	}
}

func TestContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	if FromContext(ctx) != nil {
		t.Error("empty context should carry no controller")
	}

	c := New(ctx, NewMemoryStorage(), nil, false)
	ctx = WithController(ctx, c)
	if FromContext(ctx) != c {
		t.Error("FromContext should return the stored controller")
	}
}

func TestPrefersDark(t *testing.T) {
	tests := []struct {
		header string
		want   bool
	}{
		{"", false},
		{`"dark"`, true},
		{"dark", true},
		{`"light"`, false},
		{`"DARK"`, true},
		{"no-preference", false},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set(ClientHintHeader, tt.header)
			}
			if got := PrefersDark(r); got != tt.want {
				t.Errorf("PrefersDark(%q): got %v, want %v", tt.header, got, tt.want)
			}
		})
	}
}
