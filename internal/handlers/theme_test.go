// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"blogsquare/internal/theme"
)

func TestThemeToggleHTMX(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/theme/toggle", nil)
	req.Header.Set("HX-Request", "true")
	rec := serve(env.Public.ThemeToggle, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	if got := rec.Header().Get("HX-Trigger"); got != `{"themeChanged":{"theme":"dark-theme"}}` {
		t.Errorf("HX-Trigger: got %q", got)
	}
	if !strings.Contains(rec.Body.String(), `data-theme="dark-theme"`) {
		t.Error("toggle button should show the new theme")
	}

	var persisted string
	for _, c := range rec.Result().Cookies() {
		if c.Name == theme.StorageKey {
			persisted = c.Value
		}
	}
	if persisted != theme.DarkMarker {
		t.Errorf("theme cookie: got %q, want %q", persisted, theme.DarkMarker)
	}
}

func TestThemeToggleBackToLight(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/theme/toggle", nil)
	req.Header.Set("HX-Request", "true")
	req.AddCookie(&http.Cookie{Name: theme.StorageKey, Value: theme.DarkMarker})
	rec := serve(env.Public.ThemeToggle, req)

	if got := rec.Header().Get("HX-Trigger"); !strings.Contains(got, theme.LightMarker) {
		t.Errorf("HX-Trigger: got %q", got)
	}
}

func TestThemeToggleRedirect(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name    string
		referer string
		want    string
	}{
		{"same origin", "http://example.com/about", "/about"},
		{"no referer", "", "/"},
		{"other origin", "http://evil.test/phish", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/theme/toggle", nil)
			if tt.referer != "" {
				req.Header.Set("Referer", tt.referer)
			}
			rec := serve(env.Public.ThemeToggle, req)

			if rec.Code != http.StatusSeeOther {
				t.Fatalf("status: got %d", rec.Code)
			}
			if got := rec.Header().Get("Location"); got != tt.want {
				t.Errorf("Location: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestThemeToggleWithoutController(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.Public.ThemeToggle(rec, httptest.NewRequest(http.MethodPost, "/theme/toggle", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d", rec.Code)
	}
}

func TestThemeTogglePlainPostSkipsTrigger(t *testing.T) {
	env := newTestEnv(t)

	rec := serve(env.Public.ThemeToggle, httptest.NewRequest(http.MethodPost, "/theme/toggle", nil))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want 303", rec.Code)
	}
	if got := rec.Header().Get("HX-Trigger"); got != "" {
		t.Errorf("plain posts should not carry HX-Trigger, got %q", got)
	}
}
