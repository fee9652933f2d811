// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"blogsquare/internal/render"
	"blogsquare/internal/theme"
)

// themeChangedEvent is the HX-Trigger payload app.js listens for to swap
// the marker class on <html>.
type themeChangedEvent struct {
	ThemeChanged struct {
		Theme string `json:"theme"`
	} `json:"themeChanged"`
}

// ThemeToggle flips the visitor's theme and persists it before responding.
// HTMX requests get the re-rendered toggle button plus an HX-Trigger event
// carrying the new marker; other requests are sent back where they came from.
func (p *Public) ThemeToggle(w http.ResponseWriter, r *http.Request) {
	c := theme.FromContext(r.Context())
	if c == nil {
		slog.Error("theme toggle without theme controller", "path", r.URL.Path)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	htmx := render.IsHTMX(r)
	if htmx {
		// app.js swaps the marker on <html> when it sees this event.
		unsubscribe := c.Subscribe(func(m theme.Mode) { setThemeChanged(w, m) })
		defer unsubscribe()
	}

	mode := c.Toggle(r.Context())
	slog.Debug("theme toggled", "theme", mode.Marker(), "degraded", c.Degraded())

	if !htmx {
		http.Redirect(w, r, backPath(r), http.StatusSeeOther)
		return
	}
	p.partial(w, r, http.StatusOK, "theme_toggle", mode)
}

// setThemeChanged sets the HX-Trigger header announcing mode.
func setThemeChanged(w http.ResponseWriter, mode theme.Mode) {
	var ev themeChangedEvent
	ev.ThemeChanged.Theme = mode.Marker()
	if b, err := json.Marshal(ev); err == nil {
		w.Header().Set("HX-Trigger", string(b))
	}
}

// backPath returns the same-origin path of the Referer, or "/".
func backPath(r *http.Request) string {
	u, err := url.Parse(r.Referer())
	if err != nil || u.Host != r.Host || !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return "/"
	}
	return u.Path
}
