// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"

	"blogsquare/internal/session"
	"blogsquare/internal/theme"
)

// ThemeOptions configures the Theme middleware.
type ThemeOptions struct {
	// Valkey, when set, keeps preferences server-side under the visitor
	// ID. Otherwise they live in the theme cookie.
	Valkey *redis.Client

	// Secure marks the cookies the middleware sets as HTTPS-only.
	Secure bool
}

// Theme builds a theme.Controller for each request and stores it in the
// request context. It also asks the browser for its color-scheme client
// hint, which seeds the theme of first-time visitors.
func Theme(opts ThemeOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Accept-CH", theme.ClientHintHeader)
			h.Set("Critical-CH", theme.ClientHintHeader)
			h.Add("Vary", theme.ClientHintHeader)
			h.Add("Vary", "Cookie")

			ctx := r.Context()
			c := theme.New(ctx, themeStorage(w, r, opts), nil, theme.PrefersDark(r))

			next.ServeHTTP(w, r.WithContext(theme.WithController(ctx, c)))
		})
	}
}

func themeStorage(w http.ResponseWriter, r *http.Request, opts ThemeOptions) theme.Storage {
	if opts.Valkey == nil {
		return theme.NewCookieStorage(w, r, opts.Secure)
	}
	id, err := session.VisitorID(w, r, opts.Secure)
	if err != nil {
		slog.Warn("visitor id unavailable, using theme cookie", "error", err)
		return theme.NewCookieStorage(w, r, opts.Secure)
	}
	return theme.NewValkeyStorage(opts.Valkey, id)
}
