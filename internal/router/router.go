// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// BlogSquare site. Pages and their HTMX endpoints share the theme and CSRF
// middleware; the carousel stream and static assets sit outside them.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"

	"blogsquare/internal/handlers"
	"blogsquare/internal/middleware"
	"blogsquare/web"
)

// Options configures the middleware the router installs.
type Options struct {
	// Valkey, when set, stores theme preferences server-side.
	Valkey *redis.Client

	// SecureCookies marks every cookie the site sets as HTTPS-only.
	SecureCookies bool

	// ContactLimiter throttles contact form submissions. Nil disables it.
	ContactLimiter *middleware.RateLimiter
}

// New creates and returns the configured Chi router.
func New(public *handlers.Public, stream http.Handler, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Health check and assets carry no theme or CSRF state. Uptime
	// dashboards on other origins may poll /health.
	r.With(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
		MaxAge:         300,
	})).Get("/health", healthHandler)
	r.Handle("/static/*", staticHandler())

	// Carousel rotation events, one carousel per socket.
	r.Handle(handlers.CarouselStreamPath, stream)

	r.Group(func(r chi.Router) {
		r.Use(middleware.NewCSRF(opts.SecureCookies))
		r.Use(middleware.Theme(middleware.ThemeOptions{
			Valkey: opts.Valkey,
			Secure: opts.SecureCookies,
		}))

		r.Get("/", public.Home)
		r.Get("/contact", public.Contact)
		r.Get("/about", public.About)
		r.Get("/login", public.Login)

		r.Post("/theme/toggle", public.ThemeToggle)

		r.Get("/contact/status", public.ContactStatus)
		r.Group(func(r chi.Router) {
			if opts.ContactLimiter != nil {
				r.Use(opts.ContactLimiter.Middleware)
			}
			r.Post("/contact", public.ContactSubmit)
		})
	})

	return r
}

// staticHandler serves web/static under /static/.
func staticHandler() http.Handler {
	sub, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		// The embed pattern guarantees the directory exists.
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
