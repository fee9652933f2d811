// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"strings"
)

// contentSecurityPolicy allows the third-party pieces the pages embed: the
// Unsplash card images, the globe widget and its texture from unpkg, htmx
// from unpkg, and the Google Maps iframe.
var contentSecurityPolicy = strings.Join([]string{
	"default-src 'self'",
	"script-src 'self' https://unpkg.com",
	"style-src 'self' 'unsafe-inline'",
	"img-src 'self' data: blob: https://images.unsplash.com https://unpkg.com",
	"connect-src 'self' ws: wss: https://unpkg.com",
	"frame-src https://www.google.com",
	"worker-src 'self' blob:",
	"frame-ancestors 'self'",
}, "; ")

// SecureHeaders adds security-related HTTP headers to every response.
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()

		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "SAMEORIGIN")
		h.Set("X-XSS-Protection", "0")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Permissions-Policy", "interest-cohort=()")
		h.Set("Content-Security-Policy", contentSecurityPolicy)

		next.ServeHTTP(w, r)
	})
}
