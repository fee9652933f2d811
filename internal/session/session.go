// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package session identifies anonymous visitors with a long-lived cookie.
// The visitor ID keys server-side preferences in Valkey; nothing else is
// associated with it.
package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	// CookieName is the name of the visitor cookie sent to the browser.
	CookieName = "bs_visitor"

	// MaxAge is how long the browser keeps the visitor cookie.
	MaxAge = 365 * 24 * time.Hour
)

// VisitorID returns the visitor ID from the request cookie. When the cookie
// is missing or malformed a new random ID is issued and the cookie is set
// on w.
func VisitorID(w http.ResponseWriter, r *http.Request, secure bool) (string, error) {
	if c, err := r.Cookie(CookieName); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String(), nil
		}
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("visitor id: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id.String(),
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(MaxAge.Seconds()),
	})
	return id.String(), nil
}
