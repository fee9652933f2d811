// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package theme owns the site's light/dark visual theme. A Controller picks
// the initial mode from persisted storage or the visitor's color-scheme
// preference, applies it as a marker class on the root scope, and persists
// every toggle synchronously.
package theme

const (
	// StorageKey is the key the preference is persisted under.
	StorageKey = "theme"

	// LightMarker and DarkMarker are the mutually exclusive marker classes
	// placed on the document root. They double as the persisted values.
	LightMarker = "light-theme"
	DarkMarker  = "dark-theme"
)

// Mode is the active visual theme.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// Marker returns the root-scope marker class for the mode.
func (m Mode) Marker() string {
	if m == Dark {
		return DarkMarker
	}
	return LightMarker
}

// Opposite returns the mode a toggle switches to.
func (m Mode) Opposite() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// Label is the human-readable call to action for switching away from m.
func (m Mode) Label() string {
	if m == Dark {
		return "Switch to light"
	}
	return "Switch to dark"
}

// ParseMarker converts a persisted marker back into a Mode. Anything other
// than the two known markers is rejected.
func ParseMarker(s string) (Mode, bool) {
	switch s {
	case LightMarker:
		return Light, true
	case DarkMarker:
		return Dark, true
	default:
		return "", false
	}
}
