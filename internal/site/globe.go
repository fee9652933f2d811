// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package site

import (
	"encoding/json"
	"fmt"
)

// Globe configures the browser-side globe widget on the contact page.
// When Enabled is false, or the widget fails to load, the page shows a
// static panel with the fallback labels instead.
type Globe struct {
	Enabled bool `json:"-"`

	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Altitude float64 `json:"altitude"`

	ImageURL        string `json:"globeImageUrl"`
	BackgroundColor string `json:"backgroundColor"`
	ShowAtmosphere  bool   `json:"showAtmosphere"`
	ShowGraticules  bool   `json:"showGraticules"`

	EnableDamping   bool    `json:"enableDamping"`
	DampingFactor   float64 `json:"dampingFactor"`
	EnableZoom      bool    `json:"enableZoom"`
	EnablePan       bool    `json:"enablePan"`
	AutoRotate      bool    `json:"autoRotate"`
	AutoRotateSpeed float64 `json:"autoRotateSpeed"`

	// LoadDelayMS defers loading the widget after first paint.
	LoadDelayMS int `json:"loadDelayMs"`

	FallbackTitle    string `json:"fallbackTitle"`
	FallbackSubtitle string `json:"fallbackSubtitle"`
}

// DefaultGlobe returns the widget settings centered on the headquarters.
func DefaultGlobe() Globe {
	return Globe{
		Enabled:          true,
		Lat:              24.8607,
		Lng:              67.0011,
		Altitude:         2.5,
		ImageURL:         "//unpkg.com/three-globe/example/img/earth-blue-marble.jpg",
		BackgroundColor:  "rgba(0,0,0,0)",
		ShowGraticules:   true,
		EnableDamping:    true,
		DampingFactor:    0.05,
		EnableZoom:       true,
		EnablePan:        true,
		AutoRotate:       true,
		AutoRotateSpeed:  0.8,
		LoadDelayMS:      2000,
		FallbackTitle:    "Lahore, Pakistan",
		FallbackSubtitle: "Our Global Headquarters",
	}
}

// JSON returns the settings for the widget bootstrap script. Templates
// place it in a data attribute, where html/template escapes it.
func (g Globe) JSON() (string, error) {
	b, err := json.Marshal(g)
	if err != nil {
		return "", fmt.Errorf("marshal globe config: %w", err)
	}
	return string(b), nil
}
