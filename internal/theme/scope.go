// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package theme

import (
	"slices"
	"strings"
)

// Scope is the class list of the page's root element (<html class="...">).
// It may carry unrelated classes alongside the theme marker.
type Scope struct {
	classes []string
}

// NewScope returns a scope pre-populated with the given classes.
func NewScope(classes ...string) *Scope {
	s := &Scope{}
	for _, c := range classes {
		s.add(c)
	}
	return s
}

// Apply sets the marker for mode. Both markers are removed first, even when
// neither is expected to be present, so repeated application can never leave
// two markers behind.
func (s *Scope) Apply(mode Mode) {
	s.remove(LightMarker)
	s.remove(DarkMarker)
	s.add(mode.Marker())
}

// Has reports whether class is currently set.
func (s *Scope) Has(class string) bool {
	return slices.Contains(s.classes, class)
}

// Classes returns a copy of the class list in insertion order.
func (s *Scope) Classes() []string {
	return slices.Clone(s.classes)
}

// String renders the class list for an HTML class attribute.
func (s *Scope) String() string {
	return strings.Join(s.classes, " ")
}

func (s *Scope) add(class string) {
	if class == "" || s.Has(class) {
		return
	}
	s.classes = append(s.classes, class)
}

func (s *Scope) remove(class string) {
	s.classes = slices.DeleteFunc(s.classes, func(c string) bool { return c == class })
}
