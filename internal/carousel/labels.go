// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package carousel

import "sync"

// Chip is one entry of the label strip.
type Chip struct {
	Name   string
	Active bool
}

// LabelStrip mirrors the carousel's front card as a row of category chips.
// It learns about changes only through events, never by reading the
// carousel directly.
type LabelStrip struct {
	mu     sync.Mutex
	names  []string
	active int
}

// NewLabelStrip returns a strip showing the first name as active.
func NewLabelStrip(names []string) *LabelStrip {
	return &LabelStrip{names: append([]string(nil), names...)}
}

// Listen applies an event. Depart events and out-of-range indexes are
// ignored.
func (l *LabelStrip) Listen(e Event) {
	if e.Type != EventActive {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if e.Index < 0 || e.Index >= len(l.names) {
		return
	}
	l.active = e.Index
}

// Active returns the index of the highlighted chip.
func (l *LabelStrip) Active() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active
}

// Label returns the name of the highlighted chip, or "" for an empty strip.
func (l *LabelStrip) Label() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.active >= len(l.names) {
		return ""
	}
	return l.names[l.active]
}

// Chips returns the strip for rendering.
func (l *LabelStrip) Chips() []Chip {
	l.mu.Lock()
	defer l.mu.Unlock()
	chips := make([]Chip, len(l.names))
	for i, n := range l.names {
		chips[i] = Chip{Name: n, Active: i == l.active}
	}
	return chips
}
