// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package carousel

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var testNames = []string{"Technology", "Design", "Product", "Culture", "Tutorials"}

func TestLabelStripListen(t *testing.T) {
	l := NewLabelStrip(testNames)

	if l.Active() != 0 {
		t.Fatalf("initial active: got %d", l.Active())
	}

	l.Listen(Event{Type: EventDepart, Index: 3})
	if l.Active() != 0 {
		t.Error("depart events must not move the active chip")
	}

	l.Listen(Event{Type: EventActive, Index: 3})
	if l.Active() != 3 {
		t.Errorf("active: got %d, want 3", l.Active())
	}

	l.Listen(Event{Type: EventActive, Index: 9})
	if l.Active() != 3 {
		t.Error("out-of-range index must be ignored")
	}

	want := []Chip{
		{Name: "Technology"},
		{Name: "Design"},
		{Name: "Product"},
		{Name: "Culture", Active: true},
		{Name: "Tutorials"},
	}
	if diff := cmp.Diff(want, l.Chips()); diff != "" {
		t.Errorf("chips mismatch (-want +got):\n%s", diff)
	}
	if got := l.Label(); got != "Culture" {
		t.Errorf("Label: got %q, want Culture", got)
	}
	if got := NewLabelStrip(nil).Label(); got != "" {
		t.Errorf("empty strip Label: got %q", got)
	}
}

func TestLabelStripFollowsCarousel(t *testing.T) {
	c := New(fastOptions)
	l := NewLabelStrip(testNames)

	// Simulate a stale default before mount.
	l.Listen(Event{Type: EventActive, Index: 4})

	// Each entry pairs the announced index with what the strip showed
	// right after it was delivered.
	actives := make(chan [2]int, 64)
	c.Subscribe(l.Listen)
	c.Subscribe(func(e Event) {
		if e.Type == EventActive {
			actives <- [2]int{e.Index, l.Active()}
		}
	})

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer c.Stop()

	// The mount broadcast corrects the stale value immediately.
	if l.Active() != 0 {
		t.Errorf("after mount: got %d, want 0", l.Active())
	}
	<-actives

	select {
	case got := <-actives:
		if got[0] != 1 || got[1] != 1 {
			t.Errorf("strip shows %d, carousel announced %d, want 1", got[1], got[0])
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for rotation")
	}
}

func TestSubjectUnsubscribe(t *testing.T) {
	var s Subject
	var a, b int
	unsubA := s.Subscribe(func(Event) { a++ })
	s.Subscribe(func(Event) { b++ })

	s.Publish(Event{Type: EventActive})
	unsubA()
	unsubA()
	s.Publish(Event{Type: EventActive})

	if a != 1 || b != 2 {
		t.Errorf("deliveries: a=%d b=%d, want 1 and 2", a, b)
	}
	if s.Len() != 1 {
		t.Errorf("Len: got %d, want 1", s.Len())
	}
}
