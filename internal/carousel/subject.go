// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package carousel

import "sync"

// EventType distinguishes carousel notifications.
type EventType string

const (
	// EventActive announces the new front card.
	EventActive EventType = "active"
	// EventDepart announces that the front card entered its exit transition.
	EventDepart EventType = "depart"
)

// Event is a single carousel notification.
type Event struct {
	Type  EventType `json:"type"`
	Index int       `json:"index"`
}

type subscriber struct {
	id int
	fn func(Event)
}

// Subject fans events out to subscribers synchronously, in subscription
// order. Publish returns once every current subscriber has been called.
type Subject struct {
	mu     sync.Mutex
	subs   []subscriber
	nextID int
}

// Subscribe registers fn. The returned function removes it; calling it more
// than once is harmless.
func (s *Subject) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers e to every current subscriber.
func (s *Subject) Publish(e Event) {
	s.mu.Lock()
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(e)
	}
}

// Len returns the number of subscribers.
func (s *Subject) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}
