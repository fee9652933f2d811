// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package carousel rotates the landing page's category cards. A Carousel
// cycles a fixed five-card order on a timer and publishes the active card to
// subscribers such as the category label strip.
package carousel

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Size is the number of cards in the stack.
const Size = 5

const (
	// DefaultInterval is the time between rotations.
	DefaultInterval = 5 * time.Second

	// DefaultTransition is how long the front card spends departing before
	// it moves to the back.
	DefaultTransition = 700 * time.Millisecond
)

var (
	// ErrRunning is returned by Start on a carousel that is already mounted.
	ErrRunning = errors.New("carousel: already started")

	// ErrStopped is returned by Start after Stop; carousels are single-use.
	ErrStopped = errors.New("carousel: stopped")
)

// Options tunes the carousel timers. Zero values select the defaults.
type Options struct {
	Interval   time.Duration
	Transition time.Duration
}

type state int

const (
	stateIdle state = iota
	stateRunning
	stateStopped
)

// Carousel holds the rotation order of one mounted card stack.
type Carousel struct {
	interval   time.Duration
	transition time.Duration
	subject    Subject

	mu        sync.Mutex
	order     [Size]int
	departing int // -1 when no card is leaving
	state     state
	cancel    context.CancelFunc
	done      chan struct{}
}

// New returns an unmounted carousel in identity order.
func New(opts Options) *Carousel {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Transition <= 0 {
		opts.Transition = DefaultTransition
	}
	c := &Carousel{
		interval:   opts.Interval,
		transition: opts.Transition,
		departing:  -1,
	}
	for i := range c.order {
		c.order[i] = i
	}
	return c
}

// Subscribe registers fn for carousel events. Subscribers run on the
// carousel's goroutine and must not call Stop.
func (c *Carousel) Subscribe(fn func(Event)) (unsubscribe func()) {
	return c.subject.Subscribe(fn)
}

// Start mounts the carousel: it announces the initial front card once,
// synchronously, and then rotates every interval until ctx is cancelled or
// Stop is called.
func (c *Carousel) Start(ctx context.Context) error {
	c.mu.Lock()
	switch c.state {
	case stateRunning:
		c.mu.Unlock()
		return ErrRunning
	case stateStopped:
		c.mu.Unlock()
		return ErrStopped
	}
	ctx, cancel := context.WithCancel(ctx)
	c.state = stateRunning
	c.cancel = cancel
	c.done = make(chan struct{})
	front := c.order[0]
	c.mu.Unlock()

	c.subject.Publish(Event{Type: EventActive, Index: front})

	go c.run(ctx)
	return nil
}

// Stop unmounts the carousel. Pending rotations are cancelled and no event
// is published after Stop returns. Stop is idempotent.
func (c *Carousel) Stop() {
	c.mu.Lock()
	if c.state != stateRunning {
		c.state = stateStopped
		c.mu.Unlock()
		return
	}
	c.state = stateStopped
	cancel, done := c.cancel, c.done
	c.mu.Unlock()

	cancel()
	<-done
}

// Done is closed when the rotation goroutine exits. It is nil before Start.
func (c *Carousel) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

func (c *Carousel) run(ctx context.Context) {
	defer close(c.done)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	var (
		timer   *time.Timer
		arrived <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			if arrived != nil {
				continue // previous transition still in flight
			}
			c.publish(ctx, Event{Type: EventDepart, Index: c.depart()})
			timer = time.NewTimer(c.transition)
			arrived = timer.C

		case <-arrived:
			timer, arrived = nil, nil
			c.publish(ctx, Event{Type: EventActive, Index: c.rotate()})
		}
	}
}

// publish drops events once the carousel has been unmounted.
func (c *Carousel) publish(ctx context.Context, e Event) {
	if ctx.Err() != nil {
		return
	}
	c.subject.Publish(e)
}

// depart marks the front card as leaving and returns it.
func (c *Carousel) depart() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.departing = c.order[0]
	return c.departing
}

// rotate moves the front card to the back, clears the departing marker and
// returns the new front card.
func (c *Carousel) rotate() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	first := c.order[0]
	copy(c.order[:], c.order[1:])
	c.order[Size-1] = first
	c.departing = -1
	return c.order[0]
}

// Snapshot is a point-in-time copy of the carousel state.
type Snapshot struct {
	Order     [Size]int
	Departing int // -1 when no card is leaving
}

// Active returns the front card.
func (s Snapshot) Active() int {
	return s.Order[0]
}

// Position returns where card id sits in the stack (0 = front).
func (s Snapshot) Position(id int) int {
	for i, v := range s.Order {
		if v == id {
			return i
		}
	}
	return -1
}

// CardClass returns the CSS classes for card id.
func (s Snapshot) CardClass(id int) string {
	cls := "card"
	switch s.Position(id) {
	case 0:
		cls += " card--current"
	case 1:
		cls += " card--next"
	default:
		cls += " card--back"
	}
	if s.Departing == id {
		cls += " card--out"
	}
	return cls
}

// Snapshot returns the current state.
func (c *Carousel) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{Order: c.order, Departing: c.departing}
}
