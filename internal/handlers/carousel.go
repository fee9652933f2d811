// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"blogsquare/internal/carousel"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10

	// Clients never send anything but control frames.
	maxClientMessage = 512
)

// carouselFrame is the JSON message sent for every carousel event. Order
// is the stack after the event, front card first. Chip and Label come from
// the connection's label strip, which ignores depart events.
type carouselFrame struct {
	carousel.Event
	Order [carousel.Size]int `json:"order"`
	Chip  int                `json:"chip"`
	Label string             `json:"label"`
}

// CarouselStream mounts one carousel per WebSocket connection and streams
// its events to the browser. Closing the socket unmounts the carousel.
type CarouselStream struct {
	opts     carousel.Options
	labels   []string
	upgrader websocket.Upgrader
}

// NewCarouselStream returns a stream handler whose carousels use opts and
// whose label strips show labels. The upgrader keeps gorilla's default
// same-origin check.
func NewCarouselStream(opts carousel.Options, labels []string) *CarouselStream {
	return &CarouselStream{
		opts:   opts,
		labels: labels,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func (s *CarouselStream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error.
		slog.Debug("carousel websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	// r's context outlives the hijack and ends with the server's base
	// context on shutdown.
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	// Unblocks the read loop once a write fails or the server shuts down.
	context.AfterFunc(ctx, func() { conn.Close() })

	c := carousel.New(s.opts)
	// Subscribed first so the strip has seen each event before its frame
	// is written.
	strip := carousel.NewLabelStrip(s.labels)
	c.Subscribe(strip.Listen)
	c.Subscribe(func(e carousel.Event) {
		frame := carouselFrame{
			Event: e,
			Order: c.Snapshot().Order,
			Chip:  strip.Active(),
			Label: strip.Label(),
		}
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(frame); err != nil {
			slog.Debug("carousel websocket write failed", "error", err)
			cancel()
		}
	})

	conn.SetReadLimit(maxClientMessage)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	if err := c.Start(ctx); err != nil {
		slog.Error("carousel start failed", "error", err)
		return
	}
	go ping(ctx, conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if ctx.Err() == nil && websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Debug("carousel websocket read failed", "error", err)
			}
			break
		}
	}

	cancel()
	c.Stop()
}

// ping keeps the connection alive through proxies. WriteControl is safe to
// call alongside the carousel's writes.
func ping(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
