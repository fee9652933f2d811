// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"log/slog"
	"net/http"

	"blogsquare/internal/cache"
	"blogsquare/internal/carousel"
	"blogsquare/internal/contact"
	"blogsquare/internal/middleware"
	"blogsquare/internal/models"
	"blogsquare/internal/render"
	"blogsquare/internal/site"
	"blogsquare/internal/theme"
)

// CarouselStreamPath is where the home page's card stack connects for
// rotation events.
const CarouselStreamPath = "/ws/carousel"

// Public groups handlers for the marketing pages. It checks the Valkey
// page cache before rendering and stores rendered pages on miss. Cache
// keys include the theme marker, since that is the only per-visitor part
// of a page.
type Public struct {
	renderer   *render.Renderer
	site       *site.Site
	pageCache  *cache.PageCache
	themeStore string
	contact    contact.Options
	carousel   carousel.Options
}

// PublicOptions carries the tunables the page handlers pass on to the
// components they render.
type PublicOptions struct {
	ThemeStore string
	Contact    contact.Options
	Carousel   carousel.Options
}

// NewPublic creates the page handler group. pageCache may be nil when
// Valkey is not configured; every lookup then misses.
func NewPublic(renderer *render.Renderer, s *site.Site, pageCache *cache.PageCache, opts PublicOptions) *Public {
	return &Public{
		renderer:   renderer,
		site:       s,
		pageCache:  pageCache,
		themeStore: opts.ThemeStore,
		contact:    opts.Contact,
		carousel:   opts.Carousel,
	}
}

// card is one entry of the home page's card stack.
type card struct {
	ID       int
	Class    string
	Category models.Category
}

// Home renders the landing page with the category carousel in its
// mounted position: the first card in front and the first chip active.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	p.page(w, r, "home", func() map[string]any {
		snap := carousel.New(p.carousel).Snapshot()
		cards := make([]card, len(p.site.Categories))
		for i, c := range p.site.Categories {
			cards[i] = card{ID: i, Class: snap.CardClass(i), Category: c}
		}
		return map[string]any{
			"StreamURL": CarouselStreamPath,
			"Cards":     cards,
			"Chips":     carousel.NewLabelStrip(p.site.CategoryNames()).Chips(),
		}
	})
}

// Contact renders the contact page with an empty, idle form.
func (p *Public) Contact(w http.ResponseWriter, r *http.Request) {
	p.page(w, r, "contact", func() map[string]any {
		return p.contactData(contact.NewForm(p.contact).View(nil))
	})
}

// About renders the about page.
func (p *Public) About(w http.ResponseWriter, r *http.Request) {
	p.page(w, r, "about", func() map[string]any { return nil })
}

// Login renders the sign-in placeholder.
func (p *Public) Login(w http.ResponseWriter, r *http.Request) {
	p.page(w, r, "login", func() map[string]any { return nil })
}

func (p *Public) contactData(form contact.View) map[string]any {
	return map[string]any{
		"Form":         form,
		"Email":        site.Email,
		"AddressLine1": site.AddressLine1,
		"AddressLine2": site.AddressLine2,
		"MapURL":       site.MapEmbedURL,
	}
}

// page serves a cached copy of the named page for the visitor's root
// class, rendering and caching it on miss. The cached body holds the CSRF
// placeholder, never a token.
func (p *Public) page(w http.ResponseWriter, r *http.Request, name string, data func() map[string]any) {
	ctx := r.Context()
	mode, root := themeState(r)
	key := cache.PageKey(name, root)

	if cached, ok := p.pageCache.Get(ctx, key); ok {
		writeHTML(w, r, http.StatusOK, cached)
		return
	}

	out, err := p.renderPage(r, name, data())
	if err != nil {
		slog.Error("render page failed", "page", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.pageCache.Set(ctx, key, out)
	slog.Debug("page rendered", "page", name, "theme", mode.Marker())
	writeHTML(w, r, http.StatusOK, out)
}

func (p *Public) renderPage(r *http.Request, name string, data map[string]any) ([]byte, error) {
	mode, root := themeState(r)
	return p.renderer.Render(name, &render.PageData{
		Title:      site.Title,
		Page:       name,
		Nav:        site.Nav(r.URL.Path),
		Theme:      mode,
		RootClass:  root,
		Site:       p.site,
		ThemeStore: p.themeStore,
		Data:       data,
	})
}

// partial renders a shared template into a buffer first so a template
// error never leaves a half-written response.
func (p *Public) partial(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := p.renderer.Partial(&buf, name, data); err != nil {
		slog.Error("render partial failed", "partial", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, r, status, buf.Bytes())
}

// themeState returns the mode and root class chosen by the Theme
// middleware, or light on a fresh scope when the request bypassed it.
func themeState(r *http.Request) (theme.Mode, string) {
	if c := theme.FromContext(r.Context()); c != nil {
		return c.Mode(), c.RootClass()
	}
	scope := theme.NewScope()
	scope.Apply(theme.Light)
	return theme.Light, scope.String()
}

// writeHTML fills in the request's CSRF token and writes body.
func writeHTML(w http.ResponseWriter, r *http.Request, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(render.InjectCSRF(body, middleware.GetCSRFToken(r)))
}
