// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the public site:
// full pages wrapped in the base layout, and standalone partials that HTMX
// swaps into the page.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"blogsquare/internal/site"
	"blogsquare/internal/theme"
)

//go:embed templates/site/*.html templates/site/partials/*.html
var siteFS embed.FS

const (
	pageDir    = "templates/site"
	partialDir = "templates/site/partials"
)

// CSRFPlaceholder stands in for the visitor's CSRF token in rendered HTML,
// so a cached page holds no visitor-specific value. InjectCSRF swaps in the
// real token when the response is written.
const CSRFPlaceholder = "__bs_csrf_token__"

// InjectCSRF replaces every CSRFPlaceholder in body with token.
func InjectCSRF(body []byte, token string) []byte {
	if !bytes.Contains(body, []byte(CSRFPlaceholder)) {
		return body
	}
	return bytes.ReplaceAll(body, []byte(CSRFPlaceholder), []byte(template.HTMLEscapeString(token)))
}

// PageData holds all data passed to page templates. Nothing in it may be
// specific to one visitor beyond the theme, because rendered pages are
// cached per root class.
type PageData struct {
	Title string         // Page title for <title> tag
	Page  string         // Template name, e.g. "home"
	Nav   []site.NavLink // Header links with the current one marked
	Theme theme.Mode     // Drives the toggle button
	// RootClass is the theme scope's class list, rendered into
	// <html class="...">.
	RootClass string
	Site      *site.Site
	// ThemeStore is "cookie" or "valkey"; theme-init.js only runs its
	// prefers-color-scheme fallback in cookie mode.
	ThemeStore string
	Data  map[string]any // Page-specific data
}

// Renderer handles template parsing and execution for site pages.
type Renderer struct {
	pages    map[string]*template.Template
	partials *template.Template
	funcMap  template.FuncMap
}

// New parses every page template together with the base layout and the
// shared partials. When devMode is true, templates load the unminified
// htmx build.
func New(devMode bool) (*Renderer, error) {
	r := &Renderer{
		pages: make(map[string]*template.Template),
		funcMap: template.FuncMap{
			"isDev":  func() bool { return devMode },
			"footer": func() string { return site.Footer },
			"csrfField": func() template.HTML {
				return template.HTML(`<input type="hidden" name="csrf_token" value="` + CSRFPlaceholder + `">`)
			},
			// navClass returns the CSS classes for a header link.
			"navClass": func(active bool) string {
				if active {
					return "nav-link nav-link--active"
				}
				return "nav-link"
			},
		},
	}

	partials, err := template.New("partials").Funcs(r.funcMap).ParseFS(siteFS, partialDir+"/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse partials: %w", err)
	}
	r.partials = partials

	entries, err := fs.ReadDir(siteFS, pageDir)
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "base.html" || path.Ext(name) != ".html" {
			continue
		}

		tmpl, err := template.New("base.html").Funcs(r.funcMap).ParseFS(siteFS,
			pageDir+"/base.html", partialDir+"/*.html", pageDir+"/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[strings.TrimSuffix(name, ".html")] = tmpl
	}

	return r, nil
}

// Render executes a page with the base layout.
func (rn *Renderer) Render(name string, data *PageData) ([]byte, error) {
	tmpl, ok := rn.pages[name]
	if !ok {
		return nil, fmt.Errorf("template %q not found", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		return nil, fmt.Errorf("execute %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Partial renders one of the shared partial templates.
func (rn *Renderer) Partial(w io.Writer, name string, data any) error {
	if err := rn.partials.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("execute partial %s: %w", name, err)
	}
	return nil
}

// IsHTMX returns true if the request was made by HTMX (has HX-Request header).
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
