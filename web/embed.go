// Package web provides the embedded static assets (CSS, JS) for the site.
// They are served at /static/.
package web

import "embed"

// StaticFS embeds the web/static/ directory tree: the stylesheet, the
// first-paint theme script and the page behaviour script.
//
//go:embed all:static
var StaticFS embed.FS
