// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package site holds the static content of the BlogSquare marketing pages:
// navigation, carousel categories, the about page, FAQ entries, the globe
// widget settings and the contact details.
package site

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"strings"

	"blogsquare/internal/carousel"
	"blogsquare/internal/markdown"
	"blogsquare/internal/models"
)

//go:embed content/*.md
var contentFS embed.FS

// Title is the document title shared by every page.
const Title = "BlogSquare - An AI Powered Blogging Web Application"

// Contact details shown on the contact page.
const (
	Email        = "hello@blogsquare.com"
	AddressLine1 = "Lahore, Pakistan"
	AddressLine2 = "Sindh Province, 75000"
	Footer       = "© 2025 Muhammad Kamran. All rights reserved."
)

// MapEmbedURL is the Google Maps iframe source for the office location.
const MapEmbedURL = "https://www.google.com/maps/embed?pb=!1m18!1m12!1m3!1d3403.6470734764897!2d74.35874731513147!3d31.520369681392!2m3!1f0!2f0!3f0!3m2!1i1024!2i768!4f13.1!3m3!1m2!1s0x39190483e58107d9%3A0xc23abe6ccc7e2462!2sLahore%2C%20Punjab%2C%20Pakistan!5e0!3m2!1sen!2s!4v1635000000000!5m2!1sen!2s&output=embed"

// NavLink is one entry of the header navigation.
type NavLink struct {
	Label  string
	Href   string
	Active bool
}

var navLinks = []NavLink{
	{Label: "Home", Href: "/"},
	{Label: "Contact", Href: "/contact"},
	{Label: "About", Href: "/about"},
	{Label: "Login", Href: "/login"},
}

// Nav returns the navigation links with the one matching path marked active.
// "/" only matches itself; other links also match their sub-paths.
func Nav(path string) []NavLink {
	links := make([]NavLink, len(navLinks))
	for i, l := range navLinks {
		l.Active = path == l.Href ||
			(l.Href != "/" && strings.HasPrefix(path, l.Href+"/"))
		links[i] = l
	}
	return links
}

// FAQ is a question with its rendered answer.
type FAQ struct {
	Question string
	Answer   template.HTML
}

// CategorySource lists carousel categories, e.g. *store.CategoryStore.
type CategorySource interface {
	List(ctx context.Context) ([]models.Category, error)
}

// LoadCategories returns the categories from src, falling back to the
// built-in deck when src is nil, fails, or does not hold exactly one
// category per carousel card.
func LoadCategories(ctx context.Context, src CategorySource) []models.Category {
	if src == nil {
		return models.DefaultCategories()
	}
	cats, err := src.List(ctx)
	if err != nil {
		slog.Warn("loading categories failed, using defaults", "error", err)
		return models.DefaultCategories()
	}
	if len(cats) != carousel.Size {
		slog.Warn("unexpected category count, using defaults", "count", len(cats), "want", carousel.Size)
		return models.DefaultCategories()
	}
	return cats
}

// Site is the fully prepared content of the marketing pages.
type Site struct {
	Categories []models.Category
	About      template.HTML
	FAQ        []FAQ
	Globe      Globe
}

// New loads categories from src and renders the embedded Markdown copy.
func New(ctx context.Context, src CategorySource, globeEnabled bool) (*Site, error) {
	about, err := render("about.md")
	if err != nil {
		return nil, err
	}

	faqSrc, err := contentFS.ReadFile("content/faq.md")
	if err != nil {
		return nil, fmt.Errorf("read faq: %w", err)
	}
	var faq []FAQ
	for _, sec := range markdown.SplitSections(string(faqSrc)) {
		answer, err := markdown.ToTemplate(sec.Body)
		if err != nil {
			return nil, fmt.Errorf("render faq %q: %w", sec.Title, err)
		}
		faq = append(faq, FAQ{Question: sec.Title, Answer: answer})
	}

	g := DefaultGlobe()
	g.Enabled = globeEnabled

	return &Site{
		Categories: LoadCategories(ctx, src),
		About:      about,
		FAQ:        faq,
		Globe:      g,
	}, nil
}

func render(name string) (template.HTML, error) {
	src, err := contentFS.ReadFile("content/" + name)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	out, err := markdown.ToTemplate(string(src))
	if err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return out, nil
}

// CategoryNames returns the category names in carousel order, as shown
// by the label strip.
func (s *Site) CategoryNames() []string {
	names := make([]string, len(s.Categories))
	for i, c := range s.Categories {
		names[i] = c.Name
	}
	return names
}
