// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package markdown converts the site's embedded Markdown copy (about page,
// FAQ answers) into HTML using goldmark. Raw HTML in the source is escaped.
package markdown

import (
	"bytes"
	"html/template"
	"strings"

	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// md is the configured goldmark instance, reused across calls.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,         // Tables, strikethrough, autolinks
		extension.Typographer, // Smart quotes and dashes
		highlighting.NewHighlighting(
			highlighting.WithStyle("monokai"),
			highlighting.WithFormatOptions(),
		),
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
)

// ToHTML converts Markdown source into HTML.
func ToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ToTemplate converts Markdown into HTML that html/template will emit
// verbatim. Only use it on trusted, embedded content.
func ToTemplate(source string) (template.HTML, error) {
	out, err := ToHTML(source)
	if err != nil {
		return "", err
	}
	return template.HTML(out), nil
}

// Section is a level-two heading and the Markdown body below it.
type Section struct {
	Title string
	Body  string
}

// SplitSections splits source on "## " headings. Text before the first
// heading is dropped.
func SplitSections(source string) []Section {
	var (
		sections []Section
		cur      *Section
		body     strings.Builder
	)
	flush := func() {
		if cur != nil {
			cur.Body = strings.TrimSpace(body.String())
			sections = append(sections, *cur)
		}
		body.Reset()
	}

	for _, line := range strings.Split(source, "\n") {
		if title, ok := strings.CutPrefix(line, "## "); ok {
			flush()
			cur = &Section{Title: strings.TrimSpace(title)}
			continue
		}
		if cur != nil {
			body.WriteString(line)
			body.WriteByte('\n')
		}
	}
	flush()
	return sections
}
