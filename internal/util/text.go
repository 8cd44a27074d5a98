// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"bytes"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// DefaultExcerptLength is the rune budget for derived excerpts.
const DefaultExcerptLength = 200

var (
	// ugcPolicy allows the formatting tags an editor produces and drops
	// scripts, event handlers and similar.
	ugcPolicy   = bluemonday.UGCPolicy()
	stripPolicy = newStripPolicy()

	// Raw HTML is passed through here; the strict policy strips it afterwards.
	markdown = goldmark.New(goldmark.WithRendererOptions(gmhtml.WithUnsafe()))
)

func newStripPolicy() *bluemonday.Policy {
	p := bluemonday.StrictPolicy()
	p.AddSpaceWhenStrippingTag(true)
	return p
}

// SanitizeHTML removes unsafe markup from user-supplied HTML.
func SanitizeHTML(s string) string {
	return ugcPolicy.Sanitize(s)
}

// PlainText renders markdown or HTML content to collapsed plain text.
func PlainText(content string) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(content), &buf); err != nil {
		buf.Reset()
		buf.WriteString(content)
	}
	text := html.UnescapeString(stripPolicy.Sanitize(buf.String()))
	return strings.Join(strings.Fields(text), " ")
}

// Excerpt derives a short plain-text summary of content.
func Excerpt(content string, maxRunes int) string {
	return TruncateWords(PlainText(content), maxRunes)
}

// TruncateWords shortens s to at most maxRunes runes, cutting on a word
// boundary when possible and appending an ellipsis.
func TruncateWords(s string, maxRunes int) string {
	if maxRunes <= 0 || utf8.RuneCountInString(s) <= maxRunes {
		return s
	}

	r := []rune(s)
	cut := string(r[:maxRunes])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "..."
}
