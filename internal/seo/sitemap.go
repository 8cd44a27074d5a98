// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds the crawler-facing documents of the public site:
// sitemap.xml and robots.txt.
package seo

import (
	"encoding/xml"
	"strings"
	"time"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Change frequencies used by the site.
const (
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
)

// SitemapURL is a single <url> entry.
type SitemapURL struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `xml:"changefreq,omitempty"`
	Priority   string     `xml:"priority,omitempty"`
}

// Sitemap is the <urlset> document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// Post is the part of a blog post the sitemap needs.
type Post struct {
	Slug      string
	UpdatedAt time.Time
}

// SitemapBuilder accumulates URLs below a site root.
type SitemapBuilder struct {
	siteURL string
	urls    []SitemapURL
}

// NewSitemapBuilder creates a builder for siteURL. A trailing slash is
// ignored.
func NewSitemapBuilder(siteURL string) *SitemapBuilder {
	return &SitemapBuilder{siteURL: strings.TrimSuffix(siteURL, "/")}
}

// AddHomepage adds the single-page site root.
func (b *SitemapBuilder) AddHomepage() {
	b.urls = append(b.urls, SitemapURL{
		Loc:        b.siteURL + "/",
		ChangeFreq: ChangeFreqDaily,
		Priority:   "1.0",
	})
}

// AddBlogIndex adds the blog listing. lastMod is the newest post's update
// time and may be zero.
func (b *SitemapBuilder) AddBlogIndex(lastMod time.Time) {
	b.urls = append(b.urls, SitemapURL{
		Loc:        b.siteURL + "/blog",
		LastMod:    formatLastMod(lastMod),
		ChangeFreq: ChangeFreqWeekly,
		Priority:   "0.8",
	})
}

// AddPosts adds one entry per blog post.
func (b *SitemapBuilder) AddPosts(posts []Post) {
	for _, p := range posts {
		b.urls = append(b.urls, SitemapURL{
			Loc:        b.siteURL + "/blog/" + p.Slug,
			LastMod:    formatLastMod(p.UpdatedAt),
			ChangeFreq: ChangeFreqMonthly,
			Priority:   "0.6",
		})
	}
}

// Build renders the sitemap with an XML header.
func (b *SitemapBuilder) Build() ([]byte, error) {
	body, err := xml.MarshalIndent(Sitemap{XMLNS: XMLNamespace, URLs: b.urls}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

// GenerateSitemap renders the homepage, the blog index and every post.
func GenerateSitemap(siteURL string, posts []Post) ([]byte, error) {
	var newest time.Time
	for _, p := range posts {
		if p.UpdatedAt.After(newest) {
			newest = p.UpdatedAt
		}
	}

	b := NewSitemapBuilder(siteURL)
	b.AddHomepage()
	b.AddBlogIndex(newest)
	b.AddPosts(posts)
	return b.Build()
}

func formatLastMod(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
