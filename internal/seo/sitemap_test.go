// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"
)

func TestGenerateSitemap(t *testing.T) {
	older := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 3, 2, 8, 30, 0, 0, time.UTC)

	out, err := GenerateSitemap("https://example.com/", []Post{
		{Slug: "first-post", UpdatedAt: older},
		{Slug: "second-post", UpdatedAt: newer},
	})
	if err != nil {
		t.Fatalf("GenerateSitemap: %v", err)
	}
	if !strings.HasPrefix(string(out), xml.Header) {
		t.Error("sitemap must start with the XML header")
	}

	var sm Sitemap
	if err := xml.Unmarshal(out, &sm); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !strings.Contains(string(out), `<urlset xmlns="`+XMLNamespace+`">`) {
		t.Error("urlset must declare the sitemap namespace")
	}

	want := []struct {
		loc     string
		lastMod string
	}{
		{"https://example.com/", ""},
		{"https://example.com/blog", "2025-03-02T08:30:00Z"},
		{"https://example.com/blog/first-post", "2025-01-15T10:00:00Z"},
		{"https://example.com/blog/second-post", "2025-03-02T08:30:00Z"},
	}
	if len(sm.URLs) != len(want) {
		t.Fatalf("got %d urls, want %d", len(sm.URLs), len(want))
	}
	for i, w := range want {
		if sm.URLs[i].Loc != w.loc {
			t.Errorf("url[%d].Loc = %q, want %q", i, sm.URLs[i].Loc, w.loc)
		}
		if sm.URLs[i].LastMod != w.lastMod {
			t.Errorf("url[%d].LastMod = %q, want %q", i, sm.URLs[i].LastMod, w.lastMod)
		}
	}
	if sm.URLs[0].Priority != "1.0" {
		t.Errorf("homepage priority = %q, want 1.0", sm.URLs[0].Priority)
	}
}

func TestGenerateSitemapNoPosts(t *testing.T) {
	out, err := GenerateSitemap("https://example.com", nil)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(out), "<lastmod>") {
		t.Error("blog index without posts must not carry lastmod")
	}
	if c := strings.Count(string(out), "<url>"); c != 2 {
		t.Errorf("got %d urls, want 2", c)
	}
}
