// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/olegiv/speakercms/internal/seo"
	"github.com/olegiv/speakercms/internal/service"
)

// SEOHandler serves sitemap.xml and robots.txt.
type SEOHandler struct {
	blog    *service.BlogService
	siteURL string
	noIndex bool
}

// NewSEOHandler creates a new SEOHandler. An empty siteURL is derived from
// each request's host.
func NewSEOHandler(blog *service.BlogService, siteURL string, noIndex bool) *SEOHandler {
	return &SEOHandler{blog: blog, siteURL: siteURL, noIndex: noIndex}
}

func (h *SEOHandler) baseURL(r *http.Request) string {
	if h.siteURL != "" {
		return h.siteURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

// Sitemap handles GET /sitemap.xml. Only published posts are listed.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	posts, err := h.blog.ListPublished(r.Context(), 0)
	if err != nil {
		writeError(w, r, "Sitemap", err)
		return
	}

	entries := make([]seo.Post, 0, len(posts))
	for _, p := range posts {
		entries = append(entries, seo.Post{Slug: p.Slug, UpdatedAt: p.UpdatedAt})
	}

	body, err := seo.GenerateSitemap(h.baseURL(r), entries)
	if err != nil {
		writeError(w, r, "Sitemap", err)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(body)
}

// Robots handles GET /robots.txt.
func (h *SEOHandler) Robots(w http.ResponseWriter, r *http.Request) {
	body := seo.Robots(seo.RobotsConfig{
		SiteURL:     h.baseURL(r),
		DisallowAll: h.noIndex,
	})
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write([]byte(body))
}
