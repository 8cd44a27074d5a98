// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import "strings"

// defaultDisallow keeps crawlers out of the JSON API and the admin client.
var defaultDisallow = []string{"/api/", "/admin"}

// RobotsConfig holds configuration for robots.txt generation.
type RobotsConfig struct {
	SiteURL     string // enables the Sitemap line
	DisallowAll bool   // staging and development sites
}

// Robots renders robots.txt.
func Robots(cfg RobotsConfig) string {
	var sb strings.Builder
	sb.WriteString("User-agent: *\n")

	if cfg.DisallowAll {
		sb.WriteString("Disallow: /\n")
		return sb.String()
	}

	for _, p := range defaultDisallow {
		sb.WriteString("Disallow: " + p + "\n")
	}
	sb.WriteString("Allow: /\n")

	if cfg.SiteURL != "" {
		sb.WriteString("\nSitemap: " + strings.TrimSuffix(cfg.SiteURL, "/") + "/sitemap.xml\n")
	}
	return sb.String()
}
