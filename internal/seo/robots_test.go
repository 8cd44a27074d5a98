// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import "testing"

func TestRobots(t *testing.T) {
	tests := []struct {
		name string
		cfg  RobotsConfig
		want string
	}{
		{
			name: "with sitemap",
			cfg:  RobotsConfig{SiteURL: "https://example.com/"},
			want: "User-agent: *\nDisallow: /api/\nDisallow: /admin\nAllow: /\n\nSitemap: https://example.com/sitemap.xml\n",
		},
		{
			name: "without site url",
			cfg:  RobotsConfig{},
			want: "User-agent: *\nDisallow: /api/\nDisallow: /admin\nAllow: /\n",
		},
		{
			name: "disallow all",
			cfg:  RobotsConfig{SiteURL: "https://example.com", DisallowAll: true},
			want: "User-agent: *\nDisallow: /\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Robots(tt.cfg); got != tt.want {
				t.Errorf("Robots() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}
