// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"strings"
)

// StripTrailingSlash redirects GET and HEAD requests with a trailing slash
// to the canonical path (HTTP 301). Other methods are routed as if the
// slash were absent, since a redirect would drop their body.
func StripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if path == "/" || !strings.HasSuffix(path, "/") {
			next.ServeHTTP(w, r)
			return
		}

		// Collapse leading slashes so "//host/" cannot become an
		// off-site redirect.
		trimmed := "/" + strings.Trim(path, "/")

		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			target := trimmed
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, target, http.StatusMovedPermanently)
			return
		}

		r2 := r.Clone(r.Context())
		r2.URL.Path = trimmed
		r2.URL.RawPath = ""
		next.ServeHTTP(w, r2)
	})
}
