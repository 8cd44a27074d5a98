// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"net/http"
	"net/url"

	"filippo.io/csrf/gorilla"
)

// CSRFConfig holds configuration for CSRF protection.
// filippo.io/csrf/gorilla rejects cross-origin unsafe requests using Fetch
// metadata and Origin headers, so the JSON client needs no token.
type CSRFConfig struct {
	// AuthKey is kept for API compatibility with gorilla/csrf.
	AuthKey []byte

	// TrustedOrigins are host[:port] values allowed to make cross-origin
	// requests, e.g. a separately hosted admin client.
	TrustedOrigins []string
}

// NewCSRFConfig builds a config trusting the hosts of the given origins.
// Full URLs are reduced to host[:port]; unparsable entries are skipped.
func NewCSRFConfig(authKey []byte, origins []string, isDev bool) CSRFConfig {
	cfg := CSRFConfig{AuthKey: authKey}
	for _, o := range origins {
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			cfg.TrustedOrigins = append(cfg.TrustedOrigins, u.Host)
		}
	}
	if isDev {
		cfg.TrustedOrigins = append(cfg.TrustedOrigins, "localhost:5173", "localhost:8080", "127.0.0.1:8080")
	}
	return cfg
}

// CSRF returns a middleware that rejects cross-site unsafe requests with 403.
func CSRF(cfg CSRFConfig) func(http.Handler) http.Handler {
	opts := []csrf.Option{csrf.ErrorHandler(http.HandlerFunc(csrfErrorHandler))}
	if len(cfg.TrustedOrigins) > 0 {
		opts = append(opts, csrf.TrustedOrigins(cfg.TrustedOrigins))
	}
	return csrf.Protect(cfg.AuthKey, opts...)
}

func csrfErrorHandler(w http.ResponseWriter, r *http.Request) {
	reason := "unknown"
	if err := csrf.FailureReason(r); err != nil {
		reason = err.Error()
	}
	slog.Warn("CSRF validation failed",
		"category", "auth",
		"reason", reason,
		"method", r.Method,
		"path", r.URL.Path,
		"origin", r.Header.Get("Origin"),
		"ip", ClientIP(r),
	)
	WriteError(w, http.StatusForbidden, "Cross-site request rejected", nil)
}
