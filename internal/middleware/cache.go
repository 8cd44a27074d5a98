// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/speakercms/internal/cache"
)

const responseCachePrefix = "resp:"

// StaticCache adds Cache-Control headers for static files.
func StaticCache(maxAge int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(maxAge))
			next.ServeHTTP(w, r)
		})
	}
}

// ResponseCache serves GET requests from c and stores 200 JSON responses
// for ttl. Other statuses and methods are never cached.
func ResponseCache(c cache.Cacher, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			key := responseCachePrefix + r.URL.RequestURI()
			body, err := c.Get(r.Context(), key)
			if err == nil {
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.Header().Set("X-Cache", "HIT")
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write(body)
				return
			}
			if !errors.Is(err, cache.ErrCacheMiss) {
				slog.Warn("response cache read failed", "key", key, "error", err)
			}

			var buf bytes.Buffer
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			ww.Tee(&buf)
			ww.Header().Set("X-Cache", "MISS")
			next.ServeHTTP(ww, r)

			if ww.Status() == http.StatusOK && buf.Len() > 0 {
				if err := c.Set(r.Context(), key, buf.Bytes(), ttl); err != nil {
					slog.Warn("response cache write failed", "key", key, "error", err)
				}
			}
		})
	}
}

// InvalidateCache clears c after every successful unsafe request, so
// public reads never serve content older than the last admin change.
func InvalidateCache(c cache.Cacher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			if status := ww.Status(); status > 0 && status < http.StatusBadRequest {
				if err := c.Clear(r.Context()); err != nil {
					slog.Error("failed to clear response cache", "error", err)
				}
			}
		})
	}
}
