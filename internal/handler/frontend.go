// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/olegiv/speakercms/internal/middleware"
)

// FrontendHandler serves the built client from a directory. Paths that do
// not name a file fall back to index.html so client-side routes work on
// reload.
type FrontendHandler struct {
	dir string
}

// NewFrontendHandler creates a handler serving dir.
func NewFrontendHandler(dir string) *FrontendHandler {
	return &FrontendHandler{dir: dir}
}

// ServeHTTP implements http.Handler.
func (h *FrontendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
		return
	}

	// Unknown API paths must not be answered with the client shell.
	if strings.HasPrefix(r.URL.Path, "/api/") {
		middleware.WriteError(w, http.StatusNotFound, "Not found", nil)
		return
	}

	// Use path.Clean for URL paths, then convert for the filesystem.
	cleanPath := path.Clean("/" + r.URL.Path)
	filePath := filepath.Join(h.dir, filepath.FromSlash(cleanPath))

	absDir, err := filepath.Abs(h.dir)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	absFile, err := filepath.Abs(filePath)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	rel, err := filepath.Rel(absDir, absFile)
	if err != nil || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		http.NotFound(w, r)
		return
	}

	if info, err := os.Stat(absFile); err == nil && !info.IsDir() {
		if strings.HasPrefix(cleanPath, "/assets/") {
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		}
		http.ServeFile(w, r, absFile)
		return
	}

	index := filepath.Join(absDir, "index.html")
	if _, err := os.Stat(index); err != nil {
		middleware.WriteError(w, http.StatusNotFound, "Not found", nil)
		return
	}
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeFile(w, r, index)
}
