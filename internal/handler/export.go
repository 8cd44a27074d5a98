// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/olegiv/speakercms/internal/model"
	"github.com/olegiv/speakercms/internal/service"
	"github.com/olegiv/speakercms/internal/transfer"
)

// ExportHandler serves content backups to admins.
type ExportHandler struct {
	exporter *transfer.Exporter
	audit    *service.AuditService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exporter *transfer.Exporter, audit *service.AuditService) *ExportHandler {
	return &ExportHandler{exporter: exporter, audit: audit}
}

// Export handles GET /api/admin/export.
//
// Query parameters: format=json|zip (default json), submissions=true to
// include subscribers and contacts, uploads=true to bundle images (zip only).
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	format := q.Get("format")
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "zip" {
		writeError(w, r, "Export", model.FieldError("format", "must be json or zip"))
		return
	}

	var opts transfer.ExportOptions
	var err error
	if opts.IncludeSubmissions, err = queryBool(q.Get("submissions")); err != nil {
		writeError(w, r, "Export", model.FieldError("submissions", "must be a boolean"))
		return
	}
	if opts.IncludeUploads, err = queryBool(q.Get("uploads")); err != nil {
		writeError(w, r, "Export", model.FieldError("uploads", "must be a boolean"))
		return
	}

	// Buffer so a failure can still be reported as a JSON error.
	var buf bytes.Buffer
	contentType := "application/json; charset=utf-8"
	if format == "zip" {
		contentType = "application/zip"
		err = h.exporter.WriteZip(r.Context(), opts, &buf)
	} else {
		err = h.exporter.WriteJSON(r.Context(), opts, &buf)
	}
	if err != nil {
		writeError(w, r, "Export", err)
		return
	}

	recordContent(r, h.audit, "Content exported", map[string]any{
		"format":      format,
		"submissions": opts.IncludeSubmissions,
		"uploads":     opts.IncludeUploads,
	})

	filename := fmt.Sprintf("speakercms-export-%s.%s", time.Now().UTC().Format("20060102-150405"), format)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func queryBool(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(s)
}
