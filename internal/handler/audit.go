// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strconv"

	"github.com/olegiv/speakercms/internal/middleware"
	"github.com/olegiv/speakercms/internal/model"
	"github.com/olegiv/speakercms/internal/service"
)

// DefaultActivityLimit is used by the activity listing when no limit is given.
const DefaultActivityLimit = 50

// recordContent writes an info-level content entry for the current admin.
func recordContent(r *http.Request, audit *service.AuditService, message string, meta map[string]any) {
	if audit == nil {
		return
	}
	audit.Info(r.Context(), model.AuditCategoryContent, message,
		middleware.GetUserIDPtr(r), middleware.ClientIP(r), meta)
}

// ActivityHandler lists the admin activity log.
type ActivityHandler struct {
	audit *service.AuditService
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(audit *service.AuditService) *ActivityHandler {
	return &ActivityHandler{audit: audit}
}

// List handles GET /api/admin/activity?limit=.
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := DefaultActivityLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, r, "Activity", model.FieldError("limit", "must be a positive integer"))
			return
		}
		limit = n
	}

	entries, err := h.audit.List(r.Context(), limit)
	if err != nil {
		writeError(w, r, "Activity", err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, emptyList(entries))
}
