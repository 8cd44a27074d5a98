// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/olegiv/speakercms/internal/middleware"
	"github.com/olegiv/speakercms/internal/model"
	"github.com/olegiv/speakercms/internal/service"
)

const entityInterview = "Interview"

// InterviewsHandler serves interviews and their display order.
type InterviewsHandler struct {
	interviews *service.InterviewService
	audit      *service.AuditService
}

// NewInterviewsHandler creates a new InterviewsHandler.
func NewInterviewsHandler(interviews *service.InterviewService, audit *service.AuditService) *InterviewsHandler {
	return &InterviewsHandler{interviews: interviews, audit: audit}
}

// List handles GET /api/interviews and GET /api/admin/interviews.
func (h *InterviewsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.interviews.List(r.Context())
	if err != nil {
		writeError(w, r, entityInterview, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, emptyList(items))
}

// Get handles GET /api/admin/interviews/{id}.
func (h *InterviewsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, r, entityInterview, model.NewValidationError(msgInvalidID, nil))
		return
	}
	iv, err := h.interviews.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, entityInterview, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, iv)
}

// Create handles POST /api/admin/interviews.
func (h *InterviewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in model.InterviewInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, entityInterview, err)
		return
	}

	iv, err := h.interviews.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, entityInterview, err)
		return
	}

	recordContent(r, h.audit, "Interview created", map[string]any{"interview_id": iv.ID, "title": iv.Title})
	writeCreated(w, "Interview created successfully", "interview", iv)
}

// Update handles PUT /api/admin/interviews/{id}.
func (h *InterviewsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, r, entityInterview, model.NewValidationError(msgInvalidID, nil))
		return
	}

	var patch model.InterviewPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, r, entityInterview, err)
		return
	}

	iv, err := h.interviews.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, r, entityInterview, err)
		return
	}

	recordContent(r, h.audit, "Interview updated", map[string]any{"interview_id": iv.ID})
	writeUpdated(w, "Interview updated successfully", "interview", iv)
}

// Delete handles DELETE /api/admin/interviews/{id}.
func (h *InterviewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, r, entityInterview, model.NewValidationError(msgInvalidID, nil))
		return
	}

	existed, err := h.interviews.Delete(r.Context(), id)
	if err == nil && existed {
		recordContent(r, h.audit, "Interview deleted", map[string]any{"interview_id": id})
	}
	writeDeleted(w, r, entityInterview, existed, err)
}

// Move handles POST /api/admin/interviews/{id}/move with {"direction": "up"|"down"}
// and returns the renumbered list.
func (h *InterviewsHandler) Move(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, r, entityInterview, model.NewValidationError(msgInvalidID, nil))
		return
	}

	var in model.InterviewMove
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, entityInterview, err)
		return
	}

	items, err := h.interviews.Move(r.Context(), id, in.Direction)
	if err != nil {
		writeError(w, r, entityInterview, err)
		return
	}

	recordContent(r, h.audit, "Interview moved", map[string]any{"interview_id": id, "direction": in.Direction})
	writeUpdated(w, "Interview order updated", "interviews", emptyList(items))
}

// Reorder handles POST /api/admin/interviews/reorder with {"ids": [...]}.
func (h *InterviewsHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var in model.InterviewReorder
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, entityInterview, err)
		return
	}

	items, err := h.interviews.Reorder(r.Context(), in.IDs)
	if err != nil {
		writeError(w, r, entityInterview, err)
		return
	}

	recordContent(r, h.audit, "Interviews reordered", map[string]any{"ids": in.IDs})
	writeUpdated(w, "Interview order updated", "interviews", emptyList(items))
}
