// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/olegiv/speakercms/internal/middleware"
	"github.com/olegiv/speakercms/internal/model"
	"github.com/olegiv/speakercms/internal/service"
)

const entityEvent = "Event"

// EventsHandler serves events and workshops.
type EventsHandler struct {
	events *service.EventService
	audit  *service.AuditService
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(events *service.EventService, audit *service.AuditService) *EventsHandler {
	return &EventsHandler{events: events, audit: audit}
}

// List handles GET /api/events and GET /api/admin/events.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.List(r.Context())
	if err != nil {
		writeError(w, r, entityEvent, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, emptyList(events))
}

// Get handles GET /api/admin/events/{id}.
func (h *EventsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, r, entityEvent, model.NewValidationError(msgInvalidID, nil))
		return
	}
	event, err := h.events.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, entityEvent, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, event)
}

// Create handles POST /api/admin/events.
func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in model.EventInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, entityEvent, err)
		return
	}

	event, err := h.events.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, entityEvent, err)
		return
	}

	recordContent(r, h.audit, "Event created", map[string]any{"event_id": event.ID, "title": event.Title})
	writeCreated(w, "Event created successfully", "event", event)
}

// Update handles PUT /api/admin/events/{id}.
func (h *EventsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, r, entityEvent, model.NewValidationError(msgInvalidID, nil))
		return
	}

	var patch model.EventPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, r, entityEvent, err)
		return
	}

	event, err := h.events.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, r, entityEvent, err)
		return
	}

	recordContent(r, h.audit, "Event updated", map[string]any{"event_id": event.ID})
	writeUpdated(w, "Event updated successfully", "event", event)
}

// Delete handles DELETE /api/admin/events/{id}.
func (h *EventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, r, entityEvent, model.NewValidationError(msgInvalidID, nil))
		return
	}

	existed, err := h.events.Delete(r.Context(), id)
	if err == nil && existed {
		recordContent(r, h.audit, "Event deleted", map[string]any{"event_id": id})
	}
	writeDeleted(w, r, entityEvent, existed, err)
}
