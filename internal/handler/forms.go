// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/olegiv/speakercms/internal/middleware"
	"github.com/olegiv/speakercms/internal/model"
	"github.com/olegiv/speakercms/internal/service"
	"github.com/olegiv/speakercms/internal/webhook"
)

const (
	entitySubscriber = "Subscriber"
	entityContact    = "Contact"
)

// FormsHandler handles the public newsletter and contact forms and their
// admin read/delete views. Submissions are never created or edited by
// admins.
type FormsHandler struct {
	subscribers *service.SubscriberService
	contacts    *service.ContactService
	audit       *service.AuditService
	webhooks    *webhook.Dispatcher
}

// NewFormsHandler creates a new FormsHandler. webhooks may be nil.
func NewFormsHandler(subscribers *service.SubscriberService, contacts *service.ContactService,
	audit *service.AuditService, webhooks *webhook.Dispatcher) *FormsHandler {
	return &FormsHandler{subscribers: subscribers, contacts: contacts, audit: audit, webhooks: webhooks}
}

// Subscribe handles POST /api/subscribe.
func (h *FormsHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var in model.SubscriberInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, entitySubscriber, err)
		return
	}

	sub, err := h.subscribers.Subscribe(r.Context(), in)
	if err != nil {
		writeError(w, r, entitySubscriber, err)
		return
	}
	h.webhooks.Dispatch(webhook.EventSubscriberCreated, sub)
	writeCreated(w, "Successfully subscribed", "subscriber", sub)
}

// Contact handles POST /api/contact.
func (h *FormsHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var in model.ContactInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, entityContact, err)
		return
	}

	c, err := h.contacts.Submit(r.Context(), in)
	if err != nil {
		writeError(w, r, entityContact, err)
		return
	}
	h.webhooks.Dispatch(webhook.EventContactCreated, c)
	writeCreated(w, "Message sent successfully", "contact", c)
}

// ListSubscribers handles GET /api/admin/subscribers.
func (h *FormsHandler) ListSubscribers(w http.ResponseWriter, r *http.Request) {
	subs, err := h.subscribers.List(r.Context())
	if err != nil {
		writeError(w, r, entitySubscriber, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, emptyList(subs))
}

// GetSubscriber handles GET /api/admin/subscribers/{id}.
func (h *FormsHandler) GetSubscriber(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, r, entitySubscriber, model.NewValidationError(msgInvalidID, nil))
		return
	}
	sub, err := h.subscribers.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, entitySubscriber, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, sub)
}

// DeleteSubscriber handles DELETE /api/admin/subscribers/{id}.
func (h *FormsHandler) DeleteSubscriber(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, r, entitySubscriber, model.NewValidationError(msgInvalidID, nil))
		return
	}

	existed, err := h.subscribers.Delete(r.Context(), id)
	if err == nil && existed {
		recordContent(r, h.audit, "Subscriber deleted", map[string]any{"subscriber_id": id})
	}
	writeDeleted(w, r, entitySubscriber, existed, err)
}

// ListContacts handles GET /api/admin/contacts.
func (h *FormsHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.contacts.List(r.Context())
	if err != nil {
		writeError(w, r, entityContact, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, emptyList(contacts))
}

// GetContact handles GET /api/admin/contacts/{id}.
func (h *FormsHandler) GetContact(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, r, entityContact, model.NewValidationError(msgInvalidID, nil))
		return
	}
	c, err := h.contacts.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, entityContact, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, c)
}

// DeleteContact handles DELETE /api/admin/contacts/{id}.
func (h *FormsHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, r, entityContact, model.NewValidationError(msgInvalidID, nil))
		return
	}

	existed, err := h.contacts.Delete(r.Context(), id)
	if err == nil && existed {
		recordContent(r, h.audit, "Contact deleted", map[string]any{"contact_id": id})
	}
	writeDeleted(w, r, entityContact, existed, err)
}
