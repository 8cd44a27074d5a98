// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/speakercms/internal/middleware"
	"github.com/olegiv/speakercms/internal/model"
	"github.com/olegiv/speakercms/internal/service"
)

const (
	entityEbook    = "Ebook"
	entityHero     = "Hero settings"
	entitySettings = "Settings"
)

// emptyObject is returned by admin reads of a singleton that does not exist
// yet, so the dashboard can always render its form.
var emptyObject = struct{}{}

// SingletonsHandler serves the ebook, hero banner and per-section settings.
type SingletonsHandler struct {
	ebook    *service.EbookService
	hero     *service.HeroService
	settings *service.SettingsService
	audit    *service.AuditService
}

// NewSingletonsHandler creates a new SingletonsHandler.
func NewSingletonsHandler(ebook *service.EbookService, hero *service.HeroService, settings *service.SettingsService, audit *service.AuditService) *SingletonsHandler {
	return &SingletonsHandler{ebook: ebook, hero: hero, settings: settings, audit: audit}
}

// PublicEbook handles GET /api/ebook.
func (h *SingletonsHandler) PublicEbook(w http.ResponseWriter, r *http.Request) {
	ebook, err := h.ebook.Get(r.Context())
	if err != nil {
		writeError(w, r, entityEbook, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, ebook)
}

// AdminEbook handles GET /api/admin/ebook.
func (h *SingletonsHandler) AdminEbook(w http.ResponseWriter, r *http.Request) {
	ebook, err := h.ebook.Get(r.Context())
	if errors.Is(err, model.ErrNotFound) {
		middleware.WriteJSON(w, http.StatusOK, emptyObject)
		return
	}
	if err != nil {
		writeError(w, r, entityEbook, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, ebook)
}

// UpdateEbook handles PUT /api/admin/ebook. The ebook is created on first use.
func (h *SingletonsHandler) UpdateEbook(w http.ResponseWriter, r *http.Request) {
	var patch model.EbookPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, r, entityEbook, err)
		return
	}

	ebook, err := h.ebook.Update(r.Context(), patch)
	if err != nil {
		writeError(w, r, entityEbook, err)
		return
	}

	recordContent(r, h.audit, "Ebook updated", nil)
	writeUpdated(w, "Ebook updated successfully", "ebook", ebook)
}

// PublicHero handles GET /api/hero.
func (h *SingletonsHandler) PublicHero(w http.ResponseWriter, r *http.Request) {
	hero, err := h.hero.Get(r.Context())
	if err != nil {
		writeError(w, r, entityHero, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, hero)
}

// AdminHero handles GET /api/admin/hero.
func (h *SingletonsHandler) AdminHero(w http.ResponseWriter, r *http.Request) {
	hero, err := h.hero.Get(r.Context())
	if errors.Is(err, model.ErrNotFound) {
		middleware.WriteJSON(w, http.StatusOK, emptyObject)
		return
	}
	if err != nil {
		writeError(w, r, entityHero, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, hero)
}

// UpdateHero handles PUT /api/admin/hero.
func (h *SingletonsHandler) UpdateHero(w http.ResponseWriter, r *http.Request) {
	var patch model.HeroSettingsPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, r, entityHero, err)
		return
	}

	hero, err := h.hero.Update(r.Context(), patch)
	if err != nil {
		writeError(w, r, entityHero, err)
		return
	}

	recordContent(r, h.audit, "Hero settings updated", nil)
	writeUpdated(w, "Hero settings updated successfully", "hero", hero)
}

// PublicSettings handles GET /api/settings/{section}.
func (h *SingletonsHandler) PublicSettings(w http.ResponseWriter, r *http.Request) {
	s, err := h.settings.Get(r.Context(), chi.URLParam(r, "section"))
	if err != nil {
		writeError(w, r, entitySettings, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, s)
}

// AdminSettings handles GET /api/admin/settings/{section}. A section that
// was never saved reads as an empty document.
func (h *SingletonsHandler) AdminSettings(w http.ResponseWriter, r *http.Request) {
	section := chi.URLParam(r, "section")
	s, err := h.settings.Get(r.Context(), section)
	if errors.Is(err, model.ErrNotFound) {
		middleware.WriteJSON(w, http.StatusOK, map[string]any{
			"section":  section,
			"settings": emptyObject,
		})
		return
	}
	if err != nil {
		writeError(w, r, entitySettings, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, s)
}

// UpdateSettings handles PUT /api/admin/settings/{section}. The request body
// is stored as the section's document.
func (h *SingletonsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	section := chi.URLParam(r, "section")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxJSONBodySize))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, r, entitySettings, model.NewValidationError("Request body too large", nil))
			return
		}
		writeError(w, r, entitySettings, err)
		return
	}

	s, err := h.settings.Upsert(r.Context(), section, body)
	if err != nil {
		writeError(w, r, entitySettings, err)
		return
	}

	recordContent(r, h.audit, "Settings updated", map[string]any{"section": section})
	writeUpdated(w, "Settings updated successfully", "settings", s)
}
