// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/speakercms/internal/middleware"
	"github.com/olegiv/speakercms/internal/model"
	"github.com/olegiv/speakercms/internal/service"
)

const entityBlogPost = "Blog post"

// BlogHandler serves blog posts. Public routes only ever see published
// posts; admin routes see everything.
type BlogHandler struct {
	blog  *service.BlogService
	audit *service.AuditService
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(blog *service.BlogService, audit *service.AuditService) *BlogHandler {
	return &BlogHandler{blog: blog, audit: audit}
}

// ListPublished handles GET /api/blog?limit=.
func (h *BlogHandler) ListPublished(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, r, entityBlogPost, model.FieldError("limit", "must be a non-negative integer"))
			return
		}
		limit = n
	}

	posts, err := h.blog.ListPublished(r.Context(), limit)
	if err != nil {
		writeError(w, r, entityBlogPost, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, emptyList(posts))
}

// GetBySlug handles GET /api/blog/{slug}. Unpublished posts are reported
// as missing.
func (h *BlogHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	post, err := h.blog.GetPublishedBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, entityBlogPost, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, post)
}

// List handles GET /api/admin/blog.
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.blog.ListAll(r.Context())
	if err != nil {
		writeError(w, r, entityBlogPost, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, emptyList(posts))
}

// Get handles GET /api/admin/blog/{id}.
func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, r, entityBlogPost, model.NewValidationError(msgInvalidID, nil))
		return
	}
	post, err := h.blog.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, entityBlogPost, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, post)
}

// Create handles POST /api/admin/blog. The author defaults to the signed-in
// admin.
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in model.BlogPostInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, entityBlogPost, err)
		return
	}

	post, err := h.blog.Create(r.Context(), in, middleware.GetUserIDPtr(r))
	if err != nil {
		writeError(w, r, entityBlogPost, err)
		return
	}

	recordContent(r, h.audit, "Blog post created", map[string]any{"post_id": post.ID, "slug": post.Slug})
	writeCreated(w, "Blog post created successfully", "post", post)
}

// Update handles PUT /api/admin/blog/{id}.
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, r, entityBlogPost, model.NewValidationError(msgInvalidID, nil))
		return
	}

	var patch model.BlogPostPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, r, entityBlogPost, err)
		return
	}

	post, err := h.blog.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, r, entityBlogPost, err)
		return
	}

	recordContent(r, h.audit, "Blog post updated", map[string]any{"post_id": post.ID, "slug": post.Slug})
	writeUpdated(w, "Blog post updated successfully", "post", post)
}

// Delete handles DELETE /api/admin/blog/{id}.
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, r, entityBlogPost, model.NewValidationError(msgInvalidID, nil))
		return
	}

	existed, err := h.blog.Delete(r.Context(), id)
	if err == nil && existed {
		recordContent(r, h.audit, "Blog post deleted", map[string]any{"post_id": id})
	}
	writeDeleted(w, r, entityBlogPost, existed, err)
}
