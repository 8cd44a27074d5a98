// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/olegiv/speakercms/internal/middleware"
	"github.com/olegiv/speakercms/internal/model"
	"github.com/olegiv/speakercms/internal/service"
)

// UploadFieldName is the multipart field holding the image.
const UploadFieldName = "image"

// multipartOverhead is allowed on top of the file limit for boundaries and
// part headers.
const multipartOverhead = 1 << 20

// Upload error messages. Size and type failures are kept distinct.
const (
	msgFileTooLarge = "File too large. Maximum size is 5MB."
	msgNotImage     = "Only image files are allowed"
	msgNoFile       = "No file uploaded"
)

// UploadHandler accepts image uploads from the admin dashboard.
type UploadHandler struct {
	uploads *service.UploadService
	audit   *service.AuditService
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(uploads *service.UploadService, audit *service.AuditService) *UploadHandler {
	return &UploadHandler{uploads: uploads, audit: audit}
}

// Upload handles POST /api/admin/upload.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, service.MaxUploadSize+multipartOverhead)

	if err := r.ParseMultipartForm(service.MaxUploadSize); err != nil {
		h.writeUploadError(w, r, err)
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile(UploadFieldName)
	if err != nil {
		h.writeUploadError(w, r, err)
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.uploads.Save(file, header)
	if err != nil {
		h.writeUploadError(w, r, err)
		return
	}

	h.audit.Info(r.Context(), model.AuditCategoryUpload, "File uploaded",
		middleware.GetUserIDPtr(r), middleware.ClientIP(r),
		map[string]any{"filename": result.Filename, "size": result.Size, "mimetype": result.MimeType})
	middleware.WriteJSON(w, http.StatusOK, result)
}

// writeUploadError normalizes parser and storage failures into 400s that
// tell size problems apart from type problems.
func (h *UploadHandler) writeUploadError(w http.ResponseWriter, r *http.Request, err error) {
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr), errors.Is(err, service.ErrFileTooLarge),
		errors.Is(err, multipart.ErrMessageTooLarge):
		middleware.WriteError(w, http.StatusBadRequest, msgFileTooLarge, map[string]string{UploadFieldName: "too large"})
	case errors.Is(err, service.ErrNotImage):
		middleware.WriteError(w, http.StatusBadRequest, msgNotImage, map[string]string{UploadFieldName: "must be an image"})
	case errors.Is(err, service.ErrNoFile), errors.Is(err, http.ErrMissingFile),
		errors.Is(err, http.ErrNotMultipart), errors.Is(err, http.ErrMissingBoundary):
		middleware.WriteError(w, http.StatusBadRequest, msgNoFile, map[string]string{UploadFieldName: "is required"})
	default:
		writeError(w, r, "Upload", err)
	}
}
