// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler implements the JSON HTTP API of the site: public reads,
// form submissions, session endpoints and the admin surface.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/speakercms/internal/middleware"
	"github.com/olegiv/speakercms/internal/model"
)

// MaxJSONBodySize bounds request bodies of JSON endpoints.
const MaxJSONBodySize = 1 << 20

// Messages shared by several handlers.
const (
	msgInternalError = "Internal server error"
	msgInvalidJSON   = "Invalid JSON body"
	msgInvalidID     = "Invalid id"
)

// decodeJSON reads r's body into dst. Malformed or oversized bodies yield a
// *model.ValidationError so callers can pass the result to writeError.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxJSONBodySize)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return model.NewValidationError("Request body too large", nil)
		case errors.Is(err, io.EOF):
			return model.NewValidationError("Request body is empty", nil)
		default:
			return model.NewValidationError(msgInvalidJSON, nil)
		}
	}
	return nil
}

// parseID reads the {id} URL parameter.
func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// writeError translates err into a status code and JSON error body. entity
// names the resource in not-found messages. Unexpected errors are logged
// and reported with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, entity string, err error) {
	var ve *model.ValidationError
	switch {
	case errors.As(err, &ve):
		middleware.WriteError(w, http.StatusBadRequest, ve.Error(), ve.Fields)
	case errors.Is(err, model.ErrUnauthenticated):
		middleware.WriteError(w, http.StatusUnauthorized, "Authentication required", nil)
	case errors.Is(err, model.ErrForbidden):
		middleware.WriteError(w, http.StatusForbidden, "Admin access required", nil)
	case errors.Is(err, model.ErrNotFound):
		middleware.WriteError(w, http.StatusNotFound, entity+" not found", nil)
	default:
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", chimw.GetReqID(r.Context()),
			"error", err,
		)
		middleware.WriteError(w, http.StatusInternalServerError, msgInternalError, nil)
	}
}

// writeCreated writes 201 with a message and the new entity under key.
func writeCreated(w http.ResponseWriter, message, key string, v any) {
	middleware.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": message,
		key:       v,
	})
}

// writeUpdated writes 200 with a message and the updated entity under key.
func writeUpdated(w http.ResponseWriter, message, key string, v any) {
	middleware.WriteJSON(w, http.StatusOK, map[string]any{
		"message": message,
		key:       v,
	})
}

// writeMessage writes 200 with only a message.
func writeMessage(w http.ResponseWriter, message string) {
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"message": message})
}

// writeDeleted reports the outcome of a delete that returns whether the row
// existed.
func writeDeleted(w http.ResponseWriter, r *http.Request, entity string, existed bool, err error) {
	if err != nil {
		writeError(w, r, entity, err)
		return
	}
	if !existed {
		writeError(w, r, entity, model.ErrNotFound)
		return
	}
	writeMessage(w, entity+" deleted successfully")
}

// emptyList keeps list endpoints encoding [] rather than null.
func emptyList[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
