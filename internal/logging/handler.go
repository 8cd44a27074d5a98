// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a slog handler that copies WARN and above into
// the audit log table.
package logging

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/olegiv/speakercms/internal/model"
	"github.com/olegiv/speakercms/internal/store"
)

// AuditHandler is a slog.Handler that wraps another handler and also persists
// records at or above level to the audit log.
type AuditHandler struct {
	inner   slog.Handler
	queries *store.Queries
	level   slog.Level
	attrs   []slog.Attr
}

// NewAuditHandler wraps inner, forwarding WARN and above to the audit log.
func NewAuditHandler(inner slog.Handler, db *sql.DB) *AuditHandler {
	return &AuditHandler{
		inner:   inner,
		queries: store.New(db),
		level:   slog.LevelWarn,
	}
}

// Enabled implements slog.Handler.
func (h *AuditHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *AuditHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}

	if r.Level >= h.level {
		h.persist(r)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *AuditHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &AuditHandler{
		inner:   h.inner.WithAttrs(attrs),
		queries: h.queries,
		level:   h.level,
		attrs:   append(append([]slog.Attr{}, h.attrs...), attrs...),
	}
}

// WithGroup implements slog.Handler.
func (h *AuditHandler) WithGroup(name string) slog.Handler {
	return &AuditHandler{
		inner:   h.inner.WithGroup(name),
		queries: h.queries,
		level:   h.level,
		attrs:   h.attrs,
	}
}

func (h *AuditHandler) persist(r slog.Record) {
	fields := make(map[string]string, r.NumAttrs()+len(h.attrs))
	category := ""
	collect := func(a slog.Attr) bool {
		if a.Key == "category" {
			category = a.Value.String()
			return true
		}
		fields[a.Key] = a.Value.String()
		return true
	}
	for _, a := range h.attrs {
		collect(a)
	}
	r.Attrs(collect)

	if category == "" {
		category = inferCategory(r.Message)
	}

	metadata, err := json.Marshal(fields)
	if err != nil {
		metadata = []byte("{}")
	}

	// Detached from the request context so cancellation does not drop the entry.
	_ = h.queries.CreateAuditEntry(context.Background(), store.CreateAuditEntryParams{
		Level:     levelName(r.Level),
		Category:  category,
		Message:   r.Message,
		IPAddress: fields["ip"],
		Metadata:  model.JSONDoc(metadata),
	})
}

func levelName(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return model.AuditLevelError
	case level >= slog.LevelWarn:
		return model.AuditLevelWarning
	default:
		return model.AuditLevelInfo
	}
}

func inferCategory(message string) string {
	msg := strings.ToLower(message)
	switch {
	case strings.Contains(msg, "login") || strings.Contains(msg, "logout") || strings.Contains(msg, "auth"):
		return model.AuditCategoryAuth
	case strings.Contains(msg, "upload"):
		return model.AuditCategoryUpload
	case strings.Contains(msg, "event") || strings.Contains(msg, "blog") || strings.Contains(msg, "interview") ||
		strings.Contains(msg, "ebook") || strings.Contains(msg, "hero") || strings.Contains(msg, "setting"):
		return model.AuditCategoryContent
	default:
		return model.AuditCategorySystem
	}
}
