// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service holds the business rules for each content entity:
// validation, defaults, uniqueness and partial-update semantics.
package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/speakercms/internal/model"
	"github.com/olegiv/speakercms/internal/store"
)

// DefaultAuditListLimit bounds activity listings when no limit is given.
const DefaultAuditListLimit = 100

// AuditService records admin activity.
type AuditService struct {
	queries *store.Queries
	logger  *slog.Logger
}

// NewAuditService creates a new AuditService.
func NewAuditService(db *sql.DB, logger *slog.Logger) *AuditService {
	return &AuditService{queries: store.New(db), logger: logger}
}

// Log writes an audit entry. Failures are logged and otherwise ignored so
// auditing never fails the request that triggered it.
func (s *AuditService) Log(ctx context.Context, level, category, message string, userID *int64, ip string, metadata map[string]any) {
	doc := model.JSONDoc("{}")
	if len(metadata) > 0 {
		if b, err := json.Marshal(metadata); err == nil {
			doc = b
		}
	}

	err := s.queries.CreateAuditEntry(ctx, store.CreateAuditEntryParams{
		Level:     level,
		Category:  category,
		Message:   message,
		UserID:    userID,
		IPAddress: ip,
		Metadata:  doc,
	})
	if err != nil {
		s.logger.Error("failed to write audit entry", "error", err, "message", message)
	}
}

// Info records an info-level entry.
func (s *AuditService) Info(ctx context.Context, category, message string, userID *int64, ip string, metadata map[string]any) {
	s.Log(ctx, model.AuditLevelInfo, category, message, userID, ip, metadata)
}

// List returns the newest entries first.
func (s *AuditService) List(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	if limit <= 0 || limit > 1000 {
		limit = DefaultAuditListLimit
	}
	entries, err := s.queries.ListAuditEntries(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing audit entries: %w", err)
	}
	return entries, nil
}

// Prune deletes entries older than retention.
func (s *AuditService) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	return s.queries.DeleteAuditEntriesBefore(ctx, time.Now().Add(-retention))
}
