// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/olegiv/speakercms/internal/model"
)

// CreateAuditEntryParams holds the columns of a new audit row.
type CreateAuditEntryParams struct {
	Level     string
	Category  string
	Message   string
	UserID    *int64
	IPAddress string
	Metadata  model.JSONDoc
}

// CreateAuditEntry appends to the audit log.
func (q *Queries) CreateAuditEntry(ctx context.Context, arg CreateAuditEntryParams) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO audit_log (level, category, message, user_id, ip_address, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		arg.Level, arg.Category, arg.Message, arg.UserID, arg.IPAddress, arg.Metadata, now())
	if err != nil {
		return fmt.Errorf("inserting audit entry: %w", err)
	}
	return nil
}

// ListAuditEntries returns the newest entries first.
func (q *Queries) ListAuditEntries(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	items := []model.AuditEntry{}
	err := q.selectAll(ctx, &items,
		`SELECT id, level, category, message, user_id, ip_address, metadata, created_at
		FROM audit_log ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	return items, err
}

// DeleteAuditEntriesBefore prunes entries older than cutoff and returns how
// many were removed.
func (q *Queries) DeleteAuditEntriesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, "DELETE FROM audit_log WHERE created_at < ?", cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("pruning audit log: %w", err)
	}
	return res.RowsAffected()
}
