// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Audit levels
const (
	AuditLevelInfo    = "info"
	AuditLevelWarning = "warning"
	AuditLevelError   = "error"
)

// Audit categories
const (
	AuditCategoryAuth    = "auth"
	AuditCategoryContent = "content"
	AuditCategoryUpload  = "upload"
	AuditCategorySystem  = "system"
)

// AuditEntry is one row of the admin activity log.
type AuditEntry struct {
	ID        int64     `db:"id" json:"id"`
	Level     string    `db:"level" json:"level"`
	Category  string    `db:"category" json:"category"`
	Message   string    `db:"message" json:"message"`
	UserID    *int64    `db:"user_id" json:"userId"`
	IPAddress string    `db:"ip_address" json:"ipAddress"`
	Metadata  JSONDoc   `db:"metadata" json:"metadata"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
