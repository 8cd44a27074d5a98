// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// SiteSettings holds the opaque settings document of one page section.
type SiteSettings struct {
	ID        int64     `db:"id" json:"id"`
	Section   string    `db:"section" json:"section"`
	Settings  JSONDoc   `db:"settings" json:"settings"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
