// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package transfer exports the site's content as a JSON document or as a
// zip archive that also carries the uploaded images.
package transfer

import (
	"time"

	"github.com/olegiv/speakercms/internal/model"
)

// ExportVersion is the current version of the export format.
const ExportVersion = "1.0"

// ExportData represents the complete export structure.
type ExportData struct {
	Version    string    `json:"version"`
	ExportedAt time.Time `json:"exportedAt"`

	Events     []model.Event        `json:"events"`
	Posts      []model.BlogPost     `json:"posts"`
	Interviews []model.Interview    `json:"interviews"`
	Ebook      *model.Ebook         `json:"ebook,omitempty"`
	Hero       *model.HeroSettings  `json:"hero,omitempty"`
	Settings   []model.SiteSettings `json:"settings"`

	// Form submissions hold personal data and are opt-in.
	Subscribers []model.Subscriber `json:"subscribers,omitempty"`
	Contacts    []model.Contact    `json:"contacts,omitempty"`

	// Uploads lists archive paths of bundled image files.
	Uploads []string `json:"uploads,omitempty"`
}

// ExportOptions selects optional parts of an export.
type ExportOptions struct {
	IncludeSubmissions bool
	IncludeUploads     bool // zip only
}
