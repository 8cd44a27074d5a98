// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Interview is an embedded media appearance. Public listing is ordered by
// DisplayOrder ascending.
type Interview struct {
	ID             int64     `db:"id" json:"id"`
	Title          string    `db:"title" json:"title"`
	Description    *string   `db:"description" json:"description"`
	EmbedURL       string    `db:"embed_url" json:"embedUrl"`
	ThumbnailImage *string   `db:"thumbnail_image" json:"thumbnailImage"`
	ImagePosition  string    `db:"image_position" json:"imagePosition"`
	ImageScale     float64   `db:"image_scale" json:"imageScale"`
	DisplayOrder   int       `db:"display_order" json:"displayOrder"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}

// InterviewInput is the create schema for interviews.
type InterviewInput struct {
	Title          string   `json:"title" validate:"required,max=300"`
	Description    *string  `json:"description" validate:"omitempty,max=5000"`
	EmbedURL       string   `json:"embedUrl" validate:"required,max=2048"`
	ThumbnailImage *string  `json:"thumbnailImage" validate:"omitempty,max=2048"`
	ImagePosition  string   `json:"imagePosition" validate:"max=100"`
	ImageScale     *float64 `json:"imageScale" validate:"omitempty,gt=0,lte=10"`
	DisplayOrder   int      `json:"displayOrder"`
}

// InterviewPatch is the partial update schema for interviews.
type InterviewPatch struct {
	Title          *string  `json:"title" validate:"omitempty,min=1,max=300"`
	Description    *string  `json:"description" validate:"omitempty,max=5000"`
	EmbedURL       *string  `json:"embedUrl" validate:"omitempty,min=1,max=2048"`
	ThumbnailImage *string  `json:"thumbnailImage" validate:"omitempty,max=2048"`
	ImagePosition  *string  `json:"imagePosition" validate:"omitempty,min=1,max=100"`
	ImageScale     *float64 `json:"imageScale" validate:"omitempty,gt=0,lte=10"`
	DisplayOrder   *int     `json:"displayOrder"`
}

// Apply copies the supplied fields onto iv.
func (p InterviewPatch) Apply(iv *Interview) {
	setString(&iv.Title, p.Title)
	setOptional(&iv.Description, p.Description)
	setString(&iv.EmbedURL, p.EmbedURL)
	setOptional(&iv.ThumbnailImage, p.ThumbnailImage)
	setString(&iv.ImagePosition, p.ImagePosition)
	if p.ImageScale != nil {
		iv.ImageScale = *p.ImageScale
	}
	if p.DisplayOrder != nil {
		iv.DisplayOrder = *p.DisplayOrder
	}
}

// Move directions for interview reordering.
const (
	MoveUp   = "up"
	MoveDown = "down"
)

// InterviewMove is the body of the move endpoint.
type InterviewMove struct {
	Direction string `json:"direction" validate:"required,oneof=up down"`
}

// InterviewReorder assigns display order by position in IDs.
type InterviewReorder struct {
	IDs []int64 `json:"ids" validate:"required,min=1,dive,gt=0"`
}
