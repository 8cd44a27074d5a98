// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"

	"github.com/olegiv/speakercms/internal/model"
)

const interviewColumns = "id, title, description, embed_url, thumbnail_image, image_position, image_scale, display_order, created_at, updated_at"

// CreateInterview inserts an interview.
func (q *Queries) CreateInterview(ctx context.Context, iv model.Interview) (model.Interview, error) {
	ts := now()
	id, err := q.insert(ctx,
		`INSERT INTO interviews (title, description, embed_url, thumbnail_image, image_position, image_scale,
			display_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		iv.Title, iv.Description, iv.EmbedURL, iv.ThumbnailImage, iv.ImagePosition, iv.ImageScale,
		iv.DisplayOrder, ts, ts)
	if err != nil {
		return model.Interview{}, fmt.Errorf("inserting interview: %w", err)
	}
	return q.GetInterview(ctx, id)
}

// GetInterview returns one interview or model.ErrNotFound.
func (q *Queries) GetInterview(ctx context.Context, id int64) (model.Interview, error) {
	var iv model.Interview
	err := q.get(ctx, &iv, "SELECT "+interviewColumns+" FROM interviews WHERE id = ?", id)
	return iv, err
}

// ListInterviews returns interviews by ascending display order.
func (q *Queries) ListInterviews(ctx context.Context) ([]model.Interview, error) {
	items := []model.Interview{}
	err := q.selectAll(ctx, &items,
		"SELECT "+interviewColumns+" FROM interviews ORDER BY display_order ASC, id ASC")
	return items, err
}

// UpdateInterview overwrites every mutable column of iv.
func (q *Queries) UpdateInterview(ctx context.Context, iv model.Interview) (model.Interview, error) {
	err := q.execOne(ctx,
		`UPDATE interviews SET title = ?, description = ?, embed_url = ?, thumbnail_image = ?,
		image_position = ?, image_scale = ?, display_order = ?, updated_at = ? WHERE id = ?`,
		iv.Title, iv.Description, iv.EmbedURL, iv.ThumbnailImage, iv.ImagePosition, iv.ImageScale,
		iv.DisplayOrder, now(), iv.ID)
	if err != nil {
		return model.Interview{}, err
	}
	return q.GetInterview(ctx, iv.ID)
}

// SetInterviewOrder changes only the display order of one interview.
func (q *Queries) SetInterviewOrder(ctx context.Context, id int64, order int) error {
	return q.execOne(ctx, "UPDATE interviews SET display_order = ?, updated_at = ? WHERE id = ?", order, now(), id)
}

// DeleteInterview removes an interview and reports whether a row existed.
func (q *Queries) DeleteInterview(ctx context.Context, id int64) (bool, error) {
	return q.deleteByID(ctx, "interviews", id)
}
