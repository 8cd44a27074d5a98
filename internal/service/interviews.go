// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/olegiv/speakercms/internal/model"
	"github.com/olegiv/speakercms/internal/store"
)

// InterviewService manages media appearances and their display order.
type InterviewService struct {
	queries *store.Queries
}

// NewInterviewService creates a new InterviewService.
func NewInterviewService(db *sql.DB) *InterviewService {
	return &InterviewService{queries: store.New(db)}
}

// List returns interviews by ascending display order.
func (s *InterviewService) List(ctx context.Context) ([]model.Interview, error) {
	return s.queries.ListInterviews(ctx)
}

// Get returns one interview.
func (s *InterviewService) Get(ctx context.Context, id int64) (model.Interview, error) {
	return s.queries.GetInterview(ctx, id)
}

// Create validates in and stores a new interview.
func (s *InterviewService) Create(ctx context.Context, in model.InterviewInput) (model.Interview, error) {
	if err := model.Validate(in); err != nil {
		return model.Interview{}, err
	}

	iv := model.Interview{
		Title:          in.Title,
		Description:    in.Description,
		EmbedURL:       in.EmbedURL,
		ThumbnailImage: in.ThumbnailImage,
		ImagePosition:  in.ImagePosition,
		ImageScale:     model.DefaultImageScale,
		DisplayOrder:   in.DisplayOrder,
	}
	if iv.ImagePosition == "" {
		iv.ImagePosition = model.DefaultImagePosition
	}
	if in.ImageScale != nil {
		iv.ImageScale = *in.ImageScale
	}

	out, err := s.queries.CreateInterview(ctx, iv)
	if err != nil {
		return model.Interview{}, fmt.Errorf("creating interview: %w", err)
	}
	return out, nil
}

// Update applies the supplied fields of patch to interview id.
func (s *InterviewService) Update(ctx context.Context, id int64, patch model.InterviewPatch) (model.Interview, error) {
	if err := model.Validate(patch); err != nil {
		return model.Interview{}, err
	}

	var out model.Interview
	err := s.queries.InTx(ctx, func(q *store.Queries) error {
		iv, err := q.GetInterview(ctx, id)
		if err != nil {
			return err
		}
		patch.Apply(&iv)
		out, err = q.UpdateInterview(ctx, iv)
		return err
	})
	return out, err
}

// Delete removes an interview and reports whether it existed.
func (s *InterviewService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.queries.DeleteInterview(ctx, id)
}

// Move swaps interview id with its neighbour in the given direction. The
// whole list is renumbered 0..n-1 in one transaction, so ties in stored
// order cannot make the swap a no-op and a failure leaves the order intact.
// Moving past either end is a no-op.
func (s *InterviewService) Move(ctx context.Context, id int64, direction string) ([]model.Interview, error) {
	if err := model.Validate(model.InterviewMove{Direction: direction}); err != nil {
		return nil, err
	}

	var out []model.Interview
	err := s.queries.InTx(ctx, func(q *store.Queries) error {
		list, err := q.ListInterviews(ctx)
		if err != nil {
			return err
		}

		idx := -1
		for i, iv := range list {
			if iv.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return model.ErrNotFound
		}

		target := idx - 1
		if direction == model.MoveDown {
			target = idx + 1
		}
		if target >= 0 && target < len(list) {
			list[idx], list[target] = list[target], list[idx]
		}

		ids := make([]int64, len(list))
		for i, iv := range list {
			ids[i] = iv.ID
		}
		out, err = renumber(ctx, q, ids)
		return err
	})
	return out, err
}

// Reorder assigns display order by position in ids. Unknown ids fail the
// whole batch with model.ErrNotFound.
func (s *InterviewService) Reorder(ctx context.Context, ids []int64) ([]model.Interview, error) {
	if err := model.Validate(model.InterviewReorder{IDs: ids}); err != nil {
		return nil, err
	}

	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return nil, model.FieldError("ids", "must not contain duplicates")
		}
		seen[id] = true
	}

	var out []model.Interview
	err := s.queries.InTx(ctx, func(q *store.Queries) error {
		var err error
		out, err = renumber(ctx, q, ids)
		return err
	})
	return out, err
}

func renumber(ctx context.Context, q *store.Queries, ids []int64) ([]model.Interview, error) {
	for i, id := range ids {
		if err := q.SetInterviewOrder(ctx, id, i); err != nil {
			return nil, err
		}
	}
	return q.ListInterviews(ctx)
}
