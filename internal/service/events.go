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

// EventService manages the public schedule.
type EventService struct {
	queries *store.Queries
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB) *EventService {
	return &EventService{queries: store.New(db)}
}

// List returns events ordered by their date string.
func (s *EventService) List(ctx context.Context) ([]model.Event, error) {
	return s.queries.ListEvents(ctx)
}

// Get returns one event.
func (s *EventService) Get(ctx context.Context, id int64) (model.Event, error) {
	return s.queries.GetEvent(ctx, id)
}

// Create validates in and stores a new event.
func (s *EventService) Create(ctx context.Context, in model.EventInput) (model.Event, error) {
	if err := model.Validate(in); err != nil {
		return model.Event{}, err
	}
	if in.EventType == "" {
		in.EventType = model.EventTypeEvent
	}

	e, err := s.queries.CreateEvent(ctx, model.Event{
		Title:     in.Title,
		Venue:     in.Venue,
		Location:  in.Location,
		Date:      in.Date,
		Month:     in.Month,
		Time:      in.Time,
		Image:     in.Image,
		TicketURL: in.TicketURL,
		EventType: in.EventType,
	})
	if err != nil {
		return model.Event{}, fmt.Errorf("creating event: %w", err)
	}
	return e, nil
}

// Update applies the supplied fields of patch to event id.
func (s *EventService) Update(ctx context.Context, id int64, patch model.EventPatch) (model.Event, error) {
	if err := model.Validate(patch); err != nil {
		return model.Event{}, err
	}

	var out model.Event
	err := s.queries.InTx(ctx, func(q *store.Queries) error {
		e, err := q.GetEvent(ctx, id)
		if err != nil {
			return err
		}
		patch.Apply(&e)
		out, err = q.UpdateEvent(ctx, e)
		return err
	})
	return out, err
}

// Delete removes an event and reports whether it existed.
func (s *EventService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.queries.DeleteEvent(ctx, id)
}
