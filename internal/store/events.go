// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"

	"github.com/olegiv/speakercms/internal/model"
)

const eventColumns = "id, title, venue, location, date, month, time, image, ticket_url, event_type, created_at, updated_at"

// CreateEvent inserts an event.
func (q *Queries) CreateEvent(ctx context.Context, e model.Event) (model.Event, error) {
	ts := now()
	id, err := q.insert(ctx,
		`INSERT INTO events (title, venue, location, date, month, time, image, ticket_url, event_type, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Title, e.Venue, e.Location, e.Date, e.Month, e.Time, e.Image, e.TicketURL, e.EventType, ts, ts)
	if err != nil {
		return model.Event{}, fmt.Errorf("inserting event: %w", err)
	}
	return q.GetEvent(ctx, id)
}

// GetEvent returns one event or model.ErrNotFound.
func (q *Queries) GetEvent(ctx context.Context, id int64) (model.Event, error) {
	var e model.Event
	err := q.get(ctx, &e, "SELECT "+eventColumns+" FROM events WHERE id = ?", id)
	return e, err
}

// ListEvents returns events ordered by the literal date string, so "02"
// sorts before "10" and "10" before "9".
func (q *Queries) ListEvents(ctx context.Context) ([]model.Event, error) {
	items := []model.Event{}
	err := q.selectAll(ctx, &items,
		"SELECT "+eventColumns+" FROM events ORDER BY date COLLATE BINARY ASC, id ASC")
	return items, err
}

// UpdateEvent overwrites every mutable column of e.
func (q *Queries) UpdateEvent(ctx context.Context, e model.Event) (model.Event, error) {
	err := q.execOne(ctx,
		`UPDATE events SET title = ?, venue = ?, location = ?, date = ?, month = ?, time = ?,
		image = ?, ticket_url = ?, event_type = ?, updated_at = ? WHERE id = ?`,
		e.Title, e.Venue, e.Location, e.Date, e.Month, e.Time, e.Image, e.TicketURL, e.EventType, now(), e.ID)
	if err != nil {
		return model.Event{}, err
	}
	return q.GetEvent(ctx, e.ID)
}

// DeleteEvent removes an event and reports whether a row existed.
func (q *Queries) DeleteEvent(ctx context.Context, id int64) (bool, error) {
	return q.deleteByID(ctx, "events", id)
}
