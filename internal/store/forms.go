// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"

	"github.com/olegiv/speakercms/internal/model"
)

// CreateSubscriber inserts a subscriber. A duplicate email fails with a
// UNIQUE violation (see IsUniqueViolation).
func (q *Queries) CreateSubscriber(ctx context.Context, in model.SubscriberInput) (model.Subscriber, error) {
	id, err := q.insert(ctx,
		"INSERT INTO subscribers (name, email, created_at) VALUES (?, ?, ?)",
		in.Name, in.Email, now())
	if err != nil {
		return model.Subscriber{}, fmt.Errorf("inserting subscriber: %w", err)
	}
	return q.GetSubscriber(ctx, id)
}

// GetSubscriber returns one subscriber or model.ErrNotFound.
func (q *Queries) GetSubscriber(ctx context.Context, id int64) (model.Subscriber, error) {
	var s model.Subscriber
	err := q.get(ctx, &s, "SELECT id, name, email, created_at FROM subscribers WHERE id = ?", id)
	return s, err
}

// ListSubscribers returns subscribers, most recent first.
func (q *Queries) ListSubscribers(ctx context.Context) ([]model.Subscriber, error) {
	items := []model.Subscriber{}
	err := q.selectAll(ctx, &items,
		"SELECT id, name, email, created_at FROM subscribers ORDER BY created_at DESC, id DESC")
	return items, err
}

// CountSubscribers returns the number of subscribers.
func (q *Queries) CountSubscribers(ctx context.Context) (int64, error) {
	var n int64
	err := q.get(ctx, &n, "SELECT COUNT(*) FROM subscribers")
	return n, err
}

// DeleteSubscriber removes a subscriber and reports whether a row existed.
func (q *Queries) DeleteSubscriber(ctx context.Context, id int64) (bool, error) {
	return q.deleteByID(ctx, "subscribers", id)
}

const contactColumns = "id, name, email, subject, message, created_at"

// CreateContact inserts a contact message.
func (q *Queries) CreateContact(ctx context.Context, in model.ContactInput) (model.Contact, error) {
	id, err := q.insert(ctx,
		"INSERT INTO contacts (name, email, subject, message, created_at) VALUES (?, ?, ?, ?, ?)",
		in.Name, in.Email, in.Subject, in.Message, now())
	if err != nil {
		return model.Contact{}, fmt.Errorf("inserting contact: %w", err)
	}
	return q.GetContact(ctx, id)
}

// GetContact returns one contact message or model.ErrNotFound.
func (q *Queries) GetContact(ctx context.Context, id int64) (model.Contact, error) {
	var c model.Contact
	err := q.get(ctx, &c, "SELECT "+contactColumns+" FROM contacts WHERE id = ?", id)
	return c, err
}

// ListContacts returns contact messages, most recent first.
func (q *Queries) ListContacts(ctx context.Context) ([]model.Contact, error) {
	items := []model.Contact{}
	err := q.selectAll(ctx, &items,
		"SELECT "+contactColumns+" FROM contacts ORDER BY created_at DESC, id DESC")
	return items, err
}

// DeleteContact removes a contact message and reports whether a row existed.
func (q *Queries) DeleteContact(ctx context.Context, id int64) (bool, error) {
	return q.deleteByID(ctx, "contacts", id)
}
