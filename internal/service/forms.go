// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/olegiv/speakercms/internal/model"
	"github.com/olegiv/speakercms/internal/store"
)

// SubscriberService manages newsletter signups.
type SubscriberService struct {
	queries *store.Queries
}

// NewSubscriberService creates a new SubscriberService.
func NewSubscriberService(db *sql.DB) *SubscriberService {
	return &SubscriberService{queries: store.New(db)}
}

// Subscribe stores a new subscriber. A repeated email is rejected, not merged.
func (s *SubscriberService) Subscribe(ctx context.Context, in model.SubscriberInput) (model.Subscriber, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := model.Validate(in); err != nil {
		return model.Subscriber{}, err
	}

	sub, err := s.queries.CreateSubscriber(ctx, in)
	if store.IsUniqueViolation(err) {
		return model.Subscriber{}, model.NewValidationError("This email is already subscribed",
			map[string]string{"email": "is already subscribed"})
	}
	if err != nil {
		return model.Subscriber{}, fmt.Errorf("creating subscriber: %w", err)
	}
	return sub, nil
}

// List returns subscribers, most recent first.
func (s *SubscriberService) List(ctx context.Context) ([]model.Subscriber, error) {
	return s.queries.ListSubscribers(ctx)
}

// Get returns one subscriber.
func (s *SubscriberService) Get(ctx context.Context, id int64) (model.Subscriber, error) {
	return s.queries.GetSubscriber(ctx, id)
}

// Count returns the number of subscribers.
func (s *SubscriberService) Count(ctx context.Context) (int64, error) {
	return s.queries.CountSubscribers(ctx)
}

// Delete removes a subscriber and reports whether it existed.
func (s *SubscriberService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.queries.DeleteSubscriber(ctx, id)
}

// ContactService manages contact-form messages.
type ContactService struct {
	queries *store.Queries
}

// NewContactService creates a new ContactService.
func NewContactService(db *sql.DB) *ContactService {
	return &ContactService{queries: store.New(db)}
}

// Submit stores a contact message. Every submission is kept.
func (s *ContactService) Submit(ctx context.Context, in model.ContactInput) (model.Contact, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Subject = strings.TrimSpace(in.Subject)
	if err := model.Validate(in); err != nil {
		return model.Contact{}, err
	}

	c, err := s.queries.CreateContact(ctx, in)
	if err != nil {
		return model.Contact{}, fmt.Errorf("creating contact: %w", err)
	}
	return c, nil
}

// List returns contact messages, most recent first.
func (s *ContactService) List(ctx context.Context) ([]model.Contact, error) {
	return s.queries.ListContacts(ctx)
}

// Get returns one contact message.
func (s *ContactService) Get(ctx context.Context, id int64) (model.Contact, error) {
	return s.queries.GetContact(ctx, id)
}

// Delete removes a contact message and reports whether it existed.
func (s *ContactService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.queries.DeleteContact(ctx, id)
}
