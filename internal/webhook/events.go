// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package webhook notifies an external endpoint about public form
// submissions. Deliveries are queued in memory, signed with HMAC-SHA256
// and retried with exponential backoff.
package webhook

import (
	"time"

	"github.com/google/uuid"
)

// Event types.
const (
	EventSubscriberCreated = "subscriber.created"
	EventContactCreated    = "contact.created"
	EventTest              = "webhook.test"
)

// Event is the JSON payload posted to the endpoint.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// NewEvent creates an event with a fresh id.
func NewEvent(eventType string, data any) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}
