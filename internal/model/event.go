// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Event types.
const (
	EventTypeEvent    = "event"
	EventTypeWorkshop = "workshop"
)

// Event is a talk, appearance or workshop shown on the public schedule.
// Date, Month and Time are display strings entered by the editor.
type Event struct {
	ID        int64     `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Venue     string    `db:"venue" json:"venue"`
	Location  string    `db:"location" json:"location"`
	Date      string    `db:"date" json:"date"`
	Month     string    `db:"month" json:"month"`
	Time      string    `db:"time" json:"time"`
	Image     string    `db:"image" json:"image"`
	TicketURL string    `db:"ticket_url" json:"ticketUrl"`
	EventType string    `db:"event_type" json:"eventType"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// EventInput is the create schema for events.
type EventInput struct {
	Title     string `json:"title" validate:"required,max=300"`
	Venue     string `json:"venue" validate:"required,max=300"`
	Location  string `json:"location" validate:"required,max=300"`
	Date      string `json:"date" validate:"required,max=50"`
	Month     string `json:"month" validate:"required,max=50"`
	Time      string `json:"time" validate:"required,max=50"`
	Image     string `json:"image" validate:"max=2048"`
	TicketURL string `json:"ticketUrl" validate:"max=2048"`
	EventType string `json:"eventType" validate:"omitempty,oneof=event workshop"`
}

// EventPatch is the partial update schema for events. Nil fields are left
// unchanged.
type EventPatch struct {
	Title     *string `json:"title" validate:"omitempty,min=1,max=300"`
	Venue     *string `json:"venue" validate:"omitempty,min=1,max=300"`
	Location  *string `json:"location" validate:"omitempty,min=1,max=300"`
	Date      *string `json:"date" validate:"omitempty,min=1,max=50"`
	Month     *string `json:"month" validate:"omitempty,min=1,max=50"`
	Time      *string `json:"time" validate:"omitempty,min=1,max=50"`
	Image     *string `json:"image" validate:"omitempty,max=2048"`
	TicketURL *string `json:"ticketUrl" validate:"omitempty,max=2048"`
	EventType *string `json:"eventType" validate:"omitempty,oneof=event workshop"`
}

// Apply copies the supplied fields onto e.
func (p EventPatch) Apply(e *Event) {
	setString(&e.Title, p.Title)
	setString(&e.Venue, p.Venue)
	setString(&e.Location, p.Location)
	setString(&e.Date, p.Date)
	setString(&e.Month, p.Month)
	setString(&e.Time, p.Time)
	setString(&e.Image, p.Image)
	setString(&e.TicketURL, p.TicketURL)
	setString(&e.EventType, p.EventType)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// setOptional applies a nullable patch field. An empty string clears the value.
func setOptional(dst **string, src *string) {
	if src == nil {
		return
	}
	if *src == "" {
		*dst = nil
		return
	}
	v := *src
	*dst = &v
}
