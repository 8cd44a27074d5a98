// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"errors"
	"strings"
	"testing"
)

func ptr[T any](v T) *T { return &v }

func TestValidate_RequiredFields(t *testing.T) {
	err := Validate(EventInput{Title: "Keynote"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error type = %T, want *ValidationError", err)
	}
	for _, field := range []string{"venue", "location", "date", "month", "time"} {
		if ve.Fields[field] != "is required" {
			t.Errorf("Fields[%q] = %q, want %q", field, ve.Fields[field], "is required")
		}
	}
	if _, ok := ve.Fields["title"]; ok {
		t.Error("title should not be reported")
	}
	if !strings.HasPrefix(ve.Message, "Invalid input: ") {
		t.Errorf("Message = %q", ve.Message)
	}
}

func TestValidate_EventType(t *testing.T) {
	in := EventInput{
		Title: "t", Venue: "v", Location: "l", Date: "01", Month: "Jan", Time: "10:00",
		EventType: "concert",
	}
	err := Validate(in)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Fields["eventType"] != "must be one of: event, workshop" {
		t.Errorf("eventType reason = %q", ve.Fields["eventType"])
	}

	in.EventType = EventTypeWorkshop
	if err := Validate(in); err != nil {
		t.Errorf("workshop should validate: %v", err)
	}
	in.EventType = ""
	if err := Validate(in); err != nil {
		t.Errorf("empty eventType should validate: %v", err)
	}
}

func TestValidate_SubscriberEmail(t *testing.T) {
	tests := []struct {
		email string
		ok    bool
	}{
		{"reader@example.com", true},
		{"not-an-email", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := Validate(SubscriberInput{Name: "Reader", Email: tt.email})
			if (err == nil) != tt.ok {
				t.Errorf("Validate(%q) error = %v, want ok=%v", tt.email, err, tt.ok)
			}
		})
	}
}

func TestValidate_PatchSkipsNilFields(t *testing.T) {
	if err := Validate(EventPatch{}); err != nil {
		t.Errorf("empty patch: %v", err)
	}
	if err := Validate(EventPatch{Venue: ptr("Hall B")}); err != nil {
		t.Errorf("partial patch: %v", err)
	}

	err := Validate(EventPatch{Title: ptr("")})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for empty title, got %v", err)
	}
	if ve.Fields["title"] != "must not be empty" {
		t.Errorf("title reason = %q", ve.Fields["title"])
	}
}

func TestValidate_Slug(t *testing.T) {
	base := BlogPostInput{Title: "Post", Content: "Body"}

	for _, slug := range []string{"", "hello", "hello-world-2"} {
		in := base
		in.Slug = slug
		if err := Validate(in); err != nil {
			t.Errorf("slug %q: unexpected error %v", slug, err)
		}
	}
	for _, slug := range []string{"Hello", "a--b", "-a", "a b"} {
		in := base
		in.Slug = slug
		if err := Validate(in); err == nil {
			t.Errorf("slug %q: expected error", slug)
		}
	}
}

func TestValidate_ImageScale(t *testing.T) {
	if err := Validate(HeroSettingsPatch{ImageScale: ptr(0.0)}); err == nil {
		t.Error("imageScale 0 should be rejected")
	}
	if err := Validate(HeroSettingsPatch{ImageScale: ptr(1.5)}); err != nil {
		t.Errorf("imageScale 1.5: %v", err)
	}
}

func TestValidationError_Error(t *testing.T) {
	ve := &ValidationError{Fields: map[string]string{"b": "is required", "a": "is invalid"}}
	if got, want := ve.Error(), "a is invalid; b is required"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	fe := FieldError("email", "is already subscribed")
	if fe.Error() != "email is already subscribed" {
		t.Errorf("FieldError message = %q", fe.Error())
	}
	if !IsValidationError(fe) {
		t.Error("IsValidationError should be true")
	}
}
