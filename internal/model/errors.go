// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors shared by the storage, service and HTTP layers.
var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("not authenticated")
	ErrForbidden       = errors.New("forbidden")
)

// ValidationError reports input that failed schema rules or a uniqueness
// constraint. Fields maps JSON field names to a short reason.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

// NewValidationError creates a ValidationError with an optional field map.
func NewValidationError(message string, fields map[string]string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

// FieldError creates a ValidationError for a single field.
func FieldError(field, reason string) *ValidationError {
	return &ValidationError{
		Message: fmt.Sprintf("%s %s", field, reason),
		Fields:  map[string]string{field: reason},
	}
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return strings.Join(parts, "; ")
}

// IsValidationError reports whether err wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
