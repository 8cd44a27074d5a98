// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is an ordered list of strings persisted as a JSON array in a
// TEXT column. A nil list encodes as an empty array.
type StringList []string

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("scanning StringList: unsupported type %T", src)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		*l = StringList{}
		return nil
	}

	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("scanning StringList: %w", err)
	}
	if items == nil {
		items = []string{}
	}
	*l = items
	return nil
}

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// MarshalJSON keeps empty lists as [] instead of null.
func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// JSONDoc is an opaque JSON document stored verbatim in a TEXT column.
type JSONDoc json.RawMessage

// Scan implements sql.Scanner.
func (d *JSONDoc) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = nil
	case string:
		*d = JSONDoc(v)
	case []byte:
		*d = append(JSONDoc(nil), v...)
	default:
		return fmt.Errorf("scanning JSONDoc: unsupported type %T", src)
	}
	return nil
}

// Value implements driver.Valuer.
func (d JSONDoc) Value() (driver.Value, error) {
	if len(d) == 0 {
		return "{}", nil
	}
	return string(d), nil
}

// MarshalJSON emits the stored document, or {} when empty.
func (d JSONDoc) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte("{}"), nil
	}
	return d, nil
}

// UnmarshalJSON stores a copy of the raw document.
func (d *JSONDoc) UnmarshalJSON(data []byte) error {
	if !json.Valid(data) {
		return fmt.Errorf("invalid JSON document")
	}
	*d = append((*d)[:0], data...)
	return nil
}
