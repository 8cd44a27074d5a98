// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"encoding/json"
	"testing"
)

func TestStringList_Scan(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want []string
	}{
		{"nil", nil, []string{}},
		{"empty string", "", []string{}},
		{"empty array", "[]", []string{}},
		{"items", `["one","two"]`, []string{"one", "two"}},
		{"bytes", []byte(`["x"]`), []string{"x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l StringList
			if err := l.Scan(tt.src); err != nil {
				t.Fatalf("Scan: %v", err)
			}
			if len(l) != len(tt.want) {
				t.Fatalf("got %v, want %v", l, tt.want)
			}
			for i := range l {
				if l[i] != tt.want[i] {
					t.Errorf("[%d] = %q, want %q", i, l[i], tt.want[i])
				}
			}
		})
	}

	var l StringList
	if err := l.Scan(42); err == nil {
		t.Error("expected error for int source")
	}
}

func TestStringList_NilEncodesAsEmptyArray(t *testing.T) {
	var l StringList
	v, err := l.Value()
	if err != nil {
		t.Fatal(err)
	}
	if v != "[]" {
		t.Errorf("Value() = %v, want []", v)
	}

	b, _ := json.Marshal(struct {
		F StringList `json:"f"`
	}{})
	if string(b) != `{"f":[]}` {
		t.Errorf("json = %s", b)
	}
}

func TestJSONDoc(t *testing.T) {
	var d JSONDoc
	if err := json.Unmarshal([]byte(`{"visible":true,"order":3}`), &d); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	v, _ := d.Value()
	if v != `{"visible":true,"order":3}` {
		t.Errorf("Value() = %v", v)
	}

	var empty JSONDoc
	b, _ := json.Marshal(empty)
	if string(b) != "{}" {
		t.Errorf("empty doc marshals to %s", b)
	}
}
