// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "testing"

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"photo.jpg", "photo.jpg", false},
		{"../../etc/passwd", "passwd", false},
		{"/abs/path/img.png", "img.png", false},
		{"..", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := SanitizeFilename(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSafeJoinPath(t *testing.T) {
	base := t.TempDir()

	if _, err := SafeJoinPath(base, "a.png"); err != nil {
		t.Errorf("valid join failed: %v", err)
	}
	if _, err := SafeJoinPath(base, "..", "escape.png"); err == nil {
		t.Error("expected traversal error")
	}
}
