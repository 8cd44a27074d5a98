// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"bytes"
	"context"
	"database/sql"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/olegiv/speakercms/internal/model"
	"github.com/olegiv/speakercms/internal/store"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := store.NewDB(filepath.Join(t.TempDir(), "logging.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := store.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

func TestAuditHandler_PersistsWarnAndAbove(t *testing.T) {
	db := testDB(t)
	var out bytes.Buffer
	logger := slog.New(NewAuditHandler(slog.NewTextHandler(&out, nil), db))

	logger.Info("routine message")
	logger.Warn("login failed", "ip", "10.0.0.1", "username", "bob")
	logger.With("component", "upload").Error("upload write failed", "category", model.AuditCategoryUpload)

	if !strings.Contains(out.String(), "routine message") {
		t.Error("inner handler did not receive info record")
	}

	entries, err := store.New(db).ListAuditEntries(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}

	byMsg := map[string]model.AuditEntry{}
	for _, e := range entries {
		byMsg[e.Message] = e
	}

	login := byMsg["login failed"]
	if login.Level != model.AuditLevelWarning || login.Category != model.AuditCategoryAuth {
		t.Errorf("login entry = %+v", login)
	}
	if login.IPAddress != "10.0.0.1" {
		t.Errorf("ip = %q", login.IPAddress)
	}
	if !strings.Contains(string(login.Metadata), `"username":"bob"`) {
		t.Errorf("metadata = %s", login.Metadata)
	}

	up := byMsg["upload write failed"]
	if up.Level != model.AuditLevelError || up.Category != model.AuditCategoryUpload {
		t.Errorf("upload entry = %+v", up)
	}
	if !strings.Contains(string(up.Metadata), `"component":"upload"`) {
		t.Errorf("metadata = %s", up.Metadata)
	}
}

func TestInferCategory(t *testing.T) {
	tests := map[string]string{
		"admin login succeeded": model.AuditCategoryAuth,
		"blog post deleted":     model.AuditCategoryContent,
		"upload rejected":       model.AuditCategoryUpload,
		"database slow":         model.AuditCategorySystem,
	}
	for msg, want := range tests {
		if got := inferCategory(msg); got != want {
			t.Errorf("inferCategory(%q) = %q, want %q", msg, got, want)
		}
	}
}
