// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	// Every pooled connection to :memory: would be a separate database.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE sessions (
			token TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			expiry REAL NOT NULL
		);
		CREATE INDEX sessions_expiry_idx ON sessions(expiry);
	`)
	if err != nil {
		t.Fatalf("failed to create sessions table: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestNew_CookieSettings(t *testing.T) {
	db := setupTestDB(t)

	dev := New(db, true, 0)
	if dev.Cookie.Secure {
		t.Error("dev cookies should not be Secure")
	}
	if dev.Cookie.Name != CookieName || !dev.Cookie.HttpOnly {
		t.Errorf("unexpected cookie config: %+v", dev.Cookie)
	}
	if dev.Lifetime != 24*time.Hour {
		t.Errorf("Lifetime = %v", dev.Lifetime)
	}

	prod := New(db, false, 0)
	if !prod.Cookie.Secure {
		t.Error("production cookies should be Secure")
	}
	if prod.Cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("SameSite = %v", prod.Cookie.SameSite)
	}
}

func TestLoginLogoutRoundTrip(t *testing.T) {
	sm := New(setupTestDB(t), true, 0)

	login := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := Login(r.Context(), sm, 42); err != nil {
			t.Errorf("Login: %v", err)
		}
	}))
	rec := httptest.NewRecorder()
	login.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))

	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("no session cookie set")
	}

	var seen int64
	read := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserID(r.Context(), sm)
	}))
	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	req.AddCookie(cookies[0])
	read.ServeHTTP(httptest.NewRecorder(), req)
	if seen != 42 {
		t.Fatalf("UserID = %d, want 42", seen)
	}

	logout := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := Logout(r.Context(), sm); err != nil {
			t.Errorf("Logout: %v", err)
		}
	}))
	req = httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(cookies[0])
	logout.ServeHTTP(httptest.NewRecorder(), req)

	seen = -1
	req = httptest.NewRequest(http.MethodGet, "/session", nil)
	req.AddCookie(cookies[0])
	read.ServeHTTP(httptest.NewRecorder(), req)
	if seen != 0 {
		t.Errorf("UserID after logout = %d, want 0", seen)
	}
}
