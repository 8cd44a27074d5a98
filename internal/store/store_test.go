// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/olegiv/speakercms/internal/model"
)

// testDB creates a migrated database in a temporary directory.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := NewDB(filepath.Join(t.TempDir(), "speakercms-test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

func sampleEvent(title, date string) model.Event {
	return model.Event{
		Title: title, Venue: "Main Hall", Location: "Berlin",
		Date: date, Month: "Mar", Time: "19:00", EventType: model.EventTypeEvent,
	}
}

func TestCreateAndGetUser(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()

	email := "admin@example.com"
	u, err := q.CreateUser(ctx, CreateUserParams{Username: "admin", PasswordHash: "h", Email: &email, Role: model.RoleAdmin})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.ID == 0 || u.Role != model.RoleAdmin {
		t.Errorf("unexpected user %+v", u)
	}

	got, err := q.GetUserByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if got.ID != u.ID || got.Email == nil || *got.Email != email {
		t.Errorf("got %+v", got)
	}

	if _, err := q.GetUserByUsername(ctx, "nobody"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("missing user error = %v, want ErrNotFound", err)
	}

	_, err = q.CreateUser(ctx, CreateUserParams{Username: "admin", PasswordHash: "x"})
	if !IsUniqueViolation(err) {
		t.Errorf("duplicate username error = %v, want unique violation", err)
	}
}

func TestSubscriberEmailUnique(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()

	if _, err := q.CreateSubscriber(ctx, model.SubscriberInput{Name: "A", Email: "a@example.com"}); err != nil {
		t.Fatalf("CreateSubscriber: %v", err)
	}
	_, err := q.CreateSubscriber(ctx, model.SubscriberInput{Name: "B", Email: "a@example.com"})
	if !IsUniqueViolation(err) {
		t.Fatalf("duplicate error = %v, want unique violation", err)
	}

	n, err := q.CountSubscribers(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}

func TestListSubscribers_NewestFirst(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()

	for _, e := range []string{"1@example.com", "2@example.com", "3@example.com"} {
		if _, err := q.CreateSubscriber(ctx, model.SubscriberInput{Name: "n", Email: e}); err != nil {
			t.Fatal(err)
		}
	}

	list, err := q.ListSubscribers(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 || list[0].Email != "3@example.com" || list[2].Email != "1@example.com" {
		t.Errorf("order = %v", list)
	}
}

func TestListEvents_StringDateOrder(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()

	for _, d := range []string{"9", "10", "02"} {
		if _, err := q.CreateEvent(ctx, sampleEvent("e"+d, d)); err != nil {
			t.Fatal(err)
		}
	}

	list, err := q.ListEvents(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"02", "10", "9"}
	for i, e := range list {
		if e.Date != want[i] {
			t.Errorf("list[%d].Date = %q, want %q", i, e.Date, want[i])
		}
	}
}

func TestUpdateAndDeleteEvent(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()

	e, err := q.CreateEvent(ctx, sampleEvent("Talk", "05"))
	if err != nil {
		t.Fatal(err)
	}

	e.Venue = "Annex"
	updated, err := q.UpdateEvent(ctx, e)
	if err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}
	if updated.Venue != "Annex" || updated.Title != "Talk" {
		t.Errorf("updated = %+v", updated)
	}

	missing := e
	missing.ID = 9999
	if _, err := q.UpdateEvent(ctx, missing); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("update missing error = %v", err)
	}

	ok, err := q.DeleteEvent(ctx, e.ID)
	if err != nil || !ok {
		t.Fatalf("first delete = %v, %v", ok, err)
	}
	ok, err = q.DeleteEvent(ctx, e.ID)
	if err != nil || ok {
		t.Errorf("second delete = %v, %v; want false", ok, err)
	}
}

func TestBlogPosts_PublishedFilterAndLimit(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()

	posts := []model.BlogPost{
		{Title: "One", Slug: "one", Content: "c", Published: true},
		{Title: "Two", Slug: "two", Content: "c", Published: false},
		{Title: "Three", Slug: "three", Content: "c", Published: true},
	}
	for _, p := range posts {
		if _, err := q.CreateBlogPost(ctx, p); err != nil {
			t.Fatal(err)
		}
	}

	public, err := q.ListBlogPosts(ctx, model.BlogFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(public) != 2 || public[0].Slug != "three" {
		t.Errorf("public list = %v", public)
	}

	all, _ := q.ListBlogPosts(ctx, model.BlogFilter{IncludeUnpublished: true})
	if len(all) != 3 {
		t.Errorf("admin list len = %d, want 3", len(all))
	}

	limited, _ := q.ListBlogPosts(ctx, model.BlogFilter{Limit: 1})
	if len(limited) != 1 || limited[0].Slug != "three" {
		t.Errorf("limited = %v", limited)
	}

	if _, err := q.GetBlogPostBySlug(ctx, "two", false); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("unpublished lookup error = %v", err)
	}
	if _, err := q.GetBlogPostBySlug(ctx, "two", true); err != nil {
		t.Errorf("admin lookup: %v", err)
	}

	_, err = q.CreateBlogPost(ctx, model.BlogPost{Title: "Dup", Slug: "one", Content: "c"})
	if !IsUniqueViolation(err) {
		t.Errorf("duplicate slug error = %v", err)
	}
}

func TestUpsertEbook_SingleRow(t *testing.T) {
	db := testDB(t)
	q := New(db)
	ctx := context.Background()

	if _, err := q.GetEbook(ctx); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetEbook before upsert = %v", err)
	}

	e := model.DefaultEbook()
	e.Title = "First"
	e.Features = model.StringList{"a", "b"}
	if _, err := q.UpsertEbook(ctx, e); err != nil {
		t.Fatalf("UpsertEbook: %v", err)
	}

	e.Title = "Second"
	got, err := q.UpsertEbook(ctx, e)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Second" || len(got.Features) != 2 {
		t.Errorf("got %+v", got)
	}

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM ebook").Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("ebook rows = %d, want 1", n)
	}

	if _, err := db.Exec("INSERT INTO ebook (id, title) VALUES (2, 'x')"); err == nil {
		t.Error("second ebook row should violate the id check")
	}
}

func TestUpsertHeroSettings(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()

	h := model.DefaultHeroSettings()
	sub := "Speaker"
	h.Subtitle = &sub
	got, err := q.UpsertHeroSettings(ctx, h)
	if err != nil {
		t.Fatalf("UpsertHeroSettings: %v", err)
	}
	if got.ImagePosition != model.DefaultImagePosition || got.ImageScale != 1.0 {
		t.Errorf("defaults lost: %+v", got)
	}
	if got.Subtitle == nil || *got.Subtitle != "Speaker" {
		t.Errorf("subtitle = %v", got.Subtitle)
	}
}

func TestSiteSettingsUpsert(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()

	if _, err := q.UpsertSiteSettings(ctx, "about", model.JSONDoc(`{"visible":true}`)); err != nil {
		t.Fatal(err)
	}
	s, err := q.UpsertSiteSettings(ctx, "about", model.JSONDoc(`{"visible":false}`))
	if err != nil {
		t.Fatal(err)
	}
	if string(s.Settings) != `{"visible":false}` {
		t.Errorf("settings = %s", s.Settings)
	}

	all, _ := q.ListSiteSettings(ctx)
	if len(all) != 1 {
		t.Errorf("sections = %d, want 1", len(all))
	}
}

func TestInterviewsOrderAndTx(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()

	a, _ := q.CreateInterview(ctx, model.Interview{Title: "A", EmbedURL: "u", ImagePosition: "center center", ImageScale: 1, DisplayOrder: 0})
	b, _ := q.CreateInterview(ctx, model.Interview{Title: "B", EmbedURL: "u", ImagePosition: "center center", ImageScale: 1, DisplayOrder: 1})

	errBoom := errors.New("boom")
	err := q.InTx(ctx, func(tx *Queries) error {
		if err := tx.SetInterviewOrder(ctx, a.ID, 5); err != nil {
			return err
		}
		return errBoom
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("InTx error = %v", err)
	}

	list, _ := q.ListInterviews(ctx)
	if list[0].ID != a.ID || list[0].DisplayOrder != 0 {
		t.Errorf("rollback did not restore order: %+v", list)
	}

	err = q.InTx(ctx, func(tx *Queries) error {
		if err := tx.SetInterviewOrder(ctx, a.ID, 1); err != nil {
			return err
		}
		return tx.SetInterviewOrder(ctx, b.ID, 0)
	})
	if err != nil {
		t.Fatal(err)
	}
	list, _ = q.ListInterviews(ctx)
	if list[0].ID != b.ID || list[1].ID != a.ID {
		t.Errorf("swap not applied: %+v", list)
	}
}

func TestEbookPurchases(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()

	p, err := q.CreateEbookPurchase(ctx, "buyer@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if p.Delivered || p.DeliveryDate != nil {
		t.Errorf("new purchase = %+v", p)
	}

	when := time.Now().UTC().Truncate(time.Second)
	p, err = q.UpdateEbookPurchase(ctx, p.ID, p.Email, true, &when)
	if err != nil {
		t.Fatal(err)
	}
	if !p.Delivered || p.DeliveryDate == nil || !p.DeliveryDate.Equal(when) {
		t.Errorf("delivered purchase = %+v", p)
	}
}

func TestAuditPrune(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()

	if err := q.CreateAuditEntry(ctx, CreateAuditEntryParams{Level: "info", Category: "auth", Message: "login"}); err != nil {
		t.Fatal(err)
	}

	removed, err := q.DeleteAuditEntriesBefore(ctx, time.Now().Add(-time.Hour))
	if err != nil || removed != 0 {
		t.Errorf("prune old = %d, %v", removed, err)
	}
	removed, err = q.DeleteAuditEntriesBefore(ctx, time.Now().Add(time.Hour))
	if err != nil || removed != 1 {
		t.Errorf("prune all = %d, %v", removed, err)
	}
}

func TestEnsureAdmin(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	seed := AdminSeed{Username: "admin", Password: "bootstrap-pass"}

	created, err := EnsureAdmin(ctx, q, seed, logger)
	if err != nil || !created {
		t.Fatalf("first EnsureAdmin = %v, %v", created, err)
	}
	created, err = EnsureAdmin(ctx, q, seed, logger)
	if err != nil || created {
		t.Errorf("second EnsureAdmin = %v, %v", created, err)
	}

	n, _ := q.CountUsersByRole(ctx, model.RoleAdmin)
	if n != 1 {
		t.Errorf("admins = %d", n)
	}
}
