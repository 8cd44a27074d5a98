// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/olegiv/speakercms/internal/model"
	"github.com/olegiv/speakercms/internal/service"
	"github.com/olegiv/speakercms/internal/testutil"
)

func TestScheduler_StartStop(t *testing.T) {
	s := New(testutil.TestLogger())
	if err := s.Add("noop", "@hourly", func(context.Context) error { return nil }); err != nil {
		t.Fatalf("Add: %v", err)
	}
	s.Start()
	s.Stop()

	jobs := s.Jobs()
	if len(jobs) != 1 || jobs[0].Name != "noop" || jobs[0].Schedule != "@hourly" {
		t.Errorf("Jobs() = %+v", jobs)
	}
}

func TestScheduler_AddRejectsBadInput(t *testing.T) {
	s := New(testutil.TestLogger())
	noop := func(context.Context) error { return nil }

	if err := s.Add("bad", "not a schedule", noop); err == nil {
		t.Error("expected error for invalid schedule")
	}
	if err := s.Add("job", "*/5 * * * *", noop); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Add("job", "@daily", noop); err == nil {
		t.Error("expected error for duplicate name")
	}
}

func TestScheduler_Trigger(t *testing.T) {
	s := New(testutil.TestLogger())
	boom := errors.New("boom")
	calls := 0
	if err := s.Add("flaky", "@daily", func(context.Context) error {
		calls++
		return boom
	}); err != nil {
		t.Fatal(err)
	}

	if err := s.Trigger("flaky"); !errors.Is(err, boom) {
		t.Errorf("Trigger error = %v, want %v", err, boom)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	info := s.Jobs()[0]
	if info.LastRun.IsZero() || !errors.Is(info.LastErr, boom) {
		t.Errorf("job info not updated: %+v", info)
	}

	if err := s.Trigger("missing"); err == nil {
		t.Error("expected error for unknown job")
	}
}

func TestAuditPrune(t *testing.T) {
	db := testutil.TestDB(t)
	audit := service.NewAuditService(db, testutil.TestLogger())
	ctx := context.Background()

	audit.Info(ctx, model.AuditCategorySystem, "old entry", nil, "", nil)

	s := New(testutil.TestLogger())
	if err := s.AddAuditPrune(audit, time.Hour, "@daily"); err != nil {
		t.Fatalf("AddAuditPrune: %v", err)
	}
	if err := s.Trigger(AuditPruneJob); err != nil {
		t.Fatalf("Trigger: %v", err)
	}

	entries, err := audit.List(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("recent entry must survive a one hour retention, got %d entries", len(entries))
	}

	if err := s.AddAuditPrune(audit, 0, "@daily"); err == nil {
		t.Error("expected error for non-positive retention")
	}
}

type stubPruner struct {
	retention time.Duration
}

func (p *stubPruner) Prune(_ context.Context, retention time.Duration) (int64, error) {
	p.retention = retention
	return 3, nil
}

func TestAuditPrune_PassesRetention(t *testing.T) {
	p := &stubPruner{}
	s := New(testutil.TestLogger())
	if err := s.AddAuditPrune(p, 90*24*time.Hour, "@daily"); err != nil {
		t.Fatal(err)
	}
	if err := s.Trigger(AuditPruneJob); err != nil {
		t.Fatal(err)
	}
	if p.retention != 90*24*time.Hour {
		t.Errorf("retention = %s, want 2160h", p.retention)
	}
}

type countingReloader struct {
	calls int
	err   error
}

func (r *countingReloader) Reload() error {
	r.calls++
	return r.err
}

func TestGeoIPReload(t *testing.T) {
	r := &countingReloader{}
	s := New(testutil.TestLogger())
	if err := s.AddGeoIPReload(r, "@weekly"); err != nil {
		t.Fatal(err)
	}
	if err := s.Trigger(GeoIPReloadJob); err != nil {
		t.Fatal(err)
	}
	if r.calls != 1 {
		t.Errorf("calls = %d, want 1", r.calls)
	}

	r.err = errors.New("database missing")
	if err := s.Trigger(GeoIPReloadJob); !errors.Is(err, r.err) {
		t.Errorf("Trigger error = %v, want %v", err, r.err)
	}
}
