// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

func TestMemoryCache_GetSet(t *testing.T) {
	c := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Minute})
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("Get on empty cache: err = %v", err)
	}

	val := []byte("hello")
	if err := c.Set(ctx, "k", val, 0); err != nil {
		t.Fatal(err)
	}
	val[0] = 'j'

	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "hello" {
		t.Errorf("Get = %q, stored value was mutated", got)
	}

	st := c.Stats()
	if st.Hits != 1 || st.Misses != 1 || st.Sets != 1 || st.Items != 1 {
		t.Errorf("Stats = %+v", st)
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Minute})
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	now := time.Now()
	c.now = func() time.Time { return now }
	_ = c.Set(ctx, "k", []byte("v"), time.Second)

	now = now.Add(2 * time.Second)
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expired entry returned: err = %v", err)
	}

	c.removeExpired()
	if n := c.Stats().Items; n != 0 {
		t.Errorf("Items after cleanup = %d", n)
	}
}

func TestMemoryCache_EvictsWhenFull(t *testing.T) {
	c := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Minute, MaxItems: 2})
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	_ = c.Set(ctx, "a", []byte("1"), time.Second)
	_ = c.Set(ctx, "b", []byte("2"), time.Hour)
	_ = c.Set(ctx, "c", []byte("3"), time.Hour)

	if _, err := c.Get(ctx, "a"); !errors.Is(err, ErrCacheMiss) {
		t.Error("entry closest to expiry was not evicted")
	}
	for _, k := range []string{"b", "c"} {
		if _, err := c.Get(ctx, k); err != nil {
			t.Errorf("Get(%s): %v", k, err)
		}
	}
}

func TestMemoryCache_ClearAndClose(t *testing.T) {
	c := NewMemoryCache(MemoryCacheOptions{})
	ctx := context.Background()

	_ = c.Set(ctx, "a", []byte("1"), 0)
	_ = c.Set(ctx, "b", []byte("2"), 0)
	if err := c.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	if n := c.Stats().Items; n != 0 {
		t.Errorf("Items after Clear = %d", n)
	}

	_ = c.Close()
	_ = c.Close()
	if err := c.Set(ctx, "a", nil, 0); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Set after Close: err = %v", err)
	}
}

func TestNew_FallsBackToMemory(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	c := New(Config{DefaultTTL: time.Minute}, logger)
	if _, ok := c.(*MemoryCache); !ok {
		t.Errorf("New without redis = %T, want *MemoryCache", c)
	}
	_ = c.Close()

	c = New(Config{RedisURL: "redis://127.0.0.1:1/0", DefaultTTL: time.Minute}, logger)
	if _, ok := c.(*MemoryCache); !ok {
		t.Errorf("New with unreachable redis = %T, want *MemoryCache", c)
	}
	_ = c.Close()
}
