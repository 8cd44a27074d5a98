// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

func skipIfNoRedis(t *testing.T) string {
	url := os.Getenv("SPEAKERCMS_TEST_REDIS_URL")
	if url == "" {
		t.Skip("Skipping Redis tests: SPEAKERCMS_TEST_REDIS_URL not set")
	}
	return url
}

func TestRedisCache(t *testing.T) {
	url := skipIfNoRedis(t)

	c, err := NewRedisCache(RedisCacheOptions{URL: url, Prefix: "speakercms-test:", DefaultTTL: time.Minute})
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer func() { _ = c.Close() }()
	ctx := context.Background()
	_ = c.Clear(ctx)

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	got, err := c.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Fatalf("Get = %q, %v", got, err)
	}

	if err := c.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get after Clear: err = %v", err)
	}
}

func TestNewRedisCache_RequiresURL(t *testing.T) {
	if _, err := NewRedisCache(RedisCacheOptions{}); err == nil {
		t.Error("expected error for empty URL")
	}
}
