// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache stores rendered public API responses so repeated reads do
// not hit the database. Backends are an in-process map or Redis.
package cache

import (
	"context"
	"time"
)

// Cacher is implemented by every cache backend. Implementations must be
// safe for concurrent use.
type Cacher interface {
	// Get returns ErrCacheMiss when key is absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key. A zero ttl uses the backend default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error

	// Clear removes every entry owned by this cache.
	Clear(ctx context.Context) error

	Close() error
}

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	Sets    int64   `json:"sets"`
	Items   int     `json:"items"`
	HitRate float64 `json:"hitRate"`
}

// StatsProvider is an optional interface for caches that track counters.
type StatsProvider interface {
	Stats() Stats
}

// Error represents an error type for cache operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrCacheMiss indicates the key was not found in cache or has expired.
	ErrCacheMiss Error = "cache miss"

	// ErrCacheClosed indicates the cache has been closed.
	ErrCacheClosed Error = "cache closed"
)

type counters struct {
	hits, misses, sets int64
}

func (c counters) stats(items int) Stats {
	var rate float64
	if total := c.hits + c.misses; total > 0 {
		rate = float64(c.hits) / float64(total) * 100
	}
	return Stats{Hits: c.hits, Misses: c.misses, Sets: c.sets, Items: items, HitRate: rate}
}
