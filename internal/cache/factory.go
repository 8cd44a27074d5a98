// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"log/slog"
	"time"
)

// Config selects and tunes a cache backend.
type Config struct {
	RedisURL   string // empty selects the memory backend
	Prefix     string
	DefaultTTL time.Duration
	MaxItems   int
}

// New returns a Redis cache when RedisURL is set and reachable, otherwise a
// memory cache. An unreachable Redis is logged and does not fail startup.
func New(cfg Config, logger *slog.Logger) Cacher {
	if cfg.RedisURL != "" {
		rc, err := NewRedisCache(RedisCacheOptions{
			URL:        cfg.RedisURL,
			Prefix:     cfg.Prefix,
			DefaultTTL: cfg.DefaultTTL,
		})
		if err == nil {
			logger.Info("using redis cache", "prefix", cfg.Prefix)
			return rc
		}
		logger.Warn("redis unavailable, falling back to memory cache", "error", err)
	}

	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      cfg.DefaultTTL,
		MaxItems:        cfg.MaxItems,
		CleanupInterval: time.Minute,
	})
}
