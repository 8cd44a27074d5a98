// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads application settings from SPEAKERCMS_* environment
// variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains example secrets that must never be deployed.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"SPEAKERCMS_DB_PATH" envDefault:"./data/speakercms.db"`
	SessionSecret string `env:"SPEAKERCMS_SESSION_SECRET,required"`
	ServerHost    string `env:"SPEAKERCMS_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"SPEAKERCMS_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"SPEAKERCMS_ENV" envDefault:"development"`
	LogLevel      string `env:"SPEAKERCMS_LOG_LEVEL" envDefault:"info"`
	UploadsDir    string `env:"SPEAKERCMS_UPLOADS_DIR" envDefault:"./uploads"`
	PublicDir     string `env:"SPEAKERCMS_PUBLIC_DIR"` // Built client bundle, served with SPA fallback
	SiteURL       string `env:"SPEAKERCMS_SITE_URL"`   // Public origin for sitemap.xml
	NoIndex       bool   `env:"SPEAKERCMS_NO_INDEX"`   // robots.txt disallows everything

	// Cache configuration
	RedisURL    string `env:"SPEAKERCMS_REDIS_URL"`                            // Optional; memory cache otherwise
	CachePrefix string `env:"SPEAKERCMS_CACHE_PREFIX" envDefault:"speakercms:"` // Redis key prefix
	CacheTTL    int    `env:"SPEAKERCMS_CACHE_TTL" envDefault:"300"`           // Seconds

	CORSOrigins []string `env:"SPEAKERCMS_CORS_ORIGINS" envSeparator:","`

	// Bootstrap admin, created only when no admin account exists.
	AdminUsername string `env:"SPEAKERCMS_ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"SPEAKERCMS_ADMIN_PASSWORD"`
	AdminEmail    string `env:"SPEAKERCMS_ADMIN_EMAIL"`

	AuditRetentionDays int    `env:"SPEAKERCMS_AUDIT_RETENTION_DAYS" envDefault:"90"`
	AuditPruneSchedule string `env:"SPEAKERCMS_AUDIT_PRUNE_SCHEDULE" envDefault:"@daily"`

	// GeoLite2-Country database used to tag login audit entries with a
	// country code. Optional.
	GeoIPDBPath         string `env:"SPEAKERCMS_GEOIP_DB_PATH"`
	GeoIPReloadSchedule string `env:"SPEAKERCMS_GEOIP_RELOAD_SCHEDULE" envDefault:"@weekly"`

	// Endpoint notified about newsletter signups and contact messages.
	WebhookURL    string `env:"SPEAKERCMS_WEBHOOK_URL"`
	WebhookSecret string `env:"SPEAKERCMS_WEBHOOK_SECRET"`
}

// DevAdminPassword is used for the bootstrap admin in development when no
// password is configured.
const DevAdminPassword = "admin123"

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// CacheTTLDuration returns CacheTTL as a duration.
func (c Config) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// AuditRetention returns how long audit entries are kept.
func (c Config) AuditRetention() time.Duration {
	return time.Duration(c.AuditRetentionDays) * 24 * time.Hour
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("SPEAKERCMS_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("SPEAKERCMS_SESSION_SECRET is a known default value and must not be used")
		}
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("SPEAKERCMS_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	if cfg.AdminPassword == "" {
		if !cfg.IsDevelopment() {
			return nil, fmt.Errorf("SPEAKERCMS_ADMIN_PASSWORD is required outside development")
		}
		cfg.AdminPassword = DevAdminPassword
	}

	if cfg.AuditRetentionDays < 1 {
		return nil, fmt.Errorf("SPEAKERCMS_AUDIT_RETENTION_DAYS must be positive, got %d", cfg.AuditRetentionDays)
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
