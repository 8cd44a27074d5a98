// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/olegiv/speakercms/internal/cache"
	"github.com/olegiv/speakercms/internal/config"
	"github.com/olegiv/speakercms/internal/geoip"
	"github.com/olegiv/speakercms/internal/handler"
	"github.com/olegiv/speakercms/internal/logging"
	"github.com/olegiv/speakercms/internal/middleware"
	"github.com/olegiv/speakercms/internal/scheduler"
	"github.com/olegiv/speakercms/internal/service"
	"github.com/olegiv/speakercms/internal/session"
	"github.com/olegiv/speakercms/internal/store"
	"github.com/olegiv/speakercms/internal/version"
	"github.com/olegiv/speakercms/internal/webhook"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "speakercms - content backend for a speaker's website\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SPEAKERCMS_SESSION_SECRET   Session key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SPEAKERCMS_DB_PATH          SQLite database path (default: ./data/speakercms.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SPEAKERCMS_SERVER_PORT      Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SPEAKERCMS_ENV              Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SPEAKERCMS_UPLOADS_DIR      Uploaded images (default: ./uploads)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SPEAKERCMS_PUBLIC_DIR       Built client to serve (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SPEAKERCMS_REDIS_URL        Redis URL for the read cache (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SPEAKERCMS_ADMIN_PASSWORD   Bootstrap admin password (required in production)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("speakercms %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	versionInfo := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	// From here on WARN and ERROR records are also kept in the audit log.
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})
	logger = slog.New(logging.NewAuditHandler(textHandler, db))
	slog.SetDefault(logger)
	slog.Info("database ready", "audit_log", "warn+")

	ctx := context.Background()
	created, err := store.EnsureAdmin(ctx, store.New(db), store.AdminSeed{
		Username: cfg.AdminUsername,
		Password: cfg.AdminPassword,
		Email:    cfg.AdminEmail,
	}, logger)
	if err != nil {
		return fmt.Errorf("bootstrapping admin: %w", err)
	}
	if !created {
		slog.Debug("admin account present")
	}

	sessionManager := session.New(db, cfg.IsDevelopment(), 5*time.Minute)

	readCache := cache.New(cache.Config{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: cfg.CacheTTLDuration(),
		MaxItems:   1000,
	}, logger)
	defer func() { _ = readCache.Close() }()

	sched := scheduler.New(logger)
	audit := service.NewAuditService(db, logger)
	if err := sched.AddAuditPrune(audit, cfg.AuditRetention(), cfg.AuditPruneSchedule); err != nil {
		return fmt.Errorf("scheduling audit retention: %w", err)
	}

	countries, err := geoip.Open(cfg.GeoIPDBPath)
	if err != nil {
		slog.Warn("GeoIP lookups disabled", "path", cfg.GeoIPDBPath, "error", err)
	}
	defer func() { _ = countries.Close() }()
	if cfg.GeoIPDBPath != "" {
		if err := sched.AddGeoIPReload(countries, cfg.GeoIPReloadSchedule); err != nil {
			return fmt.Errorf("scheduling geoip reload: %w", err)
		}
	}

	sched.Start()
	defer sched.Stop()

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	defer loginProtection.Close()
	slog.Info("login protection initialized",
		"ip_rate_limit", "0.5 req/s",
		"max_failed_attempts", 5,
		"lockout_duration", "15m",
	)

	webhooks := webhook.NewDispatcher(webhook.DefaultConfig(cfg.WebhookURL, cfg.WebhookSecret), logger)
	webhooks.Start()
	defer webhooks.Stop()

	router := handler.NewRouter(handler.RouterConfig{
		DB:              db,
		Sessions:        sessionManager,
		Logger:          logger,
		Cache:           readCache,
		CacheTTL:        cfg.CacheTTLDuration(),
		UploadsDir:      cfg.UploadsDir,
		PublicDir:       cfg.PublicDir,
		CORSOrigins:     cfg.CORSOrigins,
		CSRFKey:         []byte(cfg.SessionSecret),
		IsDev:           cfg.IsDevelopment(),
		Version:         versionInfo,
		LoginProtection: loginProtection,
		FormLimiter:     middleware.NewFormRateLimiter(1, 5),
		Countries:       countries,
		Webhooks:        webhooks,
		SiteURL:         cfg.SiteURL,
		NoIndex:         cfg.NoIndex,
		AccessLog:       true,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // Longer to allow for large uploads and slow connections
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", versionInfo.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
