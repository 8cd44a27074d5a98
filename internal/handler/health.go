// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"syscall"
	"time"

	"github.com/olegiv/speakercms/internal/middleware"
	"github.com/olegiv/speakercms/internal/version"
)

// Check statuses.
const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"
)

// minFreeSpace is the free space below which the uploads volume is degraded.
const minFreeSpace = 100 * 1024 * 1024

// HealthHandler handles health check requests.
type HealthHandler struct {
	db         *sql.DB
	uploadsDir string
	version    version.Info
	startTime  time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db *sql.DB, uploadsDir string, info version.Info) *HealthHandler {
	return &HealthHandler{
		db:         db,
		uploadsDir: uploadsDir,
		version:    info,
		startTime:  time.Now(),
	}
}

// HealthStatus is the detailed health response, shown to admins only.
type HealthStatus struct {
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
	System    *SystemInfo      `json:"system,omitempty"`
}

// Check represents a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// SystemInfo contains runtime information.
type SystemInfo struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutines"`
	MemAlloc     string `json:"mem_alloc"`
}

// Health handles GET /health. The database and the uploads directory are
// checked; any failure answers 503. Anonymous callers only see the status.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	dbCheck := h.checkDatabase(r.Context())
	uploadsCheck := h.checkUploads()

	overall := statusHealthy
	if dbCheck.Status != statusHealthy || uploadsCheck.Status != statusHealthy {
		overall = statusDegraded
	}

	code := http.StatusOK
	if overall != statusHealthy {
		code = http.StatusServiceUnavailable
	}

	user := middleware.GetUser(r)
	if user == nil || !user.IsAdmin() {
		middleware.WriteJSON(w, code, map[string]string{"status": overall})
		return
	}

	status := HealthStatus{
		Status:    overall,
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version.String(),
		Checks: map[string]Check{
			"database": dbCheck,
			"uploads":  uploadsCheck,
		},
	}
	if r.URL.Query().Get("verbose") == "true" {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		status.System = &SystemInfo{
			GoVersion:    runtime.Version(),
			NumGoroutine: runtime.NumGoroutine(),
			MemAlloc:     formatBytes(m.Alloc),
		}
	}
	middleware.WriteJSON(w, code, status)
}

// Liveness handles GET /health/live.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

func (h *HealthHandler) checkDatabase(ctx context.Context) Check {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.db.PingContext(ctx)
	latency := time.Since(start)

	if err != nil {
		return Check{Status: statusUnhealthy, Message: err.Error(), Latency: latency.String()}
	}
	return Check{Status: statusHealthy, Message: "Connected", Latency: latency.String()}
}

// checkUploads verifies the uploads directory is usable. A directory that
// does not exist yet is fine; it is created on the first upload.
func (h *HealthHandler) checkUploads() Check {
	info, err := os.Stat(h.uploadsDir)
	if os.IsNotExist(err) {
		return Check{Status: statusHealthy, Message: "Uploads directory does not exist yet"}
	}
	if err != nil {
		return Check{Status: statusUnhealthy, Message: err.Error()}
	}
	if !info.IsDir() {
		return Check{Status: statusUnhealthy, Message: "Uploads path is not a directory"}
	}

	var stat syscall.Statfs_t
	if err := syscall.Statfs(h.uploadsDir, &stat); err != nil {
		return Check{Status: statusUnhealthy, Message: "Failed to check disk space: " + err.Error()}
	}

	available := stat.Bavail * uint64(stat.Bsize)
	if available < minFreeSpace {
		return Check{Status: statusDegraded, Message: "Low disk space: " + formatBytes(available) + " available"}
	}
	return Check{Status: statusHealthy, Message: formatBytes(available) + " available"}
}

func formatBytes(bytes uint64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
