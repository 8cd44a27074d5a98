// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import "context"

// GeoIPReloadJob is the name of the job that picks up a refreshed
// country database.
const GeoIPReloadJob = "geoip-reload"

// Reloader reopens a file-backed resource when it changed on disk.
type Reloader interface {
	Reload() error
}

// AddGeoIPReload registers the GeoIP database refresh job.
func (s *Scheduler) AddGeoIPReload(r Reloader, schedule string) error {
	return s.Add(GeoIPReloadJob, schedule, func(context.Context) error {
		return r.Reload()
	})
}
