// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package geoip resolves client addresses to ISO country codes using a
// MaxMind GeoLite2-Country database. Without a database every lookup
// returns an empty code, except private addresses which read as LOCAL.
package geoip

import (
	"fmt"
	"net/netip"
	"os"
	"sync"
	"time"

	"github.com/oschwald/maxminddb-golang"
)

// Local is reported for loopback and private network addresses.
const Local = "LOCAL"

// Lookup is safe for concurrent use. The zero value performs no database
// lookups.
type Lookup struct {
	mu      sync.RWMutex
	path    string
	modTime time.Time
	db      *maxminddb.Reader
}

type countryRecord struct {
	Country struct {
		ISOCode string `maxminddb:"iso_code"`
	} `maxminddb:"country"`
}

// Open loads the database at path. An empty path yields a Lookup that
// only classifies local addresses.
func Open(path string) (*Lookup, error) {
	l := &Lookup{path: path}
	if path == "" {
		return l, nil
	}
	if err := l.load(); err != nil {
		return l, err
	}
	return l, nil
}

// load (re)opens the database when its file changed. Caller holds mu.
func (l *Lookup) load() error {
	info, err := os.Stat(l.path)
	if err != nil {
		return fmt.Errorf("stat geoip database: %w", err)
	}
	if l.db != nil && info.ModTime().Equal(l.modTime) {
		return nil
	}

	db, err := maxminddb.Open(l.path)
	if err != nil {
		return fmt.Errorf("open geoip database: %w", err)
	}
	if l.db != nil {
		_ = l.db.Close()
	}
	l.db = db
	l.modTime = info.ModTime()
	return nil
}

// Reload picks up a replaced database file. It is a no-op when no path
// is configured or the file is unchanged.
func (l *Lookup) Reload() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.path == "" {
		return nil
	}
	return l.load()
}

// Enabled reports whether a database is loaded.
func (l *Lookup) Enabled() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.db != nil
}

// Country returns the ISO code for ip, Local for private ranges, or ""
// when unknown.
func (l *Lookup) Country(ip string) string {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return ""
	}
	addr = addr.Unmap()
	if addr.IsLoopback() || addr.IsPrivate() || addr.IsLinkLocalUnicast() {
		return Local
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.db == nil {
		return ""
	}

	var rec countryRecord
	if err := l.db.Lookup(addr.AsSlice(), &rec); err != nil {
		return ""
	}
	return rec.Country.ISOCode
}

// Close releases the database.
func (l *Lookup) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return err
}
