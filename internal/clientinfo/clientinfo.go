// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package clientinfo describes the client behind a request for audit
// records: browser, operating system, device class and country.
package clientinfo

import (
	"net/http"

	"github.com/mileusna/useragent"

	"github.com/olegiv/speakercms/internal/middleware"
)

// Device classes.
const (
	DeviceDesktop = "desktop"
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceBot     = "bot"
)

const unknown = "Unknown"

// Agent is the parsed form of a User-Agent header.
type Agent struct {
	Browser string
	OS      string
	Device  string
}

// ParseAgent extracts browser, OS and device class from a User-Agent string.
func ParseAgent(s string) Agent {
	ua := useragent.Parse(s)

	a := Agent{Browser: ua.Name, OS: ua.OS}
	if a.Browser == "" {
		a.Browser = unknown
	}
	if a.OS == "" {
		a.OS = unknown
	}

	switch {
	case ua.Bot:
		a.Device = DeviceBot
	case ua.Tablet:
		a.Device = DeviceTablet
	case ua.Mobile:
		a.Device = DeviceMobile
	default:
		a.Device = DeviceDesktop
	}
	return a
}

// CountryLookup maps an IP address to a country code.
type CountryLookup interface {
	Country(ip string) string
}

// Describer builds audit metadata for requests.
type Describer struct {
	geo CountryLookup
}

// NewDescriber returns a Describer. geo may be nil, in which case no
// country is reported.
func NewDescriber(geo CountryLookup) *Describer {
	return &Describer{geo: geo}
}

// Meta merges client details into extra and returns the result. extra is
// not modified.
func (d *Describer) Meta(r *http.Request, extra map[string]any) map[string]any {
	meta := make(map[string]any, len(extra)+4)
	for k, v := range extra {
		meta[k] = v
	}

	agent := ParseAgent(r.UserAgent())
	meta["browser"] = agent.Browser
	meta["os"] = agent.OS
	meta["device"] = agent.Device

	if d != nil && d.geo != nil {
		if country := d.geo.Country(middleware.ClientIP(r)); country != "" {
			meta["country"] = country
		}
	}
	return meta
}
