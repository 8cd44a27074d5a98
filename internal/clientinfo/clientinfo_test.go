// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package clientinfo

import (
	"net/http/httptest"
	"testing"

	"github.com/mileusna/useragent"
	"github.com/stretchr/testify/assert"
)

const (
	chromeWindows = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	safariIPhone  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
	googlebot     = "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)"
)

func TestParseAgent(t *testing.T) {
	a := ParseAgent(chromeWindows)
	assert.Equal(t, useragent.Chrome, a.Browser)
	assert.Equal(t, useragent.Windows, a.OS)
	assert.Equal(t, DeviceDesktop, a.Device)

	a = ParseAgent(safariIPhone)
	assert.Equal(t, useragent.IOS, a.OS)
	assert.Equal(t, DeviceMobile, a.Device)

	assert.Equal(t, DeviceBot, ParseAgent(googlebot).Device)

	a = ParseAgent("")
	assert.Equal(t, unknown, a.Browser)
	assert.Equal(t, unknown, a.OS)
	assert.Equal(t, DeviceDesktop, a.Device)
}

type fixedCountry map[string]string

func (f fixedCountry) Country(ip string) string { return f[ip] }

func TestDescriberMeta(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/admin/login", nil)
	r.RemoteAddr = "203.0.113.7:5555"
	r.Header.Set("User-Agent", chromeWindows)

	extra := map[string]any{"username": "admin"}
	meta := NewDescriber(fixedCountry{"203.0.113.7": "DE"}).Meta(r, extra)

	assert.Equal(t, "admin", meta["username"])
	assert.Equal(t, useragent.Chrome, meta["browser"])
	assert.Equal(t, useragent.Windows, meta["os"])
	assert.Equal(t, DeviceDesktop, meta["device"])
	assert.Equal(t, "DE", meta["country"])
	assert.Len(t, extra, 1, "input map must not be modified")
}

func TestDescriberMetaWithoutCountry(t *testing.T) {
	r := httptest.NewRequest("POST", "/", nil)

	meta := NewDescriber(nil).Meta(r, nil)
	assert.NotContains(t, meta, "country")
	assert.Equal(t, unknown, meta["browser"])

	meta = NewDescriber(fixedCountry{}).Meta(r, nil)
	assert.NotContains(t, meta, "country")

	var d *Describer
	assert.Contains(t, d.Meta(r, nil), "device")
}
