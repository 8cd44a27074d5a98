// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/speakercms/internal/cache"
	"github.com/olegiv/speakercms/internal/model"
	"github.com/olegiv/speakercms/internal/session"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func withUser(r *http.Request, u model.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), ContextKeyUser, u))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	return body
}

func TestGetUser(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if GetUser(req) != nil || GetUserIDPtr(req) != nil {
		t.Error("expected no user on bare request")
	}

	req = withUser(req, model.User{ID: 7, Username: "ann"})
	if u := GetUser(req); u == nil || u.ID != 7 {
		t.Errorf("GetUser = %+v", u)
	}
	if id := GetUserIDPtr(req); id == nil || *id != 7 {
		t.Errorf("GetUserIDPtr = %v", id)
	}
}

func TestRequireAdmin(t *testing.T) {
	h := RequireAdmin(nil)(okHandler)

	tests := []struct {
		name string
		user *model.User
		want int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"non-admin", &model.User{ID: 1, Role: model.RoleUser}, http.StatusForbidden},
		{"admin", &model.User{ID: 2, Role: model.RoleAdmin}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/admin/events", nil)
			if tt.user != nil {
				req = withUser(req, *tt.user)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			if tt.want != http.StatusOK && decodeError(t, rec).Message == "" {
				t.Error("error body has no message")
			}
		})
	}
}

type fakeUsers map[int64]model.User

func (f fakeUsers) UserByID(_ context.Context, id int64) (model.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return model.User{}, model.ErrNotFound
}

func TestLoadUser(t *testing.T) {
	sm := scs.New()
	users := fakeUsers{1: {ID: 1, Username: "ann", Role: model.RoleAdmin}}

	mux := http.NewServeMux()
	mux.HandleFunc("/login/{id}", func(w http.ResponseWriter, r *http.Request) {
		var id int64
		_, _ = fmt.Sscan(r.PathValue("id"), &id)
		_ = session.Login(r.Context(), sm, id)
	})
	mux.Handle("/me", LoadUser(sm, users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u := GetUser(r); u != nil {
			_, _ = w.Write([]byte(u.Username))
		}
	})))
	h := sm.LoadAndSave(mux)

	get := func(path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	if rec := get("/me", nil); rec.Body.Len() != 0 {
		t.Errorf("anonymous request loaded user %q", rec.Body.String())
	}

	cookies := get("/login/1", nil).Result().Cookies()
	if rec := get("/me", cookies); rec.Body.String() != "ann" {
		t.Errorf("session user = %q, want ann", rec.Body.String())
	}

	cookies = get("/login/99", nil).Result().Cookies()
	if rec := get("/me", cookies); rec.Body.Len() != 0 {
		t.Errorf("stale session loaded user %q", rec.Body.String())
	}
}

func TestLoginProtection_Lockout(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{MaxFailedAttempts: 3, LockoutDuration: time.Minute})
	defer lp.Close()

	now := time.Now()
	lp.now = func() time.Time { return now }

	for i := 1; i <= 2; i++ {
		if locked, _ := lp.RecordFailedAttempt("admin"); locked {
			t.Fatalf("locked after %d failures", i)
		}
	}
	if n := lp.RemainingAttempts("admin"); n != 1 {
		t.Errorf("RemainingAttempts = %d, want 1", n)
	}

	locked, d := lp.RecordFailedAttempt("admin")
	if !locked || d != time.Minute {
		t.Fatalf("third failure: locked=%v duration=%v", locked, d)
	}
	if locked, _ := lp.IsAccountLocked("admin"); !locked {
		t.Error("account should be locked")
	}
	if locked, _ := lp.IsAccountLocked("other"); locked {
		t.Error("unrelated account locked")
	}

	now = now.Add(2 * time.Minute)
	if locked, _ := lp.IsAccountLocked("admin"); locked {
		t.Error("lock should have expired")
	}

	// Second lockout doubles.
	for range 2 {
		lp.RecordFailedAttempt("admin")
	}
	if _, d := lp.RecordFailedAttempt("admin"); d != 2*time.Minute {
		t.Errorf("second lockout = %v, want 2m", d)
	}

	lp.RecordSuccessfulLogin("admin")
	if locked, _ := lp.IsAccountLocked("admin"); locked {
		t.Error("successful login should clear lock")
	}
}

func TestLoginProtection_IPRateLimit(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{IPRateLimit: 0.001, IPBurst: 2})
	defer lp.Close()
	h := lp.Middleware()(okHandler)

	codes := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v", codes)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("other IP limited: %d", rec.Code)
	}
}

func TestFormRateLimiter(t *testing.T) {
	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	h := NewFormRateLimiter(0.001, 1).Middleware()(okHandler)

	for i, want := range []int{http.StatusOK, http.StatusTooManyRequests} {
		req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Errorf("request %d: status = %d, want %d", i, rec.Code, want)
		}
	}

	// WARN and above are persisted to the audit log, so rejected form
	// floods must stay below that level.
	if !strings.Contains(logs.String(), "public rate limit exceeded") {
		t.Errorf("throttled request not logged: %q", logs.String())
	}
	if strings.Contains(logs.String(), "level=WARN") {
		t.Errorf("throttled request logged at WARN: %q", logs.String())
	}
}

func TestSecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeaders(DefaultSecurityHeadersConfig(false))(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	for _, h := range []string{"Content-Security-Policy", "Strict-Transport-Security", "X-Frame-Options", "X-Content-Type-Options", "Referrer-Policy", "Permissions-Policy"} {
		if rec.Header().Get(h) == "" {
			t.Errorf("missing header %s", h)
		}
	}

	rec = httptest.NewRecorder()
	SecurityHeaders(DefaultSecurityHeadersConfig(true))(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Header().Get("Strict-Transport-Security") != "" {
		t.Error("HSTS set in development")
	}
}

func TestCORS(t *testing.T) {
	h := CORS([]string{"https://admin.example.com/"})(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	req.Header.Set("Origin", "https://admin.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "https://admin.example.com" {
		t.Errorf("allowed origin not echoed: %v", rec.Header())
	}

	req = httptest.NewRequest(http.MethodOptions, "/api/admin/events", nil)
	req.Header.Set("Origin", "https://admin.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code >= 300 || rec.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Errorf("preflight: status %d headers %v", rec.Code, rec.Header())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/events", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("foreign origin allowed")
	}

	disabled := CORS(nil)(okHandler)
	rec = httptest.NewRecorder()
	disabled.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("empty origin list must not allow any origin")
	}
}

func TestCSRF(t *testing.T) {
	h := CSRF(NewCSRFConfig([]byte(strings.Repeat("k", 32)), nil, false))(okHandler)

	tests := []struct {
		name   string
		method string
		site   string
		origin string
		want   int
	}{
		{"cross-site post", http.MethodPost, "cross-site", "https://evil.example", http.StatusForbidden},
		{"same-origin post", http.MethodPost, "same-origin", "", http.StatusOK},
		{"non-browser post", http.MethodPost, "", "", http.StatusOK},
		{"cross-site get", http.MethodGet, "cross-site", "https://evil.example", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "http://example.com/api/admin/events", nil)
			if tt.site != "" {
				req.Header.Set("Sec-Fetch-Site", tt.site)
			}
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestNewCSRFConfig_TrustedHosts(t *testing.T) {
	cfg := NewCSRFConfig(nil, []string{"https://admin.example.com", "not a url"}, false)
	if len(cfg.TrustedOrigins) != 1 || cfg.TrustedOrigins[0] != "admin.example.com" {
		t.Errorf("TrustedOrigins = %v", cfg.TrustedOrigins)
	}
}

func TestResponseCacheAndInvalidate(t *testing.T) {
	c := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	defer func() { _ = c.Close() }()

	var calls atomic.Int32
	read := ResponseCache(c, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		if r.URL.Path == "/api/missing" {
			WriteError(w, http.StatusNotFound, "Not found", nil)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]int32{"n": n})
	}))
	write := InvalidateCache(c)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bad" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		read.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	first := get("/api/events")
	second := get("/api/events")
	if first.Body.String() != second.Body.String() || second.Header().Get("X-Cache") != "HIT" {
		t.Errorf("second read not served from cache: %q vs %q", first.Body.String(), second.Body.String())
	}

	write.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/bad", nil))
	if get("/api/events").Header().Get("X-Cache") != "HIT" {
		t.Error("failed mutation cleared the cache")
	}

	write.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/admin/events", nil))
	third := get("/api/events")
	if third.Header().Get("X-Cache") != "MISS" || third.Body.String() == first.Body.String() {
		t.Errorf("mutation did not invalidate cache: %q", third.Body.String())
	}

	get("/api/missing")
	if get("/api/missing").Header().Get("X-Cache") == "HIT" {
		t.Error("404 response was cached")
	}
}

func TestStripTrailingSlash(t *testing.T) {
	var gotPath string
	h := StripTrailingSlash(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/events/?x=1", nil))
	if rec.Code != http.StatusMovedPermanently || rec.Header().Get("Location") != "/api/events?x=1" {
		t.Errorf("GET: status %d location %q", rec.Code, rec.Header().Get("Location"))
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "//evil.example/", nil))
	if loc := rec.Header().Get("Location"); strings.HasPrefix(loc, "//") {
		t.Errorf("open redirect to %q", loc)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/contact/", nil))
	if gotPath != "/api/contact" {
		t.Errorf("POST path = %q", gotPath)
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:5555"
	if ip := ClientIP(req); ip != "192.0.2.1" {
		t.Errorf("ClientIP = %q", ip)
	}
	req.RemoteAddr = "bare"
	if ip := ClientIP(req); ip != "bare" {
		t.Errorf("ClientIP = %q", ip)
	}
}
