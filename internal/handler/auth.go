// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/speakercms/internal/clientinfo"
	"github.com/olegiv/speakercms/internal/middleware"
	"github.com/olegiv/speakercms/internal/model"
	"github.com/olegiv/speakercms/internal/service"
	"github.com/olegiv/speakercms/internal/session"
)

// AuthHandler handles sign-in, sign-out and the session probe.
type AuthHandler struct {
	auth            *service.AuthService
	audit           *service.AuditService
	sm              *scs.SessionManager
	loginProtection *middleware.LoginProtection
	client          *clientinfo.Describer
}

// NewAuthHandler creates a new AuthHandler. loginProtection may be nil.
func NewAuthHandler(auth *service.AuthService, audit *service.AuditService, sm *scs.SessionManager,
	loginProtection *middleware.LoginProtection, client *clientinfo.Describer) *AuthHandler {
	return &AuthHandler{
		auth:            auth,
		audit:           audit,
		sm:              sm,
		loginProtection: loginProtection,
		client:          client,
	}
}

// SessionResponse is the body of GET /api/admin/session.
type SessionResponse struct {
	Authenticated bool        `json:"authenticated"`
	User          *model.User `json:"user,omitempty"`
}

// Login handles POST /api/admin/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, "User", err)
		return
	}
	if err := model.Validate(req); err != nil {
		writeError(w, r, "User", err)
		return
	}

	clientIP := middleware.ClientIP(r)
	meta := h.client.Meta(r, map[string]any{"username": req.Username})

	if h.loginProtection != nil {
		if locked, remaining := h.loginProtection.IsAccountLocked(req.Username); locked {
			h.audit.Log(r.Context(), model.AuditLevelWarning, model.AuditCategoryAuth,
				"Login attempt on locked account", nil, clientIP, meta)
			writeTooManyAttempts(w, remaining)
			return
		}
	}

	user, err := h.auth.Authenticate(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		slog.Info("login failed", "username", req.Username, "ip", clientIP)
		h.audit.Log(r.Context(), model.AuditLevelWarning, model.AuditCategoryAuth,
			"Login failed: invalid credentials", nil, clientIP, meta)
		if h.loginProtection != nil {
			if locked, lockDuration := h.loginProtection.RecordFailedAttempt(req.Username); locked {
				h.audit.Log(r.Context(), model.AuditLevelWarning, model.AuditCategoryAuth,
					"Account locked due to failed attempts", nil, clientIP,
					h.client.Meta(r, map[string]any{"username": req.Username, "duration": lockDuration.String()}))
				writeTooManyAttempts(w, lockDuration)
				return
			}
		}
		middleware.WriteError(w, http.StatusUnauthorized, "Invalid username or password", nil)
		return

	case errors.Is(err, model.ErrForbidden):
		h.audit.Log(r.Context(), model.AuditLevelWarning, model.AuditCategoryAuth,
			"Login refused: admin role required", &user.ID, clientIP, meta)
		middleware.WriteError(w, http.StatusForbidden, "Admin access required", nil)
		return

	case err != nil:
		writeError(w, r, "User", err)
		return
	}

	if h.loginProtection != nil {
		h.loginProtection.RecordSuccessfulLogin(req.Username)
	}

	if err := session.Login(r.Context(), h.sm, user.ID); err != nil {
		writeError(w, r, "User", err)
		return
	}

	h.audit.Info(r.Context(), model.AuditCategoryAuth, "User logged in", &user.ID, clientIP, meta)
	middleware.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user":    user,
	})
}

// Logout handles POST /api/admin/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDPtr(r)

	if err := session.Logout(r.Context(), h.sm); err != nil {
		writeError(w, r, "Session", err)
		return
	}

	h.audit.Info(r.Context(), model.AuditCategoryAuth, "User logged out", userID, middleware.ClientIP(r), h.client.Meta(r, nil))
	writeMessage(w, "Logout successful")
}

// Session handles GET /api/admin/session. It never fails: an anonymous
// caller simply reads as not authenticated. Any live session reports its
// user, so a client can tell a demoted account (role "user") from a
// signed-out one.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		middleware.WriteJSON(w, http.StatusOK, SessionResponse{Authenticated: false})
		return
	}
	middleware.WriteJSON(w, http.StatusOK, SessionResponse{Authenticated: true, User: user})
}

func writeTooManyAttempts(w http.ResponseWriter, remaining time.Duration) {
	middleware.WriteError(w, http.StatusTooManyRequests,
		fmt.Sprintf("Too many failed login attempts. Try again in %s.", formatDuration(remaining)), nil)
}

// formatDuration renders a lockout period in whole minutes.
func formatDuration(d time.Duration) string {
	minutes := int(math.Ceil(d.Minutes()))
	if minutes <= 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}
