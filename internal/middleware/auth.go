// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// authorization, abuse protection and response caching.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/speakercms/internal/model"
	"github.com/olegiv/speakercms/internal/service"
	"github.com/olegiv/speakercms/internal/session"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyUser holds the model.User of the current session.
const ContextKeyUser ContextKey = "user"

// UserLoader resolves a session's user id.
type UserLoader interface {
	UserByID(ctx context.Context, id int64) (model.User, error)
}

// LoadUser puts the session's user into the request context. The user is
// re-read on every request so a deleted account or changed role takes
// effect immediately. A session pointing at a missing user is destroyed.
func LoadUser(sm *scs.SessionManager, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := session.UserID(r.Context(), sm)
			if userID == 0 {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.UserByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, model.ErrNotFound) {
					_ = sm.Destroy(r.Context())
				} else {
					slog.Error("failed to load session user", "user_id", userID, "error", err)
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser retrieves the current user from the request context.
// Returns nil if no user is in context.
func GetUser(r *http.Request) *model.User {
	user, ok := r.Context().Value(ContextKeyUser).(model.User)
	if !ok {
		return nil
	}
	return &user
}

// GetUserIDPtr returns the current user's ID, or nil when anonymous.
func GetUserIDPtr(r *http.Request) *int64 {
	if user := GetUser(r); user != nil {
		id := user.ID
		return &id
	}
	return nil
}

// RequireAdmin rejects anonymous requests with 401 and authenticated
// non-admins with 403. Denials by role are written to the audit log when
// audit is non-nil.
func RequireAdmin(audit *service.AuditService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUser(r)
			if user == nil {
				WriteError(w, http.StatusUnauthorized, "Authentication required", nil)
				return
			}

			if !user.IsAdmin() {
				slog.Info("access denied",
					"status", http.StatusForbidden,
					"method", r.Method,
					"path", r.URL.Path,
					"user_id", user.ID,
					"user_role", user.Role,
				)
				if audit != nil {
					audit.Log(r.Context(), model.AuditLevelWarning, model.AuditCategoryAuth,
						"Access denied: admin role required", &user.ID, ClientIP(r),
						map[string]any{"method": r.Method, "path": r.URL.Path, "role": user.Role})
				}
				WriteError(w, http.StatusForbidden, "Admin access required", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
