// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/olegiv/speakercms/internal/auth"
	"github.com/olegiv/speakercms/internal/model"
	"github.com/olegiv/speakercms/internal/store"
)

// ErrInvalidCredentials is returned when the username or password is wrong.
var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthService verifies admin credentials.
type AuthService struct {
	queries *store.Queries
	logger  *slog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(db *sql.DB, logger *slog.Logger) *AuthService {
	return &AuthService{queries: store.New(db), logger: logger}
}

// Authenticate checks username and password. A valid non-admin account
// yields model.ErrForbidden together with the user so callers can audit it.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (model.User, error) {
	user, err := s.queries.GetUserByUsername(ctx, username)
	if errors.Is(err, model.ErrNotFound) {
		auth.EqualizeTiming(password)
		return model.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return model.User{}, fmt.Errorf("loading user: %w", err)
	}

	ok, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		s.logger.Error("stored password hash is unreadable", "user_id", user.ID, "error", err)
		return model.User{}, ErrInvalidCredentials
	}
	if !ok {
		return model.User{}, ErrInvalidCredentials
	}

	if auth.NeedsRehash(user.PasswordHash) {
		s.rehash(ctx, user.ID, password)
	}

	if !user.IsAdmin() {
		return user, model.ErrForbidden
	}
	return user, nil
}

// UserByID loads the user a session refers to.
func (s *AuthService) UserByID(ctx context.Context, id int64) (model.User, error) {
	return s.queries.GetUserByID(ctx, id)
}

func (s *AuthService) rehash(ctx context.Context, userID int64, password string) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		s.logger.Error("failed to rehash password", "user_id", userID, "error", err)
		return
	}
	if err := s.queries.UpdateUserPassword(ctx, userID, hash); err != nil {
		s.logger.Error("failed to store rehashed password", "user_id", userID, "error", err)
		return
	}
	s.logger.Info("password hash upgraded", "user_id", userID)
}
