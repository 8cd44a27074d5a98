// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/olegiv/speakercms/internal/auth"
	"github.com/olegiv/speakercms/internal/model"
)

// AdminSeed holds the credentials of the bootstrap admin account.
type AdminSeed struct {
	Username string
	Password string
	Email    string
}

// EnsureAdmin creates the bootstrap admin when no admin account exists.
// It reports whether an account was created.
func EnsureAdmin(ctx context.Context, q *Queries, seed AdminSeed, logger *slog.Logger) (bool, error) {
	n, err := q.CountUsersByRole(ctx, model.RoleAdmin)
	if err != nil {
		return false, fmt.Errorf("counting admin users: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	if seed.Username == "" || seed.Password == "" {
		return false, fmt.Errorf("no admin user exists and no bootstrap credentials are configured")
	}

	passwordHash, err := auth.HashPassword(seed.Password)
	if err != nil {
		return false, fmt.Errorf("hashing password: %w", err)
	}

	var email *string
	if seed.Email != "" {
		email = &seed.Email
	}
	name := "Administrator"

	user, err := q.CreateUser(ctx, CreateUserParams{
		Username:     seed.Username,
		PasswordHash: passwordHash,
		Name:         &name,
		Email:        email,
		Role:         model.RoleAdmin,
	})
	if err != nil {
		return false, fmt.Errorf("creating admin user: %w", err)
	}

	logger.Warn("created bootstrap admin user; change its password",
		"id", user.ID,
		"username", user.Username,
	)
	return true, nil
}
