// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"

	"github.com/olegiv/speakercms/internal/model"
)

const userColumns = "id, username, password, name, email, role, created_at"

// CreateUserParams holds the columns of a new user row.
type CreateUserParams struct {
	Username     string
	PasswordHash string
	Name         *string
	Email        *string
	Role         string
}

// CreateUser inserts a user and returns the stored row.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (model.User, error) {
	role := arg.Role
	if role == "" {
		role = model.RoleUser
	}
	id, err := q.insert(ctx,
		"INSERT INTO users (username, password, name, email, role, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		arg.Username, arg.PasswordHash, arg.Name, arg.Email, role, now())
	if err != nil {
		return model.User{}, fmt.Errorf("inserting user: %w", err)
	}
	return q.GetUserByID(ctx, id)
}

// GetUserByID returns the user with id or model.ErrNotFound.
func (q *Queries) GetUserByID(ctx context.Context, id int64) (model.User, error) {
	var u model.User
	err := q.get(ctx, &u, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	return u, err
}

// GetUserByUsername returns the user with username or model.ErrNotFound.
func (q *Queries) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	var u model.User
	err := q.get(ctx, &u, "SELECT "+userColumns+" FROM users WHERE username = ?", username)
	return u, err
}

// CountUsersByRole returns how many users hold role.
func (q *Queries) CountUsersByRole(ctx context.Context, role string) (int64, error) {
	var n int64
	err := q.get(ctx, &n, "SELECT COUNT(*) FROM users WHERE role = ?", role)
	return n, err
}

// UpdateUserPassword replaces the stored password hash.
func (q *Queries) UpdateUserPassword(ctx context.Context, id int64, hash string) error {
	return q.execOne(ctx, "UPDATE users SET password = ? WHERE id = ?", hash, id)
}
