// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/olegiv/speakercms/internal/model"
)

// Queries runs typed statements against the database or an open transaction.
type Queries struct {
	db   sqlx.ExtContext
	root *sqlx.DB
}

// New wraps db for typed access. The bind type is the "?" style shared by
// both SQLite drivers in use.
func New(db *sql.DB) *Queries {
	x := sqlx.NewDb(db, "sqlite3")
	return &Queries{db: x, root: x}
}

// WithTx returns a Queries bound to tx.
func (q *Queries) WithTx(tx *sqlx.Tx) *Queries {
	return &Queries{db: tx, root: q.root}
}

// InTx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back otherwise.
func (q *Queries) InTx(ctx context.Context, fn func(*Queries) error) error {
	if _, nested := q.db.(*sqlx.Tx); nested {
		return fn(q)
	}

	tx, err := q.root.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	if err := fn(q.WithTx(tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func (q *Queries) get(ctx context.Context, dest any, query string, args ...any) error {
	err := sqlx.GetContext(ctx, q.db, dest, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrNotFound
	}
	return err
}

func (q *Queries) selectAll(ctx context.Context, dest any, query string, args ...any) error {
	return sqlx.SelectContext(ctx, q.db, dest, query, args...)
}

// exec runs a statement and reports model.ErrNotFound when no row changed.
func (q *Queries) execOne(ctx context.Context, query string, args ...any) error {
	res, err := q.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (q *Queries) insert(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := q.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (q *Queries) deleteByID(ctx context.Context, table string, id int64) (bool, error) {
	res, err := q.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("deleting from %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// IsUniqueViolation reports whether err came from a UNIQUE constraint.
// Both SQLite drivers surface the same engine message.
func IsUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// IsForeignKeyViolation reports whether err came from a FOREIGN KEY constraint.
func IsForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// now is the timestamp written to created/updated columns.
var now = func() time.Time {
	return time.Now().UTC()
}
