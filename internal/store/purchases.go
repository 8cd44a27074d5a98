// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/olegiv/speakercms/internal/model"
)

const purchaseColumns = "id, email, purchased_at, delivery_date, delivered"

// CreateEbookPurchase records a purchase as not yet delivered.
func (q *Queries) CreateEbookPurchase(ctx context.Context, email string) (model.EbookPurchase, error) {
	id, err := q.insert(ctx,
		"INSERT INTO ebook_purchases (email, purchased_at, delivered) VALUES (?, ?, 0)",
		email, now())
	if err != nil {
		return model.EbookPurchase{}, fmt.Errorf("inserting ebook purchase: %w", err)
	}
	return q.GetEbookPurchase(ctx, id)
}

// GetEbookPurchase returns one purchase or model.ErrNotFound.
func (q *Queries) GetEbookPurchase(ctx context.Context, id int64) (model.EbookPurchase, error) {
	var p model.EbookPurchase
	err := q.get(ctx, &p, "SELECT "+purchaseColumns+" FROM ebook_purchases WHERE id = ?", id)
	return p, err
}

// ListEbookPurchases returns purchases, most recent first.
func (q *Queries) ListEbookPurchases(ctx context.Context) ([]model.EbookPurchase, error) {
	items := []model.EbookPurchase{}
	err := q.selectAll(ctx, &items,
		"SELECT "+purchaseColumns+" FROM ebook_purchases ORDER BY purchased_at DESC, id DESC")
	return items, err
}

// UpdateEbookPurchase writes email and delivery state.
func (q *Queries) UpdateEbookPurchase(ctx context.Context, id int64, email string, delivered bool, deliveryDate *time.Time) (model.EbookPurchase, error) {
	err := q.execOne(ctx,
		"UPDATE ebook_purchases SET email = ?, delivered = ?, delivery_date = ? WHERE id = ?",
		email, delivered, deliveryDate, id)
	if err != nil {
		return model.EbookPurchase{}, err
	}
	return q.GetEbookPurchase(ctx, id)
}

// DeleteEbookPurchase removes a purchase and reports whether a row existed.
func (q *Queries) DeleteEbookPurchase(ctx context.Context, id int64) (bool, error) {
	return q.deleteByID(ctx, "ebook_purchases", id)
}
