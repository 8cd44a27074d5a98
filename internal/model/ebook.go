// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// SingletonID is the fixed primary key of single-row tables.
const SingletonID int64 = 1

// Ebook is the single ebook promoted on the site.
type Ebook struct {
	ID          int64      `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	CoverImage  string     `db:"cover_image" json:"coverImage"`
	Price       string     `db:"price" json:"price"`
	SalePrice   *string    `db:"sale_price" json:"salePrice"`
	BuyLink     string     `db:"buy_link" json:"buyLink"`
	Features    StringList `db:"features" json:"features"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
}

// DefaultEbook returns the values used when the first partial update arrives
// before any ebook exists.
func DefaultEbook() Ebook {
	return Ebook{
		ID:       SingletonID,
		Title:    "Untitled ebook",
		Price:    "0",
		Features: StringList{},
	}
}

// EbookPatch is the partial update schema for the ebook. An empty salePrice
// clears it.
type EbookPatch struct {
	Title       *string   `json:"title" validate:"omitempty,min=1,max=300"`
	Description *string   `json:"description" validate:"omitempty,max=10000"`
	CoverImage  *string   `json:"coverImage" validate:"omitempty,max=2048"`
	Price       *string   `json:"price" validate:"omitempty,min=1,max=50"`
	SalePrice   *string   `json:"salePrice" validate:"omitempty,max=50"`
	BuyLink     *string   `json:"buyLink" validate:"omitempty,max=2048"`
	Features    *[]string `json:"features" validate:"omitempty,max=50,dive,max=500"`
}

// Apply copies the supplied fields onto e.
func (p EbookPatch) Apply(e *Ebook) {
	setString(&e.Title, p.Title)
	setString(&e.Description, p.Description)
	setString(&e.CoverImage, p.CoverImage)
	setString(&e.Price, p.Price)
	setOptional(&e.SalePrice, p.SalePrice)
	setString(&e.BuyLink, p.BuyLink)
	if p.Features != nil {
		e.Features = append(StringList{}, (*p.Features)...)
	}
}

// EbookPurchase records an ebook sale and whether it was delivered.
type EbookPurchase struct {
	ID           int64      `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PurchasedAt  time.Time  `db:"purchased_at" json:"purchaseDate"`
	DeliveryDate *time.Time `db:"delivery_date" json:"deliveryDate"`
	Delivered    bool       `db:"delivered" json:"delivered"`
}

// EbookPurchaseInput is the create schema for purchases.
type EbookPurchaseInput struct {
	Email string `json:"email" validate:"required,email,max=254"`
}

// EbookPurchasePatch is the partial update schema for purchases.
type EbookPurchasePatch struct {
	Email     *string `json:"email" validate:"omitempty,email,max=254"`
	Delivered *bool   `json:"delivered"`
}
