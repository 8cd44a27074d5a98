// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// BlogPost is an article. Slug is unique and is the public lookup key;
// unpublished posts are only visible to admins.
type BlogPost struct {
	ID            int64     `db:"id" json:"id"`
	Title         string    `db:"title" json:"title"`
	Slug          string    `db:"slug" json:"slug"`
	Content       string    `db:"content" json:"content"`
	Excerpt       string    `db:"excerpt" json:"excerpt"`
	FeaturedImage string    `db:"featured_image" json:"featuredImage"`
	AuthorID      *int64    `db:"author_id" json:"authorId"`
	Published     bool      `db:"published" json:"published"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}

// BlogPostInput is the create schema for blog posts. Slug and Excerpt are
// derived when omitted.
type BlogPostInput struct {
	Title         string `json:"title" validate:"required,max=300"`
	Slug          string `json:"slug" validate:"omitempty,max=200,slug"`
	Content       string `json:"content" validate:"required"`
	Excerpt       string `json:"excerpt" validate:"max=1000"`
	FeaturedImage string `json:"featuredImage" validate:"max=2048"`
	AuthorID      *int64 `json:"authorId" validate:"omitempty,gt=0"`
	Published     bool   `json:"published"`
}

// BlogPostPatch is the partial update schema for blog posts.
type BlogPostPatch struct {
	Title         *string `json:"title" validate:"omitempty,min=1,max=300"`
	Slug          *string `json:"slug" validate:"omitempty,max=200,slug"`
	Content       *string `json:"content" validate:"omitempty,min=1"`
	Excerpt       *string `json:"excerpt" validate:"omitempty,max=1000"`
	FeaturedImage *string `json:"featuredImage" validate:"omitempty,max=2048"`
	AuthorID      *int64  `json:"authorId" validate:"omitempty,gt=0"`
	Published     *bool   `json:"published"`
}

// Apply copies the supplied fields onto p.
func (in BlogPostPatch) Apply(p *BlogPost) {
	setString(&p.Title, in.Title)
	setString(&p.Slug, in.Slug)
	setString(&p.Content, in.Content)
	setString(&p.Excerpt, in.Excerpt)
	setString(&p.FeaturedImage, in.FeaturedImage)
	if in.AuthorID != nil {
		id := *in.AuthorID
		p.AuthorID = &id
	}
	if in.Published != nil {
		p.Published = *in.Published
	}
}

// BlogFilter selects blog posts for listing.
type BlogFilter struct {
	IncludeUnpublished bool
	Limit              int // 0 means no limit
}
