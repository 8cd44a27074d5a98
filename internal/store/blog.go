// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/olegiv/speakercms/internal/model"
)

const blogColumns = "id, title, slug, content, excerpt, featured_image, author_id, published, created_at, updated_at"

// CreateBlogPost inserts a post. A duplicate slug fails with a UNIQUE
// violation.
func (q *Queries) CreateBlogPost(ctx context.Context, p model.BlogPost) (model.BlogPost, error) {
	ts := now()
	id, err := q.insert(ctx,
		`INSERT INTO blog_posts (title, slug, content, excerpt, featured_image, author_id, published, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Slug, p.Content, p.Excerpt, p.FeaturedImage, p.AuthorID, p.Published, ts, ts)
	if err != nil {
		return model.BlogPost{}, fmt.Errorf("inserting blog post: %w", err)
	}
	return q.GetBlogPost(ctx, id)
}

// GetBlogPost returns a post by id regardless of its published flag.
func (q *Queries) GetBlogPost(ctx context.Context, id int64) (model.BlogPost, error) {
	var p model.BlogPost
	err := q.get(ctx, &p, "SELECT "+blogColumns+" FROM blog_posts WHERE id = ?", id)
	return p, err
}

// GetBlogPostBySlug returns a post by slug. Unpublished posts are reported as
// model.ErrNotFound unless includeUnpublished is set.
func (q *Queries) GetBlogPostBySlug(ctx context.Context, slug string, includeUnpublished bool) (model.BlogPost, error) {
	query := "SELECT " + blogColumns + " FROM blog_posts WHERE slug = ?"
	if !includeUnpublished {
		query += " AND published = 1"
	}
	var p model.BlogPost
	err := q.get(ctx, &p, query, slug)
	return p, err
}

// ListBlogPosts returns posts newest first, applying the filter's published
// restriction and then its limit.
func (q *Queries) ListBlogPosts(ctx context.Context, f model.BlogFilter) ([]model.BlogPost, error) {
	var sb strings.Builder
	sb.WriteString("SELECT " + blogColumns + " FROM blog_posts")
	args := []any{}
	if !f.IncludeUnpublished {
		sb.WriteString(" WHERE published = 1")
	}
	sb.WriteString(" ORDER BY created_at DESC, id DESC")
	if f.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, f.Limit)
	}

	items := []model.BlogPost{}
	err := q.selectAll(ctx, &items, sb.String(), args...)
	return items, err
}

// SlugExists reports whether another post (not excludeID) uses slug.
func (q *Queries) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var n int64
	if err := q.get(ctx, &n, "SELECT COUNT(*) FROM blog_posts WHERE slug = ? AND id != ?", slug, excludeID); err != nil {
		return false, err
	}
	return n > 0, nil
}

// UpdateBlogPost overwrites every mutable column of p.
func (q *Queries) UpdateBlogPost(ctx context.Context, p model.BlogPost) (model.BlogPost, error) {
	err := q.execOne(ctx,
		`UPDATE blog_posts SET title = ?, slug = ?, content = ?, excerpt = ?, featured_image = ?,
		author_id = ?, published = ?, updated_at = ? WHERE id = ?`,
		p.Title, p.Slug, p.Content, p.Excerpt, p.FeaturedImage, p.AuthorID, p.Published, now(), p.ID)
	if err != nil {
		return model.BlogPost{}, err
	}
	return q.GetBlogPost(ctx, p.ID)
}

// DeleteBlogPost removes a post and reports whether a row existed.
func (q *Queries) DeleteBlogPost(ctx context.Context, id int64) (bool, error) {
	return q.deleteByID(ctx, "blog_posts", id)
}
