// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/olegiv/speakercms/internal/model"
	"github.com/olegiv/speakercms/internal/store"
	"github.com/olegiv/speakercms/internal/util"
)

var errSlugTaken = model.NewValidationError("A post with this slug already exists",
	map[string]string{"slug": "is already in use"})

// BlogService manages blog posts.
type BlogService struct {
	queries *store.Queries
}

// NewBlogService creates a new BlogService.
func NewBlogService(db *sql.DB) *BlogService {
	return &BlogService{queries: store.New(db)}
}

// ListPublished returns published posts newest first, truncated to limit
// when limit > 0.
func (s *BlogService) ListPublished(ctx context.Context, limit int) ([]model.BlogPost, error) {
	return s.queries.ListBlogPosts(ctx, model.BlogFilter{Limit: limit})
}

// ListAll returns every post including drafts.
func (s *BlogService) ListAll(ctx context.Context) ([]model.BlogPost, error) {
	return s.queries.ListBlogPosts(ctx, model.BlogFilter{IncludeUnpublished: true})
}

// GetPublishedBySlug returns a published post. Drafts are not found.
func (s *BlogService) GetPublishedBySlug(ctx context.Context, slug string) (model.BlogPost, error) {
	return s.queries.GetBlogPostBySlug(ctx, slug, false)
}

// Get returns any post by id.
func (s *BlogService) Get(ctx context.Context, id int64) (model.BlogPost, error) {
	return s.queries.GetBlogPost(ctx, id)
}

// Create stores a new post. authorID is used when the input names no author.
// A missing slug is derived from the title and made unique; a supplied slug
// that is already taken is rejected.
func (s *BlogService) Create(ctx context.Context, in model.BlogPostInput, authorID *int64) (model.BlogPost, error) {
	if err := model.Validate(in); err != nil {
		return model.BlogPost{}, err
	}

	post := model.BlogPost{
		Title:         strings.TrimSpace(in.Title),
		Slug:          in.Slug,
		Content:       util.SanitizeHTML(in.Content),
		Excerpt:       strings.TrimSpace(in.Excerpt),
		FeaturedImage: in.FeaturedImage,
		AuthorID:      in.AuthorID,
		Published:     in.Published,
	}
	if post.AuthorID == nil {
		post.AuthorID = authorID
	}
	if post.Excerpt == "" {
		post.Excerpt = util.Excerpt(post.Content, util.DefaultExcerptLength)
	}

	var out model.BlogPost
	err := s.queries.InTx(ctx, func(q *store.Queries) error {
		if post.Slug == "" {
			slug, err := s.uniqueSlug(ctx, q, post.Title, 0)
			if err != nil {
				return err
			}
			post.Slug = slug
		}

		var err error
		out, err = q.CreateBlogPost(ctx, post)
		return err
	})
	return out, translateBlogError(err)
}

// Update applies the supplied fields of patch to post id.
func (s *BlogService) Update(ctx context.Context, id int64, patch model.BlogPostPatch) (model.BlogPost, error) {
	if err := model.Validate(patch); err != nil {
		return model.BlogPost{}, err
	}

	var out model.BlogPost
	err := s.queries.InTx(ctx, func(q *store.Queries) error {
		post, err := q.GetBlogPost(ctx, id)
		if err != nil {
			return err
		}

		patch.Apply(&post)
		if patch.Content != nil {
			post.Content = util.SanitizeHTML(post.Content)
		}
		if strings.TrimSpace(post.Excerpt) == "" {
			post.Excerpt = util.Excerpt(post.Content, util.DefaultExcerptLength)
		}

		out, err = q.UpdateBlogPost(ctx, post)
		return err
	})
	return out, translateBlogError(err)
}

// Delete removes a post and reports whether it existed.
func (s *BlogService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.queries.DeleteBlogPost(ctx, id)
}

// uniqueSlug derives a slug from title, appending -2, -3, ... until unused.
func (s *BlogService) uniqueSlug(ctx context.Context, q *store.Queries, title string, excludeID int64) (string, error) {
	base := util.Slugify(title)
	if base == "" {
		return "", model.FieldError("slug", "is required when the title has no usable characters")
	}

	slug := base
	for i := 2; ; i++ {
		taken, err := q.SlugExists(ctx, slug, excludeID)
		if err != nil {
			return "", fmt.Errorf("checking slug: %w", err)
		}
		if !taken {
			return slug, nil
		}
		slug = base + "-" + strconv.Itoa(i)
	}
}

func translateBlogError(err error) error {
	switch {
	case err == nil:
		return nil
	case store.IsUniqueViolation(err):
		return errSlugTaken
	case store.IsForeignKeyViolation(err):
		return model.FieldError("authorId", "does not reference an existing user")
	case errors.Is(err, model.ErrNotFound), model.IsValidationError(err):
		return err
	default:
		return fmt.Errorf("saving blog post: %w", err)
	}
}
