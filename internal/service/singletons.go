// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"time"

	"github.com/olegiv/speakercms/internal/model"
	"github.com/olegiv/speakercms/internal/store"
)

// EbookService manages the promoted ebook and its purchase records.
type EbookService struct {
	queries *store.Queries
}

// NewEbookService creates a new EbookService.
func NewEbookService(db *sql.DB) *EbookService {
	return &EbookService{queries: store.New(db)}
}

// Get returns the ebook or model.ErrNotFound when none exists yet.
func (s *EbookService) Get(ctx context.Context) (model.Ebook, error) {
	return s.queries.GetEbook(ctx)
}

// Update applies patch to the ebook, creating it from defaults on first use.
func (s *EbookService) Update(ctx context.Context, patch model.EbookPatch) (model.Ebook, error) {
	if err := model.Validate(patch); err != nil {
		return model.Ebook{}, err
	}

	var out model.Ebook
	err := s.queries.InTx(ctx, func(q *store.Queries) error {
		e, err := q.GetEbook(ctx)
		if errors.Is(err, model.ErrNotFound) {
			e = model.DefaultEbook()
		} else if err != nil {
			return err
		}
		patch.Apply(&e)
		out, err = q.UpsertEbook(ctx, e)
		return err
	})
	return out, err
}

// ListPurchases returns purchases, most recent first.
func (s *EbookService) ListPurchases(ctx context.Context) ([]model.EbookPurchase, error) {
	return s.queries.ListEbookPurchases(ctx)
}

// GetPurchase returns one purchase.
func (s *EbookService) GetPurchase(ctx context.Context, id int64) (model.EbookPurchase, error) {
	return s.queries.GetEbookPurchase(ctx, id)
}

// RecordPurchase stores an undelivered purchase.
func (s *EbookService) RecordPurchase(ctx context.Context, in model.EbookPurchaseInput) (model.EbookPurchase, error) {
	if err := model.Validate(in); err != nil {
		return model.EbookPurchase{}, err
	}
	return s.queries.CreateEbookPurchase(ctx, in.Email)
}

// UpdatePurchase applies patch. Setting delivered stamps the delivery date
// on the false-to-true transition; clearing it removes the date.
func (s *EbookService) UpdatePurchase(ctx context.Context, id int64, patch model.EbookPurchasePatch) (model.EbookPurchase, error) {
	if err := model.Validate(patch); err != nil {
		return model.EbookPurchase{}, err
	}

	var out model.EbookPurchase
	err := s.queries.InTx(ctx, func(q *store.Queries) error {
		p, err := q.GetEbookPurchase(ctx, id)
		if err != nil {
			return err
		}
		if patch.Email != nil {
			p.Email = *patch.Email
		}
		if patch.Delivered != nil {
			switch {
			case *patch.Delivered && !p.Delivered:
				ts := time.Now().UTC()
				p.DeliveryDate = &ts
			case !*patch.Delivered:
				p.DeliveryDate = nil
			}
			p.Delivered = *patch.Delivered
		}
		out, err = q.UpdateEbookPurchase(ctx, p.ID, p.Email, p.Delivered, p.DeliveryDate)
		return err
	})
	return out, err
}

// DeletePurchase removes a purchase and reports whether it existed.
func (s *EbookService) DeletePurchase(ctx context.Context, id int64) (bool, error) {
	return s.queries.DeleteEbookPurchase(ctx, id)
}

// HeroService manages the landing section configuration.
type HeroService struct {
	queries *store.Queries
}

// NewHeroService creates a new HeroService.
func NewHeroService(db *sql.DB) *HeroService {
	return &HeroService{queries: store.New(db)}
}

// Get returns the hero settings or model.ErrNotFound.
func (s *HeroService) Get(ctx context.Context) (model.HeroSettings, error) {
	return s.queries.GetHeroSettings(ctx)
}

// Update applies patch, creating the settings from defaults on first use.
func (s *HeroService) Update(ctx context.Context, patch model.HeroSettingsPatch) (model.HeroSettings, error) {
	if err := model.Validate(patch); err != nil {
		return model.HeroSettings{}, err
	}

	var out model.HeroSettings
	err := s.queries.InTx(ctx, func(q *store.Queries) error {
		h, err := q.GetHeroSettings(ctx)
		if errors.Is(err, model.ErrNotFound) {
			h = model.DefaultHeroSettings()
		} else if err != nil {
			return err
		}
		patch.Apply(&h)
		out, err = q.UpsertHeroSettings(ctx, h)
		return err
	})
	return out, err
}

var sectionPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

// SettingsService stores per-section site settings documents.
type SettingsService struct {
	queries *store.Queries
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(db *sql.DB) *SettingsService {
	return &SettingsService{queries: store.New(db)}
}

// Get returns the settings of section or model.ErrNotFound.
func (s *SettingsService) Get(ctx context.Context, section string) (model.SiteSettings, error) {
	if !sectionPattern.MatchString(section) {
		return model.SiteSettings{}, model.ErrNotFound
	}
	return s.queries.GetSiteSettings(ctx, section)
}

// List returns every stored section.
func (s *SettingsService) List(ctx context.Context) ([]model.SiteSettings, error) {
	return s.queries.ListSiteSettings(ctx)
}

// Upsert replaces the document of section. The document is opaque but must
// be a well-formed JSON object.
func (s *SettingsService) Upsert(ctx context.Context, section string, doc []byte) (model.SiteSettings, error) {
	if !sectionPattern.MatchString(section) {
		return model.SiteSettings{}, model.FieldError("section", "must be lowercase letters, digits, '-' or '_'")
	}
	if len(doc) == 0 || !json.Valid(doc) {
		return model.SiteSettings{}, model.FieldError("settings", "must be valid JSON")
	}
	if !bytes.HasPrefix(bytes.TrimSpace(doc), []byte("{")) {
		return model.SiteSettings{}, model.FieldError("settings", "must be a JSON object")
	}
	return s.queries.UpsertSiteSettings(ctx, section, model.JSONDoc(doc))
}
