// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"

	"github.com/olegiv/speakercms/internal/model"
)

// The ebook and hero_settings tables accept only id = 1, so reads never have
// to choose between rows.

const ebookColumns = "id, title, description, cover_image, price, sale_price, buy_link, features, created_at, updated_at"

// GetEbook returns the ebook or model.ErrNotFound when none has been saved.
func (q *Queries) GetEbook(ctx context.Context) (model.Ebook, error) {
	var e model.Ebook
	err := q.get(ctx, &e, "SELECT "+ebookColumns+" FROM ebook WHERE id = ?", model.SingletonID)
	return e, err
}

// UpsertEbook writes the ebook row, creating it on first use.
func (q *Queries) UpsertEbook(ctx context.Context, e model.Ebook) (model.Ebook, error) {
	ts := now()
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO ebook (id, title, description, cover_image, price, sale_price, buy_link, features, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			cover_image = excluded.cover_image,
			price = excluded.price,
			sale_price = excluded.sale_price,
			buy_link = excluded.buy_link,
			features = excluded.features,
			updated_at = excluded.updated_at`,
		model.SingletonID, e.Title, e.Description, e.CoverImage, e.Price, e.SalePrice, e.BuyLink, e.Features, ts, ts)
	if err != nil {
		return model.Ebook{}, fmt.Errorf("upserting ebook: %w", err)
	}
	return q.GetEbook(ctx)
}

const heroColumns = "id, title, subtitle, background_image, button_text1, button_link1, button_text2, button_link2, image_position, image_scale, updated_at"

// GetHeroSettings returns the hero configuration or model.ErrNotFound.
func (q *Queries) GetHeroSettings(ctx context.Context) (model.HeroSettings, error) {
	var h model.HeroSettings
	err := q.get(ctx, &h, "SELECT "+heroColumns+" FROM hero_settings WHERE id = ?", model.SingletonID)
	return h, err
}

// UpsertHeroSettings writes the hero row, creating it on first use.
func (q *Queries) UpsertHeroSettings(ctx context.Context, h model.HeroSettings) (model.HeroSettings, error) {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO hero_settings (id, title, subtitle, background_image, button_text1, button_link1,
			button_text2, button_link2, image_position, image_scale, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			subtitle = excluded.subtitle,
			background_image = excluded.background_image,
			button_text1 = excluded.button_text1,
			button_link1 = excluded.button_link1,
			button_text2 = excluded.button_text2,
			button_link2 = excluded.button_link2,
			image_position = excluded.image_position,
			image_scale = excluded.image_scale,
			updated_at = excluded.updated_at`,
		model.SingletonID, h.Title, h.Subtitle, h.BackgroundImage, h.ButtonText1, h.ButtonLink1,
		h.ButtonText2, h.ButtonLink2, h.ImagePosition, h.ImageScale, now())
	if err != nil {
		return model.HeroSettings{}, fmt.Errorf("upserting hero settings: %w", err)
	}
	return q.GetHeroSettings(ctx)
}

// GetSiteSettings returns the settings of section or model.ErrNotFound.
func (q *Queries) GetSiteSettings(ctx context.Context, section string) (model.SiteSettings, error) {
	var s model.SiteSettings
	err := q.get(ctx, &s, "SELECT id, section, settings, updated_at FROM site_settings WHERE section = ?", section)
	return s, err
}

// ListSiteSettings returns every stored section ordered by name.
func (q *Queries) ListSiteSettings(ctx context.Context) ([]model.SiteSettings, error) {
	items := []model.SiteSettings{}
	err := q.selectAll(ctx, &items, "SELECT id, section, settings, updated_at FROM site_settings ORDER BY section")
	return items, err
}

// UpsertSiteSettings replaces the document of section, creating the row if needed.
func (q *Queries) UpsertSiteSettings(ctx context.Context, section string, doc model.JSONDoc) (model.SiteSettings, error) {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO site_settings (section, settings, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (section) DO UPDATE SET settings = excluded.settings, updated_at = excluded.updated_at`,
		section, doc, now())
	if err != nil {
		return model.SiteSettings{}, fmt.Errorf("upserting site settings: %w", err)
	}
	return q.GetSiteSettings(ctx, section)
}
