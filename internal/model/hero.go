// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Default image placement for hero and interview artwork.
const (
	DefaultImagePosition = "center center"
	DefaultImageScale    = 1.0
)

// HeroSettings configures the landing section. There is only ever one row.
type HeroSettings struct {
	ID              int64     `db:"id" json:"id"`
	Title           string    `db:"title" json:"title"`
	Subtitle        *string   `db:"subtitle" json:"subtitle"`
	BackgroundImage string    `db:"background_image" json:"backgroundImage"`
	ButtonText1     *string   `db:"button_text1" json:"buttonText1"`
	ButtonLink1     *string   `db:"button_link1" json:"buttonLink1"`
	ButtonText2     *string   `db:"button_text2" json:"buttonText2"`
	ButtonLink2     *string   `db:"button_link2" json:"buttonLink2"`
	ImagePosition   string    `db:"image_position" json:"imagePosition"`
	ImageScale      float64   `db:"image_scale" json:"imageScale"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}

// DefaultHeroSettings returns the values used to seed the row on first update.
func DefaultHeroSettings() HeroSettings {
	return HeroSettings{
		ID:            SingletonID,
		Title:         "Welcome",
		ImagePosition: DefaultImagePosition,
		ImageScale:    DefaultImageScale,
	}
}

// HeroSettingsPatch is the partial update schema. Empty optional strings
// clear the stored value.
type HeroSettingsPatch struct {
	Title           *string  `json:"title" validate:"omitempty,min=1,max=300"`
	Subtitle        *string  `json:"subtitle" validate:"omitempty,max=1000"`
	BackgroundImage *string  `json:"backgroundImage" validate:"omitempty,max=2048"`
	ButtonText1     *string  `json:"buttonText1" validate:"omitempty,max=100"`
	ButtonLink1     *string  `json:"buttonLink1" validate:"omitempty,max=2048"`
	ButtonText2     *string  `json:"buttonText2" validate:"omitempty,max=100"`
	ButtonLink2     *string  `json:"buttonLink2" validate:"omitempty,max=2048"`
	ImagePosition   *string  `json:"imagePosition" validate:"omitempty,min=1,max=100"`
	ImageScale      *float64 `json:"imageScale" validate:"omitempty,gt=0,lte=10"`
}

// Apply copies the supplied fields onto h.
func (p HeroSettingsPatch) Apply(h *HeroSettings) {
	setString(&h.Title, p.Title)
	setOptional(&h.Subtitle, p.Subtitle)
	setString(&h.BackgroundImage, p.BackgroundImage)
	setOptional(&h.ButtonText1, p.ButtonText1)
	setOptional(&h.ButtonLink1, p.ButtonLink1)
	setOptional(&h.ButtonText2, p.ButtonText2)
	setOptional(&h.ButtonLink2, p.ButtonLink2)
	setString(&h.ImagePosition, p.ImagePosition)
	if p.ImageScale != nil {
		h.ImageScale = *p.ImageScale
	}
}
