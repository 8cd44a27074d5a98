// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imaging reads metadata of uploaded images and corrects EXIF
// orientation so browsers render photos upright.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder
)

// ErrUnsupportedFormat is returned for files that are not a decodable raster
// image (SVG, TIFF, corrupted data).
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Info describes an image as it will be displayed.
type Info struct {
	Format      string
	Width       int
	Height      int
	Orientation int // EXIF orientation, 1 when absent
}

// NeedsRotation reports whether the stored pixels differ from the displayed
// orientation.
func (i Info) NeedsRotation() bool {
	return i.Orientation > 1 && i.Orientation <= 8
}

// Inspect reads the format, dimensions and orientation of the image at path.
// Width and height are reported after applying the orientation.
func Inspect(path string) (Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Info{}, fmt.Errorf("reading image: %w", err)
	}

	format := detectFormat(data)
	if format == "" {
		return Info{}, ErrUnsupportedFormat
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	info := Info{Format: format, Width: cfg.Width, Height: cfg.Height, Orientation: 1}
	if format == "jpeg" {
		info.Orientation = readExifOrientation(bytes.NewReader(data))
	}
	// Orientations 5-8 include a quarter turn.
	if info.Orientation >= 5 && info.Orientation <= 8 {
		info.Width, info.Height = info.Height, info.Width
	}
	return info, nil
}

// AutoOrient rewrites the image at path with its EXIF orientation applied.
func AutoOrient(path string, info Info) error {
	if !info.NeedsRotation() {
		return nil
	}

	img, err := imaging.Open(path)
	if err != nil {
		return fmt.Errorf("decoding image: %w", err)
	}
	img = applyOrientation(img, info.Orientation)

	if err := imaging.Save(img, path, imaging.JPEGQuality(90)); err != nil {
		return fmt.Errorf("saving oriented image: %w", err)
	}
	return nil
}

// readExifOrientation reads the EXIF orientation tag, defaulting to 1.
func readExifOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}

	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}

	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return orientation
}

// applyOrientation maps EXIF orientation values to transforms:
// 2 flip H, 3 rotate 180, 4 flip V, 5 transpose, 6 rotate 90 CW,
// 7 transverse, 8 rotate 90 CCW.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

func detectFormat(data []byte) string {
	contentType := http.DetectContentType(data)
	// TIFF decoding in disintegration/imaging has known issues (CVE-2023-36308).
	if strings.Contains(contentType, "tiff") {
		return ""
	}
	switch {
	case strings.Contains(contentType, "jpeg"):
		return "jpeg"
	case strings.Contains(contentType, "png"):
		return "png"
	case strings.Contains(contentType, "gif"):
		return "gif"
	case strings.Contains(contentType, "webp"):
		return "webp"
	default:
		return ""
	}
}
