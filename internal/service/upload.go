// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/speakercms/internal/imaging"
	"github.com/olegiv/speakercms/internal/util"
)

// Upload limits
const (
	MaxUploadSize    = 5 * 1024 * 1024 // 5MiB
	DefaultUploadDir = "./uploads"
	UploadURLPrefix  = "/uploads/"
)

// Upload errors, translated by the HTTP layer into distinct 400 responses.
var (
	ErrFileTooLarge = errors.New("file too large")
	ErrNotImage     = errors.New("only image files are allowed")
	ErrNoFile       = errors.New("no file uploaded")
)

var extPattern = regexp.MustCompile(`^\.[a-z0-9]{1,8}$`)

// UploadResult describes a stored upload.
type UploadResult struct {
	URL          string `json:"url"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	MimeType     string `json:"mimetype"`
	Size         int64  `json:"size"`
	Width        int    `json:"width,omitempty"`
	Height       int    `json:"height,omitempty"`
}

// UploadService stores uploaded images on disk.
type UploadService struct {
	dir    string
	logger *slog.Logger
	now    func() time.Time
}

// NewUploadService creates an upload service writing into dir.
func NewUploadService(dir string, logger *slog.Logger) *UploadService {
	if dir == "" {
		dir = DefaultUploadDir
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UploadService{dir: dir, logger: logger, now: time.Now}
}

// Dir returns the directory uploads are written to.
func (s *UploadService) Dir() string {
	return s.dir
}

// Save validates and stores one image. An existing file is never overwritten.
func (s *UploadService) Save(file multipart.File, header *multipart.FileHeader) (*UploadResult, error) {
	if file == nil || header == nil {
		return nil, ErrNoFile
	}
	if header.Size > MaxUploadSize {
		return nil, ErrFileTooLarge
	}

	mimeType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, ErrNotImage
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}

	name := s.generateName(header.Filename, mimeType)
	path, err := util.SafeJoinPath(s.dir, name)
	if err != nil {
		return nil, err
	}

	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("creating upload file: %w", err)
	}

	// Copy one byte past the limit to detect bodies that lied about size.
	size, copyErr := io.Copy(out, io.LimitReader(file, MaxUploadSize+1))
	closeErr := out.Close()
	switch {
	case copyErr != nil:
		_ = os.Remove(path)
		return nil, fmt.Errorf("writing upload: %w", copyErr)
	case closeErr != nil:
		_ = os.Remove(path)
		return nil, fmt.Errorf("writing upload: %w", closeErr)
	case size > MaxUploadSize:
		_ = os.Remove(path)
		return nil, ErrFileTooLarge
	}

	result := &UploadResult{
		URL:          UploadURLPrefix + name,
		Filename:     name,
		OriginalName: header.Filename,
		MimeType:     mimeType,
		Size:         size,
	}

	info, err := imaging.Inspect(path)
	if err != nil {
		// SVG and other formats we cannot decode are stored as-is.
		s.logger.Debug("upload not inspectable", "file", name, "error", err)
		return result, nil
	}
	result.Width, result.Height = info.Width, info.Height

	if info.NeedsRotation() {
		if err := imaging.AutoOrient(path, info); err != nil {
			s.logger.Warn("failed to auto-orient upload", "file", name, "error", err)
		} else if st, err := os.Stat(path); err == nil {
			result.Size = st.Size()
		}
	}
	return result, nil
}

// generateName builds "<unix millis>-<random><ext>".
func (s *UploadService) generateName(original, mimeType string) string {
	ext := ""
	if safe, err := util.SanitizeFilename(original); err == nil {
		ext = strings.ToLower(filepath.Ext(safe))
	}
	if !extPattern.MatchString(ext) {
		ext = ""
		if exts, _ := mime.ExtensionsByType(mimeType); len(exts) > 0 {
			ext = exts[0]
		}
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%d-%s%s", s.now().UnixMilli(), suffix, ext)
}
