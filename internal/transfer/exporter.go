// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package transfer

import (
	"archive/zip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"time"

	"github.com/olegiv/speakercms/internal/model"
	"github.com/olegiv/speakercms/internal/store"
)

// Archive entry names.
const (
	ExportFileName = "export.json"
	uploadsPrefix  = "uploads"
)

// Exporter reads every content table into an ExportData.
type Exporter struct {
	queries   *store.Queries
	logger    *slog.Logger
	uploadDir string
}

// NewExporter creates a new Exporter. uploadDir is only read by
// WriteZip.
func NewExporter(queries *store.Queries, uploadDir string, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{queries: queries, logger: logger, uploadDir: uploadDir}
}

// Export collects the site content. Missing singletons are omitted.
func (e *Exporter) Export(ctx context.Context, opts ExportOptions) (*ExportData, error) {
	data := &ExportData{
		Version:    ExportVersion,
		ExportedAt: time.Now().UTC(),
	}

	var err error
	if data.Events, err = e.queries.ListEvents(ctx); err != nil {
		return nil, fmt.Errorf("exporting events: %w", err)
	}
	if data.Posts, err = e.queries.ListBlogPosts(ctx, model.BlogFilter{IncludeUnpublished: true}); err != nil {
		return nil, fmt.Errorf("exporting posts: %w", err)
	}
	if data.Interviews, err = e.queries.ListInterviews(ctx); err != nil {
		return nil, fmt.Errorf("exporting interviews: %w", err)
	}
	if data.Settings, err = e.queries.ListSiteSettings(ctx); err != nil {
		return nil, fmt.Errorf("exporting settings: %w", err)
	}

	ebook, err := e.queries.GetEbook(ctx)
	switch {
	case err == nil:
		data.Ebook = &ebook
	case !errors.Is(err, model.ErrNotFound):
		return nil, fmt.Errorf("exporting ebook: %w", err)
	}

	hero, err := e.queries.GetHeroSettings(ctx)
	switch {
	case err == nil:
		data.Hero = &hero
	case !errors.Is(err, model.ErrNotFound):
		return nil, fmt.Errorf("exporting hero: %w", err)
	}

	if opts.IncludeSubmissions {
		if data.Subscribers, err = e.queries.ListSubscribers(ctx); err != nil {
			return nil, fmt.Errorf("exporting subscribers: %w", err)
		}
		if data.Contacts, err = e.queries.ListContacts(ctx); err != nil {
			return nil, fmt.Errorf("exporting contacts: %w", err)
		}
	}

	return data, nil
}

// WriteJSON writes an indented export document to w.
func (e *Exporter) WriteJSON(ctx context.Context, opts ExportOptions, w io.Writer) error {
	data, err := e.Export(ctx, opts)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// WriteZip writes a zip archive holding export.json and, when requested,
// every file of the upload directory under uploads/.
func (e *Exporter) WriteZip(ctx context.Context, opts ExportOptions, w io.Writer) error {
	data, err := e.Export(ctx, opts)
	if err != nil {
		return err
	}

	zw := zip.NewWriter(w)

	if opts.IncludeUploads {
		names, err := e.uploadFiles()
		if err != nil {
			return fmt.Errorf("listing uploads: %w", err)
		}
		for _, name := range names {
			entry := path.Join(uploadsPrefix, name)
			if err := addFileToZip(zw, filepath.Join(e.uploadDir, name), entry); err != nil {
				e.logger.Warn("skipping upload in export", "file", name, "error", err)
				continue
			}
			data.Uploads = append(data.Uploads, entry)
		}
	}

	jw, err := zw.Create(ExportFileName)
	if err != nil {
		return fmt.Errorf("creating %s: %w", ExportFileName, err)
	}
	enc := json.NewEncoder(jw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("writing %s: %w", ExportFileName, err)
	}

	return zw.Close()
}

// uploadFiles lists regular files in the upload directory, sorted.
func (e *Exporter) uploadFiles() ([]string, error) {
	entries, err := os.ReadDir(e.uploadDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, ent := range entries {
		if ent.Type().IsRegular() {
			names = append(names, ent.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func addFileToZip(zw *zip.Writer, src, name string) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = name
	header.Method = zip.Deflate

	dst, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}
	_, err = io.Copy(dst, f)
	return err
}
