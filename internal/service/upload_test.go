// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/olegiv/speakercms/internal/testutil"
)

// multipartFile builds a request carrying one "image" part and returns the
// parsed file and header.
func multipartFile(t *testing.T, filename, contentType string, data []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = part.Write(data)
	_ = w.Close()

	req, _ := http.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatal(err)
	}
	file, header, err := req.FormFile("image")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = file.Close() })
	return file, header
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestUploadSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	svc := NewUploadService(dir, testutil.TestLogger())

	data := pngBytes(t, 4, 3)
	file, header := multipartFile(t, "../../Photo.PNG", "image/png", data)

	res, err := svc.Save(file, header)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(res.URL, UploadURLPrefix) || !strings.HasSuffix(res.Filename, ".png") {
		t.Errorf("result = %+v", res)
	}
	if res.OriginalName != "Photo.PNG" {
		t.Errorf("OriginalName = %q", res.OriginalName)
	}
	if res.Size != int64(len(data)) || res.Width != 4 || res.Height != 3 {
		t.Errorf("metadata = %+v", res)
	}

	stored, err := os.ReadFile(filepath.Join(dir, res.Filename))
	if err != nil {
		t.Fatalf("stored file: %v", err)
	}
	if !bytes.Equal(stored, data) {
		t.Error("stored bytes differ from upload")
	}
}

func TestUploadSave_UniqueNames(t *testing.T) {
	svc := NewUploadService(t.TempDir(), testutil.TestLogger())
	data := pngBytes(t, 1, 1)

	seen := map[string]bool{}
	for range 5 {
		file, header := multipartFile(t, "a.png", "image/png", data)
		res, err := svc.Save(file, header)
		if err != nil {
			t.Fatal(err)
		}
		if seen[res.Filename] {
			t.Fatalf("duplicate filename %s", res.Filename)
		}
		seen[res.Filename] = true
	}
}

func TestUploadSave_Rejections(t *testing.T) {
	dir := t.TempDir()
	svc := NewUploadService(dir, testutil.TestLogger())

	file, header := multipartFile(t, "notes.txt", "text/plain", []byte("hello"))
	if _, err := svc.Save(file, header); !errors.Is(err, ErrNotImage) {
		t.Errorf("text file: err = %v, want ErrNotImage", err)
	}

	big := make([]byte, MaxUploadSize+1)
	file, header = multipartFile(t, "big.png", "image/png", big)
	if _, err := svc.Save(file, header); !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("oversized file: err = %v, want ErrFileTooLarge", err)
	}

	if _, err := svc.Save(nil, nil); !errors.Is(err, ErrNoFile) {
		t.Errorf("missing file: err = %v, want ErrNoFile", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("rejected uploads left %d files behind", len(entries))
	}
}

func TestUploadSave_UndecodableImageStored(t *testing.T) {
	svc := NewUploadService(t.TempDir(), testutil.TestLogger())

	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`)
	file, header := multipartFile(t, "logo.svg", "image/svg+xml", svg)
	res, err := svc.Save(file, header)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if res.Width != 0 || res.Height != 0 || !strings.HasSuffix(res.Filename, ".svg") {
		t.Errorf("result = %+v", res)
	}
}
