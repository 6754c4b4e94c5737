package aigen

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestNewImage(t *testing.T) {
	img, err := NewImage(pngHeader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.MediaType != "image/png" {
		t.Errorf("MediaType = %q", img.MediaType)
	}

	if _, err := NewImage([]byte("just some text")); !errors.Is(err, ErrUnsupportedImage) {
		t.Errorf("expected ErrUnsupportedImage for text, got %v", err)
	}
	if _, err := NewImage(nil); !errors.Is(err, ErrUnsupportedImage) {
		t.Errorf("expected ErrUnsupportedImage for empty data, got %v", err)
	}
}

func TestImageFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.png")
	if err := os.WriteFile(path, pngHeader, 0o600); err != nil {
		t.Fatal(err)
	}
	img, err := ImageFromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(img.Data) != len(pngHeader) {
		t.Errorf("read %d bytes, want %d", len(img.Data), len(pngHeader))
	}

	if _, err := ImageFromFile(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDecodeDataURL(t *testing.T) {
	b64 := base64.StdEncoding.EncodeToString(pngHeader)

	for _, in := range []string{"data:image/png;base64," + b64, b64} {
		img, err := DecodeDataURL(in)
		if err != nil {
			t.Fatalf("DecodeDataURL(%q): %v", in[:20], err)
		}
		if img.MediaType != "image/png" {
			t.Errorf("MediaType = %q", img.MediaType)
		}
	}

	if _, err := DecodeDataURL("data:image/png;base64"); err == nil {
		t.Error("expected error for URL without payload")
	}
	if _, err := DecodeDataURL("!!not base64!!"); err == nil {
		t.Error("expected error for invalid base64")
	}
}
