package capture

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestInlineImage_PNG(t *testing.T) {
	uri, err := InlineImage(pngBytes(t))
	if err != nil {
		t.Fatalf("inline failed: %v", err)
	}
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Fatalf("unexpected prefix: %q", uri[:40])
	}
	if !IsDataURI(uri) {
		t.Fatalf("IsDataURI rejected our own output")
	}
}

func TestInlineImage_RejectsNonImage(t *testing.T) {
	_, err := InlineImage([]byte("{\"not\": \"an image\"}"))
	if !errors.Is(err, ErrNotAnImage) {
		t.Fatalf("expected ErrNotAnImage, got %v", err)
	}
}

func TestInlineImage_RejectsEmpty(t *testing.T) {
	if _, err := InlineImage(nil); !errors.Is(err, ErrNotAnImage) {
		t.Fatalf("expected ErrNotAnImage for empty input, got %v", err)
	}
}

func TestInlineImage_RejectsOversized(t *testing.T) {
	big := make([]byte, maxImageBytes+1)
	copy(big, pngBytes(t))
	if _, err := InlineImage(big); !errors.Is(err, ErrImageTooLarge) {
		t.Fatalf("expected ErrImageTooLarge, got %v", err)
	}
}

func TestIsDataURI(t *testing.T) {
	if IsDataURI("https://example.com/photo.jpg") {
		t.Fatalf("plain URL accepted as data URI")
	}
	if !IsDataURI("data:image/jpeg;base64,abcd") {
		t.Fatalf("valid data URI rejected")
	}
}
