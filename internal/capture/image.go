package capture

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Per-form image limits carried over from the mobile client.
const (
	MaxReceiptImages = 3
	MaxReportPhotos  = 5

	// maxImageBytes caps a single inlined image. The endpoint accepts only
	// flat JSON payloads, so images must fit inline as text.
	maxImageBytes = 5 << 20
)

// Both errors surface to the client as-is, so the messages stay
// presentation-ready.
var (
	ErrNotAnImage    = errors.New("data is not an image")
	ErrImageTooLarge = errors.New("image exceeds size limit")
)

// InlineImage converts raw image bytes into a data URI suitable for
// inclusion in a sheet payload. The content type is sniffed from the bytes.
func InlineImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrNotAnImage
	}
	if len(data) > maxImageBytes {
		return "", ErrImageTooLarge
	}

	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%w: detected %s", ErrNotAnImage, mime)
	}

	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// IsDataURI reports whether s already looks like an inlined image, so
// handlers can accept either raw bytes or a client-inlined value.
func IsDataURI(s string) bool {
	return strings.HasPrefix(s, "data:image/")
}
