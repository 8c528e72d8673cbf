// Package encoder turns composed rasters into file bytes.
//
// PNG and JPEG are always available. WebP and AVIF shell out to cwebp and
// avifenc when those tools are on PATH.
package encoder

import (
	"bytes"
	"image"
	"strings"

	"github.com/disintegration/imaging"
)

// DefaultQuality is used when a quality outside 1..100 is requested.
const DefaultQuality = 92

// Encoder encodes an image to one format.
type Encoder interface {
	// Format returns the canonical format name (png, jpeg, webp, avif).
	Format() string

	// Encode converts img to bytes. quality is already in 1..100.
	Encode(img image.Image, quality int) ([]byte, error)

	// Available reports whether the encoder can run on this machine.
	Available() bool

	// Extension returns the file extension without dot.
	Extension() string
}

// Quality clamps q to a usable value.
func Quality(q int) int {
	if q < 1 || q > 100 {
		return DefaultQuality
	}
	return q
}

// Canonical maps user-facing format names to registry keys.
func Canonical(format string) string {
	f := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))
	switch f {
	case "jpg":
		return "jpeg"
	case "":
		return "png"
	}
	return f
}

// encode runs one of the in-process imaging encoders into memory.
func encode(img image.Image, f imaging.Format, opts ...imaging.EncodeOption) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, f, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
