package encoder

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// JPEGEncoder writes baseline JPEG. Transparent pixels are flattened onto
// Matte first since the format has no alpha.
type JPEGEncoder struct {
	Matte color.Color
}

func (e *JPEGEncoder) Format() string    { return "jpeg" }
func (e *JPEGEncoder) Extension() string { return "jpg" }
func (e *JPEGEncoder) Available() bool   { return true }

func (e *JPEGEncoder) Encode(img image.Image, quality int) ([]byte, error) {
	return encode(flatten(img, e.Matte), imaging.JPEG, imaging.JPEGQuality(quality))
}

// flatten composites img over an opaque matte (white when nil).
func flatten(img image.Image, matte color.Color) image.Image {
	if matte == nil {
		matte = color.White
	}
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), matte)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}
