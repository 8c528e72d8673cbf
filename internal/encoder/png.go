package encoder

import (
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// PNGEncoder is the default output format. Compositions are mostly flat
// fills, hard seams between spliced images and anti-aliased glyph edges,
// which a lossless format keeps exact; alpha keeps the corners a border
// radius clips away. The quality argument has no meaning for PNG.
type PNGEncoder struct{}

func (e *PNGEncoder) Format() string    { return "png" }
func (e *PNGEncoder) Extension() string { return "png" }
func (e *PNGEncoder) Available() bool   { return true }

func (e *PNGEncoder) Encode(img image.Image, _ int) ([]byte, error) {
	return encode(img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression))
}
