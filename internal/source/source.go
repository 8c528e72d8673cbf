// Package source loads the images that get spliced.
package source

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/AnyUserName/imgsplice/internal/errors"
)

// Image is a decoded source image. It is read-only once built.
type Image struct {
	ID     string
	Width  int
	Height int
	Raster image.Image
}

// New wraps an already decoded raster.
func New(id string, raster image.Image) Image {
	b := raster.Bounds()
	return Image{ID: id, Width: b.Dx(), Height: b.Dy(), Raster: raster}
}

// Validate checks the raster is present and matches the recorded size.
func (img Image) Validate() error {
	if img.Raster == nil {
		return errors.New(errors.ErrCodeInvalidInput, "image %q has no pixels", img.ID)
	}
	b := img.Raster.Bounds()
	if img.Width <= 0 || img.Height <= 0 || b.Dx() != img.Width || b.Dy() != img.Height {
		return errors.New(errors.ErrCodeInvalidInput, "image %q: size %dx%d does not match raster %dx%d",
			img.ID, img.Width, img.Height, b.Dx(), b.Dy())
	}
	return nil
}

// Load decodes the file at path, applying EXIF orientation. The ID is the
// file name without extension.
func Load(path string) (Image, error) {
	raster, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return Image{}, errors.Wrap(errors.ErrCodeDecode, err, "decode %s", path)
	}
	base := filepath.Base(path)
	return New(strings.TrimSuffix(base, filepath.Ext(base)), raster), nil
}

// LoadAll decodes paths in order and stops at the first failure.
func LoadAll(paths []string) ([]Image, error) {
	out := make([]Image, 0, len(paths))
	for _, p := range paths {
		img, err := Load(p)
		if err != nil {
			return nil, err
		}
		out = append(out, img)
	}
	return out, nil
}
