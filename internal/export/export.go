// Package export resamples a composed raster, encodes it and writes it under
// a content-addressed file name.
package export

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/AnyUserName/imgsplice/internal/encoder"
	"github.com/AnyUserName/imgsplice/internal/errors"
	"github.com/AnyUserName/imgsplice/internal/hasher"
)

// Settings control the final resample and encoding.
type Settings struct {
	Format  string `json:"format" toml:"format"`
	Quality int    `json:"quality" toml:"quality"`
	// Width and Height request a final resample. With one of them zero the
	// other follows the aspect ratio.
	Width  int `json:"width,omitempty" toml:"width"`
	Height int `json:"height,omitempty" toml:"height"`
	// Fit keeps the aspect ratio when both Width and Height are set, fitting
	// inside the box instead of stretching to it.
	Fit bool `json:"fit,omitempty" toml:"fit"`
}

// DefaultSettings is PNG at the default quality with no resample.
func DefaultSettings() Settings {
	return Settings{Format: "png", Quality: encoder.DefaultQuality}
}

// Output is one encoded image.
type Output struct {
	Data      []byte
	Format    string
	Extension string
	Width     int
	Height    int
	// Hash is the full hex content hash of Data.
	Hash string
	// AvgColor is the mean RGB of the encoded raster.
	AvgColor [3]uint8
}

// Exporter encodes with the formats of one registry.
type Exporter struct {
	registry *encoder.Registry
}

// New returns an Exporter backed by reg.
func New(reg *encoder.Registry) *Exporter {
	return &Exporter{registry: reg}
}

// Resample applies the requested final size. It returns img unchanged when
// no size is requested.
func Resample(img image.Image, s Settings) (image.Image, error) {
	if s.Width < 0 || s.Height < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "export size %dx%d is negative", s.Width, s.Height)
	}
	switch {
	case s.Width == 0 && s.Height == 0:
		return img, nil
	case s.Width > 0 && s.Height > 0 && s.Fit:
		return imaging.Fit(img, s.Width, s.Height, imaging.Lanczos), nil
	default:
		return imaging.Resize(img, s.Width, s.Height, imaging.Lanczos), nil
	}
}

// Encode resamples img and encodes it. On failure no bytes are returned.
func (x *Exporter) Encode(img image.Image, s Settings) (Output, error) {
	enc, err := x.registry.Lookup(s.Format)
	if err != nil {
		return Output{}, err
	}
	out, err := Resample(img, s)
	if err != nil {
		return Output{}, err
	}
	data, err := enc.Encode(out, encoder.Quality(s.Quality))
	if err != nil {
		return Output{}, errors.Wrap(errors.ErrCodeEncode, err, "encode %s", enc.Format())
	}

	b := out.Bounds()
	return Output{
		Data:      data,
		Format:    enc.Format(),
		Extension: enc.Extension(),
		Width:     b.Dx(),
		Height:    b.Dy(),
		Hash:      hasher.ContentHash(data, 0),
		AvgColor:  averageColor(out),
	}, nil
}

// FileName returns "<name>.<w>.<h>.<hash8>.<ext>".
func FileName(name string, out Output) string {
	return fmt.Sprintf("%s.%d.%d.%s.%s", name, out.Width, out.Height, out.Hash[:hasher.NameLen], out.Extension)
}

// Write stores out in dir under its content-addressed name and returns the
// path written. Identical bytes always land on the same name.
func Write(dir, name string, out Output) (string, error) {
	if len(out.Data) == 0 || len(out.Hash) < hasher.NameLen {
		return "", errors.New(errors.ErrCodeEncode, "nothing to write for %q", name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, FileName(name, out))
	if err := os.WriteFile(path, out.Data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func averageColor(img image.Image) [3]uint8 {
	b := img.Bounds()
	if b.Empty() {
		return [3]uint8{}
	}
	px := imaging.Resize(img, 1, 1, imaging.Box).NRGBAAt(0, 0)
	return [3]uint8{px.R, px.G, px.B}
}
