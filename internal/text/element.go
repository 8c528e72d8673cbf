// Package text measures, hit-tests and resizes text annotations.
//
// Every computation here derives from the element's anchor the same way:
// (X, Y) is the baseline of the first line, and X is interpreted according
// to the element's alignment. Rotation is applied about the geometric center
// of the unrotated bounds. The renderer uses the functions in this package
// for its own transform, so what is hit-tested is exactly what is drawn.
package text

import (
	"fmt"
	"strings"

	"golang.org/x/image/font"

	"github.com/AnyUserName/imgsplice/internal/colors"
	"github.com/AnyUserName/imgsplice/internal/errors"
	"github.com/AnyUserName/imgsplice/internal/geometry"
)

const (
	// LineHeight is the line advance as a multiple of the font size.
	LineHeight = 1.2
	// HitPadding expands the bounds for hit-testing and the selection frame.
	HitPadding = 4.0
	// HandleRadius is the hit radius of a corner handle.
	HandleRadius = 8.0
	// MinFontSize bounds how far a resize can shrink an element.
	MinFontSize = 4.0
	// MaxFontSize bounds the glyph size a render will rasterize.
	MaxFontSize = 4096.0
)

// Align is the horizontal alignment of every line relative to the anchor X.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// FaceSource supplies font faces. fonts.Library implements it.
type FaceSource interface {
	Face(family string, bold, italic bool, size float64) (font.Face, error)
}

// Element is one text annotation.
type Element struct {
	ID         string  `json:"id" toml:"id"`
	Text       string  `json:"text" toml:"text"`
	X          float64 `json:"x" toml:"x"`
	Y          float64 `json:"y" toml:"y"`
	FontSize   float64 `json:"font_size" toml:"font_size"`
	FontFamily string  `json:"font_family" toml:"font_family"`
	Color      string  `json:"color" toml:"color"`
	Bold       bool    `json:"bold" toml:"bold"`
	Italic     bool    `json:"italic" toml:"italic"`
	Align      Align   `json:"align" toml:"align"`
	Rotation   float64 `json:"rotation" toml:"rotation"` // degrees, clockwise
	Opacity    float64 `json:"opacity" toml:"opacity"`
	ZIndex     int     `json:"z_index" toml:"z_index"`
	Hidden     bool    `json:"hidden,omitempty" toml:"hidden"`
}

// Lines splits the text on explicit line breaks. An empty text is one
// empty line.
func (e Element) Lines() []string {
	s := strings.ReplaceAll(e.Text, "\r\n", "\n")
	return strings.Split(s, "\n")
}

// Validate checks the fields the renderer cannot draw without.
func (e Element) Validate() error {
	if !geometry.Finite(e.X, e.Y, e.FontSize, e.Rotation, e.Opacity) {
		return errors.New(errors.ErrCodeInvalidInput, "text %q: position, size, rotation and opacity must be finite", e.ID)
	}
	if e.FontSize <= 0 || e.FontSize > MaxFontSize {
		return errors.New(errors.ErrCodeInvalidInput, "text %q: font size %v outside (0, %v]", e.ID, e.FontSize, MaxFontSize)
	}
	if e.Opacity < 0 || e.Opacity > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "text %q: opacity %v outside [0, 1]", e.ID, e.Opacity)
	}
	switch e.Align {
	case AlignLeft, AlignCenter, AlignRight, "":
	default:
		return errors.New(errors.ErrCodeInvalidInput, "text %q: unknown alignment %q", e.ID, e.Align)
	}
	if _, err := colors.Parse(e.Color); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "text %q", e.ID)
	}
	return nil
}

func (e Element) String() string {
	return fmt.Sprintf("text %q (%.1f,%.1f %.1fpx %s rot %.1f)", e.ID, e.X, e.Y, e.FontSize, e.align(), e.Rotation)
}

func (e Element) align() Align {
	if e.Align == "" {
		return AlignLeft
	}
	return e.Align
}

// lineHeight is the distance between consecutive baselines.
func (e Element) lineHeight() float64 {
	return e.FontSize * LineHeight
}
