package text

import (
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/AnyUserName/imgsplice/internal/geometry"
)

// Layout is the measured geometry of an element in its unrotated frame.
type Layout struct {
	Lines      []string
	LineWidths []float64
	Size       geometry.Size
	Bounds     geometry.Rect
}

// Baseline returns the left end of line i's baseline, with the line aligned
// against the anchor X the same way the renderer draws it.
func (l Layout) Baseline(e Element, i int) geometry.Point {
	return geometry.Pt(e.X-alignOffset(e.align(), l.LineWidths[i]), e.Y+float64(i)*e.lineHeight())
}

// Pivot is the rotation center shared by rendering and hit-testing.
func (l Layout) Pivot() geometry.Point {
	return l.Bounds.Center()
}

// Measure returns the element's width (widest line) and height
// (lines * FontSize * 1.2).
func Measure(src FaceSource, e Element) geometry.Size {
	return LayoutOf(src, e).Size
}

// Bounds returns the unrotated box: the x origin follows the alignment,
// the y origin is always Y - FontSize.
func Bounds(src FaceSource, e Element) geometry.Rect {
	return LayoutOf(src, e).Bounds
}

// LayoutOf measures every line of e. It never fails: when no face can be
// built (e.g. a non-positive font size) every line measures zero wide.
func LayoutOf(src FaceSource, e Element) Layout {
	lines := e.Lines()
	widths := make([]float64, len(lines))

	if e.FontSize > 0 {
		if face, err := src.Face(e.FontFamily, e.Bold, e.Italic, e.FontSize); err == nil {
			for i, line := range lines {
				widths[i] = fixedToFloat(font.MeasureString(face, line))
			}
			face.Close()
		}
	}

	var w float64
	for _, lw := range widths {
		if lw > w {
			w = lw
		}
	}
	size := geometry.Size{W: w, H: float64(len(lines)) * e.lineHeight()}
	return Layout{
		Lines:      lines,
		LineWidths: widths,
		Size:       size,
		Bounds: geometry.Rect{
			X:      e.X - alignOffset(e.align(), w),
			Y:      e.Y - e.FontSize,
			Width:  size.W,
			Height: size.H,
		},
	}
}

// alignOffset is the distance from a box's left edge to the anchor X.
func alignOffset(a Align, width float64) float64 {
	switch a {
	case AlignCenter:
		return width / 2
	case AlignRight:
		return width
	default:
		return 0
	}
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
