package text

import (
	"math"

	"github.com/AnyUserName/imgsplice/internal/geometry"
)

// Resize returns e scaled by dragging corner by (dx, dy) canvas pixels. The
// font size scales with the drag projected onto the box diagonal, and the
// anchor is recomputed so the opposite corner keeps its canvas position.
// Rotation, alignment and every other field are preserved.
func Resize(src FaceSource, e Element, corner Corner, dx, dy float64) Element {
	if corner < TopLeft || corner > BottomLeft {
		return e
	}
	l := LayoutOf(src, e)
	w, h := l.Size.W, l.Size.H
	if h == 0 {
		return e
	}
	opp := corner.Opposite()

	// The drag in the element's own frame.
	d := geometry.Pt(dx, dy).RotateAbout(geometry.Point{}, -e.Rotation)
	diag := cornerVector(corner, w, h).Sub(cornerVector(opp, w, h))
	dragged := diag.Add(d)
	scale := (dragged.X*diag.X + dragged.Y*diag.Y) / (diag.X*diag.X + diag.Y*diag.Y)

	out := e
	out.FontSize = math.Min(MaxFontSize, math.Max(MinFontSize, e.FontSize*scale))

	fixed := l.Bounds.Corners()[opp].RotateAbout(l.Pivot(), e.Rotation)

	nl := LayoutOf(src, out)
	nw, nh := nl.Size.W, nl.Size.H
	center := fixed.Sub(cornerVector(opp, nw, nh).RotateAbout(geometry.Point{}, e.Rotation))

	left := center.X - nw/2
	top := center.Y - nh/2
	out.X = left + alignOffset(out.align(), nw)
	out.Y = top + out.FontSize
	return out
}

// cornerVector is the offset of corner c from the center of a w x h box.
func cornerVector(c Corner, w, h float64) geometry.Point {
	switch c {
	case TopLeft:
		return geometry.Pt(-w/2, -h/2)
	case TopRight:
		return geometry.Pt(w/2, -h/2)
	case BottomRight:
		return geometry.Pt(w/2, h/2)
	default:
		return geometry.Pt(-w/2, h/2)
	}
}
