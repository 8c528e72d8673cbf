package text

import (
	"github.com/AnyUserName/imgsplice/internal/geometry"
)

// Corner indexes the resize handles clockwise from the top-left.
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomRight
	BottomLeft
)

// Opposite returns the corner that stays fixed while c is dragged.
func (c Corner) Opposite() Corner {
	return (c + 2) % 4
}

func (c Corner) String() string {
	switch c {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomRight:
		return "bottom-right"
	case BottomLeft:
		return "bottom-left"
	}
	return "invalid"
}

// ParseCorner is the inverse of Corner.String.
func ParseCorner(s string) (Corner, bool) {
	for c := TopLeft; c <= BottomLeft; c++ {
		if c.String() == s {
			return c, true
		}
	}
	return 0, false
}

// HandleKind names what dragging a handle does.
type HandleKind string

// HandleResize scales the element from the opposite corner.
const HandleResize HandleKind = "resize"

// Handle is a hit on one of the selection handles.
type Handle struct {
	Corner Corner     `json:"corner"`
	Kind   HandleKind `json:"kind"`
}

// toLocal maps a canvas point into the element's unrotated frame.
func toLocal(l Layout, e Element, p geometry.Point) geometry.Point {
	if e.Rotation == 0 {
		return p
	}
	return p.RotateAbout(l.Pivot(), -e.Rotation)
}

// Contains reports whether (px, py) falls on the element: inside its bounds
// padded by HitPadding, after undoing the element's rotation.
func Contains(src FaceSource, e Element, px, py float64) bool {
	if e.Hidden {
		return false
	}
	l := LayoutOf(src, e)
	return l.Bounds.Expand(HitPadding).Contains(toLocal(l, e, geometry.Pt(px, py)))
}

// Corners returns the four handle centers in canvas coordinates: the padded
// bounds' corners rotated about the pivot.
func Corners(src FaceSource, e Element) [4]geometry.Point {
	return cornersOf(LayoutOf(src, e), e)
}

func cornersOf(l Layout, e Element) [4]geometry.Point {
	c := l.Bounds.Expand(HitPadding).Corners()
	if e.Rotation != 0 {
		pivot := l.Pivot()
		for i := range c {
			c[i] = c[i].RotateAbout(pivot, e.Rotation)
		}
	}
	return c
}

// HandleAt returns the handle under (px, py), if any. When handles overlap
// (tiny elements) the nearest one wins.
func HandleAt(src FaceSource, e Element, px, py float64) (Handle, bool) {
	if e.Hidden {
		return Handle{}, false
	}
	p := geometry.Pt(px, py)
	best, bestDist := -1, HandleRadius
	for i, c := range Corners(src, e) {
		if d := p.Distance(c); d <= bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return Handle{}, false
	}
	return Handle{Corner: Corner(best), Kind: HandleResize}, true
}

// Pick returns the ID of the topmost visible element containing (px, py).
func Pick(src FaceSource, elems []Element, px, py float64) (string, bool) {
	sorted := SortByZ(elems)
	for i := len(sorted) - 1; i >= 0; i-- {
		if Contains(src, sorted[i], px, py) {
			return sorted[i].ID, true
		}
	}
	return "", false
}
