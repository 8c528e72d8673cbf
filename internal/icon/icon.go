// Package icon models the shape overlays drawn above the spliced images.
//
// An icon occupies a Size x Size box with its top-left at (X, Y) and rotates
// about the center of that box.
package icon

import (
	"fmt"

	"github.com/AnyUserName/imgsplice/internal/colors"
	"github.com/AnyUserName/imgsplice/internal/errors"
	"github.com/AnyUserName/imgsplice/internal/geometry"
	"github.com/AnyUserName/imgsplice/internal/layer"
)

// MaxSize bounds the box a render will rasterize.
const MaxSize = 4096.0

// Shape is what an icon draws inside its box.
type Shape string

const (
	Circle Shape = "circle"
	Square Shape = "square"
)

// Icon is one shape overlay.
type Icon struct {
	ID       string  `json:"id" toml:"id"`
	Shape    Shape   `json:"shape" toml:"shape"`
	X        float64 `json:"x" toml:"x"`
	Y        float64 `json:"y" toml:"y"`
	Size     float64 `json:"size" toml:"size"`
	Color    string  `json:"color" toml:"color"`
	Rotation float64 `json:"rotation" toml:"rotation"` // degrees, clockwise
	Opacity  float64 `json:"opacity" toml:"opacity"`
	ZIndex   int     `json:"z_index" toml:"z_index"`
	Hidden   bool    `json:"hidden,omitempty" toml:"hidden"`
}

// Validate checks the fields the renderer cannot draw without.
func (ic Icon) Validate() error {
	if !geometry.Finite(ic.X, ic.Y, ic.Size, ic.Rotation, ic.Opacity) {
		return errors.New(errors.ErrCodeInvalidInput, "icon %q: position, size, rotation and opacity must be finite", ic.ID)
	}
	if ic.Size <= 0 || ic.Size > MaxSize {
		return errors.New(errors.ErrCodeInvalidInput, "icon %q: size %v outside (0, %v]", ic.ID, ic.Size, MaxSize)
	}
	if ic.Opacity < 0 || ic.Opacity > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "icon %q: opacity %v outside [0, 1]", ic.ID, ic.Opacity)
	}
	switch ic.Shape {
	case Circle, Square, "":
	default:
		return errors.New(errors.ErrCodeInvalidInput, "icon %q: unknown shape %q", ic.ID, ic.Shape)
	}
	if _, err := colors.Parse(ic.Color); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "icon %q", ic.ID)
	}
	return nil
}

func (ic Icon) String() string {
	return fmt.Sprintf("icon %q (%s %.1f,%.1f %.1fpx rot %.1f)", ic.ID, ic.ResolvedShape(), ic.X, ic.Y, ic.Size, ic.Rotation)
}

// ResolvedShape returns the shape to draw, Circle when unset.
func (ic Icon) ResolvedShape() Shape {
	if ic.Shape == "" {
		return Circle
	}
	return ic.Shape
}

// Bounds is the unrotated box.
func (ic Icon) Bounds() geometry.Rect {
	return geometry.Rect{X: ic.X, Y: ic.Y, Width: ic.Size, Height: ic.Size}
}

// Pivot is the rotation center.
func (ic Icon) Pivot() geometry.Point {
	return ic.Bounds().Center()
}

// Contains reports whether the canvas point lies on the drawn shape.
func (ic Icon) Contains(px, py float64) bool {
	c := ic.Pivot()
	p := geometry.Pt(px, py)
	if ic.ResolvedShape() == Circle {
		return p.Distance(c) <= ic.Size/2
	}
	return ic.Bounds().Contains(p.RotateAbout(c, -ic.Rotation))
}

// LayerID implements layer.Item.
func (ic Icon) LayerID() string { return ic.ID }

// Z implements layer.Item.
func (ic Icon) Z() int { return ic.ZIndex }

// WithZ implements layer.Item.
func (ic Icon) WithZ(z int) Icon {
	ic.ZIndex = z
	return ic
}

// SortByZ returns a copy of icons in ascending ZIndex.
func SortByZ(icons []Icon) []Icon {
	return layer.Sort(icons)
}

// Reorder applies op to the icon with the given id and renumbers the z
// indices 1..n.
func Reorder(icons []Icon, id string, op layer.Op) ([]Icon, bool) {
	return layer.Reorder(icons, id, op)
}
