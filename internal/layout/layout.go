package layout

import (
	"math"

	"github.com/AnyUserName/imgsplice/internal/errors"
	"github.com/AnyUserName/imgsplice/internal/geometry"
)

// Dim is the pixel size of one source image.
type Dim struct {
	W int `json:"width"`
	H int `json:"height"`
}

// Plan is the complete placement for one composition.
type Plan struct {
	// Width and Height are the output buffer size in pixels.
	Width  int `json:"width"`
	Height int `json:"height"`
	// Natural is the image strip's own size; Resolved is the size after the
	// canvas size policy, before padding and border.
	Natural  geometry.Size `json:"natural"`
	Resolved geometry.Size `json:"resolved"`
	// Content is the area inside border and padding.
	Content geometry.Rect `json:"content"`
	// Group is the top-left of the image strip.
	Group geometry.Point `json:"group"`
	// Positions holds each image's top-left, in input order.
	Positions []geometry.Point `json:"positions"`
}

// NaturalSize returns the strip size: along the splice direction the sizes
// plus spacing add up, across it the largest image wins.
func NaturalSize(dims []Dim, cfg Config) geometry.Size {
	if len(dims) == 0 {
		return geometry.Size{}
	}
	var along, across float64
	for _, d := range dims {
		main, cross := float64(d.W), float64(d.H)
		if cfg.Direction == Vertical {
			main, cross = cross, main
		}
		along += main
		across = math.Max(across, cross)
	}
	along += cfg.Spacing * float64(len(dims)-1)

	if cfg.Direction == Vertical {
		return geometry.Size{W: across, H: along}
	}
	return geometry.Size{W: along, H: across}
}

// ResolveCanvasSize applies the size policy to the natural size.
//
//   - custom: the configured size, verbatim
//   - preset: the short side grows until the preset ratio holds; content is
//     never cropped
//   - auto:   natural, unchanged
func ResolveCanvasSize(natural geometry.Size, cfg Config, presets Presets) (geometry.Size, error) {
	switch cfg.SizeMode {
	case SizeCustom:
		return geometry.Size{W: float64(cfg.CustomWidth), H: float64(cfg.CustomHeight)}, nil
	case SizePreset:
		if presets == nil {
			return geometry.Size{}, errors.New(errors.ErrCodeInvalidConfig, "preset %q: no preset table", cfg.PresetName)
		}
		p, ok := presets.Lookup(cfg.PresetName, cfg.Orientation)
		if !ok {
			return geometry.Size{}, errors.New(errors.ErrCodeInvalidConfig, "unknown preset %q", cfg.PresetName)
		}
		if natural.W <= 0 || natural.H <= 0 {
			return geometry.Size{}, errors.New(errors.ErrCodeInvalidInput, "natural size %vx%v is empty", natural.W, natural.H)
		}
		target := p.Ratio()
		if natural.W/natural.H > target {
			return geometry.Size{W: natural.W, H: natural.W / target}, nil
		}
		return geometry.Size{W: natural.H * target, H: natural.H}, nil
	default:
		return natural, nil
	}
}

// align returns the offset of a span of length inner inside outer.
func align(a Alignment, outer, inner float64) float64 {
	switch a {
	case Center:
		return (outer - inner) / 2
	case End:
		return outer - inner
	default:
		return 0
	}
}

// PlaceImages positions the strip inside content, then each image inside the
// strip: the main axis advances by size+spacing, the cross axis follows the
// alignment for that axis against the strip's span.
func PlaceImages(dims []Dim, cfg Config, content geometry.Rect) (geometry.Point, []geometry.Point) {
	natural := NaturalSize(dims, cfg)
	group := geometry.Pt(
		content.X+align(cfg.HAlign, content.Width, natural.W),
		content.Y+align(cfg.VAlign, content.Height, natural.H),
	)

	out := make([]geometry.Point, len(dims))
	cursor := group
	for i, d := range dims {
		w, h := float64(d.W), float64(d.H)
		if cfg.Direction == Vertical {
			out[i] = geometry.Pt(group.X+align(cfg.HAlign, natural.W, w), cursor.Y)
			cursor.Y += h + cfg.Spacing
		} else {
			out[i] = geometry.Pt(cursor.X, group.Y+align(cfg.VAlign, natural.H, h))
			cursor.X += w + cfg.Spacing
		}
	}
	return group, out
}

// Compute validates the inputs and returns the full plan.
func Compute(dims []Dim, cfg Config, presets Presets) (Plan, error) {
	if len(dims) == 0 {
		return Plan{}, errors.New(errors.ErrCodeInvalidInput, "no images to splice")
	}
	for i, d := range dims {
		if d.W <= 0 || d.H <= 0 {
			return Plan{}, errors.New(errors.ErrCodeInvalidInput, "image %d has invalid size %dx%d", i, d.W, d.H)
		}
	}
	if err := cfg.Validate(presets); err != nil {
		return Plan{}, err
	}

	natural := NaturalSize(dims, cfg)
	resolved, err := ResolveCanvasSize(natural, cfg, presets)
	if err != nil {
		return Plan{}, err
	}

	b, pad := cfg.BorderWidth, cfg.Padding
	plan := Plan{Natural: natural, Resolved: resolved}
	if cfg.SizeMode == SizeCustom {
		plan.Width, plan.Height = cfg.CustomWidth, cfg.CustomHeight
		plan.Content = geometry.Rect{
			X:      b + pad.Left,
			Y:      b + pad.Top,
			Width:  resolved.W - 2*b - pad.Horizontal(),
			Height: resolved.H - 2*b - pad.Vertical(),
		}
	} else {
		w, h := resolved.W+pad.Horizontal()+2*b, resolved.H+pad.Vertical()+2*b
		if !geometry.Finite(w, h) || w > MaxCanvasSide || h > MaxCanvasSide {
			return Plan{}, errors.New(errors.ErrCodeInvalidConfig,
				"canvas %.0fx%.0f exceeds %d pixels per side", w, h, MaxCanvasSide)
		}
		plan.Width, plan.Height = pixels(w), pixels(h)
		plan.Content = geometry.Rect{X: b + pad.Left, Y: b + pad.Top, Width: resolved.W, Height: resolved.H}
	}

	if plan.Width <= 0 || plan.Height <= 0 {
		return Plan{}, errors.New(errors.ErrCodeInvalidConfig, "canvas %dx%d is empty", plan.Width, plan.Height)
	}
	if int64(plan.Width)*int64(plan.Height) > MaxCanvasPixels {
		return Plan{}, errors.New(errors.ErrCodeInvalidConfig,
			"canvas %dx%d exceeds %d pixels", plan.Width, plan.Height, MaxCanvasPixels)
	}

	plan.Group, plan.Positions = PlaceImages(dims, cfg, plan.Content)
	return plan, nil
}

// pixels rounds a float extent up to whole pixels, ignoring float noise.
func pixels(v float64) int {
	return int(math.Ceil(v - 1e-9))
}
