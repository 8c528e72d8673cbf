// Package render draws a composition onto a fresh pixel buffer.
//
// The drawing order is fixed: rounded clip, background, border, images in
// list order, then the overlays (texts and icons) in ascending z order with
// an optional selection frame. At equal z, texts draw before icons. Every call allocates its own canvas and shares nothing with other
// calls, so concurrent renders are independent.
package render

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/AnyUserName/imgsplice/internal/colors"
	"github.com/AnyUserName/imgsplice/internal/errors"
	"github.com/AnyUserName/imgsplice/internal/geometry"
	"github.com/AnyUserName/imgsplice/internal/icon"
	"github.com/AnyUserName/imgsplice/internal/layer"
	"github.com/AnyUserName/imgsplice/internal/layout"
	"github.com/AnyUserName/imgsplice/internal/source"
	"github.com/AnyUserName/imgsplice/internal/text"
)

// Selection frame styling.
var (
	selectionColor   = color.NRGBA{R: 0x25, G: 0x63, B: 0xeb, A: 0xff}
	handleFill       = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	selectionDash    = []float64{6, 4}
	selectionLine    = 1.5
	handleDrawRadius = 5.0
)

// Input is an immutable snapshot of everything one render needs.
type Input struct {
	Fonts   text.FaceSource
	Presets layout.Presets
	Images  []source.Image
	Config  layout.Config
	Texts   []text.Element
	Icons   []icon.Icon
	// Selection is the ID of the text element to decorate, if any.
	Selection string
}

// Result is a finished composition.
type Result struct {
	Image *image.RGBA
	Plan  layout.Plan
}

// Render validates in and draws it. Nothing is drawn when validation fails.
func Render(in Input) (*image.RGBA, error) {
	res, err := Compose(in)
	if err != nil {
		return nil, err
	}
	return res.Image, nil
}

// Compose is Render that also returns the layout plan it drew.
func Compose(in Input) (*Result, error) {
	if in.Fonts == nil {
		return nil, errors.New(errors.ErrCodeInternal, "render: no font source")
	}
	if len(in.Images) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no images to splice")
	}
	dims := make([]layout.Dim, len(in.Images))
	for i, img := range in.Images {
		if err := img.Validate(); err != nil {
			return nil, err
		}
		dims[i] = layout.Dim{W: img.Width, H: img.Height}
	}
	for _, e := range in.Texts {
		if err := e.Validate(); err != nil {
			return nil, err
		}
	}
	for _, ic := range in.Icons {
		if err := ic.Validate(); err != nil {
			return nil, err
		}
	}
	plan, err := layout.Compute(dims, in.Config, in.Presets)
	if err != nil {
		return nil, err
	}
	bg, err := colors.Parse(in.Config.BackgroundColor)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "background color")
	}

	dc := gg.NewContext(plan.Width, plan.Height)
	w, h := float64(plan.Width), float64(plan.Height)
	cfg := in.Config

	if cfg.BorderRadius > 0 {
		dc.DrawRoundedRectangle(0, 0, w, h, cfg.BorderRadius)
		dc.Clip()
	}

	dc.SetColor(bg)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()

	if bw := cfg.BorderWidth; bw > 0 {
		border, err := colors.Parse(cfg.BorderColor)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "border color")
		}
		dc.SetColor(border)
		dc.SetLineWidth(bw)
		if cfg.BorderRadius > 0 {
			dc.DrawRoundedRectangle(bw/2, bw/2, w-bw, h-bw, cfg.BorderRadius)
		} else {
			dc.DrawRectangle(bw/2, bw/2, w-bw, h-bw)
		}
		dc.Stroke()
	}

	for i, img := range in.Images {
		p := plan.Positions[i]
		dc.DrawImage(zeroOrigin(img.Raster), int(math.Round(p.X)), int(math.Round(p.Y)))
	}

	for _, o := range overlays(in) {
		switch {
		case o.txt != nil:
			e := *o.txt
			if err := drawText(dc, in.Fonts, e, e.ID == in.Selection && in.Selection != ""); err != nil {
				return nil, err
			}
		case o.ic != nil:
			if err := drawIcon(dc, *o.ic); err != nil {
				return nil, err
			}
		}
	}

	rgba, ok := dc.Image().(*image.RGBA)
	if !ok {
		return nil, errors.New(errors.ErrCodeInternal, "canvas is not RGBA")
	}
	return &Result{Image: rgba, Plan: plan}, nil
}

// overlay is one text or icon in the merged z order.
type overlay struct {
	z   int
	txt *text.Element
	ic  *icon.Icon
}

func (o overlay) LayerID() string {
	if o.txt != nil {
		return o.txt.ID
	}
	return o.ic.ID
}

func (o overlay) Z() int { return o.z }

func (o overlay) WithZ(z int) overlay {
	o.z = z
	return o
}

// overlays merges the visible texts and icons in drawing order.
func overlays(in Input) []overlay {
	out := make([]overlay, 0, len(in.Texts)+len(in.Icons))
	for i := range in.Texts {
		if !in.Texts[i].Hidden {
			out = append(out, overlay{z: in.Texts[i].ZIndex, txt: &in.Texts[i]})
		}
	}
	for i := range in.Icons {
		if !in.Icons[i].Hidden {
			out = append(out, overlay{z: in.Icons[i].ZIndex, ic: &in.Icons[i]})
		}
	}
	return layer.Sort(out)
}

// drawIcon fills the icon's shape, rotated about the center of its box.
func drawIcon(dc *gg.Context, ic icon.Icon) error {
	c, err := colors.Parse(ic.Color)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "icon %q", ic.ID)
	}

	dc.Push()
	defer dc.Pop()
	pivot := ic.Pivot()
	if ic.Rotation != 0 {
		dc.RotateAbout(geometry.Radians(ic.Rotation), pivot.X, pivot.Y)
	}
	dc.SetColor(colors.WithOpacity(c, ic.Opacity))
	switch ic.ResolvedShape() {
	case icon.Square:
		dc.DrawRectangle(ic.X, ic.Y, ic.Size, ic.Size)
	default:
		dc.DrawCircle(pivot.X, pivot.Y, ic.Size/2)
	}
	dc.Fill()
	return nil
}

// drawText draws e in its own frame: rotated about the layout pivot, each
// line aligned against the anchor on its own baseline.
func drawText(dc *gg.Context, src text.FaceSource, e text.Element, selected bool) error {
	l := text.LayoutOf(src, e)
	face, err := src.Face(e.FontFamily, e.Bold, e.Italic, e.FontSize)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "text %q", e.ID)
	}
	defer face.Close()
	c, err := colors.Parse(e.Color)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "text %q", e.ID)
	}

	dc.Push()
	defer dc.Pop()
	if e.Rotation != 0 {
		pivot := l.Pivot()
		dc.RotateAbout(geometry.Radians(e.Rotation), pivot.X, pivot.Y)
	}

	dc.SetFontFace(face)
	dc.SetColor(colors.WithOpacity(c, e.Opacity))
	for i, line := range l.Lines {
		if line == "" {
			continue
		}
		p := l.Baseline(e, i)
		dc.DrawString(line, p.X, p.Y)
	}

	if selected {
		drawSelection(dc, l.Bounds.Expand(text.HitPadding))
	}
	return nil
}

// drawSelection draws the dashed frame and corner handles. The corners are
// the same padded-bounds corners text.HandleAt tests against.
func drawSelection(dc *gg.Context, r geometry.Rect) {
	dc.SetColor(selectionColor)
	dc.SetLineWidth(selectionLine)
	dc.SetDash(selectionDash...)
	dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
	dc.Stroke()
	dc.SetDash()

	for _, c := range r.Corners() {
		dc.DrawCircle(c.X, c.Y, handleDrawRadius)
		dc.SetColor(handleFill)
		dc.FillPreserve()
		dc.SetColor(selectionColor)
		dc.Stroke()
	}
}

// zeroOrigin returns img with bounds starting at (0,0); the context places
// images by their bounds, so sub-images would otherwise shift.
func zeroOrigin(img image.Image) image.Image {
	if img.Bounds().Min == (image.Point{}) {
		return img
	}
	return imaging.Clone(img)
}
