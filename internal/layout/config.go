// Package layout computes where spliced images go on the output canvas.
//
// Layout runs in three passes: the natural size of the image strip, the
// canvas size chosen by the size policy, and the placement of the strip and
// each image inside it. All three are pure functions of the image sizes and
// the Config.
package layout

import (
	"github.com/AnyUserName/imgsplice/internal/colors"
	"github.com/AnyUserName/imgsplice/internal/errors"
	"github.com/AnyUserName/imgsplice/internal/geometry"
	"github.com/AnyUserName/imgsplice/internal/preset"
)

// Output canvas limits. A plan outside them is rejected before any buffer is
// allocated.
const (
	MaxCanvasSide   = 1 << 15
	MaxCanvasPixels = 1 << 28
)

// Direction is the axis images are concatenated along.
type Direction string

const (
	Horizontal Direction = "horizontal"
	Vertical   Direction = "vertical"
)

// Alignment positions content along one axis.
type Alignment string

const (
	Start  Alignment = "start"
	Center Alignment = "center"
	End    Alignment = "end"
)

// SizeMode selects the canvas size policy.
type SizeMode string

const (
	SizeAuto   SizeMode = "auto"
	SizePreset SizeMode = "preset"
	SizeCustom SizeMode = "custom"
)

// Padding is the space between the border and the content area.
type Padding struct {
	Top    float64 `json:"top" toml:"top"`
	Right  float64 `json:"right" toml:"right"`
	Bottom float64 `json:"bottom" toml:"bottom"`
	Left   float64 `json:"left" toml:"left"`
}

// Horizontal returns Left+Right.
func (p Padding) Horizontal() float64 { return p.Left + p.Right }

// Vertical returns Top+Bottom.
func (p Padding) Vertical() float64 { return p.Top + p.Bottom }

// Config is the splice configuration. It is a value: callers pass a
// snapshot and nothing here mutates it.
type Config struct {
	Direction       Direction `json:"direction" toml:"direction"`
	Spacing         float64   `json:"spacing" toml:"spacing"`
	HAlign          Alignment `json:"horizontal_alignment" toml:"horizontal_alignment"`
	VAlign          Alignment `json:"vertical_alignment" toml:"vertical_alignment"`
	BackgroundColor string    `json:"background_color" toml:"background_color"`
	BorderWidth     float64   `json:"border_width" toml:"border_width"`
	BorderColor     string    `json:"border_color" toml:"border_color"`
	BorderRadius    float64   `json:"border_radius" toml:"border_radius"`
	Padding         Padding   `json:"padding" toml:"padding"`

	SizeMode     SizeMode           `json:"canvas_size_mode" toml:"canvas_size_mode"`
	PresetName   string             `json:"preset,omitempty" toml:"preset"`
	Orientation  preset.Orientation `json:"orientation,omitempty" toml:"orientation"`
	CustomWidth  int                `json:"custom_width,omitempty" toml:"custom_width"`
	CustomHeight int                `json:"custom_height,omitempty" toml:"custom_height"`
}

// DefaultConfig returns a horizontal, centered, auto-sized config on white.
func DefaultConfig() Config {
	return Config{
		Direction:       Horizontal,
		HAlign:          Center,
		VAlign:          Center,
		BackgroundColor: "#ffffff",
		BorderColor:     "#000000",
		SizeMode:        SizeAuto,
		Orientation:     preset.Landscape,
	}
}

// Presets resolves preset names. *preset.Table implements it.
type Presets interface {
	Lookup(name string, o preset.Orientation) (preset.Preset, bool)
}

// Validate rejects configs that cannot be laid out. presets may be nil when
// the config is not in preset mode.
func (c Config) Validate(presets Presets) error {
	invalid := func(format string, args ...any) error {
		return errors.New(errors.ErrCodeInvalidConfig, format, args...)
	}

	switch c.Direction {
	case Horizontal, Vertical:
	default:
		return invalid("unknown direction %q", c.Direction)
	}
	for _, a := range []Alignment{c.HAlign, c.VAlign} {
		switch a {
		case Start, Center, End:
		default:
			return invalid("unknown alignment %q", a)
		}
	}
	p := c.Padding
	if !geometry.Finite(c.Spacing, c.BorderWidth, c.BorderRadius, p.Top, p.Right, p.Bottom, p.Left) {
		return invalid("spacing, border and padding must be finite numbers")
	}
	if c.Spacing < 0 {
		return invalid("spacing must be >= 0, got %v", c.Spacing)
	}
	if c.BorderWidth < 0 || c.BorderRadius < 0 {
		return invalid("border width and radius must be >= 0")
	}
	if p.Top < 0 || p.Right < 0 || p.Bottom < 0 || p.Left < 0 {
		return invalid("padding must be >= 0, got %+v", p)
	}
	if _, err := colors.Parse(c.BackgroundColor); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "background color")
	}
	if c.BorderWidth > 0 {
		if _, err := colors.Parse(c.BorderColor); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "border color")
		}
	}
	if !preset.ValidOrientation(c.Orientation) {
		return invalid("unknown orientation %q", c.Orientation)
	}

	switch c.SizeMode {
	case SizeAuto:
	case SizePreset:
		if c.PresetName == "" {
			return invalid("preset mode requires a preset name")
		}
		if presets == nil {
			return invalid("preset %q: no preset table", c.PresetName)
		}
		if _, ok := presets.Lookup(c.PresetName, c.Orientation); !ok {
			return invalid("unknown preset %q", c.PresetName)
		}
	case SizeCustom:
		if c.CustomWidth <= 0 || c.CustomHeight <= 0 {
			return invalid("custom size must be positive, got %dx%d", c.CustomWidth, c.CustomHeight)
		}
		if c.CustomWidth > MaxCanvasSide || c.CustomHeight > MaxCanvasSide {
			return invalid("custom size %dx%d exceeds %d pixels per side", c.CustomWidth, c.CustomHeight, MaxCanvasSide)
		}
		if float64(c.CustomWidth) <= 2*c.BorderWidth+p.Horizontal() ||
			float64(c.CustomHeight) <= 2*c.BorderWidth+p.Vertical() {
			return invalid("custom size %dx%d leaves no room inside border and padding",
				c.CustomWidth, c.CustomHeight)
		}
	default:
		return invalid("unknown canvas size mode %q", c.SizeMode)
	}
	if c.SizeMode != SizeCustom && (c.CustomWidth != 0 || c.CustomHeight != 0) {
		return invalid("custom_width/custom_height set but canvas size mode is %q", c.SizeMode)
	}
	return nil
}
