package text

import (
	"math"
	"testing"

	"golang.org/x/image/font"

	"github.com/AnyUserName/imgsplice/internal/fonts"
	"github.com/AnyUserName/imgsplice/internal/geometry"
)

func newLib(t testing.TB) *fonts.Library {
	t.Helper()
	lib, err := fonts.NewLibrary()
	if err != nil {
		t.Fatalf("fonts: %v", err)
	}
	return lib
}

func sample(text string, align Align, rot float64) Element {
	return Element{
		ID: "t1", Text: text, X: 200, Y: 150, FontSize: 24,
		FontFamily: "Go", Color: "#000000", Align: align,
		Rotation: rot, Opacity: 1, ZIndex: 1,
	}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func lineWidth(t *testing.T, lib *fonts.Library, e Element, s string) float64 {
	face, err := lib.Face(e.FontFamily, e.Bold, e.Italic, e.FontSize)
	if err != nil {
		t.Fatal(err)
	}
	defer face.Close()
	return float64(font.MeasureString(face, s)) / 64
}

func TestMeasureMultiLine(t *testing.T) {
	lib := newLib(t)
	e := sample("AB\nCDE", AlignLeft, 0)
	e.FontSize = 20

	got := Measure(lib, e)
	if !near(got.H, 48) {
		t.Errorf("height = %v, want 48", got.H)
	}
	want := math.Max(lineWidth(t, lib, e, "AB"), lineWidth(t, lib, e, "CDE"))
	if got.W != want || want <= 0 {
		t.Errorf("width = %v, want %v", got.W, want)
	}
}

func TestMeasureDegenerate(t *testing.T) {
	lib := newLib(t)
	e := sample("", AlignLeft, 0)
	got := Measure(lib, e)
	if got.W != 0 || !near(got.H, 24*LineHeight) {
		t.Errorf("empty text = %+v", got)
	}

	e.Text = "\n\n"
	if got := Measure(lib, e); got.W != 0 || !near(got.H, 3*24*LineHeight) {
		t.Errorf("blank lines = %+v", got)
	}

	e.Text = "abc"
	e.FontSize = 0
	if got := Measure(lib, e); got.W != 0 || got.H != 0 {
		t.Errorf("zero font size = %+v", got)
	}
}

func TestMeasureStyleAffectsWidth(t *testing.T) {
	lib := newLib(t)
	plain := sample("Hello world", AlignLeft, 0)
	bold := plain
	bold.Bold = true
	if Measure(lib, plain).W == Measure(lib, bold).W {
		t.Error("bold text measured the same as regular")
	}
}

func TestBoundsOrigin(t *testing.T) {
	lib := newLib(t)
	for _, tt := range []struct {
		align Align
		dx    float64 // origin x relative to anchor, in widths
	}{
		{AlignLeft, 0},
		{"", 0},
		{AlignCenter, -0.5},
		{AlignRight, -1},
	} {
		e := sample("Spliced\nimages", tt.align, 0)
		b := Bounds(lib, e)
		w := Measure(lib, e).W
		if !near(b.X, e.X+tt.dx*w) {
			t.Errorf("%q: x = %v, want %v", tt.align, b.X, e.X+tt.dx*w)
		}
		if b.Y != e.Y-e.FontSize {
			t.Errorf("%q: y = %v, want %v", tt.align, b.Y, e.Y-e.FontSize)
		}
	}
}

func TestBaselinesFollowAlignment(t *testing.T) {
	lib := newLib(t)
	e := sample("wide line\nx", AlignRight, 0)
	l := LayoutOf(lib, e)
	for i := range l.Lines {
		p := l.Baseline(e, i)
		if !near(p.X+l.LineWidths[i], e.X) {
			t.Errorf("line %d right edge %v, want %v", i, p.X+l.LineWidths[i], e.X)
		}
		if !near(p.Y, e.Y+float64(i)*e.FontSize*LineHeight) {
			t.Errorf("line %d baseline y %v", i, p.Y)
		}
	}
}

// localToCanvas places a point given in the element's unrotated frame.
func localToCanvas(lib *fonts.Library, e Element, p geometry.Point) geometry.Point {
	return p.RotateAbout(Bounds(lib, e).Center(), e.Rotation)
}

func TestContainsAgreesWithBounds(t *testing.T) {
	lib := newLib(t)
	for _, rot := range []float64{0, 30, 90, 181, -45} {
		for _, align := range []Align{AlignLeft, AlignCenter, AlignRight} {
			e := sample("Hit me\nplease", align, rot)
			b := Bounds(lib, e)

			for _, fx := range []float64{0.02, 0.25, 0.5, 0.75, 0.98} {
				for _, fy := range []float64{0.02, 0.5, 0.98} {
					p := localToCanvas(lib, e, geometry.Pt(b.X+fx*b.Width, b.Y+fy*b.Height))
					if !Contains(lib, e, p.X, p.Y) {
						t.Errorf("rot %v %s: inside point (%.2f,%.2f) missed", rot, align, fx, fy)
					}
				}
			}

			margin := HitPadding + 1
			outside := []geometry.Point{
				{X: b.X - margin, Y: b.Y + b.Height/2},
				{X: b.X + b.Width + margin, Y: b.Y + b.Height/2},
				{X: b.X + b.Width/2, Y: b.Y - margin},
				{X: b.X + b.Width/2, Y: b.Y + b.Height + margin},
				{X: b.X - margin, Y: b.Y - margin},
			}
			for _, lp := range outside {
				p := localToCanvas(lib, e, lp)
				if Contains(lib, e, p.X, p.Y) {
					t.Errorf("rot %v %s: outside point %v hit", rot, align, lp)
				}
			}
		}
	}
}

func TestContainsTolerance(t *testing.T) {
	lib := newLib(t)
	e := sample("edge", AlignLeft, 0)
	b := Bounds(lib, e)
	if !Contains(lib, e, b.X-HitPadding+0.5, b.Y) {
		t.Error("point within padding missed")
	}
	e.Hidden = true
	if Contains(lib, e, b.X+1, b.Y+1) {
		t.Error("hidden element was hit")
	}
}

func TestHandleAt(t *testing.T) {
	lib := newLib(t)
	for _, rot := range []float64{0, 30, 90, 181, -45} {
		e := sample("Handles", AlignCenter, rot)
		corners := Corners(lib, e)
		for i, c := range corners {
			h, ok := HandleAt(lib, e, c.X+3, c.Y-3)
			if !ok {
				t.Errorf("rot %v: corner %d not hit", rot, i)
				continue
			}
			if h.Corner != Corner(i) || h.Kind != HandleResize {
				t.Errorf("rot %v: got %+v, want corner %d", rot, h, i)
			}
		}
		center := Bounds(lib, e).Center()
		if _, ok := HandleAt(lib, e, center.X, center.Y); ok {
			t.Errorf("rot %v: center hit a handle", rot)
		}
	}
}

func TestCornersMatchPaddedBounds(t *testing.T) {
	lib := newLib(t)
	e := sample("Frame", AlignLeft, 0)
	want := Bounds(lib, e).Expand(HitPadding).Corners()
	if got := Corners(lib, e); got != want {
		t.Errorf("Corners() = %v, want %v", got, want)
	}
}

func TestResizeKeepsOppositeCorner(t *testing.T) {
	lib := newLib(t)
	drags := []geometry.Point{{X: 30, Y: 12}, {X: -15, Y: -6}, {X: 40, Y: -40}}
	for _, rot := range []float64{0, 30, -45} {
		for _, align := range []Align{AlignLeft, AlignCenter, AlignRight} {
			e := sample("Resize\nfrom corners", align, rot)
			before := rotatedCorners(lib, e)
			for c := TopLeft; c <= BottomLeft; c++ {
				for _, d := range drags {
					out := Resize(lib, e, c, d.X, d.Y)
					after := rotatedCorners(lib, out)
					opp := c.Opposite()
					if !near(after[opp].X, before[opp].X) || !near(after[opp].Y, before[opp].Y) {
						t.Errorf("rot %v %s corner %d drag %v: opposite moved %v -> %v",
							rot, align, c, d, before[opp], after[opp])
					}
					if out.Rotation != e.Rotation || out.Align != e.Align || out.Text != e.Text {
						t.Errorf("resize changed unrelated fields: %+v", out)
					}
				}
			}
		}
	}
}

func TestResizeScalesFont(t *testing.T) {
	lib := newLib(t)
	e := sample("Grow", AlignLeft, 0)
	b := Bounds(lib, e)

	grown := Resize(lib, e, BottomRight, b.Width, b.Height)
	if !near(grown.FontSize, 2*e.FontSize) {
		t.Errorf("doubling drag: font size %v, want %v", grown.FontSize, 2*e.FontSize)
	}

	shrunk := Resize(lib, e, TopLeft, b.Width*2, b.Height*2)
	if shrunk.FontSize != MinFontSize {
		t.Errorf("collapse drag: font size %v, want %v", shrunk.FontSize, MinFontSize)
	}

	huge := Resize(lib, e, BottomRight, b.Width*1e6, b.Height*1e6)
	if huge.FontSize != MaxFontSize {
		t.Errorf("huge drag: font size %v, want %v", huge.FontSize, MaxFontSize)
	}
	if err := huge.Validate(); err != nil {
		t.Errorf("resized element invalid: %v", err)
	}
}

func rotatedCorners(lib *fonts.Library, e Element) [4]geometry.Point {
	b := Bounds(lib, e)
	c := b.Corners()
	for i := range c {
		c[i] = c[i].RotateAbout(b.Center(), e.Rotation)
	}
	return c
}

func TestPivotIsBoundsCenter(t *testing.T) {
	lib := newLib(t)
	for _, lines := range []string{"one", "one\ntwo\nthree"} {
		e := sample(lines, AlignRight, 30)
		l := LayoutOf(lib, e)
		p := l.Pivot()
		// The box starts one font size above the first baseline.
		wantY := e.Y - e.FontSize + l.Size.H/2
		if !near(p.Y, wantY) || !near(p.X, l.Bounds.X+l.Size.W/2) {
			t.Errorf("%q: pivot %v, want (%v, %v)", lines, p, l.Bounds.X+l.Size.W/2, wantY)
		}
		// A point just inside the far corner of the rotated box must hit.
		far := l.Bounds.Corners()[BottomRight].Sub(geometry.Pt(1, 1)).RotateAbout(p, e.Rotation)
		if !Contains(lib, e, far.X, far.Y) {
			t.Errorf("%q: rotated bottom-right corner missed", lines)
		}
	}
}

func TestPickTopmost(t *testing.T) {
	lib := newLib(t)
	low := sample("overlap", AlignLeft, 0)
	low.ID, low.ZIndex = "low", 1
	high := low
	high.ID, high.ZIndex = "high", 5
	b := Bounds(lib, low).Center()

	if id, ok := Pick(lib, []Element{high, low}, b.X, b.Y); !ok || id != "high" {
		t.Errorf("Pick() = %q, %v", id, ok)
	}
	high.Hidden = true
	if id, _ := Pick(lib, []Element{high, low}, b.X, b.Y); id != "low" {
		t.Errorf("Pick() with hidden top = %q", id)
	}
	if _, ok := Pick(lib, []Element{low}, -500, -500); ok {
		t.Error("Pick() hit empty space")
	}
}

func TestValidate(t *testing.T) {
	good := sample("ok", AlignLeft, 0)
	if err := good.Validate(); err != nil {
		t.Fatalf("valid element: %v", err)
	}
	for name, mut := range map[string]func(*Element){
		"zero size": func(e *Element) { e.FontSize = 0 },
		"opacity":   func(e *Element) { e.Opacity = 1.5 },
		"align":     func(e *Element) { e.Align = "justify" },
		"color":     func(e *Element) { e.Color = "#zzz" },
		"nan x":     func(e *Element) { e.X = math.NaN() },
		"inf y":     func(e *Element) { e.Y = math.Inf(-1) },
		"nan size":  func(e *Element) { e.FontSize = math.NaN() },
		"inf size":  func(e *Element) { e.FontSize = math.Inf(1) },
		"huge size": func(e *Element) { e.FontSize = MaxFontSize + 1 },
		"nan turn":  func(e *Element) { e.Rotation = math.NaN() },
		"nan alpha": func(e *Element) { e.Opacity = math.NaN() },
	} {
		e := good
		mut(&e)
		if err := e.Validate(); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
