package preset

import (
	"fmt"
	"sort"
	"strings"
)

// Category groups presets in listings.
type Category string

const (
	CategoryRatio  Category = "ratio"
	CategoryPaper  Category = "paper"
	CategoryCustom Category = "custom"
)

// Orientation selects which axis of a preset is the long one.
type Orientation string

const (
	Landscape Orientation = "landscape"
	Portrait  Orientation = "portrait"
)

// Preset is a named canvas size. Only the ratio Width/Height constrains the
// output; the absolute size is informational.
type Preset struct {
	Name     string
	Label    string
	Width    int
	Height   int
	Category Category
	// base orientation the Width/Height above are written in
	base Orientation
}

// Built-in presets. Ratios are written landscape, papers portrait
// (at 300 DPI).
var builtin = []Preset{
	{Name: "1:1", Label: "Square", Width: 1000, Height: 1000, Category: CategoryRatio, base: Landscape},
	{Name: "4:3", Label: "Classic", Width: 1200, Height: 900, Category: CategoryRatio, base: Landscape},
	{Name: "3:2", Label: "Camera", Width: 1200, Height: 800, Category: CategoryRatio, base: Landscape},
	{Name: "16:9", Label: "Widescreen", Width: 1600, Height: 900, Category: CategoryRatio, base: Landscape},
	{Name: "16:10", Label: "Widescreen", Width: 1600, Height: 1000, Category: CategoryRatio, base: Landscape},
	{Name: "21:9", Label: "Ultrawide", Width: 2100, Height: 900, Category: CategoryRatio, base: Landscape},
	{Name: "A4", Label: "A4 (210x297mm)", Width: 2480, Height: 3508, Category: CategoryPaper, base: Portrait},
	{Name: "16K", Label: "16K (195x270mm)", Width: 2303, Height: 3189, Category: CategoryPaper, base: Portrait},
	{Name: "Letter", Label: "Letter (8.5x11in)", Width: 2550, Height: 3300, Category: CategoryPaper, base: Portrait},
	{Name: "Legal", Label: "Legal (8.5x14in)", Width: 2550, Height: 4200, Category: CategoryPaper, base: Portrait},
}

// Table maps {name, orientation} to a concrete size.
type Table struct {
	order   []string
	presets map[string]Preset
}

// Default returns a table holding the built-in presets.
func Default() *Table {
	t := &Table{presets: make(map[string]Preset)}
	for _, p := range builtin {
		t.add(p)
	}
	return t
}

func (t *Table) add(p Preset) {
	key := strings.ToLower(p.Name)
	if _, ok := t.presets[key]; !ok {
		t.order = append(t.order, key)
	}
	t.presets[key] = p
}

// Add registers a custom preset written in landscape orientation.
func (t *Table) Add(name string, width, height int) error {
	if name == "" || width <= 0 || height <= 0 {
		return fmt.Errorf("preset %q: invalid size %dx%d", name, width, height)
	}
	t.add(Preset{Name: name, Label: name, Width: width, Height: height, Category: CategoryCustom, base: Landscape})
	return nil
}

// Lookup returns the named preset in orientation o. Names are matched
// case-insensitively. An empty orientation keeps the preset's own.
func (t *Table) Lookup(name string, o Orientation) (Preset, bool) {
	p, ok := t.presets[strings.ToLower(name)]
	if !ok {
		return Preset{}, false
	}
	return p.Oriented(o), true
}

// List returns every preset in orientation o, ratios first then papers then
// custom entries, each in registration order.
func (t *Table) List(o Orientation) []Preset {
	out := make([]Preset, 0, len(t.order))
	for _, key := range t.order {
		out = append(out, t.presets[key].Oriented(o))
	}
	rank := map[Category]int{CategoryRatio: 0, CategoryPaper: 1, CategoryCustom: 2}
	sort.SliceStable(out, func(i, j int) bool { return rank[out[i].Category] < rank[out[j].Category] })
	return out
}

// Oriented swaps the axes when o differs from the preset's base orientation.
func (p Preset) Oriented(o Orientation) Preset {
	if o == "" || o == p.base {
		return p
	}
	p.Width, p.Height = p.Height, p.Width
	p.base = o
	return p
}

// Orientation reports the orientation the preset is currently expressed in.
func (p Preset) Orientation() Orientation {
	return p.base
}

// Ratio returns Width/Height.
func (p Preset) Ratio() float64 {
	return float64(p.Width) / float64(p.Height)
}

// RatioLabel returns the reduced "W:H" form, e.g. "16:9" or "2480:3508"
// reduced to "620:877".
func (p Preset) RatioLabel() string {
	g := gcd(p.Width, p.Height)
	if g == 0 {
		return "0:0"
	}
	return fmt.Sprintf("%d:%d", p.Width/g, p.Height/g)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// ValidOrientation reports whether o is empty or a known orientation.
func ValidOrientation(o Orientation) bool {
	return o == "" || o == Landscape || o == Portrait
}
