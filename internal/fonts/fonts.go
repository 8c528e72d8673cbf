// Package fonts is the single source of font metrics for the compositor.
//
// Text measurement, hit-testing and rendering all obtain their faces here,
// with the same family resolution and the same hinting, so the measured box
// of a text element always matches the glyphs the renderer draws.
//
// A Library holds parsed font data only. Faces are created per call and are
// never shared between goroutines; the parsed fonts are read-only after the
// library is built.
package fonts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// DefaultFamily is used for empty and unknown family names.
const DefaultFamily = "Go"

// MonoFamily is the built-in monospace family.
const MonoFamily = "Go Mono"

// Family groups the four style variants of one typeface. Missing variants
// fall back to Regular.
type Family struct {
	Name       string
	Regular    *opentype.Font
	Bold       *opentype.Font
	Italic     *opentype.Font
	BoldItalic *opentype.Font
}

func (f *Family) variant(bold, italic bool) *opentype.Font {
	var v *opentype.Font
	switch {
	case bold && italic:
		v = f.BoldItalic
	case bold:
		v = f.Bold
	case italic:
		v = f.Italic
	}
	if v == nil {
		return f.Regular
	}
	return v
}

// Library resolves family names to parsed fonts.
type Library struct {
	families map[string]*Family
	aliases  map[string]string
}

// builtinAliases maps common CSS family names onto the embedded Go fonts.
var builtinAliases = map[string]string{
	"sans-serif":      DefaultFamily,
	"serif":           DefaultFamily,
	"system-ui":       DefaultFamily,
	"arial":           DefaultFamily,
	"helvetica":       DefaultFamily,
	"microsoft yahei": DefaultFamily,
	"go regular":      DefaultFamily,
	"monospace":       MonoFamily,
	"courier":         MonoFamily,
	"courier new":     MonoFamily,
}

// NewLibrary returns a library holding the embedded Go font families.
func NewLibrary() (*Library, error) {
	l := &Library{
		families: make(map[string]*Family),
		aliases:  make(map[string]string),
	}
	for k, v := range builtinAliases {
		l.aliases[k] = v
	}

	goFam, err := parseFamily(DefaultFamily, goregular.TTF, gobold.TTF, goitalic.TTF, gobolditalic.TTF)
	if err != nil {
		return nil, err
	}
	monoFam, err := parseFamily(MonoFamily, gomono.TTF, gomonobold.TTF, gomonoitalic.TTF, gomonobolditalic.TTF)
	if err != nil {
		return nil, err
	}
	l.Add(goFam)
	l.Add(monoFam)
	return l, nil
}

func parseFamily(name string, regular, bold, italic, boldItalic []byte) (*Family, error) {
	fam := &Family{Name: name}
	for _, v := range []struct {
		dst  **opentype.Font
		data []byte
	}{
		{&fam.Regular, regular},
		{&fam.Bold, bold},
		{&fam.Italic, italic},
		{&fam.BoldItalic, boldItalic},
	} {
		f, err := opentype.Parse(v.data)
		if err != nil {
			return nil, fmt.Errorf("parse font %s: %w", name, err)
		}
		*v.dst = f
	}
	return fam, nil
}

// Add registers (or replaces) a family.
func (l *Library) Add(f *Family) {
	l.families[strings.ToLower(f.Name)] = f
}

// styleSuffixes are checked longest first so "-BoldItalic" wins over "-Italic".
var styleSuffixes = []string{"-bolditalic", "-boldoblique", "-bold", "-italic", "-oblique", "-regular"}

// LoadDir registers every .ttf/.otf file in dir. The family name is the file
// stem without a style suffix: "Inter-Bold.ttf" becomes the bold variant of
// family "Inter".
func (l *Library) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read font dir: %w", err)
	}
	loaded := map[string]*Family{}
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".ttf" && ext != ".otf") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return fmt.Errorf("read font %s: %w", e.Name(), err)
		}
		f, err := opentype.Parse(data)
		if err != nil {
			return fmt.Errorf("parse font %s: %w", e.Name(), err)
		}

		stem := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		name, style := splitStyle(stem)
		fam := loaded[strings.ToLower(name)]
		if fam == nil {
			fam = &Family{Name: name}
			loaded[strings.ToLower(name)] = fam
		}
		switch style {
		case "-bolditalic", "-boldoblique":
			fam.BoldItalic = f
		case "-bold":
			fam.Bold = f
		case "-italic", "-oblique":
			fam.Italic = f
		default:
			fam.Regular = f
		}
	}
	for _, fam := range loaded {
		if fam.Regular == nil {
			// Promote any variant so every family can be drawn.
			for _, v := range []*opentype.Font{fam.Bold, fam.Italic, fam.BoldItalic} {
				if v != nil {
					fam.Regular = v
					break
				}
			}
		}
		l.Add(fam)
	}
	return nil
}

func splitStyle(stem string) (name, style string) {
	lower := strings.ToLower(stem)
	for _, s := range styleSuffixes {
		if strings.HasSuffix(lower, s) && len(stem) > len(s) {
			return stem[:len(stem)-len(s)], s
		}
	}
	return stem, ""
}

// Resolve returns the canonical name of the family a CSS-like family list
// maps to. The first known entry wins; DefaultFamily otherwise.
func (l *Library) Resolve(family string) string {
	return l.lookup(family).Name
}

func (l *Library) lookup(family string) *Family {
	for _, part := range strings.Split(family, ",") {
		key := strings.ToLower(strings.Trim(strings.TrimSpace(part), `"'`))
		if key == "" {
			continue
		}
		if f, ok := l.families[key]; ok {
			return f
		}
		if alias, ok := l.aliases[key]; ok {
			if f, ok := l.families[strings.ToLower(alias)]; ok {
				return f
			}
		}
	}
	return l.families[strings.ToLower(DefaultFamily)]
}

// Face returns a new face for the given style at size pixels (72 DPI, so one
// point is one pixel). The caller owns the face; it is not safe to share
// across goroutines.
func (l *Library) Face(family string, bold, italic bool, size float64) (font.Face, error) {
	f := l.lookup(family).variant(bold, italic)
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("font face %s %.2fpx: %w", family, size, err)
	}
	return face, nil
}

// Families lists the registered family names, sorted.
func (l *Library) Families() []string {
	names := make([]string, 0, len(l.families))
	for _, f := range l.families {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names
}
