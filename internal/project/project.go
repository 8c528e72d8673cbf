// Package project reads TOML project files into render snapshots.
//
// A project names its source images, the splice configuration, the text
// annotations and the export settings:
//
//	name = "card"
//	images = ["left.png", "right.jpg"]
//
//	[splice]
//	direction = "horizontal"
//	spacing = 10
//	canvas_size_mode = "preset"
//	preset = "16:9"
//
//	[[text]]
//	id = "title"
//	text = "Hello"
//	x = 40
//	y = 60
//
//	[[icon]]
//	shape = "circle"
//	x = 10
//	y = 10
//	size = 32
//	color = "#ff0000"
//
//	[export]
//	format = "jpeg"
//	quality = 90
//
// Relative paths resolve against the directory of the project file.
package project

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/AnyUserName/imgsplice/internal/errors"
	"github.com/AnyUserName/imgsplice/internal/export"
	"github.com/AnyUserName/imgsplice/internal/fonts"
	"github.com/AnyUserName/imgsplice/internal/icon"
	"github.com/AnyUserName/imgsplice/internal/layout"
	"github.com/AnyUserName/imgsplice/internal/preset"
	"github.com/AnyUserName/imgsplice/internal/render"
	"github.com/AnyUserName/imgsplice/internal/source"
	"github.com/AnyUserName/imgsplice/internal/text"
)

// Defaults for fields a [[text]] or [[icon]] table leaves out.
const (
	DefaultFontSize = 24.0
	DefaultIconSize = 48.0
	DefaultColor    = "#000000"
)

// PresetDef is a project-local preset.
type PresetDef struct {
	Name   string `toml:"name"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// Project is a loaded project file. Paths are absolute.
type Project struct {
	Name      string
	Path      string
	Images    []string
	FontsDir  string
	Selection string
	Config    layout.Config
	Texts     []text.Element
	Icons     []icon.Icon
	Export    export.Settings
	Presets   []PresetDef
}

type file struct {
	Name      string          `toml:"name"`
	Images    []string        `toml:"images"`
	ImagesDir string          `toml:"images_dir"`
	FontsDir  string          `toml:"fonts_dir"`
	Selection string          `toml:"selection"`
	Splice    layout.Config   `toml:"splice"`
	Export    export.Settings `toml:"export"`
	Presets   []PresetDef     `toml:"preset"`
	Texts     []textEntry     `toml:"text"`
	Icons     []iconEntry     `toml:"icon"`
}

// textEntry mirrors text.Element with optional fields that have non-zero
// defaults.
type textEntry struct {
	ID         string     `toml:"id"`
	Text       string     `toml:"text"`
	X          float64    `toml:"x"`
	Y          float64    `toml:"y"`
	FontSize   *float64   `toml:"font_size"`
	FontFamily string     `toml:"font_family"`
	Color      string     `toml:"color"`
	Bold       bool       `toml:"bold"`
	Italic     bool       `toml:"italic"`
	Align      text.Align `toml:"align"`
	Rotation   float64    `toml:"rotation"`
	Opacity    *float64   `toml:"opacity"`
	ZIndex     int        `toml:"z_index"`
	Hidden     bool       `toml:"hidden"`
}

func (t textEntry) element(i int) text.Element {
	e := text.Element{
		ID:         t.ID,
		Text:       t.Text,
		X:          t.X,
		Y:          t.Y,
		FontSize:   DefaultFontSize,
		FontFamily: t.FontFamily,
		Color:      t.Color,
		Bold:       t.Bold,
		Italic:     t.Italic,
		Align:      t.Align,
		Rotation:   t.Rotation,
		Opacity:    1,
		ZIndex:     t.ZIndex,
		Hidden:     t.Hidden,
	}
	if e.ID == "" {
		e.ID = fmt.Sprintf("text-%d", i+1)
	}
	if t.FontSize != nil {
		e.FontSize = *t.FontSize
	}
	if t.Opacity != nil {
		e.Opacity = *t.Opacity
	}
	if e.FontFamily == "" {
		e.FontFamily = fonts.DefaultFamily
	}
	if e.Color == "" {
		e.Color = DefaultColor
	}
	if e.Align == "" {
		e.Align = text.AlignLeft
	}
	return e
}

// iconEntry mirrors icon.Icon with optional fields that have non-zero
// defaults.
type iconEntry struct {
	ID       string     `toml:"id"`
	Shape    icon.Shape `toml:"shape"`
	X        float64    `toml:"x"`
	Y        float64    `toml:"y"`
	Size     *float64   `toml:"size"`
	Color    string     `toml:"color"`
	Rotation float64    `toml:"rotation"`
	Opacity  *float64   `toml:"opacity"`
	ZIndex   int        `toml:"z_index"`
	Hidden   bool       `toml:"hidden"`
}

func (t iconEntry) asIcon(i int) icon.Icon {
	ic := icon.Icon{
		ID:       t.ID,
		Shape:    t.Shape,
		X:        t.X,
		Y:        t.Y,
		Size:     DefaultIconSize,
		Color:    t.Color,
		Rotation: t.Rotation,
		Opacity:  1,
		ZIndex:   t.ZIndex,
		Hidden:   t.Hidden,
	}
	if ic.ID == "" {
		ic.ID = fmt.Sprintf("icon-%d", i+1)
	}
	if t.Size != nil {
		ic.Size = *t.Size
	}
	if t.Opacity != nil {
		ic.Opacity = *t.Opacity
	}
	if ic.Shape == "" {
		ic.Shape = icon.Circle
	}
	if ic.Color == "" {
		ic.Color = DefaultColor
	}
	return ic
}

// Load parses the project at path. Unknown keys are rejected so typos do
// not silently fall back to defaults.
func Load(path string) (*Project, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	f := file{Splice: layout.DefaultConfig(), Export: export.DefaultSettings()}
	md, err := toml.DecodeFile(abs, &f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	dir := filepath.Dir(abs)
	p := &Project{
		Name:      f.Name,
		Path:      abs,
		Selection: f.Selection,
		Config:    f.Splice,
		Export:    f.Export,
		Presets:   f.Presets,
	}
	if p.Name == "" {
		base := filepath.Base(abs)
		p.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if f.FontsDir != "" {
		p.FontsDir = resolve(dir, f.FontsDir)
	}
	for _, img := range f.Images {
		p.Images = append(p.Images, resolve(dir, img))
	}
	if f.ImagesDir != "" {
		files, err := source.Scan(resolve(dir, f.ImagesDir))
		if err != nil {
			return nil, fmt.Errorf("scan images_dir: %w", err)
		}
		for _, sf := range files {
			p.Images = append(p.Images, sf.AbsPath)
		}
	}
	for i, t := range f.Texts {
		p.Texts = append(p.Texts, t.element(i))
	}
	for i, t := range f.Icons {
		p.Icons = append(p.Icons, t.asIcon(i))
	}
	return p, nil
}

func resolve(dir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// PresetTable returns the built-in presets plus the project's own.
func (p *Project) PresetTable() (*preset.Table, error) {
	tbl := preset.Default()
	for _, d := range p.Presets {
		if err := tbl.Add(d.Name, d.Width, d.Height); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "preset %q", d.Name)
		}
	}
	return tbl, nil
}

// Fonts returns the embedded fonts plus any from FontsDir.
func (p *Project) Fonts() (*fonts.Library, error) {
	lib, err := fonts.NewLibrary()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load embedded fonts")
	}
	if p.FontsDir != "" {
		if err := lib.LoadDir(p.FontsDir); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "fonts_dir")
		}
	}
	return lib, nil
}

// Validate checks everything that can be checked without decoding images.
func (p *Project) Validate() error {
	if len(p.Images) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "%s: no images", p.Name)
	}
	tbl, err := p.PresetTable()
	if err != nil {
		return err
	}
	if err := p.Config.Validate(tbl); err != nil {
		return err
	}

	seen := make(map[string]bool, len(p.Texts)+len(p.Icons))
	for _, e := range p.Texts {
		if seen[e.ID] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate element id %q", e.ID)
		}
		seen[e.ID] = true
		if err := e.Validate(); err != nil {
			return err
		}
	}
	for _, ic := range p.Icons {
		if seen[ic.ID] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate element id %q", ic.ID)
		}
		seen[ic.ID] = true
		if err := ic.Validate(); err != nil {
			return err
		}
	}
	if _, ok := p.Text(p.Selection); p.Selection != "" && !ok {
		return errors.New(errors.ErrCodeInvalidInput, "selection %q matches no text", p.Selection)
	}
	if p.Export.Width < 0 || p.Export.Height < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "export size %dx%d is negative", p.Export.Width, p.Export.Height)
	}
	return nil
}

// Text returns the element with the given ID.
func (p *Project) Text(id string) (text.Element, bool) {
	for _, e := range p.Texts {
		if e.ID == id {
			return e, true
		}
	}
	return text.Element{}, false
}

// TextIDs returns the text IDs in ascending z order.
func (p *Project) TextIDs() []string {
	sorted := text.SortByZ(p.Texts)
	ids := make([]string, len(sorted))
	for i, e := range sorted {
		ids[i] = e.ID
	}
	return ids
}

// Input validates the project, decodes its images and builds the render
// snapshot. Decode failures abort before any layout work.
func (p *Project) Input() (render.Input, error) {
	if err := p.Validate(); err != nil {
		return render.Input{}, err
	}
	tbl, err := p.PresetTable()
	if err != nil {
		return render.Input{}, err
	}
	lib, err := p.Fonts()
	if err != nil {
		return render.Input{}, err
	}
	images, err := source.LoadAll(p.Images)
	if err != nil {
		return render.Input{}, err
	}
	texts := make([]text.Element, len(p.Texts))
	copy(texts, p.Texts)
	icons := make([]icon.Icon, len(p.Icons))
	copy(icons, p.Icons)

	return render.Input{
		Fonts:     lib,
		Presets:   tbl,
		Images:    images,
		Config:    p.Config,
		Texts:     texts,
		Icons:     icons,
		Selection: p.Selection,
	}, nil
}

// FindAll returns every *.toml file under dir, sorted. Hidden directories
// are skipped.
func FindAll(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".toml") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}
