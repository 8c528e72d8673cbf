package project

import (
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/AnyUserName/imgsplice/internal/errors"
	"github.com/AnyUserName/imgsplice/internal/icon"
	"github.com/AnyUserName/imgsplice/internal/layout"
	"github.com/AnyUserName/imgsplice/internal/render"
	"github.com/AnyUserName/imgsplice/internal/text"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := imaging.Save(imaging.New(w, h, color.NRGBA{G: 200, A: 255}), path); err != nil {
		t.Fatal(err)
	}
}

const sample = `
name = "card"
images = ["img/a.png", "img/b.png"]
selection = "title"

[splice]
spacing = 10
vertical_alignment = "end"
border_width = 2

[splice.padding]
top = 4
left = 4

[export]
format = "jpeg"
quality = 80

[[preset]]
name = "banner"
width = 1500
height = 500

[[text]]
id = "title"
text = "Hello"
x = 20
y = 40
font_size = 18
align = "center"
opacity = 0.5

[[text]]
text = "second"
z_index = 3

[[icon]]
id = "badge"
shape = "square"
x = 5
y = 5
size = 12
rotation = 30
z_index = 2

[[icon]]
x = 1
`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "card.toml")
	writeFile(t, path, sample)

	p, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "card" || p.Selection != "title" {
		t.Errorf("name/selection = %q/%q", p.Name, p.Selection)
	}
	if want := filepath.Join(dir, "img", "b.png"); p.Images[1] != want {
		t.Errorf("image path %q, want %q", p.Images[1], want)
	}

	c := p.Config
	if c.Spacing != 10 || c.VAlign != layout.End || c.BorderWidth != 2 {
		t.Errorf("splice = %+v", c)
	}
	if c.Direction != layout.Horizontal || c.HAlign != layout.Center || c.BackgroundColor != "#ffffff" {
		t.Errorf("defaults lost: %+v", c)
	}
	if c.Padding.Top != 4 || c.Padding.Left != 4 || c.Padding.Right != 0 {
		t.Errorf("padding = %+v", c.Padding)
	}
	if p.Export.Format != "jpeg" || p.Export.Quality != 80 {
		t.Errorf("export = %+v", p.Export)
	}

	if len(p.Texts) != 2 {
		t.Fatalf("got %d texts", len(p.Texts))
	}
	title := p.Texts[0]
	if title.FontSize != 18 || title.Opacity != 0.5 || title.Align != text.AlignCenter {
		t.Errorf("title = %+v", title)
	}
	second := p.Texts[1]
	if second.ID != "text-2" || second.FontSize != DefaultFontSize || second.Opacity != 1 ||
		second.Color != DefaultColor || second.FontFamily == "" || second.Align != text.AlignLeft {
		t.Errorf("defaults not applied: %+v", second)
	}
	if ids := p.TextIDs(); ids[0] != "title" || ids[1] != "text-2" {
		t.Errorf("TextIDs() = %v", ids)
	}

	if len(p.Icons) != 2 {
		t.Fatalf("got %d icons", len(p.Icons))
	}
	if b := p.Icons[0]; b.ID != "badge" || b.Shape != icon.Square || b.Size != 12 || b.Rotation != 30 || b.ZIndex != 2 {
		t.Errorf("badge = %+v", b)
	}
	if d := p.Icons[1]; d.ID != "icon-2" || d.Shape != icon.Circle || d.Size != DefaultIconSize ||
		d.Opacity != 1 || d.Color != DefaultColor || d.X != 1 {
		t.Errorf("icon defaults not applied: %+v", d)
	}

	tbl, err := p.PresetTable()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := tbl.Lookup("banner", ""); !ok {
		t.Error("project preset not registered")
	}
}

func TestLoadDefaultsName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "poster.toml")
	writeFile(t, path, `images = ["x.png"]`)
	p, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "poster" || p.Export.Format != "png" || p.Config.SizeMode != layout.SizeAuto {
		t.Errorf("defaults: %+v", p)
	}
}

func TestLoadRejects(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"syntax":      `images = [`,
		"unknown key": "images = [\"a.png\"]\n[splice]\nspaceing = 3\n",
	}
	for name, content := range tests {
		path := filepath.Join(dir, name+".toml")
		writeFile(t, path, content)
		if _, err := Load(path); !errors.Is(err, errors.ErrCodeInvalidConfig) {
			t.Errorf("%s: err = %v", name, err)
		}
	}
}

func TestLoadNonFinite(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"nan":     "images = [\"a.png\"]\n[splice]\nspacing = nan\n",
		"inf":     "images = [\"a.png\"]\n[splice.padding]\nleft = inf\n",
		"neg inf": "images = [\"a.png\"]\n[splice]\nborder_radius = -inf\n",
	}
	for name, content := range tests {
		path := filepath.Join(dir, name+".toml")
		writeFile(t, path, content)
		p, err := Load(path)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if err := p.Validate(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
			t.Errorf("%s: err = %v, want INVALID_CONFIG", name, err)
		}
	}
}

func TestValidate(t *testing.T) {
	base := func() *Project {
		return &Project{
			Name:   "p",
			Images: []string{"a.png"},
			Config: layout.DefaultConfig(),
			Texts: []text.Element{
				{ID: "a", FontSize: 12, Color: "#000", Opacity: 1},
				{ID: "b", FontSize: 12, Color: "#000", Opacity: 1},
			},
			Icons: []icon.Icon{
				{ID: "i", Size: 10, Color: "#000", Opacity: 1},
			},
		}
	}
	if err := base().Validate(); err != nil {
		t.Fatalf("valid project rejected: %v", err)
	}

	tests := []struct {
		name string
		mut  func(*Project)
		code errors.Code
	}{
		{"no images", func(p *Project) { p.Images = nil }, errors.ErrCodeInvalidInput},
		{"duplicate id", func(p *Project) { p.Texts[1].ID = "a" }, errors.ErrCodeInvalidInput},
		{"bad selection", func(p *Project) { p.Selection = "zzz" }, errors.ErrCodeInvalidInput},
		{"bad opacity", func(p *Project) { p.Texts[0].Opacity = 2 }, errors.ErrCodeInvalidInput},
		{"bad config", func(p *Project) { p.Config.Spacing = -3 }, errors.ErrCodeInvalidConfig},
		{"nan spacing", func(p *Project) { p.Config.Spacing = math.NaN() }, errors.ErrCodeInvalidConfig},
		{"inf border", func(p *Project) { p.Config.BorderWidth = math.Inf(1) }, errors.ErrCodeInvalidConfig},
		{"huge custom", func(p *Project) {
			p.Config.SizeMode = layout.SizeCustom
			p.Config.CustomWidth, p.Config.CustomHeight = 2000000000, 100
		}, errors.ErrCodeInvalidConfig},
		{"nan text x", func(p *Project) { p.Texts[0].X = math.NaN() }, errors.ErrCodeInvalidInput},
		{"inf font size", func(p *Project) { p.Texts[1].FontSize = math.Inf(1) }, errors.ErrCodeInvalidInput},
		{"icon reuses text id", func(p *Project) { p.Icons[0].ID = "a" }, errors.ErrCodeInvalidInput},
		{"bad icon", func(p *Project) { p.Icons[0].Size = math.NaN() }, errors.ErrCodeInvalidInput},
		{"selection names icon", func(p *Project) { p.Selection = "i" }, errors.ErrCodeInvalidInput},
		{"bad preset", func(p *Project) { p.Presets = []PresetDef{{Name: "x", Width: 0, Height: 5}} }, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		p := base()
		tt.mut(p)
		if err := p.Validate(); !errors.Is(err, tt.code) {
			t.Errorf("%s: err = %v, want %s", tt.name, err, tt.code)
		}
	}
}

func TestInputRenders(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "img", "a.png"), 100, 50)
	writePNG(t, filepath.Join(dir, "img", "b.png"), 60, 80)
	path := filepath.Join(dir, "card.toml")
	writeFile(t, path, sample)

	p, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	in, err := p.Input()
	if err != nil {
		t.Fatal(err)
	}
	img, err := render.Render(in)
	if err != nil {
		t.Fatal(err)
	}
	// 170 + 4 left + 2*2 border, 80 + 4 top + 2*2 border
	if b := img.Bounds(); b.Dx() != 178 || b.Dy() != 88 {
		t.Errorf("rendered %v", b.Size())
	}
}

func TestInputDecodeFailure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.png"), "garbage")
	path := filepath.Join(dir, "p.toml")
	writeFile(t, path, `images = ["a.png"]`)

	p, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Input(); !errors.Is(err, errors.ErrCodeDecode) {
		t.Errorf("err = %v, want DECODE_FAILED", err)
	}
}

func TestImagesDir(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "shots", "2.png"), 4, 4)
	writePNG(t, filepath.Join(dir, "shots", "1.png"), 4, 4)
	path := filepath.Join(dir, "p.toml")
	writeFile(t, path, `images_dir = "shots"`)

	p, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Images) != 2 || filepath.Base(p.Images[0]) != "1.png" {
		t.Errorf("images = %v", p.Images)
	}
}

func TestFindAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.toml"), "")
	writeFile(t, filepath.Join(dir, "nested", "a.toml"), "")
	writeFile(t, filepath.Join(dir, ".hidden", "c.toml"), "")
	writeFile(t, filepath.Join(dir, "readme.md"), "")

	paths, err := FindAll(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 2 {
		t.Fatalf("FindAll() = %v", paths)
	}
	if filepath.Base(paths[0]) != "b.toml" || filepath.Base(paths[1]) != "a.toml" {
		t.Errorf("order = %v", paths)
	}
}
