//go:build ignore

// gen_fixtures writes sample images and project files for a smoke run:
//
//	go run e2e/gen_fixtures.go /tmp/splice
//	imgsplice build /tmp/splice -o /tmp/splice_out
package main

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

var projects = map[string]string{
	"strip.toml": `
images = ["img/banner.jpg", "img/card-1.png", "img/card-2.png"]

[splice]
spacing = 12
vertical_alignment = "end"
background_color = "#f4f4f5"
border_width = 3
border_color = "#18181b"
border_radius = 16

[splice.padding]
top = 16
right = 16
bottom = 16
left = 16

[[text]]
id = "title"
text = "Spliced\nstrip"
x = 220
y = 80
font_size = 32
bold = true
align = "center"
color = "#ffffff"
rotation = -8

[[icon]]
id = "badge"
shape = "square"
x = 16
y = 16
size = 24
color = "#f59e0b"
rotation = 45
z_index = 2
`,
	"posters/wide.toml": `
name = "wide"
images = ["../img/card-1.png", "../img/card-2.png", "../img/card-3.png"]

[splice]
direction = "vertical"
spacing = 8
canvas_size_mode = "preset"
preset = "16:9"

[[text]]
id = "caption"
text = "16:9, content centered"
x = 20
y = 40
opacity = 0.6

[export]
format = "jpeg"
quality = 88
`,
	"fixed.toml": `
images = ["img/logo.png", "img/card-3.png"]
selection = "stamp"

[splice]
spacing = 10
canvas_size_mode = "custom"
custom_width = 400
custom_height = 300

[[text]]
id = "stamp"
text = "DRAFT"
x = 200
y = 160
font_size = 48
align = "center"
color = "#dc2626"
rotation = 30
z_index = 2

[export]
width = 800
`,
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	img := filepath.Join(dir, "img")
	must(os.MkdirAll(filepath.Join(dir, "posters"), 0o755))
	must(os.MkdirAll(img, 0o755))

	must(imaging.Save(gradient(400, 225), filepath.Join(img, "banner.jpg"), imaging.JPEGQuality(85)))
	for i := 1; i <= 3; i++ {
		must(imaging.Save(solidWithBorder(200, 150, uint8(i*60)), filepath.Join(img, fmt.Sprintf("card-%d.png", i))))
	}
	must(imaging.Save(alphaGradient(100, 100), filepath.Join(img, "logo.png")))

	for name, content := range projects {
		must(os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	fmt.Fprintf(os.Stderr, "gen_fixtures: 5 images, %d projects in %s\n", len(projects), dir)
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 128, A: 255})
		}
	}
	return img
}

func solidWithBorder(w, h int, base uint8) *image.NRGBA {
	img := imaging.New(w, h, color.White)
	fill := imaging.New(w-8, h-8, color.NRGBA{R: base, G: base + 40, B: base + 80, A: 255})
	return imaging.Paste(img, fill, image.Pt(4, 4))
}

func alphaGradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 220, G: 60, B: 30, A: uint8(x * 255 / w)})
		}
	}
	return img
}
