package encoder

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/AnyUserName/imgsplice/internal/errors"
)

func checker(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
			}
		}
	}
	return img
}

func TestPNGKeepsAlpha(t *testing.T) {
	data, err := (&PNGEncoder{}).Encode(checker(6, 4), 0)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 4 {
		t.Errorf("decoded size %v", b)
	}
	if _, _, _, a := img.At(1, 0).RGBA(); a != 0 {
		t.Errorf("transparent pixel has alpha %d", a)
	}
}

func TestJPEGFlattensOntoMatte(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	data, err := (&JPEGEncoder{}).Encode(src, 90)
	if err != nil {
		t.Fatal(err)
	}
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	r, g, b, _ := img.At(8, 8).RGBA()
	if r>>8 < 250 || g>>8 < 250 || b>>8 < 250 {
		t.Errorf("transparent pixel flattened to (%d,%d,%d), want white", r>>8, g>>8, b>>8)
	}
}

func TestQuality(t *testing.T) {
	for q, want := range map[int]int{0: 92, -5: 92, 101: 92, 1: 1, 100: 100, 75: 75} {
		if got := Quality(q); got != want {
			t.Errorf("Quality(%d) = %d, want %d", q, got, want)
		}
	}
}

func TestCanonical(t *testing.T) {
	for in, want := range map[string]string{"JPG": "jpeg", ".png": "png", "": "png", "WebP": "webp"} {
		if got := Canonical(in); got != want {
			t.Errorf("Canonical(%q) = %q, want %q", in, got, want)
		}
	}
}

type offline struct{ *PNGEncoder }

func (offline) Format() string  { return "tiff" }
func (offline) Available() bool { return false }

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	r.Register(offline{&PNGEncoder{}})

	if enc, err := r.Lookup("jpg"); err != nil || enc.Format() != "jpeg" {
		t.Errorf("Lookup(jpg) = %v, %v", enc, err)
	}
	if _, err := r.Lookup("gif"); !errors.Is(err, errors.ErrCodeEncode) {
		t.Errorf("unknown format: err = %v", err)
	}
	if _, err := r.Lookup("tiff"); !errors.Is(err, errors.ErrCodeEncode) || !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("unavailable format: err = %v", err)
	}

	avail := r.Available()
	if len(avail) < 2 || avail[0] != "png" || avail[1] != "jpeg" {
		t.Errorf("Available() = %v", avail)
	}
}
