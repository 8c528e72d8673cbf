package export

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/AnyUserName/imgsplice/internal/encoder"
	"github.com/AnyUserName/imgsplice/internal/errors"
)

func canvas(w, h int) image.Image {
	return imaging.New(w, h, color.NRGBA{R: 255, A: 255})
}

func TestEncodeResample(t *testing.T) {
	x := New(encoder.NewRegistry())
	tests := []struct {
		name  string
		s     Settings
		wantW int
		wantH int
	}{
		{"none", Settings{Format: "png"}, 400, 200},
		{"width only", Settings{Format: "png", Width: 200}, 200, 100},
		{"height only", Settings{Format: "png", Height: 50}, 100, 50},
		{"exact", Settings{Format: "png", Width: 100, Height: 100}, 100, 100},
		{"fit", Settings{Format: "png", Width: 100, Height: 100, Fit: true}, 100, 50},
		{"jpeg bad quality", Settings{Format: "jpg", Quality: 500}, 400, 200},
	}
	for _, tt := range tests {
		out, err := x.Encode(canvas(400, 200), tt.s)
		if err != nil {
			t.Errorf("%s: %v", tt.name, err)
			continue
		}
		if out.Width != tt.wantW || out.Height != tt.wantH {
			t.Errorf("%s: got %dx%d, want %dx%d", tt.name, out.Width, out.Height, tt.wantW, tt.wantH)
		}
		cfg, _, err := image.DecodeConfig(bytes.NewReader(out.Data))
		if err != nil {
			t.Errorf("%s: decode: %v", tt.name, err)
			continue
		}
		if cfg.Width != tt.wantW || cfg.Height != tt.wantH {
			t.Errorf("%s: encoded %dx%d", tt.name, cfg.Width, cfg.Height)
		}
	}
}

func TestEncodeFailures(t *testing.T) {
	x := New(encoder.NewRegistry())

	out, err := x.Encode(canvas(10, 10), Settings{Format: "bmp"})
	if !errors.Is(err, errors.ErrCodeEncode) {
		t.Errorf("unknown format: err = %v", err)
	}
	if out.Data != nil {
		t.Error("failed encode returned bytes")
	}

	if _, err := x.Encode(canvas(10, 10), Settings{Format: "png", Width: -1}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("negative width: err = %v", err)
	}
}

func TestAverageColor(t *testing.T) {
	out, err := New(encoder.NewRegistry()).Encode(canvas(8, 8), DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}
	if out.AvgColor != [3]uint8{255, 0, 0} {
		t.Errorf("AvgColor = %v", out.AvgColor)
	}
}

var nameRE = regexp.MustCompile(`^card\.40\.20\.[0-9a-f]{8}\.png$`)

func TestWrite(t *testing.T) {
	x := New(encoder.NewRegistry())
	out, err := x.Encode(canvas(40, 20), DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}

	dir := filepath.Join(t.TempDir(), "out")
	path, err := Write(dir, "card", out)
	if err != nil {
		t.Fatal(err)
	}
	if !nameRE.MatchString(filepath.Base(path)) {
		t.Errorf("file name %q", filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, out.Data) {
		t.Error("written bytes differ")
	}

	again, err := Write(dir, "card", out)
	if err != nil {
		t.Fatal(err)
	}
	if again != path {
		t.Errorf("same bytes written to %q and %q", path, again)
	}

	if _, err := Write(dir, "empty", Output{}); !errors.Is(err, errors.ErrCodeEncode) {
		t.Errorf("empty output: err = %v", err)
	}
}
