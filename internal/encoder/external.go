package encoder

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"sync/atomic"
)

// tempCounter keeps temp file names unique across goroutines.
var tempCounter atomic.Int64

// tool is an encoder executable looked up on PATH once.
type tool struct {
	name string
	once sync.Once
	path string
}

func (t *tool) available() bool {
	t.once.Do(func() {
		if p, err := exec.LookPath(t.name); err == nil {
			t.path = p
		}
	})
	return t.path != ""
}

// run writes img to a temp PNG, runs the tool with args(src, dst) and
// returns the bytes it wrote to dst.
func (t *tool) run(img image.Image, ext string, args func(src, dst string) []string) ([]byte, error) {
	if !t.available() {
		return nil, fmt.Errorf("%s not found in PATH", t.name)
	}

	id := tempCounter.Add(1)
	src, err := os.CreateTemp("", fmt.Sprintf("imgsplice_%s_src_%d_*.png", t.name, id))
	if err != nil {
		return nil, fmt.Errorf("create temp: %w", err)
	}
	srcPath := src.Name()
	defer os.Remove(srcPath)

	dst, err := os.CreateTemp("", fmt.Sprintf("imgsplice_%s_dst_%d_*.%s", t.name, id, ext))
	if err != nil {
		src.Close()
		return nil, fmt.Errorf("create temp: %w", err)
	}
	dstPath := dst.Name()
	dst.Close()
	defer os.Remove(dstPath)

	if err := png.Encode(src, img); err != nil {
		src.Close()
		return nil, fmt.Errorf("encode temp png: %w", err)
	}
	if err := src.Close(); err != nil {
		return nil, fmt.Errorf("close temp: %w", err)
	}

	cmd := exec.Command(t.path, args(srcPath, dstPath)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("%s: %w: %s", t.name, err, string(out))
	}
	return os.ReadFile(dstPath)
}

// WebPEncoder encodes through cwebp (apt install webp / brew install webp).
type WebPEncoder struct {
	tool tool
}

func NewWebPEncoder() *WebPEncoder { return &WebPEncoder{tool: tool{name: "cwebp"}} }

func (e *WebPEncoder) Format() string    { return "webp" }
func (e *WebPEncoder) Extension() string { return "webp" }
func (e *WebPEncoder) Available() bool   { return e.tool.available() }

func (e *WebPEncoder) Encode(img image.Image, quality int) ([]byte, error) {
	return e.tool.run(img, "webp", func(src, dst string) []string {
		return []string{"-q", strconv.Itoa(quality), "-m", "6", "-mt", "-exact", "-quiet", src, "-o", dst}
	})
}

// AVIFEncoder encodes through avifenc (apt install libavif-bin).
type AVIFEncoder struct {
	tool tool
}

func NewAVIFEncoder() *AVIFEncoder { return &AVIFEncoder{tool: tool{name: "avifenc"}} }

func (e *AVIFEncoder) Format() string    { return "avif" }
func (e *AVIFEncoder) Extension() string { return "avif" }
func (e *AVIFEncoder) Available() bool   { return e.tool.available() }

func (e *AVIFEncoder) Encode(img image.Image, quality int) ([]byte, error) {
	// avifenc quantizers run 0 (best) to 63 (worst).
	q := strconv.Itoa(63 - quality*63/100)
	return e.tool.run(img, "avif", func(src, dst string) []string {
		return []string{"--min", q, "--max", q, "--speed", "6", "-j", "all", src, dst}
	})
}
