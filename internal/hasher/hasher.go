// Package hasher computes the xxHash64 digests used for content-addressed
// output names and pixel fingerprints.
package hasher

import (
	"encoding/binary"
	"encoding/hex"
	"image"
	"io"

	"github.com/cespare/xxhash/v2"
)

// NameLen is the hash length used in output file names.
const NameLen = 8

// ContentHash returns the hex xxHash64 of data, truncated to hexLen
// characters when 0 < hexLen < 16.
func ContentHash(data []byte, hexLen int) string {
	return format(xxhash.Sum64(data), hexLen)
}

// ContentHashReader is ContentHash over a stream.
func ContentHashReader(r io.Reader, hexLen int) (string, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return format(h.Sum64(), hexLen), nil
}

// Fingerprint hashes the size and pixels of img. Two renders with equal
// fingerprints are pixel-identical for all practical purposes.
func Fingerprint(img image.Image) string {
	h := xxhash.New()
	b := img.Bounds()
	var dims [8]byte
	binary.BigEndian.PutUint32(dims[:4], uint32(b.Dx()))
	binary.BigEndian.PutUint32(dims[4:], uint32(b.Dy()))
	h.Write(dims[:])

	if rgba, ok := img.(*image.RGBA); ok {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			off := rgba.PixOffset(b.Min.X, y)
			h.Write(rgba.Pix[off : off+4*b.Dx()])
		}
		return format(h.Sum64(), 0)
	}

	px := make([]byte, 4)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			px[0], px[1], px[2], px[3] = byte(r>>8), byte(g>>8), byte(bl>>8), byte(a>>8)
			h.Write(px)
		}
	}
	return format(h.Sum64(), 0)
}

func format(sum uint64, hexLen int) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], sum)
	full := hex.EncodeToString(b[:])
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}
