package encoder

import (
	"fmt"
	"strings"

	"github.com/AnyUserName/imgsplice/internal/errors"
)

// order is the listing order of known formats.
var order = []string{"png", "jpeg", "webp", "avif"}

// Registry maps format names to encoders.
type Registry struct {
	encoders map[string]Encoder
}

// NewRegistry registers every known encoder, available or not.
func NewRegistry() *Registry {
	r := &Registry{encoders: make(map[string]Encoder)}
	for _, enc := range []Encoder{
		&PNGEncoder{},
		&JPEGEncoder{},
		NewWebPEncoder(),
		NewAVIFEncoder(),
	} {
		r.Register(enc)
	}
	return r
}

// Register adds or replaces the encoder for enc.Format().
func (r *Registry) Register(enc Encoder) {
	r.encoders[enc.Format()] = enc
}

// Lookup returns a usable encoder for format. Unknown and unavailable
// formats are ENCODE_FAILED with an UNSUPPORTED cause.
func (r *Registry) Lookup(format string) (Encoder, error) {
	f := Canonical(format)
	enc, ok := r.encoders[f]
	if !ok {
		return nil, errors.Wrap(errors.ErrCodeEncode,
			errors.New(errors.ErrCodeUnsupported, "unknown output format %q", format), "lookup encoder")
	}
	if !enc.Available() {
		return nil, errors.Wrap(errors.ErrCodeEncode,
			errors.New(errors.ErrCodeUnsupported, "format %q is not available on this machine", f), "lookup encoder")
	}
	return enc, nil
}

// Available returns the usable format names in listing order.
func (r *Registry) Available() []string {
	var result []string
	for _, f := range order {
		if enc, ok := r.encoders[f]; ok && enc.Available() {
			result = append(result, f)
		}
	}
	return result
}

func (r *Registry) String() string {
	avail := r.Available()
	if len(avail) == 0 {
		return "no encoders available"
	}
	return fmt.Sprintf("encoders: %s", strings.Join(avail, ", "))
}
