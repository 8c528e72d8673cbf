package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Check verifies m against the files under baseDir and returns every
// problem found, sorted.
func Check(m *Manifest, baseDir string) []string {
	var errs []string

	if m.Version != SupportedManifestVersion {
		errs = append(errs, fmt.Sprintf("unsupported manifest version: %d", m.Version))
	}

	seenPaths := map[string]string{}
	for name, o := range m.Outputs {
		if o.Canvas.Width <= 0 || o.Canvas.Height <= 0 {
			errs = append(errs, fmt.Sprintf("output %q: invalid canvas %dx%d", name, o.Canvas.Width, o.Canvas.Height))
		}
		if len(o.Images) == 0 {
			errs = append(errs, fmt.Sprintf("output %q: no images", name))
		}
		if o.Fingerprint == "" {
			errs = append(errs, fmt.Sprintf("output %q: missing fingerprint", name))
		}

		f := o.File
		if f.Format == "" {
			errs = append(errs, fmt.Sprintf("output %q: empty format", name))
		}
		if f.Width <= 0 || f.Height <= 0 {
			errs = append(errs, fmt.Sprintf("output %q: invalid file dimensions %dx%d", name, f.Width, f.Height))
		}
		if f.Hash == "" {
			errs = append(errs, fmt.Sprintf("output %q: missing hash", name))
		}
		if f.Path == "" {
			errs = append(errs, fmt.Sprintf("output %q: missing path", name))
			continue
		}
		if other, ok := seenPaths[f.Path]; ok {
			errs = append(errs, fmt.Sprintf("output %q: path %q also used by %q", name, f.Path, other))
		}
		seenPaths[f.Path] = name

		info, err := os.Stat(filepath.Join(baseDir, f.Path))
		if err != nil {
			errs = append(errs, fmt.Sprintf("output %q: file not found: %s", name, f.Path))
		} else if f.Size > 0 && info.Size() != f.Size {
			errs = append(errs, fmt.Sprintf("output %q: size mismatch: manifest=%d, disk=%d", name, f.Size, info.Size()))
		}
	}

	if m.Stats.TotalOutputs != len(m.Outputs) {
		errs = append(errs, fmt.Sprintf("stats.total_outputs mismatch: %d != %d", m.Stats.TotalOutputs, len(m.Outputs)))
	}
	if m.Stats.Failed != len(m.Failures) {
		errs = append(errs, fmt.Sprintf("stats.failed mismatch: %d != %d", m.Stats.Failed, len(m.Failures)))
	}

	sort.Strings(errs)
	return errs
}
