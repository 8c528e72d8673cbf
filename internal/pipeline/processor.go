package pipeline

import (
	"fmt"
	"path/filepath"

	"github.com/AnyUserName/imgsplice/internal/errors"
	"github.com/AnyUserName/imgsplice/internal/export"
	"github.com/AnyUserName/imgsplice/internal/hasher"
	"github.com/AnyUserName/imgsplice/internal/layout"
	"github.com/AnyUserName/imgsplice/internal/manifest"
	"github.com/AnyUserName/imgsplice/internal/project"
	"github.com/AnyUserName/imgsplice/internal/render"
)

// result is the outcome of one project.
type result struct {
	key    string
	output manifest.Output
	err    error
}

// render loads, composes, encodes and writes one project. Output files go to
// the key's directory under OutputDir. A panic is reported as the project's
// error so the other workers keep going.
func (p *Pipeline) render(path, key string) (res result) {
	res.key = key
	defer func() {
		if r := recover(); r != nil {
			res = result{key: key, err: errors.New(errors.ErrCodeInternal, "render %s: panic: %v", key, r)}
		}
	}()

	proj, err := project.Load(path)
	if err != nil {
		res.err = err
		return res
	}
	if p.cfg.Selection != "" {
		if _, ok := proj.Text(p.cfg.Selection); ok {
			proj.Selection = p.cfg.Selection
		}
	}

	in, err := proj.Input()
	if err != nil {
		res.err = err
		return res
	}
	composed, err := render.Compose(in)
	if err != nil {
		res.err = err
		return res
	}

	out, err := p.exporter.Encode(composed.Image, p.cfg.Overrides.apply(proj.Export))
	if err != nil {
		res.err = err
		return res
	}

	keyDir := filepath.Dir(key)
	written, err := export.Write(filepath.Join(p.cfg.OutputDir, keyDir), proj.Name, out)
	if err != nil {
		res.err = err
		return res
	}
	relPath, err := filepath.Rel(p.cfg.OutputDir, written)
	if err != nil {
		res.err = fmt.Errorf("relative output path: %w", err)
		return res
	}

	projRel := proj.Path
	if rel, err := filepath.Rel(p.cfg.OutputDir, proj.Path); err == nil {
		projRel = rel
	}

	plan := composed.Plan
	cfg := proj.Config
	o := manifest.Output{
		Project: filepath.ToSlash(projRel),
		Canvas: manifest.Canvas{
			Width:  plan.Width,
			Height: plan.Height,
			Mode:   string(cfg.SizeMode),
		},
		Fingerprint: hasher.Fingerprint(composed.Image),
		AvgColor:    &out.AvgColor,
		File: manifest.File{
			Format: out.Format,
			Width:  out.Width,
			Height: out.Height,
			Size:   int64(len(out.Data)),
			Hash:   out.Hash,
			Path:   filepath.ToSlash(relPath),
		},
	}
	if cfg.SizeMode == layout.SizePreset {
		o.Canvas.Preset = cfg.PresetName
		o.Canvas.Orientation = string(cfg.Orientation)
	}
	for i, img := range in.Images {
		pos := plan.Positions[i]
		o.Images = append(o.Images, manifest.ImageRef{
			ID: img.ID, Width: img.Width, Height: img.Height, X: pos.X, Y: pos.Y,
		})
	}
	for _, e := range in.Texts {
		if !e.Hidden {
			o.Texts = append(o.Texts, e.ID)
		}
	}
	for _, ic := range in.Icons {
		if !ic.Hidden {
			o.Icons = append(o.Icons, ic.ID)
		}
	}

	res.output = o
	return res
}
