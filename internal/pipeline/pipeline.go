// Package pipeline renders many projects on a bounded pool of workers.
//
// Every job is an independent render call with its own snapshot; jobs share
// only the encoder registry, which is read-only after construction.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/AnyUserName/imgsplice/internal/encoder"
	"github.com/AnyUserName/imgsplice/internal/export"
	"github.com/AnyUserName/imgsplice/internal/manifest"
	"github.com/AnyUserName/imgsplice/internal/project"
)

// Overrides replace project export settings when non-zero.
type Overrides struct {
	Format  string
	Quality int
	Width   int
	Height  int
	Fit     bool
}

func (o Overrides) apply(s export.Settings) export.Settings {
	if o.Format != "" {
		s.Format = o.Format
	}
	if o.Quality != 0 {
		s.Quality = o.Quality
	}
	if o.Width != 0 || o.Height != 0 {
		s.Width, s.Height = o.Width, o.Height
	}
	if o.Fit {
		s.Fit = true
	}
	return s
}

// Config holds all parameters for a pipeline run.
type Config struct {
	// InputDir is where Run looks for project files.
	InputDir  string
	OutputDir string
	Workers   int
	Overrides Overrides
	// Selection, when set, decorates the text with this ID in every project
	// that has one.
	Selection string
	Logger    *log.Logger
}

// Pipeline orchestrates project rendering.
type Pipeline struct {
	cfg      Config
	registry *encoder.Registry
	exporter *export.Exporter
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	reg := encoder.NewRegistry()
	return &Pipeline{cfg: cfg, registry: reg, exporter: export.New(reg)}
}

// Registry returns the encoders the pipeline writes with.
func (p *Pipeline) Registry() *encoder.Registry { return p.registry }

// Run renders every project under InputDir. A failing project is recorded
// in the manifest and does not stop the others; Run fails only when every
// project failed or ctx was cancelled.
func (p *Pipeline) Run(ctx context.Context) (*manifest.Manifest, error) {
	logger := p.cfg.Logger
	logger.Debug(p.registry.String())

	paths, err := project.FindAll(p.cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no projects found in %s", p.cfg.InputDir)
	}
	logger.Info("found projects", "count", len(paths), "workers", p.cfg.Workers)

	results := make([]result, len(paths))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	for i, path := range paths {
		wg.Add(1)
		go func(idx int, path string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			key := p.keyFor(path)
			if err := ctx.Err(); err != nil {
				results[idx] = result{key: key, err: err}
				return
			}

			logger.Debug("rendering", "project", key)
			results[idx] = p.render(path, key)
			if results[idx].err == nil {
				f := results[idx].output.File
				logger.Debug("done", "project", key, "file", f.Path, "size", f.Size)
			}
		}(i, path)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m := manifest.New()
	for _, r := range results {
		if r.err != nil {
			logger.Error("project failed", "project", r.key, "err", r.err)
			m.Fail(r.key, r.err)
			continue
		}
		m.Outputs[r.key] = r.output
	}
	if len(m.Failures) == len(paths) {
		return nil, fmt.Errorf("all %d projects failed", len(paths))
	}
	if len(m.Failures) > 0 {
		logger.Warn("partial build", "failed", len(m.Failures), "total", len(paths))
	}

	m.BuildInfo = &manifest.BuildInfo{Workers: p.cfg.Workers, Encoders: p.registry.Available()}
	m.ComputeStats()
	return m, nil
}

// RenderFile renders the single project at path into OutputDir and returns
// a manifest holding just that output.
func (p *Pipeline) RenderFile(ctx context.Context, path string) (*manifest.Manifest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	r := p.render(path, key)
	if r.err != nil {
		return nil, r.err
	}
	m := manifest.New()
	m.Outputs[key] = r.output
	m.BuildInfo = &manifest.BuildInfo{Workers: 1, Encoders: p.registry.Available()}
	m.ComputeStats()
	return m, nil
}

// keyFor is the project path relative to InputDir without extension.
func (p *Pipeline) keyFor(path string) string {
	rel, err := filepath.Rel(p.cfg.InputDir, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	return filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))
}
