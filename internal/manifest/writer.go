package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// New creates an empty manifest stamped with the current time.
func New() *Manifest {
	return &Manifest{
		Version:     SupportedManifestVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		BasePath:    "./",
		Outputs:     make(map[string]Output),
	}
}

// Fail records a project that produced no output.
func (m *Manifest) Fail(name string, err error) {
	if m.Failures == nil {
		m.Failures = make(map[string]string)
	}
	m.Failures[name] = err.Error()
}

// ComputeStats recalculates aggregate statistics from outputs.
func (m *Manifest) ComputeStats() {
	var s Stats
	s.TotalOutputs = len(m.Outputs)
	s.Failed = len(m.Failures)
	for _, o := range m.Outputs {
		s.TotalOutputBytes += o.File.Size
		s.TotalImages += len(o.Images)
		s.TotalTexts += len(o.Texts)
		s.TotalIcons += len(o.Icons)
	}
	m.Stats = s
}

// WriteJSON serializes the manifest with stable key ordering.
func WriteJSON(m *Manifest, path string) error {
	m.ComputeStats()

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// Read loads a manifest from path, or from FileName inside path when path
// is a directory.
func Read(path string) (*Manifest, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, FileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}
