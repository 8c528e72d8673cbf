// Package manifest records the files a render or build wrote.
package manifest

// FileName is the manifest's name inside an output directory.
const FileName = "imgsplice.manifest.json"

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1

// Manifest is the top-level record of one render or build run.
type Manifest struct {
	Version     int               `json:"version"`
	GeneratedAt string            `json:"generated_at"`
	BasePath    string            `json:"base_path"`
	BuildInfo   *BuildInfo        `json:"build_info,omitempty"`
	Outputs     map[string]Output `json:"outputs"`
	// Failures maps project names to the error that stopped them.
	Failures map[string]string `json:"failures,omitempty"`
	Stats    Stats             `json:"stats"`
}

// BuildInfo captures run parameters for diagnostics.
type BuildInfo struct {
	Workers  int      `json:"workers"`
	Encoders []string `json:"encoders"`
}

// Output describes one rendered composition and the file it became.
type Output struct {
	// Project is the project file, relative to the manifest when possible.
	Project string     `json:"project"`
	Canvas  Canvas     `json:"canvas"`
	Images  []ImageRef `json:"images"`
	Texts   []string   `json:"texts,omitempty"`
	Icons   []string   `json:"icons,omitempty"`
	// Fingerprint hashes the composed pixels before export.
	Fingerprint string    `json:"fingerprint"`
	AvgColor    *[3]uint8 `json:"avg_color,omitempty"`
	File        File      `json:"file"`
}

// Canvas is the composed size and the policy that produced it.
type Canvas struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Mode        string `json:"mode"`
	Preset      string `json:"preset,omitempty"`
	Orientation string `json:"orientation,omitempty"`
}

// ImageRef is one source image and where it landed.
type ImageRef struct {
	ID     string  `json:"id"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// File is the encoded output on disk.
type File struct {
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int64  `json:"size"`
	Hash   string `json:"hash"`
	Path   string `json:"path"` // relative to base_path
}

// Stats aggregates run metrics.
type Stats struct {
	TotalOutputs     int   `json:"total_outputs"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
	TotalImages      int   `json:"total_images"`
	TotalTexts       int   `json:"total_texts"`
	TotalIcons       int   `json:"total_icons"`
	Failed           int   `json:"failed,omitempty"`
}
