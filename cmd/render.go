package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/imgsplice/internal/manifest"
	"github.com/AnyUserName/imgsplice/internal/pipeline"
)

var (
	renderOutDir  string
	renderFormat  string
	renderQuality int
	renderWidth   int
	renderHeight  int
	renderFit     bool
	renderSelect  string
)

var renderCmd = &cobra.Command{
	Use:   "render <project.toml>",
	Short: "Render one project to an image file",
	Long: `Loads a project file, splices its images, draws its text and writes the
result plus a manifest into the output directory.

--width/--height resample the final image; with only one given the other
follows the aspect ratio, with both given --fit keeps the ratio.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutDir, "out", "o", ".", "output directory")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "", "output format: png, jpeg, webp, avif (default from project)")
	renderCmd.Flags().IntVarP(&renderQuality, "quality", "q", 0, "quality 1-100 (0 = project default)")
	renderCmd.Flags().IntVar(&renderWidth, "width", 0, "final width in pixels")
	renderCmd.Flags().IntVar(&renderHeight, "height", 0, "final height in pixels")
	renderCmd.Flags().BoolVar(&renderFit, "fit", false, "keep aspect ratio when both width and height are set")
	renderCmd.Flags().StringVar(&renderSelect, "select", "", "draw the selection frame around this text id")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	logger := loggerFromContext(cmd.Context())
	start := time.Now()

	absOut, err := filepath.Abs(renderOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}
	if err := os.MkdirAll(absOut, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	p := pipeline.New(pipeline.Config{
		OutputDir: absOut,
		Workers:   1,
		Selection: renderSelect,
		Logger:    logger,
		Overrides: pipeline.Overrides{
			Format:  renderFormat,
			Quality: renderQuality,
			Width:   renderWidth,
			Height:  renderHeight,
			Fit:     renderFit,
		},
	})
	logger.Debug(p.Registry().String())

	m, err := p.RenderFile(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("render %s: %w", args[0], err)
	}
	if err := manifest.WriteJSON(m, filepath.Join(absOut, manifest.FileName)); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	for name, o := range m.Outputs {
		logger.Info("rendered", "project", name, "file", o.File.Path,
			"size", formatBytes(o.File.Size), "elapsed", time.Since(start).Round(time.Millisecond))
	}
	return nil
}
