package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/imgsplice/internal/manifest"
	"github.com/AnyUserName/imgsplice/internal/pipeline"
)

var (
	buildOutDir  string
	buildWorkers int
	buildFormat  string
	buildQuality int
)

var buildCmd = &cobra.Command{
	Use:   "build <project_dir>",
	Short: "Render every project in a directory and write a manifest",
	Long: `Finds every *.toml project under the directory, renders them in parallel
and writes the outputs plus imgsplice.manifest.json. A failing project is
reported and recorded in the manifest; the others still render.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutDir, "out", "o", "./imgsplice_out", "output directory")
	buildCmd.Flags().IntVarP(&buildWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	buildCmd.Flags().StringVarP(&buildFormat, "format", "f", "", "override every project's output format")
	buildCmd.Flags().IntVarP(&buildQuality, "quality", "q", 0, "override every project's quality (1-100)")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	logger := loggerFromContext(cmd.Context())
	start := time.Now()

	absInput, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(buildOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}
	logger.Debug("paths", "input", absInput, "output", absOutput)

	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	p := pipeline.New(pipeline.Config{
		InputDir:  absInput,
		OutputDir: absOutput,
		Workers:   buildWorkers,
		Logger:    logger,
		Overrides: pipeline.Overrides{Format: buildFormat, Quality: buildQuality},
	})

	m, err := p.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	manifestPath := filepath.Join(absOutput, manifest.FileName)
	if err := manifest.WriteJSON(m, manifestPath); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	printBuildReport(m, time.Since(start))
	return nil
}

func printBuildReport(m *manifest.Manifest, elapsed time.Duration) {
	s := m.Stats
	fmt.Println()
	fmt.Println("  imgsplice build complete")
	fmt.Println()
	fmt.Printf("  Outputs:     %d\n", s.TotalOutputs)
	if s.Failed > 0 {
		fmt.Printf("  Failed:      %d\n", s.Failed)
	}
	fmt.Printf("  Images:      %d\n", s.TotalImages)
	fmt.Printf("  Texts:       %d\n", s.TotalTexts)
	fmt.Printf("  Icons:       %d\n", s.TotalIcons)
	fmt.Printf("  Output size: %s\n", formatBytes(s.TotalOutputBytes))
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))
	if m.BuildInfo != nil {
		fmt.Printf("  Workers:     %d\n", m.BuildInfo.Workers)
	}
	fmt.Println()

	if len(m.Outputs) > 0 {
		type outSize struct {
			key  string
			dims string
			size int64
		}
		var items []outSize
		for key, o := range m.Outputs {
			items = append(items, outSize{key, fmt.Sprintf("%dx%d", o.File.Width, o.File.Height), o.File.Size})
		}
		sort.Slice(items, func(i, j int) bool {
			if items[i].size != items[j].size {
				return items[i].size > items[j].size
			}
			return items[i].key < items[j].key
		})
		n := min(len(items), 10)
		fmt.Printf("  Top %d largest:\n", n)
		for _, it := range items[:n] {
			fmt.Printf("    %-40s %11s  %8s\n", truncKey(it.key, 40), it.dims, formatBytes(it.size))
		}
		fmt.Println()
	}

	if len(m.Failures) > 0 {
		keys := make([]string, 0, len(m.Failures))
		for k := range m.Failures {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Println("  Failures:")
		for _, k := range keys {
			fmt.Printf("    %-40s %s\n", truncKey(k, 40), m.Failures[k])
		}
		fmt.Println()
	}

	fmt.Printf("  Formats:     %s\n", strings.Join(outputFormats(m), ", "))
	fmt.Printf("  Manifest:    %s\n", manifest.FileName)
	fmt.Println()
}

func outputFormats(m *manifest.Manifest) []string {
	set := map[string]bool{}
	for _, o := range m.Outputs {
		set[o.File.Format] = true
	}
	var out []string
	for _, f := range []string{"png", "jpeg", "webp", "avif"} {
		if set[f] {
			out = append(out, f)
		}
	}
	return out
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
