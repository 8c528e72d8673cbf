package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/imgsplice/internal/manifest"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_manifest>",
	Short: "Display statistics for an output directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, args []string) error {
	m, err := manifest.Read(args[0])
	if err != nil {
		return err
	}
	printStats(m)
	return nil
}

func printStats(m *manifest.Manifest) {
	fmt.Println()
	fmt.Printf("  Manifest version: %d\n", m.Version)
	fmt.Printf("  Generated:        %s\n", m.GeneratedAt)
	if m.BuildInfo != nil {
		fmt.Printf("  Workers:          %d\n", m.BuildInfo.Workers)
		fmt.Printf("  Encoders:         %v\n", m.BuildInfo.Encoders)
	}
	fmt.Println()

	s := m.Stats
	fmt.Printf("  Outputs:          %d\n", s.TotalOutputs)
	fmt.Printf("  Failed:           %d\n", s.Failed)
	fmt.Printf("  Source images:    %d\n", s.TotalImages)
	fmt.Printf("  Text elements:    %d\n", s.TotalTexts)
	fmt.Printf("  Icon elements:    %d\n", s.TotalIcons)
	fmt.Printf("  Output size:      %s\n", formatBytes(s.TotalOutputBytes))
	fmt.Println()

	formatStats := map[string]struct {
		count int
		bytes int64
	}{}
	modeStats := map[string]int{}
	for _, o := range m.Outputs {
		fs := formatStats[o.File.Format]
		fs.count++
		fs.bytes += o.File.Size
		formatStats[o.File.Format] = fs
		modeStats[o.Canvas.Mode]++
	}

	fmt.Println("  Format breakdown:")
	for _, f := range []string{"png", "jpeg", "webp", "avif"} {
		if fs, ok := formatStats[f]; ok {
			fmt.Printf("    %-6s  %4d files  %s\n", f, fs.count, formatBytes(fs.bytes))
		}
	}
	fmt.Println()

	var modes []string
	for mode := range modeStats {
		modes = append(modes, mode)
	}
	sort.Strings(modes)
	fmt.Println("  Canvas size modes:")
	for _, mode := range modes {
		fmt.Printf("    %-8s  %4d outputs\n", mode, modeStats[mode])
	}
	fmt.Println()

	var warnings []string
	for key, o := range m.Outputs {
		if len(o.Images) == 0 {
			warnings = append(warnings, fmt.Sprintf("output %q has no images", key))
		}
		if o.File.Width != o.Canvas.Width || o.File.Height != o.Canvas.Height {
			warnings = append(warnings, fmt.Sprintf("output %q resampled %dx%d -> %dx%d",
				key, o.Canvas.Width, o.Canvas.Height, o.File.Width, o.File.Height))
		}
	}
	for key, msg := range m.Failures {
		warnings = append(warnings, fmt.Sprintf("project %q failed: %s", key, msg))
	}
	if len(warnings) > 0 {
		sort.Strings(warnings)
		fmt.Printf("  Notes (%d):\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("    - %s\n", w)
		}
		fmt.Println()
	}
}
