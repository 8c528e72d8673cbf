package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/imgsplice/internal/preset"
	"github.com/AnyUserName/imgsplice/internal/project"
)

var (
	presetsOrientation string
	presetsProject     string
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List canvas size presets",
	Args:  cobra.NoArgs,
	RunE:  runPresets,
}

func init() {
	presetsCmd.Flags().StringVar(&presetsOrientation, "orientation", "", "landscape or portrait (default: each preset's own)")
	presetsCmd.Flags().StringVar(&presetsProject, "project", "", "also list the presets a project file defines")
	rootCmd.AddCommand(presetsCmd)
}

func runPresets(_ *cobra.Command, _ []string) error {
	o := preset.Orientation(presetsOrientation)
	if !preset.ValidOrientation(o) {
		return fmt.Errorf("unknown orientation %q", presetsOrientation)
	}

	tbl := preset.Default()
	if presetsProject != "" {
		p, err := project.Load(presetsProject)
		if err != nil {
			return err
		}
		if tbl, err = p.PresetTable(); err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCATEGORY\tSIZE\tRATIO\tLABEL")
	for _, p := range tbl.List(o) {
		fmt.Fprintf(tw, "%s\t%s\t%dx%d\t%s\t%s\n", p.Name, p.Category, p.Width, p.Height, p.RatioLabel(), p.Label)
	}
	return tw.Flush()
}
