// Package cmd implements the imgsplice command-line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/AnyUserName/imgsplice/internal/errors"
)

var (
	version = "0.1.0"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "imgsplice",
	Short: "Splice images side by side and lay text over them",
	Long: `imgsplice joins several images horizontally or vertically onto one canvas,
sized automatically, to a preset aspect ratio or to an exact pixel size,
and draws rotated, multi-line text annotations on top.

Compositions are described in TOML project files. Output filenames are
content-addressed: <name>.<w>.<h>.<hash>.<ext>`,
	Version:      version,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		level := log.InfoLevel
		if verbose {
			level = log.DebugLevel
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		cmd.SetContext(withLogger(ctx, newLogger(os.Stderr, level)))
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"imgsplice %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// ExitCode maps err to a process exit status: 2 for rejected input or
// config, 1 for everything else.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.IsInput(err):
		return 2
	default:
		return 1
	}
}
