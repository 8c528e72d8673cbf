package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/imgsplice/internal/manifest"
	"github.com/AnyUserName/imgsplice/internal/project"
)

var validateDecode bool

var validateCmd = &cobra.Command{
	Use:   "validate <project.toml | manifest | out_dir>",
	Short: "Validate a project file, or a manifest and the files it lists",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateDecode, "decode", true, "decode project images as part of validation")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return validateProject(cmd, path)
	}

	m, err := manifest.Read(path)
	if err != nil {
		return err
	}
	baseDir := path
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		baseDir = filepath.Dir(path)
	}

	errs := manifest.Check(m, baseDir)
	if len(errs) == 0 {
		fmt.Println("  ok: manifest is valid")
		fmt.Printf("  ok: %d outputs, all files present\n", m.Stats.TotalOutputs)
		return nil
	}
	fmt.Printf("  manifest has %d error(s):\n", len(errs))
	for _, e := range errs {
		fmt.Printf("    - %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errs))
}

func validateProject(cmd *cobra.Command, path string) error {
	logger := loggerFromContext(cmd.Context())

	p, err := project.Load(path)
	if err != nil {
		return err
	}
	if validateDecode {
		in, err := p.Input()
		if err != nil {
			return err
		}
		for _, img := range in.Images {
			logger.Debug("decoded", "image", img.ID, "width", img.Width, "height", img.Height)
		}
	} else if err := p.Validate(); err != nil {
		return err
	}

	fmt.Printf("  ok: %s (%d images, %d texts, %d icons, %s canvas)\n",
		p.Name, len(p.Images), len(p.Texts), len(p.Icons), p.Config.SizeMode)
	return nil
}
