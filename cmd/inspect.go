package cmd

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/AnyUserName/imgsplice/internal/icon"
	"github.com/AnyUserName/imgsplice/internal/layout"
	"github.com/AnyUserName/imgsplice/internal/project"
	"github.com/AnyUserName/imgsplice/internal/text"
)

var (
	inspectText string
	inspectX    float64
	inspectY    float64
	inspectDrag string
	inspectDX   float64
	inspectDY   float64
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <project.toml>",
	Short: "Show layout and text geometry for a project",
	Long: `Without --text, prints the canvas plan: size, content area and the
position of every image.

With --text, prints the element's measured size, bounds, rotation pivot and
handle positions. --x/--y hit-test a canvas point against the element and
its handles. --drag with --dx/--dy resizes from a corner and prints the
resulting element as TOML.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&inspectText, "text", "", "text element id")
	inspectCmd.Flags().Float64Var(&inspectX, "x", 0, "canvas x to hit-test")
	inspectCmd.Flags().Float64Var(&inspectY, "y", 0, "canvas y to hit-test")
	inspectCmd.Flags().StringVar(&inspectDrag, "drag", "", "corner to drag: top-left, top-right, bottom-right, bottom-left")
	inspectCmd.Flags().Float64Var(&inspectDX, "dx", 0, "drag distance along x")
	inspectCmd.Flags().Float64Var(&inspectDY, "dy", 0, "drag distance along y")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	p, err := project.Load(args[0])
	if err != nil {
		return err
	}
	if inspectText == "" {
		return inspectLayout(p)
	}

	e, ok := p.Text(inspectText)
	if !ok {
		return fmt.Errorf("no text %q in %s (have %v)", inspectText, p.Name, p.TextIDs())
	}
	if err := e.Validate(); err != nil {
		return err
	}
	lib, err := p.Fonts()
	if err != nil {
		return err
	}

	l := text.LayoutOf(lib, e)
	fmt.Printf("  %s\n", e)
	fmt.Printf("  Size:    %.2f x %.2f\n", l.Size.W, l.Size.H)
	fmt.Printf("  Bounds:  (%.2f, %.2f) %.2f x %.2f\n", l.Bounds.X, l.Bounds.Y, l.Bounds.Width, l.Bounds.Height)
	pv := l.Pivot()
	fmt.Printf("  Pivot:   (%.2f, %.2f)\n", pv.X, pv.Y)
	for i, c := range text.Corners(lib, e) {
		fmt.Printf("  Handle %-12s (%.2f, %.2f)\n", text.Corner(i).String()+":", c.X, c.Y)
	}

	if cmd.Flags().Changed("x") || cmd.Flags().Changed("y") {
		fmt.Println()
		fmt.Printf("  Point (%.2f, %.2f)\n", inspectX, inspectY)
		fmt.Printf("    inside text: %v\n", text.Contains(lib, e, inspectX, inspectY))
		if h, ok := text.HandleAt(lib, e, inspectX, inspectY); ok {
			fmt.Printf("    handle:      %s (%s)\n", h.Corner, h.Kind)
		} else {
			fmt.Println("    handle:      none")
		}
		if id, ok := text.Pick(lib, p.Texts, inspectX, inspectY); ok {
			fmt.Printf("    topmost:     %s\n", id)
		}
	}

	if inspectDrag != "" {
		corner, ok := text.ParseCorner(inspectDrag)
		if !ok {
			return fmt.Errorf("unknown corner %q", inspectDrag)
		}
		resized := text.Resize(lib, e, corner, inspectDX, inspectDY)
		fmt.Println()
		return toml.NewEncoder(os.Stdout).Encode(map[string][]text.Element{"text": {resized}})
	}
	return nil
}

func inspectLayout(p *project.Project) error {
	in, err := p.Input()
	if err != nil {
		return err
	}
	dims := make([]layout.Dim, len(in.Images))
	for i, img := range in.Images {
		dims[i] = layout.Dim{W: img.Width, H: img.Height}
	}
	plan, err := layout.Compute(dims, in.Config, in.Presets)
	if err != nil {
		return err
	}

	fmt.Printf("  Canvas:   %d x %d (%s)\n", plan.Width, plan.Height, p.Config.SizeMode)
	fmt.Printf("  Natural:  %.2f x %.2f\n", plan.Natural.W, plan.Natural.H)
	fmt.Printf("  Resolved: %.2f x %.2f\n", plan.Resolved.W, plan.Resolved.H)
	c := plan.Content
	fmt.Printf("  Content:  (%.2f, %.2f) %.2f x %.2f\n", c.X, c.Y, c.Width, c.Height)
	fmt.Printf("  Group:    (%.2f, %.2f)\n", plan.Group.X, plan.Group.Y)
	for i, img := range in.Images {
		pos := plan.Positions[i]
		fmt.Printf("  Image %-10s %4dx%-4d at (%.2f, %.2f)\n", img.ID, img.Width, img.Height, pos.X, pos.Y)
	}
	for _, ic := range icon.SortByZ(in.Icons) {
		fmt.Printf("  %s z=%d\n", ic, ic.ZIndex)
	}
	return nil
}
