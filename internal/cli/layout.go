package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartstack/pkg/pipeline"
)

// layoutCommand creates the layout command for computing chart geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [document]",
		Short: "Compute chart geometry from a document",
		Long: `Compute chart geometry from a document.

The layout command decodes a chart document (TOML or JSON) and computes the
complete bar geometry: resolved styles, axis domains, scaled positions, and
label placement. The output is a layout.json file (same format as
'render -f json') that can be drawn with the 'visualize' command.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Style != "" {
				if err := pipeline.ValidateStyle(opts.Style); err != nil {
					return err
				}
			}
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	// Layout flags
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "chart width in pixels")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "chart height in pixels")
	cmd.Flags().BoolVar(&opts.Horizontal, "horizontal", opts.Horizontal, "grow bars sideways")
	cmd.Flags().BoolVar(&opts.Stacked, "stacked", opts.Stacked, "stack datasets instead of grouping them")
	cmd.Flags().StringVar(&opts.Scale, "scale", opts.Scale, "scale family for both axes: linear, log, pow, sqrt, time")
	cmd.Flags().StringVar(&opts.Palette, "palette", opts.Palette, "palette used to tint datasets")
	cmd.Flags().StringVar(&opts.Style, "style", opts.Style, "mark style recorded in the layout: simple (default), sketch")

	return cmd
}

// runLayout decodes the document, computes geometry, and writes the layout file.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	opts.Document = input
	opts.Formats = []string{pipeline.FormatJSON}

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := os.WriteFile(outputPath, result.Artifacts[pipeline.FormatJSON], 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(result.Stats.DatasetCount, result.Stats.BarCount, false)
	printNewline()
	printNextStep("Render", "chartstack visualize "+outputPath)

	return nil
}
