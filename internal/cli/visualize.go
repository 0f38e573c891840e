package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartstack/pkg/pipeline"
	"github.com/matzehuels/chartstack/pkg/render"
)

// visualizeCommand creates the visualize command for drawing a layout file.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render a computed layout to SVG, PNG, or PDF",
		Long: `Render a computed layout.

The visualize command takes a layout.json file (produced by 'layout') and
renders it to SVG, PNG, or PDF. The layout carries the complete geometry, so
this step is purely about drawing.

Use 'render' as a shortcut to go directly from a document to visual output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if opts.Style != "" {
				if err := pipeline.ValidateStyle(opts.Style); err != nil {
					return err
				}
			}
			return c.runVisualize(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf (comma-separated)")
	cmd.Flags().StringVar(&opts.Style, "style", opts.Style, "mark style override (default: style recorded in the layout)")
	cmd.Flags().StringVar(&opts.Title, "title", opts.Title, "accessible chart title")
	cmd.Flags().StringVar(&opts.ChartID, "id", opts.ChartID, "chart element id (default: random)")
	cmd.Flags().BoolVar(&opts.Fragment, "fragment", opts.Fragment, "emit an embeddable fragment instead of a standalone document")
	cmd.Flags().Float64Var(&opts.PNGScale, "png-scale", opts.PNGScale, "raster scale factor for png output")

	return cmd
}

// runVisualize loads the layout and renders it.
func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}
	g, styleName, err := render.ParseJSON(data)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	// The layout records the style it was produced with; flags win.
	if opts.Style == "" && styleName != "" {
		opts.Style = styleName
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Rendering layout...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderArtifactsWithCacheInfo(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		cacheHit:  cacheHit,
		datasets:  g.DatasetCount(),
		bars:      len(g.Bars),
	})
}
