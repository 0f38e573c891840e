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

// renderCommand creates the render command for turning documents into graphics.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [document]",
		Short: "Render a chart document to SVG, PNG, PDF, or JSON",
		Long: `Render a chart document to SVG, PNG, PDF, or JSON.

The render command decodes a chart document (TOML or JSON), computes the bar
geometry, and writes the requested output formats. Flags override document
settings; anything not overridden keeps its document value.

Converted outputs (png, pdf) are cached locally for faster subsequent runs.`,
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
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	// Layout flags
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "chart width in pixels")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "chart height in pixels")
	cmd.Flags().BoolVar(&opts.Horizontal, "horizontal", opts.Horizontal, "grow bars sideways")
	cmd.Flags().BoolVar(&opts.Stacked, "stacked", opts.Stacked, "stack datasets instead of grouping them")
	cmd.Flags().StringVar(&opts.Scale, "scale", opts.Scale, "scale family for both axes: linear, log, pow, sqrt, time")
	cmd.Flags().StringVar(&opts.Palette, "palette", opts.Palette, "palette used to tint datasets")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVar(&opts.Style, "style", opts.Style, "mark style: simple (default), sketch")
	cmd.Flags().StringVar(&opts.Title, "title", opts.Title, "accessible chart title")
	cmd.Flags().StringVar(&opts.ChartID, "id", opts.ChartID, "chart element id (default: random)")
	cmd.Flags().BoolVar(&opts.Fragment, "fragment", opts.Fragment, "emit an embeddable fragment instead of a standalone document")
	cmd.Flags().Float64Var(&opts.PNGScale, "png-scale", opts.PNGScale, "raster scale factor for png output")

	return cmd
}

// runRender executes the full pipeline and writes the requested artifacts.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	opts.Document = input

	spinner := newSpinnerWithContext(ctx, "Rendering chart...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		cacheHit:  result.CacheInfo.RenderHit,
		datasets:  result.Stats.DatasetCount,
		bars:      result.Stats.BarCount,
	})
}

// =============================================================================
// Artifact Output
// =============================================================================

// artifactWriteParams bundles the inputs for writeArtifacts.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string // source path used to derive default output names
	output    string // explicit output path or base path, may be empty
	cacheHit  bool
	datasets  int
	bars      int
}

// writeArtifacts writes every requested format to disk and prints the result.
// A single format goes to params.output verbatim when set; otherwise each
// format goes to <base>.<format> derived via basePath.
func writeArtifacts(p artifactWriteParams) error {
	base := basePath(p.output, p.input)

	var paths []string
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}

		path := base + "." + format
		if p.output != "" && len(p.formats) == 1 {
			path = p.output
		}

		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	printSuccess("Render complete")
	for _, path := range paths {
		printFile(path)
	}
	printStats(p.datasets, p.bars, p.cacheHit)
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input. If output carries a
// known format extension (.svg, .png, ...), that extension is stripped so the
// per-format suffix can be appended cleanly.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
