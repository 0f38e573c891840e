package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartstack/pkg/pipeline"
)

// animateCommand creates the animate command for rendering keyframed documents.
func (c *CLI) animateCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		duration   time.Duration
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "animate [document]",
		Short: "Render every frame of a keyframed document",
		Long: `Render every frame of a keyframed document.

The animate command decodes a document with keyframes, interpolates the
in-between states, and renders one file per frame into an output directory.
Frame files are numbered frame_000.svg, frame_001.svg, and so on.

The document must define at least one keyframe beyond its base state.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			opts.Duration = duration
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if err := pipeline.ValidateEasing(opts.Easing); err != nil {
				return err
			}
			return c.runAnimate(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory (default: <input>_frames)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	// Layout flags
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "chart width in pixels")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "chart height in pixels")
	cmd.Flags().BoolVar(&opts.Horizontal, "horizontal", opts.Horizontal, "grow bars sideways")
	cmd.Flags().BoolVar(&opts.Stacked, "stacked", opts.Stacked, "stack datasets instead of grouping them")
	cmd.Flags().StringVar(&opts.Scale, "scale", opts.Scale, "scale family for both axes: linear, log, pow, sqrt, time")
	cmd.Flags().StringVar(&opts.Palette, "palette", opts.Palette, "palette used to tint datasets")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf (comma-separated)")
	cmd.Flags().StringVar(&opts.Style, "style", opts.Style, "mark style: simple (default), sketch")
	cmd.Flags().StringVar(&opts.ChartID, "id", opts.ChartID, "chart element id shared by all frames (default: random)")
	cmd.Flags().Float64Var(&opts.PNGScale, "png-scale", opts.PNGScale, "raster scale factor for png output")

	// Animation flags
	cmd.Flags().IntVar(&opts.Frames, "frames", opts.Frames, "frames per keyframe transition (default: document setting)")
	cmd.Flags().StringVar(&opts.Easing, "easing", opts.Easing, "easing curve (default: document setting)")
	cmd.Flags().DurationVar(&duration, "duration", 0, "duration per transition (default: document setting)")

	return cmd
}

// runAnimate renders the full animation into the output directory.
func (c *CLI) runAnimate(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	opts.Document = input

	spinner := newSpinnerWithContext(ctx, "Rendering animation...")
	spinner.Start()

	result, err := runner.ExecuteAnimation(ctx, opts)
	if err != nil {
		spinner.StopWithError("Animation failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	dir := output
	if dir == "" {
		dir = strings.TrimSuffix(input, filepath.Ext(input)) + "_frames"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory %s: %w", dir, err)
	}

	written := 0
	for i, frame := range result.Frames {
		for _, format := range opts.Formats {
			data, ok := frame[format]
			if !ok {
				continue
			}
			path := filepath.Join(dir, fmt.Sprintf("frame_%03d.%s", i, format))
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("write frame %s: %w", path, err)
			}
			written++
		}
	}

	printSuccess("Animation complete")
	printFile(dir)
	printDetail("%d frames, %d files", len(result.Frames), written)
	printNewline()
	printNextStep("Preview", "chartstack preview "+input)

	return nil
}
