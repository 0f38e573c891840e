package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartstack/pkg/chart"
	chartio "github.com/matzehuels/chartstack/pkg/io"
	"github.com/matzehuels/chartstack/pkg/pipeline"
)

// previewCommand creates the preview command for playing a chart in the terminal.
func (c *CLI) previewCommand() *cobra.Command {
	var duration time.Duration
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "preview [document]",
		Short: "Play a chart document in the terminal",
		Long: `Play a chart document in the terminal.

The preview command decodes a document and draws it as a text bar chart.
Documents with keyframes play as a looping animation; press space to pause,
the arrow keys to step frame by frame, and q to quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Duration = duration
			if err := pipeline.ValidateEasing(opts.Easing); err != nil {
				return err
			}
			return c.runPreview(cmd.Context(), args[0], opts)
		},
	}

	// Layout flags
	cmd.Flags().BoolVar(&opts.Horizontal, "horizontal", opts.Horizontal, "grow bars sideways")
	cmd.Flags().BoolVar(&opts.Stacked, "stacked", opts.Stacked, "stack datasets instead of grouping them")
	cmd.Flags().StringVar(&opts.Scale, "scale", opts.Scale, "scale family for both axes: linear, log, pow, sqrt, time")
	cmd.Flags().StringVar(&opts.Palette, "palette", opts.Palette, "palette used to tint datasets")

	// Animation flags
	cmd.Flags().IntVar(&opts.Frames, "frames", opts.Frames, "frames per keyframe transition (default: document setting)")
	cmd.Flags().StringVar(&opts.Easing, "easing", opts.Easing, "easing curve (default: document setting)")
	cmd.Flags().DurationVar(&duration, "duration", 0, "duration per transition (default: document setting)")

	return cmd
}

// runPreview decodes the document and runs the terminal player.
func (c *CLI) runPreview(ctx context.Context, input string, opts pipeline.Options) error {
	// The preview writes no artifacts, so the cache stays out of the way.
	runner, err := c.newRunner(true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	opts.Document = input

	doc, err := runner.Decode(ctx, opts)
	if err != nil {
		return err
	}

	frames, delay, err := previewFrames(ctx, runner, doc, opts)
	if err != nil {
		return err
	}
	if len(frames) == 1 && len(doc.States()) == 1 {
		printWarning("Document has no keyframes; showing a static chart")
	}

	model := newPlayerModel(filepath.Base(input), frames, delay)
	prog := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}

// previewFrames expands the document into the geometry sequence the player
// steps through. Static documents produce a single frame.
func previewFrames(ctx context.Context, runner *pipeline.Runner, doc *chartio.Document, opts pipeline.Options) ([]*chart.Geometry, time.Duration, error) {
	timeline, cfg, err := pipeline.BuildTimeline(doc, opts)
	if err != nil {
		return nil, 0, err
	}

	delay := cfg.Duration / time.Duration(cfg.Frames)

	if timeline == nil {
		g, err := runner.GenerateGeometry(ctx, doc.Props, opts)
		if err != nil {
			return nil, 0, err
		}
		return []*chart.Geometry{g}, delay, nil
	}

	states := timeline.Frames()
	frames := make([]*chart.Geometry, 0, len(states))
	for _, props := range states {
		g, err := runner.GenerateGeometry(ctx, props, opts)
		if err != nil {
			return nil, 0, err
		}
		frames = append(frames, g)
	}
	return frames, delay, nil
}
