package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartstack/pkg/chart"
	chartio "github.com/matzehuels/chartstack/pkg/io"
	"github.com/matzehuels/chartstack/pkg/pipeline"
)

// inspectCommand creates the inspect command for summarizing a document.
func (c *CLI) inspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [document]",
		Short: "Summarize a chart document without writing output",
		Long: `Summarize a chart document without writing output.

The inspect command decodes a document, runs a layout pass, and prints what
the chart resolves to: dataset and point counts, chart size, scale families,
derived axis domains, and the animation settings of keyframed documents.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(args[0])
		},
	}

	return cmd
}

// runInspect decodes the document and prints its resolved summary.
func (c *CLI) runInspect(input string) error {
	doc, err := chartio.ImportDocument(input)
	if err != nil {
		return err
	}

	g, err := chart.Layout(doc.Props)
	if err != nil {
		return fmt.Errorf("layout %s: %w", input, err)
	}

	points := 0
	for _, ds := range doc.Props.Data {
		points += len(ds)
	}

	printInfo("Document: %s", StyleHighlight.Render(input))
	printKeyValue("Datasets", fmt.Sprintf("%d", len(doc.Props.Data)))
	printKeyValue("Points", fmt.Sprintf("%d", points))
	printKeyValue("Size", fmt.Sprintf("%g x %g", g.Width, g.Height))
	printKeyValue("Scales", scaleSummary(doc.Props.Scales))
	if doc.Props.ColorScale != "" {
		printKeyValue("Palette", doc.Props.ColorScale)
	}
	printKeyValue("Mode", modeSummary(doc.Props))
	printKeyValue("X domain", spanSummary(g.XDomain))
	printKeyValue("Y domain", spanSummary(g.YDomain))
	printKeyValue("Bars", fmt.Sprintf("%d", len(g.Bars)))
	if len(g.Labels) > 0 {
		printKeyValue("Labels", fmt.Sprintf("%d", len(g.Labels)))
	}

	if len(doc.Keyframes) > 0 {
		timeline, cfg, err := pipeline.BuildTimeline(doc, pipeline.Options{})
		if err != nil {
			return err
		}
		printKeyValue("Keyframes", fmt.Sprintf("%d", len(doc.Keyframes)))
		printKeyValue("Animation", fmt.Sprintf("%d frames, %s per transition, %s easing",
			timeline.FrameCount(), cfg.Duration, cfg.Easing))
	}

	return nil
}

// scaleSummary formats the per-axis scale families, defaulting to linear.
func scaleSummary(s chart.ScaleSpec) string {
	x, y := s.X, s.Y
	if x == "" {
		x = "linear"
	}
	if y == "" {
		y = "linear"
	}
	if x == y {
		return x
	}
	return fmt.Sprintf("x %s, y %s", x, y)
}

// modeSummary describes how datasets are arranged.
func modeSummary(p chart.Props) string {
	var parts []string
	if p.Stacked {
		parts = append(parts, "stacked")
	} else if len(p.Data) > 1 {
		parts = append(parts, "grouped")
	}
	if p.Horizontal {
		parts = append(parts, "horizontal")
	} else {
		parts = append(parts, "vertical")
	}
	return strings.Join(parts, ", ")
}

// spanSummary formats a domain span.
func spanSummary(s chart.Span) string {
	return fmt.Sprintf("[%g, %g]", s.Min, s.Max)
}
