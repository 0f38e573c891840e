package pipeline

import (
	"bytes"

	"github.com/matzehuels/chartstack/pkg/chart"
	chartio "github.com/matzehuels/chartstack/pkg/io"
)

// Decode reads the chart document selected by the options. Inline source
// wins over a document path so embedders can hand content straight through
// without touching disk.
func Decode(opts Options) (*chartio.Document, error) {
	if len(opts.Source) > 0 {
		return chartio.ReadDocument(bytes.NewReader(opts.Source), chartio.Format(opts.SourceFormat))
	}
	return chartio.ImportDocument(opts.Document)
}

// documentName identifies the decoded document in logs and hooks.
func documentName(opts Options) string {
	if opts.Document != "" {
		return opts.Document
	}
	return "inline"
}

// applyOverrides layers option overrides onto one prop state. The document
// stays authoritative for every field the options leave at zero.
func applyOverrides(p chart.Props, opts Options) chart.Props {
	if opts.Width > 0 {
		p.Width = opts.Width
	}
	if opts.Height > 0 {
		p.Height = opts.Height
	}
	if opts.Horizontal {
		p.Horizontal = true
	}
	if opts.Stacked {
		p.Stacked = true
	}
	if opts.Scale != "" {
		// Same shorthand as a bare scale string in the document: one
		// family for both axes.
		p.Scales = chart.ScaleSpec{X: opts.Scale, Y: opts.Scale}
	}
	if opts.Palette != "" {
		p.ColorScale = opts.Palette
	}
	if opts.Easing != "" || opts.Frames > 0 || opts.Duration > 0 {
		cfg := chart.Animation{}
		if p.Animate != nil {
			cfg = *p.Animate
		}
		if opts.Easing != "" {
			cfg.Easing = opts.Easing
		}
		if opts.Frames > 0 {
			cfg.Frames = opts.Frames
		}
		if opts.Duration > 0 {
			cfg.Duration = opts.Duration
		}
		p.Animate = &cfg
	}
	return p
}
