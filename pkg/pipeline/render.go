package pipeline

import (
	"github.com/matzehuels/chartstack/pkg/chart"
	"github.com/matzehuels/chartstack/pkg/errors"
	"github.com/matzehuels/chartstack/pkg/render"
)

// RenderArtifacts generates output artifacts in the requested formats
// without caching. The Runner layers the artifact cache for converted
// formats on top of this.
func RenderArtifacts(g *chart.Geometry, opts Options) (map[string][]byte, error) {
	svgDoc, err := renderSVGDocument(g, opts)
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = svgDoc
		case FormatJSON:
			data, err = renderJSONDocument(g, opts)
		case FormatPNG, FormatPDF:
			data, err = convertSVG(svgDoc, format, opts)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderSVGDocument renders the SVG document that svg, png, and pdf output
// all derive from. It returns nil when no requested format needs it.
func renderSVGDocument(g *chart.Geometry, opts Options) ([]byte, error) {
	if !opts.NeedsSVG() {
		return nil, nil
	}
	svgOpts, err := buildSVGOptions(opts)
	if err != nil {
		return nil, err
	}
	if opts.Fragment {
		frag := *g
		frag.Standalone = false
		g = &frag
	}
	return render.RenderSVG(g, svgOpts...), nil
}

// renderJSONDocument renders the JSON interchange document.
func renderJSONDocument(g *chart.Geometry, opts Options) ([]byte, error) {
	var jsonOpts []render.JSONOption
	if opts.Style != "" {
		jsonOpts = append(jsonOpts, render.WithJSONStyle(opts.Style))
	}
	if opts.ChartID != "" {
		jsonOpts = append(jsonOpts, render.WithJSONChartID(opts.ChartID))
	}
	return render.RenderJSON(g, jsonOpts...)
}

// convertSVG converts the rendered SVG document into a derived format.
func convertSVG(svgDoc []byte, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatPNG:
		return render.ToPNG(svgDoc, opts.PNGScale)
	case FormatPDF:
		return render.ToPDF(svgDoc)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "format %q is not derived from svg", format)
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(opts Options) ([]render.SVGOption, error) {
	var svgOpts []render.SVGOption

	if opts.Style != "" {
		mr, err := render.ParseStyle(opts.Style)
		if err != nil {
			return nil, err
		}
		svgOpts = append(svgOpts, render.WithStyle(mr))
	}
	if opts.ChartID != "" {
		svgOpts = append(svgOpts, render.WithChartID(opts.ChartID))
	}
	if opts.Title != "" {
		svgOpts = append(svgOpts, render.WithTitle(opts.Title))
	}

	return svgOpts, nil
}
