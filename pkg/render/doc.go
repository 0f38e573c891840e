// Package render turns computed chart geometry into output documents.
//
// # Overview
//
// This package contains the emission side of the pipeline. Layout produces
// a [chart.Geometry]; render serializes it:
//
//   - SVG documents or embeddable fragments ([RenderSVG])
//   - JSON interchange documents ([RenderJSON], [ParseJSON])
//   - Generic format conversion (SVG to PDF/PNG)
//
// # Mark renderers
//
// A [MarkRenderer] draws individual bars and labels onto an SVG canvas.
// Two implementations ship with the package: [Simple] draws clean
// rectangles, [Sketch] draws hand-wobbled paths. Both write through
// github.com/ajstarks/svgo/float so coordinates serialize uniformly.
//
//	geom, err := chart.Layout(props)
//	svg := render.RenderSVG(geom, render.WithStyle(render.Sketch{}))
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
// # JSON interchange
//
// [RenderJSON] emits the geometry with its render options as a
// pretty-printed document; [ParseJSON] reads one back. The round trip is
// lossless, so layouts can be cached and re-rendered without recomputing.
//
// [chart.Geometry]: github.com/matzehuels/chartstack/pkg/chart
package render
