// Package pkg provides the core libraries for Chartstack bar chart layout
// and rendering.
//
// # Overview
//
// Chartstack turns declarative chart documents into fully positioned
// geometry and rendered artifacts. The pkg directory is organized into
// four main areas:
//
//  1. [chart] - Domain logic (style resolution, domains, scales, layout)
//  2. [io] - Document decoding and encoding (TOML, JSON)
//  3. [render] - SVG mark styles and format conversion
//  4. [pipeline] - Orchestration (decode → layout → render)
//
// # Architecture
//
// The typical data flow through Chartstack:
//
//	TOML/JSON document
//	         ↓
//	    [io] package (decode + validate)
//	         ↓
//	    [chart] package (styles, domains, scales, positions)
//	         ↓
//	    [render] package (SVG marks, PNG/PDF conversion)
//	         ↓
//	    SVG/PNG/PDF/JSON output
//
// # Quick Start
//
// Decode a document and render it to SVG:
//
//	import (
//	    "github.com/matzehuels/chartstack/pkg/chart"
//	    chartio "github.com/matzehuels/chartstack/pkg/io"
//	    "github.com/matzehuels/chartstack/pkg/render"
//	)
//
//	// 1. Decode the document
//	doc, _ := chartio.ImportDocument("chart.toml")
//
//	// 2. Compute geometry
//	g, _ := chart.Layout(doc.Props)
//
//	// 3. Render to SVG
//	svg := render.RenderSVG(g, render.WithStyle(render.Sketch{}))
//
// # Main Packages
//
// ## Core Domain Logic
//
// [chart] - The layout engine. Resolves the three-part style model,
// computes axis domains and scales, consolidates datasets against shared
// categories, and positions bars with grouping and sign-aware stacking.
// [chart/style] holds the attribute-map style model.
//
// [anim] - Keyframe interpolation. Builds a timeline of in-between chart
// states from a document's keyframes with configurable easing.
//
// ## Input/Output
//
// [io] - Document import and export. TOML and JSON decode into the same
// [chart.Props]; export writes canonical JSON with stable key order.
//
// ## Visualization
//
// [render] - SVG emission. Geometry renders through a mark style
// ([render.Simple] rectangles or [render.Sketch] hand-wobbled paths),
// standalone or as an embeddable fragment. Format conversion to PNG and
// PDF shells out to rsvg-convert. [fonts] names the font stacks the
// styles use.
//
// ## Infrastructure
//
// [pipeline] - Complete visualization pipeline (decode → layout → render)
// used by every CLI command. Ensures consistent defaults and override
// handling across all entry points.
//
// [cache] - Content-addressed artifact cache. FileCache for the CLI,
// NullCache for tests and cache-off runs.
//
// [errors] - Coded errors shared across the pipeline stages.
//
// [observability] - Logging setup and stage timing hooks.
//
// [buildinfo] - Version metadata stamped at build time.
//
// # Common Workflows
//
// Run the full pipeline with caching:
//
//	runner := pipeline.NewRunner(fileCache, nil, logger)
//	defer runner.Close()
//	result, _ := runner.Execute(ctx, pipeline.Options{
//	    Document: "chart.toml",
//	    Formats:  []string{pipeline.FormatSVG, pipeline.FormatPNG},
//	})
//
// Animate between keyframes:
//
//	timeline, _ := anim.NewTimeline(doc.States(), doc.Props.Animate)
//	for _, state := range timeline.Frames() {
//	    g, _ := chart.Layout(state)
//	    // render g
//	}
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...             # All tests
//	go test ./pkg/chart/...       # Specific package
//	go test -run Example          # Examples only
//
// [chart]: https://pkg.go.dev/github.com/matzehuels/chartstack/pkg/chart
// [chart/style]: https://pkg.go.dev/github.com/matzehuels/chartstack/pkg/chart/style
// [anim]: https://pkg.go.dev/github.com/matzehuels/chartstack/pkg/anim
// [io]: https://pkg.go.dev/github.com/matzehuels/chartstack/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/chartstack/pkg/render
// [fonts]: https://pkg.go.dev/github.com/matzehuels/chartstack/pkg/fonts
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/chartstack/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/chartstack/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/chartstack/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/chartstack/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/chartstack/pkg/buildinfo
package pkg
