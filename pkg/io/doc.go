// Package io reads and writes chart documents in TOML and JSON.
//
// # Overview
//
// A chart document is a declarative description of one bar chart: the data,
// optional series styling, axis configuration and an animation block. The
// same logical document can be written in TOML (the authoring format) or
// JSON (the interchange format); both decode to identical [chart.Props].
//
// The format is designed for:
//
//   - Hand-written chart definitions kept next to the data they plot
//   - Integration with tools that generate chart configurations
//   - Round-trip preservation: import, transform, export, and re-import
//
// # Document Format
//
// The minimal document carries just the data:
//
//	data = [[1, 5], [2, 8], [3, 4]]
//
// A fuller document names its series and configures the chart:
//
//	width = 600
//	height = 400
//	stacked = true
//	color_scale = "qualitative"
//	labels = ["Q1", "Q2", "Q3"]
//
//	[scales]
//	y = "linear"
//
//	[domain]
//	y = [0, 100]
//
//	[[series]]
//	name = "north"
//	points = [[1, 20], [2, 35], [3, 30]]
//
//	[[series]]
//	name = "south"
//	attrs = { fill = "tomato" }
//	points = [[1, 15], [2, 25], [3, 40]]
//
// A document carries either the flat data array or series entries, never
// both.
//
// # Field Shapes
//
// Several fields accept more than one shape, normalized during decoding:
//
//   - padding: a single number for all four sides, or a table with top,
//     right, bottom and left keys
//   - domain: a bare [min, max] pair for the shared domain, or a table of
//     per-axis entries (x, y, shared), each a pair or a min/max table
//   - scales: a single scale name applied to both axes, or a table of
//     per-axis names
//   - categories: a bare string array for x-axis labels, or a table of
//     per-axis entries; each axis is a string array (labels), an array of
//     pairs (bands), or a table with explicit labels and bands keys
//   - data points: an [x, y] pair or a table with x, y and optional
//     category, label and attrs keys; unknown point keys are treated as
//     style shorthand
//   - durations: Go duration strings ("750ms", "1.5s") or bare
//     millisecond numbers
//
// # Keyframes
//
// An animated document declares keyframes, each a patch over the previous
// state:
//
//	[animate]
//	duration = "800ms"
//	easing = "cubicInOut"
//
//	[[keyframes]]
//	data = [[1, 8], [2, 3], [3, 9]]
//
//	[[keyframes]]
//	data = [[1, 2], [2, 7], [3, 5]]
//	[keyframes.attrs]
//	fill = "steelblue"
//
// Patches are cumulative: absent fields keep the previous value, data and
// domain replace wholesale, attrs and style merge. [Document.States]
// returns the fully resolved sequence for tweening.
//
// # Import
//
// Use [ImportDocument] to read a document from a file path, or
// [ReadDocument] to read from any io.Reader:
//
//	doc, err := io.ImportDocument("chart.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	geom, err := chart.Layout(&doc.Props)
//
// Validation errors carry the INVALID_DOCUMENT code and name the field
// that failed.
//
// # Export
//
// Use [ExportProps] or [ExportDocument] to write a JSON document file, or
// [WriteProps] and [WriteDocument] to write to any io.Writer. Export picks
// one canonical shape per field, so output is deterministic and accepted
// unchanged by [ReadDocument]. Keyframes are written as full patches over
// the base; re-importing reproduces the same resolved sequence.
//
// Export does not distinguish an empty list from an absent one: a keyframe
// that cleared the labels re-imports as one that inherits them.
//
// # Related Packages
//
// Documents describe chart inputs. For computed geometry interchange, use
// [render.RenderJSON], which exports the full [chart.Geometry] including
// mark coordinates and resolved styles.
//
// [render.RenderJSON]: github.com/matzehuels/chartstack/pkg/render.RenderJSON
// [chart.Geometry]: github.com/matzehuels/chartstack/pkg/chart.Geometry
package io
