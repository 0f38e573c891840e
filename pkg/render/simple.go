package render

import (
	svg "github.com/ajstarks/svgo/float"

	"github.com/matzehuels/chartstack/pkg/chart"
)

// Simple renders bars as plain rectangles. It is the default style.
type Simple struct{}

// Name implements MarkRenderer.
func (Simple) Name() string { return "simple" }

// RenderDefs implements MarkRenderer. Simple needs no defs.
func (Simple) RenderDefs(*svg.SVG, *chart.Geometry) {}

// RenderBar implements MarkRenderer.
func (Simple) RenderBar(canvas *svg.SVG, g *chart.Geometry, m chart.BarMark) {
	x, y, w, h := barRect(g, m)
	canvas.Rect(x, y, w, h, `class="bar"`, m.Style.CSS())
}

// RenderLabel implements MarkRenderer.
func (Simple) RenderLabel(canvas *svg.SVG, g *chart.Geometry, m chart.LabelMark) {
	x, y := labelPoint(g, m)
	canvas.Text(x, y, m.Text, `class="bar-label"`, m.Style.CSS())
}
