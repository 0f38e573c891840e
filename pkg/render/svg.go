package render

import (
	"bytes"
	"fmt"

	svg "github.com/ajstarks/svgo/float"
	"github.com/google/uuid"

	"github.com/matzehuels/chartstack/pkg/chart"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style   MarkRenderer
	chartID string
	title   string
}

// WithStyle selects the mark renderer. Default is [Simple].
func WithStyle(s MarkRenderer) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithChartID pins the root element id of standalone output. Without this
// a fresh uuid-based id is generated per render, which is the only
// nondeterministic byte in the document.
func WithChartID(id string) SVGOption { return func(r *svgRenderer) { r.chartID = id } }

// WithTitle adds an accessible <title> to standalone output.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// RenderSVG serializes geometry as SVG. Standalone geometry becomes a
// complete <svg> document with a viewBox and a unique chart id; otherwise
// the marks are wrapped in an embeddable <g> fragment. Marks render in
// dataset then point order, so output is stable for a fixed id.
func RenderSVG(g *chart.Geometry, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	var buf bytes.Buffer
	if g.Standalone {
		id := r.chartID
		if id == "" {
			id = "chart-" + uuid.NewString()
		}
		fmt.Fprintf(&buf,
			`<svg xmlns="http://www.w3.org/2000/svg" id="%s" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f" role="img"`,
			EscapeXML(id), g.Width, g.Height, g.Width, g.Height)
		if css := g.Style.Parent.CSS(); css != "" {
			fmt.Fprintf(&buf, ` style="%s"`, css)
		}
		buf.WriteString(">\n")
		if r.title != "" {
			fmt.Fprintf(&buf, "<title>%s</title>\n", EscapeXML(r.title))
		}
	} else {
		buf.WriteString(`<g class="chart">` + "\n")
	}

	canvas := svg.New(&buf)
	r.style.RenderDefs(canvas, g)
	renderMarks(canvas, r.style, g)

	if g.Standalone {
		buf.WriteString("</svg>\n")
	} else {
		buf.WriteString("</g>\n")
	}
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: Simple{}}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// renderMarks draws dataset groups then the label group. Bars arrive from
// layout ordered by dataset, so group transitions are simple boundaries.
func renderMarks(canvas *svg.SVG, mr MarkRenderer, g *chart.Geometry) {
	ds := -1
	open := false
	for _, b := range g.Bars {
		if b.Dataset != ds {
			if open {
				canvas.Gend()
			}
			ds = b.Dataset
			open = true
			canvas.Group(`class="dataset"`, datasetAttr(b))
		}
		mr.RenderBar(canvas, g, b)
	}
	if open {
		canvas.Gend()
	}

	if len(g.Labels) == 0 {
		return
	}
	canvas.Group(`class="labels"`)
	for _, l := range g.Labels {
		mr.RenderLabel(canvas, g, l)
	}
	canvas.Gend()
}

func datasetAttr(b chart.BarMark) string {
	if b.Name != "" {
		return fmt.Sprintf(`data-name="%s"`, EscapeXML(b.Name))
	}
	return fmt.Sprintf(`data-index="%d"`, b.Dataset)
}
