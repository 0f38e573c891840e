package render

import (
	"bytes"
	"encoding/xml"
	"sort"

	svg "github.com/ajstarks/svgo/float"

	"github.com/matzehuels/chartstack/pkg/chart"
	"github.com/matzehuels/chartstack/pkg/errors"
)

// DefaultStyle is the mark renderer selected when none is configured.
const DefaultStyle = "simple"

// MarkRenderer defines the visual treatment of individual chart marks.
// Implementations receive the full geometry for context plus one mark at a
// time, and draw onto the shared canvas.
type MarkRenderer interface {
	// Name reports the style name recorded in JSON output.
	Name() string
	// RenderDefs writes SVG <defs> content (filters, patterns, gradients).
	RenderDefs(canvas *svg.SVG, g *chart.Geometry)
	// RenderBar draws a single bar mark.
	RenderBar(canvas *svg.SVG, g *chart.Geometry, m chart.BarMark)
	// RenderLabel draws a single label mark.
	RenderLabel(canvas *svg.SVG, g *chart.Geometry, m chart.LabelMark)
}

// ParseStyle resolves a style name to its renderer. Empty selects the
// default.
func ParseStyle(name string) (MarkRenderer, error) {
	if name == "" {
		name = DefaultStyle
	}
	switch name {
	case "simple":
		return Simple{}, nil
	case "sketch":
		return Sketch{}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidStyle, "unknown style: %q", name)
}

// ValidStyle reports whether name resolves to a mark renderer.
func ValidStyle(name string) bool {
	_, err := ParseStyle(name)
	return err == nil
}

// StyleNames returns all style names in sorted order.
func StyleNames() []string {
	names := []string{"simple", "sketch"}
	sort.Strings(names)
	return names
}

// =============================================================================
// Mark geometry
// =============================================================================

// barRect converts a bar mark into rectangle pixel bounds. The geometry's
// orientation decides which pixel axis the independent coordinate lands on.
// A positive per-mark width attribute overrides the chart bar width.
func barRect(g *chart.Geometry, m chart.BarMark) (x, y, w, h float64) {
	bw := g.BarWidth
	if v, ok := m.Style.Float("width"); ok && v > 0 {
		bw = v
	}
	lo, hi := m.Dependent0, m.Dependent1
	if lo > hi {
		lo, hi = hi, lo
	}
	if g.Horizontal {
		return lo, m.Independent - bw/2, hi - lo, bw
	}
	return m.Independent - bw/2, lo, bw, hi - lo
}

// labelPoint converts a label mark into its pixel anchor point.
func labelPoint(g *chart.Geometry, m chart.LabelMark) (x, y float64) {
	if g.Horizontal {
		return m.Dependent, m.Independent
	}
	return m.Independent, m.Dependent
}

// EscapeXML returns s with XML-significant characters escaped.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
