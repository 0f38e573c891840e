package render

import (
	"encoding/json"

	"github.com/matzehuels/chartstack/pkg/chart"
	"github.com/matzehuels/chartstack/pkg/errors"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	style   string
	chartID string
}

// WithJSONStyle records the style name (e.g. "simple", "sketch") in the
// JSON output for documentation or round-trip rendering.
func WithJSONStyle(name string) JSONOption { return func(r *jsonRenderer) { r.style = name } }

// WithJSONChartID records the chart id used for standalone SVG output,
// enabling reproducible re-rendering.
func WithJSONChartID(id string) JSONOption { return func(r *jsonRenderer) { r.chartID = id } }

type jsonDocument struct {
	Style   string          `json:"style,omitempty"`
	ChartID string          `json:"chart_id,omitempty"`
	Chart   *chart.Geometry `json:"chart"`
}

// RenderJSON exports the geometry and its render options as a
// pretty-printed JSON document. This is the primary data interchange
// format, enabling:
//
//   - Integration with external visualization tools
//   - Caching computed layouts for fast re-rendering
//   - Round-trip rendering via [ParseJSON]
//
// RenderJSON does not modify g and is safe to call concurrently.
func RenderJSON(g *chart.Geometry, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	doc := jsonDocument{Style: r.style, ChartID: r.chartID, Chart: g}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to encode geometry")
	}
	return data, nil
}

// ParseJSON reads a document produced by [RenderJSON] back into memory.
// It returns the geometry plus the recorded style name, which may be
// empty when the producer did not set one.
func ParseJSON(data []byte) (*chart.Geometry, string, error) {
	var doc jsonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInvalidDocument, err, "invalid geometry document")
	}
	if doc.Chart == nil {
		return nil, "", errors.New(errors.ErrCodeInvalidDocument, "geometry document has no chart object")
	}
	return doc.Chart, doc.Style, nil
}
