package pipeline

import (
	"github.com/matzehuels/chartstack/pkg/chart"
)

// =============================================================================
// Geometry Generation
// =============================================================================

// GenerateGeometry computes bar and label geometry for one prop state with
// the option overrides applied.
func GenerateGeometry(props chart.Props, opts Options) (*chart.Geometry, error) {
	return chart.Layout(applyOverrides(props, opts))
}

// countPoints sums the data points across every dataset of a prop state.
func countPoints(p chart.Props) int {
	n := 0
	for _, ds := range p.Data {
		n += len(ds)
	}
	return n
}
