package chart

import (
	"sort"

	"github.com/matzehuels/chartstack/pkg/chart/style"
)

// labelDataset picks the one dataset per group that carries labels: the
// center dataset when grouped, the last when stacked.
func labelDataset(n int, stacked bool) int {
	if stacked {
		return n - 1
	}
	return n / 2
}

// placeLabels attaches one label mark per point of the label-carrying
// dataset. A point with its own label text wins; otherwise the text is
// resolved from the configured labels list via the label index. Points
// resolving to no text produce no mark.
//
// Labels share the bar's independent coordinate and sit beyond the bar end
// by the label padding, in the bar's growth direction.
func placeLabels(p *Props, c *Consolidated, marks []BarMark, labelStyle style.Attrs) []LabelMark {
	carrier := labelDataset(len(c.Datasets), p.Stacked)
	padding, ok := labelStyle.Float("padding")
	if !ok {
		padding = 10
	}

	positions := sortedUniqueX(c)

	var labels []LabelMark
	for _, mark := range marks {
		if mark.Dataset != carrier {
			continue
		}

		text := mark.Datum.Label
		if text == "" {
			text = resolveLabelText(p, c, mark.Datum, positions)
		}
		if text == "" {
			continue
		}

		labels = append(labels, LabelMark{
			Dataset:     mark.Dataset,
			Index:       mark.Index,
			Text:        text,
			Independent: mark.Independent,
			Dependent:   labelAnchor(mark, padding),
			Style:       labelStyle,
		})
	}
	return labels
}

// labelAnchor offsets the label from the bar end, continuing past it in
// the direction the bar grows. Zero-height bars anchor above the baseline.
func labelAnchor(mark BarMark, padding float64) float64 {
	dir := -1.0
	if mark.Dependent1 > mark.Dependent0 {
		dir = 1.0
	}
	return mark.Dependent1 + dir*padding
}

// resolveLabelText indexes the configured labels list. The label index is
// the point's category when present; else the string encoding of x minus
// one when the x axis is categorical; else the position of x among the
// sorted unique x values. Out-of-range indexes fall back to the first
// label; an empty list resolves to no text.
func resolveLabelText(p *Props, c *Consolidated, datum Datum, positions map[float64]int) string {
	if len(p.Labels) == 0 {
		return ""
	}

	var idx int
	switch {
	case datum.Category != nil:
		idx = *datum.Category
	case len(c.Strings.X) > 0:
		idx = int(datum.X) - 1
	default:
		idx = positions[datum.X]
	}

	if idx < 0 || idx >= len(p.Labels) {
		return p.Labels[0]
	}
	return p.Labels[idx]
}

// sortedUniqueX maps each distinct x value to its position in the sorted
// set of unique x values across all datasets.
func sortedUniqueX(c *Consolidated) map[float64]int {
	seen := map[float64]bool{}
	for _, ds := range c.Datasets {
		for _, pt := range ds.Points {
			seen[pt.X] = true
		}
	}

	unique := make([]float64, 0, len(seen))
	for v := range seen {
		unique = append(unique, v)
	}
	sort.Float64s(unique)

	positions := make(map[float64]int, len(unique))
	for i, v := range unique {
		positions[v] = i
	}
	return positions
}
