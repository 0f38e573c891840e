package chart

import (
	"math"

	"github.com/matzehuels/chartstack/pkg/chart/scale"
	"github.com/matzehuels/chartstack/pkg/chart/style"
)

// axisRanges computes the pixel span assigned to each data axis. The
// independent (x) axis normally spans the plot width and the dependent (y)
// axis the plot height, inverted because SVG pixel y grows downward. The
// horizontal flag swaps the assignments so bars grow sideways.
func axisRanges(p *Props) (xRange, yRange Span) {
	across := Span{Min: p.Padding.Left, Max: p.Width - p.Padding.Right}
	down := Span{Min: p.Height - p.Padding.Bottom, Max: p.Padding.Top}
	if p.Horizontal {
		return down, across
	}
	return across, down
}

// buildScales constructs the per-axis mapping functions for this pass.
func buildScales(p *Props, xDomain, yDomain Span) (xs, ys *scale.Scale, err error) {
	xFamily, err := scale.ParseFamily(p.Scales.X)
	if err != nil {
		return nil, nil, err
	}
	yFamily, err := scale.ParseFamily(p.Scales.Y)
	if err != nil {
		return nil, nil, err
	}

	xRange, yRange := axisRanges(p)
	xs = scale.New(xFamily,
		scale.WithDomain(xDomain.Min, xDomain.Max),
		scale.WithRange(xRange.Min, xRange.Max))
	ys = scale.New(yFamily,
		scale.WithDomain(yDomain.Min, yDomain.Max),
		scale.WithRange(yRange.Min, yRange.Max))
	return xs, ys, nil
}

// groupOffset returns the domain-unit offset for dataset i of n grouped
// datasets, centering the group symmetrically around the nominal x
// position. totalWidth is one slot (bar width plus bar padding) in domain
// units.
func groupOffset(i, n int, totalWidth float64) float64 {
	center := float64(n-1) / 2
	return (float64(i) - center) * totalWidth
}

// pixelsToDomain converts a pixel length into independent-axis domain
// units via the domain/range ratio.
func pixelsToDomain(px float64, domain, pixelRange Span) float64 {
	rangeWidth := math.Abs(pixelRange.Width())
	if rangeWidth == 0 {
		return 0
	}
	return px * domain.Width() / rangeWidth
}

// positionBars computes the scaled geometry for every data point.
//
// The independent coordinate is the point's x value, replaced by the band
// center when the point carries a category and bands are configured, then
// offset for grouped datasets. The dependent start/end follow the stacking
// rules: non-stacked bars rise from the baseline (domain minimum clamped
// up to zero); stacked bars rise from the cumulative same-sign total of
// the prior datasets, falling back to the baseline when that total is
// zero.
func positionBars(p *Props, c *Consolidated, xs, ys *scale.Scale, xDomain, yDomain Span, barStyle style.Attrs, barWidth, barPadding float64) []BarMark {
	n := len(c.Datasets)
	grouped := n > 1 && !p.Stacked

	xRange, _ := axisRanges(p)
	slot := pixelsToDomain(barWidth+barPadding, xDomain, xRange)
	baseline := math.Max(yDomain.Min, 0)

	total := 0
	for _, ds := range c.Datasets {
		total += len(ds.Points)
	}
	marks := make([]BarMark, 0, total)

	for i, ds := range c.Datasets {
		markStyle := style.Merge(barStyle, ds.Attrs.Without("name"))
		for j, pt := range ds.Points {
			x := pt.X
			if pt.Category != nil {
				if band, ok := bandAt(p.Categories.X.Bands, *pt.Category); ok {
					x = band.Mid()
				}
			}
			if grouped {
				x += groupOffset(i, n, slot)
			}

			y0, y1 := dependentExtent(p.Stacked, c, i, j, pt.Y, baseline)

			attrs := markStyle
			if len(pt.Attrs) > 0 {
				attrs = style.Merge(markStyle, pt.Attrs)
			}

			marks = append(marks, BarMark{
				Dataset:     i,
				Index:       j,
				Name:        ds.Name,
				Independent: xs.Map(x),
				Dependent0:  ys.Map(y0),
				Dependent1:  ys.Map(y1),
				Style:       attrs,
				Datum:       pt,
			})
		}
	}
	return marks
}

// bandAt returns the category band for index c, if configured.
func bandAt(bands []Span, c int) (Span, bool) {
	if c < 0 || c >= len(bands) {
		return Span{}, false
	}
	return bands[c], true
}

// dependentExtent computes the domain-space start and end of one bar.
func dependentExtent(stacked bool, c *Consolidated, i, j int, y, baseline float64) (y0, y1 float64) {
	if !stacked {
		return baseline, y
	}

	prior := priorSameSignSum(c, i, j, y)
	y0 = prior
	if prior == 0 {
		y0 = baseline
	}
	return y0, prior + y
}

// priorSameSignSum totals the values of datasets before i at point index j
// whose sign matches y. Positive and negative stacks accumulate
// independently, so mixed-sign data never cancels out.
func priorSameSignSum(c *Consolidated, i, j int, y float64) float64 {
	sum := 0.0
	for _, prev := range c.Datasets[:i] {
		if j >= len(prev.Points) {
			continue
		}
		v := prev.Points[j].Y
		if (y >= 0) == (v >= 0) {
			sum += v
		}
	}
	return sum
}
