package chart

import (
	"math"

	"github.com/matzehuels/chartstack/pkg/errors"
)

// resolveDomain derives the domain for one axis. Resolution priority:
//
//  1. explicit per-axis domain
//  2. explicit shared domain
//  3. x axis only: bounds of configured category bands
//  4. scan of the consolidated data, stack-aware on the dependent axis
//
// Plain string categories never contribute to numeric domain inference.
func resolveDomain(p *Props, c *Consolidated, axis axisID) (Span, error) {
	if explicit := p.Domain.forAxis(axis); explicit != nil {
		return explicit.normalized(), nil
	}

	if axis == axisX {
		if bands := p.Categories.X.Bands; len(bands) > 0 {
			return bandBounds(bands), nil
		}
	}

	return scanDomain(c, axis, p.Stacked)
}

// bandBounds flattens all band boundaries and takes their min/max.
func bandBounds(bands []Span) Span {
	bounds := Span{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, b := range bands {
		bounds.Min = math.Min(bounds.Min, math.Min(b.Min, b.Max))
		bounds.Max = math.Max(bounds.Max, math.Max(b.Min, b.Max))
	}
	return bounds
}

// scanDomain accumulates min/max over the axis values of every point. When
// stacking is enabled, the dependent axis additionally accounts for the
// cumulative same-sign sums at each point index.
func scanDomain(c *Consolidated, axis axisID, stacked bool) (Span, error) {
	lo, hi := math.Inf(1), math.Inf(-1)

	accumulate := func(v float64) {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	for _, ds := range c.Datasets {
		for _, pt := range ds.Points {
			if axis == axisX {
				accumulate(pt.X)
			} else {
				accumulate(pt.Y)
			}
		}
	}

	if axis == axisY && stacked {
		for _, sum := range stackSums(c) {
			if sum.positive > 0 {
				accumulate(sum.positive)
			}
			if sum.negative < 0 {
				accumulate(sum.negative)
			}
		}
	}

	if math.IsInf(lo, 1) {
		return Span{}, errors.New(errors.ErrCodeEmptyData, "cannot derive a domain from empty data")
	}
	return Span{Min: lo, Max: hi}, nil
}

// signSums are the cumulative positive and negative totals at one point
// index across all datasets.
type signSums struct {
	positive float64
	negative float64
}

// stackSums totals same-sign values per point index across datasets.
func stackSums(c *Consolidated) []signSums {
	maxLen := 0
	for _, ds := range c.Datasets {
		maxLen = max(maxLen, len(ds.Points))
	}

	sums := make([]signSums, maxLen)
	for _, ds := range c.Datasets {
		for j, pt := range ds.Points {
			if pt.Y >= 0 {
				sums[j].positive += pt.Y
			} else {
				sums[j].negative += pt.Y
			}
		}
	}
	return sums
}

// padDomain expands both domain ends by a pixel amount converted into
// domain units through the domain/range ratio. Padding is symmetric in
// pixel space; a zero-width domain or range leaves the domain unchanged,
// so padding can never invert the bounds.
func padDomain(domain Span, paddingPx float64, rangeSpan Span) Span {
	if paddingPx <= 0 {
		return domain
	}
	rangeWidth := math.Abs(rangeSpan.Width())
	if rangeWidth == 0 || domain.Width() == 0 {
		return domain
	}
	units := paddingPx * domain.Width() / rangeWidth
	return Span{Min: domain.Min - units, Max: domain.Max + units}
}
