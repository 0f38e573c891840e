// Package chart computes renderable bar-chart geometry from declarative
// configuration.
//
// The package is a pure layout engine: Layout maps a Props value to an
// immutable Geometry record and performs no I/O. Each call recomputes
// everything from scratch; there is no cached state between passes.
//
// # Pipeline
//
// One layout pass runs these stages in order:
//
//  1. Consolidation: raw input (flat or nested) becomes ordered named
//     datasets, and categorical strings are encoded to stable integers.
//  2. Domain resolution: each axis derives its value extent from explicit
//     configuration, category bands, or a stack-aware data scan, then
//     applies pixel-space domain padding.
//  3. Scale building: each axis gets a fresh domain-to-pixel mapping for
//     the configured scale family.
//  4. Positioning: every point yields a bar mark with grouping offsets and
//     sign-aware stacking applied.
//  5. Label placement: one dataset per group carries the labels.
//
// Animated charts are not handled here: when Props.Animate is set,
// callers hand the props to the anim package, which re-invokes Layout
// with interpolated values over time.
package chart

import (
	"github.com/matzehuels/chartstack/pkg/chart/style"
)

// Layout computes the full geometry for one chart configuration. The
// supplied props are not mutated; unset props fall back to documented
// defaults. Errors are limited to empty input, ragged stacked datasets and
// unknown scale families; everything else degrades to default values or
// degenerate geometry.
func Layout(props Props) (*Geometry, error) {
	p := props.withDefaults()

	consolidated, err := Consolidate(&p)
	if err != nil {
		return nil, err
	}

	xDomain, err := resolveDomain(&p, consolidated, axisX)
	if err != nil {
		return nil, err
	}
	yDomain, err := resolveDomain(&p, consolidated, axisY)
	if err != nil {
		return nil, err
	}

	xRange, yRange := axisRanges(&p)
	xDomain = padDomain(xDomain, p.DomainPadding, xRange)
	yDomain = padDomain(yDomain, p.DomainPadding, yRange)

	xs, ys, err := buildScales(&p, xDomain, yDomain)
	if err != nil {
		return nil, err
	}

	bundle := resolveStyle(&p)
	barWidth, barPadding := p.barSizing(bundle.Data)

	bars := positionBars(&p, consolidated, xs, ys, xDomain, yDomain, bundle.Data, barWidth, barPadding)
	labels := placeLabels(&p, consolidated, bars, bundle.Labels)

	return &Geometry{
		Width:      p.Width,
		Height:     p.Height,
		Horizontal: p.Horizontal,
		Standalone: p.IsStandalone(),
		BarWidth:   barWidth,
		Style:      bundle,
		XDomain:    xDomain,
		YDomain:    yDomain,
		XRange:     xRange,
		YRange:     yRange,
		Strings:    consolidated.Strings,
		Bars:       bars,
		Labels:     labels,
	}, nil
}

// resolveStyle merges user style overrides onto the defaults. The parent
// section always reflects the configured chart dimensions, regardless of
// overrides.
func resolveStyle(p *Props) style.Bundle {
	bundle := style.MergeBundle(style.Default(), p.Style)
	bundle.Parent["width"] = p.Width
	bundle.Parent["height"] = p.Height
	return bundle
}
