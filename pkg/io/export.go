package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/chartstack/pkg/chart"
	"github.com/matzehuels/chartstack/pkg/chart/style"
	"github.com/matzehuels/chartstack/pkg/errors"
)

// exportDoc is the canonical document shape: one unambiguous form per
// field, chosen so [ReadDocument] accepts the output unchanged.
type exportDoc struct {
	Width         float64           `json:"width,omitempty"`
	Height        float64           `json:"height,omitempty"`
	Horizontal    bool              `json:"horizontal,omitempty"`
	Stacked       bool              `json:"stacked,omitempty"`
	Standalone    *bool             `json:"standalone,omitempty"`
	ColorScale    string            `json:"color_scale,omitempty"`
	DomainPadding float64           `json:"domain_padding,omitempty"`
	BarWidth      float64           `json:"bar_width,omitempty"`
	BarPadding    float64           `json:"bar_padding,omitempty"`
	Labels        []string          `json:"labels,omitempty"`
	Padding       *chart.Insets     `json:"padding,omitempty"`
	Domain        *chart.DomainSpec `json:"domain,omitempty"`
	Scales        *chart.ScaleSpec  `json:"scales,omitempty"`
	Categories    *categoriesOut    `json:"categories,omitempty"`
	Attrs         style.Attrs       `json:"attrs,omitempty"`
	Style         *style.Bundle     `json:"style,omitempty"`
	Data          []chart.DataPoint `json:"data,omitempty"`
	Series        []seriesOut       `json:"series,omitempty"`
	Animate       *animateOut       `json:"animate,omitempty"`
	Keyframes     []keyframeOut     `json:"keyframes,omitempty"`
}

type categoriesOut struct {
	X *chart.CategoryAxis `json:"x,omitempty"`
	Y *chart.CategoryAxis `json:"y,omitempty"`
}

type seriesOut struct {
	Name   string            `json:"name,omitempty"`
	Attrs  style.Attrs       `json:"attrs,omitempty"`
	Points []chart.DataPoint `json:"points"`
}

// animateOut writes durations as Go duration strings so the block stays
// readable and re-importable.
type animateOut struct {
	Duration string `json:"duration,omitempty"`
	Easing   string `json:"easing,omitempty"`
	Frames   int    `json:"frames,omitempty"`
	Delay    string `json:"delay,omitempty"`
}

type keyframeOut struct {
	Data          []chart.DataPoint `json:"data,omitempty"`
	Series        []seriesOut       `json:"series,omitempty"`
	Domain        *chart.DomainSpec `json:"domain,omitempty"`
	Labels        []string          `json:"labels,omitempty"`
	Attrs         style.Attrs       `json:"attrs,omitempty"`
	Style         *style.Bundle     `json:"style,omitempty"`
	Width         float64           `json:"width,omitempty"`
	Height        float64           `json:"height,omitempty"`
	DomainPadding *float64          `json:"domain_padding"`
	BarWidth      *float64          `json:"bar_width"`
	BarPadding    *float64          `json:"bar_padding"`
}

// WriteProps encodes chart props as a canonical JSON document and writes
// it to w. The output can be re-imported with [ReadDocument] for
// round-trip processing.
func WriteProps(p chart.Props, w io.Writer) error {
	return WriteDocument(&Document{Props: p}, w)
}

// WriteDocument encodes a document, base props plus resolved keyframes,
// as canonical JSON. Each keyframe is written as a full patch over the
// base so re-importing reproduces the same resolved sequence.
func WriteDocument(d *Document, w io.Writer) error {
	out := exportProps(d.Props)
	for _, kf := range d.Keyframes {
		out.Keyframes = append(out.Keyframes, exportKeyframe(kf))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode document")
	}
	return nil
}

// ExportProps writes chart props to a JSON document file at path.
// This is a convenience wrapper around [WriteProps] for file-based output.
func ExportProps(p chart.Props, path string) error {
	return ExportDocument(&Document{Props: p}, path)
}

// ExportDocument writes a document to a JSON file at path.
func ExportDocument(d *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "create %s", path)
	}
	defer f.Close()
	return WriteDocument(d, f)
}

// =============================================================================
// Canonical form
// =============================================================================

func exportProps(p chart.Props) *exportDoc {
	out := &exportDoc{
		Width:         p.Width,
		Height:        p.Height,
		Horizontal:    p.Horizontal,
		Stacked:       p.Stacked,
		Standalone:    p.Standalone,
		ColorScale:    p.ColorScale,
		DomainPadding: p.DomainPadding,
		BarWidth:      p.BarWidth,
		BarPadding:    p.BarPadding,
		Labels:        p.Labels,
		Padding:       p.Padding,
		Attrs:         p.Attrs.Shared,
	}
	out.Domain = domainOf(p.Domain)
	if p.Scales.X != "" || p.Scales.Y != "" {
		s := p.Scales
		out.Scales = &s
	}
	out.Categories = categoriesOf(p.Categories)
	out.Style = bundleOf(p.Style)
	out.Data, out.Series = dataOut(p)
	out.Animate = animateOf(p.Animate)
	return out
}

// exportKeyframe writes one resolved keyframe as a patch. Replacing fields
// carry the resolved value; merging fields (attrs, style) are idempotent
// over the base, so re-applying reproduces the resolved state.
func exportKeyframe(p chart.Props) keyframeOut {
	out := keyframeOut{
		Labels: p.Labels,
		Attrs:  p.Attrs.Shared,
		Width:  p.Width,
		Height: p.Height,
	}
	out.Data, out.Series = dataOut(p)
	out.Domain = domainOf(p.Domain)
	out.Style = bundleOf(p.Style)

	dp, bw, bp := p.DomainPadding, p.BarWidth, p.BarPadding
	out.DomainPadding = &dp
	out.BarWidth = &bw
	out.BarPadding = &bp
	return out
}

// dataOut picks the document form for the dataset matrix: the flat data
// array for a single anonymous dataset, series entries otherwise. Series
// names are hoisted from the attrs "name" key back into the name field.
func dataOut(p chart.Props) ([]chart.DataPoint, []seriesOut) {
	if len(p.Data) == 0 {
		return nil, nil
	}
	if len(p.Data) == 1 && len(p.Attrs.Series) == 0 {
		return p.Data[0], nil
	}

	series := make([]seriesOut, len(p.Data))
	for i, points := range p.Data {
		s := seriesOut{Points: points}
		if i < len(p.Attrs.Series) {
			attrs := p.Attrs.Series[i]
			s.Name, _ = attrs.String("name")
			if rest := attrs.Without("name"); len(rest) > 0 {
				s.Attrs = rest
			}
		}
		series[i] = s
	}
	return nil, series
}

func domainOf(d chart.DomainSpec) *chart.DomainSpec {
	if d.X == nil && d.Y == nil && d.Shared == nil {
		return nil
	}
	return &d
}

func categoriesOf(c chart.Categories) *categoriesOut {
	out := &categoriesOut{}
	if len(c.X.Labels) > 0 || len(c.X.Bands) > 0 {
		x := c.X
		out.X = &x
	}
	if len(c.Y.Labels) > 0 || len(c.Y.Bands) > 0 {
		y := c.Y
		out.Y = &y
	}
	if out.X == nil && out.Y == nil {
		return nil
	}
	return out
}

func bundleOf(b style.Bundle) *style.Bundle {
	if len(b.Parent) == 0 && len(b.Data) == 0 && len(b.Labels) == 0 {
		return nil
	}
	return &b
}

func animateOf(a *chart.Animation) *animateOut {
	if a == nil {
		return nil
	}
	out := &animateOut{Easing: a.Easing, Frames: a.Frames}
	if a.Duration != 0 {
		out.Duration = a.Duration.String()
	}
	if a.Delay != 0 {
		out.Delay = a.Delay.String()
	}
	return out
}
