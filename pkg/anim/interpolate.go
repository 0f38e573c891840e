package anim

import (
	"github.com/matzehuels/chartstack/pkg/chart"
	"github.com/matzehuels/chartstack/pkg/chart/style"
)

// Interpolate returns a function producing intermediate prop states between
// from and to. Numeric fields are linearly interpolated and may overshoot
// when the easing does; discrete fields (flags, names, labels, string
// values) snap from one state to the other at the halfway point. Extra
// datasets or points present only in the target appear at their final
// values for the whole transition, mirroring how d3 interpolates arrays.
//
// The returned states never carry animation config of their own.
func Interpolate(from, to chart.Props) func(t float64) chart.Props {
	return func(t float64) chart.Props {
		if t <= 0 {
			out := from
			out.Animate = nil
			return out
		}
		if t >= 1 {
			out := to
			out.Animate = nil
			return out
		}
		snap := t >= 0.5

		out := chart.Props{
			Width:         lerp(from.Width, to.Width, t),
			Height:        lerp(from.Height, to.Height, t),
			DomainPadding: lerp(from.DomainPadding, to.DomainPadding, t),
			BarWidth:      lerp(from.BarWidth, to.BarWidth, t),
			BarPadding:    lerp(from.BarPadding, to.BarPadding, t),
			Padding:       lerpInsets(from.Padding, to.Padding, t, snap),
			Domain:        lerpDomain(from.Domain, to.Domain, t, snap),
			Data:          lerpData(from.Data, to.Data, t, snap),
			Attrs:         lerpAttrsSpec(from.Attrs, to.Attrs, t, snap),
			Style: style.Bundle{
				Parent: lerpAttrs(from.Style.Parent, to.Style.Parent, t, snap),
				Data:   lerpAttrs(from.Style.Data, to.Style.Data, t, snap),
				Labels: lerpAttrs(from.Style.Labels, to.Style.Labels, t, snap),
			},
		}

		pick := from
		if snap {
			pick = to
		}
		out.Horizontal = pick.Horizontal
		out.Stacked = pick.Stacked
		out.Standalone = pick.Standalone
		out.Scales = pick.Scales
		out.ColorScale = pick.ColorScale
		out.Labels = pick.Labels
		out.Categories = pick.Categories
		return out
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func lerpValue(a, b chart.Value, t float64, snap bool) chart.Value {
	if !a.IsString() && !b.IsString() {
		return chart.Num(lerp(a.Float(), b.Float(), t))
	}
	if snap {
		return b
	}
	return a
}

func lerpInsets(a, b *chart.Insets, t float64, snap bool) *chart.Insets {
	if a == nil || b == nil {
		if snap {
			return b
		}
		return a
	}
	return &chart.Insets{
		Top:    lerp(a.Top, b.Top, t),
		Bottom: lerp(a.Bottom, b.Bottom, t),
		Left:   lerp(a.Left, b.Left, t),
		Right:  lerp(a.Right, b.Right, t),
	}
}

func lerpSpan(a, b *chart.Span, t float64, snap bool) *chart.Span {
	if a == nil || b == nil {
		if snap {
			return b
		}
		return a
	}
	return &chart.Span{
		Min: lerp(a.Min, b.Min, t),
		Max: lerp(a.Max, b.Max, t),
	}
}

func lerpDomain(a, b chart.DomainSpec, t float64, snap bool) chart.DomainSpec {
	return chart.DomainSpec{
		X:      lerpSpan(a.X, b.X, t, snap),
		Y:      lerpSpan(a.Y, b.Y, t, snap),
		Shared: lerpSpan(a.Shared, b.Shared, t, snap),
	}
}

// lerpData interpolates the common prefix of both dataset lists pointwise.
// Datasets and points beyond the prefix come from the target state.
func lerpData(a, b [][]chart.DataPoint, t float64, snap bool) [][]chart.DataPoint {
	if len(b) == 0 {
		return nil
	}
	out := make([][]chart.DataPoint, len(b))
	for d := range b {
		if d >= len(a) {
			out[d] = b[d]
			continue
		}
		out[d] = lerpPoints(a[d], b[d], t, snap)
	}
	return out
}

func lerpPoints(a, b []chart.DataPoint, t float64, snap bool) []chart.DataPoint {
	out := make([]chart.DataPoint, len(b))
	for i := range b {
		if i >= len(a) {
			out[i] = b[i]
			continue
		}
		pt := chart.DataPoint{
			X: lerpValue(a[i].X, b[i].X, t, snap),
			Y: lerpValue(a[i].Y, b[i].Y, t, snap),
		}
		src := a[i]
		if snap {
			src = b[i]
		}
		pt.Category = src.Category
		pt.Label = src.Label
		pt.Attrs = lerpAttrs(a[i].Attrs, b[i].Attrs, t, snap)
		out[i] = pt
	}
	return out
}

func lerpAttrsSpec(a, b chart.AttrsSpec, t float64, snap bool) chart.AttrsSpec {
	out := chart.AttrsSpec{
		Shared: lerpAttrs(a.Shared, b.Shared, t, snap),
	}
	if len(b.Series) == 0 && len(a.Series) == 0 {
		return out
	}
	n := len(b.Series)
	if !snap && len(a.Series) > n {
		n = len(a.Series)
	}
	out.Series = make([]style.Attrs, n)
	for i := 0; i < n; i++ {
		var av, bv style.Attrs
		if i < len(a.Series) {
			av = a.Series[i]
		}
		if i < len(b.Series) {
			bv = b.Series[i]
		}
		out.Series[i] = lerpAttrs(av, bv, t, snap)
	}
	return out
}

// lerpAttrs interpolates numeric attribute values over the key union.
// Non-numeric values snap; keys missing on one side snap with them.
func lerpAttrs(a, b style.Attrs, t float64, snap bool) style.Attrs {
	if a == nil && b == nil {
		return nil
	}
	out := style.Attrs{}
	for key, av := range a {
		bv, ok := b[key]
		if !ok {
			if !snap {
				out[key] = av
			}
			continue
		}
		af, aNum := toFloat(av)
		bf, bNum := toFloat(bv)
		if aNum && bNum {
			out[key] = lerp(af, bf, t)
			continue
		}
		if snap {
			out[key] = bv
		} else {
			out[key] = av
		}
	}
	for key, bv := range b {
		if _, ok := a[key]; ok {
			continue
		}
		if snap {
			out[key] = bv
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
