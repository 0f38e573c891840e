package anim

import (
	"reflect"
	"testing"

	"github.com/matzehuels/chartstack/pkg/chart"
	"github.com/matzehuels/chartstack/pkg/chart/style"
)

func interpStates() (chart.Props, chart.Props) {
	from := chart.Props{
		Width:  100,
		Height: 100,
		Data: [][]chart.DataPoint{
			{chart.Pt(1, 0), chart.Pt(2, 10)},
		},
	}
	to := chart.Props{
		Width:  200,
		Height: 300,
		Data: [][]chart.DataPoint{
			{chart.Pt(1, 10), chart.Pt(2, 20)},
		},
	}
	return from, to
}

func TestInterpolateEndpoints(t *testing.T) {
	from, to := interpStates()
	from.Animate = &chart.Animation{Easing: "linear"}
	interp := Interpolate(from, to)

	got := interp(0)
	if got.Animate != nil {
		t.Error("interpolated state carries animation config")
	}
	if got.Width != from.Width || !reflect.DeepEqual(got.Data, from.Data) {
		t.Errorf("interp(0) = %+v, want from state", got)
	}

	got = interp(1)
	if got.Width != to.Width || !reflect.DeepEqual(got.Data, to.Data) {
		t.Errorf("interp(1) = %+v, want to state", got)
	}
}

func TestInterpolateNumericFields(t *testing.T) {
	from, to := interpStates()
	from.BarWidth = 4
	to.BarWidth = 12
	from.DomainPadding = 0
	to.DomainPadding = 20

	got := Interpolate(from, to)(0.25)
	if got.Width != 125 {
		t.Errorf("Width = %v, want 125", got.Width)
	}
	if got.Height != 150 {
		t.Errorf("Height = %v, want 150", got.Height)
	}
	if got.BarWidth != 6 {
		t.Errorf("BarWidth = %v, want 6", got.BarWidth)
	}
	if got.DomainPadding != 5 {
		t.Errorf("DomainPadding = %v, want 5", got.DomainPadding)
	}
}

func TestInterpolateValueLerp(t *testing.T) {
	from, to := interpStates()
	got := Interpolate(from, to)(0.3)
	if y := got.Data[0][0].Y.Float(); !almostEqual(y, 3) {
		t.Errorf("y = %v, want 3", y)
	}
	if y := got.Data[0][1].Y.Float(); !almostEqual(y, 13) {
		t.Errorf("y = %v, want 13", y)
	}
}

func TestInterpolateStringValuesSnap(t *testing.T) {
	from := chart.Props{Data: [][]chart.DataPoint{{chart.Pt("cats", 1)}}}
	to := chart.Props{Data: [][]chart.DataPoint{{chart.Pt("dogs", 1)}}}
	interp := Interpolate(from, to)

	if x := interp(0.49).Data[0][0].X.Text(); x != "cats" {
		t.Errorf("x at 0.49 = %q, want cats", x)
	}
	if x := interp(0.5).Data[0][0].X.Text(); x != "dogs" {
		t.Errorf("x at 0.5 = %q, want dogs", x)
	}
}

func TestInterpolateDiscreteSnap(t *testing.T) {
	from, to := interpStates()
	from.Stacked = false
	to.Stacked = true
	from.Scales = chart.ScaleSpec{Y: "linear"}
	to.Scales = chart.ScaleSpec{Y: "log"}
	from.Labels = []string{"a"}
	to.Labels = []string{"b"}
	interp := Interpolate(from, to)

	before := interp(0.49)
	if before.Stacked || before.Scales.Y != "linear" || before.Labels[0] != "a" {
		t.Errorf("discrete fields snapped early: %+v", before)
	}
	after := interp(0.5)
	if !after.Stacked || after.Scales.Y != "log" || after.Labels[0] != "b" {
		t.Errorf("discrete fields did not snap at midpoint: %+v", after)
	}
}

func TestInterpolateExtraPointsComeFromTarget(t *testing.T) {
	from := chart.Props{Data: [][]chart.DataPoint{{chart.Pt(1, 0)}}}
	to := chart.Props{Data: [][]chart.DataPoint{{chart.Pt(1, 10), chart.Pt(2, 30)}}}

	got := Interpolate(from, to)(0.1)
	if len(got.Data[0]) != 2 {
		t.Fatalf("len = %d, want 2", len(got.Data[0]))
	}
	if y := got.Data[0][0].Y.Float(); !almostEqual(y, 1) {
		t.Errorf("shared point y = %v, want 1", y)
	}
	if y := got.Data[0][1].Y.Float(); y != 30 {
		t.Errorf("extra point y = %v, want final value 30", y)
	}
}

func TestInterpolateExtraDatasetsComeFromTarget(t *testing.T) {
	from := chart.Props{Data: [][]chart.DataPoint{{chart.Pt(1, 0)}}}
	to := chart.Props{Data: [][]chart.DataPoint{
		{chart.Pt(1, 10)},
		{chart.Pt(1, 5)},
	}}

	got := Interpolate(from, to)(0.2)
	if len(got.Data) != 2 {
		t.Fatalf("datasets = %d, want 2", len(got.Data))
	}
	if y := got.Data[1][0].Y.Float(); y != 5 {
		t.Errorf("extra dataset y = %v, want 5", y)
	}
}

func TestInterpolateShrinkingDataTracksTarget(t *testing.T) {
	from := chart.Props{Data: [][]chart.DataPoint{{chart.Pt(1, 0), chart.Pt(2, 5), chart.Pt(3, 9)}}}
	to := chart.Props{Data: [][]chart.DataPoint{{chart.Pt(1, 10)}}}

	got := Interpolate(from, to)(0.4)
	if len(got.Data[0]) != 1 {
		t.Errorf("len = %d, want 1", len(got.Data[0]))
	}
}

func TestInterpolateAttrs(t *testing.T) {
	from, to := interpStates()
	from.Style.Data = style.Attrs{"width": 8.0, "fill": "red", "stroke": "black"}
	to.Style.Data = style.Attrs{"width": 16.0, "fill": "blue"}
	interp := Interpolate(from, to)

	early := interp(0.25)
	if w := early.Style.Data["width"]; w != 10.0 {
		t.Errorf("width = %v, want 10", w)
	}
	if f := early.Style.Data["fill"]; f != "red" {
		t.Errorf("fill = %v, want red before midpoint", f)
	}
	if s := early.Style.Data["stroke"]; s != "black" {
		t.Errorf("stroke = %v, want kept before midpoint", s)
	}

	late := interp(0.75)
	if w := late.Style.Data["width"]; w != 14.0 {
		t.Errorf("width = %v, want 14", w)
	}
	if f := late.Style.Data["fill"]; f != "blue" {
		t.Errorf("fill = %v, want blue after midpoint", f)
	}
	if _, ok := late.Style.Data["stroke"]; ok {
		t.Error("stroke should drop after midpoint")
	}
}

func TestInterpolateAttrsKeyOnlyInTarget(t *testing.T) {
	from, to := interpStates()
	to.Style.Labels = style.Attrs{"fill": "green"}
	interp := Interpolate(from, to)

	if got := interp(0.25).Style.Labels; got != nil {
		t.Errorf("labels at 0.25 = %v, want nil", got)
	}
	if f := interp(0.75).Style.Labels["fill"]; f != "green" {
		t.Errorf("fill = %v, want green", f)
	}
}

func TestInterpolateInsets(t *testing.T) {
	from, to := interpStates()
	from.Padding = &chart.Insets{Top: 10, Bottom: 10, Left: 10, Right: 10}
	to.Padding = &chart.Insets{Top: 30, Bottom: 30, Left: 30, Right: 30}

	got := Interpolate(from, to)(0.5)
	want := chart.Insets{Top: 20, Bottom: 20, Left: 20, Right: 20}
	if got.Padding == nil || *got.Padding != want {
		t.Errorf("padding = %+v, want %+v", got.Padding, want)
	}
}

func TestInterpolateInsetsNilSnaps(t *testing.T) {
	from, to := interpStates()
	to.Padding = &chart.Insets{Top: 30, Bottom: 30, Left: 30, Right: 30}
	interp := Interpolate(from, to)

	if got := interp(0.25).Padding; got != nil {
		t.Errorf("padding at 0.25 = %+v, want nil", got)
	}
	if got := interp(0.75).Padding; got == nil || got.Top != 30 {
		t.Errorf("padding at 0.75 = %+v, want target insets", got)
	}
}

func TestInterpolateDomainSpans(t *testing.T) {
	from, to := interpStates()
	from.Domain.Y = &chart.Span{Min: 0, Max: 10}
	to.Domain.Y = &chart.Span{Min: 0, Max: 30}

	got := Interpolate(from, to)(0.5)
	if got.Domain.Y == nil || got.Domain.Y.Max != 20 {
		t.Errorf("domain y = %+v, want max 20", got.Domain.Y)
	}
}

func TestInterpolateAttrsSpecSeries(t *testing.T) {
	from, to := interpStates()
	from.Attrs.Series = []style.Attrs{{"opacity": 0.0}}
	to.Attrs.Series = []style.Attrs{{"opacity": 1.0}}

	got := Interpolate(from, to)(0.5)
	if len(got.Attrs.Series) != 1 {
		t.Fatalf("series = %d, want 1", len(got.Attrs.Series))
	}
	if op := got.Attrs.Series[0]["opacity"]; op != 0.5 {
		t.Errorf("opacity = %v, want 0.5", op)
	}
}
