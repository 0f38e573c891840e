package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/chartstack/pkg/chart"
	"github.com/matzehuels/chartstack/pkg/chart/style"
)

func testGeometry() *chart.Geometry {
	return &chart.Geometry{
		Width:      450,
		Height:     300,
		Standalone: true,
		BarWidth:   8,
		Style: style.Bundle{
			Parent: style.Attrs{"font-family": "sans-serif", "width": 450.0, "height": 300.0},
		},
		XDomain: chart.Span{Min: 0, Max: 4},
		YDomain: chart.Span{Min: 0, Max: 10},
		XRange:  chart.Span{Min: 50, Max: 400},
		YRange:  chart.Span{Min: 250, Max: 50},
		Bars: []chart.BarMark{
			{Dataset: 0, Index: 0, Name: "alpha", Independent: 100, Dependent0: 250, Dependent1: 150,
				Style: style.Attrs{"fill": "#252525"}, Datum: chart.Datum{X: 1, Y: 5}},
			{Dataset: 0, Index: 1, Name: "alpha", Independent: 200, Dependent0: 250, Dependent1: 100,
				Style: style.Attrs{"fill": "#252525"}, Datum: chart.Datum{X: 2, Y: 7.5}},
			{Dataset: 1, Index: 0, Name: "beta", Independent: 120, Dependent0: 250, Dependent1: 200,
				Style: style.Attrs{"fill": "#969696"}, Datum: chart.Datum{X: 1, Y: 2.5}},
		},
		Labels: []chart.LabelMark{
			{Dataset: 0, Index: 0, Text: "first", Independent: 100, Dependent: 140,
				Style: style.Attrs{"fill": "#252525", "text-anchor": "middle"}},
		},
	}
}

func TestRenderSVGStandalone(t *testing.T) {
	g := testGeometry()
	out := string(RenderSVG(g, WithChartID("chart-test")))

	expected := []string{
		`<svg xmlns="http://www.w3.org/2000/svg"`,
		`id="chart-test"`,
		`viewBox="0 0 450.0 300.0"`,
		`width="450"`,
		`height="300"`,
		`role="img"`,
		`style="font-family:sans-serif"`,
		`class="dataset"`,
		`data-name="alpha"`,
		`data-name="beta"`,
		`<rect`,
		`class="bar"`,
		`class="labels"`,
		`>first</text>`,
		`</svg>`,
	}
	for _, want := range expected {
		if !strings.Contains(out, want) {
			t.Errorf("RenderSVG() output missing %q\nGot: %s", want, out)
		}
	}
}

func TestRenderSVGFragment(t *testing.T) {
	g := testGeometry()
	g.Standalone = false
	out := string(RenderSVG(g))

	if !strings.HasPrefix(out, `<g class="chart">`) {
		t.Errorf("fragment should start with a group, got: %.60s", out)
	}
	if !strings.HasSuffix(out, "</g>\n") {
		t.Errorf("fragment should end with </g>, got: %.60s", out[len(out)-60:])
	}
	if strings.Contains(out, "<svg") {
		t.Error("fragment should not contain an <svg> root")
	}
	if !strings.Contains(out, "<rect") {
		t.Error("fragment should still contain bar marks")
	}
}

func TestRenderSVGDeterministicWithPinnedID(t *testing.T) {
	g := testGeometry()
	first := RenderSVG(g, WithChartID("fixed"))
	second := RenderSVG(g, WithChartID("fixed"))
	if !bytes.Equal(first, second) {
		t.Error("repeated renders with a pinned id differ")
	}
}

func TestRenderSVGGeneratesFreshIDs(t *testing.T) {
	g := testGeometry()
	first := string(RenderSVG(g))
	second := string(RenderSVG(g))
	if !strings.Contains(first, `id="chart-`) {
		t.Error("standalone output missing generated chart id")
	}
	if first == second {
		t.Error("generated ids should differ between renders")
	}
}

func TestRenderSVGTitleEscaped(t *testing.T) {
	g := testGeometry()
	out := string(RenderSVG(g, WithChartID("c"), WithTitle("Cats & Dogs")))
	if !strings.Contains(out, "<title>Cats &amp; Dogs</title>") {
		t.Errorf("title not escaped: %s", out)
	}
}

func TestRenderSVGDatasetIndexFallback(t *testing.T) {
	g := testGeometry()
	for i := range g.Bars {
		g.Bars[i].Name = ""
	}
	out := string(RenderSVG(g, WithChartID("c")))
	if !strings.Contains(out, `data-index="0"`) || !strings.Contains(out, `data-index="1"`) {
		t.Errorf("unnamed datasets should carry index attributes: %s", out)
	}
}

func TestRenderSVGNoLabels(t *testing.T) {
	g := testGeometry()
	g.Labels = nil
	out := string(RenderSVG(g, WithChartID("c")))
	if strings.Contains(out, `class="labels"`) {
		t.Error("label group should be absent without labels")
	}
}

func TestRenderSVGSketchStyle(t *testing.T) {
	g := testGeometry()
	out := string(RenderSVG(g, WithChartID("c"), WithStyle(Sketch{})))
	if !strings.Contains(out, "<path") || !strings.Contains(out, `d="M`) {
		t.Errorf("sketch output should draw paths: %s", out)
	}
	if strings.Contains(out, "<rect") {
		t.Error("sketch output should not draw plain rects")
	}
}
