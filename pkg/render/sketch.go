package render

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"strings"

	svg "github.com/ajstarks/svgo/float"

	"github.com/matzehuels/chartstack/pkg/chart"
	"github.com/matzehuels/chartstack/pkg/chart/style"
	"github.com/matzehuels/chartstack/pkg/fonts"
)

// Sketch renders bars as hand-wobbled paths with a handwritten label font.
// Wobble is seeded from each mark's identity, so repeated renders of the
// same geometry produce identical output.
type Sketch struct{}

// Name implements MarkRenderer.
func (Sketch) Name() string { return "sketch" }

// RenderDefs implements MarkRenderer. Sketch needs no defs.
func (Sketch) RenderDefs(*svg.SVG, *chart.Geometry) {}

// RenderBar implements MarkRenderer.
func (Sketch) RenderBar(canvas *svg.SVG, g *chart.Geometry, m chart.BarMark) {
	x, y, w, h := barRect(g, m)
	attrs := style.Merge(m.Style, style.Attrs{"stroke-linejoin": "round"})
	if s, ok := attrs.String("stroke"); !ok || s == "" || s == "none" {
		attrs["stroke"] = "#252525"
		if sw, ok := attrs.Float("stroke-width"); !ok || sw <= 0 {
			attrs["stroke-width"] = 1.5
		}
	}
	seed := fmt.Sprintf("bar-%d-%d", m.Dataset, m.Index)
	canvas.Path(wobbledRect(x, y, w, h, seed), `class="bar"`, attrs.CSS())
}

// RenderLabel implements MarkRenderer.
func (Sketch) RenderLabel(canvas *svg.SVG, g *chart.Geometry, m chart.LabelMark) {
	x, y := labelPoint(g, m)
	attrs := style.Merge(m.Style, style.Attrs{"font-family": fonts.HandStack})
	canvas.Text(x, y, m.Text, `class="bar-label"`, attrs.CSS())
}

// =============================================================================
// Wobbled geometry
// =============================================================================

// wobbledRect traces a rectangle as four quadratic beziers with jittered
// corners and midpoints. The same inputs always produce the same path.
func wobbledRect(x, y, w, h float64, seed string) string {
	n := fnvHash(seed)
	rng := rand.New(rand.NewPCG(n, n^0xdeadbeef))
	j := wobbleAmount(w, h)

	corners := [4][2]float64{
		{x, y},
		{x + w, y},
		{x + w, y + h},
		{x, y + h},
	}
	for i := range corners {
		corners[i][0] += jitter(rng, j)
		corners[i][1] += jitter(rng, j)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "M%.2f,%.2f", corners[0][0], corners[0][1])
	for i := 1; i <= 4; i++ {
		from := corners[(i-1)%4]
		to := corners[i%4]
		mx := (from[0]+to[0])/2 + jitter(rng, j)
		my := (from[1]+to[1])/2 + jitter(rng, j)
		fmt.Fprintf(&b, " Q%.2f,%.2f %.2f,%.2f", mx, my, to[0], to[1])
	}
	b.WriteString(" Z")
	return b.String()
}

func jitter(rng *rand.Rand, amount float64) float64 {
	return (rng.Float64()*2 - 1) * amount
}

// wobbleAmount caps jitter so small bars stay recognizable rectangles.
func wobbleAmount(w, h float64) float64 {
	j := 1.5
	if m := w * 0.08; m < j {
		j = m
	}
	if m := h * 0.08; m < j {
		j = m
	}
	if j < 0 {
		return 0
	}
	return j
}

func fnvHash(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}
