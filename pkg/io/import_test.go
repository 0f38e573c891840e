package io

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/chartstack/pkg/chart"
	"github.com/matzehuels/chartstack/pkg/errors"
)

func TestReadDocumentMinimal(t *testing.T) {
	doc, err := ReadDocument(strings.NewReader(`data = [[1, 5], [2, 8]]`), FormatTOML)
	if err != nil {
		t.Fatalf("ReadDocument failed: %v", err)
	}

	p := doc.Props
	if len(p.Data) != 1 {
		t.Fatalf("datasets = %d, want 1", len(p.Data))
	}
	if len(p.Data[0]) != 2 {
		t.Fatalf("points = %d, want 2", len(p.Data[0]))
	}
	if got := p.Data[0][1].Y.Float(); got != 8 {
		t.Errorf("point 1 y = %v, want 8", got)
	}
	if p.Stacked || p.Standalone != nil || p.Animate != nil {
		t.Error("minimal document should leave optional fields unset")
	}
	if len(doc.Keyframes) != 0 {
		t.Errorf("keyframes = %d, want 0", len(doc.Keyframes))
	}
}

func TestReadDocumentTOML(t *testing.T) {
	src := `
width = 600
height = 400
stacked = true
color_scale = "qualitative"
labels = ["Q1", "Q2", "Q3"]
domain_padding = 20
padding = 40

[scales]
y = "log"

[domain]
y = [0, 100]

[[series]]
name = "north"
points = [[1, 20], [2, 35], [3, 30]]

[[series]]
name = "south"
attrs = { fill = "tomato" }
points = [[1, 15], [2, 25], [3, 40]]
`
	doc, err := ReadDocument(strings.NewReader(src), FormatTOML)
	if err != nil {
		t.Fatalf("ReadDocument failed: %v", err)
	}

	p := doc.Props
	if p.Width != 600 || p.Height != 400 {
		t.Errorf("size = %vx%v, want 600x400", p.Width, p.Height)
	}
	if !p.Stacked {
		t.Error("stacked not set")
	}
	if p.ColorScale != "qualitative" {
		t.Errorf("color scale = %q", p.ColorScale)
	}
	if len(p.Labels) != 3 || p.Labels[2] != "Q3" {
		t.Errorf("labels = %v", p.Labels)
	}
	if p.DomainPadding != 20 {
		t.Errorf("domain padding = %v, want 20", p.DomainPadding)
	}
	if p.Padding == nil || *p.Padding != (chart.Insets{Top: 40, Right: 40, Bottom: 40, Left: 40}) {
		t.Errorf("padding = %+v, want uniform 40", p.Padding)
	}
	if p.Scales.Y != "log" || p.Scales.X != "" {
		t.Errorf("scales = %+v", p.Scales)
	}
	if p.Domain.Y == nil || p.Domain.Y.Max != 100 {
		t.Errorf("domain y = %+v", p.Domain.Y)
	}
	if p.Domain.X != nil || p.Domain.Shared != nil {
		t.Error("unexpected x or shared domain")
	}

	if len(p.Data) != 2 {
		t.Fatalf("datasets = %d, want 2", len(p.Data))
	}
	if got := p.Data[0][1].Y.Float(); got != 35 {
		t.Errorf("north point 1 y = %v, want 35", got)
	}
	if len(p.Attrs.Series) != 2 {
		t.Fatalf("series attrs = %d, want 2", len(p.Attrs.Series))
	}
	if name, _ := p.Attrs.Series[0].String("name"); name != "north" {
		t.Errorf("series 0 name = %q, want north", name)
	}
	if fill, _ := p.Attrs.Series[1].String("fill"); fill != "tomato" {
		t.Errorf("series 1 fill = %q, want tomato", fill)
	}
}

func TestReadDocumentShapes(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		check func(t *testing.T, p chart.Props)
	}{
		{
			name: "padding table",
			src:  "data = [[1, 2]]\n[padding]\ntop = 10\nleft = 5",
			check: func(t *testing.T, p chart.Props) {
				want := chart.Insets{Top: 10, Left: 5}
				if p.Padding == nil || *p.Padding != want {
					t.Errorf("padding = %+v, want %+v", p.Padding, want)
				}
			},
		},
		{
			name: "shared domain pair",
			src:  "data = [[1, 2]]\ndomain = [0, 50]",
			check: func(t *testing.T, p chart.Props) {
				if p.Domain.Shared == nil || p.Domain.Shared.Max != 50 {
					t.Errorf("shared domain = %+v", p.Domain.Shared)
				}
			},
		},
		{
			name: "domain min max table",
			src:  "data = [[1, 2]]\n[domain.x]\nmin = 1\nmax = 9",
			check: func(t *testing.T, p chart.Props) {
				if p.Domain.X == nil || p.Domain.X.Min != 1 || p.Domain.X.Max != 9 {
					t.Errorf("x domain = %+v", p.Domain.X)
				}
			},
		},
		{
			name: "single scale name",
			src:  `data = [[1, 2]]` + "\n" + `scales = "log"`,
			check: func(t *testing.T, p chart.Props) {
				if p.Scales.X != "log" || p.Scales.Y != "log" {
					t.Errorf("scales = %+v, want log on both axes", p.Scales)
				}
			},
		},
		{
			name: "bare category labels",
			src:  `data = [[1, 2]]` + "\n" + `categories = ["a", "b"]`,
			check: func(t *testing.T, p chart.Props) {
				if len(p.Categories.X.Labels) != 2 || p.Categories.X.Labels[1] != "b" {
					t.Errorf("x labels = %v", p.Categories.X.Labels)
				}
			},
		},
		{
			name: "category bands",
			src:  "data = [[1, 2]]\n[categories]\nx = [[0, 10], [10, 20]]",
			check: func(t *testing.T, p chart.Props) {
				bands := p.Categories.X.Bands
				if len(bands) != 2 || bands[1] != (chart.Span{Min: 10, Max: 20}) {
					t.Errorf("x bands = %v", bands)
				}
			},
		},
		{
			name: "explicit category table",
			src:  "data = [[1, 2]]\n[categories.y]\nlabels = [\"lo\", \"hi\"]",
			check: func(t *testing.T, p chart.Props) {
				if len(p.Categories.Y.Labels) != 2 || p.Categories.Y.Labels[0] != "lo" {
					t.Errorf("y labels = %v", p.Categories.Y.Labels)
				}
			},
		},
		{
			name: "point table with extras",
			src:  `data = [{ x = 1, y = 2, label = "top", fill = "red" }]`,
			check: func(t *testing.T, p chart.Props) {
				pt := p.Data[0][0]
				if pt.Label != "top" {
					t.Errorf("label = %q, want top", pt.Label)
				}
				if fill, _ := pt.Attrs.String("fill"); fill != "red" {
					t.Errorf("fill = %q, want red", fill)
				}
			},
		},
		{
			name: "categorical x values",
			src:  `data = [["cats", 4], ["dogs", 7]]`,
			check: func(t *testing.T, p chart.Props) {
				if !p.Data[0][0].X.IsString() || p.Data[0][0].X.Text() != "cats" {
					t.Errorf("x = %v, want string cats", p.Data[0][0].X)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ReadDocument(strings.NewReader(tt.src), FormatTOML)
			if err != nil {
				t.Fatalf("ReadDocument failed: %v", err)
			}
			tt.check(t, doc.Props)
		})
	}
}

func TestReadDocumentAnimate(t *testing.T) {
	src := `
data = [[1, 2]]

[animate]
duration = "750ms"
delay = 250
easing = "bounceOut"
frames = 12
`
	doc, err := ReadDocument(strings.NewReader(src), FormatTOML)
	if err != nil {
		t.Fatalf("ReadDocument failed: %v", err)
	}

	a := doc.Props.Animate
	if a == nil {
		t.Fatal("animate block not decoded")
	}
	if a.Duration != 750*time.Millisecond {
		t.Errorf("duration = %v, want 750ms", a.Duration)
	}
	if a.Delay != 250*time.Millisecond {
		t.Errorf("delay = %v, want 250ms", a.Delay)
	}
	if a.Easing != "bounceOut" {
		t.Errorf("easing = %q", a.Easing)
	}
	if a.Frames != 12 {
		t.Errorf("frames = %d, want 12", a.Frames)
	}
}

func TestReadDocumentKeyframes(t *testing.T) {
	src := `
width = 500
height = 300
labels = ["start"]
data = [[1, 5], [2, 8]]

[[keyframes]]
data = [[1, 9], [2, 2]]

[[keyframes]]
labels = ["end"]
[keyframes.attrs]
fill = "crimson"
`
	doc, err := ReadDocument(strings.NewReader(src), FormatTOML)
	if err != nil {
		t.Fatalf("ReadDocument failed: %v", err)
	}
	if len(doc.Keyframes) != 2 {
		t.Fatalf("keyframes = %d, want 2", len(doc.Keyframes))
	}

	// First keyframe replaces the data and inherits everything else.
	kf0 := doc.Keyframes[0]
	if got := kf0.Data[0][0].Y.Float(); got != 9 {
		t.Errorf("keyframe 0 y = %v, want 9", got)
	}
	if kf0.Width != 500 || len(kf0.Labels) != 1 || kf0.Labels[0] != "start" {
		t.Errorf("keyframe 0 inherited fields wrong: width=%v labels=%v", kf0.Width, kf0.Labels)
	}

	// Second keyframe keeps the first keyframe's data and patches on top.
	kf1 := doc.Keyframes[1]
	if got := kf1.Data[0][1].Y.Float(); got != 2 {
		t.Errorf("keyframe 1 inherited y = %v, want 2", got)
	}
	if kf1.Labels[0] != "end" {
		t.Errorf("keyframe 1 labels = %v", kf1.Labels)
	}
	if fill, _ := kf1.Attrs.Shared.String("fill"); fill != "crimson" {
		t.Errorf("keyframe 1 fill = %q, want crimson", fill)
	}

	// The base state is untouched by patches.
	if doc.Props.Labels[0] != "start" || doc.Props.Attrs.Shared != nil {
		t.Errorf("base state mutated: %+v", doc.Props)
	}

	states := doc.States()
	if len(states) != 3 {
		t.Fatalf("states = %d, want 3", len(states))
	}
	if got := states[0].Data[0][0].Y.Float(); got != 5 {
		t.Errorf("state 0 y = %v, want 5", got)
	}
}

func TestReadDocumentJSON(t *testing.T) {
	src := `{
  "width": 480,
  "padding": 25,
  "domain": {"y": [0, 10]},
  "scales": "linear",
  "categories": ["a", "b"],
  "data": [[1, 4], {"x": 2, "y": 6, "label": "peak"}],
  "animate": {"duration": 500}
}`
	doc, err := ReadDocument(strings.NewReader(src), FormatJSON)
	if err != nil {
		t.Fatalf("ReadDocument failed: %v", err)
	}

	p := doc.Props
	if p.Width != 480 {
		t.Errorf("width = %v, want 480", p.Width)
	}
	if p.Padding == nil || p.Padding.Bottom != 25 {
		t.Errorf("padding = %+v, want uniform 25", p.Padding)
	}
	if p.Domain.Y == nil || p.Domain.Y.Max != 10 {
		t.Errorf("y domain = %+v", p.Domain.Y)
	}
	if p.Scales.X != "linear" || p.Scales.Y != "linear" {
		t.Errorf("scales = %+v", p.Scales)
	}
	if len(p.Categories.X.Labels) != 2 {
		t.Errorf("x labels = %v", p.Categories.X.Labels)
	}
	if p.Data[0][1].Label != "peak" {
		t.Errorf("point label = %q, want peak", p.Data[0][1].Label)
	}
	if p.Animate == nil || p.Animate.Duration != 500*time.Millisecond {
		t.Errorf("animate = %+v, want 500ms duration", p.Animate)
	}
}

func TestReadDocumentErrors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		format Format
	}{
		{"malformed toml", "width = = 5", FormatTOML},
		{"malformed json", `{"width":`, FormatJSON},
		{"data and series", "data = [[1, 2]]\n[[series]]\npoints = [[1, 2]]", FormatTOML},
		{"bad padding shape", `data = [[1, 2]]` + "\n" + `padding = "wide"`, FormatTOML},
		{"unknown domain axis", "data = [[1, 2]]\n[domain]\nz = [0, 1]", FormatTOML},
		{"span arity", "data = [[1, 2]]\ndomain = [1, 2, 3]", FormatTOML},
		{"scale not a string", "data = [[1, 2]]\n[scales]\nx = 5", FormatTOML},
		{"bad series name", "[[series]]\nname = \"a<b\"\npoints = [[1, 2]]", FormatTOML},
		{"point missing y", "data = [{ x = 1 }]", FormatTOML},
		{"keyframe data and series", "data = [[1, 2]]\n[[keyframes]]\ndata = [[1, 3]]\n[[keyframes.series]]\npoints = [[1, 4]]", FormatTOML},
		{"bad duration", "data = [[1, 2]]\n[animate]\nduration = \"soon\"", FormatTOML},
		{"unknown animate key", "data = [[1, 2]]\n[animate]\ntempo = 3", FormatTOML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadDocument(strings.NewReader(tt.src), tt.format)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidDocument) {
				t.Errorf("error code = %v, want INVALID_DOCUMENT: %v", errors.GetCode(err), err)
			}
		})
	}
}

func TestReadDocumentUnsupportedFormat(t *testing.T) {
	_, err := ReadDocument(strings.NewReader("data: [1]"), Format("yaml"))
	if !errors.Is(err, errors.ErrCodeInvalidDocument) {
		t.Errorf("error = %v, want INVALID_DOCUMENT", err)
	}
}

func TestImportDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chart.toml")
	content := `
width = 320
data = [[1, 5], [2, 8], [3, 4]]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := ImportDocument(path)
	if err != nil {
		t.Fatalf("ImportDocument failed: %v", err)
	}
	if doc.Props.Width != 320 {
		t.Errorf("width = %v, want 320", doc.Props.Width)
	}
	if len(doc.Props.Data[0]) != 3 {
		t.Errorf("points = %d, want 3", len(doc.Props.Data[0]))
	}
}

func TestImportDocumentErrors(t *testing.T) {
	t.Run("unsupported extension", func(t *testing.T) {
		_, err := ImportDocument("chart.yaml")
		if !errors.Is(err, errors.ErrCodeInvalidDocument) {
			t.Errorf("error = %v, want INVALID_DOCUMENT", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ImportDocument(filepath.Join(t.TempDir(), "absent.toml"))
		if !errors.Is(err, errors.ErrCodeFileNotFound) {
			t.Errorf("error = %v, want FILE_NOT_FOUND", err)
		}
	})
}
