package pipeline

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartstack/pkg/cache"
	"github.com/matzehuels/chartstack/pkg/chart"
	"github.com/matzehuels/chartstack/pkg/errors"
)

const testDocument = `
width = 400
height = 300
data = [[0, 5], [1, 8], [2, 3]]
`

const animatedDocument = `
data = [[0, 2], [1, 4]]

[animate]
frames = 3
duration = "30ms"

[[keyframes]]
data = [[0, 6], [1, 1]]

[[keyframes]]
data = [[0, 3], [1, 5]]
`

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func writeDocument(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chart.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write document: %v", err)
	}
	return path
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	if r.Cache == nil {
		t.Error("Cache should default to a null cache")
	}
	if r.Keyer == nil {
		t.Error("Keyer should default")
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestRunnerExecute(t *testing.T) {
	path := writeDocument(t, testDocument)
	r := NewRunner(nil, nil, quietLogger())

	result, err := r.Execute(context.Background(), Options{
		Document: path,
		Formats:  []string{"svg", "json"},
		ChartID:  "chart-test",
		Title:    "Revenue",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if result.Document == nil || result.Geometry == nil {
		t.Fatal("Execute() should fill document and geometry")
	}
	if result.Stats.DatasetCount != 1 || result.Stats.PointCount != 3 {
		t.Errorf("stats = %+v", result.Stats)
	}
	if result.Stats.BarCount != 3 {
		t.Errorf("BarCount = %d, want 3", result.Stats.BarCount)
	}

	svg := string(result.Artifacts["svg"])
	if !strings.Contains(svg, "<svg") || !strings.Contains(svg, `id="chart-test"`) {
		t.Error("svg artifact missing or not standalone")
	}
	if !strings.Contains(svg, "<title>Revenue</title>") {
		t.Error("svg artifact missing title")
	}
	if _, ok := result.Artifacts["json"]; !ok {
		t.Error("json artifact missing")
	}
	if result.CacheInfo.RenderHit {
		t.Error("RenderHit should be false without converted formats")
	}
}

func TestRunnerExecuteOverrides(t *testing.T) {
	path := writeDocument(t, testDocument)
	r := NewRunner(nil, nil, quietLogger())

	result, err := r.Execute(context.Background(), Options{
		Document: path,
		Width:    900,
		Palette:  "cool",
		Formats:  []string{"json"},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if result.Props.Width != 900 {
		t.Errorf("Props.Width = %v, want 900", result.Props.Width)
	}
	if result.Props.ColorScale != "cool" {
		t.Errorf("Props.ColorScale = %q, want cool", result.Props.ColorScale)
	}
	if result.Geometry.Width != 900 {
		t.Errorf("Geometry.Width = %v, want 900", result.Geometry.Width)
	}
}

func TestRunnerExecuteErrors(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	ctx := context.Background()

	if _, err := r.Execute(ctx, Options{}); err == nil {
		t.Error("Execute() without a document should fail")
	}

	_, err := r.Execute(ctx, Options{Document: filepath.Join(t.TempDir(), "absent.toml")})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}

	path := writeDocument(t, "data = [[1]]")
	_, err = r.Execute(ctx, Options{Document: path})
	if !errors.Is(err, errors.ErrCodeInvalidDocument) {
		t.Errorf("malformed document error = %v, want %s", err, errors.ErrCodeInvalidDocument)
	}
}

func TestRunnerDecodeInlineSource(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())

	doc, err := r.Decode(context.Background(), Options{Source: []byte("data = [[1, 5], [2, 9]]")})
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(doc.Props.Data) != 1 || len(doc.Props.Data[0]) != 2 {
		t.Errorf("decoded data = %+v", doc.Props.Data)
	}
}

func TestRunnerGenerateGeometryDirect(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	props := chart.Props{
		Data: [][]chart.DataPoint{{chart.Pt(0, 5), chart.Pt(1, 2)}},
	}

	g, err := r.GenerateGeometry(context.Background(), props, Options{})
	if err != nil {
		t.Fatalf("GenerateGeometry() error = %v", err)
	}
	if len(g.Bars) != 2 {
		t.Errorf("bars = %d, want 2", len(g.Bars))
	}
}

func TestRunnerRenderArtifactsFragment(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	ctx := context.Background()

	g, err := r.GenerateGeometry(ctx, chart.Props{
		Data: [][]chart.DataPoint{{chart.Pt(0, 5)}},
	}, Options{})
	if err != nil {
		t.Fatalf("GenerateGeometry() error = %v", err)
	}

	artifacts, err := r.RenderArtifacts(ctx, g, Options{Formats: []string{"svg"}, Fragment: true})
	if err != nil {
		t.Fatalf("RenderArtifacts() error = %v", err)
	}
	if !bytes.HasPrefix(artifacts["svg"], []byte(`<g class="chart">`)) {
		t.Errorf("fragment output should start with a group element, got %q", artifacts["svg"][:20])
	}
}

func TestRunnerConversionCacheHit(t *testing.T) {
	path := writeDocument(t, testDocument)
	r := NewRunner(cache.NewMemoryCache(), nil, quietLogger())
	defer r.Close()
	ctx := context.Background()

	// A pinned chart id keeps the SVG bytes, and with them the artifact
	// cache key, stable across renders.
	opts := Options{
		Document: path,
		Formats:  []string{"svg", "png"},
		ChartID:  "chart-fixed",
	}

	// Render the SVG the same way the runner will to compute the key.
	seeded := opts
	seeded.SetRenderDefaults()
	doc, err := r.Decode(ctx, seeded)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	g, err := r.GenerateGeometry(ctx, doc.Props, seeded)
	if err != nil {
		t.Fatalf("GenerateGeometry() error = %v", err)
	}
	svgDoc, err := renderSVGDocument(g, seeded)
	if err != nil {
		t.Fatalf("renderSVGDocument() error = %v", err)
	}

	key := r.Keyer.ArtifactKey(cache.Hash(svgDoc), seeded.ArtifactKeyOpts(FormatPNG))
	if err := r.Cache.Set(ctx, key, []byte("png-bytes"), cache.TTLArtifact); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	result, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if string(result.Artifacts["png"]) != "png-bytes" {
		t.Error("png artifact should come from cache")
	}
	if !result.CacheInfo.RenderHit {
		t.Error("RenderHit should be true when every conversion came from cache")
	}
	if !bytes.Equal(result.Artifacts["svg"], svgDoc) {
		t.Error("svg artifact should be rendered fresh")
	}
}

func TestRunnerExecuteAnimation(t *testing.T) {
	path := writeDocument(t, animatedDocument)
	r := NewRunner(nil, nil, quietLogger())

	result, err := r.ExecuteAnimation(context.Background(), Options{
		Document: path,
		Formats:  []string{"svg"},
	})
	if err != nil {
		t.Fatalf("ExecuteAnimation() error = %v", err)
	}

	// Two segments of three frames each
	if got, want := len(result.Frames), result.Timeline.FrameCount(); got != want {
		t.Errorf("frames = %d, timeline reports %d", got, want)
	}
	if len(result.Frames) != 6 {
		t.Errorf("frames = %d, want 6", len(result.Frames))
	}
	for i, frame := range result.Frames {
		if _, ok := frame["svg"]; !ok {
			t.Errorf("frame %d missing svg artifact", i)
		}
	}
}

func TestRunnerExecuteAnimationFramesOverride(t *testing.T) {
	path := writeDocument(t, animatedDocument)
	r := NewRunner(nil, nil, quietLogger())

	result, err := r.ExecuteAnimation(context.Background(), Options{
		Document: path,
		Frames:   2,
		Formats:  []string{"json"},
	})
	if err != nil {
		t.Fatalf("ExecuteAnimation() error = %v", err)
	}
	if len(result.Frames) != 4 {
		t.Errorf("frames = %d, want 4 with two frames per segment", len(result.Frames))
	}
}

func TestRunnerExecuteAnimationWithoutKeyframes(t *testing.T) {
	path := writeDocument(t, testDocument)
	r := NewRunner(nil, nil, quietLogger())

	_, err := r.ExecuteAnimation(context.Background(), Options{Document: path})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("single-state animation error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}
