package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartstack/pkg/cache"
	"github.com/matzehuels/chartstack/pkg/chart"
	"github.com/matzehuels/chartstack/pkg/errors"
	chartio "github.com/matzehuels/chartstack/pkg/io"
	"github.com/matzehuels/chartstack/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both the CLI and embedders can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete decode → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Decode
	decodeStart := time.Now()
	doc, err := r.Decode(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Document = doc
	result.Props = applyOverrides(doc.Props, opts)
	result.Stats.DecodeTime = time.Since(decodeStart)
	result.Stats.DatasetCount = len(result.Props.Data)
	result.Stats.PointCount = countPoints(result.Props)

	r.Logger.Info("decoded document",
		"document", documentName(opts),
		"datasets", result.Stats.DatasetCount,
		"points", result.Stats.PointCount,
		"duration", result.Stats.DecodeTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	g, err := r.GenerateGeometry(ctx, doc.Props, opts)
	if err != nil {
		return nil, err
	}
	result.Geometry = g
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.BarCount = len(g.Bars)

	r.Logger.Info("computed layout",
		"bars", result.Stats.BarCount,
		"labels", len(g.Labels),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderArtifactsWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Decode reads the chart document selected by the options, emitting decode
// hooks around the read.
func (r *Runner) Decode(ctx context.Context, opts Options) (*chartio.Document, error) {
	if err := opts.ValidateForDecode(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	hooks := observability.Pipeline()
	name := documentName(opts)
	hooks.OnDecodeStart(ctx, name)
	start := time.Now()

	doc, err := Decode(opts)
	if err != nil {
		hooks.OnDecodeComplete(ctx, name, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnDecodeComplete(ctx, name, len(doc.Props.Data), time.Since(start), nil)
	return doc, nil
}

// GenerateGeometry computes geometry for one prop state, emitting layout
// hooks around the computation.
func (r *Runner) GenerateGeometry(ctx context.Context, props chart.Props, opts Options) (*chart.Geometry, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(props.Data), countPoints(props))
	start := time.Now()

	g, err := GenerateGeometry(props, opts)
	if err != nil {
		hooks.OnLayoutComplete(ctx, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnLayoutComplete(ctx, len(g.Bars), time.Since(start), nil)
	return g, nil
}

// RenderArtifactsWithCacheInfo renders artifacts with conversion caching
// and returns cache hit info.
func (r *Runner) RenderArtifactsWithCacheInfo(ctx context.Context, g *chart.Geometry, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, allHit, err := r.renderWithCache(ctx, g, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}
	return artifacts, allHit, nil
}

// RenderArtifacts is a convenience wrapper that calls
// RenderArtifactsWithCacheInfo and discards the cache hit info.
func (r *Runner) RenderArtifacts(ctx context.Context, g *chart.Geometry, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderArtifactsWithCacheInfo(ctx, g, opts)
	return artifacts, err
}

// renderWithCache renders every requested format, serving converted formats
// (png, pdf) from the artifact cache when possible. The SVG document is
// rendered once and shared by every format derived from it; the cache key
// hashes those bytes, so any change to geometry or render options misses
// naturally.
func (r *Runner) renderWithCache(ctx context.Context, g *chart.Geometry, opts Options) (map[string][]byte, bool, error) {
	svgDoc, err := renderSVGDocument(g, opts)
	if err != nil {
		return nil, false, err
	}
	var svgHash string
	if svgDoc != nil {
		svgHash = cache.Hash(svgDoc)
	}

	cacheHooks := observability.Cache()
	artifacts := make(map[string][]byte)
	converted := 0
	hits := 0

	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			artifacts[format] = svgDoc
		case FormatJSON:
			data, err := renderJSONDocument(g, opts)
			if err != nil {
				return nil, false, err
			}
			artifacts[format] = data
		case FormatPNG, FormatPDF:
			converted++
			key := r.Keyer.ArtifactKey(svgHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				cacheHooks.OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				hits++
				continue
			}
			cacheHooks.OnCacheMiss(ctx, "artifact")
			data, err := convertSVG(svgDoc, format, opts)
			if err != nil {
				return nil, false, err
			}
			artifacts[format] = data
			if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
				cacheHooks.OnCacheSet(ctx, "artifact", len(data))
			}
		default:
			return nil, false, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}
	}

	return artifacts, converted > 0 && hits == converted, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
