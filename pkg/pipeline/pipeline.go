// Package pipeline runs the complete decode → layout → render chart
// pipeline behind one entry point shared by the CLI and by embedders.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Decode: Read a chart document (TOML or JSON) and apply option overrides
//  2. Layout: Compute bar and label geometry from the resolved props
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Document: "chart.toml",
//	    Formats:  []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Decode only
//	doc, err := runner.Decode(ctx, opts)
//
//	// Layout with existing props
//	g, err := runner.GenerateGeometry(ctx, doc.Props, opts)
//
//	// Render with existing geometry
//	artifacts, err := runner.RenderArtifacts(ctx, g, opts)
//
// Multi-keyframe documents animate through ExecuteAnimation, which tweens
// between keyframe states and renders every frame.
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartstack/pkg/anim"
	"github.com/matzehuels/chartstack/pkg/cache"
	"github.com/matzehuels/chartstack/pkg/chart"
	"github.com/matzehuels/chartstack/pkg/chart/palette"
	"github.com/matzehuels/chartstack/pkg/chart/scale"
	"github.com/matzehuels/chartstack/pkg/errors"
	chartio "github.com/matzehuels/chartstack/pkg/io"
	"github.com/matzehuels/chartstack/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Embedders
// =============================================================================

// DefaultStyle is the default visual style.
const DefaultStyle = render.DefaultStyle

// DefaultPNGScale is the default raster scale factor for PNG output.
const DefaultPNGScale = render.DefaultPNGScale

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the chart pipeline.
// This struct supports JSON serialization for embedding in request payloads.
type Options struct {
	// Decode options. Document names a file on disk; Source carries inline
	// document content with SourceFormat naming its encoding.
	Document     string `json:"document,omitempty"`
	Source       []byte `json:"source,omitempty"`
	SourceFormat string `json:"source_format,omitempty"`

	// Layout overrides, applied over the decoded document. Zero values
	// leave the document's own settings in place; the boolean flags only
	// switch behavior on, so a document that asks for stacked bars keeps
	// them even when the flag is absent.
	Width      float64 `json:"width,omitempty"`
	Height     float64 `json:"height,omitempty"`
	Horizontal bool    `json:"horizontal,omitempty"`
	Stacked    bool    `json:"stacked,omitempty"`
	Scale      string  `json:"scale,omitempty"`
	Palette    string  `json:"palette,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Style    string   `json:"style,omitempty"`
	ChartID  string   `json:"chart_id,omitempty"`
	Title    string   `json:"title,omitempty"`
	Fragment bool     `json:"fragment,omitempty"`
	PNGScale float64  `json:"png_scale,omitempty"`

	// Animation overrides, applied over the document's animate block.
	Easing   string        `json:"easing,omitempty"`
	Frames   int           `json:"frames,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the decoded chart document.
	Document *chartio.Document

	// Props are the effective props after option overrides.
	Props chart.Props

	// Geometry is the computed layout.
	Geometry *chart.Geometry

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	DatasetCount int
	PointCount   int
	BarCount     int
	DecodeTime   time.Duration
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for the render stage. Decode and layout are
// deterministic and cheap, so only converted artifacts pass through the
// cache.
type CacheInfo struct {
	// RenderHit reports whether every converted artifact (png, pdf) came
	// from cache. It stays false when no requested format needs conversion.
	RenderHit bool
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(name string) error {
	if !render.ValidStyle(name) {
		return errors.New(errors.ErrCodeInvalidStyle,
			"invalid style: %q (must be one of: %s)", name, strings.Join(render.StyleNames(), ", "))
	}
	return nil
}

// ValidateScale checks that a scale family name is valid. Empty selects
// the document's own scales.
func ValidateScale(name string) error {
	_, err := scale.ParseFamily(name)
	return err
}

// ValidatePalette checks that a color scale name is valid. Empty selects
// the document's own color scale.
func ValidatePalette(name string) error {
	if name == "" || palette.Valid(name) {
		return nil
	}
	return errors.New(errors.ErrCodeInvalidPalette,
		"invalid palette: %q (must be one of: %s)", name, strings.Join(palette.Names(), ", "))
}

// ValidateEasing checks that an easing name is valid. Empty selects the
// document's own easing.
func ValidateEasing(name string) error {
	if name == "" || anim.ValidEasing(name) {
		return nil
	}
	return errors.New(errors.ErrCodeInvalidEasing,
		"invalid easing: %q (must be one of: %s)", name, strings.Join(anim.EasingNames(), ", "))
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForDecode(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForDecode checks required fields for decoding a document.
func (o *Options) ValidateForDecode() error {
	if o.Document == "" && len(o.Source) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "document path or source is required")
	}
	if len(o.Source) > 0 && o.SourceFormat == "" {
		o.SourceFormat = string(chartio.FormatTOML)
	}
	if o.SourceFormat != "" {
		switch chartio.Format(o.SourceFormat) {
		case chartio.FormatTOML, chartio.FormatJSON:
		default:
			return errors.New(errors.ErrCodeInvalidDocument,
				"invalid source format: %q (must be one of: toml, json)", o.SourceFormat)
		}
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetLayoutDefaults sets default values for layout computation. Sizing
// defaults live in the chart package; the pipeline only fills runtime
// fields so zero-valued overrides keep deferring to the document.
func (o *Options) SetLayoutDefaults() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ValidateScale(o.Scale); err != nil {
		return err
	}
	return ValidatePalette(o.Palette)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.PNGScale <= 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateStyle(o.Style)
}

// ValidateForAnimation validates and sets defaults for animated runs.
func (o *Options) ValidateForAnimation() error {
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	return ValidateEasing(o.Easing)
}

// NeedsSVG returns true if any requested format is derived from SVG.
func (o *Options) NeedsSVG() bool {
	for _, f := range o.Formats {
		if f != FormatJSON {
			return true
		}
	}
	return false
}

// ArtifactKeyOpts returns cache key options for converting an artifact.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	if format == FormatPNG {
		opts.Scale = o.PNGScale
	}
	return opts
}
