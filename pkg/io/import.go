package io

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/chartstack/pkg/chart"
	"github.com/matzehuels/chartstack/pkg/chart/style"
	"github.com/matzehuels/chartstack/pkg/errors"
)

// Format identifies a document encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// Document is a decoded chart document: the base chart props plus the
// resolved keyframe sequence, if the document declares one.
type Document struct {
	Props     chart.Props
	Keyframes []chart.Props
}

// States returns the full animation sequence: the base props followed by
// each resolved keyframe. A document without keyframes yields a single
// state.
func (d *Document) States() []chart.Props {
	if len(d.Keyframes) == 0 {
		return []chart.Props{d.Props}
	}
	return append([]chart.Props{d.Props}, d.Keyframes...)
}

// =============================================================================
// Reading
// =============================================================================

// ReadDocument decodes a chart document from r.
//
// A document is a TOML or JSON description of one chart. The minimal form
// carries just the data:
//
//	data = [[1, 5], [2, 8], [3, 4]]
//
// Larger documents add named series, axis domains, scales, categories,
// styles and an animation block. Several fields accept more than one shape;
// see the package documentation for the full format.
//
// ReadDocument returns an error if:
//   - The input is not valid TOML or JSON
//   - A field has a shape the format does not allow
//   - The document carries both data and series
//   - A series name fails validation
//
// Errors carry the INVALID_DOCUMENT code and wrap the underlying cause.
// The returned document is independent of r; ReadDocument does not close r.
func ReadDocument(r io.Reader, format Format) (*Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read document")
	}

	var doc document
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(raw, &doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode toml document")
		}
	case FormatJSON:
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode json document")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidDocument, "unsupported document format: %q (want toml or json)", format)
	}

	return doc.toDocument()
}

// ImportDocument reads the chart document at path, picking the format from
// the file extension. It returns the same validation errors as
// [ReadDocument] for malformed documents.
func ImportDocument(path string) (*Document, error) {
	if err := errors.ValidateDocumentFilename(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()

	format := FormatJSON
	if strings.HasSuffix(strings.ToLower(path), ".toml") {
		format = FormatTOML
	}
	return ReadDocument(f, format)
}

// =============================================================================
// Document form
// =============================================================================

// document is the decode target for both encodings. Fields with more than
// one accepted shape use wrapper types that normalize during decoding.
type document struct {
	Width         float64           `toml:"width" json:"width"`
	Height        float64           `toml:"height" json:"height"`
	Horizontal    bool              `toml:"horizontal" json:"horizontal"`
	Stacked       bool              `toml:"stacked" json:"stacked"`
	Standalone    *bool             `toml:"standalone" json:"standalone"`
	ColorScale    string            `toml:"color_scale" json:"color_scale"`
	DomainPadding float64           `toml:"domain_padding" json:"domain_padding"`
	BarWidth      float64           `toml:"bar_width" json:"bar_width"`
	BarPadding    float64           `toml:"bar_padding" json:"bar_padding"`
	Labels        []string          `toml:"labels" json:"labels"`
	Padding       *paddingDoc       `toml:"padding" json:"padding"`
	Domain        *domainDoc        `toml:"domain" json:"domain"`
	Scales        *scaleDoc         `toml:"scales" json:"scales"`
	Categories    *categoriesDoc    `toml:"categories" json:"categories"`
	Attrs         style.Attrs       `toml:"attrs" json:"attrs"`
	Style         style.Bundle      `toml:"style" json:"style"`
	Data          []chart.DataPoint `toml:"data" json:"data"`
	Series        []seriesDoc       `toml:"series" json:"series"`
	Animate       *animateDoc       `toml:"animate" json:"animate"`
	Keyframes     []keyframeDoc     `toml:"keyframes" json:"keyframes"`
}

// seriesDoc is one named dataset in document form.
type seriesDoc struct {
	Name   string            `toml:"name" json:"name"`
	Attrs  style.Attrs       `toml:"attrs" json:"attrs"`
	Points []chart.DataPoint `toml:"points" json:"points"`
}

// keyframeDoc is one animation keyframe: a patch applied on top of the
// previous state. Absent fields keep the previous value; attrs and style
// merge instead of replacing.
type keyframeDoc struct {
	Data          []chart.DataPoint `toml:"data" json:"data"`
	Series        []seriesDoc       `toml:"series" json:"series"`
	Domain        *domainDoc        `toml:"domain" json:"domain"`
	Labels        []string          `toml:"labels" json:"labels"`
	Attrs         style.Attrs       `toml:"attrs" json:"attrs"`
	Style         *style.Bundle     `toml:"style" json:"style"`
	Width         float64           `toml:"width" json:"width"`
	Height        float64           `toml:"height" json:"height"`
	DomainPadding *float64          `toml:"domain_padding" json:"domain_padding"`
	BarWidth      *float64          `toml:"bar_width" json:"bar_width"`
	BarPadding    *float64          `toml:"bar_padding" json:"bar_padding"`
}

func (d *document) toDocument() (*Document, error) {
	props, err := d.toProps()
	if err != nil {
		return nil, err
	}

	out := &Document{Props: props}
	cur := props
	for i, kf := range d.Keyframes {
		next, err := applyKeyframe(cur, kf)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "keyframe %d", i)
		}
		out.Keyframes = append(out.Keyframes, next)
		cur = next
	}
	return out, nil
}

func (d *document) toProps() (chart.Props, error) {
	p := chart.Props{
		Width:         d.Width,
		Height:        d.Height,
		Horizontal:    d.Horizontal,
		Stacked:       d.Stacked,
		Standalone:    d.Standalone,
		ColorScale:    d.ColorScale,
		DomainPadding: d.DomainPadding,
		BarWidth:      d.BarWidth,
		BarPadding:    d.BarPadding,
		Labels:        d.Labels,
		Style:         d.Style,
	}
	p.Attrs.Shared = d.Attrs

	if d.Padding != nil {
		in := d.Padding.insets
		p.Padding = &in
	}
	if d.Domain != nil {
		p.Domain = d.Domain.spec
	}
	if d.Scales != nil {
		p.Scales = d.Scales.spec
	}
	if d.Categories != nil {
		p.Categories = d.Categories.spec
	}
	if d.Animate != nil {
		anim := d.Animate.anim
		p.Animate = &anim
	}

	if len(d.Data) > 0 && len(d.Series) > 0 {
		return chart.Props{}, errors.New(errors.ErrCodeInvalidDocument, "document cannot carry both data and series")
	}
	switch {
	case len(d.Series) > 0:
		data, attrs, err := seriesData(d.Series)
		if err != nil {
			return chart.Props{}, err
		}
		p.Data = data
		p.Attrs.Series = attrs
	case len(d.Data) > 0:
		p.Data = [][]chart.DataPoint{d.Data}
	}
	return p, nil
}

// seriesData converts series entries into the dataset matrix and the
// per-dataset attribute list. The series name travels inside attrs under
// the "name" key, where consolidation reads it back.
func seriesData(series []seriesDoc) ([][]chart.DataPoint, []style.Attrs, error) {
	data := make([][]chart.DataPoint, len(series))
	attrs := make([]style.Attrs, len(series))
	for i, s := range series {
		if err := errors.ValidateDatasetName(s.Name); err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "series %d", i)
		}
		a := s.Attrs.Clone()
		if s.Name != "" {
			a["name"] = s.Name
		}
		attrs[i] = a
		data[i] = s.Points
	}
	return data, attrs, nil
}

// applyKeyframe patches one keyframe over the previous state and returns
// the resolved props. The previous state is never mutated.
func applyKeyframe(base chart.Props, kf keyframeDoc) (chart.Props, error) {
	p := base

	if len(kf.Data) > 0 && len(kf.Series) > 0 {
		return chart.Props{}, errors.New(errors.ErrCodeInvalidDocument, "keyframe cannot carry both data and series")
	}
	switch {
	case len(kf.Series) > 0:
		data, attrs, err := seriesData(kf.Series)
		if err != nil {
			return chart.Props{}, err
		}
		p.Data = data
		p.Attrs.Series = attrs
	case len(kf.Data) > 0:
		p.Data = [][]chart.DataPoint{kf.Data}
	}

	if kf.Domain != nil {
		p.Domain = kf.Domain.spec
	}
	if kf.Labels != nil {
		p.Labels = kf.Labels
	}
	if kf.Attrs != nil {
		p.Attrs.Shared = style.Merge(p.Attrs.Shared, kf.Attrs)
	}
	if kf.Style != nil {
		p.Style = style.MergeBundle(p.Style, *kf.Style)
	}
	if kf.Width > 0 {
		p.Width = kf.Width
	}
	if kf.Height > 0 {
		p.Height = kf.Height
	}
	if kf.DomainPadding != nil {
		p.DomainPadding = *kf.DomainPadding
	}
	if kf.BarWidth != nil {
		p.BarWidth = *kf.BarWidth
	}
	if kf.BarPadding != nil {
		p.BarPadding = *kf.BarPadding
	}
	return p, nil
}

// =============================================================================
// Polymorphic fields
// =============================================================================

// paddingDoc accepts a single number applied to all four sides, or a table
// of per-side values.
type paddingDoc struct {
	insets chart.Insets
}

func (p *paddingDoc) UnmarshalTOML(data any) error {
	if n, ok := floatOf(data); ok {
		p.insets = chart.Insets{Top: n, Right: n, Bottom: n, Left: n}
		return nil
	}
	m, ok := data.(map[string]any)
	if !ok {
		return errors.New(errors.ErrCodeInvalidDocument, "padding must be a number or a table, got %T", data)
	}
	for k, raw := range m {
		n, ok := floatOf(raw)
		if !ok {
			return errors.New(errors.ErrCodeInvalidDocument, "padding %s must be a number, got %T", k, raw)
		}
		switch k {
		case "top":
			p.insets.Top = n
		case "right":
			p.insets.Right = n
		case "bottom":
			p.insets.Bottom = n
		case "left":
			p.insets.Left = n
		default:
			return errors.New(errors.ErrCodeInvalidDocument, "unknown padding side %q", k)
		}
	}
	return nil
}

func (p *paddingDoc) UnmarshalJSON(data []byte) error {
	return delegateJSON(data, p)
}

// domainDoc accepts a bare [min, max] pair for the shared domain, or a
// table of per-axis entries where each entry is a pair or a min/max table.
type domainDoc struct {
	spec chart.DomainSpec
}

func (d *domainDoc) UnmarshalTOML(data any) error {
	switch v := data.(type) {
	case []any:
		s, err := spanOf(v)
		if err != nil {
			return err
		}
		d.spec.Shared = s
		return nil
	case map[string]any:
		for k, raw := range v {
			s, err := spanValue(raw)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidDocument, err, "domain %s", k)
			}
			switch k {
			case "x":
				d.spec.X = s
			case "y":
				d.spec.Y = s
			case "shared":
				d.spec.Shared = s
			default:
				return errors.New(errors.ErrCodeInvalidDocument, "unknown domain axis %q", k)
			}
		}
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidDocument, "domain must be a pair or a table, got %T", data)
	}
}

func (d *domainDoc) UnmarshalJSON(data []byte) error {
	return delegateJSON(data, d)
}

// scaleDoc accepts a single scale name applied to both axes, or a table of
// per-axis names.
type scaleDoc struct {
	spec chart.ScaleSpec
}

func (s *scaleDoc) UnmarshalTOML(data any) error {
	switch v := data.(type) {
	case string:
		s.spec = chart.ScaleSpec{X: v, Y: v}
		return nil
	case map[string]any:
		for k, raw := range v {
			name, ok := raw.(string)
			if !ok {
				return errors.New(errors.ErrCodeInvalidDocument, "scale %s must be a string, got %T", k, raw)
			}
			switch k {
			case "x":
				s.spec.X = name
			case "y":
				s.spec.Y = name
			default:
				return errors.New(errors.ErrCodeInvalidDocument, "unknown scale axis %q", k)
			}
		}
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidDocument, "scales must be a name or a table, got %T", data)
	}
}

func (s *scaleDoc) UnmarshalJSON(data []byte) error {
	return delegateJSON(data, s)
}

// categoriesDoc accepts a bare string array (x-axis labels), or a table of
// per-axis entries. Each axis entry is a string array (labels), an array of
// pairs (bands), or a table with explicit labels and bands keys.
type categoriesDoc struct {
	spec chart.Categories
}

func (c *categoriesDoc) UnmarshalTOML(data any) error {
	switch v := data.(type) {
	case []any:
		labels, err := stringsOf(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDocument, err, "categories")
		}
		c.spec.X.Labels = labels
		return nil
	case map[string]any:
		for k, raw := range v {
			axis, err := categoryAxisOf(raw)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidDocument, err, "categories %s", k)
			}
			switch k {
			case "x":
				c.spec.X = axis
			case "y":
				c.spec.Y = axis
			default:
				return errors.New(errors.ErrCodeInvalidDocument, "unknown category axis %q", k)
			}
		}
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidDocument, "categories must be an array or a table, got %T", data)
	}
}

func (c *categoriesDoc) UnmarshalJSON(data []byte) error {
	return delegateJSON(data, c)
}

func categoryAxisOf(raw any) (chart.CategoryAxis, error) {
	switch v := raw.(type) {
	case []any:
		if len(v) == 0 {
			return chart.CategoryAxis{}, nil
		}
		if _, ok := v[0].(string); ok {
			labels, err := stringsOf(v)
			return chart.CategoryAxis{Labels: labels}, err
		}
		bands, err := bandsOf(v)
		return chart.CategoryAxis{Bands: bands}, err
	case map[string]any:
		var axis chart.CategoryAxis
		for k, e := range v {
			arr, ok := e.([]any)
			if !ok {
				return chart.CategoryAxis{}, errors.New(errors.ErrCodeInvalidDocument, "%s must be an array, got %T", k, e)
			}
			switch k {
			case "labels":
				labels, err := stringsOf(arr)
				if err != nil {
					return chart.CategoryAxis{}, errors.Wrap(errors.ErrCodeInvalidDocument, err, "labels")
				}
				axis.Labels = labels
			case "bands":
				bands, err := bandsOf(arr)
				if err != nil {
					return chart.CategoryAxis{}, err
				}
				axis.Bands = bands
			default:
				return chart.CategoryAxis{}, errors.New(errors.ErrCodeInvalidDocument, "unknown category key %q", k)
			}
		}
		return axis, nil
	default:
		return chart.CategoryAxis{}, errors.New(errors.ErrCodeInvalidDocument, "category axis must be an array or a table, got %T", raw)
	}
}

func bandsOf(v []any) ([]chart.Span, error) {
	bands := make([]chart.Span, len(v))
	for i, e := range v {
		s, err := spanValue(e)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "band %d", i)
		}
		bands[i] = *s
	}
	return bands, nil
}

// animateDoc accepts durations as Go duration strings ("750ms") or as
// bare millisecond numbers.
type animateDoc struct {
	anim chart.Animation
}

func (a *animateDoc) UnmarshalTOML(data any) error {
	m, ok := data.(map[string]any)
	if !ok {
		return errors.New(errors.ErrCodeInvalidDocument, "animate must be a table, got %T", data)
	}
	for k, raw := range m {
		switch k {
		case "duration":
			d, err := durationOf(raw)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidDocument, err, "animate duration")
			}
			a.anim.Duration = d
		case "delay":
			d, err := durationOf(raw)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidDocument, err, "animate delay")
			}
			a.anim.Delay = d
		case "easing":
			s, ok := raw.(string)
			if !ok {
				return errors.New(errors.ErrCodeInvalidDocument, "animate easing must be a string, got %T", raw)
			}
			a.anim.Easing = s
		case "frames":
			n, ok := floatOf(raw)
			if !ok {
				return errors.New(errors.ErrCodeInvalidDocument, "animate frames must be a number, got %T", raw)
			}
			a.anim.Frames = int(n)
		default:
			return errors.New(errors.ErrCodeInvalidDocument, "unknown animate key %q", k)
		}
	}
	return nil
}

func (a *animateDoc) UnmarshalJSON(data []byte) error {
	return delegateJSON(data, a)
}

// =============================================================================
// Decode helpers
// =============================================================================

// delegateJSON funnels JSON decoding through the TOML unmarshaler so both
// encodings share one shape-normalization path. JSON numbers arrive as
// float64, TOML integers as int64; the helpers below accept both.
func delegateJSON(data []byte, u toml.Unmarshaler) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode")
	}
	return u.UnmarshalTOML(v)
}

func floatOf(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

func stringsOf(v []any) ([]string, error) {
	out := make([]string, len(v))
	for i, e := range v {
		s, ok := e.(string)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidDocument, "expected a string, got %T", e)
		}
		out[i] = s
	}
	return out, nil
}

func spanOf(v []any) (*chart.Span, error) {
	if len(v) != 2 {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "span needs exactly 2 elements, got %d", len(v))
	}
	lo, okLo := floatOf(v[0])
	hi, okHi := floatOf(v[1])
	if !okLo || !okHi {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "span elements must be numbers")
	}
	return &chart.Span{Min: lo, Max: hi}, nil
}

func spanValue(raw any) (*chart.Span, error) {
	switch v := raw.(type) {
	case []any:
		return spanOf(v)
	case map[string]any:
		s := &chart.Span{}
		for k, e := range v {
			n, ok := floatOf(e)
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidDocument, "span %s must be a number, got %T", k, e)
			}
			switch k {
			case "min":
				s.Min = n
			case "max":
				s.Max = n
			default:
				return nil, errors.New(errors.ErrCodeInvalidDocument, "unknown span key %q", k)
			}
		}
		return s, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidDocument, "span must be a pair or a min/max table, got %T", raw)
	}
}

func durationOf(raw any) (time.Duration, error) {
	if s, ok := raw.(string); ok {
		d, err := time.ParseDuration(s)
		if err != nil {
			return 0, errors.Wrap(errors.ErrCodeInvalidDocument, err, "parse duration %q", s)
		}
		return d, nil
	}
	if n, ok := floatOf(raw); ok {
		return time.Duration(n * float64(time.Millisecond)), nil
	}
	return 0, errors.New(errors.ErrCodeInvalidDocument, "duration must be a string or milliseconds, got %T", raw)
}
