package chart

import (
	"time"

	"github.com/matzehuels/chartstack/pkg/chart/style"
)

// Default configuration values applied by Layout when a prop is unset.
const (
	DefaultWidth      = 450.0
	DefaultHeight     = 300.0
	DefaultPadding    = 50.0
	DefaultBarWidth   = 8.0
	DefaultBarPadding = 6.0
)

// Span is a closed [Min, Max] interval, used for domains, ranges and
// category bands.
type Span struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Width returns Max - Min.
func (s Span) Width() float64 { return s.Max - s.Min }

// Mid returns the midpoint of the span.
func (s Span) Mid() float64 { return (s.Min + s.Max) / 2 }

// normalized returns the span with Min <= Max.
func (s Span) normalized() Span {
	if s.Min > s.Max {
		return Span{Min: s.Max, Max: s.Min}
	}
	return s
}

// Insets are pixel paddings between the chart edge and the plot area.
type Insets struct {
	Top    float64 `json:"top" toml:"top"`
	Right  float64 `json:"right" toml:"right"`
	Bottom float64 `json:"bottom" toml:"bottom"`
	Left   float64 `json:"left" toml:"left"`
}

// UniformInsets returns equal padding on all four sides.
func UniformInsets(v float64) Insets {
	return Insets{Top: v, Right: v, Bottom: v, Left: v}
}

// DomainSpec carries explicit domain configuration. A per-axis span wins
// over the shared span; a nil field means "derive from data".
type DomainSpec struct {
	X      *Span `json:"x,omitempty"`
	Y      *Span `json:"y,omitempty"`
	Shared *Span `json:"shared,omitempty"`
}

// forAxis resolves the explicit domain for one axis, if any.
func (d DomainSpec) forAxis(axis axisID) *Span {
	var explicit *Span
	switch axis {
	case axisX:
		explicit = d.X
	case axisY:
		explicit = d.Y
	}
	if explicit != nil {
		return explicit
	}
	return d.Shared
}

// ScaleSpec selects the scale family per axis. Empty strings select linear.
type ScaleSpec struct {
	X string `json:"x,omitempty" toml:"x"`
	Y string `json:"y,omitempty" toml:"y"`
}

// CategoryAxis describes categorical metadata for one axis: either plain
// ordinal labels or numeric [min, max] bands. Plain labels never contribute
// to numeric domain inference; bands do.
type CategoryAxis struct {
	Labels []string `json:"labels,omitempty"`
	Bands  []Span   `json:"bands,omitempty"`
}

// Categories holds per-axis category metadata. Document-level shorthand (a
// bare list) applies to the x axis.
type Categories struct {
	X CategoryAxis `json:"x,omitempty"`
	Y CategoryAxis `json:"y,omitempty"`
}

// AttrsSpec carries dataset style attributes in either shape: one shared
// bundle applied to every dataset, or a positional list aligned with nested
// data input. A positional entry wins over the shared bundle.
type AttrsSpec struct {
	Shared style.Attrs   `json:"shared,omitempty"`
	Series []style.Attrs `json:"series,omitempty"`
}

// forDataset resolves the attribute bundle for dataset i.
func (a AttrsSpec) forDataset(i int) style.Attrs {
	if i < len(a.Series) && a.Series[i] != nil {
		return a.Series[i]
	}
	return a.Shared
}

// Animation configures the tween collaborator. When present, consumers
// drive Layout repeatedly with interpolated props instead of rendering a
// single static pass.
type Animation struct {
	Duration time.Duration `json:"duration" toml:"duration"`
	Easing   string        `json:"easing" toml:"easing"`
	Frames   int           `json:"frames,omitempty" toml:"frames"`
	Delay    time.Duration `json:"delay,omitempty" toml:"delay"`
}

// Props is the full declarative configuration for one chart: the pipeline
// input. Layout never mutates the supplied Props.
type Props struct {
	// Data holds one inner slice per dataset. Flat document input arrives
	// as a single inner slice.
	Data [][]DataPoint `json:"data"`

	// Attrs are the per-dataset style attribute bundles.
	Attrs AttrsSpec `json:"attrs,omitempty"`

	// Categories supplies categorical metadata per axis.
	Categories Categories `json:"categories,omitempty"`

	// ColorScale names the palette used to tint datasets.
	ColorScale string `json:"color_scale,omitempty"`

	// Domain pins axis domains instead of deriving them from data.
	Domain DomainSpec `json:"domain,omitempty"`

	// DomainPadding expands both ends of each derived domain by this many
	// pixels, converted into domain units.
	DomainPadding float64 `json:"domain_padding,omitempty"`

	// Chart pixel dimensions.
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Horizontal swaps the pixel ranges of the two axes so bars grow
	// sideways.
	Horizontal bool `json:"horizontal,omitempty"`

	// Labels are the configured label texts, resolved per point by label
	// index.
	Labels []string `json:"labels,omitempty"`

	// Padding insets the plot area from the chart edges.
	Padding *Insets `json:"padding,omitempty"`

	// Scales selects the scale family per axis.
	Scales ScaleSpec `json:"scales,omitempty"`

	// Stacked draws datasets cumulatively instead of grouped side by side.
	Stacked bool `json:"stacked,omitempty"`

	// Standalone emits a self-contained SVG document instead of a fragment.
	// Unset means standalone.
	Standalone *bool `json:"standalone,omitempty"`

	// Style overrides the default three-part style bundle.
	Style style.Bundle `json:"style,omitempty"`

	// BarWidth and BarPadding control mark sizing in pixels. Zero falls
	// back to the style bundle's data width/padding, then to defaults.
	BarWidth   float64 `json:"bar_width,omitempty"`
	BarPadding float64 `json:"bar_padding,omitempty"`

	// Animate defers rendering to the tween collaborator.
	Animate *Animation `json:"animate,omitempty"`
}

// axisID distinguishes the two axes during domain resolution.
type axisID int

const (
	axisX axisID = iota
	axisY
)

// withDefaults returns a copy of p with unset props replaced by defaults.
// The copy shares dataset slices with the original; Layout treats them as
// read-only.
func (p Props) withDefaults() Props {
	if p.Width <= 0 {
		p.Width = DefaultWidth
	}
	if p.Height <= 0 {
		p.Height = DefaultHeight
	}
	if p.Padding == nil {
		insets := UniformInsets(DefaultPadding)
		p.Padding = &insets
	}
	return p
}

// IsStandalone resolves the standalone flag, defaulting to true.
func (p Props) IsStandalone() bool {
	if p.Standalone == nil {
		return true
	}
	return *p.Standalone
}

// barSizing resolves bar width and padding: explicit props win, then the
// style bundle's data section, then defaults.
func (p Props) barSizing(data style.Attrs) (width, padding float64) {
	width = p.BarWidth
	if width <= 0 {
		if w, ok := data.Float("width"); ok && w > 0 {
			width = w
		} else {
			width = DefaultBarWidth
		}
	}
	padding = p.BarPadding
	if padding <= 0 {
		if pad, ok := data.Float("padding"); ok && pad > 0 {
			padding = pad
		} else {
			padding = DefaultBarPadding
		}
	}
	return width, padding
}
