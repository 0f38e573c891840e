// Package style provides the three-part style model used by chart geometry.
//
// A style bundle has independent sections for the parent container, the data
// marks and the labels. Each section is a loose attribute map so documents can
// carry arbitrary SVG presentation properties without the engine enumerating
// them. Merging is deep and override-wins; resolution happens once per layout
// pass.
package style

import (
	"fmt"
	"sort"
	"strings"

	"github.com/matzehuels/chartstack/pkg/fonts"
)

// Attrs is one style section: presentation attributes keyed by CSS property
// name ("fill", "stroke-width", "font-size", ...). Values are scalars; nested
// maps are allowed and merged recursively.
type Attrs map[string]any

// Bundle is the full three-part style record for one chart.
type Bundle struct {
	Parent Attrs `json:"parent,omitempty" toml:"parent"`
	Data   Attrs `json:"data,omitempty" toml:"data"`
	Labels Attrs `json:"labels,omitempty" toml:"labels"`
}

// layoutKeys are attribute names consumed by geometry computation rather than
// written into SVG style attributes.
var layoutKeys = map[string]bool{
	"width":   true,
	"height":  true,
	"padding": true,
}

// =============================================================================
// Defaults
// =============================================================================

// Default returns the base style bundle applied beneath user overrides.
// Mark and label colors come from the grayscale end of the default palette.
func Default() Bundle {
	return Bundle{
		Parent: Attrs{
			"font-family": fonts.SansStack,
		},
		Data: Attrs{
			"fill":         "#252525",
			"stroke":       "none",
			"stroke-width": 0.0,
			"width":        8.0,
			"padding":      6.0,
		},
		Labels: Attrs{
			"fill":        "#252525",
			"font-family": fonts.SansStack,
			"font-size":   14.0,
			"text-anchor": "middle",
			"padding":     10.0,
		},
	}
}

// =============================================================================
// Merging
// =============================================================================

// Merge deep-merges override into base and returns a new map. Neither input
// is mutated. Scalar conflicts resolve in favor of override; nested maps are
// merged recursively.
func Merge(base, override Attrs) Attrs {
	if base == nil && override == nil {
		return Attrs{}
	}

	out := make(Attrs, len(base)+len(override))
	for k, v := range base {
		out[k] = cloneValue(v)
	}
	for k, v := range override {
		if bm, ok := out[k].(Attrs); ok {
			if om, ok := toAttrs(v); ok {
				out[k] = Merge(bm, om)
				continue
			}
		}
		out[k] = cloneValue(v)
	}
	return out
}

// MergeBundle merges each section of override onto base.
func MergeBundle(base, override Bundle) Bundle {
	return Bundle{
		Parent: Merge(base.Parent, override.Parent),
		Data:   Merge(base.Data, override.Data),
		Labels: Merge(base.Labels, override.Labels),
	}
}

// Clone returns a deep copy of the attribute map.
func (a Attrs) Clone() Attrs {
	return Merge(a, nil)
}

// Without returns a copy of the attribute map with the given keys removed.
func (a Attrs) Without(keys ...string) Attrs {
	out := a.Clone()
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

func toAttrs(v any) (Attrs, bool) {
	switch m := v.(type) {
	case Attrs:
		return m, true
	case map[string]any:
		return Attrs(m), true
	default:
		return nil, false
	}
}

func cloneValue(v any) any {
	if m, ok := toAttrs(v); ok {
		return Merge(m, nil)
	}
	return v
}

// =============================================================================
// Typed accessors
// =============================================================================

// Float reads a numeric attribute. TOML and JSON decoding produce int64 and
// float64 respectively, so both are accepted.
func (a Attrs) Float(key string) (float64, bool) {
	switch v := a[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// String reads a string attribute.
func (a Attrs) String(key string) (string, bool) {
	s, ok := a[key].(string)
	return s, ok
}

// =============================================================================
// CSS emission
// =============================================================================

// CSS renders the attribute map as a deterministic "prop:value;..." string
// suitable for an SVG style attribute. Keys are sorted. Layout-only keys and
// nested maps are skipped; the renderer consumes those separately.
func (a Attrs) CSS() string {
	keys := make([]string, 0, len(a))
	for k := range a {
		if layoutKeys[k] || k == "name" {
			continue
		}
		if _, nested := toAttrs(a[k]); nested {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(k)
		b.WriteByte(':')
		b.WriteString(formatValue(a[k]))
	}
	return b.String()
}

func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return trimFloat(x)
	case float32:
		return trimFloat(float64(x))
	case int:
		return fmt.Sprintf("%d", x)
	case int64:
		return fmt.Sprintf("%d", x)
	case bool:
		return fmt.Sprintf("%t", x)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// trimFloat formats without trailing zeros so "14" stays "14", not "14.000000".
func trimFloat(f float64) string {
	s := fmt.Sprintf("%.4f", f)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
