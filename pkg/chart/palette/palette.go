// Package palette provides the built-in color scales used to tint datasets.
//
// A color scale is an ordered list of colors; dataset i receives color
// i mod len(scale). Scales are selected by name through chart configuration.
package palette

import (
	"sort"

	"github.com/matzehuels/chartstack/pkg/errors"
)

// DefaultScale is used when no color scale is configured.
const DefaultScale = "grayscale"

// scales maps scale name to its ordered color list.
var scales = map[string][]string{
	"grayscale": {
		"#cccccc", "#969696", "#636363", "#252525",
	},
	"qualitative": {
		"#334D5C", "#45B29D", "#EFC94C", "#E27A3F", "#DF5A49",
		"#4F7DA1", "#55DBC1", "#EFDA97", "#E2A37F", "#DF948A",
	},
	"heatmap": {
		"#428517", "#77D200", "#D6D305", "#EC8E19", "#C92B05",
	},
	"warm": {
		"#940031", "#C43343", "#DC5429", "#FF821D", "#FFAF55",
	},
	"cool": {
		"#2746B9", "#0B69D4", "#2794DB", "#31BB76", "#60E83B",
	},
	"red": {
		"#FCAE91", "#FB6A4A", "#DE2D26", "#A50F15", "#750B0E",
	},
	"green": {
		"#354722", "#466631", "#649146", "#8AB25C", "#A9C97E",
	},
	"blue": {
		"#002C61", "#004B8F", "#006BC9", "#3795E5", "#65B4F4",
	},
}

// Colors returns the color list for the named scale.
func Colors(name string) ([]string, error) {
	colors, ok := scales[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidPalette, "unknown color scale: %q", name)
	}
	out := make([]string, len(colors))
	copy(out, colors)
	return out, nil
}

// Color returns the color for dataset index i in the named scale, cycling
// when i exceeds the scale length. Unknown names fall back to the default
// scale so geometry computation never fails on palette selection.
func Color(name string, i int) string {
	colors, ok := scales[name]
	if !ok {
		colors = scales[DefaultScale]
	}
	if i < 0 {
		i = 0
	}
	return colors[i%len(colors)]
}

// Valid reports whether name is a known color scale.
func Valid(name string) bool {
	_, ok := scales[name]
	return ok
}

// Names returns all known scale names in sorted order.
func Names() []string {
	names := make([]string, 0, len(scales))
	for name := range scales {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
