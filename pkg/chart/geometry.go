package chart

import (
	"github.com/matzehuels/chartstack/pkg/chart/style"
)

// BarMark is the renderable geometry of one data point. Coordinates are in
// scaled pixel space: Independent locates the bar on its axis, Dependent0
// and Dependent1 bound its extent on the other. Which pixel axis each maps
// onto is decided by the geometry's Horizontal flag.
type BarMark struct {
	Dataset     int         `json:"dataset"`
	Index       int         `json:"index"`
	Name        string      `json:"name,omitempty"`
	Independent float64     `json:"independent"`
	Dependent0  float64     `json:"dependent0"`
	Dependent1  float64     `json:"dependent1"`
	Style       style.Attrs `json:"style,omitempty"`
	Datum       Datum       `json:"datum"`
}

// LabelMark is the renderable geometry of one label.
type LabelMark struct {
	Dataset     int         `json:"dataset"`
	Index       int         `json:"index"`
	Text        string      `json:"text"`
	Independent float64     `json:"independent"`
	Dependent   float64     `json:"dependent"`
	Style       style.Attrs `json:"style,omitempty"`
}

// Geometry is the immutable output of one layout pass: everything a
// renderer needs to draw the chart, with no residual computation.
type Geometry struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Horizontal bool    `json:"horizontal,omitempty"`
	Standalone bool    `json:"standalone"`
	BarWidth   float64 `json:"bar_width"`

	Style style.Bundle `json:"style"`

	XDomain Span `json:"x_domain"`
	YDomain Span `json:"y_domain"`
	XRange  Span `json:"x_range"`
	YRange  Span `json:"y_range"`

	Strings StringMaps `json:"strings,omitempty"`

	Bars   []BarMark   `json:"bars"`
	Labels []LabelMark `json:"labels,omitempty"`
}

// DatasetCount returns the number of datasets that produced bars.
func (g *Geometry) DatasetCount() int {
	n := 0
	for _, b := range g.Bars {
		if b.Dataset+1 > n {
			n = b.Dataset + 1
		}
	}
	return n
}
