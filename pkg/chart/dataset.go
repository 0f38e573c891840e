package chart

import (
	"encoding/json"
	"sort"

	"github.com/matzehuels/chartstack/pkg/chart/palette"
	"github.com/matzehuels/chartstack/pkg/chart/style"
	"github.com/matzehuels/chartstack/pkg/errors"
)

// DataPoint is one raw input point. X and Y may be numeric or categorical
// strings; Category selects a band or label index; Attrs carry per-point
// style overrides.
type DataPoint struct {
	X        Value
	Y        Value
	Category *int
	Label    string
	Attrs    style.Attrs
}

// Pt builds a data point from scalar x/y values. It exists for concise
// literal construction; unsupported types degrade to Num(0).
func Pt(x, y any) DataPoint {
	return DataPoint{X: ValueOf(x), Y: ValueOf(y)}
}

// WithLabel returns a copy of the point carrying a label.
func (d DataPoint) WithLabel(label string) DataPoint {
	d.Label = label
	return d
}

// WithCategory returns a copy of the point carrying a category index.
func (d DataPoint) WithCategory(c int) DataPoint {
	d.Category = &c
	return d
}

// WithAttrs returns a copy of the point carrying style overrides.
func (d DataPoint) WithAttrs(attrs style.Attrs) DataPoint {
	d.Attrs = attrs
	return d
}

// reserved point keys; everything else in a decoded point map is treated as
// a style override.
var pointKeys = map[string]bool{
	"x":        true,
	"y":        true,
	"category": true,
	"label":    true,
	"attrs":    true,
}

// fromMap fills the point from a decoded document map. Unknown keys become
// style overrides, mirroring the loose point shape of chart documents.
func (d *DataPoint) fromMap(m map[string]any) error {
	x, okX := m["x"]
	y, okY := m["y"]
	if !okX || !okY {
		return errors.New(errors.ErrCodeInvalidDocument, "data point needs both x and y")
	}

	var err error
	if d.X, err = decodeValue(x); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDocument, err, "data point x")
	}
	if d.Y, err = decodeValue(y); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDocument, err, "data point y")
	}

	if raw, ok := m["category"]; ok {
		switch c := raw.(type) {
		case int64:
			idx := int(c)
			d.Category = &idx
		case float64:
			idx := int(c)
			d.Category = &idx
		default:
			return errors.New(errors.ErrCodeInvalidDocument, "category must be an integer, got %T", raw)
		}
	}
	if label, ok := m["label"].(string); ok {
		d.Label = label
	}

	if raw, ok := m["attrs"]; ok {
		mm, ok := raw.(map[string]any)
		if !ok {
			return errors.New(errors.ErrCodeInvalidDocument, "point attrs must be a table, got %T", raw)
		}
		d.Attrs = style.Merge(nil, style.Attrs(mm))
	}

	// Loose unknown keys are style shorthand and win over the attrs table.
	for k, v := range m {
		if pointKeys[k] {
			continue
		}
		if d.Attrs == nil {
			d.Attrs = style.Attrs{}
		}
		d.Attrs[k] = v
	}
	return nil
}

// UnmarshalTOML decodes a point from either an inline table or an [x, y]
// pair.
func (d *DataPoint) UnmarshalTOML(data any) error {
	switch m := data.(type) {
	case map[string]any:
		return d.fromMap(m)
	case []any:
		if len(m) != 2 {
			return errors.New(errors.ErrCodeInvalidDocument, "data point pair needs exactly 2 elements, got %d", len(m))
		}
		return d.fromMap(map[string]any{"x": m[0], "y": m[1]})
	default:
		return errors.New(errors.ErrCodeInvalidDocument, "data point must be a table or pair, got %T", data)
	}
}

// UnmarshalJSON decodes a point from an object or an [x, y] pair.
func (d *DataPoint) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err == nil {
		return d.fromMap(m)
	}
	var pair []any
	if err := json.Unmarshal(data, &pair); err == nil {
		if len(pair) != 2 {
			return errors.New(errors.ErrCodeInvalidDocument, "data point pair needs exactly 2 elements, got %d", len(pair))
		}
		return d.fromMap(map[string]any{"x": pair[0], "y": pair[1]})
	}
	return errors.New(errors.ErrCodeInvalidDocument, "data point must be an object or pair")
}

// MarshalJSON emits the structured point form.
func (d DataPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		X        Value       `json:"x"`
		Y        Value       `json:"y"`
		Category *int        `json:"category,omitempty"`
		Label    string      `json:"label,omitempty"`
		Attrs    style.Attrs `json:"attrs,omitempty"`
	}{d.X, d.Y, d.Category, d.Label, d.Attrs})
}

// =============================================================================
// Consolidated form
// =============================================================================

// Datum is a consolidated point: axis values encoded to numbers, with the
// raw values retained for display.
type Datum struct {
	X        float64     `json:"x"`
	Y        float64     `json:"y"`
	XRaw     Value       `json:"x_raw"`
	YRaw     Value       `json:"y_raw"`
	Category *int        `json:"category,omitempty"`
	Label    string      `json:"label,omitempty"`
	Attrs    style.Attrs `json:"attrs,omitempty"`
}

// Dataset is an ordered sequence of consolidated points sharing one
// attribute bundle and an optional name.
type Dataset struct {
	Name   string      `json:"name,omitempty"`
	Attrs  style.Attrs `json:"attrs,omitempty"`
	Points []Datum     `json:"points"`
}

// StringMaps hold the per-axis categorical encodings: raw string to 1-based
// position in the alphabetically sorted set of unique strings.
type StringMaps struct {
	X map[string]int `json:"x,omitempty"`
	Y map[string]int `json:"y,omitempty"`
}

// Consolidated is the normalized dataset collection one layout pass
// computes on.
type Consolidated struct {
	Datasets []Dataset
	Strings  StringMaps
}

// Consolidate normalizes raw input into ordered named datasets and builds
// the string encodings. It fails predictably on empty input, and on ragged
// dataset lengths when stacking is requested.
func Consolidate(p *Props) (*Consolidated, error) {
	total := 0
	for _, ds := range p.Data {
		total += len(ds)
	}
	if total == 0 {
		return nil, errors.New(errors.ErrCodeEmptyData, "no data points supplied")
	}

	if p.Stacked && len(p.Data) > 1 {
		want := len(p.Data[0])
		for i, ds := range p.Data[1:] {
			if len(ds) != want {
				return nil, errors.New(errors.ErrCodeMismatchedData,
					"stacked datasets must be the same length: dataset 0 has %d points, dataset %d has %d",
					want, i+1, len(ds))
			}
		}
	}

	strings := StringMaps{
		X: buildStringMap(p.Data, func(pt DataPoint) Value { return pt.X }),
		Y: buildStringMap(p.Data, func(pt DataPoint) Value { return pt.Y }),
	}

	out := &Consolidated{
		Datasets: make([]Dataset, len(p.Data)),
		Strings:  strings,
	}

	// Datasets are tinted from the palette when there is more than one, or
	// when a color scale was chosen explicitly. A lone unstyled dataset
	// keeps the default mark fill.
	tint := len(p.Data) > 1 || p.ColorScale != ""
	for i, raw := range p.Data {
		attrs := p.Attrs.forDataset(i).Clone()
		if _, ok := attrs["fill"]; !ok && tint {
			attrs["fill"] = palette.Color(p.ColorScale, i)
		}
		name, _ := attrs.String("name")

		points := make([]Datum, len(raw))
		for j, pt := range raw {
			points[j] = Datum{
				X:        encode(pt.X, strings.X),
				Y:        encode(pt.Y, strings.Y),
				XRaw:     pt.X,
				YRaw:     pt.Y,
				Category: pt.Category,
				Label:    pt.Label,
				Attrs:    pt.Attrs,
			}
		}

		out.Datasets[i] = Dataset{Name: name, Attrs: attrs, Points: points}
	}

	return out, nil
}

// buildStringMap flattens one axis across all datasets, keeps the
// categorical strings, dedupes and sorts them, and assigns 1-based codes.
// Returns nil when the axis is fully numeric.
func buildStringMap(data [][]DataPoint, axis func(DataPoint) Value) map[string]int {
	seen := map[string]bool{}
	for _, ds := range data {
		for _, pt := range ds {
			if v := axis(pt); v.IsString() {
				seen[v.Text()] = true
			}
		}
	}
	if len(seen) == 0 {
		return nil
	}

	unique := make([]string, 0, len(seen))
	for s := range seen {
		unique = append(unique, s)
	}
	sort.Strings(unique)

	codes := make(map[string]int, len(unique))
	for i, s := range unique {
		codes[s] = i + 1
	}
	return codes
}

// encode resolves a value to its numeric form using the axis string map.
func encode(v Value, codes map[string]int) float64 {
	if v.IsString() {
		return float64(codes[v.Text()])
	}
	return v.Float()
}
