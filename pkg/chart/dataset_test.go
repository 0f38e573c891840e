package chart

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/matzehuels/chartstack/pkg/chart/style"
	"github.com/matzehuels/chartstack/pkg/errors"
)

func TestConsolidateEmptyDataFails(t *testing.T) {
	tests := []struct {
		name string
		data [][]DataPoint
	}{
		{"nil", nil},
		{"no datasets", [][]DataPoint{}},
		{"empty datasets", [][]DataPoint{{}, {}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Consolidate(&Props{Data: tt.data})
			if err == nil {
				t.Fatal("expected error for empty data")
			}
			if !errors.Is(err, errors.ErrCodeEmptyData) {
				t.Errorf("error code = %v, want EMPTY_DATA", errors.GetCode(err))
			}
		})
	}
}

func TestConsolidateStackedRaggedFails(t *testing.T) {
	p := &Props{
		Stacked: true,
		Data: [][]DataPoint{
			{Pt(1, 2), Pt(2, 3)},
			{Pt(1, 1)},
		},
	}

	_, err := Consolidate(p)
	if err == nil {
		t.Fatal("expected error for ragged stacked datasets")
	}
	if !errors.Is(err, errors.ErrCodeMismatchedData) {
		t.Errorf("error code = %v, want MISMATCHED_DATA", errors.GetCode(err))
	}
}

func TestConsolidateGroupedRaggedAllowed(t *testing.T) {
	p := &Props{
		Data: [][]DataPoint{
			{Pt(1, 2), Pt(2, 3)},
			{Pt(1, 1)},
		},
	}

	c, err := Consolidate(p)
	if err != nil {
		t.Fatalf("Consolidate error = %v", err)
	}
	if len(c.Datasets) != 2 {
		t.Fatalf("datasets = %d, want 2", len(c.Datasets))
	}
}

func TestConsolidateSharedAttrs(t *testing.T) {
	p := &Props{
		Data:  [][]DataPoint{{Pt(1, 2)}},
		Attrs: AttrsSpec{Shared: style.Attrs{"name": "fruit", "fill": "tomato"}},
	}

	c, err := Consolidate(p)
	if err != nil {
		t.Fatalf("Consolidate error = %v", err)
	}

	ds := c.Datasets[0]
	if ds.Name != "fruit" {
		t.Errorf("name = %q, want fruit", ds.Name)
	}
	if ds.Attrs["fill"] != "tomato" {
		t.Errorf("fill = %v, want tomato", ds.Attrs["fill"])
	}
}

func TestConsolidatePositionalAttrsWin(t *testing.T) {
	p := &Props{
		Data: [][]DataPoint{{Pt(1, 2)}, {Pt(1, 3)}, {Pt(1, 4)}},
		Attrs: AttrsSpec{
			Shared: style.Attrs{"fill": "gray"},
			Series: []style.Attrs{{"fill": "red", "name": "first"}, nil},
		},
	}

	c, err := Consolidate(p)
	if err != nil {
		t.Fatalf("Consolidate error = %v", err)
	}

	if c.Datasets[0].Attrs["fill"] != "red" || c.Datasets[0].Name != "first" {
		t.Errorf("dataset 0 attrs = %v", c.Datasets[0].Attrs)
	}
	// nil positional entry falls back to the shared bundle.
	if c.Datasets[1].Attrs["fill"] != "gray" {
		t.Errorf("dataset 1 fill = %v, want gray", c.Datasets[1].Attrs["fill"])
	}
	// index beyond the positional list falls back too.
	if c.Datasets[2].Attrs["fill"] != "gray" {
		t.Errorf("dataset 2 fill = %v, want gray", c.Datasets[2].Attrs["fill"])
	}
}

func TestConsolidatePaletteTint(t *testing.T) {
	t.Run("multiple datasets tinted", func(t *testing.T) {
		p := &Props{
			Data:       [][]DataPoint{{Pt(1, 2)}, {Pt(1, 3)}},
			ColorScale: "qualitative",
		}
		c, err := Consolidate(p)
		if err != nil {
			t.Fatalf("Consolidate error = %v", err)
		}
		if c.Datasets[0].Attrs["fill"] != "#334D5C" {
			t.Errorf("dataset 0 fill = %v", c.Datasets[0].Attrs["fill"])
		}
		if c.Datasets[1].Attrs["fill"] != "#45B29D" {
			t.Errorf("dataset 1 fill = %v", c.Datasets[1].Attrs["fill"])
		}
	})

	t.Run("explicit fill not overwritten", func(t *testing.T) {
		p := &Props{
			Data:  [][]DataPoint{{Pt(1, 2)}, {Pt(1, 3)}},
			Attrs: AttrsSpec{Series: []style.Attrs{{"fill": "black"}}},
		}
		c, err := Consolidate(p)
		if err != nil {
			t.Fatalf("Consolidate error = %v", err)
		}
		if c.Datasets[0].Attrs["fill"] != "black" {
			t.Errorf("dataset 0 fill = %v, want black", c.Datasets[0].Attrs["fill"])
		}
	})

	t.Run("single unstyled dataset untinted", func(t *testing.T) {
		p := &Props{Data: [][]DataPoint{{Pt(1, 2)}}}
		c, err := Consolidate(p)
		if err != nil {
			t.Fatalf("Consolidate error = %v", err)
		}
		if _, ok := c.Datasets[0].Attrs["fill"]; ok {
			t.Errorf("single dataset should keep the default mark fill, got %v", c.Datasets[0].Attrs["fill"])
		}
	})
}

func TestStringEncoding(t *testing.T) {
	p := &Props{
		Data: [][]DataPoint{{Pt("a", 1), Pt("b", 2), Pt("a", 3)}},
	}

	c, err := Consolidate(p)
	if err != nil {
		t.Fatalf("Consolidate error = %v", err)
	}

	want := map[string]int{"a": 1, "b": 2}
	if !reflect.DeepEqual(c.Strings.X, want) {
		t.Errorf("string map = %v, want %v", c.Strings.X, want)
	}
	if c.Strings.Y != nil {
		t.Errorf("numeric axis should have no string map, got %v", c.Strings.Y)
	}

	pts := c.Datasets[0].Points
	if pts[0].X != 1 || pts[1].X != 2 || pts[2].X != 1 {
		t.Errorf("encoded xs = %v, %v, %v", pts[0].X, pts[1].X, pts[2].X)
	}
	if pts[0].XRaw.Text() != "a" {
		t.Errorf("raw value lost: %v", pts[0].XRaw)
	}
}

func TestStringEncodingAlphabeticalAcrossDatasets(t *testing.T) {
	p := &Props{
		Data: [][]DataPoint{
			{Pt("cherry", 1)},
			{Pt("apple", 2), Pt("banana", 3)},
		},
	}

	c, err := Consolidate(p)
	if err != nil {
		t.Fatalf("Consolidate error = %v", err)
	}

	want := map[string]int{"apple": 1, "banana": 2, "cherry": 3}
	if !reflect.DeepEqual(c.Strings.X, want) {
		t.Errorf("string map = %v, want %v", c.Strings.X, want)
	}
}

func TestStringEncodingDeterministic(t *testing.T) {
	p := &Props{
		Data: [][]DataPoint{{Pt("b", 1), Pt("a", 2), Pt("c", 3), Pt("a", 4)}},
	}

	first, err := Consolidate(p)
	if err != nil {
		t.Fatalf("Consolidate error = %v", err)
	}
	for range 10 {
		again, err := Consolidate(p)
		if err != nil {
			t.Fatalf("Consolidate error = %v", err)
		}
		if !reflect.DeepEqual(first.Strings, again.Strings) {
			t.Fatalf("string maps differ across runs: %v vs %v", first.Strings, again.Strings)
		}
	}
}

func TestDataPointDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    DataPoint
		wantErr bool
	}{
		{
			name:  "object",
			input: `{"x": 1, "y": 2}`,
			want:  Pt(1, 2),
		},
		{
			name:  "string x",
			input: `{"x": "a", "y": 2}`,
			want:  Pt("a", 2),
		},
		{
			name:  "pair",
			input: `[1, 2]`,
			want:  Pt(1, 2),
		},
		{
			name:  "with label and category",
			input: `{"x": 1, "y": 2, "label": "A", "category": 1}`,
			want:  Pt(1, 2).WithLabel("A").WithCategory(1),
		},
		{
			name:  "extra keys become style overrides",
			input: `{"x": 1, "y": 2, "fill": "red"}`,
			want:  Pt(1, 2).WithAttrs(style.Attrs{"fill": "red"}),
		},
		{
			name:    "missing y",
			input:   `{"x": 1}`,
			wantErr: true,
		},
		{
			name:    "triple",
			input:   `[1, 2, 3]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got DataPoint
			err := json.Unmarshal([]byte(tt.input), &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("decoded = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDataPointDecodeTOML(t *testing.T) {
	var pt DataPoint
	if err := pt.UnmarshalTOML(map[string]any{"x": int64(1), "y": int64(2), "opacity": 0.5}); err != nil {
		t.Fatalf("UnmarshalTOML error = %v", err)
	}
	if pt.X.Float() != 1 || pt.Y.Float() != 2 {
		t.Errorf("decoded = %+v", pt)
	}
	if pt.Attrs["opacity"] != 0.5 {
		t.Errorf("attrs = %v", pt.Attrs)
	}

	var pair DataPoint
	if err := pair.UnmarshalTOML([]any{int64(3), "high"}); err != nil {
		t.Fatalf("UnmarshalTOML pair error = %v", err)
	}
	if pair.X.Float() != 3 || pair.Y.Text() != "high" {
		t.Errorf("decoded pair = %+v", pair)
	}

	if err := pt.UnmarshalTOML("nope"); err == nil {
		t.Error("expected error for scalar input")
	}
}
