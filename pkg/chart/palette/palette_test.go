package palette

import (
	"testing"

	"github.com/matzehuels/chartstack/pkg/errors"
)

func TestColors(t *testing.T) {
	colors, err := Colors("qualitative")
	if err != nil {
		t.Fatalf("Colors(qualitative) error = %v", err)
	}
	if len(colors) != 10 {
		t.Errorf("len = %d, want 10", len(colors))
	}
	if colors[0] != "#334D5C" {
		t.Errorf("first color = %s, want #334D5C", colors[0])
	}
}

func TestColorsUnknown(t *testing.T) {
	_, err := Colors("neon")
	if err == nil {
		t.Fatal("expected error for unknown scale")
	}
	if !errors.Is(err, errors.ErrCodeInvalidPalette) {
		t.Errorf("error code = %v, want INVALID_PALETTE", errors.GetCode(err))
	}
}

func TestColorsReturnsCopy(t *testing.T) {
	a, _ := Colors(DefaultScale)
	a[0] = "mutated"
	b, _ := Colors(DefaultScale)
	if b[0] == "mutated" {
		t.Error("Colors shares backing storage with the registry")
	}
}

func TestColorCycles(t *testing.T) {
	tests := []struct {
		name  string
		scale string
		i     int
		want  string
	}{
		{"first", "grayscale", 0, "#cccccc"},
		{"last", "grayscale", 3, "#252525"},
		{"wraps", "grayscale", 4, "#cccccc"},
		{"wraps twice", "grayscale", 9, "#969696"},
		{"negative clamps", "grayscale", -1, "#cccccc"},
		{"unknown falls back", "neon", 0, "#cccccc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Color(tt.scale, tt.i); got != tt.want {
				t.Errorf("Color(%q, %d) = %s, want %s", tt.scale, tt.i, got, tt.want)
			}
		})
	}
}

func TestValid(t *testing.T) {
	for _, name := range Names() {
		if !Valid(name) {
			t.Errorf("Valid(%q) = false for listed name", name)
		}
	}
	if Valid("neon") {
		t.Error("Valid(neon) = true, want false")
	}
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	if len(names) != 8 {
		t.Fatalf("len(Names()) = %d, want 8", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("Names() not sorted: %s >= %s", names[i-1], names[i])
		}
	}
}
