package choropleth

import (
	"testing"

	"github.com/epimap/epimap-api/consts"
)

func TestLinearScaleEndpoints(t *testing.T) {
	scale, err := NewLinearScale([]string{"#000000", "#ffffff"}, 0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if c := scale.Color(0); c != "#000000" {
		t.Fatalf("color at min = %s", c)
	}
	if c := scale.Color(10); c != "#ffffff" {
		t.Fatalf("color at max = %s", c)
	}
	// clamped outside the bounds
	if c := scale.Color(-5); c != "#000000" {
		t.Fatalf("color below min = %s", c)
	}
	if c := scale.Color(99); c != "#ffffff" {
		t.Fatalf("color above max = %s", c)
	}
}

func TestLinearScaleMidpoint(t *testing.T) {
	scale, err := NewLinearScale([]string{"#000000", "#ffffff"}, 0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if c := scale.Color(5); c != "#808080" && c != "#7f7f7f" {
		t.Fatalf("midpoint color = %s", c)
	}
}

func TestLinearScaleDegenerateRange(t *testing.T) {
	scale, err := NewLinearScale([]string{"#000000", "#ffffff"}, 3, 3)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if c := scale.Color(3); c != "#000000" {
		t.Fatalf("degenerate scale should pin to the first stop, got %s", c)
	}
}

func TestNewLinearScaleErrors(t *testing.T) {
	if _, err := NewLinearScale([]string{"#fee0d2"}, 0, 1); err == nil {
		t.Fatal("expected an error for a single stop")
	}
	if _, err := NewLinearScale([]string{"#fee0d2", "not-a-color"}, 0, 1); err == nil {
		t.Fatal("expected an error for an invalid stop")
	}
}

func TestNewPaletteScale(t *testing.T) {
	scale, err := NewPaletteScale(consts.DefaultPalette, 0, 1)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if c := scale.Color(0); c != consts.Palettes[consts.DefaultPalette][0] {
		t.Fatalf("palette scale start = %s", c)
	}

	if _, err := NewPaletteScale("NoSuchPalette_03", 0, 1); err == nil {
		t.Fatal("expected an error for an unknown palette")
	}
}

func TestStopsSampling(t *testing.T) {
	scale, err := NewLinearScale([]string{"#000000", "#ffffff"}, 0, 1)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	stops := scale.Stops(3)
	if len(stops) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(stops))
	}
	if stops[0] != "#000000" || stops[2] != "#ffffff" {
		t.Fatalf("sample endpoints wrong: %v", stops)
	}
}
