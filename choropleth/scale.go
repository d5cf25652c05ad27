package choropleth

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/epimap/epimap-api/consts"
)

// LinearScale is a continuous color scale over evenly spaced color stops,
// interpolating linearly in RGB between neighbours. Values outside
// [Min, Max] are clamped.
type LinearScale struct {
	stops []colorful.Color
	min   float64
	max   float64
}

// NewLinearScale builds a scale from hex color stops, low to high.
func NewLinearScale(hexColors []string, min, max float64) (LinearScale, error) {
	if len(hexColors) < 2 {
		return LinearScale{}, fmt.Errorf("a color scale needs at least two stops, got %d", len(hexColors))
	}
	stops := make([]colorful.Color, len(hexColors))
	for i, hex := range hexColors {
		c, err := colorful.Hex(hex)
		if err != nil {
			return LinearScale{}, fmt.Errorf("invalid color stop %q: %w", hex, err)
		}
		stops[i] = c
	}
	return LinearScale{stops: stops, min: min, max: max}, nil
}

// NewPaletteScale builds a scale from a named palette in consts.Palettes.
func NewPaletteScale(name string, min, max float64) (LinearScale, error) {
	palette, ok := consts.Palettes[name]
	if !ok {
		return LinearScale{}, fmt.Errorf("unknown palette %q", name)
	}
	return NewLinearScale(palette, min, max)
}

// Min returns the lower bound of the scale.
func (s LinearScale) Min() float64 { return s.min }

// Max returns the upper bound of the scale.
func (s LinearScale) Max() float64 { return s.max }

// Color maps a value to a hex color string.
func (s LinearScale) Color(value float64) string {
	t := 0.0
	if s.max > s.min {
		t = (value - s.min) / (s.max - s.min)
	}
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	segments := float64(len(s.stops) - 1)
	position := t * segments
	i := int(position)
	if i >= len(s.stops)-1 {
		return s.stops[len(s.stops)-1].Hex()
	}
	frac := position - float64(i)
	return s.stops[i].BlendRgb(s.stops[i+1], frac).Hex()
}

// Stops samples n colors evenly across the scale, for rendering legends.
func (s LinearScale) Stops(n int) []string {
	if n < 2 {
		n = 2
	}
	colors := make([]string, n)
	for i := 0; i < n; i++ {
		v := s.min + (s.max-s.min)*float64(i)/float64(n-1)
		colors[i] = s.Color(v)
	}
	return colors
}
