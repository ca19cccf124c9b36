package figure

import (
	"fmt"
	"image/color"
	"sort"
	"strings"
)

// Marker is a matplotlib-style marker code.
type Marker string

const (
	MarkerTriangle Marker = "^"
	MarkerCircle   Marker = "o"
	MarkerCross    Marker = "x"
	MarkerPoint    Marker = "."
	MarkerSquare   Marker = "s"
	MarkerPlus     Marker = "+"
)

var markers = map[Marker]bool{
	MarkerTriangle: true, MarkerCircle: true, MarkerCross: true,
	MarkerPoint: true, MarkerSquare: true, MarkerPlus: true,
}

// Valid reports whether m is a supported marker.
func (m Marker) Valid() bool { return markers[m] }

// palette maps colour names to RGBA; values follow the CSS names matplotlib uses.
var palette = map[string]color.RGBA{
	"blue":    {R: 0, G: 0, B: 255, A: 255},
	"green":   {R: 0, G: 128, B: 0, A: 255},
	"cyan":    {R: 0, G: 255, B: 255, A: 255},
	"red":     {R: 255, G: 0, B: 0, A: 255},
	"orange":  {R: 255, G: 165, B: 0, A: 255},
	"magenta": {R: 255, G: 0, B: 255, A: 255},
	"black":   {R: 0, G: 0, B: 0, A: 255},
	"gray":    {R: 128, G: 128, B: 128, A: 255},
	"purple":  {R: 128, G: 0, B: 128, A: 255},
	"brown":   {R: 165, G: 42, B: 42, A: 255},
}

// ColorNames lists the known colour names, sorted.
func ColorNames() []string {
	out := make([]string, 0, len(palette))
	for k := range palette {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// LookupColor resolves a colour name.
func LookupColor(name string) (color.RGBA, error) {
	c, ok := palette[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return color.RGBA{}, fmt.Errorf("unknown color %q (known: %s)", name, strings.Join(ColorNames(), ", "))
	}
	return c, nil
}

// Style is how one series is drawn.
type Style struct {
	Marker Marker
	Color  string
}

// RGBA resolves the style colour.
func (s Style) RGBA() (color.RGBA, error) { return LookupColor(s.Color) }

// Validate checks marker and colour.
func (s Style) Validate() error {
	if !s.Marker.Valid() {
		return fmt.Errorf("unknown marker %q", s.Marker)
	}
	_, err := s.RGBA()
	return err
}

// defaultStyles is the overlay order used by the time-averaged comparisons.
var defaultStyles = []Style{
	{Marker: MarkerTriangle, Color: "blue"},
	{Marker: MarkerCircle, Color: "green"},
	{Marker: MarkerCross, Color: "cyan"},
	{Marker: MarkerPoint, Color: "red"},
	{Marker: MarkerSquare, Color: "orange"},
	{Marker: MarkerPlus, Color: "magenta"},
}

// DefaultStyle returns the style for the i-th layer when none is configured.
func DefaultStyle(i int) Style { return defaultStyles[i%len(defaultStyles)] }
