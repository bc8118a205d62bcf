package glade

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseHex parses a "#rrggbb" or "#rgb" string into an opaque Color.
func ParseHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("glade: parse color %q: %w", s, err)
	}
	return fromColorful(c, 1), nil
}

// mustHex is for the built-in palettes, which are compile-time constants.
func mustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// BlendRGB interpolates a toward b in RGB space, alpha included.
func BlendRGB(a, b Color, t float64) Color {
	t = clamp01(t)
	c := toColorful(a).BlendRgb(toColorful(b), t)
	return fromColorful(c, lerp(a.A, b.A, t))
}

// Hex formats c as "#rrggbb", ignoring alpha.
func (c Color) Hex() string {
	return toColorful(c).Clamped().Hex()
}

func toColorful(c Color) colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

func fromColorful(c colorful.Color, a float64) Color {
	c = c.Clamped()
	return Color{R: c.R, G: c.G, B: c.B, A: a}
}
