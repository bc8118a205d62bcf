package glade

import "testing"

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#ff8000")
	if err != nil {
		t.Fatal(err)
	}
	if c.R != 1 || !approxEqual(c.G, 128.0/255, 1e-9) || c.B != 0 || c.A != 1 {
		t.Errorf("ParseHex = %+v", c)
	}
	if got := c.Hex(); got != "#ff8000" {
		t.Errorf("Hex = %q, want #ff8000", got)
	}
	if _, err := ParseHex("green"); err == nil {
		t.Error("ParseHex(green) succeeded")
	}
}

func TestBlendRGB(t *testing.T) {
	a := Color{R: 0, G: 0, B: 0, A: 0}
	b := Color{R: 1, G: 0.5, B: 0, A: 1}
	mid := BlendRGB(a, b, 0.5)
	if !approxEqual(mid.R, 0.5, 1e-9) || !approxEqual(mid.G, 0.25, 1e-9) || !approxEqual(mid.A, 0.5, 1e-9) {
		t.Errorf("BlendRGB(0.5) = %+v", mid)
	}
	if got := BlendRGB(a, b, 2); got != b {
		t.Errorf("BlendRGB(2) = %+v, want %+v", got, b)
	}
}
