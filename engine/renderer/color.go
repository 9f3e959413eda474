package renderer

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/spaghettifunk/vignette/engine/core"
	"golang.org/x/image/colornames"
)

// Color is a linear RGBA colour with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

var (
	Black          = Color{0, 0, 0, 1}
	White          = Color{1, 1, 1, 1}
	CornflowerBlue = FromColor(colornames.Cornflowerblue)
	DefaultClear   = Color{0, 0, 0.2, 1}
)

func RGBA(r, g, b, a float32) Color {
	return Color{
		R: core.Clamp(r, 0, 1),
		G: core.Clamp(g, 0, 1),
		B: core.Clamp(b, 0, 1),
		A: core.Clamp(a, 0, 1),
	}
}

// FromColor converts any image/color value.
func FromColor(c color.Color) Color {
	r, g, b, a := c.RGBA()
	return Color{
		R: float32(r) / 0xffff,
		G: float32(g) / 0xffff,
		B: float32(b) / 0xffff,
		A: float32(a) / 0xffff,
	}
}

// ColorByName looks up an SVG 1.1 colour keyword such as "cornflowerblue".
func ColorByName(name string) (Color, error) {
	c, ok := colornames.Map[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Color{}, fmt.Errorf("unknown color name %q", name)
	}
	return FromColor(c), nil
}

// Lerp blends from c towards other by t in [0, 1].
func (c Color) Lerp(other Color, t float32) Color {
	t = core.Clamp(t, 0, 1)
	return Color{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

func (c Color) Slice() []float32 {
	return []float32{c.R, c.G, c.B, c.A}
}

func (c Color) String() string {
	return fmt.Sprintf("rgba(%.2f, %.2f, %.2f, %.2f)", c.R, c.G, c.B, c.A)
}
