package glade

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette is the four-color family a theme derives from an entity's style
// seed. The same seed always yields the same palette.
type Palette struct {
	Base   Color
	Roof   Color
	Shadow Color
	Accent Color
}

// EntityPalette maps a style seed to a palette. The seed picks the hue;
// saturation and value are fixed per role so mixed seeds still read as one
// coherent scene.
func EntityPalette(seed uint32) Palette {
	hue := float64(seed % 360)
	return Palette{
		Base:   fromColorful(colorful.Hsv(hue, 0.42, 0.80)),
		Roof:   fromColorful(colorful.Hsv(math.Mod(hue+28, 360), 0.52, 0.62)),
		Shadow: fromColorful(colorful.Hsv(hue, 0.50, 0.34)),
		Accent: fromColorful(colorful.Hsv(math.Mod(hue+180, 360), 0.65, 0.92)),
	}
}

func fromColorful(c colorful.Color) Color {
	return Color{R: c.R, G: c.G, B: c.B, A: 1}
}

// shade scales the color channels, darkening below 1 and brightening above.
func shade(c Color, f float64) Color {
	return Color{
		R: clamp01(c.R * f),
		G: clamp01(c.G * f),
		B: clamp01(c.B * f),
		A: c.A,
	}
}

func withAlpha(c Color, a float64) Color {
	c.A = clamp01(a)
	return c
}

// blendLab interpolates two colors through Lab space, which keeps midpoints
// from turning muddy the way straight RGB blending does.
func blendLab(a, b Color, t float64) Color {
	ca := colorful.Color{R: a.R, G: a.G, B: a.B}
	cb := colorful.Color{R: b.R, G: b.G, B: b.B}
	m := ca.BlendLab(cb, t).Clamped()
	return Color{R: m.R, G: m.G, B: m.B, A: lerp(a.A, b.A, t)}
}
