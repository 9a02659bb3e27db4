package components

import (
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HSL is a colour expression whose opacity is supplied at draw time.
// H is in degrees and may lie outside [0, 360); S and L are in [0, 1].
type HSL struct {
	H, S, L float64
}

// RGBA converts the colour to 8-bit RGBA with the given alpha in [0, 1].
func (c HSL) RGBA(alpha float64) color.RGBA {
	h := math.Mod(c.H, 360)
	if h < 0 {
		h += 360
	}
	r, g, b := colorful.Hsl(h, clamp01(c.S), clamp01(c.L)).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: uint8(math.Round(clamp01(alpha) * 255))}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
