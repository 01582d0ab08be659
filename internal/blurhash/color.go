package blurhash

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// srgbLinear[c] is the linear-light value of 8-bit sRGB channel c.
var srgbLinear [256]float64

func init() {
	for i := range srgbLinear {
		r, _, _ := colorful.Color{R: float64(i) / 255}.LinearRgb()
		srgbLinear[i] = r
	}
}

// SRGBToLinear applies the sRGB transfer function to an 8-bit channel and
// returns a value in [0,1].
func SRGBToLinear(c uint8) float64 {
	return srgbLinear[c]
}

// LinearToSRGB maps a linear-light value to the nearest 8-bit sRGB channel.
// Input outside [0,1] is clamped.
func LinearToSRGB(v float64) uint8 {
	r, _, _ := linearToSRGB3(v, 0, 0)
	return r
}

func linearToSRGB3(r, g, b float64) (uint8, uint8, uint8) {
	return colorful.LinearRgb(clamp01(r), clamp01(g), clamp01(b)).Clamped().RGB255()
}

// SignedPow returns sign(base) * |base|^exp.
func SignedPow(base, exp float64) float64 {
	return math.Copysign(math.Pow(math.Abs(base), exp), base)
}

// MaxAbs returns the largest absolute channel value of coeffs[from:to].
func MaxAbs(coeffs []Coefficient, from, to int) float64 {
	var m float64
	for _, c := range coeffs[from:to] {
		for _, v := range c {
			if a := math.Abs(v); a > m {
				m = a
			}
		}
	}
	return m
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
