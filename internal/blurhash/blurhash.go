// Package blurhash implements the BlurHash placeholder codec: a raster image
// is reduced to a handful of cosine-basis coefficients, quantized, and
// written as a short base-83 string that decodes back into a blurred
// approximation of the original.
//
// Hash layout (characters):
//
//	[0]      size flag      (componentX-1) + (componentY-1)*9
//	[1]      max AC         quantized to 0..82, 0 when there is no AC term
//	[2:6]    DC             sRGB 24-bit R<<16 | G<<8 | B
//	[6:]     AC             2 chars each, base-19 per channel, n-1 terms
//
// Performance design:
//   - sRGB→linear via a 256-entry table built once at init
//   - pre-computed cosine tables per axis, pure multiply-add transform
//   - sync.Pool scratch buffers, so steady-state encode allocates only the hash
//   - no shared mutable state: Encode and Decode are safe for concurrent use
package blurhash

import (
	"fmt"
	"sync"
)

const (
	MinComponents = 1
	MaxComponents = 9
)

// Pixel is one opaque 8-bit sRGB pixel.
type Pixel struct {
	R, G, B uint8
}

// Coefficient is an RGB triple in linear light. Index 0 is the DC term.
type Coefficient [3]float64

// HashLength returns the number of characters of a hash for the grid.
func HashLength(componentX, componentY int) int {
	return 4 + 2*componentX*componentY
}

// CheckComponents returns ErrInvalidComponentCount unless both axes are in
// [MinComponents, MaxComponents].
func CheckComponents(componentX, componentY int) error {
	if componentX < MinComponents || componentX > MaxComponents ||
		componentY < MinComponents || componentY > MaxComponents {
		return fmt.Errorf("%w: %dx%d, want %d..%d per axis",
			ErrInvalidComponentCount, componentX, componentY, MinComponents, MaxComponents)
	}
	return nil
}

// ─── scratch buffers ─────────────────────────────────────────

type workBuf struct {
	lin    []float64 // linear RGB, 3 per pixel
	cosX   []float64 // componentX × width
	cosY   []float64 // componentY × height
	coeffs []Coefficient
}

var wbPool = sync.Pool{New: func() any { return new(workBuf) }}

func getWorkBuf() *workBuf { return wbPool.Get().(*workBuf) }

func putWorkBuf(wb *workBuf) { wbPool.Put(wb) }

func growF64(s []float64, n int) []float64 {
	if cap(s) < n {
		return make([]float64, n)
	}
	return s[:n]
}

func growCoeffs(s []Coefficient, n int) []Coefficient {
	if cap(s) < n {
		return make([]Coefficient, n)
	}
	return s[:n]
}
