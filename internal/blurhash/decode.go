package blurhash

import (
	"fmt"
	"image/color"
	"math"

	"github.com/AnyUserName/blurhash-cli/internal/base83"
)

const maxSizeFlag = (MaxComponents - 1) + (MaxComponents-1)*9

// Decode reconstructs a width × height pixel buffer from hash.
func Decode(hash string, width, height int) ([]Pixel, error) {
	return DecodePunch(hash, width, height, 1)
}

// DecodePunch is Decode with the AC magnitudes scaled by punch. Values
// above 1 exaggerate contrast; punch <= 0 is treated as 1.
func DecodePunch(hash string, width, height int, punch float64) ([]Pixel, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: output %dx%d", ErrDimensionMismatch, width, height)
	}
	if punch <= 0 {
		punch = 1
	}

	wb := getWorkBuf()
	defer putWorkBuf(wb)

	nx, ny, err := parseHash(hash, punch, wb)
	if err != nil {
		return nil, err
	}

	pix := make([]Pixel, width*height)
	reconstruct(pix, width, height, nx, ny, wb)
	return pix, nil
}

// Components returns the component grid declared by hash.
func Components(hash string) (componentX, componentY int, err error) {
	if len(hash) < 6 {
		return 0, 0, fmt.Errorf("%w: %d characters", ErrInvalidHashLength, len(hash))
	}
	flag, err := base83.DecodeSpan(hash, 0, 1)
	if err != nil {
		return 0, 0, err
	}
	if flag > maxSizeFlag {
		return 0, 0, fmt.Errorf("%w: size flag %d out of range", ErrInvalidHashLength, flag)
	}
	componentX = flag%9 + 1
	componentY = flag/9 + 1
	if want := HashLength(componentX, componentY); len(hash) != want {
		return 0, 0, fmt.Errorf("%w: %d characters, %dx%d grid needs %d",
			ErrInvalidHashLength, len(hash), componentX, componentY, want)
	}
	return componentX, componentY, nil
}

// Validate runs every decode check on hash without reconstructing pixels.
func Validate(hash string) error {
	wb := getWorkBuf()
	defer putWorkBuf(wb)
	_, _, err := parseHash(hash, 1, wb)
	return err
}

// AverageColor returns the DC term of hash as an opaque sRGB color.
func AverageColor(hash string) (color.NRGBA, error) {
	if _, _, err := Components(hash); err != nil {
		return color.NRGBA{}, err
	}
	v, err := base83.DecodeSpan(hash, 2, 4)
	if err != nil {
		return color.NRGBA{}, err
	}
	r, g, b := unpackDC(v)
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// parseHash validates hash and fills wb.coeffs with linear coefficients.
func parseHash(hash string, punch float64, wb *workBuf) (int, int, error) {
	nx, ny, err := Components(hash)
	if err != nil {
		return 0, 0, err
	}
	n := nx * ny

	quantisedMax, err := base83.DecodeSpan(hash, 1, 1)
	if err != nil {
		return 0, 0, err
	}
	maximumValue := float64(quantisedMax+1) / 166 * punch

	coeffs := growCoeffs(wb.coeffs, n)
	wb.coeffs = coeffs

	dc, err := base83.DecodeSpan(hash, 2, 4)
	if err != nil {
		return 0, 0, err
	}
	r, g, b := unpackDC(dc)
	coeffs[0] = Coefficient{srgbLinear[r], srgbLinear[g], srgbLinear[b]}

	for i := 1; i < n; i++ {
		v, err := base83.DecodeSpan(hash, 4+i*2, 2)
		if err != nil {
			return 0, 0, err
		}
		coeffs[i] = decodeAC(v, maximumValue)
	}
	return nx, ny, nil
}

// unpackDC splits a 24-bit color. Four base-83 digits can carry more than
// 24 bits; the red channel saturates instead of wrapping.
func unpackDC(v int) (uint8, uint8, uint8) {
	r := v >> 16
	if r > 255 {
		r = 255
	}
	return uint8(r), uint8(v >> 8), uint8(v)
}

func decodeAC(v int, maximumValue float64) Coefficient {
	unquant := func(q int) float64 {
		if q > 18 {
			q = 18
		}
		return SignedPow(float64(q-9)/9, 2) * maximumValue
	}
	return Coefficient{
		unquant(v / (19 * 19)),
		unquant((v / 19) % 19),
		unquant(v % 19),
	}
}

func reconstruct(pix []Pixel, w, h, nx, ny int, wb *workBuf) {
	coeffs := wb.coeffs[:nx*ny]

	cosX := growF64(wb.cosX, nx*w)
	for i := 0; i < nx; i++ {
		for x := 0; x < w; x++ {
			cosX[i*w+x] = math.Cos(math.Pi * float64(i) * (float64(x) + 0.5) / float64(w))
		}
	}
	wb.cosX = cosX

	cosY := growF64(wb.cosY, ny*h)
	for j := 0; j < ny; j++ {
		for y := 0; y < h; y++ {
			cosY[j*h+y] = math.Cos(math.Pi * float64(j) * (float64(y) + 0.5) / float64(h))
		}
	}
	wb.cosY = cosY

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var r, g, b float64
			for j := 0; j < ny; j++ {
				fy := cosY[j*h+y]
				for i := 0; i < nx; i++ {
					basis := cosX[i*w+x] * fy
					c := coeffs[j*nx+i]
					r += c[0] * basis
					g += c[1] * basis
					b += c[2] * basis
				}
			}
			pr, pg, pb := linearToSRGB3(r, g, b)
			pix[y*w+x] = Pixel{pr, pg, pb}
		}
	}
}
