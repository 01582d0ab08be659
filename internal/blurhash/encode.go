package blurhash

import (
	"fmt"
	"math"

	"github.com/AnyUserName/blurhash-cli/internal/base83"
)

// Encode computes the blurhash of a row-major pixel buffer.
//
// componentX and componentY must be in [1,9] and width*height must equal
// len(pix). No downscaling is applied; see EncodeImage for that.
func Encode(pix []Pixel, width, height, componentX, componentY int) (string, error) {
	if err := CheckComponents(componentX, componentY); err != nil {
		return "", err
	}
	if width <= 0 || height <= 0 || width*height != len(pix) {
		return "", fmt.Errorf("%w: %dx%d for %d pixels", ErrDimensionMismatch, width, height, len(pix))
	}

	wb := getWorkBuf()
	defer putWorkBuf(wb)

	coeffs := transform(pix, width, height, componentX, componentY, wb)
	return assembleHash(coeffs, componentX, componentY), nil
}

// transform samples the image at componentX × componentY cosine frequencies.
// Coefficient (i,j) lands at index j*componentX + i.
func transform(pix []Pixel, w, h, nx, ny int, wb *workBuf) []Coefficient {
	lin := growF64(wb.lin, len(pix)*3)
	for k, p := range pix {
		lin[k*3] = srgbLinear[p.R]
		lin[k*3+1] = srgbLinear[p.G]
		lin[k*3+2] = srgbLinear[p.B]
	}
	wb.lin = lin

	cosX := growF64(wb.cosX, nx*w)
	for i := 0; i < nx; i++ {
		for x := 0; x < w; x++ {
			cosX[i*w+x] = math.Cos(math.Pi * float64(i) * float64(x) / float64(w))
		}
	}
	wb.cosX = cosX

	cosY := growF64(wb.cosY, ny*h)
	for j := 0; j < ny; j++ {
		for y := 0; y < h; y++ {
			cosY[j*h+y] = math.Cos(math.Pi * float64(j) * float64(y) / float64(h))
		}
	}
	wb.cosY = cosY

	coeffs := growCoeffs(wb.coeffs, nx*ny)
	wb.coeffs = coeffs

	scale := 1 / float64(w*h)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			norm := 2.0
			if i == 0 && j == 0 {
				norm = 1
			}
			var r, g, b float64
			for y := 0; y < h; y++ {
				fy := cosY[j*h+y]
				row := lin[y*w*3 : (y+1)*w*3]
				for x := 0; x < w; x++ {
					basis := norm * cosX[i*w+x] * fy
					r += basis * row[x*3]
					g += basis * row[x*3+1]
					b += basis * row[x*3+2]
				}
			}
			coeffs[j*nx+i] = Coefficient{r * scale, g * scale, b * scale}
		}
	}
	return coeffs
}

func assembleHash(coeffs []Coefficient, nx, ny int) string {
	n := nx * ny
	buf := make([]byte, 0, HashLength(nx, ny))

	buf = base83.AppendEncode(buf, (nx-1)+(ny-1)*9, 1)

	maximumValue := 1.0
	if n > 1 {
		actual := MaxAbs(coeffs, 1, n)
		quantised := int(math.Floor(math.Max(0, math.Min(82, math.Floor(actual*166-0.5)))))
		maximumValue = float64(quantised+1) / 166
		buf = base83.AppendEncode(buf, quantised, 1)
	} else {
		buf = base83.AppendEncode(buf, 0, 1)
	}

	buf = base83.AppendEncode(buf, encodeDC(coeffs[0]), 4)
	for _, c := range coeffs[1:n] {
		buf = base83.AppendEncode(buf, encodeAC(c, maximumValue), 2)
	}
	return string(buf)
}

func encodeDC(c Coefficient) int {
	r, g, b := linearToSRGB3(c[0], c[1], c[2])
	return int(r)<<16 | int(g)<<8 | int(b)
}

func encodeAC(c Coefficient, maximumValue float64) int {
	quant := func(v float64) int {
		return int(math.Floor(math.Max(0, math.Min(18, math.Floor(SignedPow(v/maximumValue, 0.5)*9+9.5)))))
	}
	return quant(c[0])*19*19 + quant(c[1])*19 + quant(c[2])
}
