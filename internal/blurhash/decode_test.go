package blurhash

import (
	"errors"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_InvalidHashLength(t *testing.T) {
	for _, h := range []string{"", "00Eyb", "L6Eyb[", "00Eyb[fQ", "~0Eyb[fQ"} {
		_, err := Decode(h, 4, 4)
		assert.True(t, errors.Is(err, ErrInvalidHashLength), "hash %q: %v", h, err)
	}
}

func TestDecode_InvalidCharacter(t *testing.T) {
	for _, h := range []string{"00Eyb!", "!0Eyb[", "0\"Eyb[", "L6Eyb[~qfQ~q~qt7fQt7fQfQfQf "} {
		_, err := Decode(h, 4, 4)
		assert.True(t, errors.Is(err, ErrInvalidCharacter), "hash %q: %v", h, err)
		assert.Error(t, Validate(h))
	}
}

func TestDecode_InvalidOutputSize(t *testing.T) {
	_, err := Decode("00Eyb[", 0, 4)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
}

func TestDecode_SingleComponentIsFlat(t *testing.T) {
	pix := []Pixel{{255, 0, 0}, {0, 255, 0}, {0, 0, 255}, {255, 255, 255}}
	hash, err := Encode(pix, 2, 2, 1, 1)
	require.NoError(t, err)

	out, err := Decode(hash, 2, 2)
	require.NoError(t, err)
	require.Len(t, out, 4)

	avg, err := AverageColor(hash)
	require.NoError(t, err)
	want := Pixel{avg.R, avg.G, avg.B}
	for i, p := range out {
		assert.Equal(t, want, p, "pixel %d", i)
	}
	// Mean linear value per channel is 0.5.
	assert.Equal(t, LinearToSRGB(0.5), want.R)
	assert.Equal(t, want.R, want.G)
	assert.Equal(t, want.R, want.B)
}

func TestDecode_UniformGray(t *testing.T) {
	hash, err := Encode(solidPixels(10, 10, Pixel{128, 128, 128}), 10, 10, 4, 3)
	require.NoError(t, err)

	avg, err := AverageColor(hash)
	require.NoError(t, err)
	assert.InDelta(t, 128, int(avg.R), 1)
	assert.InDelta(t, 128, int(avg.G), 1)
	assert.InDelta(t, 128, int(avg.B), 1)

	// AC terms integrate to zero over the half-pixel basis, so the mean
	// decoded light equals the DC light.
	const w, h = 32, 32
	out, err := Decode(hash, w, h)
	require.NoError(t, err)
	var sum float64
	for _, p := range out {
		assert.Equal(t, p.R, p.G)
		assert.Equal(t, p.R, p.B)
		sum += SRGBToLinear(p.R)
	}
	assert.InDelta(t, SRGBToLinear(128), sum/float64(w*h), 0.005)
}

func TestRoundTrip_DCStable(t *testing.T) {
	const w, h = 32, 32
	src := gradientNRGBA(w, h)
	first, err := EncodeImageExact(src, 4, 3)
	require.NoError(t, err)

	decoded, err := DecodeImage(first, w, h, 1)
	require.NoError(t, err)
	second, err := EncodeImageExact(decoded, 4, 3)
	require.NoError(t, err)

	a, err := AverageColor(first)
	require.NoError(t, err)
	b, err := AverageColor(second)
	require.NoError(t, err)
	assert.InDelta(t, int(a.R), int(b.R), 2)
	assert.InDelta(t, int(a.G), int(b.G), 2)
	assert.InDelta(t, int(a.B), int(b.B), 2)
}

func TestDecodeImage_Opaque(t *testing.T) {
	img, err := DecodeImage("LEHV6nWB2yk8pyo0adR*.7kCMdnj", 8, 6, 1)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
	assert.Equal(t, 6, img.Bounds().Dy())
	for i := 3; i < len(img.Pix); i += 4 {
		require.Equal(t, uint8(255), img.Pix[i])
	}
}

func TestDecodePunch(t *testing.T) {
	hash, err := EncodeImageExact(gradientNRGBA(40, 40), 4, 4)
	require.NoError(t, err)

	base, err := Decode(hash, 16, 16)
	require.NoError(t, err)
	same, err := DecodePunch(hash, 16, 16, 0)
	require.NoError(t, err)
	assert.Equal(t, base, same, "punch <= 0 behaves as 1")

	punched, err := DecodePunch(hash, 16, 16, 2)
	require.NoError(t, err)
	assert.NotEqual(t, base, punched)
}

func TestAverageColor(t *testing.T) {
	c, err := AverageColor("00Eyb[")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 128, G: 128, B: 128, A: 255}, c)

	_, err = AverageColor("00Ey")
	assert.True(t, errors.Is(err, ErrInvalidHashLength))
}

func TestDecode_OverlongDCSaturates(t *testing.T) {
	// "~~~~" is 83^4-1, beyond 24 bits.
	pix, err := Decode("00~~~~", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), pix[0].R)
}
