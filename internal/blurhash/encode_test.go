package blurhash

import (
	"errors"
	"image"
	"image/color"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_HashLengthAllGrids(t *testing.T) {
	img := gradientNRGBA(12, 10)
	pix := Pixels(img)
	for nx := 1; nx <= 9; nx++ {
		for ny := 1; ny <= 9; ny++ {
			hash, err := Encode(pix, 12, 10, nx, ny)
			require.NoError(t, err)
			require.Len(t, hash, 4+2*(nx*ny-1)+2, "grid %dx%d", nx, ny)
			assert.Equal(t, HashLength(nx, ny), len(hash))

			gx, gy, err := Components(hash)
			require.NoError(t, err)
			assert.Equal(t, nx, gx)
			assert.Equal(t, ny, gy)
			assert.NoError(t, Validate(hash))
		}
	}
}

func TestEncode_SingleComponent(t *testing.T) {
	hash, err := EncodeImageExact(gradientNRGBA(20, 20), 1, 1)
	require.NoError(t, err)
	require.Len(t, hash, 6)
	assert.Equal(t, byte('0'), hash[0])
	assert.Equal(t, byte('0'), hash[1], "max AC digit must be 0 without AC terms")
}

func TestEncode_InvalidComponentCount(t *testing.T) {
	pix := solidPixels(2, 2, Pixel{1, 2, 3})
	for _, c := range [][2]int{{0, 1}, {1, 0}, {10, 1}, {1, 10}, {-1, 4}} {
		_, err := Encode(pix, 2, 2, c[0], c[1])
		assert.True(t, errors.Is(err, ErrInvalidComponentCount), "grid %v", c)
	}
	_, err := EncodeImage(gradientNRGBA(8, 8), 0, 3)
	assert.True(t, errors.Is(err, ErrInvalidComponentCount))
}

func TestEncode_DimensionMismatch(t *testing.T) {
	pix := solidPixels(3, 3, Pixel{1, 2, 3})
	_, err := Encode(pix, 3, 2, 4, 3)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))

	_, err = Encode(nil, 0, 0, 1, 1)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))

	_, err = EncodeImageExact(image.NewNRGBA(image.Rect(0, 0, 0, 0)), 1, 1)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
}

func TestEncodeImage_SmallMatchesExact(t *testing.T) {
	img := gradientNRGBA(120, 80)
	a, err := EncodeImage(img, 4, 3)
	require.NoError(t, err)
	b, err := EncodeImageExact(img, 4, 3)
	require.NoError(t, err)
	assert.Equal(t, b, a)
}

func TestEncodeImage_LargeReducesGrid(t *testing.T) {
	// 1200 → 240 px with 8/4 = 2 components; 900 → 300 px with 8/3 = 2.
	img := gradientNRGBA(1200, 900)
	hash, err := EncodeImage(img, 8, 8)
	require.NoError(t, err)

	x, y, err := Components(hash)
	require.NoError(t, err)
	assert.Equal(t, 2, x)
	assert.Equal(t, 2, y)
	assert.Len(t, hash, HashLength(2, 2))
}

func TestReducedScale(t *testing.T) {
	tests := []struct {
		size, comp         int
		wantSize, wantComp int
	}{
		{1, 9, 1, 9},
		{300, 8, 300, 8},
		{301, 8, 150, 4},
		{400, 1, 200, 1},
		{600, 8, 200, 4},
		{800, 3, 266, 1},
		{900, 9, 300, 3},
		{1000, 2, 333, 1},
		{2000, 8, 400, 2},
		{3000, 9, 600, 2},
		{4000, 9, 400, 1},
	}
	for _, tt := range tests {
		s, c := ReducedScale(tt.size, tt.comp)
		assert.Equal(t, tt.wantSize, s, "size for %d", tt.size)
		assert.Equal(t, tt.wantComp, c, "components for %d/%d", tt.size, tt.comp)
		assert.LessOrEqual(t, s, tt.size)
	}
}

func TestPixels_FastPathsMatchGeneric(t *testing.T) {
	src := gradientNRGBA(7, 5)
	want := make([]Pixel, 0, 35)
	for y := 0; y < 5; y++ {
		for x := 0; x < 7; x++ {
			c := src.NRGBAAt(x, y)
			want = append(want, Pixel{c.R, c.G, c.B})
		}
	}
	assert.Equal(t, want, Pixels(src))

	// Sub-image keeps its own origin.
	sub := src.SubImage(image.Rect(2, 1, 5, 4)).(*image.NRGBA)
	got := Pixels(sub)
	require.Len(t, got, 9)
	c := src.NRGBAAt(2, 1)
	assert.Equal(t, Pixel{c.R, c.G, c.B}, got[0])
}

func TestPixels_RGBAUnpremultiplies(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 64, G: 0, B: 0, A: 128})
	img.SetRGBA(1, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	got := Pixels(img)
	assert.Equal(t, []Pixel{{128, 0, 0}, {10, 20, 30}}, got)
}

func TestPixels_GrayAndYCbCr(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 2, 2))
	g.SetGray(1, 1, color.Gray{Y: 200})
	assert.Equal(t, []Pixel{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}, {200, 200, 200}}, Pixels(g))

	yc := image.NewYCbCr(image.Rect(0, 0, 4, 4), image.YCbCrSubsampleRatio420)
	for i := range yc.Y {
		yc.Y[i] = 90
	}
	for i := range yc.Cb {
		yc.Cb[i] = 128
		yc.Cr[i] = 128
	}
	for _, p := range Pixels(yc) {
		assert.Equal(t, Pixel{90, 90, 90}, p)
	}
}

func TestEncode_Concurrent(t *testing.T) {
	img := gradientNRGBA(48, 32)
	want, err := EncodeImage(img, 6, 4)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			// Mix grid sizes so pooled buffers get resized between calls.
			if idx%2 == 1 {
				_, _ = EncodeImage(gradientNRGBA(9, 7), 9, 9)
			}
			results[idx], _ = EncodeImage(img, 6, 4)
		}(i)
	}
	wg.Wait()
	for i, got := range results {
		assert.Equal(t, want, got, "goroutine %d", i)
	}
}
