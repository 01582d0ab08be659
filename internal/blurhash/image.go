package blurhash

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// EncodeImage encodes img after reducing it with ReducedScale. Large images
// are Lanczos-resampled first and may end up with fewer components than
// requested; the declared grid in the hash reflects what was encoded.
func EncodeImage(img image.Image, componentX, componentY int) (string, error) {
	if err := CheckComponents(componentX, componentY); err != nil {
		return "", err
	}
	b := img.Bounds()
	srcW, srcH := b.Dx(), b.Dy()
	w, nx := ReducedScale(srcW, componentX)
	h, ny := ReducedScale(srcH, componentY)
	if srcW > 0 && srcH > 0 && (w < srcW || h < srcH) {
		img = imaging.Resize(img, w, h, imaging.Lanczos)
	} else {
		w, h = srcW, srcH
	}
	return Encode(Pixels(img), w, h, nx, ny)
}

// EncodeImageExact encodes every pixel of img at the requested grid.
func EncodeImageExact(img image.Image, componentX, componentY int) (string, error) {
	b := img.Bounds()
	return Encode(Pixels(img), b.Dx(), b.Dy(), componentX, componentY)
}

// DecodeImage decodes hash into an opaque NRGBA image.
func DecodeImage(hash string, width, height int, punch float64) (*image.NRGBA, error) {
	pix, err := DecodePunch(hash, width, height, punch)
	if err != nil {
		return nil, err
	}
	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i, p := range pix {
		off := i * 4
		out.Pix[off] = p.R
		out.Pix[off+1] = p.G
		out.Pix[off+2] = p.B
		out.Pix[off+3] = 255
	}
	return out, nil
}

// Pixels flattens img into a row-major buffer, dropping alpha.
// Premultiplied sources are un-premultiplied first.
func Pixels(img image.Image) []Pixel {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil
	}
	pix := make([]Pixel, 0, w*h)

	switch src := img.(type) {
	case *image.NRGBA:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			off := src.PixOffset(b.Min.X, y)
			for range w {
				pix = append(pix, Pixel{src.Pix[off], src.Pix[off+1], src.Pix[off+2]})
				off += 4
			}
		}
	case *image.RGBA:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			off := src.PixOffset(b.Min.X, y)
			for range w {
				a := uint32(src.Pix[off+3])
				pix = append(pix, Pixel{
					unpremul(src.Pix[off], a),
					unpremul(src.Pix[off+1], a),
					unpremul(src.Pix[off+2], a),
				})
				off += 4
			}
		}
	case *image.YCbCr:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				yi := src.YOffset(x, y)
				ci := src.COffset(x, y)
				r, g, bl := color.YCbCrToRGB(src.Y[yi], src.Cb[ci], src.Cr[ci])
				pix = append(pix, Pixel{r, g, bl})
			}
		}
	case *image.Gray:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			off := src.PixOffset(b.Min.X, y)
			for _, v := range src.Pix[off : off+w] {
				pix = append(pix, Pixel{v, v, v})
			}
		}
	default:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				pix = append(pix, Pixel{c.R, c.G, c.B})
			}
		}
	}
	return pix
}

func unpremul(c uint8, a uint32) uint8 {
	switch a {
	case 0:
		return 0
	case 255:
		return c
	}
	v := (uint32(c)*255 + a/2) / a
	if v > 255 {
		v = 255
	}
	return uint8(v)
}
