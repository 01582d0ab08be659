package preview

import (
	"fmt"
	"image"

	"github.com/AnyUserName/blurhash-cli/internal/blurhash"
	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"
)

// Options controls how a hash becomes a displayable image.
type Options struct {
	// Width and Height of the decoded buffer. Small sizes are cheap and
	// are meant to be stretched by the display.
	Width, Height int

	// Punch scales AC contrast; 0 means 1.
	Punch float64

	// DisplayWidth and DisplayHeight, when both set, upscale the decoded
	// buffer with a linear filter.
	DisplayWidth, DisplayHeight int

	// Soften applies a Gaussian blur of this radius after upscaling.
	Soften float64
}

// Render decodes hash according to o.
func Render(hash string, o Options) (image.Image, error) {
	img, err := blurhash.DecodeImage(hash, o.Width, o.Height, o.Punch)
	if err != nil {
		return nil, fmt.Errorf("decode blurhash: %w", err)
	}

	var out image.Image = img
	if o.DisplayWidth > 0 && o.DisplayHeight > 0 &&
		(o.DisplayWidth != o.Width || o.DisplayHeight != o.Height) {
		out = imaging.Resize(img, o.DisplayWidth, o.DisplayHeight, imaging.Linear)
	}
	if o.Soften > 0 {
		out = blur.Gaussian(out, o.Soften)
	}
	return out, nil
}
