// Package preview turns decoded blurhash placeholders into image files.
package preview

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
)

// Writer serializes an image to a specific format.
type Writer interface {
	// Format returns the format name ("png", "jpeg").
	Format() string

	// Extension returns the file extension without dot.
	Extension() string

	// Write encodes img. quality is 1-100 and ignored by lossless formats.
	Write(img image.Image, quality int) ([]byte, error)
}

// DefaultJPEGQuality is used when quality is out of range.
const DefaultJPEGQuality = 82

// PNGWriter writes lossless PNG. Placeholders are tiny, so it always
// uses best compression.
type PNGWriter struct{}

func (PNGWriter) Format() string    { return "png" }
func (PNGWriter) Extension() string { return "png" }

func (PNGWriter) Write(img image.Image, _ int) ([]byte, error) {
	var buf bytes.Buffer
	enc := &png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// JPEGWriter writes baseline JPEG.
type JPEGWriter struct{}

func (JPEGWriter) Format() string    { return "jpeg" }
func (JPEGWriter) Extension() string { return "jpg" }

func (JPEGWriter) Write(img image.Image, quality int) ([]byte, error) {
	if quality <= 0 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
