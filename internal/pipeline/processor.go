package pipeline

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path"
	"path/filepath"

	"github.com/AnyUserName/blurhash-cli/internal/blurhash"
	"github.com/AnyUserName/blurhash-cli/internal/cache"
	"github.com/AnyUserName/blurhash-cli/internal/hasher"
	"github.com/AnyUserName/blurhash-cli/internal/manifest"
	"github.com/AnyUserName/blurhash-cli/internal/preview"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// processResult holds the outcome for one source image.
type processResult struct {
	key    string
	asset  manifest.Asset
	err    error
	cached bool
}

// processImage hashes, encodes and optionally previews a single source.
func processImage(src Source, cfg Config, registry *preview.Registry) processResult {
	result := processResult{key: src.Key}
	prof := cfg.Profile

	data, err := os.ReadFile(src.AbsPath)
	if err != nil {
		result.err = fmt.Errorf("read %s: %w", src.RelPath, err)
		return result
	}
	contentHash := hasher.ContentHash(data, hasher.DigestLen)
	key := cache.Key{
		ContentHash: contentHash,
		ComponentX:  prof.ComponentX,
		ComponentY:  prof.ComponentY,
		Downscale:   prof.Downscale,
	}

	var entry cache.Entry
	if cfg.Cache != nil {
		if e, ok := cfg.Cache.Get(key); ok && blurhash.Validate(e.Hash) == nil {
			entry, result.cached = e, true
		}
	}

	if !result.cached {
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			result.err = fmt.Errorf("decode %s: %w", src.RelPath, err)
			return result
		}
		b := img.Bounds()
		entry.Width, entry.Height = b.Dx(), b.Dy()

		if prof.Downscale {
			entry.Hash, err = blurhash.EncodeImage(img, prof.ComponentX, prof.ComponentY)
		} else {
			entry.Hash, err = blurhash.EncodeImageExact(img, prof.ComponentX, prof.ComponentY)
		}
		if err != nil {
			result.err = fmt.Errorf("blurhash %s: %w", src.RelPath, err)
			return result
		}
		if cfg.Cache != nil {
			cfg.Cache.Put(key, entry)
		}
	}

	nx, ny, err := blurhash.Components(entry.Hash)
	if err != nil {
		result.err = fmt.Errorf("blurhash %s: %w", src.RelPath, err)
		return result
	}
	avg, _ := blurhash.AverageColor(entry.Hash)
	aspect := float64(entry.Width) / float64(entry.Height)

	result.asset = manifest.Asset{
		Original: manifest.OriginalInfo{
			Width:  entry.Width,
			Height: entry.Height,
			Format: src.Format,
			Size:   src.Size,
		},
		ContentHash: contentHash,
		BlurHash:    entry.Hash,
		Components:  manifest.Components{X: nx, Y: ny},
		AspectRatio: aspect,
		AvgColor:    &[3]uint8{avg.R, avg.G, avg.B},
		Cached:      result.cached,
	}

	if !cfg.Previews || prof.Preview == "" {
		return result
	}

	w, err := registry.Get(prof.Preview)
	if err != nil {
		result.err = err
		return result
	}
	pw, ph := prof.PlaceholderSize(aspect)
	img, err := preview.Render(entry.Hash, preview.Options{
		Width:  pw,
		Height: ph,
		Punch:  prof.Punch,
		Soften: prof.Soften,
	})
	if err != nil {
		result.err = fmt.Errorf("preview %s: %w", src.RelPath, err)
		return result
	}
	out, err := w.Write(img, prof.Quality)
	if err != nil {
		result.err = fmt.Errorf("preview %s: %w", src.RelPath, err)
		return result
	}

	// key.<hash8>.blur.ext, next to where the source lives in the tree.
	relPath := path.Join(path.Dir(src.Key),
		fmt.Sprintf("%s.%s.blur.%s", path.Base(src.Key), contentHash[:8], w.Extension()))
	outPath := filepath.Join(cfg.OutputDir, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		result.err = fmt.Errorf("mkdir for %s: %w", relPath, err)
		return result
	}
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		result.err = fmt.Errorf("write %s: %w", relPath, err)
		return result
	}

	result.asset.Preview = &manifest.Preview{
		Format: w.Format(),
		Width:  pw,
		Height: ph,
		Size:   int64(len(out)),
		Path:   relPath,
	}
	return result
}
