package cmd

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/AnyUserName/blurhash-cli/internal/blurhash"
	"github.com/AnyUserName/blurhash-cli/internal/manifest"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <manifest_path>",
	Short: "Validate a blurhash manifest and check referenced previews exist",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	manifestPath := args[0]

	m, err := manifest.ReadJSON(manifestPath)
	if err != nil {
		return err
	}

	errs := validateManifest(m, filepath.Dir(manifestPath))
	if len(errs) == 0 {
		fmt.Println("  ✓ Manifest is valid")
		fmt.Printf("  ✓ %d assets, %d previews, all hashes decode\n", m.Stats.TotalAssets, m.Stats.TotalPreviews)
		return nil
	}

	fmt.Printf("  ✗ Manifest has %d error(s):\n", len(errs))
	for _, e := range errs {
		fmt.Printf("    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errs))
}

func validateManifest(m *manifest.Manifest, baseDir string) []string {
	var errs []string

	if m.Version != manifest.SupportedManifestVersion {
		errs = append(errs, fmt.Sprintf("unsupported manifest version: %d", m.Version))
	}

	keys := make([]string, 0, len(m.Assets))
	for key := range m.Assets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var hashChars, previews int
	var previewBytes int64
	seenPaths := map[string]string{}
	for _, key := range keys {
		asset := m.Assets[key]
		hashChars += len(asset.BlurHash)

		if asset.Original.Width <= 0 || asset.Original.Height <= 0 {
			errs = append(errs, fmt.Sprintf("asset %q: invalid original dimensions %dx%d",
				key, asset.Original.Width, asset.Original.Height))
		}
		if asset.AspectRatio <= 0 {
			errs = append(errs, fmt.Sprintf("asset %q: invalid aspect ratio %.4f", key, asset.AspectRatio))
		}

		if err := blurhash.Validate(asset.BlurHash); err != nil {
			errs = append(errs, fmt.Sprintf("asset %q: invalid blurhash: %v", key, err))
		} else if nx, ny, _ := blurhash.Components(asset.BlurHash); nx != asset.Components.X || ny != asset.Components.Y {
			errs = append(errs, fmt.Sprintf("asset %q: components %dx%d do not match hash %dx%d",
				key, asset.Components.X, asset.Components.Y, nx, ny))
		}

		p := asset.Preview
		if p == nil {
			continue
		}
		previews++
		previewBytes += p.Size
		if p.Width <= 0 || p.Height <= 0 {
			errs = append(errs, fmt.Sprintf("asset %q preview: invalid dimensions %dx%d", key, p.Width, p.Height))
		}
		if p.Path == "" {
			errs = append(errs, fmt.Sprintf("asset %q preview: missing path", key))
			continue
		}
		if other, dup := seenPaths[p.Path]; dup {
			errs = append(errs, fmt.Sprintf("asset %q preview: path %q already used by %q", key, p.Path, other))
		}
		seenPaths[p.Path] = key

		full := filepath.Join(baseDir, filepath.FromSlash(path.Clean(p.Path)))
		info, err := os.Stat(full)
		if err != nil {
			errs = append(errs, fmt.Sprintf("asset %q preview: file not found: %s", key, p.Path))
		} else if p.Size > 0 && info.Size() != p.Size {
			errs = append(errs, fmt.Sprintf("asset %q preview: size mismatch: manifest=%d, disk=%d",
				key, p.Size, info.Size()))
		}
	}

	// Verify stats consistency.
	s := m.Stats
	if s.TotalAssets != len(m.Assets) {
		errs = append(errs, fmt.Sprintf("stats.total_assets mismatch: %d != %d", s.TotalAssets, len(m.Assets)))
	}
	if s.TotalPreviews != previews {
		errs = append(errs, fmt.Sprintf("stats.total_previews mismatch: %d != %d", s.TotalPreviews, previews))
	}
	if s.TotalPreviewBytes != previewBytes {
		errs = append(errs, fmt.Sprintf("stats.total_preview_bytes mismatch: %d != %d", s.TotalPreviewBytes, previewBytes))
	}
	if s.TotalHashChars != hashChars {
		errs = append(errs, fmt.Sprintf("stats.total_hash_chars mismatch: %d != %d", s.TotalHashChars, hashChars))
	}

	return errs
}
