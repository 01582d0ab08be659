package pipeline

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Source is a discovered image file.
type Source struct {
	AbsPath string // absolute path on disk
	RelPath string // slash-separated, relative to the input directory
	Key     string // RelPath without extension; the manifest asset key
	Format  string // normalized: png, jpeg, gif, bmp, tiff, webp
	Size    int64
}

// imageFormats maps recognized extensions to normalized format names.
var imageFormats = map[string]string{
	".png":  "png",
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".gif":  "gif",
	".bmp":  "bmp",
	".tif":  "tiff",
	".tiff": "tiff",
	".webp": "webp",
}

// ScanImages walks inputDir and returns image sources sorted by key.
// Hidden directories are skipped.
func ScanImages(inputDir string) ([]Source, error) {
	var sources []Source

	err := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != inputDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		format, ok := imageFormats[ext]
		if !ok {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(inputDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		sources = append(sources, Source{
			AbsPath: path,
			RelPath: rel,
			Key:     rel[:len(rel)-len(ext)],
			Format:  format,
			Size:    info.Size(),
		})
		return nil
	})

	sort.Slice(sources, func(i, j int) bool { return sources[i].Key < sources[j].Key })
	return sources, err
}
