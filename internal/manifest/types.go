package manifest

// Manifest is the top-level output of a blurhash build.
type Manifest struct {
	Version     int              `json:"version"`
	GeneratedAt string           `json:"generated_at"`
	BuildID     string           `json:"build_id"`
	Profile     string           `json:"profile"`
	BasePath    string           `json:"base_path"`
	BuildInfo   *BuildInfo       `json:"build_info,omitempty"`
	Assets      map[string]Asset `json:"assets"`
	Stats       Stats            `json:"stats"`
}

// BuildInfo captures build-time parameters for diagnostics.
type BuildInfo struct {
	Workers   int  `json:"workers"`
	Downscale bool `json:"downscale"`
	CacheUsed bool `json:"cache_used"`
}

// Asset describes one source image and its placeholder.
type Asset struct {
	Original    OriginalInfo `json:"original"`
	ContentHash string       `json:"content_hash"` // xxhash64 of the source file, hex
	BlurHash    string       `json:"blurhash"`
	Components  Components   `json:"components"`   // grid actually encoded
	AspectRatio float64      `json:"aspect_ratio"` // width / height
	AvgColor    *[3]uint8    `json:"avg_color,omitempty"`
	Preview     *Preview     `json:"preview,omitempty"`
	Cached      bool         `json:"cached,omitempty"`
}

// Components is a blurhash component grid.
type Components struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// OriginalInfo holds metadata about the source image.
type OriginalInfo struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
	Size   int64  `json:"size"`
}

// Preview is a decoded placeholder written next to the manifest.
type Preview struct {
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int64  `json:"size"` // bytes on disk
	Path   string `json:"path"` // relative to base_path
}

// Stats aggregates build metrics.
type Stats struct {
	TotalInputBytes   int64 `json:"total_input_bytes"`
	TotalPreviewBytes int64 `json:"total_preview_bytes"`
	TotalAssets       int   `json:"total_assets"`
	TotalPreviews     int   `json:"total_previews"`
	TotalHashChars    int   `json:"total_hash_chars"`
	CacheHits         int   `json:"cache_hits,omitempty"`
	Failed            int   `json:"failed,omitempty"`
}

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1
