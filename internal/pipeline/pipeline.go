package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/AnyUserName/blurhash-cli/internal/cache"
	"github.com/AnyUserName/blurhash-cli/internal/manifest"
	"github.com/AnyUserName/blurhash-cli/internal/preview"
	"github.com/AnyUserName/blurhash-cli/internal/profile"
)

// Config holds all parameters for a build pipeline run.
type Config struct {
	InputDir  string
	OutputDir string
	Profile   profile.Profile
	Workers   int
	Previews  bool         // write decoded placeholder files
	Cache     *cache.Store // optional; nil disables memoization
	Logger    *slog.Logger // nil uses slog.Default()
}

// Pipeline orchestrates placeholder generation for a directory tree.
type Pipeline struct {
	cfg      Config
	registry *preview.Registry
	log      *slog.Logger
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{
		cfg:      cfg,
		registry: preview.NewRegistry(),
		log:      log,
	}
}

// Run executes the build and returns the manifest. Cancelling ctx stops
// scheduling new images; images in flight finish.
func (p *Pipeline) Run(ctx context.Context) (*manifest.Manifest, error) {
	p.log.DebugContext(ctx, "pipeline start", "registry", p.registry.String(), "workers", p.cfg.Workers)

	// Step 1: Scan for images.
	sources, err := ScanImages(p.cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %s", p.cfg.InputDir)
	}
	p.log.InfoContext(ctx, "found images", "count", len(sources))

	// Step 2: Process images in parallel.
	results := make([]processResult, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	for i, src := range sources {
		select {
		case <-ctx.Done():
			results[i] = processResult{key: src.Key, err: ctx.Err()}
			continue
		case sem <- struct{}{}: // acquire
		}
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			defer func() { <-sem }() // release

			p.log.DebugContext(ctx, "processing", "key", s.Key)
			results[idx] = processImage(s, p.cfg, p.registry)
			if r := results[idx]; r.err == nil {
				p.log.DebugContext(ctx, "done", "key", s.Key, "blurhash", r.asset.BlurHash, "cached", r.cached)
			}
		}(i, src)
	}
	wg.Wait()

	// Step 3: Collect results into manifest.
	m := manifest.New(p.cfg.Profile.Name)

	var failed, hits int
	for _, r := range results {
		if r.err != nil {
			failed++
			p.log.WarnContext(ctx, "image failed", "key", r.key, "error", r.err)
			continue
		}
		if r.cached {
			hits++
		}
		m.Assets[r.key] = r.asset
	}

	// Partial failures do not fail the build.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if failed == len(sources) {
		return nil, fmt.Errorf("all %d images failed to process", failed)
	}
	if failed > 0 {
		p.log.WarnContext(ctx, "some images had errors", "failed", failed, "total", len(sources))
	}

	m.BuildInfo = &manifest.BuildInfo{
		Workers:   p.cfg.Workers,
		Downscale: p.cfg.Profile.Downscale,
		CacheUsed: p.cfg.Cache != nil,
	}
	m.Stats.CacheHits = hits
	m.Stats.Failed = failed
	m.ComputeStats()
	return m, nil
}
