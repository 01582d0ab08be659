package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/AnyUserName/blurhash-cli/internal/blurhash"
	"github.com/AnyUserName/blurhash-cli/internal/cache"
	"github.com/AnyUserName/blurhash-cli/internal/manifest"
	"github.com/AnyUserName/blurhash-cli/internal/pipeline"
	"github.com/AnyUserName/blurhash-cli/internal/profile"
	"github.com/spf13/cobra"
)

// manifestName is the file written into the output directory.
const manifestName = "blurhash.manifest.json"

var (
	buildOutDir    string
	buildProfile   string
	buildWorkers   int
	buildX         int
	buildY         int
	buildCachePath string
	buildNoPreview bool
)

var buildCmd = &cobra.Command{
	Use:   "build <input_dir>",
	Short: "Compute placeholders for a directory of images and write a manifest",
	Long: `Scans input directory for images (png, jpg, jpeg, gif, bmp, tiff, webp),
computes a blurhash for each, writes small decoded placeholder previews and a
manifest file.

Preview filenames are content-addressed: <key>.<hash8>.blur.ext`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutDir, "out", "o", "./blurhash_out", "output directory")
	buildCmd.Flags().StringVarP(&buildProfile, "profile", "p", profile.DefaultName, "processing profile")
	buildCmd.Flags().IntVarP(&buildWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	buildCmd.Flags().IntVarP(&buildX, "x-components", "x", 0, "horizontal components (0 = profile default)")
	buildCmd.Flags().IntVarP(&buildY, "y-components", "y", 0, "vertical components (0 = profile default)")
	buildCmd.Flags().StringVar(&buildCachePath, "cache", "", "hash cache file, reused across builds")
	buildCmd.Flags().BoolVar(&buildNoPreview, "no-preview", false, "skip writing preview images")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	inputDir := args[0]
	start := time.Now()

	// Resolve absolute paths.
	absInput, err := filepath.Abs(inputDir)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(buildOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	// Load profile.
	if !profile.Exists(buildProfile) {
		slog.WarnContext(ctx, "unknown profile, using default", "profile", buildProfile, "default", profile.DefaultName)
	}
	prof := profile.Get(buildProfile)
	if buildX > 0 {
		prof.ComponentX = buildX
	}
	if buildY > 0 {
		prof.ComponentY = buildY
	}
	if err := blurhash.CheckComponents(prof.ComponentX, prof.ComponentY); err != nil {
		return err
	}

	slog.DebugContext(ctx, "build config",
		"input", absInput, "output", absOutput, "profile", prof.Name,
		"components", fmt.Sprintf("%dx%d", prof.ComponentX, prof.ComponentY))

	var store *cache.Store
	if buildCachePath != "" {
		if store, err = cache.Load(buildCachePath); err != nil {
			return fmt.Errorf("load cache: %w", err)
		}
		slog.DebugContext(ctx, "cache loaded", "path", buildCachePath, "entries", store.Len())
	}

	// Create output dir.
	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	// Run pipeline.
	p := pipeline.New(pipeline.Config{
		InputDir:  absInput,
		OutputDir: absOutput,
		Profile:   prof,
		Workers:   buildWorkers,
		Previews:  !buildNoPreview,
		Cache:     store,
		Logger:    slog.Default(),
	})

	m, err := p.Run(ctx)
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	// Write manifest.
	manifestPath := filepath.Join(absOutput, manifestName)
	if err := manifest.WriteJSON(m, manifestPath); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	if store != nil {
		if err := store.Save(buildCachePath); err != nil {
			return fmt.Errorf("save cache: %w", err)
		}
	}

	printBuildReport(m, time.Since(start))
	return nil
}

func printBuildReport(m *manifest.Manifest, elapsed time.Duration) {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════╗")
	fmt.Println("║             blurhash build complete              ║")
	fmt.Println("╚══════════════════════════════════════════════════╝")
	fmt.Println()

	stats := m.Stats
	fmt.Printf("  Assets:      %d\n", stats.TotalAssets)
	fmt.Printf("  Previews:    %d (%s)\n", stats.TotalPreviews, formatBytes(stats.TotalPreviewBytes))
	fmt.Printf("  Input size:  %s\n", formatBytes(stats.TotalInputBytes))
	fmt.Printf("  Hash chars:  %d\n", stats.TotalHashChars)
	if stats.CacheHits > 0 {
		fmt.Printf("  Cache hits:  %d\n", stats.CacheHits)
	}
	if stats.Failed > 0 {
		fmt.Printf("  Failed:      %d\n", stats.Failed)
	}
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))
	if m.BuildInfo != nil {
		fmt.Printf("  Workers:     %d\n", m.BuildInfo.Workers)
	}
	fmt.Println()

	// Top 10 heaviest sources with their hashes.
	if len(m.Assets) > 0 {
		keys := make([]string, 0, len(m.Assets))
		for key := range m.Assets {
			keys = append(keys, key)
		}
		sort.Slice(keys, func(i, j int) bool {
			return m.Assets[keys[i]].Original.Size > m.Assets[keys[j]].Original.Size
		})
		n := min(len(keys), 10)
		fmt.Printf("  Top %d heaviest:\n", n)
		for _, key := range keys[:n] {
			a := m.Assets[key]
			fmt.Printf("    %-40s %8s  %s\n", truncKey(key, 40), formatBytes(a.Original.Size), a.BlurHash)
		}
		fmt.Println()
	}

	data, _ := json.Marshal(m)
	fmt.Printf("  Manifest:    %s (%s)\n", manifestName, formatBytes(int64(len(data))))
	fmt.Println()
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func truncKey(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n+3:]
}
