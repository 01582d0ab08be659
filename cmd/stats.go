package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/AnyUserName/blurhash-cli/internal/manifest"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_manifest>",
	Short: "Display statistics for a built placeholder directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	path := args[0]

	// If path is a directory, look for manifest inside.
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, manifestName)
	}

	m, err := manifest.ReadJSON(path)
	if err != nil {
		return err
	}
	printStats(cmd.OutOrStdout(), m)
	return nil
}

func printStats(out io.Writer, m *manifest.Manifest) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Manifest version: %d\n", m.Version)
	fmt.Fprintf(out, "  Generated:        %s\n", m.GeneratedAt)
	fmt.Fprintf(out, "  Build ID:         %s\n", m.BuildID)
	fmt.Fprintf(out, "  Profile:          %s\n", m.Profile)
	if m.BuildInfo != nil {
		fmt.Fprintf(out, "  Workers:          %d\n", m.BuildInfo.Workers)
		fmt.Fprintf(out, "  Downscale:        %t\n", m.BuildInfo.Downscale)
		fmt.Fprintf(out, "  Cache:            %t\n", m.BuildInfo.CacheUsed)
	}
	fmt.Fprintln(out)

	s := m.Stats
	fmt.Fprintf(out, "  Total assets:     %d\n", s.TotalAssets)
	fmt.Fprintf(out, "  Total previews:   %d\n", s.TotalPreviews)
	fmt.Fprintf(out, "  Input size:       %s\n", formatBytes(s.TotalInputBytes))
	fmt.Fprintf(out, "  Preview size:     %s\n", formatBytes(s.TotalPreviewBytes))
	if s.TotalAssets > 0 {
		fmt.Fprintf(out, "  Avg hash length:  %.1f chars\n", float64(s.TotalHashChars)/float64(s.TotalAssets))
	}
	if s.CacheHits > 0 || s.Failed > 0 {
		fmt.Fprintf(out, "  Cache hits:       %d\n", s.CacheHits)
		fmt.Fprintf(out, "  Failed:           %d\n", s.Failed)
	}
	fmt.Fprintln(out)

	// Per-grid breakdown.
	grids := map[manifest.Components]int{}
	lengths := map[int]int{}
	for _, a := range m.Assets {
		grids[a.Components]++
		lengths[len(a.BlurHash)]++
	}

	gridKeys := make([]manifest.Components, 0, len(grids))
	for g := range grids {
		gridKeys = append(gridKeys, g)
	}
	sort.Slice(gridKeys, func(i, j int) bool {
		if gridKeys[i].X != gridKeys[j].X {
			return gridKeys[i].X < gridKeys[j].X
		}
		return gridKeys[i].Y < gridKeys[j].Y
	})
	fmt.Fprintln(out, "  Component grids:")
	for _, g := range gridKeys {
		fmt.Fprintf(out, "    %d×%d  %4d assets\n", g.X, g.Y, grids[g])
	}
	fmt.Fprintln(out)

	// Hash length histogram.
	var ls []int
	for l := range lengths {
		ls = append(ls, l)
	}
	sort.Ints(ls)
	fmt.Fprintln(out, "  Hash lengths:")
	for _, l := range ls {
		fmt.Fprintf(out, "    %3d chars  %4d assets\n", l, lengths[l])
	}

	// Warnings.
	var warnings []string
	for key, a := range m.Assets {
		if a.BlurHash == "" {
			warnings = append(warnings, fmt.Sprintf("asset %q missing blurhash", key))
		}
	}
	sort.Strings(warnings)
	if len(warnings) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "  Warnings (%d):\n", len(warnings))
		for _, w := range warnings {
			fmt.Fprintf(out, "    ⚠ %s\n", w)
		}
	}
	fmt.Fprintln(out)
}
