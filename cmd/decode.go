package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/AnyUserName/blurhash-cli/internal/blurhash"
	"github.com/AnyUserName/blurhash-cli/internal/preview"
	"github.com/spf13/cobra"
)

var (
	decodeOut    string
	decodeWidth  int
	decodeHeight int
	decodePunch  float64
	decodeScale  int
	decodeSoften float64
	decodeQual   int
)

var decodeCmd = &cobra.Command{
	Use:   "decode <hash>",
	Short: "Render a blurhash to an image file",
	Long: `Decodes a blurhash into a small image and writes it as png or jpeg,
chosen by the output extension.

Height defaults to width scaled by the hash's component grid ratio.
--scale upscales the decoded image with a linear filter.`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

func init() {
	decodeCmd.Flags().StringVarP(&decodeOut, "out", "o", "blurhash.png", "output file (.png, .jpg, .jpeg)")
	decodeCmd.Flags().IntVar(&decodeWidth, "width", 32, "decoded width")
	decodeCmd.Flags().IntVar(&decodeHeight, "height", 0, "decoded height (0 = from component grid)")
	decodeCmd.Flags().Float64Var(&decodePunch, "punch", 1, "contrast multiplier for AC terms")
	decodeCmd.Flags().IntVar(&decodeScale, "scale", 1, "upscale factor after decoding")
	decodeCmd.Flags().Float64Var(&decodeSoften, "soften", 0, "gaussian blur radius applied last")
	decodeCmd.Flags().IntVarP(&decodeQual, "quality", "q", 0, "jpeg quality (0 = default)")
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	hash := args[0]
	nx, ny, err := blurhash.Components(hash)
	if err != nil {
		return fmt.Errorf("invalid blurhash: %w", err)
	}

	opts := decodeOptions(nx, ny)
	w, err := preview.NewRegistry().ForPath(decodeOut)
	if err != nil {
		return err
	}
	img, err := preview.Render(hash, opts)
	if err != nil {
		return err
	}
	data, err := w.Write(img, decodeQual)
	if err != nil {
		return fmt.Errorf("encode %s: %w", w.Format(), err)
	}
	if err := os.WriteFile(decodeOut, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", decodeOut, err)
	}

	b := img.Bounds()
	slog.InfoContext(cmd.Context(), "wrote placeholder",
		"path", decodeOut, "width", b.Dx(), "height", b.Dy(), "bytes", len(data))
	return nil
}

// decodeOptions resolves flag defaults against a hash's nx×ny grid.
func decodeOptions(nx, ny int) preview.Options {
	o := preview.Options{
		Width:  decodeWidth,
		Height: decodeHeight,
		Punch:  decodePunch,
		Soften: decodeSoften,
	}
	if o.Width <= 0 {
		o.Width = 32
	}
	if o.Height <= 0 {
		o.Height = max(1, (o.Width*ny+nx/2)/nx)
	}
	if decodeScale > 1 {
		o.DisplayWidth = o.Width * decodeScale
		o.DisplayHeight = o.Height * decodeScale
	}
	return o
}
