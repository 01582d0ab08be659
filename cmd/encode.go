package cmd

import (
	"fmt"
	"image"
	"log/slog"
	"os"

	"github.com/AnyUserName/blurhash-cli/internal/blurhash"
	"github.com/spf13/cobra"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	encodeX     int
	encodeY     int
	encodeExact bool
)

var encodeCmd = &cobra.Command{
	Use:   "encode <image>",
	Short: "Print the blurhash of an image file",
	Long: `Decodes an image (png, jpeg, gif, bmp, tiff, webp) and prints its blurhash.

Large images are downscaled before encoding and may use fewer components
than requested; --exact encodes every pixel with the requested grid.`,
	Args: cobra.ExactArgs(1),
	RunE: runEncode,
}

func init() {
	encodeCmd.Flags().IntVarP(&encodeX, "x-components", "x", 4, "horizontal components (1-9)")
	encodeCmd.Flags().IntVarP(&encodeY, "y-components", "y", 3, "vertical components (1-9)")
	encodeCmd.Flags().BoolVar(&encodeExact, "exact", false, "skip downscaling")
	rootCmd.AddCommand(encodeCmd)
}

func runEncode(cmd *cobra.Command, args []string) error {
	img, err := openImage(args[0])
	if err != nil {
		return err
	}

	var hash string
	if encodeExact {
		hash, err = blurhash.EncodeImageExact(img, encodeX, encodeY)
	} else {
		hash, err = blurhash.EncodeImage(img, encodeX, encodeY)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", args[0], err)
	}

	b := img.Bounds()
	slog.DebugContext(cmd.Context(), "encoded", "path", args[0], "width", b.Dx(), "height", b.Dy(), "length", len(hash))
	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}

func openImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
