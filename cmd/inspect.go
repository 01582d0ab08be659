package cmd

import (
	"fmt"
	"io"

	"github.com/AnyUserName/blurhash-cli/internal/blurhash"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <hash>",
	Short: "Describe a blurhash without rendering it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspectHash(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func inspectHash(out io.Writer, hash string) error {
	fmt.Fprintf(out, "  Hash:        %s\n", hash)
	fmt.Fprintf(out, "  Length:      %d\n", len(hash))

	if err := blurhash.Validate(hash); err != nil {
		fmt.Fprintf(out, "  ✗ Invalid:   %v\n", err)
		return err
	}
	nx, ny, _ := blurhash.Components(hash)
	avg, _ := blurhash.AverageColor(hash)

	fmt.Fprintf(out, "  Components:  %d×%d (%d terms)\n", nx, ny, nx*ny)
	fmt.Fprintf(out, "  Avg color:   #%02x%02x%02x\n", avg.R, avg.G, avg.B)
	fmt.Fprintln(out, "  ✓ Valid")
	return nil
}
