package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/AnyUserName/blurhash-cli/internal/logging"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	gitSHA  = "NA"

	verbose  bool
	logLevel string
	logJSON  bool
	logFile  string

	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "blurhash",
	Short: "Compact image placeholders as short text hashes",
	Long: `blurhash encodes images into short base83 strings that decode into
smooth blurred placeholders, and builds placeholder manifests for whole
asset trees.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

// Execute runs the root command with ctx available to every subcommand.
func Execute(ctx context.Context, sha string) error {
	if sha != "" {
		gitSHA = sha
	}
	err := rootCmd.ExecuteContext(ctx)
	closeLogFile()
	return err
}

// closeLogFile flushes and closes the --log-file writer, if one is open.
func closeLogFile() {
	if logCloser != nil {
		logCloser.Close()
		logCloser = nil
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "verbose output (same as --log-level DEBUG)")
	pf.StringVar(&logLevel, "log-level", "INFO", "log level (DEBUG, INFO, WARN, ERROR)")
	pf.BoolVar(&logJSON, "log-json", false, "log as JSON")
	pf.StringVar(&logFile, "log-file", "", "also write logs to this rotating file")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"blurhash %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "blurhash %s (git %s, %s/%s, %s)\n",
			version, gitSHA, runtime.GOOS, runtime.GOARCH, runtime.Version())
	},
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	if logFile != "" {
		f := logging.RotatingFile(logFile)
		logCloser = f
		w = io.MultiWriter(os.Stderr, f)
	}
	slog.SetDefault(logging.Logger(w, logJSON, level))

	if err != nil {
		slog.WarnContext(cmd.Context(), "invalid log level, defaulting to INFO", "level", logLevel, "error", err)
	}
	return nil
}
