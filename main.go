package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/AnyUserName/blurhash-cli/cmd"
	"github.com/AnyUserName/blurhash-cli/internal/logging"
)

var GitSHA = "NA"

func main() {
	// register sigterm for graceful shutdown
	ctx, cnc := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cnc()

	slog.SetDefault(logging.Logger(os.Stderr, false, slog.LevelInfo))
	ctx = logging.AppendCtx(ctx, slog.Group("blurhash", slog.String("git", GitSHA)))

	err := cmd.Execute(ctx, GitSHA)
	cnc()
	if err != nil {
		os.Exit(1)
	}
}
