package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/glass/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	runner := NewRunner(RunnerOpts{
		Logger:  logger,
		Environ: os.Environ(),
	})

	app := &cli.Command{
		Name:     "glass",
		Usage:    "Spotify now playing, recents, playlists and search behind a local PKCE login",
		Version:  "0.1.0",
		Flags:    serveFlags(),
		Action:   runner.Serve,
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		}
		logger.Fatalf("application error: %v", err)
	}
}
