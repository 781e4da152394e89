package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/dohr-michael/ellie/cmd/commands"
	"github.com/dohr-michael/ellie/internal/chat"
	"github.com/dohr-michael/ellie/internal/config"
	"github.com/dohr-michael/ellie/internal/secrets"
)

func main() {
	if err := config.LoadDotenv(".env", config.DotenvPath()); err != nil {
		slog.Warn("failed to load .env", "error", err)
	}
	if _, err := secrets.DecryptEnv(secrets.KeyPath()); err != nil {
		slog.Warn("failed to decrypt secrets", "error", err)
	}

	// No signal handling: an in-flight model call is only interrupted by
	// killing the process.
	cmd := commands.NewRootCommand()
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, chat.ErrQuit) {
			return
		}
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}
