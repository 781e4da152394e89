package commands

import (
	"log/slog"
	"os"
	"strings"
)

// setupLogging installs a text handler on stderr. debug wins over level.
func setupLogging(debug bool, level string) {
	lvl := slog.LevelInfo
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		lvl = slog.LevelInfo
	}
	if debug {
		lvl = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}
