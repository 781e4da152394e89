package commands

import (
	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/ellie/internal/config"
)

// NewRootCommand returns the top-level CLI command. Without a subcommand it
// starts an interactive chat.
func NewRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "ellie",
		Usage: "Chat with Ellie, your persona-switching AI assistant",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   config.ConfigPath(),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
			&cli.StringFlag{
				Name:    "model",
				Aliases: []string{"m"},
				Usage:   "Model provider name from config (default: models.default)",
			},
			&cli.StringFlag{
				Name:  "prompt-style",
				Usage: "How the persona reaches the model: system or inline",
			},
		},
		Action: runChat,
		Commands: []*cli.Command{
			NewWakeCommand(),
			NewPersonasCommand(),
			NewSecretCommand(),
		},
	}
}
