package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/ellie/internal/config"
	"github.com/dohr-michael/ellie/internal/persona"
)

// NewPersonasCommand returns the personas subcommand.
func NewPersonasCommand() *cli.Command {
	return &cli.Command{
		Name:  "personas",
		Usage: "List the available Ellies",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "full",
				Usage: "Print each persona's complete instruction",
			},
		},
		Action: runPersonas,
	}
}

func runPersonas(_ context.Context, cmd *cli.Command) error {
	cfg, err := config.LoadOrDefault(cmd.String("config"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	reg, err := persona.Load(cfg.Agent.PersonasDir)
	if err != nil {
		return fmt.Errorf("load personas: %w", err)
	}

	for i, p := range reg.All() {
		fmt.Printf("%d. %s %s (%s)\n", i+1, p.Icon, p.Title, p.Mode)
		if cmd.Bool("full") {
			fmt.Printf("   %s\n\n", p.Instruction)
		} else {
			fmt.Printf("   %s\n", p.Summary())
		}
	}
	return nil
}
