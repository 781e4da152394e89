package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/ellie/internal/agent"
	"github.com/dohr-michael/ellie/internal/callbacks"
	"github.com/dohr-michael/ellie/internal/chat"
	"github.com/dohr-michael/ellie/internal/config"
	"github.com/dohr-michael/ellie/internal/models"
	"github.com/dohr-michael/ellie/internal/persona"
	"github.com/dohr-michael/ellie/internal/sessions"
	"github.com/dohr-michael/ellie/internal/tools"
)

func runChat(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.LoadOrDefault(cmd.String("config"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cmd.IsSet("prompt-style") {
		style := strings.ToLower(strings.TrimSpace(cmd.String("prompt-style")))
		if style != config.PromptStyleSystem && style != config.PromptStyleInline {
			return fmt.Errorf("--prompt-style: unknown value %q (want %q or %q)",
				style, config.PromptStyleSystem, config.PromptStyleInline)
		}
		cfg.Agent.PromptStyle = style
	}

	setupLogging(cmd.Bool("debug"), cfg.Log.Level)

	personas, err := persona.Load(cfg.Agent.PersonasDir)
	if err != nil {
		return fmt.Errorf("load personas: %w", err)
	}

	registry := models.NewRegistry(cfg.Models)
	providerName := registry.DefaultName()
	if cmd.IsSet("model") {
		providerName = cmd.String("model")
	}
	chatModel := models.Lazy(registry, providerName)

	searcher, err := tools.NewDuckDuckGo(ctx, cfg.Search.Timeout.Duration())
	if err != nil {
		return err
	}

	ag, err := agent.New(ctx, chatModel, tools.Default(searcher), agent.Options{
		MaxIterations:  cfg.Agent.MaxIterations,
		MaxToolRetries: cfg.Agent.MaxToolRetries,
	})
	if err != nil {
		return err
	}

	callbacks.Install(slog.Default())

	console := chat.NewConsole(os.Stdin, os.Stdout, chat.NewStyle(chat.IsTerminal(os.Stdout)))
	loop := chat.NewLoop(chat.LoopConfig{
		Console:       console,
		Selector:      chat.NewSelector(console, personas),
		Dispatcher:    agent.NewDispatcher(ag, personas, cfg.Agent.PromptStyle),
		DescribeError: models.Describe,
		OnSession: func(s *sessions.Session) {
			slog.Debug("chat session",
				"session_id", s.ID,
				"provider", providerName,
				"prompt_style", cfg.Agent.PromptStyle,
			)
		},
	})

	err = loop.Run(ctx)
	if s := loop.Session(); s != nil {
		slog.Debug("chat session ended", "session_id", s.ID, "turns", len(s.Turns()), "switches", s.Switches())
	}
	return err
}
