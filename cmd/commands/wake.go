package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/ellie/internal/config"
	"github.com/dohr-michael/ellie/internal/secrets"
)

// NewWakeCommand returns the onboarding subcommand.
func NewWakeCommand() *cli.Command {
	return &cli.Command{
		Name:   "wake",
		Usage:  "Initialize the Ellie home directory (~/.ellie)",
		Action: runWake,
	}
}

func runWake(_ context.Context, _ *cli.Command) error {
	created, err := initHome()
	if err != nil {
		return err
	}
	root := config.EllieHome()
	if len(created) == 0 {
		fmt.Printf("Already awake. %s is complete, nothing to do.\n", root)
		return nil
	}
	for _, p := range created {
		fmt.Printf("  Created %s\n", p)
	}
	fmt.Println(wakeMessage(root))
	return nil
}

// initHome creates whatever is missing under the Ellie home and returns the
// paths it created.
func initHome() ([]string, error) {
	var created []string

	for _, d := range []string{config.EllieHome(), config.PersonasDir()} {
		if _, err := os.Stat(d); err == nil {
			continue
		}
		if err := os.MkdirAll(d, 0o755); err != nil {
			return created, fmt.Errorf("create dir %s: %w", d, err)
		}
		created = append(created, d)
	}

	files := []struct {
		path    string
		content string
		perm    os.FileMode
	}{
		{config.ConfigPath(), defaultConfig, 0o644},
		{config.DotenvPath(), defaultDotenv, 0o600},
	}
	for _, f := range files {
		if _, err := os.Stat(f.path); err == nil {
			continue
		}
		if err := os.WriteFile(f.path, []byte(f.content), f.perm); err != nil {
			return created, fmt.Errorf("write %s: %w", f.path, err)
		}
		created = append(created, f.path)
	}

	keyPath := secrets.KeyPath()
	if _, err := os.Stat(keyPath); err != nil {
		if _, err := secrets.EnsureIdentity(keyPath); err != nil {
			return created, err
		}
		created = append(created, keyPath)
	}
	return created, nil
}

const defaultConfig = `{
	// Ellie configuration

	"models": {
		"default": "openai",
		"providers": {
			"openai": {
				"driver": "openai",
				"model": "gpt-4o-mini",
				"auth": {
					"api_key": "${{ .Env.OPENAI_API_KEY }}"
				},
				"options": {
					"temperature": 0
				}
			}

			// "claude": {
			// 	"driver": "anthropic",
			// 	"model": "claude-sonnet-4-20250514",
			// 	"max_tokens": 4096
			// },

			// "gemini": {
			// 	"driver": "gemini",
			// 	"model": "gemini-2.5-flash"
			// },

			// Local model via Ollama (no auth required)
			// "local": {
			// 	"driver": "ollama",
			// 	"model": "llama3.1:8b",
			// 	"base_url": "http://localhost:11434"
			// }
		}
	},

	"agent": {
		// "system" sends the persona as a system message,
		// "inline" prepends it to the user's text.
		"prompt_style": "system",
		"max_tool_retries": 3
	},

	"search": {
		"timeout": "10s"
	},

	"log": {
		"level": "info"
	}
}
`

const defaultDotenv = `# Ellie environment variables
# This file is loaded automatically. Existing env vars are never overridden.
# Use 'ellie secret set KEY' to store an encrypted value.

# OPENAI_API_KEY=sk-...
# ANTHROPIC_API_KEY=sk-ant-...
# GEMINI_API_KEY=...
`

func wakeMessage(root string) string {
	return fmt.Sprintf(`
  Hi, I'm Ellie.

  Home set up at %s

  Next steps:
    1. Run: ellie secret set OPENAI_API_KEY
    2. Drop persona overrides in %s/personas (travel.md, fitness.md, ...)
    3. Run: ellie

  Lets Chat!
`, root, root)
}
