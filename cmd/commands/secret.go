package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/dohr-michael/ellie/internal/config"
	"github.com/dohr-michael/ellie/internal/secrets"
)

// NewSecretCommand returns the secret subcommand.
func NewSecretCommand() *cli.Command {
	return &cli.Command{
		Name:  "secret",
		Usage: "Manage encrypted API keys in the Ellie .env file",
		Commands: []*cli.Command{
			{
				Name:      "set",
				Usage:     "Encrypt a value and store it under KEY",
				ArgsUsage: "<KEY>",
				Action:    runSecretSet,
			},
		},
	}
}

func runSecretSet(_ context.Context, cmd *cli.Command) error {
	key := strings.TrimSpace(cmd.Args().First())
	if key == "" {
		return fmt.Errorf("usage: ellie secret set <KEY>")
	}

	value, err := readSecret(key)
	if err != nil {
		return err
	}
	if value == "" {
		return fmt.Errorf("empty value for %s", key)
	}

	identity, err := secrets.EnsureIdentity(secrets.KeyPath())
	if err != nil {
		return err
	}
	sealed, err := secrets.Seal(value, identity.Recipient())
	if err != nil {
		return err
	}

	path := config.DotenvPath()
	if err := os.MkdirAll(config.EllieHome(), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", config.EllieHome(), err)
	}
	if err := secrets.SetEntry(path, key, sealed); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	fmt.Printf("Stored %s in %s (encrypted)\n", key, path)
	return nil
}

// readSecret reads the value without echo on a terminal, or one line from a pipe.
func readSecret(key string) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprintf(os.Stderr, "Value for %s: ", key)
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("read value: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read value: %w", err)
	}
	return strings.TrimSpace(line), nil
}
