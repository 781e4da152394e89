package config

import (
	"os"
	"path/filepath"
)

// EllieHome returns the root directory for Ellie data.
// It uses $ELLIE_PATH if set, otherwise defaults to ~/.ellie.
func EllieHome() string {
	if v := os.Getenv("ELLIE_PATH"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".ellie")
	}
	return filepath.Join(home, ".ellie")
}

// ConfigPath returns the path to the Ellie config file.
func ConfigPath() string {
	return filepath.Join(EllieHome(), "config.jsonc")
}

// DotenvPath returns the path to the Ellie .env file.
func DotenvPath() string {
	return filepath.Join(EllieHome(), ".env")
}

// PersonasDir returns the default directory for persona overrides.
func PersonasDir() string {
	return filepath.Join(EllieHome(), "personas")
}
