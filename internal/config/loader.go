package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/tailscale/hujson"
)

const (
	DefaultProvider       = "openai"
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultMaxToolRetries = 3
	DefaultSearchTimeout  = 10 * time.Second
)

var envTemplateRe = regexp.MustCompile(`\$\{\{\s*\.Env\.(\w+)\s*\}\}`)

// Load reads a JSONC config file, expands ${{ .Env.VAR }} templates,
// standardizes it to plain JSON, unmarshals it into Config, and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand before standardizing, templates live inside string literals.
	expanded := expandEnvTemplates(string(data))

	std, err := hujson.Standardize([]byte(expanded))
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(std, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := applyDefaults(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault behaves like Load but returns the default configuration when
// the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Default returns the configuration used when no config file is present:
// OpenAI gpt-4o-mini at temperature 0, role-separated persona prompts.
func Default() *Config {
	cfg := &Config{}
	// applyDefaults only fails on invalid user input.
	_ = applyDefaults(cfg)
	return cfg
}

// expandEnvTemplates replaces ${{ .Env.VAR }} with the env var value.
func expandEnvTemplates(s string) string {
	return envTemplateRe.ReplaceAllStringFunc(s, func(match string) string {
		parts := envTemplateRe.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		return os.Getenv(parts[1])
	})
}

// applyDefaults fills in zero-value fields and validates enumerations.
func applyDefaults(cfg *Config) error {
	if cfg.Models.Default == "" {
		cfg.Models.Default = DefaultProvider
	}
	if cfg.Models.Providers == nil {
		cfg.Models.Providers = make(map[string]ProviderConfig)
	}
	if _, ok := cfg.Models.Providers[cfg.Models.Default]; !ok && cfg.Models.Default == DefaultProvider {
		cfg.Models.Providers[DefaultProvider] = ProviderConfig{
			Driver:  "openai",
			Model:   DefaultOpenAIModel,
			Options: map[string]any{"temperature": 0.0},
		}
	}

	cfg.Agent.PromptStyle = strings.ToLower(strings.TrimSpace(cfg.Agent.PromptStyle))
	switch cfg.Agent.PromptStyle {
	case "":
		cfg.Agent.PromptStyle = PromptStyleSystem
	case PromptStyleSystem, PromptStyleInline:
	default:
		return fmt.Errorf("agent.prompt_style: unknown value %q (want %q or %q)",
			cfg.Agent.PromptStyle, PromptStyleSystem, PromptStyleInline)
	}
	if cfg.Agent.MaxToolRetries <= 0 {
		cfg.Agent.MaxToolRetries = DefaultMaxToolRetries
	}
	if cfg.Agent.PersonasDir == "" {
		cfg.Agent.PersonasDir = PersonasDir()
	}

	if cfg.Search.Timeout <= 0 {
		cfg.Search.Timeout = Duration(DefaultSearchTimeout)
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	// Auth resolution is deferred to models.ResolveAuth() at model init time.
	return nil
}
