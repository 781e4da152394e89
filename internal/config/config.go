package config

import "time"

// Config is the root configuration for Ellie.
type Config struct {
	Models ModelsConfig `json:"models"`
	Agent  AgentConfig  `json:"agent"`
	Search SearchConfig `json:"search"`
	Log    LogConfig    `json:"log"`
}

// ModelsConfig holds model provider configuration.
type ModelsConfig struct {
	Default   string                    `json:"default"`
	Providers map[string]ProviderConfig `json:"providers"`
}

// ProviderConfig configures a single LLM provider.
type ProviderConfig struct {
	Driver    string         `json:"driver"` // "openai", "anthropic", "gemini", "ollama", "mistral"
	Model     string         `json:"model"`
	BaseURL   string         `json:"base_url,omitempty"`
	Auth      AuthConfig     `json:"auth"`
	MaxTokens int            `json:"max_tokens,omitempty"`
	Timeout   Duration       `json:"timeout,omitempty"`
	Options   map[string]any `json:"options,omitempty"`
}

// AuthConfig configures API key resolution.
type AuthConfig struct {
	APIKey string `json:"api_key,omitempty"` // Direct API key, ${VAR} or ${{ .Env.VAR }} template
	Token  string `json:"token,omitempty"`   // Bearer token
}

// Prompt styles control how the persona reaches the model.
const (
	PromptStyleSystem = "system" // persona as a system message, user text as a user message
	PromptStyleInline = "inline" // persona prepended to the user text in a single user message
)

// AgentConfig holds agent settings.
type AgentConfig struct {
	PromptStyle    string `json:"prompt_style,omitempty"`
	MaxIterations  int    `json:"max_iterations,omitempty"` // 0 = ADK default
	MaxToolRetries int    `json:"max_tool_retries,omitempty"`
	PersonasDir    string `json:"personas_dir,omitempty"`
}

// SearchConfig configures the web_search backend.
type SearchConfig struct {
	Timeout Duration `json:"timeout,omitempty"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level string `json:"level,omitempty"` // debug, info, warn, error
}

// Duration wraps time.Duration for JSON unmarshaling.
type Duration time.Duration

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Duration(d).String() + `"`), nil
}
