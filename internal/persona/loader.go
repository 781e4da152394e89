package persona

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// frontMatter mirrors the optional YAML header of a persona override file.
type frontMatter struct {
	Title string `yaml:"title"`
	Icon  string `yaml:"icon"`
}

// Load returns the built-in registry with overrides read from dir/<mode>.md.
// Missing or empty files keep the built-in persona. An unreadable directory
// is not an error; a malformed front matter is.
func Load(dir string) (*Registry, error) {
	personas := builtin()
	if strings.TrimSpace(dir) == "" {
		return &Registry{personas: personas}, nil
	}

	for _, m := range Modes() {
		path := filepath.Join(dir, string(m)+".md")
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				slog.Warn("failed to read persona override", "path", path, "error", err)
			}
			continue
		}

		fm, body, err := parseFrontMatter(string(data))
		if err != nil {
			return nil, fmt.Errorf("persona %s: %w", path, err)
		}

		p := personas[m]
		if body != "" {
			p.Instruction = body
		}
		if fm.Title != "" {
			p.Title = fm.Title
		}
		if fm.Icon != "" {
			p.Icon = fm.Icon
		}
		personas[m] = p
		slog.Debug("persona override loaded", "mode", m, "path", path)
	}

	return &Registry{personas: personas}, nil
}

// parseFrontMatter splits an optional leading "---" YAML block from the body.
func parseFrontMatter(content string) (frontMatter, string, error) {
	var fm frontMatter
	trimmed := strings.TrimLeft(content, "\ufeff")
	lines := strings.Split(trimmed, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return fm, strings.TrimSpace(trimmed), nil
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			end = i
			break
		}
	}
	if end == -1 {
		return fm, "", fmt.Errorf("unterminated YAML front matter")
	}

	if err := yaml.Unmarshal([]byte(strings.Join(lines[1:end], "\n")), &fm); err != nil {
		return fm, "", fmt.Errorf("parse front matter: %w", err)
	}
	fm.Title = strings.TrimSpace(fm.Title)
	fm.Icon = strings.TrimSpace(fm.Icon)

	body := strings.TrimSpace(strings.Join(lines[end+1:], "\n"))
	return fm, body, nil
}
