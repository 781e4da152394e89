package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
)

const (
	// SupportedProvider is the only search provider web_search accepts.
	SupportedProvider = "duckduckgo"
	// MaxSearchResults caps how many results are requested per query.
	MaxSearchResults = 5
)

// UnsupportedProviderMessage is returned verbatim for any provider other
// than SupportedProvider.
const UnsupportedProviderMessage = "Right now I only support the 'duckduckgo' provider."

// Result is one loosely-typed search hit. Every field is optional.
type Result map[string]any

// Searcher queries a web search backend.
type Searcher interface {
	Search(ctx context.Context, query string, max int) ([]Result, error)
}

// WebSearchTool searches the web and renders the hits as plain text.
// It never returns an error for backend failures.
type WebSearchTool struct {
	searcher Searcher
}

// NewWebSearchTool creates a web_search tool backed by searcher.
func NewWebSearchTool(searcher Searcher) *WebSearchTool {
	return &WebSearchTool{searcher: searcher}
}

// WebSearchSpec returns the model-facing description of web_search.
func WebSearchSpec() ToolSpec {
	return ToolSpec{
		Name:        "web_search",
		Description: "Search the web for current information. Returns titles, snippets, and URLs.",
		Parameters: map[string]ParamSpec{
			"query": {
				Type:        "string",
				Description: "The search query",
				Required:    true,
			},
			"provider": {
				Type:        "string",
				Description: "Search provider (default: duckduckgo)",
			},
		},
	}
}

type webSearchInput struct {
	Query    string `json:"query"`
	Provider string `json:"provider"`
}

// Info returns the tool info for Eino registration.
func (t *WebSearchTool) Info(_ context.Context) (*schema.ToolInfo, error) {
	return toolSpecToToolInfo(WebSearchSpec()), nil
}

// InvokableRun parses the arguments and runs Search.
func (t *WebSearchTool) InvokableRun(ctx context.Context, argumentsInJSON string, _ ...tool.Option) (string, error) {
	var input webSearchInput
	if err := json.Unmarshal([]byte(argumentsInJSON), &input); err != nil {
		return "", fmt.Errorf("web_search: parse input: %w", err)
	}
	return t.Search(ctx, input.Query, input.Provider), nil
}

// Search runs query against the backend and always returns a readable string.
func (t *WebSearchTool) Search(ctx context.Context, query, provider string) string {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		provider = SupportedProvider
	}
	if provider != SupportedProvider {
		slog.Debug("web_search: unsupported provider", "provider", provider)
		return UnsupportedProviderMessage
	}

	slog.Info("web_search called", "query", query)
	results, err := t.searcher.Search(ctx, query, MaxSearchResults)
	if err != nil {
		slog.Warn("web_search failed", "query", query, "error", err)
		return fmt.Sprintf("Error using DuckDuckGo: %v", err)
	}
	if len(results) == 0 {
		return fmt.Sprintf("No results found for '%s' using DuckDuckGo.", query)
	}
	return renderResults(query, results)
}

func renderResults(query string, results []Result) string {
	lines := make([]string, 0, len(results))
	for _, r := range results {
		title := r.field("title")
		if title == "" {
			title = "No title"
		}
		snippet := r.field("body", "description", "summary")
		url := r.field("href", "url")
		lines = append(lines, fmt.Sprintf("- %s\n  %s\n  %s", title, snippet, url))
	}
	return fmt.Sprintf("Top DuckDuckGo results for: %s\n\n", query) + strings.Join(lines, "\n")
}

// field returns the first non-empty string value among keys. An empty value
// counts as missing, so "No title" also covers blank titles and an empty
// body falls through to description or summary.
func (r Result) field(keys ...string) string {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			s = fmt.Sprint(v)
		}
		if s != "" {
			return s
		}
	}
	return ""
}

var _ tool.InvokableTool = (*WebSearchTool)(nil)
