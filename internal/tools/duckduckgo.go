package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	duckduckgo "github.com/cloudwego/eino-ext/components/tool/duckduckgo/v2"
	"github.com/cloudwego/eino/components/tool"
)

// DuckDuckGo is a Searcher backed by the eino-ext DuckDuckGo text search tool.
type DuckDuckGo struct {
	inner tool.InvokableTool
}

// NewDuckDuckGo creates the DuckDuckGo backend. timeout <= 0 keeps the
// library default.
func NewDuckDuckGo(ctx context.Context, timeout time.Duration) (*DuckDuckGo, error) {
	inner, err := duckduckgo.NewTextSearchTool(ctx, &duckduckgo.Config{
		ToolName:   "duckduckgo_text_search",
		ToolDesc:   "Search DuckDuckGo for text results.",
		MaxResults: MaxSearchResults,
		Timeout:    timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("duckduckgo: init: %w", err)
	}
	return &DuckDuckGo{inner: inner}, nil
}

// Search runs a text search. max bounds the number of returned hits.
func (d *DuckDuckGo) Search(ctx context.Context, query string, max int) ([]Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query is required")
	}

	args, err := json.Marshal(map[string]any{"query": query})
	if err != nil {
		return nil, err
	}
	out, err := d.inner.InvokableRun(ctx, string(args))
	if err != nil {
		return nil, err
	}

	results, err := decodeResults(out)
	if err != nil {
		return nil, err
	}
	if max > 0 && len(results) > max {
		results = results[:max]
	}
	return results, nil
}

// decodeResults accepts either {"results": [...]} or a bare array.
func decodeResults(raw string) ([]Result, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	if strings.HasPrefix(raw, "[") {
		var list []Result
		if err := json.Unmarshal([]byte(raw), &list); err != nil {
			return nil, fmt.Errorf("decode results: %w", err)
		}
		return list, nil
	}

	var wrapped struct {
		Results []Result `json:"results"`
	}
	if err := json.Unmarshal([]byte(raw), &wrapped); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}
	return wrapped.Results, nil
}

var _ Searcher = (*DuckDuckGo)(nil)
