package tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	// DefaultBraveSearchURL is the Brave Search web endpoint.
	DefaultBraveSearchURL = "https://api.search.brave.com/res/v1/web/search"

	defaultSearchResults = 5
)

// WebSearchTool queries the Brave Search API.
type WebSearchTool struct {
	apiKey   string
	endpoint string
	count    int
	client   *resty.Client
}

// WebSearchOption configures a WebSearchTool.
type WebSearchOption func(*WebSearchTool)

// WithSearchEndpoint overrides the Brave endpoint.
func WithSearchEndpoint(endpoint string) WebSearchOption {
	return func(t *WebSearchTool) { t.endpoint = endpoint }
}

// WithResultCount sets how many results are returned (1-20).
func WithResultCount(n int) WebSearchOption {
	return func(t *WebSearchTool) {
		if n > 0 && n <= 20 {
			t.count = n
		}
	}
}

// NewWebSearchTool creates a web search tool. An empty apiKey yields a tool
// that reports ErrToolNotConfigured on every call.
func NewWebSearchTool(apiKey string, opts ...WebSearchOption) *WebSearchTool {
	t := &WebSearchTool{
		apiKey:   apiKey,
		endpoint: DefaultBraveSearchURL,
		count:    defaultSearchResults,
		client: resty.New().
			SetTimeout(30*time.Second).
			SetHeader("Accept", "application/json").
			SetHeader("Accept-Language", "en-US,en;q=0.9"),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name implements Tool.
func (t *WebSearchTool) Name() string { return "web_search" }

// Description implements Tool.
func (t *WebSearchTool) Description() string {
	return "Search the web for current job market data, salaries and in-demand skills. Input: a search query"
}

// Configured reports whether an API key is set.
func (t *WebSearchTool) Configured() bool { return t.apiKey != "" }

// Invoke implements Tool.
func (t *WebSearchTool) Invoke(ctx context.Context, input string) (string, error) {
	query := strings.TrimSpace(input)
	if query == "" {
		return "", ErrEmptyInput
	}
	if !t.Configured() {
		return "", fmt.Errorf("web_search: %w: BRAVE_API_KEY is not set", ErrToolNotConfigured)
	}

	var result braveSearchResponse
	resp, err := t.client.R().
		SetContext(ctx).
		SetHeader("X-Subscription-Token", t.apiKey).
		SetQueryParam("q", query).
		SetQueryParam("count", strconv.Itoa(t.count)).
		SetResult(&result).
		Get(t.endpoint)
	if err != nil {
		return "", fmt.Errorf("search request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("search API error: %s", resp.Status())
	}

	var lines []string
	for i, r := range result.Web.Results {
		if i >= t.count {
			break
		}
		lines = append(lines, fmt.Sprintf("%d. %s\n   URL: %s\n   %s", i+1, r.Title, r.URL, r.Description))
	}
	if len(lines) == 0 {
		return "No results found.", nil
	}
	return strings.Join(lines, "\n\n"), nil
}

type braveSearchResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}
