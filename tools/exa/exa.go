// Package exa adapts the Exa semantic search API to the agent tool
// interface.
package exa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const searchURL = "https://api.exa.ai/search"

// Config holds the client settings. Zero values fall back to sane defaults,
// except APIKey which must be set for calls to succeed.
type Config struct {
	APIKey     string
	MaxResults int
	HTTPClient *http.Client
}

// Tool is an Exa-backed web search tool.
type Tool struct {
	apiKey     string
	maxResults int
	client     *http.Client
}

// New builds a Tool from explicit configuration.
func New(cfg Config) *Tool {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 5
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Tool{
		apiKey:     cfg.APIKey,
		maxResults: cfg.MaxResults,
		client:     cfg.HTTPClient,
	}
}

// NewFromEnv builds a Tool configured from EXA_API_KEY. A missing key is
// reported when the tool is called, not here, so construction can sit in a
// composite literal.
func NewFromEnv() *Tool {
	return New(Config{APIKey: os.Getenv("EXA_API_KEY")})
}

func (t *Tool) Name() string { return "exa_search" }

func (t *Tool) Description() string {
	return "Search the web. Input is a plain-language query; output is a numbered list of results with highlights."
}

type searchRequest struct {
	Query      string          `json:"query"`
	NumResults int             `json:"numResults"`
	Type       string          `json:"type"`
	Contents   searchContents  `json:"contents"`
}

type searchContents struct {
	Highlights highlightsSpec `json:"highlights"`
}

type highlightsSpec struct {
	HighlightsPerURL int    `json:"highlightsPerUrl"`
	NumSentences     int    `json:"numSentences"`
	Query            string `json:"query"`
}

type searchResponse struct {
	Results []struct {
		Title      string   `json:"title"`
		URL        string   `json:"url"`
		Highlights []string `json:"highlights"`
	} `json:"results"`
}

// Call performs the search. Operational failures come back as diagnostic
// text rather than an error, so the agent can read them and adjust.
func (t *Tool) Call(ctx context.Context, query string) (string, error) {
	if t.apiKey == "" {
		return "Exa search is not configured: set EXA_API_KEY in your project's .env file.", nil
	}

	payload, err := json.Marshal(searchRequest{
		Query:      query,
		NumResults: t.maxResults,
		Type:       "auto",
		Contents: searchContents{
			Highlights: highlightsSpec{
				HighlightsPerURL: 3,
				NumSentences:     3,
				Query:            query,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("encoding exa request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, searchURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating exa request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", t.apiKey)

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Sprintf("Exa search failed: %v. Try again or rephrase the query.", err), nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading exa response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Sprintf("Exa API responded with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), nil
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("parsing exa response: %w", err)
	}
	return formatResults(result), nil
}

func formatResults(r searchResponse) string {
	if len(r.Results) == 0 {
		return "No results were found for your search query. Try rephrasing it."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d search results:\n\n", len(r.Results))
	for i, res := range r.Results {
		fmt.Fprintf(&b, "%d. %s\n%s\n", i+1, res.Title, res.URL)
		for _, h := range res.Highlights {
			fmt.Fprintf(&b, "   %s\n", strings.TrimSpace(h))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
