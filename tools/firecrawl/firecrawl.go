// Package firecrawl adapts the Firecrawl scraping API to the agent tool
// interface.
package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const scrapeURL = "https://api.firecrawl.dev/v1/scrape"

// Config holds the client settings.
type Config struct {
	APIKey     string
	HTTPClient *http.Client
}

// Tool scrapes a single page to markdown via Firecrawl.
type Tool struct {
	apiKey string
	client *http.Client
}

// New builds a Tool from explicit configuration.
func New(cfg Config) *Tool {
	if cfg.HTTPClient == nil {
		// Scrapes of slow pages routinely take longer than API calls.
		cfg.HTTPClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Tool{apiKey: cfg.APIKey, client: cfg.HTTPClient}
}

// NewFromEnv builds a Tool configured from FIRECRAWL_API_KEY. A missing key
// is reported when the tool is called.
func NewFromEnv() *Tool {
	return New(Config{APIKey: os.Getenv("FIRECRAWL_API_KEY")})
}

func (t *Tool) Name() string { return "firecrawl_scrape" }

func (t *Tool) Description() string {
	return "Scrape a web page. Input is a URL; output is the page content as markdown."
}

type scrapeResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Markdown string `json:"markdown"`
	} `json:"data"`
	Error string `json:"error"`
}

// Call scrapes the page at the input URL. Operational failures come back as
// diagnostic text rather than an error.
func (t *Tool) Call(ctx context.Context, input string) (string, error) {
	if t.apiKey == "" {
		return "Firecrawl is not configured: set FIRECRAWL_API_KEY in your project's .env file.", nil
	}
	target := strings.TrimSpace(input)
	if u, err := url.Parse(target); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Sprintf("%q is not a valid URL. Provide a full URL including the scheme, like https://example.com.", target), nil
	}

	payload, err := json.Marshal(map[string]any{
		"url":     target,
		"formats": []string{"markdown"},
	})
	if err != nil {
		return "", fmt.Errorf("encoding firecrawl request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, scrapeURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating firecrawl request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+t.apiKey)

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Sprintf("Firecrawl request failed: %v. Try again in a moment.", err), nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading firecrawl response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Sprintf("Firecrawl API responded with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), nil
	}

	var result scrapeResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("parsing firecrawl response: %w", err)
	}
	if !result.Success {
		return fmt.Sprintf("Firecrawl could not scrape %s: %s", target, result.Error), nil
	}
	if strings.TrimSpace(result.Data.Markdown) == "" {
		return "The page was scraped but produced no content.", nil
	}
	return result.Data.Markdown, nil
}
