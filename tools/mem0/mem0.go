// Package mem0 adapts the Mem0 long-term memory API to the agent tool
// interface. One tool handles both directions: inputs starting with
// "remember:" are stored, anything else is treated as a search query.
package mem0

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

const (
	memoriesURL = "https://api.mem0.ai/v1/memories/"
	searchURL   = "https://api.mem0.ai/v1/memories/search/"

	rememberPrefix = "remember:"
)

// Config holds the client settings.
type Config struct {
	APIKey     string
	UserID     string
	HTTPClient *http.Client
}

// Tool is a Mem0-backed memory tool.
type Tool struct {
	apiKey string
	userID string
	client *http.Client
}

// New builds a Tool from explicit configuration.
func New(cfg Config) *Tool {
	if cfg.UserID == "" {
		cfg.UserID = "crew"
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Tool{apiKey: cfg.APIKey, userID: cfg.UserID, client: cfg.HTTPClient}
}

// NewFromEnv builds a Tool configured from MEM0_API_KEY. A missing key is
// reported when the tool is called.
func NewFromEnv() *Tool {
	return New(Config{APIKey: os.Getenv("MEM0_API_KEY")})
}

func (t *Tool) Name() string { return "mem0_memory" }

func (t *Tool) Description() string {
	return "Long-term memory. Prefix input with 'remember:' to store a fact; any other input searches stored memories."
}

// Call stores or searches memories depending on the input prefix.
// Operational failures come back as diagnostic text rather than an error.
func (t *Tool) Call(ctx context.Context, input string) (string, error) {
	if t.apiKey == "" {
		return "Mem0 is not configured: set MEM0_API_KEY in your project's .env file.", nil
	}
	if fact, ok := strings.CutPrefix(strings.TrimSpace(input), rememberPrefix); ok {
		return t.store(ctx, strings.TrimSpace(fact))
	}
	return t.search(ctx, strings.TrimSpace(input))
}

func (t *Tool) store(ctx context.Context, fact string) (string, error) {
	payload := map[string]any{
		"messages": []map[string]string{{"role": "user", "content": fact}},
		"user_id":  t.userID,
	}
	body, status, err := t.post(ctx, memoriesURL, payload)
	if err != nil {
		return "", err
	}
	if status < 200 || status >= 300 {
		return fmt.Sprintf("Mem0 API responded with status %d: %s", status, body), nil
	}
	return "Stored.", nil
}

func (t *Tool) search(ctx context.Context, query string) (string, error) {
	payload := map[string]any{
		"query":   query,
		"user_id": t.userID,
	}
	body, status, err := t.post(ctx, searchURL, payload)
	if err != nil {
		return "", err
	}
	if status < 200 || status >= 300 {
		return fmt.Sprintf("Mem0 API responded with status %d: %s", status, body), nil
	}

	var results []struct {
		Memory string  `json:"memory"`
		Score  float64 `json:"score"`
	}
	if err := json.Unmarshal([]byte(body), &results); err != nil {
		return "", fmt.Errorf("parsing mem0 response: %w", err)
	}
	if len(results) == 0 {
		return "No memories matched the query.", nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d memories:\n", len(results))
	for i, r := range results {
		fmt.Fprintf(&b, "%d. %s\n", i+1, r.Memory)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// post sends a JSON payload and returns the response body and status.
// Transport errors are returned as diagnostic text via the caller.
func (t *Tool) post(ctx context.Context, url string, payload any) (body string, status int, err error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", 0, fmt.Errorf("encoding mem0 request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", 0, fmt.Errorf("creating mem0 request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Token "+t.apiKey)

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Sprintf("request failed: %v", err), http.StatusServiceUnavailable, nil
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, fmt.Errorf("reading mem0 response: %w", err)
	}
	return strings.TrimSpace(string(raw)), resp.StatusCode, nil
}
