// Package browserbase adapts Browserbase hosted browser sessions to the
// agent tool interface. A session is opened per call, the page is loaded by
// the hosted browser, and the returned document is reduced to readable text
// with goquery.
package browserbase

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

	"github.com/PuerkitoBio/goquery"
)

const (
	sessionsURL = "https://api.browserbase.com/v1/sessions"
	loadURL     = "https://api.browserbase.com/v1/load"
)

// Config holds the client settings.
type Config struct {
	APIKey     string
	ProjectID  string
	HTTPClient *http.Client
}

// Tool loads web pages through Browserbase and extracts their text.
type Tool struct {
	apiKey    string
	projectID string
	client    *http.Client
}

// New builds a Tool from explicit configuration.
func New(cfg Config) *Tool {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Tool{apiKey: cfg.APIKey, projectID: cfg.ProjectID, client: cfg.HTTPClient}
}

// NewFromEnv builds a Tool configured from BROWSERBASE_API_KEY and
// BROWSERBASE_PROJECT_ID. Missing values are reported when the tool is
// called.
func NewFromEnv() *Tool {
	return New(Config{
		APIKey:    os.Getenv("BROWSERBASE_API_KEY"),
		ProjectID: os.Getenv("BROWSERBASE_PROJECT_ID"),
	})
}

func (t *Tool) Name() string { return "browserbase_load" }

func (t *Tool) Description() string {
	return "Load a web page in a hosted browser. Input is a URL; output is the page's readable text."
}

// Call loads the page at the input URL in a hosted browser session. The
// page request never leaves for the target site from this process; it goes
// through the Browserbase API. Operational failures come back as diagnostic
// text rather than an error.
func (t *Tool) Call(ctx context.Context, input string) (string, error) {
	if t.apiKey == "" || t.projectID == "" {
		return "Browserbase is not configured: set BROWSERBASE_API_KEY and BROWSERBASE_PROJECT_ID in your project's .env file.", nil
	}
	target := strings.TrimSpace(input)
	if u, err := url.Parse(target); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Sprintf("%q is not a valid URL. Provide a full URL including the scheme, like https://example.com.", target), nil
	}

	sessionID, diag, err := t.openSession(ctx)
	if diag != "" || err != nil {
		return diag, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loadURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating load request: %w", err)
	}
	q := req.URL.Query()
	q.Set("url", target)
	q.Set("sessionId", sessionID)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("X-BB-API-Key", t.apiKey)

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Sprintf("Loading %s failed: %v", target, err), nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Sprintf("Browserbase could not load %s: status %d: %s", target, resp.StatusCode, strings.TrimSpace(string(body))), nil
	}

	text, err := extractText(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parsing page %s: %w", target, err)
	}
	if text == "" {
		return "The page loaded but contained no readable text.", nil
	}
	return text, nil
}

// openSession creates a Browserbase session and returns its id. API-side
// failures come back as diagnostic text.
func (t *Tool) openSession(ctx context.Context) (string, string, error) {
	payload, err := json.Marshal(map[string]string{"projectId": t.projectID})
	if err != nil {
		return "", "", fmt.Errorf("encoding session request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sessionsURL, bytes.NewReader(payload))
	if err != nil {
		return "", "", fmt.Errorf("creating session request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-BB-API-Key", t.apiKey)

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Sprintf("Browserbase request failed: %v. Try again in a moment.", err), nil
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Sprintf("Browserbase API responded with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), nil
	}

	var session struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil || session.ID == "" {
		return "", "Browserbase returned an unreadable session response. Try again in a moment.", nil
	}
	return session.ID, "", nil
}

// extractText strips scripts and styles and collapses the document body to
// whitespace-normalized lines.
func extractText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", err
	}
	doc.Find("script, style, noscript").Remove()

	var lines []string
	for _, raw := range strings.Split(doc.Find("body").Text(), "\n") {
		line := strings.Join(strings.Fields(raw), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n"), nil
}
