// Package payman adapts the Payman payments API to the agent tool
// interface. The tool multiplexes the API's operations behind prefixed
// inputs: "balance", "payees <query>", and a JSON payment object.
package payman

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
	productionBaseURL = "https://agent.payman.ai/api"
	sandboxBaseURL    = "https://agent-sandbox.payman.ai/api"
)

// Config holds the client settings.
type Config struct {
	APISecret   string
	Environment string // "sandbox" (default) or "production"
	HTTPClient  *http.Client
}

// Tool sends payments and queries payees and balances via Payman.
type Tool struct {
	apiSecret string
	baseURL   string
	client    *http.Client
}

// New builds a Tool from explicit configuration.
func New(cfg Config) *Tool {
	base := sandboxBaseURL
	if strings.EqualFold(cfg.Environment, "production") {
		base = productionBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Tool{apiSecret: cfg.APISecret, baseURL: base, client: cfg.HTTPClient}
}

// NewFromEnv builds a Tool configured from PAYMAN_API_SECRET and
// PAYMAN_ENVIRONMENT. A missing secret is reported when the tool is called.
func NewFromEnv() *Tool {
	return New(Config{
		APISecret:   os.Getenv("PAYMAN_API_SECRET"),
		Environment: os.Getenv("PAYMAN_ENVIRONMENT"),
	})
}

func (t *Tool) Name() string { return "payman" }

func (t *Tool) Description() string {
	return "Payments. Input 'balance' returns the spendable balance; 'payees <query>' searches payees; " +
		`a JSON object like {"amountDecimal": 10.5, "payeeId": "...", "memo": "..."} sends a payment.`
}

// payment mirrors the send-payment request body.
type payment struct {
	AmountDecimal float64 `json:"amountDecimal"`
	PayeeID       string  `json:"payeeId"`
	Memo          string  `json:"memo,omitempty"`
}

// Call dispatches on the input form. Operational failures come back as
// diagnostic text rather than an error.
func (t *Tool) Call(ctx context.Context, input string) (string, error) {
	if t.apiSecret == "" {
		return "Payman is not configured: set PAYMAN_API_SECRET in your project's .env file.", nil
	}

	in := strings.TrimSpace(input)
	switch {
	case strings.EqualFold(in, "balance"):
		return t.request(ctx, http.MethodGet, "/balances/currencies/USD", nil)
	case strings.HasPrefix(strings.ToLower(in), "payees"):
		query := strings.TrimSpace(strings.TrimPrefix(in, "payees"))
		path := "/payments/search-payees"
		if query != "" {
			path += "?name=" + query
		}
		return t.request(ctx, http.MethodGet, path, nil)
	case strings.HasPrefix(in, "{"):
		var p payment
		if err := json.Unmarshal([]byte(in), &p); err != nil {
			return fmt.Sprintf("Could not parse the payment JSON: %v", err), nil
		}
		if p.AmountDecimal <= 0 || p.PayeeID == "" {
			return "A payment needs a positive amountDecimal and a payeeId.", nil
		}
		return t.request(ctx, http.MethodPost, "/payments/send-payment", p)
	default:
		return "Unrecognized input. Use 'balance', 'payees <query>', or a JSON payment object.", nil
	}
}

func (t *Tool) request(ctx context.Context, method, path string, payload any) (string, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return "", fmt.Errorf("encoding payman request: %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, body)
	if err != nil {
		return "", fmt.Errorf("creating payman request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-payman-api-secret", t.apiSecret)

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Sprintf("Payman request failed: %v. Try again in a moment.", err), nil
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading payman response: %w", err)
	}
	text := strings.TrimSpace(string(raw))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Sprintf("Payman API responded with status %d: %s", resp.StatusCode, text), nil
	}
	return text, nil
}
