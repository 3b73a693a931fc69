// Package recaptcha implements the bot-verification client (reCAPTCHA v3
// siteverify). The provider scores each token in [0,1]; deciding whether
// a score passes is the contact service's concern, not this client's.
package recaptcha

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/derob357/sisters-promise/internal/config"
)

// Result is the provider's verdict for a single token.
type Result struct {
	Success    bool     `json:"success"`
	Score      float64  `json:"score"`
	Action     string   `json:"action,omitempty"`
	Hostname   string   `json:"hostname,omitempty"`
	ErrorCodes []string `json:"error-codes,omitempty"`
}

// Client calls the siteverify endpoint.
type Client struct {
	baseURL    string
	secret     string
	httpClient *http.Client
}

// NewClient creates a verification client from configuration.
func NewClient(cfg config.RecaptchaConfig) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		secret:     cfg.Secret,
		httpClient: &http.Client{Timeout: cfg.Timeout()},
	}
}

// Verify submits a client token for scoring. remoteIP is optional; when
// present the provider uses it as an additional signal.
func (c *Client) Verify(ctx context.Context, token, remoteIP string) (*Result, error) {
	form := url.Values{}
	form.Set("secret", c.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/recaptcha/api/siteverify", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("verification API error (status %d)", resp.StatusCode)
	}

	var result Result
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parsing verification response: %w", err)
	}
	return &result, nil
}
