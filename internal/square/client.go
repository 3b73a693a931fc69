// Package square implements the upstream catalog/payments client.
//
// The client is deliberately retry-free: payment creation must not be
// replayed implicitly, and read failures surface to the caller as a
// generic upstream error. Idempotency keys keep explicit client retries
// safe.
package square

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/derob357/sisters-promise/internal/config"
)

// apiVersion pins the upstream API revision the payload shapes were
// written against.
const apiVersion = "2024-01-18"

// ErrNotFound indicates the requested catalog object does not exist
// upstream. Distinct from transport or auth failures.
var ErrNotFound = errors.New("catalog object not found")

// Client is an upstream catalog/payments API client.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

// NewClient creates a client from configuration. The outbound timeout is
// the only protection against a hung upstream; there is no retry loop.
func NewClient(cfg config.SquareConfig) *Client {
	return &Client{
		baseURL:     cfg.BaseURL,
		accessToken: cfg.AccessToken,
		httpClient:  &http.Client{Timeout: cfg.Timeout()},
	}
}

func (c *Client) doRequest(ctx context.Context, method, path string, params url.Values, payload any) ([]byte, error) {
	fullURL := c.baseURL + path
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Square-Version", apiVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var parsed errorResponse
		if json.Unmarshal(data, &parsed) == nil {
			apiErr.Errors = parsed.Errors
		}
		return nil, apiErr
	}

	return data, nil
}

// ListItems fetches the catalog listing, restricted to ITEM objects.
func (c *Client) ListItems(ctx context.Context) ([]CatalogObject, error) {
	params := url.Values{}
	params.Set("types", "ITEM")

	data, err := c.doRequest(ctx, http.MethodGet, "/v2/catalog/list", params, nil)
	if err != nil {
		return nil, fmt.Errorf("listing catalog: %w", err)
	}

	var resp listCatalogResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parsing catalog listing: %w", err)
	}
	return resp.Objects, nil
}

// GetItem fetches a single catalog object by id. Returns ErrNotFound when
// the object does not exist upstream.
func (c *Client) GetItem(ctx context.Context, id string) (*CatalogObject, error) {
	data, err := c.doRequest(ctx, http.MethodGet, "/v2/catalog/object/"+url.PathEscape(id), nil, nil)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("retrieving catalog object: %w", err)
	}

	var resp retrieveCatalogResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parsing catalog object: %w", err)
	}
	if resp.Object == nil {
		return nil, ErrNotFound
	}
	return resp.Object, nil
}

// CreatePayment submits a payment to the upstream processor.
func (c *Client) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*Payment, error) {
	data, err := c.doRequest(ctx, http.MethodPost, "/v2/payments", nil, req)
	if err != nil {
		return nil, fmt.Errorf("creating payment: %w", err)
	}

	var resp createPaymentResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parsing payment response: %w", err)
	}
	if resp.Payment == nil {
		return nil, fmt.Errorf("payment response missing payment object")
	}
	return resp.Payment, nil
}
