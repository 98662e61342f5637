package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultAPIBaseURL = "https://api.lemonsqueezy.com"

// Client calls the billing provider's REST API for checkout sessions
// and customer portal links.
type Client struct {
	apiKey  string
	storeID string
	baseURL string
	http    *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API base URL. Used in tests.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

// NewClient creates a billing API client.
func NewClient(apiKey, storeID string, opts ...ClientOption) (*Client, error) {
	if apiKey == "" || storeID == "" {
		return nil, fmt.Errorf("billing API key and store ID are required")
	}
	c := &Client{
		apiKey:  apiKey,
		storeID: storeID,
		baseURL: defaultAPIBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// CreateCheckout creates a checkout session for the product variant and
// returns its URL. The user ID rides along as custom data so the
// webhook can attribute the subscription without an email lookup.
func (c *Client) CreateCheckout(ctx context.Context, productID, email, userID string) (string, error) {
	body := map[string]any{
		"data": map[string]any{
			"type": "checkouts",
			"attributes": map[string]any{
				"checkout_data": map[string]any{
					"email": email,
					"custom": map[string]any{
						"user_id": userID,
					},
				},
			},
			"relationships": map[string]any{
				"store": map[string]any{
					"data": map[string]any{"type": "stores", "id": c.storeID},
				},
				"variant": map[string]any{
					"data": map[string]any{"type": "variants", "id": productID},
				},
			},
		},
	}

	var resp struct {
		Data struct {
			Attributes struct {
				URL string `json:"url"`
			} `json:"attributes"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/checkouts", body, &resp); err != nil {
		return "", err
	}
	if resp.Data.Attributes.URL == "" {
		return "", fmt.Errorf("no checkout URL in provider response")
	}
	return resp.Data.Attributes.URL, nil
}

// PortalURL returns the customer portal link for a subscription.
func (c *Client) PortalURL(ctx context.Context, subscriptionID string) (string, error) {
	if subscriptionID == "" {
		return "", fmt.Errorf("no subscription on file")
	}

	var resp struct {
		Data struct {
			Attributes struct {
				URLs struct {
					CustomerPortal string `json:"customer_portal"`
				} `json:"urls"`
			} `json:"attributes"`
		} `json:"data"`
	}
	path := "/v1/subscriptions/" + subscriptionID
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return "", err
	}
	if resp.Data.Attributes.URLs.CustomerPortal == "" {
		return "", fmt.Errorf("no portal URL in provider response")
	}
	return resp.Data.Attributes.URLs.CustomerPortal, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("billing API request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read billing API response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Surface the upstream error detail when the body is JSON,
		// else fall back to status only.
		var apiErr struct {
			Errors []struct {
				Detail string `json:"detail"`
			} `json:"errors"`
		}
		if json.Unmarshal(raw, &apiErr) == nil && len(apiErr.Errors) > 0 {
			return fmt.Errorf("billing API %d: %s", resp.StatusCode, apiErr.Errors[0].Detail)
		}
		return fmt.Errorf("billing API returned status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode billing API response: %w", err)
		}
	}
	return nil
}
