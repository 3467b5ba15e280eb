/**
 * @description
 * This package provides a client for the internal exchange-rate service. At
 * startup the engine can pull the current rate table from it and seed the
 * conversion graph, instead of waiting for rates over the seed endpoint.
 */

package ratesclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client is a client for the exchange-rate service.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new exchange-rate service client.
func NewClient(baseURL string, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Rate is one directed exchange rate in the upstream table.
type Rate struct {
	From string  `json:"from"`
	To   string  `json:"to"`
	Rate float64 `json:"rate"`
}

type ratesResponse struct {
	Rates []Rate `json:"rates"`
}

// FetchRates retrieves the current rate table.
func (c *Client) FetchRates(ctx context.Context) ([]Rate, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("exchange-rate service base url is empty")
	}

	url := fmt.Sprintf("%s/internal/rates", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if strings.TrimSpace(c.apiKey) != "" {
		req.Header.Set("X-Internal-API-Key", strings.TrimSpace(c.apiKey))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request to exchange-rate service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("exchange-rate service returned error status %d", resp.StatusCode)
	}

	var response ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return response.Rates, nil
}
