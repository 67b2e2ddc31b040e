package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Client is a shared HTTP client for provider calls with a politeness
// rate limit across all outbound requests.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient constructs a Client. rps bounds outbound requests per
// second; zero or negative disables limiting.
func NewClient(timeout time.Duration, rps float64) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    limiter,
	}
}

// GetJSON issues a GET and decodes the JSON response into v.
func (c *Client) GetJSON(ctx context.Context, url string, headers map[string]string, v any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("feed: rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("feed: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, val := range headers {
		req.Header.Set(k, val)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("feed: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("feed: %s returned %d: %s", url, resp.StatusCode, string(data))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("feed: decode response: %w", err)
	}
	return nil
}
