// Package fetch downloads export documents over HTTP.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mrlokans/envport/internal/services"
)

var _ services.Fetcher = (*Client)(nil)

const (
	DefaultTimeout = 30 * time.Second
	// MaxBodySize caps a downloaded document.
	MaxBodySize = 10 << 20

	maxRetries         = 3
	initialRetryDelay  = 500 * time.Millisecond
	maxRetryDelay      = 5 * time.Second
	retryBackoffFactor = 2
)

// Client fetches text documents, retrying on rate limits and server errors.
type Client struct {
	httpClient *http.Client
	retryDelay time.Duration
}

// NewClient creates a client with the given overall request timeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		retryDelay: initialRetryDelay,
	}
}

// Get returns the body of url as text.
func (c *Client) Get(ctx context.Context, url string) (string, error) {
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(c.backoff(attempt)):
			}
		}

		body, err := c.do(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		var statusErr *StatusError
		if !errors.As(err, &statusErr) || !statusErr.Retryable() {
			return "", err
		}
	}

	return "", fmt.Errorf("max retries exceeded: %w", lastErr)
}

func (c *Client) do(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/yaml, text/plain, */*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if len(body) > MaxBodySize {
		return "", ErrBodyTooLarge
	}
	return string(body), nil
}

func (c *Client) backoff(attempt int) time.Duration {
	delay := c.retryDelay
	for i := 1; i < attempt; i++ {
		delay *= time.Duration(retryBackoffFactor)
	}
	if delay > maxRetryDelay {
		delay = maxRetryDelay
	}
	return delay
}
