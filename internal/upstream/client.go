package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultHTTPTimeout = 10 * time.Second

// authHeader carries the provider API key on every outbound call.
const authHeader = "x-apisports-key"

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config controls how the client reaches the upstream APIs.
type Config struct {
	APIKey     string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client performs authenticated, cache-bypassing GETs against the
// sport upstreams and decodes the JSON body. It never retries; retry
// policy belongs to the dispatcher, which knows why a call is retried.
type Client struct {
	apiKey     string
	httpClient httpDoer
}

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		apiKey:     cfg.APIKey,
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
	}
}

// FetchJSON fetches the URL and returns the decoded payload. A missing
// API key fails before any network call; non-2xx responses surface as
// *StatusError (or *RateLimitError for 429).
func (c *Client) FetchJSON(ctx context.Context, rawURL string) (any, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(authHeader, c.apiKey)
	// The data is time-sensitive; no intermediary may serve a cached copy.
	req.Header.Set("Cache-Control", "no-store, no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		msg := strings.TrimSpace(string(body))
		if resp.StatusCode == http.StatusTooManyRequests {
			return nil, &RateLimitError{
				StatusCode: resp.StatusCode,
				RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
				Message:    msg,
			}
		}
		return nil, &StatusError{Code: resp.StatusCode, Body: msg}
	}

	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("upstream: decoding response: %w", err)
	}
	return payload, nil
}

func resolveHTTPClient(client *http.Client, timeout time.Duration) httpDoer {
	if client != nil {
		return client
	}
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &http.Client{Timeout: timeout}
}

func parseRetryAfter(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	var seconds int
	if _, err := fmt.Sscanf(raw, "%d", &seconds); err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
