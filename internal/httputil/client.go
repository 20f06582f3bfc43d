// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/paper-review/pkg/types"
)

// NewClient builds an HTTP client from the shared HTTP settings. Redirect
// following uses the default policy.
func NewClient(cfg types.HTTPConfig) *http.Client {
	return &http.Client{Timeout: cfg.Timeout}
}

// StatusError reports a non-2xx HTTP response. It carries the status code
// so callers can classify the failure without string matching.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.URL)
}

// Retryable reports whether the failure is a rate limit the caller may
// retry with backoff. Nothing in this system retries automatically; the
// marker is surfaced to the orchestrating caller.
func (e *StatusError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// Get issues a GET with the configured User-Agent and optional Accept
// header, and converts non-2xx responses into a *StatusError after
// draining the body. On success the caller owns resp.Body.
func Get(ctx context.Context, client *http.Client, url string, cfg types.HTTPConfig, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: url}
	}
	return resp, nil
}
