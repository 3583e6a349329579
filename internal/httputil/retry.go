// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers for fetching remote resources.
package httputil

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"time"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// HTTP 429 and 503 responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

const defaultMaxRetries = 5

// StatusError reports a non-2xx response that was not retried or that was
// still failing after the last retry.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// retryable reports whether a status code is worth another attempt.
func retryable(code int) bool {
	return code == http.StatusTooManyRequests || code == http.StatusServiceUnavailable
}

// Get fetches url and returns the response body. It retries 429 and 503
// responses with exponential backoff starting at RetryBaseDelay and doubling
// each attempt. When maxRetries is 0 the default (5) is used. If ctx is
// cancelled during a backoff wait Get returns ctx.Err().
func Get(ctx context.Context, client *http.Client, url, userAgent string, maxRetries int) ([]byte, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, fmt.Errorf("GET %s: %w", url, err)
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			defer resp.Body.Close()
			body, err := io.ReadAll(resp.Body)
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", url, err)
			}
			return body, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		if !retryable(resp.StatusCode) || attempt >= maxRetries {
			return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
		}

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		slog.Debug("retrying request", "url", url, "status", resp.StatusCode,
			"backoff", backoff, "attempt", attempt+1, "max", maxRetries)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}
