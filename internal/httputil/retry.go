// Package httputil provides shared HTTP plumbing for outbound API calls.
package httputil

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// Retry bounds the attempts of an outbound request. Exponential backoff
// doubles BaseDelay per attempt, capped at MaxDelay. Only transport errors
// and 5xx responses are retried; anything the server answered below 500 is
// returned to the caller as-is.
type Retry struct {
	Attempts  int
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

// DefaultRetry matches the upstream's free-tier temperament: a couple of
// spaced-out attempts, then give up.
var DefaultRetry = Retry{
	Attempts:  3,
	BaseDelay: 2 * time.Second,
	MaxDelay:  10 * time.Second,
}

// Do runs the request built by build through client under the retry policy.
// build is invoked once per attempt so request bodies are never reused.
func (r Retry) Do(ctx context.Context, client *http.Client, build func() (*http.Request, error)) (*http.Response, error) {
	attempts := r.Attempts
	if attempts <= 0 {
		attempts = DefaultRetry.Attempts
	}

	delay := r.BaseDelay
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		req, err := build()
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}

		resp, err := client.Do(req)
		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}

		if err != nil {
			lastErr = err
		} else {
			snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d: %s", resp.StatusCode, snippet)
		}

		if attempt == attempts {
			break
		}
		log.Printf("[WARN] request attempt %d/%d failed: %v, retrying in %v", attempt, attempts, lastErr, delay)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}

		delay *= 2
		if delay > r.MaxDelay && r.MaxDelay > 0 {
			delay = r.MaxDelay
		}
	}

	return nil, fmt.Errorf("%d attempts failed, last: %w", attempts, lastErr)
}
