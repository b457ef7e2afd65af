package provider

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"time"
)

var (
	// ErrNotFound means the provider has no data for the requested asset.
	ErrNotFound = errors.New("provider: asset not found")
	// ErrUnavailable covers upstream outages and exhausted retries.
	ErrUnavailable = errors.New("provider: upstream unavailable")
)

var (
	retryBaseDelay = time.Second
	retryMaxDelay  = 10 * time.Second
)

// doWithRetries issues the request with exponential backoff and jitter.
// 429 and 5xx responses retry; other statuses return to the caller as-is.
// The caller owns the final response body.
func doWithRetries(ctx context.Context, client *http.Client, build func() (*http.Request, error), maxRetries int) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay := retryBaseDelay << (attempt - 1)
			if delay > retryMaxDelay {
				delay = retryMaxDelay
			}
			delay += time.Duration(rand.Int63n(int64(delay)/10 + 1))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		req, err := build()
		if err != nil {
			return nil, err
		}
		resp, err := client.Do(req.WithContext(ctx))
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			continue
		}
		return resp, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
}
