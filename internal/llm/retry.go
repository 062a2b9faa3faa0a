// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"errors"
	"math"
	"net/http"
	"time"

	openai "github.com/openai/openai-go"

	"github.com/pdiddy/story-engine/pkg/types"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// rate-limited calls. Tests override this to avoid real sleeps.
var RetryBaseDelay = 10 * time.Second

// WithRetry wraps client so that rate-limited calls (HTTP 429) are retried
// with exponential backoff: base, 2x, 4x, ... Any other error returns
// immediately. When maxRetries <= 0 the client is returned unwrapped and
// every failure propagates to the caller on the first attempt.
func WithRetry(client Client, maxRetries int) Client {
	if maxRetries <= 0 {
		return client
	}
	return &retryClient{inner: client, maxRetries: maxRetries}
}

type retryClient struct {
	inner      Client
	maxRetries int
}

func (r *retryClient) Complete(ctx context.Context, instruction string, p types.CallParams) (string, error) {
	for attempt := 0; ; attempt++ {
		text, err := r.inner.Complete(ctx, instruction, p)
		if err == nil {
			return text, nil
		}
		if !isRateLimited(err) || attempt >= r.maxRetries {
			return "", err
		}

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(backoff):
		}
	}
}

// isRateLimited reports whether err is an HTTP 429 from the service.
func isRateLimited(err error) bool {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		return apierr.StatusCode == http.StatusTooManyRequests
	}
	return false
}
