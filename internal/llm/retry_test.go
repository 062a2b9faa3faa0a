// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/story-engine/pkg/types"
)

func init() {
	// Use a tiny base delay so tests finish quickly.
	RetryBaseDelay = 1 * time.Millisecond
}

// rateLimitErr builds the service error shape for an HTTP 429.
func rateLimitErr() error {
	return &openai.Error{StatusCode: http.StatusTooManyRequests}
}

// scriptedClient returns the queued errors in order, then succeeds.
type scriptedClient struct {
	errs  []error
	calls int
}

func (s *scriptedClient) Complete(_ context.Context, _ string, _ types.CallParams) (string, error) {
	s.calls++
	if len(s.errs) > 0 {
		err := s.errs[0]
		s.errs = s.errs[1:]
		return "", err
	}
	return "ok", nil
}

func TestWithRetry_ImmediateSuccess(t *testing.T) {
	inner := &scriptedClient{}
	client := WithRetry(inner, 5)

	text, err := client.Complete(context.Background(), "hi", types.CallParams{})
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Equal(t, 1, inner.calls)
}

func TestWithRetry_RetriesThenSucceeds(t *testing.T) {
	inner := &scriptedClient{errs: []error{rateLimitErr(), rateLimitErr()}}
	client := WithRetry(inner, 5)

	text, err := client.Complete(context.Background(), "hi", types.CallParams{})
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Equal(t, 3, inner.calls)
}

func TestWithRetry_ExhaustsRetries(t *testing.T) {
	inner := &scriptedClient{errs: []error{
		rateLimitErr(), rateLimitErr(), rateLimitErr(), rateLimitErr(),
	}}
	client := WithRetry(inner, 3)

	_, err := client.Complete(context.Background(), "hi", types.CallParams{})
	require.Error(t, err)
	// 1 initial + 3 retries = 4 total calls.
	assert.Equal(t, 4, inner.calls)
}

func TestWithRetry_ZeroRetriesUnwrapped(t *testing.T) {
	inner := &scriptedClient{errs: []error{rateLimitErr()}}
	client := WithRetry(inner, 0)

	// The failure must surface on the first attempt.
	_, err := client.Complete(context.Background(), "hi", types.CallParams{})
	require.Error(t, err)
	assert.Equal(t, 1, inner.calls)
	assert.Same(t, Client(inner), client)
}

func TestWithRetry_OtherErrorsPassThrough(t *testing.T) {
	boom := errors.New("boom")
	inner := &scriptedClient{errs: []error{boom}}
	client := WithRetry(inner, 5)

	_, err := client.Complete(context.Background(), "hi", types.CallParams{})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, inner.calls)
}

func TestWithRetry_ContextCancelled(t *testing.T) {
	old := RetryBaseDelay
	RetryBaseDelay = 500 * time.Millisecond
	defer func() { RetryBaseDelay = old }()

	inner := &scriptedClient{errs: []error{rateLimitErr(), rateLimitErr()}}
	client := WithRetry(inner, 5)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Complete(ctx, "hi", types.CallParams{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
