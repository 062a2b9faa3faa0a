// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm abstracts the generative text service behind a single-method
// client so pipeline stages can be tested against canned responses.
package llm

import (
	"context"

	"github.com/pdiddy/story-engine/pkg/types"
)

// Client is the narrow contract every pipeline stage speaks: one instruction
// in, generated text out. Budget and sampling are per call, not per client.
type Client interface {
	Complete(ctx context.Context, instruction string, p types.CallParams) (string, error)
}
