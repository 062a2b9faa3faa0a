// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package story holds the generative stages of the pipeline: drafting,
// critique, safety-driven revision, and operator-feedback refinement.
// Each stage composes one instruction, makes one blocking service call,
// and returns the text untouched; structural and length constraints are
// enforced by the judge/revise loop, never validated programmatically.
package story

import (
	"context"
	"fmt"

	"github.com/pdiddy/story-engine/internal/llm"
	"github.com/pdiddy/story-engine/pkg/types"
)

// Generate produces the first draft for a validated request and its moral.
// Service errors propagate to the caller; there is no retry here.
func Generate(ctx context.Context, client llm.Client, p types.CallParams, req types.StoryRequest, m types.SelectedMoral) (types.Draft, error) {
	prompt, err := generatePrompt(req, m)
	if err != nil {
		return types.Draft{}, err
	}

	text, err := client.Complete(ctx, prompt, p)
	if err != nil {
		return types.Draft{}, fmt.Errorf("generating draft: %w", err)
	}

	return types.Draft{Text: text, Request: req, Moral: m}, nil
}

// Judge solicits a critique of the draft: one score per metric plus
// improvement bullets. The critique is opaque text; nothing downstream
// parses or thresholds the scores, so a low-scoring draft still proceeds
// to revision.
func Judge(ctx context.Context, client llm.Client, p types.CallParams, draft types.Draft) (types.Critique, error) {
	prompt, err := judgePrompt(draft)
	if err != nil {
		return types.Critique{}, err
	}

	text, err := client.Complete(ctx, prompt, p)
	if err != nil {
		return types.Critique{}, fmt.Errorf("judging draft: %w", err)
	}

	return types.Critique{Text: text}, nil
}

// Revise rewrites the draft with the critique treated as binding safety
// requirements. The result is a complete replacement story.
func Revise(ctx context.Context, client llm.Client, p types.CallParams, draft types.Draft, critique types.Critique) (types.RevisedStory, error) {
	prompt, err := revisePrompt(draft, critique)
	if err != nil {
		return types.RevisedStory{}, err
	}

	text, err := client.Complete(ctx, prompt, p)
	if err != nil {
		return types.RevisedStory{}, fmt.Errorf("revising draft: %w", err)
	}

	return types.RevisedStory{Text: text}, nil
}

// ApplyFeedback refines the revised story to satisfy operator notes while
// re-asserting the safety constraints and the length target. Callers must
// only invoke it with non-empty feedback; the empty-feedback branch is a
// pipeline-level no-op, not a service call.
func ApplyFeedback(ctx context.Context, client llm.Client, p types.CallParams, revised types.RevisedStory, feedback string, req types.StoryRequest) (types.FinalStory, error) {
	prompt, err := feedbackPrompt(revised.Text, feedback, req)
	if err != nil {
		return types.FinalStory{}, err
	}

	text, err := client.Complete(ctx, prompt, p)
	if err != nil {
		return types.FinalStory{}, fmt.Errorf("applying feedback: %w", err)
	}

	return types.FinalStory{Text: text, FeedbackApplied: true}, nil
}
