// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the story workflow end to end: moral selection,
// drafting, critique, safety revision, and the optional operator feedback
// pass. Execution is strictly sequential; every stage blocks on its
// service call and no stage re-runs. Cancellation is whatever the caller's
// context carries; there is no graceful shutdown beyond that.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/story-engine/internal/llm"
	"github.com/pdiddy/story-engine/internal/moral"
	"github.com/pdiddy/story-engine/internal/story"
	"github.com/pdiddy/story-engine/pkg/types"
)

// Interactor is the operator boundary the pipeline talks to mid-run:
// sequential output blocks, plus the single post-revision feedback prompt.
type Interactor interface {
	// ShowBlock emits one titled text block to the operator.
	ShowBlock(title, body string)

	// AskFeedback collects optional post-revision notes. Empty means the
	// revised story is accepted as final.
	AskFeedback() (string, error)
}

// Result carries every intermediate and final artifact of one run.
type Result struct {
	Request  types.StoryRequest
	Moral    types.SelectedMoral
	Draft    types.Draft
	Critique types.Critique
	Revised  types.RevisedStory
	Final    types.FinalStory

	// Stage is the last state reached; Finalized on success.
	Stage types.Stage
}

// Pipeline wires the stages to one service client and one parameter table.
type Pipeline struct {
	client   llm.Client
	selector *moral.Selector
	params   types.StageParams
}

// New builds a Pipeline. The selector owns the safe moral pool and the
// injected random source.
func New(client llm.Client, selector *moral.Selector, params types.StageParams) (*Pipeline, error) {
	if client == nil {
		return nil, errors.New("llm client is required")
	}
	if selector == nil {
		return nil, errors.New("moral selector is required")
	}
	return &Pipeline{client: client, selector: selector, params: params}, nil
}

// Run executes one story request to completion. Each transition is a
// one-shot forward move (Unstarted -> Drafted -> Judged -> Revised ->
// Finalized); there is exactly one judge->revise cycle and at most one
// feedback cycle. Service errors abort the run and surface to the caller
// with the partial Result's Stage marking how far it got.
func (p *Pipeline) Run(ctx context.Context, req types.StoryRequest, userMoral string, ux Interactor) (*Result, error) {
	res := &Result{Request: req, Stage: types.StageUnstarted}

	selected, err := p.selector.Select(ctx, userMoral, req.Age)
	if err != nil {
		return res, fmt.Errorf("selecting moral: %w", err)
	}
	res.Moral = selected

	if selected.Overridden {
		ux.ShowBlock("DISCLAIMER", fmt.Sprintf(
			"The requested moral/lesson was deemed unsafe or inappropriate for ages 5-10.\n"+
				"A safe, age-appropriate moral was selected at random instead.\n"+
				"Original requested moral: %q\n"+
				"Using safe moral instead: %q", selected.Original, selected.Text))
	} else {
		ux.ShowBlock("MORAL", fmt.Sprintf("Using moral: %q", selected.Text))
	}

	draft, err := story.Generate(ctx, p.client, p.params.Generate, req, selected)
	if err != nil {
		return res, err
	}
	res.Draft = draft
	res.Stage = types.StageDrafted
	ux.ShowBlock("FIRST DRAFT", draft.Text)

	critique, err := story.Judge(ctx, p.client, p.params.Judge, draft)
	if err != nil {
		return res, err
	}
	res.Critique = critique
	res.Stage = types.StageJudged
	ux.ShowBlock("SAFETY CLASSIFIER FEEDBACK", critique.Text)

	revised, err := story.Revise(ctx, p.client, p.params.Revise, draft, critique)
	if err != nil {
		return res, err
	}
	res.Revised = revised
	res.Stage = types.StageRevised
	ux.ShowBlock("REVISED STORY", revised.Text)

	feedback, err := ux.AskFeedback()
	if err != nil {
		return res, fmt.Errorf("reading feedback: %w", err)
	}

	if strings.TrimSpace(feedback) == "" {
		// No feedback: the revised story is final, with no service call.
		res.Final = types.FinalStory{Text: revised.Text}
	} else {
		final, err := story.ApplyFeedback(ctx, p.client, p.params.Feedback, revised, feedback, req)
		if err != nil {
			return res, err
		}
		res.Final = final
	}
	res.Stage = types.StageFinalized
	ux.ShowBlock("FINAL STORY", res.Final.Text)

	return res, nil
}
