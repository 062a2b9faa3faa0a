// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package story

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pdiddy/story-engine/pkg/types"
)

// recordingClient captures the instruction and params of the last call.
type recordingClient struct {
	reply       string
	err         error
	instruction string
	params      types.CallParams
}

func (r *recordingClient) Complete(_ context.Context, instruction string, p types.CallParams) (string, error) {
	r.instruction = instruction
	r.params = p
	if r.err != nil {
		return "", r.err
	}
	return r.reply, nil
}

func testRequest() types.StoryRequest {
	return types.StoryRequest{
		Request:     "a story about a brave dog",
		Age:         7,
		Minutes:     10.0,
		Category:    types.CategoryAnimalFriendship,
		TargetWords: 1500,
	}
}

func TestGenerate_InstructionContents(t *testing.T) {
	client := &recordingClient{reply: "Once upon a time..."}
	moral := types.SelectedMoral{Text: "Friends help each other and work together."}

	draft, err := Generate(context.Background(), client, types.CallParams{MaxTokens: 3000, Temperature: 0.35}, testRequest(), moral)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	wantFragments := []string{
		"7 years old",
		"10.0 minutes",
		"approximately 1500 words",
		"a story about a brave dog",
		"animal_friendship",
		"Friends help each other and work together.",
		"Act 1", "Act 2", "Act 3", "Act 4", "Act 5", "Act 6",
		"No violence",
	}
	for _, frag := range wantFragments {
		if !strings.Contains(client.instruction, frag) {
			t.Errorf("generate instruction missing %q", frag)
		}
	}

	if draft.Text != "Once upon a time..." {
		t.Errorf("draft text = %q", draft.Text)
	}
	if draft.Request != testRequest() {
		t.Error("draft does not carry its request")
	}
	if draft.Moral != moral {
		t.Error("draft does not carry its moral")
	}
	if client.params.MaxTokens != 3000 {
		t.Errorf("MaxTokens = %d, want 3000", client.params.MaxTokens)
	}
}

func TestJudge_EnumeratesAllMetrics(t *testing.T) {
	client := &recordingClient{reply: "scores"}
	draft := types.Draft{Text: "A calm story.", Request: testRequest()}

	critique, err := Judge(context.Background(), client, types.CallParams{Temperature: 0.2}, draft)
	if err != nil {
		t.Fatalf("Judge: %v", err)
	}

	if len(Metrics) != 12 {
		t.Fatalf("Metrics has %d entries, want 12", len(Metrics))
	}
	for _, m := range Metrics {
		if !strings.Contains(client.instruction, m) {
			t.Errorf("judge instruction missing metric %q", m)
		}
	}

	// Metrics must appear in their fixed order.
	last := -1
	for _, m := range Metrics {
		idx := strings.Index(client.instruction, m)
		if idx <= last {
			t.Errorf("metric %q out of order", m)
		}
		last = idx
	}

	if !strings.Contains(client.instruction, "Do NOT rewrite the story") {
		t.Error("judge instruction does not forbid rewriting")
	}
	if !strings.Contains(client.instruction, "A calm story.") {
		t.Error("judge instruction does not embed the draft")
	}
	if critique.Text != "scores" {
		t.Errorf("critique = %q", critique.Text)
	}
}

func TestRevise_InstructionContents(t *testing.T) {
	client := &recordingClient{reply: "A safer story."}
	draft := types.Draft{Text: "The dragon roared.", Request: testRequest()}
	critique := types.Critique{Text: "- remove the dragon"}

	revised, err := Revise(context.Background(), client, types.CallParams{}, draft, critique)
	if err != nil {
		t.Fatalf("Revise: %v", err)
	}

	for _, frag := range []string{
		"- remove the dragon",
		"The dragon roared.",
		"Delete unsafe scenes entirely, not partially",
		"ONLY output the revised story",
	} {
		if !strings.Contains(client.instruction, frag) {
			t.Errorf("revise instruction missing %q", frag)
		}
	}
	if revised.Text != "A safer story." {
		t.Errorf("revised text = %q", revised.Text)
	}
}

func TestApplyFeedback_InstructionContents(t *testing.T) {
	client := &recordingClient{reply: "The final story."}
	revised := types.RevisedStory{Text: "A gentle tale."}

	final, err := ApplyFeedback(context.Background(), client, types.CallParams{Temperature: 0.4}, revised, "add a lighthouse", testRequest())
	if err != nil {
		t.Fatalf("ApplyFeedback: %v", err)
	}

	for _, frag := range []string{"A gentle tale.", "add a lighthouse", "1500 words"} {
		if !strings.Contains(client.instruction, frag) {
			t.Errorf("feedback instruction missing %q", frag)
		}
	}
	if !final.FeedbackApplied {
		t.Error("FeedbackApplied = false, want true")
	}
	if final.Text != "The final story." {
		t.Errorf("final text = %q", final.Text)
	}
}

func TestStages_ServiceErrorsPropagate(t *testing.T) {
	boom := errors.New("service failure")
	client := &recordingClient{err: boom}
	req := testRequest()
	draft := types.Draft{Text: "x", Request: req}

	if _, err := Generate(context.Background(), client, types.CallParams{}, req, types.SelectedMoral{Text: "m"}); !errors.Is(err, boom) {
		t.Errorf("Generate err = %v", err)
	}
	if _, err := Judge(context.Background(), client, types.CallParams{}, draft); !errors.Is(err, boom) {
		t.Errorf("Judge err = %v", err)
	}
	if _, err := Revise(context.Background(), client, types.CallParams{}, draft, types.Critique{}); !errors.Is(err, boom) {
		t.Errorf("Revise err = %v", err)
	}
	if _, err := ApplyFeedback(context.Background(), client, types.CallParams{}, types.RevisedStory{}, "notes", req); !errors.Is(err, boom) {
		t.Errorf("ApplyFeedback err = %v", err)
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		minutes float64
		want    string
	}{
		{10, "10.0"},
		{7.5, "7.5"},
		{19.25, "19.2"},
	}
	for _, tt := range tests {
		if got := formatMinutes(tt.minutes); got != tt.want {
			t.Errorf("formatMinutes(%v) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}
