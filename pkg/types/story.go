// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Category classifies a story request into a fixed thematic bucket.
type Category string

const (
	CategoryMedicalComfort   Category = "medical_comfort"
	CategorySpaceAdventure   Category = "space_adventure"
	CategoryAnimalFriendship Category = "animal_friendship"
	CategoryGeneric          Category = "generic"
)

// StoryRequest is a validated story order: the free-text request plus the
// derived category and word target. Age is clamped to 5-10 and Minutes to
// 5.0-20.0 before any pipeline stage sees the value.
type StoryRequest struct {
	// Request is the operator's free-text description of the story.
	Request string `json:"request" yaml:"request"`

	// Age is the child's age in years (5-10 inclusive).
	Age int `json:"age" yaml:"age"`

	// Minutes is the desired read-aloud duration (5.0-20.0 inclusive).
	Minutes float64 `json:"minutes" yaml:"minutes"`

	// Category is derived from Request by keyword matching.
	Category Category `json:"category" yaml:"category"`

	// TargetWords is the word budget derived from Minutes at a calm
	// read-aloud pace.
	TargetWords int `json:"target_words" yaml:"target_words"`
}

// SelectedMoral is the lesson the story must convey. When the operator's
// requested moral fails safety review it is replaced from the safe pool and
// the original retained for disclosure.
type SelectedMoral struct {
	// Text is the moral actually guiding the story.
	Text string `json:"text" yaml:"text"`

	// Overridden reports whether the operator's moral was rejected.
	Overridden bool `json:"overridden" yaml:"overridden"`

	// Original is the rejected operator moral; empty unless Overridden.
	Original string `json:"original,omitempty" yaml:"original,omitempty"`
}

// Draft is the first complete story text together with the inputs that
// produced it. Drafts are superseded by revision, never edited.
type Draft struct {
	Text    string        `json:"text" yaml:"text"`
	Request StoryRequest  `json:"request" yaml:"request"`
	Moral   SelectedMoral `json:"moral" yaml:"moral"`
}

// Critique is the judge's free-text review of a draft: twelve named metric
// scores by convention, plus improvement bullets. It is never parsed; the
// whole text feeds the revision instruction.
type Critique struct {
	Text string `json:"text" yaml:"text"`
}

// RevisedStory is the rewrite produced from a draft and its critique. It is
// the pipeline's default output.
type RevisedStory struct {
	Text string `json:"text" yaml:"text"`
}

// FinalStory is the pipeline output: the revised story, further refined when
// the operator supplied feedback.
type FinalStory struct {
	Text string `json:"text" yaml:"text"`

	// FeedbackApplied reports whether an operator feedback pass ran.
	FeedbackApplied bool `json:"feedback_applied" yaml:"feedback_applied"`
}

// Stage tracks pipeline progress. Transitions are forward-only:
// Unstarted -> Drafted -> Judged -> Revised -> Finalized.
type Stage int

const (
	StageUnstarted Stage = iota
	StageDrafted
	StageJudged
	StageRevised
	StageFinalized
)

func (s Stage) String() string {
	switch s {
	case StageDrafted:
		return "drafted"
	case StageJudged:
		return "judged"
	case StageRevised:
		return "revised"
	case StageFinalized:
		return "finalized"
	default:
		return "unstarted"
	}
}
