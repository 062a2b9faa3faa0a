// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package story

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/pdiddy/story-engine/pkg/types"
)

// Metrics lists the judge's safety and quality metrics in the fixed order
// the critique must follow.
var Metrics = []string{
	"age_appropriateness",
	"violence_safety",
	"fear_safety",
	"medical_safety",
	"emotional_tone",
	"language_complexity",
	"social_safety",
	"real_world_safety",
	"sensory_safety",
	"moral_clarity",
	"ending_serenity",
	"length_match",
}

// metricDescriptions explains each metric to the judge, keyed by metric name.
var metricDescriptions = map[string]string{
	"age_appropriateness": "Is the language, theme, and content suitable for ages 5-10?",
	"violence_safety":     "No harm, danger, threats, weapons, physical conflict, or injuries.",
	"fear_safety":         "No scary imagery, dark tension, frightening creatures, or anxiety-inducing scenes.",
	"medical_safety":      "No medical advice, diagnoses, procedures, or descriptions of illness/injury.",
	"emotional_tone":      "Calm, gentle, reassuring emotional atmosphere.",
	"language_complexity": "Simple vocabulary, short sentences, concrete imagery appropriate for ages 5-10.",
	"social_safety":       "No bullying, humiliation, exclusion, stereotypes, or harmful interpersonal behavior.",
	"real_world_safety":   "No encouragement of unsafe behaviors (wandering alone at night, climbing dangerous places).",
	"sensory_safety":      "Avoids overstimulating sensory descriptions (chaos, loud noises, fast danger, flashing lights).",
	"moral_clarity":       "The story reinforces positive social-emotional lessons suitable for young children.",
	"ending_serenity":     "Ends with a peaceful, calming image appropriate for bedtime.",
	"length_match":        "Does the story roughly match the intended length (target word count, plus or minus 20%)?",
}

// generatePromptTmpl is the storyteller instruction for the first draft.
var generatePromptTmpl = template.Must(template.New("generate").Parse(`You are an expert fiction writer.

Goal:
Write a bedtime story appropriate for a child who is {{.Age}} years old (ages 5-10).

USER REQUEST:
"""{{.Request}}"""

CATEGORY: {{.Category}}

DESIRED MORAL / LESSON:
"""{{.Moral}}"""

The story should clearly embody this moral through the actions, choices,
and growth of the main character. Do not lecture; show the moral through the
story. The main character should learn the moral themselves through the challenge.

Story length requirements:
- The story should take about {{.Minutes}} minutes to read aloud.
- Aim for approximately {{.TargetWords}} words total (plus or minus 20% is okay).
- Use clear paragraphs and simple sentence structures.

Content requirements:
- Create characters and worlds that will capture the child's imagination and emotions.
- Use sensory-rich descriptions so the child can visualize the scene.
- The main character should be a child. They should be kind, curious, or brave, but not perfect. Trying is beautiful.
- The story is about the character's inner journey, not the external events.

Safety requirements:
- Keep your target audience of young children firmly in mind.
- No violence, no scary imagery, no injuries, no blood, no abuse, no self-harm, no sexual content.

Story structure requirements:
Write the story in 6 acts:

Act 1 - The Setup: introduces the main character (who they are, what they care about), where they are (setting), and what they want (desire).
Act 2 - The Inciting Incident: something small changes; something unexpected sparks curiosity or tension and gives the story momentum.
Act 3 - Rising Action: the character learns something new, meets someone helpful, or faces a challenge, growing gently along the way.
Act 4 - The Turning Point: a moment of insight, connection, or emotional discovery.
Act 5 - The Resolution: the challenge is resolved; this act gives closure and emphasizes THE MORAL OF THE STORY.
Act 6 - The Denouement (The Sleepy Landing): a peaceful landing where the world becomes quiet, the tone slows down, and the atmosphere becomes cozy, priming the child for sleep.

Write the full story now:
`))

// judgePromptTmpl is the critique instruction. It enumerates every metric by
// name and forbids rewriting the story.
var judgePromptTmpl = template.Must(template.New("judge").Parse(`You are a strict, detail-oriented safety and quality classifier for children's bedtime stories.
Your job is to evaluate whether a story is fully safe, age-appropriate, calming, and emotionally
supportive for a child who is {{.Age}} years old (between 5 and 10).

The story should take about {{.Minutes}} minutes to read aloud (~{{.TargetWords}} words).

Evaluate the story according to the following clearly-defined metrics.
For each category, provide a score from 1-10 (higher = safer / better / more appropriate).

SAFETY & QUALITY METRICS:

{{.MetricList}}
RETURN FORMAT:

A. A list of scores (1-10) for each metric in the order above.
B. A short bullet list of specific improvements to make the story:
   - clearer,
   - more soothing,
   - safer across all metrics,
   - and closer to the intended length (if needed).

Do NOT rewrite the story; only critique it.

STORY TO EVALUATE:
"""{{.Story}}"""
`))

// revisePromptTmpl is the repair instruction. The critique is binding:
// flagged content is removed wholesale and the gaps bridged.
var revisePromptTmpl = template.Must(template.New("revise").Parse(`You are a strict safety censor and story repair specialist for children's bedtime stories.

Your job is to REMOVE any unsafe, inappropriate, overstimulating, frightening,
medically inappropriate, socially harmful, or age-inappropriate content flagged
by the judge, and REWRITE the story so it is fully safe, calming, and suitable
for a child who is {{.Age}} years old (ages 5-10).

The story should be about {{.Minutes}} minutes (~{{.TargetWords}} words).

You must treat the judge feedback as authoritative safety requirements.

JUDGE FEEDBACK (must be fully addressed):
"""{{.Critique}}"""

ORIGINAL STORY:
"""{{.Story}}"""

YOUR TASK:
- Strictly censor ALL content identified as unsafe or inappropriate by the judge.
- Delete unsafe scenes entirely, not partially.
- Rewrite missing or removed sections so the story still flows smoothly and logically.
- Maintain a calm, soothing emotional tone throughout.
- Keep the story clearly appropriate for ages 5-10.
- Ensure there is:
  - NO violence or harm,
  - NO fear or frightening imagery,
  - NO unsafe real-world behaviors,
  - NO medical advice, illness, or injuries,
  - NO bullying or negative social behavior,
  - NO sensory overstimulation,
  - NO complex adult concepts.
- Replace unsafe elements with soft, gentle, friendly, or magical alternatives.
- Preserve the overall plot intent WITHOUT preserving unsafe details.
- End the story with a peaceful, comforting bedtime-appropriate moment.
- Aim for the target length (~{{.TargetWords}} words).

OUTPUT INSTRUCTIONS:
Write the FULLY REVISED STORY below, containing ONLY safe, calm,
emotionally warm content suitable for a bedtime story for ages 5-10.

Do NOT explain your changes. Do NOT include notes. ONLY output the revised story.
`))

// feedbackPromptTmpl refines the revised story per operator notes while
// re-asserting the safety constraints.
var feedbackPromptTmpl = template.Must(template.New("feedback").Parse(`You will refine a children's bedtime story based on user feedback.

Child age: {{.Age}} (between 5 and 10)
Target: {{.Minutes}} minutes (~{{.TargetWords}} words).

Current story:
"""{{.Story}}"""

User feedback:
"""{{.Feedback}}"""

Revise the story to incorporate the feedback in an age-appropriate way.
Do not add anything scary, violent, or medically inappropriate.
Keep the story approximately the same length (around {{.TargetWords}} words, plus or minus 20%).

Write the final story:
`))

// formatMinutes renders a duration with one decimal, the form every
// instruction embeds (10.0, 7.5).
func formatMinutes(minutes float64) string {
	return fmt.Sprintf("%.1f", minutes)
}

// metricList renders the numbered metric block for the judge instruction.
func metricList() string {
	var b strings.Builder
	for i, name := range Metrics {
		fmt.Fprintf(&b, "%d. %s\n   - %s\n\n", i+1, name, metricDescriptions[name])
	}
	return b.String()
}

// render executes tmpl with data and returns the instruction text.
func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering %s prompt: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

// generatePrompt builds the first-draft instruction.
func generatePrompt(req types.StoryRequest, m types.SelectedMoral) (string, error) {
	return render(generatePromptTmpl, struct {
		Age         int
		Request     string
		Category    types.Category
		Moral       string
		Minutes     string
		TargetWords int
	}{
		Age:         req.Age,
		Request:     req.Request,
		Category:    req.Category,
		Moral:       m.Text,
		Minutes:     formatMinutes(req.Minutes),
		TargetWords: req.TargetWords,
	})
}

// judgePrompt builds the critique instruction.
func judgePrompt(draft types.Draft) (string, error) {
	req := draft.Request
	return render(judgePromptTmpl, struct {
		Age         int
		Minutes     string
		TargetWords int
		MetricList  string
		Story       string
	}{
		Age:         req.Age,
		Minutes:     formatMinutes(req.Minutes),
		TargetWords: req.TargetWords,
		MetricList:  metricList(),
		Story:       draft.Text,
	})
}

// revisePrompt builds the repair instruction.
func revisePrompt(draft types.Draft, critique types.Critique) (string, error) {
	req := draft.Request
	return render(revisePromptTmpl, struct {
		Age         int
		Minutes     string
		TargetWords int
		Critique    string
		Story       string
	}{
		Age:         req.Age,
		Minutes:     formatMinutes(req.Minutes),
		TargetWords: req.TargetWords,
		Critique:    critique.Text,
		Story:       draft.Text,
	})
}

// feedbackPrompt builds the operator-refinement instruction.
func feedbackPrompt(current string, feedback string, req types.StoryRequest) (string, error) {
	return render(feedbackPromptTmpl, struct {
		Age         int
		Minutes     string
		TargetWords int
		Story       string
		Feedback    string
	}{
		Age:         req.Age,
		Minutes:     formatMinutes(req.Minutes),
		TargetWords: req.TargetWords,
		Story:       current,
		Feedback:    feedback,
	})
}
