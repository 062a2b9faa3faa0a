// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package moral

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"text/template"

	"github.com/pdiddy/story-engine/internal/llm"
	"github.com/pdiddy/story-engine/pkg/types"
)

// safeVerdict is the only classifier response that admits an operator moral.
// Anything else — including an empty reply or a hedged variant — fails
// closed and the moral is replaced from the pool.
const safeVerdict = "SAFE"

// classifyPromptTmpl asks the service to vet an operator-supplied moral for
// a child of the given age. The instruction demands a one-word verdict.
var classifyPromptTmpl = template.Must(template.New("classify").Parse(`You are a safety and ethics classifier for children's bedtime story morals.

A parent has requested the following moral/lesson for a story intended for a child
who is {{.Age}} years old (between 5 and 10):

MORAL:
"""{{.Moral}}"""

Your task:
- Decide if this moral is SAFE and AGE-APPROPRIATE for a 5-10 year old child.
- A safe moral should emphasize positive traits such as kindness, empathy,
  cooperation, honesty, curiosity, patience, courage, self-acceptance,
  responsibility, or gentle resilience.
- A moral is UNSAFE if it encourages harm, hatred, exclusion, bullying, cruelty,
  risky or illegal behavior, unhealthy relationships, self-blame, extreme
  self-sacrifice, or anything that could be psychologically harmful or confusing
  to a young child.

Return EXACTLY ONE WORD (no explanation):
Either:
SAFE
or
UNSAFE
`))

// Selector picks the moral a story will teach. The random source is injected
// so tests can assert deterministic pool selection.
type Selector struct {
	pool   []string
	rng    *rand.Rand
	client llm.Client
	params types.CallParams
}

// NewSelector builds a Selector over pool. The pool must be non-empty.
func NewSelector(pool []string, rng *rand.Rand, client llm.Client, params types.CallParams) (*Selector, error) {
	if len(pool) == 0 {
		return nil, errors.New("safe moral pool is empty")
	}
	if rng == nil {
		return nil, errors.New("random source is required")
	}
	if client == nil {
		return nil, errors.New("llm client is required")
	}
	return &Selector{pool: pool, rng: rng, client: client, params: params}, nil
}

// Select decides which moral guides the story. An empty operator moral draws
// uniformly from the pool. A supplied moral is submitted to the safety
// classifier and used verbatim only on an explicit SAFE verdict; any other
// verdict replaces it from the pool and retains the original for disclosure.
func (s *Selector) Select(ctx context.Context, userMoral string, age int) (types.SelectedMoral, error) {
	userMoral = strings.TrimSpace(userMoral)
	if userMoral == "" {
		return types.SelectedMoral{Text: s.randomMoral()}, nil
	}

	safe, err := s.classify(ctx, userMoral, age)
	if err != nil {
		return types.SelectedMoral{}, fmt.Errorf("classifying moral: %w", err)
	}
	if safe {
		return types.SelectedMoral{Text: userMoral}, nil
	}

	return types.SelectedMoral{
		Text:       s.randomMoral(),
		Overridden: true,
		Original:   userMoral,
	}, nil
}

// classify submits the moral to the service and interprets the verdict.
// The classifier is authoritative and fail-closed.
func (s *Selector) classify(ctx context.Context, userMoral string, age int) (bool, error) {
	var buf bytes.Buffer
	err := classifyPromptTmpl.Execute(&buf, struct {
		Age   int
		Moral string
	}{Age: age, Moral: userMoral})
	if err != nil {
		return false, fmt.Errorf("rendering prompt: %w", err)
	}

	verdict, err := s.client.Complete(ctx, buf.String(), s.params)
	if err != nil {
		return false, err
	}

	return strings.TrimSpace(verdict) == safeVerdict, nil
}

func (s *Selector) randomMoral() string {
	return s.pool[s.rng.Intn(len(s.pool))]
}
