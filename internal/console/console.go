// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package console is the operator boundary: sequential line-oriented
// prompts on the way in, titled text blocks on the way out. Numeric
// prompts re-prompt until the answer is in range, so invalid input never
// reaches the pipeline.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pdiddy/story-engine/internal/plan"
)

// Console reads operator answers from in and writes prompts and story
// blocks to out.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// New builds a Console over the given streams.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// readLine reads one trimmed line. EOF with no pending text is an error;
// interactive re-prompt loops must terminate when the input stream ends.
func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// AskAge prompts for the child's age until it parses and falls in 5-10.
func (c *Console) AskAge() (int, error) {
	for {
		fmt.Fprintf(c.out, "How old is the child? (%d-%d): ", plan.MinAge, plan.MaxAge)
		raw, err := c.readLine()
		if err != nil {
			return 0, err
		}
		age, err := strconv.Atoi(raw)
		if err != nil {
			fmt.Fprintln(c.out, "Please enter a valid number.")
			continue
		}
		if age < plan.MinAge || age > plan.MaxAge {
			fmt.Fprintf(c.out, "Please enter a number between %d and %d.\n", plan.MinAge, plan.MaxAge)
			continue
		}
		return age, nil
	}
}

// AskDuration prompts for the read-aloud duration until it parses and falls
// in 5-20 minutes. Any decimal in range is accepted.
func (c *Console) AskDuration() (float64, error) {
	for {
		fmt.Fprintf(c.out, "How long should the story be? (%.0f-%.0f minutes): ", plan.MinMinutes, plan.MaxMinutes)
		raw, err := c.readLine()
		if err != nil {
			return 0, err
		}
		minutes, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			fmt.Fprintln(c.out, "Please enter a valid number (e.g., 5, 7.5, 12, 19.2).")
			continue
		}
		if minutes < plan.MinMinutes || minutes > plan.MaxMinutes {
			fmt.Fprintf(c.out, "Please enter a number between %.0f and %.0f.\n", plan.MinMinutes, plan.MaxMinutes)
			continue
		}
		return minutes, nil
	}
}

// AskRequest prompts for the free-text story request.
func (c *Console) AskRequest() (string, error) {
	fmt.Fprint(c.out, "What kind of story would you like? ")
	return c.readLine()
}

// AskMoral prompts for the optional moral. Empty means the engine picks a
// safe moral automatically. A closed input stream counts as skipping.
func (c *Console) AskMoral() (string, error) {
	fmt.Fprint(c.out, "Optional: Is there a specific moral or lesson you want the child to learn? (Press Enter to skip): ")
	return c.readOptional()
}

// AskFeedback prompts for optional post-revision notes. A closed input
// stream counts as no changes.
func (c *Console) AskFeedback() (string, error) {
	fmt.Fprint(c.out, "\nWould you like any changes? ")
	return c.readOptional()
}

// readOptional reads a line for a skippable prompt; EOF means skipped.
func (c *Console) readOptional() (string, error) {
	raw, err := c.readLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", nil
		}
		return "", err
	}
	return raw, nil
}

// ShowBlock emits one titled text block.
func (c *Console) ShowBlock(title, body string) {
	fmt.Fprintf(c.out, "\n--- %s ---\n\n%s\n", title, body)
}
