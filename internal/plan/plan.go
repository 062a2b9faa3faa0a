// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package plan turns a raw story order into a validated StoryRequest:
// it clamps age and duration, derives the word target from read-aloud
// pace, and classifies the request into a thematic category.
package plan

import (
	"strings"

	"github.com/pdiddy/story-engine/pkg/types"
)

// Age and duration bounds for a bedtime story run.
const (
	MinAge = 5
	MaxAge = 10

	MinMinutes = 5.0
	MaxMinutes = 20.0
)

// wordsPerMinute is a calm bedtime read-aloud pace.
const wordsPerMinute = 150

// categoryKeywords maps each category to its trigger words. Matching is
// case-insensitive substring search; first category to match wins, in the
// order of categoryOrder.
var categoryKeywords = map[types.Category][]string{
	types.CategoryMedicalComfort:   {"doctor", "hospital", "nurse"},
	types.CategorySpaceAdventure:   {"space", "planet", "rocket", "star"},
	types.CategoryAnimalFriendship: {"animal", "cat", "dog", "forest", "farm"},
}

// categoryOrder fixes the priority when a request matches several keyword
// sets: a doctor visiting a farm is a medical_comfort story.
var categoryOrder = []types.Category{
	types.CategoryMedicalComfort,
	types.CategorySpaceAdventure,
	types.CategoryAnimalFriendship,
}

// WordTarget converts a read-aloud duration in minutes to a word budget,
// truncated to an integer.
func WordTarget(minutes float64) int {
	return int(minutes * wordsPerMinute)
}

// Categorize assigns a request to exactly one category. Requests matching no
// keyword set are generic.
func Categorize(request string) types.Category {
	text := strings.ToLower(request)
	for _, cat := range categoryOrder {
		for _, kw := range categoryKeywords[cat] {
			if strings.Contains(text, kw) {
				return cat
			}
		}
	}
	return types.CategoryGeneric
}

// ClampAge forces age into the supported 5-10 band.
func ClampAge(age int) int {
	if age < MinAge {
		return MinAge
	}
	if age > MaxAge {
		return MaxAge
	}
	return age
}

// ClampMinutes forces the duration into the supported 5.0-20.0 band.
func ClampMinutes(minutes float64) float64 {
	if minutes < MinMinutes {
		return MinMinutes
	}
	if minutes > MaxMinutes {
		return MaxMinutes
	}
	return minutes
}

// NewRequest builds the validated StoryRequest every downstream stage
// consumes. Out-of-range values are clamped rather than rejected; the
// operator boundary re-prompts before they normally get here.
func NewRequest(request string, age int, minutes float64) types.StoryRequest {
	age = ClampAge(age)
	minutes = ClampMinutes(minutes)

	return types.StoryRequest{
		Request:     request,
		Age:         age,
		Minutes:     minutes,
		Category:    Categorize(request),
		TargetWords: WordTarget(minutes),
	}
}
