// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/pdiddy/story-engine/pkg/types"
)

// OpenAI implements Client over the OpenAI chat-completions API.
type OpenAI struct {
	model  string
	client openai.Client
}

// NewOpenAI builds an OpenAI-backed client. The API key is required; its
// absence is a configuration error surfaced before any pipeline stage runs.
func NewOpenAI(cfg types.AIConfig) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("missing API key; set OPENAI_API_KEY")
	}
	if cfg.Model == "" {
		return nil, errors.New("model identifier is required")
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAI{
		model:  cfg.Model,
		client: openai.NewClient(opts...),
	}, nil
}

// Complete sends a single-turn user instruction and returns the model text.
func (o *OpenAI) Complete(ctx context.Context, instruction string, p types.CallParams) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(instruction),
		},
		Temperature: openai.Float(p.Temperature),
	}
	if p.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(p.MaxTokens))
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}
