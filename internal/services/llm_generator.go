package services

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// ContentGenerator is the slice of the LLM provider the plan and meal
// builders need: one prompt in, one completion out.
type ContentGenerator interface {
	Complete(ctx context.Context, prompt string, jsonMode bool) (string, error)
}

// OpenRouterGenerator talks to the OpenRouter chat-completions API, which is
// OpenAI-compatible, through go-openai with a custom base URL.
type OpenRouterGenerator struct {
	client *openai.Client
	model  string
}

func NewOpenRouterGenerator(apiKey, baseURL, model string) *OpenRouterGenerator {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return &OpenRouterGenerator{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (g *OpenRouterGenerator) Complete(ctx context.Context, prompt string, jsonMode bool) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   2000,
	}
	if jsonMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: completion returned no choices", ErrUpstream)
	}
	return resp.Choices[0].Message.Content, nil
}
