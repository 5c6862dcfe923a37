package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

const (
	openRouterBaseURL      = "https://openrouter.ai/api/v1"
	DefaultOpenRouterModel = "google/gemini-2.0-flash-lite-001"
)

// OpenRouter generates text through the OpenRouter chat-completions endpoint,
// using the OpenAI SDK against its compatible API.
type OpenRouter struct {
	client *openai.Client
	model  string
}

// NewOpenRouter creates an OpenRouter provider.
func NewOpenRouter(apiKey, model string) *OpenRouter {
	if model == "" {
		model = DefaultOpenRouterModel
	}

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = openRouterBaseURL

	return &OpenRouter{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

func (o *OpenRouter) Name() string  { return "openrouter" }
func (o *OpenRouter) Model() string { return o.model }

// Generate builds the full prompt and issues a single chat completion. A
// ticker line is short, so the completion is capped tightly.
func (o *OpenRouter) Generate(ctx context.Context, req Request) (string, error) {
	prompt := BuildPrompt(req)

	log.Debug().
		Str("model", o.model).
		Str("taxonomy", string(req.Taxonomy)).
		Msg("OpenRouter generate")

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: 150,
	})
	if err != nil {
		return "", fmt.Errorf("openrouter chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in openrouter response")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
