package llm

import "context"

// OpenAI is declared for the direct OpenAI API but not implemented; requests
// against it fail with ErrNotImplemented. Selection prefers other providers.
type OpenAI struct {
	apiKey string
}

// NewOpenAI creates the placeholder OpenAI provider.
func NewOpenAI(apiKey string) *OpenAI {
	return &OpenAI{apiKey: apiKey}
}

func (o *OpenAI) Name() string  { return "openai" }
func (o *OpenAI) Model() string { return "openai" }

func (o *OpenAI) Generate(_ context.Context, _ Request) (string, error) {
	return "", ErrNotImplemented
}

// Anthropic is declared for the Anthropic API but not implemented.
type Anthropic struct {
	apiKey string
}

// NewAnthropic creates the placeholder Anthropic provider.
func NewAnthropic(apiKey string) *Anthropic {
	return &Anthropic{apiKey: apiKey}
}

func (a *Anthropic) Name() string  { return "anthropic" }
func (a *Anthropic) Model() string { return "anthropic" }

func (a *Anthropic) Generate(_ context.Context, _ Request) (string, error) {
	return "", ErrNotImplemented
}
