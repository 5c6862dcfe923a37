// Package llm provides text generation for ticker entries.
// Providers: mock, Gemini, OpenRouter (OpenAI and Anthropic are declared but
// not implemented yet).
package llm

import (
	"context"
	"errors"

	"github.com/matchwire/matchwire/internal/models"
	"github.com/rs/zerolog/log"
)

// ErrNotImplemented is returned by declared-but-unimplemented providers.
var ErrNotImplemented = errors.New("provider not implemented")

// Request carries everything a provider needs to produce one ticker line.
type Request struct {
	Taxonomy models.Taxonomy
	Detail   string
	// Minute is 0 for pre-match events and renders as "Vor dem Spiel".
	Minute     int
	PlayerName string
	// AssistName is the assist provider, or the incoming player for
	// substitutions.
	AssistName string
	TeamName   string
	Style      models.Style
	Language   string
	// ContextData is the taxonomy-shaped payload rendered by FormatContext.
	ContextData map[string]interface{}
}

// Provider generates ticker text from a structured event.
type Provider interface {
	// Generate returns the generated text. Any failure is a generation
	// failure to the caller; providers never substitute fallback output.
	Generate(ctx context.Context, req Request) (string, error)

	// Name is the provider identifier ("mock", "gemini", ...).
	Name() string

	// Model is the identifier of the model producing the text, or "mock".
	Model() string
}

// Config holds the credentials and model overrides for provider selection.
type Config struct {
	OpenRouterAPIKey string
	OpenRouterModel  string
	GeminiAPIKey     string
	GeminiModel      string
	OpenAIAPIKey     string
	AnthropicAPIKey  string
}

// Select picks the provider for this process: openrouter > gemini > openai >
// mock, based on which credential is present. Selection happens once at
// startup; there is no per-call fallback.
func Select(cfg Config) Provider {
	switch {
	case cfg.OpenRouterAPIKey != "":
		p := NewOpenRouter(cfg.OpenRouterAPIKey, cfg.OpenRouterModel)
		log.Info().Str("provider", p.Name()).Str("model", p.Model()).Msg("LLM provider selected")
		return p
	case cfg.GeminiAPIKey != "":
		p := NewGemini(cfg.GeminiAPIKey, cfg.GeminiModel)
		log.Info().Str("provider", p.Name()).Str("model", p.Model()).Msg("LLM provider selected")
		return p
	case cfg.OpenAIAPIKey != "":
		p := NewOpenAI(cfg.OpenAIAPIKey)
		log.Info().Str("provider", p.Name()).Msg("LLM provider selected (not implemented, calls will fail)")
		return p
	default:
		log.Warn().Msg("No LLM credentials configured, running in mock mode")
		return NewMock()
	}
}
