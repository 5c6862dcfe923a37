package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

const (
	geminiBaseURL      = "https://generativelanguage.googleapis.com/v1beta"
	DefaultGeminiModel = "gemini-2.0-flash-lite"
)

// Gemini generates text via the Google Generative Language API.
type Gemini struct {
	client *resty.Client
	apiKey string
	model  string
}

// NewGemini creates a Gemini provider. The API key must be present; selection
// in Select guarantees this.
func NewGemini(apiKey, model string) *Gemini {
	if model == "" {
		model = DefaultGeminiModel
	}
	return &Gemini{
		client: resty.New().
			SetBaseURL(geminiBaseURL).
			SetTimeout(30 * time.Second),
		apiKey: apiKey,
		model:  model,
	}
}

func (g *Gemini) Name() string  { return "gemini" }
func (g *Gemini) Model() string { return g.model }

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Generate builds the full prompt and issues a single generateContent call.
// No retries; any failure surfaces to the caller.
func (g *Gemini) Generate(ctx context.Context, req Request) (string, error) {
	prompt := BuildPrompt(req)

	body := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}

	log.Debug().
		Str("model", g.model).
		Str("taxonomy", string(req.Taxonomy)).
		Msg("Gemini generate")

	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("key", g.apiKey).
		SetBody(body).
		Post(fmt.Sprintf("/models/%s:generateContent", g.model))

	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("gemini API returned %d: %s", resp.StatusCode(), resp.String())
	}

	var result geminiResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse gemini response: %w", err)
	}

	if result.Error != nil {
		return "", fmt.Errorf("gemini error %d: %s", result.Error.Code, result.Error.Message)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no candidates in gemini response")
	}

	return strings.TrimSpace(result.Candidates[0].Content.Parts[0].Text), nil
}
