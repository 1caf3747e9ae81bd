// Package gemini wraps google.golang.org/genai for single-prompt text generation.
package gemini

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// DefaultModel is used when a Generator is created without a model.
const DefaultModel = "gemini-2.5-flash"

// contentGenerator is the subset of *genai.Models used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Generator produces text from the Gemini API.
type Generator struct {
	models          contentGenerator
	model           string
	maxOutputTokens int32
}

// New creates a Generator for the Gemini developer API.
func New(ctx context.Context, apiKey, model string, maxOutputTokens int32) (*Generator, error) {
	if apiKey == "" {
		return nil, eris.New("gemini: api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, eris.Wrap(err, "gemini: create client")
	}
	return newGenerator(client.Models, model, maxOutputTokens), nil
}

func newGenerator(models contentGenerator, model string, maxOutputTokens int32) *Generator {
	if model == "" {
		model = DefaultModel
	}
	return &Generator{models: models, model: model, maxOutputTokens: maxOutputTokens}
}

// Name identifies the provider in logs and API responses.
func (g *Generator) Name() string { return "gemini" }

// Generate sends prompt as one user turn and returns the response text.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
	var cfg *genai.GenerateContentConfig
	if g.maxOutputTokens > 0 {
		cfg = &genai.GenerateContentConfig{MaxOutputTokens: g.maxOutputTokens}
	}

	resp, err := g.models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return "", eris.Wrap(err, "gemini: generate content")
	}
	if resp.UsageMetadata != nil {
		zap.L().Info("gemini: usage",
			zap.String("model", g.model),
			zap.Int32("prompt_tokens", resp.UsageMetadata.PromptTokenCount),
			zap.Int32("output_tokens", resp.UsageMetadata.CandidatesTokenCount),
		)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", eris.New("gemini: empty response")
	}
	return text, nil
}
