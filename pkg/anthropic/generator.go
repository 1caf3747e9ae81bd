package anthropic

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
)

// DefaultModel is used when a Generator is created without a model.
const DefaultModel = "claude-sonnet-4-5-20250929"

// Generator turns a single prompt into text through a Client.
type Generator struct {
	client    Client
	model     string
	maxTokens int64
}

// NewGenerator creates a Generator. Empty model and non-positive maxTokens
// fall back to defaults.
func NewGenerator(client Client, model string, maxTokens int64) *Generator {
	if model == "" {
		model = DefaultModel
	}
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	return &Generator{client: client, model: model, maxTokens: maxTokens}
}

// Name identifies the provider in logs and API responses.
func (g *Generator) Name() string { return "anthropic" }

// Generate sends prompt as a single user message and returns the text reply.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateMessage(ctx, MessageRequest{
		Model:     g.model,
		MaxTokens: g.maxTokens,
		Messages:  []Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}
	resp.Usage.LogCost(g.model, "blog")

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", eris.New("anthropic: empty response")
	}
	return text, nil
}
