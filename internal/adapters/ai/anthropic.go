// Package ai adapts remote model providers to the domain Generator port.
package ai

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
)

var _ domain.Generator = (*AnthropicGenerator)(nil)

const defaultMaxTokens = 1024

// AnthropicGenerator sends one user turn per request to the Messages API.
type AnthropicGenerator struct {
	client anthropic.Client
	model  string
}

func NewAnthropicGenerator(apiKey, model string, opts ...option.RequestOption) *AnthropicGenerator {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &AnthropicGenerator{
		client: anthropic.NewClient(opts...),
		model:  model,
	}
}

func (g *AnthropicGenerator) Generate(ctx context.Context, req domain.GenerateRequest) (*domain.GenerateResponse, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	var blocks []anthropic.ContentBlockParamUnion
	if req.Image != nil {
		blocks = append(blocks, anthropic.NewImageBlockBase64(req.Image.MediaType, req.Image.Data))
	}
	blocks = append(blocks, anthropic.NewTextBlock(req.Prompt))

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: int64(maxTokens),
		Messages:  []anthropic.MessageParam{anthropic.NewUserMessage(blocks...)},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	msg, err := g.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic messages: %w", err)
	}

	resp := &domain.GenerateResponse{
		Model:   string(msg.Model),
		Content: make([]domain.ContentBlock, 0, len(msg.Content)),
	}
	for _, block := range msg.Content {
		resp.Content = append(resp.Content, domain.ContentBlock{Type: block.Type, Text: block.Text})
	}
	return resp, nil
}
