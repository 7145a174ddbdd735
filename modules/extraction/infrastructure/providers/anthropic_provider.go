package providers

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// extractMaxTokens is the fixed token budget for an extraction call (§4.C).
const extractMaxTokens = 4096

// AnthropicExtractorProvider implements the real ExtractorProvider: one
// message, no streaming, no tools — the response is expected to be (or be
// salvageable into) a single JSON object.
type AnthropicExtractorProvider struct {
	client *anthropic.Client
	model  string
}

func NewAnthropicExtractorProvider(apiKey string) *AnthropicExtractorProvider {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicExtractorProvider{
		client: &client,
		model:  "claude-3-5-sonnet-latest",
	}
}

func (p *AnthropicExtractorProvider) Extract(ctx context.Context, promptPrefix, transcript string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: extractMaxTokens,
		System:    []anthropic.TextBlockParam{{Text: promptPrefix}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(transcript)),
		},
	}

	message, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic extraction failed: %w", err)
	}

	var text string
	for _, block := range message.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	return text, nil
}
