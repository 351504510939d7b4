package provider

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultAnthropicMaxTokens = 1024

// AnthropicAdapter implements Adapter using the official Anthropic Go SDK.
// Claude is text-only: image, video, and speech fail with ErrNotSupported.
type AnthropicAdapter struct {
	client anthropic.Client
	model  anthropic.Model
}

// AnthropicOption is a functional option for configuring AnthropicAdapter.
type AnthropicOption func(*anthropicConfig)

type anthropicConfig struct {
	baseURL string
	model   string
}

// WithAnthropicBaseURL sets a custom base URL (used by tests).
func WithAnthropicBaseURL(url string) AnthropicOption {
	return func(c *anthropicConfig) {
		c.baseURL = url
	}
}

// WithAnthropicModel sets the default model.
func WithAnthropicModel(model string) AnthropicOption {
	return func(c *anthropicConfig) {
		c.model = model
	}
}

// NewAnthropicAdapter creates an AnthropicAdapter with the given API key.
func NewAnthropicAdapter(apiKey string, opts ...AnthropicOption) *AnthropicAdapter {
	cfg := anthropicConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	model := anthropic.ModelClaude_3_Haiku_20240307
	if cfg.model != "" {
		model = anthropic.Model(cfg.model)
	}

	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if cfg.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.baseURL))
	}

	return &AnthropicAdapter{
		client: anthropic.NewClient(reqOpts...),
		model:  model,
	}
}

// Name returns the vendor identifier.
func (a *AnthropicAdapter) Name() Name {
	return Anthropic
}

// GenerateText performs a messages call with the prompt as a single user
// message and returns the first text block.
func (a *AnthropicAdapter) GenerateText(ctx context.Context, prompt string, opts TextOptions) (string, error) {
	model := a.model
	if opts.Model != "" {
		model = anthropic.Model(opts.Model)
	}

	maxTokens := int64(defaultAnthropicMaxTokens)
	if opts.MaxTokens > 0 {
		maxTokens = int64(opts.MaxTokens)
	}

	params := anthropic.MessageNewParams{
		Model:     model,
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if opts.Temperature != nil {
		params.Temperature = anthropic.Float(*opts.Temperature)
	}

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic API error: %w", err)
	}

	for _, block := range msg.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok && text.Text != "" {
			return text.Text, nil
		}
	}
	return NoResponsePlaceholder, nil
}

// GenerateImage is not supported by Anthropic.
func (a *AnthropicAdapter) GenerateImage(_ context.Context, _ string, _ ImageOptions) (string, error) {
	return "", notSupported(Anthropic, "image")
}

// GenerateVideo is not supported by Anthropic.
func (a *AnthropicAdapter) GenerateVideo(_ context.Context, _ string, _ VideoOptions) (VideoResult, error) {
	return VideoResult{}, notSupported(Anthropic, "video")
}

// TextToSpeech is not supported by Anthropic.
func (a *AnthropicAdapter) TextToSpeech(_ context.Context, _, _ string, _ SpeechOptions) (string, error) {
	return "", notSupported(Anthropic, "speech")
}

// IsAvailable probes with a 1-token completion; Anthropic has no listing or
// health endpoint.
func (a *AnthropicAdapter) IsAvailable(ctx context.Context) bool {
	_, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: 1,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock("test")),
		},
	})
	return err == nil
}
