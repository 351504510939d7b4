package provider

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const defaultOpenAIModel = "gpt-3.5-turbo"

// OpenAIAdapter implements Adapter using the official OpenAI Go SDK.
// Text via chat completions, images via DALL-E 3.
type OpenAIAdapter struct {
	client openai.Client
	model  string
}

// OpenAIOption is a functional option for configuring OpenAIAdapter.
type OpenAIOption func(*openAIConfig)

type openAIConfig struct {
	baseURL string
	model   string
}

// WithOpenAIBaseURL sets a custom base URL (used by tests).
func WithOpenAIBaseURL(url string) OpenAIOption {
	return func(c *openAIConfig) {
		c.baseURL = url
	}
}

// WithOpenAIModel sets the default chat model.
func WithOpenAIModel(model string) OpenAIOption {
	return func(c *openAIConfig) {
		c.model = model
	}
}

// NewOpenAIAdapter creates an OpenAIAdapter with the given API key.
func NewOpenAIAdapter(apiKey string, opts ...OpenAIOption) *OpenAIAdapter {
	cfg := openAIConfig{model: defaultOpenAIModel}
	for _, opt := range opts {
		opt(&cfg)
	}

	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if cfg.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.baseURL))
	}

	return &OpenAIAdapter{
		client: openai.NewClient(reqOpts...),
		model:  cfg.model,
	}
}

// Name returns the vendor identifier.
func (o *OpenAIAdapter) Name() Name {
	return OpenAI
}

// GenerateText performs a chat completion with the prompt as a single user
// message.
func (o *OpenAIAdapter) GenerateText(ctx context.Context, prompt string, opts TextOptions) (string, error) {
	model := o.model
	if opts.Model != "" {
		model = opts.Model
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	}
	if opts.Temperature != nil {
		params.Temperature = openai.Float(*opts.Temperature)
	}
	if opts.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(opts.MaxTokens))
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return NoResponsePlaceholder, nil
	}
	return resp.Choices[0].Message.Content, nil
}

// GenerateImage generates an image with DALL-E 3 and returns its URL.
func (o *OpenAIAdapter) GenerateImage(ctx context.Context, prompt string, opts ImageOptions) (string, error) {
	params := openai.ImageGenerateParams{
		Model:   openai.ImageModelDallE3,
		Prompt:  prompt,
		Size:    mapImageSize(opts.Size),
		Quality: mapImageQuality(opts.Quality),
		N:       openai.Int(1),
	}

	resp, err := o.client.Images.Generate(ctx, params)
	if err != nil {
		return "", fmt.Errorf("dall-e error: %w", err)
	}

	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "Image generation failed", nil
	}
	return resp.Data[0].URL, nil
}

// GenerateVideo is not supported by OpenAI.
func (o *OpenAIAdapter) GenerateVideo(_ context.Context, _ string, _ VideoOptions) (VideoResult, error) {
	return VideoResult{}, notSupported(OpenAI, "video")
}

// TextToSpeech is not supported; ElevenLabs is the designated TTS vendor.
func (o *OpenAIAdapter) TextToSpeech(_ context.Context, _, _ string, _ SpeechOptions) (string, error) {
	return "", notSupported(OpenAI, "speech")
}

// IsAvailable probes the models listing endpoint.
func (o *OpenAIAdapter) IsAvailable(ctx context.Context) bool {
	_, err := o.client.Models.List(ctx)
	return err == nil
}

// mapImageSize converts a "WIDTHxHEIGHT" string to the SDK size enum.
// DALL-E 3 only accepts 1024x1024 and the two 1792 variants, so anything
// else falls back to the square default.
func mapImageSize(size string) openai.ImageGenerateParamsSize {
	switch size {
	case "1792x1024":
		return openai.ImageGenerateParamsSize1792x1024
	case "1024x1792":
		return openai.ImageGenerateParamsSize1024x1792
	default:
		return openai.ImageGenerateParamsSize1024x1024
	}
}

// mapImageQuality converts a quality tier to the SDK quality enum.
func mapImageQuality(quality string) openai.ImageGenerateParamsQuality {
	if quality == "hd" {
		return openai.ImageGenerateParamsQualityHD
	}
	return openai.ImageGenerateParamsQualityStandard
}
