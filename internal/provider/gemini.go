package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultGeminiBaseURL is the default Generative Language API endpoint.
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultTimeout is the default HTTP client timeout for raw-HTTP adapters.
	DefaultTimeout = 30 * time.Second

	defaultGeminiTextModel  = "gemini-1.5-flash"
	defaultGeminiImageModel = "gemini-2.0-flash"
)

// GeminiAdapter implements Adapter for the Google Gemini API. Gemini is the
// broadest vendor here: text, image, and video generation.
type GeminiAdapter struct {
	apiKey     string
	baseURL    string
	textModel  string
	httpClient *http.Client
}

// GeminiOption is a functional option for configuring GeminiAdapter.
type GeminiOption func(*GeminiAdapter)

// WithGeminiBaseURL sets a custom base URL (used by tests).
func WithGeminiBaseURL(url string) GeminiOption {
	return func(g *GeminiAdapter) {
		g.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithGeminiHTTPClient sets a custom HTTP client.
func WithGeminiHTTPClient(client *http.Client) GeminiOption {
	return func(g *GeminiAdapter) {
		g.httpClient = client
	}
}

// WithGeminiModel sets the default text model.
func WithGeminiModel(model string) GeminiOption {
	return func(g *GeminiAdapter) {
		g.textModel = model
	}
}

// NewGeminiAdapter creates a GeminiAdapter with the given API key.
func NewGeminiAdapter(apiKey string, opts ...GeminiOption) *GeminiAdapter {
	g := &GeminiAdapter{
		apiKey:    apiKey,
		baseURL:   DefaultGeminiBaseURL,
		textModel: defaultGeminiTextModel,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Name returns the vendor identifier.
func (g *GeminiAdapter) Name() Name {
	return Gemini
}

// GenerateText performs a generateContent call and returns the first
// candidate's text.
func (g *GeminiAdapter) GenerateText(ctx context.Context, prompt string, opts TextOptions) (string, error) {
	model := g.textModel
	if opts.Model != "" {
		model = opts.Model
	}

	req := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
	}
	if opts.Temperature != nil {
		req.GenerationConfig.Temperature = opts.Temperature
	}
	if opts.MaxTokens > 0 {
		req.GenerationConfig.MaxOutputTokens = &opts.MaxTokens
	}

	resp, err := g.generateContent(ctx, model, req)
	if err != nil {
		return "", err
	}

	text := resp.firstText()
	if text == "" {
		return NoResponsePlaceholder, nil
	}
	return text, nil
}

// GenerateImage asks the image-capable model to render the prompt. The API
// returns descriptive text acknowledging the generation.
func (g *GeminiAdapter) GenerateImage(ctx context.Context, prompt string, _ ImageOptions) (string, error) {
	temp := 0.8
	req := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: "Generate an image: " + prompt}}},
		},
		GenerationConfig: geminiGenerationConfig{Temperature: &temp},
	}

	resp, err := g.generateContent(ctx, defaultGeminiImageModel, req)
	if err != nil {
		return "", fmt.Errorf("gemini image generation error: %w", err)
	}

	text := resp.firstText()
	if text == "" {
		return "Image generation initiated", nil
	}
	return text, nil
}

// GenerateVideo queues a video generation. Gemini is the only video-capable
// vendor; the call acknowledges rather than returning a finished asset.
func (g *GeminiAdapter) GenerateVideo(ctx context.Context, prompt string, opts VideoOptions) (VideoResult, error) {
	req := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: fmt.Sprintf("Generate a video (%s, %s): %s", opts.AspectRatio, opts.Resolution, prompt)}}},
		},
	}

	resp, err := g.generateContent(ctx, defaultGeminiImageModel, req)
	if err != nil {
		return VideoResult{}, fmt.Errorf("gemini video generation error: %w", err)
	}

	message := resp.firstText()
	if message == "" {
		message = "Video generation initiated"
	}
	return VideoResult{
		Status:  "pending",
		Message: message,
		Type:    "provider",
	}, nil
}

// TextToSpeech is not supported by Gemini.
func (g *GeminiAdapter) TextToSpeech(_ context.Context, _, _ string, _ SpeechOptions) (string, error) {
	return "", notSupported(Gemini, "speech")
}

// IsAvailable probes the models listing endpoint. Any failure reads as
// unavailable.
func (g *GeminiAdapter) IsAvailable(ctx context.Context) bool {
	url := fmt.Sprintf("%s/models?key=%s", g.baseURL, g.apiKey)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode == http.StatusOK
}

// generateContent performs a generateContent call against the given model.
func (g *GeminiAdapter) generateContent(ctx context.Context, model string, req geminiRequest) (*geminiResponse, error) {
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, model, g.apiKey)

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal gemini request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to execute gemini request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read gemini response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var geminiErr geminiErrorResponse
		if err := json.Unmarshal(respBody, &geminiErr); err == nil && geminiErr.Error.Message != "" {
			return nil, fmt.Errorf("gemini API error [%d]: %s", resp.StatusCode, geminiErr.Error.Message)
		}
		return nil, fmt.Errorf("gemini API error [%d]: %s", resp.StatusCode, string(respBody))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal gemini response: %w", err)
	}

	return &parsed, nil
}

// ============================================================================
// Gemini API Types
// ============================================================================

// geminiRequest represents a generateContent request.
type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig,omitempty"`
}

// geminiContent represents a content block.
type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

// geminiPart represents a part of a content block.
type geminiPart struct {
	Text string `json:"text,omitempty"`
}

// geminiGenerationConfig contains generation parameters.
type geminiGenerationConfig struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	MaxOutputTokens *int     `json:"maxOutputTokens,omitempty"`
}

// geminiResponse represents a generateContent response.
type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

// geminiCandidate represents a single generated candidate.
type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason"`
}

// firstText returns the first candidate's first part text, or "".
func (r *geminiResponse) firstText() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	parts := r.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return ""
	}
	return parts[0].Text
}

// geminiErrorResponse represents an error response from the Gemini API.
type geminiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}
