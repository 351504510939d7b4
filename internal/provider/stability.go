package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

const (
	// DefaultStabilityBaseURL is the default Stability AI endpoint.
	DefaultStabilityBaseURL = "https://api.stability.ai/v1"

	stabilityEngine       = "stable-diffusion-v1-6"
	defaultStabilityEdge  = 768
	defaultStabilitySteps = 30
	defaultStabilityCfg   = 7
)

// StabilityAdapter implements Adapter for the Stability AI image API.
// Image generation only.
type StabilityAdapter struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// StabilityOption is a functional option for configuring StabilityAdapter.
type StabilityOption func(*StabilityAdapter)

// WithStabilityBaseURL sets a custom base URL (used by tests).
func WithStabilityBaseURL(url string) StabilityOption {
	return func(s *StabilityAdapter) {
		s.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithStabilityHTTPClient sets a custom HTTP client.
func WithStabilityHTTPClient(client *http.Client) StabilityOption {
	return func(s *StabilityAdapter) {
		s.httpClient = client
	}
}

// NewStabilityAdapter creates a StabilityAdapter with the given API key.
func NewStabilityAdapter(apiKey string, opts ...StabilityOption) *StabilityAdapter {
	s := &StabilityAdapter{
		apiKey:  apiKey,
		baseURL: DefaultStabilityBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the vendor identifier.
func (s *StabilityAdapter) Name() Name {
	return Stability
}

// GenerateText is not supported by Stability AI.
func (s *StabilityAdapter) GenerateText(_ context.Context, _ string, _ TextOptions) (string, error) {
	return "", notSupported(Stability, "text")
}

// GenerateImage performs a text-to-image call against the stable-diffusion
// engine and returns an acknowledgement string.
func (s *StabilityAdapter) GenerateImage(ctx context.Context, prompt string, opts ImageOptions) (string, error) {
	width, height := parseImageSize(opts.Size)

	payload := stabilityRequest{
		TextPrompts: []stabilityPrompt{{Text: prompt, Weight: 1}},
		CfgScale:    defaultStabilityCfg,
		Height:      height,
		Width:       width,
		Steps:       defaultStabilitySteps,
		Samples:     1,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal stability request: %w", err)
	}

	url := fmt.Sprintf("%s/generation/%s/text-to-image", s.baseURL, stabilityEngine)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create http request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("stability AI error: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read stability response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("stability API error [%d]: %s", resp.StatusCode, string(respBody))
	}

	return "Image generated successfully", nil
}

// GenerateVideo is not supported by Stability AI.
func (s *StabilityAdapter) GenerateVideo(_ context.Context, _ string, _ VideoOptions) (VideoResult, error) {
	return VideoResult{}, notSupported(Stability, "video")
}

// TextToSpeech is not supported by Stability AI.
func (s *StabilityAdapter) TextToSpeech(_ context.Context, _, _ string, _ SpeechOptions) (string, error) {
	return "", notSupported(Stability, "speech")
}

// IsAvailable probes the account endpoint.
func (s *StabilityAdapter) IsAvailable(ctx context.Context) bool {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/user/account", nil)
	if err != nil {
		return false
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode == http.StatusOK
}

// parseImageSize parses "WIDTHxHEIGHT" into dimensions, falling back to the
// engine default square when the string is absent or malformed.
func parseImageSize(size string) (width, height int) {
	parts := strings.SplitN(size, "x", 2)
	if len(parts) != 2 {
		return defaultStabilityEdge, defaultStabilityEdge
	}

	w, errW := strconv.Atoi(parts[0])
	h, errH := strconv.Atoi(parts[1])
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return defaultStabilityEdge, defaultStabilityEdge
	}
	return w, h
}

// stabilityRequest represents a text-to-image request.
type stabilityRequest struct {
	TextPrompts []stabilityPrompt `json:"text_prompts"`
	CfgScale    int               `json:"cfg_scale"`
	Height      int               `json:"height"`
	Width       int               `json:"width"`
	Steps       int               `json:"steps"`
	Samples     int               `json:"samples"`
}

// stabilityPrompt is a weighted text prompt.
type stabilityPrompt struct {
	Text   string  `json:"text"`
	Weight float64 `json:"weight"`
}
