package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	// DefaultElevenLabsBaseURL is the default ElevenLabs endpoint.
	DefaultElevenLabsBaseURL = "https://api.elevenlabs.io/v1"

	// DefaultVoiceID is the voice used when the caller does not pick one.
	DefaultVoiceID = "21m00Tcm4TlvDq8ikWAM"

	defaultSpeechModelID = "eleven_monolingual_v1"
)

// ElevenLabsAdapter implements Adapter for the ElevenLabs voice API. This is
// the designated TTS vendor; every other capability fails with
// ErrNotSupported.
type ElevenLabsAdapter struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// ElevenLabsOption is a functional option for configuring ElevenLabsAdapter.
type ElevenLabsOption func(*ElevenLabsAdapter)

// WithElevenLabsBaseURL sets a custom base URL (used by tests).
func WithElevenLabsBaseURL(url string) ElevenLabsOption {
	return func(e *ElevenLabsAdapter) {
		e.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithElevenLabsHTTPClient sets a custom HTTP client.
func WithElevenLabsHTTPClient(client *http.Client) ElevenLabsOption {
	return func(e *ElevenLabsAdapter) {
		e.httpClient = client
	}
}

// NewElevenLabsAdapter creates an ElevenLabsAdapter with the given API key.
func NewElevenLabsAdapter(apiKey string, opts ...ElevenLabsOption) *ElevenLabsAdapter {
	e := &ElevenLabsAdapter{
		apiKey:  apiKey,
		baseURL: DefaultElevenLabsBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Name returns the vendor identifier.
func (e *ElevenLabsAdapter) Name() Name {
	return ElevenLabs
}

// GenerateText is not supported by ElevenLabs.
func (e *ElevenLabsAdapter) GenerateText(_ context.Context, _ string, _ TextOptions) (string, error) {
	return "", notSupported(ElevenLabs, "text")
}

// GenerateImage is not supported by ElevenLabs.
func (e *ElevenLabsAdapter) GenerateImage(_ context.Context, _ string, _ ImageOptions) (string, error) {
	return "", notSupported(ElevenLabs, "image")
}

// GenerateVideo is not supported by ElevenLabs.
func (e *ElevenLabsAdapter) GenerateVideo(_ context.Context, _ string, _ VideoOptions) (VideoResult, error) {
	return VideoResult{}, notSupported(ElevenLabs, "video")
}

// TextToSpeech synthesizes speech for the text with the given voice and
// returns an acknowledgement string.
func (e *ElevenLabsAdapter) TextToSpeech(ctx context.Context, text, voiceID string, opts SpeechOptions) (string, error) {
	if voiceID == "" {
		voiceID = DefaultVoiceID
	}

	modelID := defaultSpeechModelID
	if opts.ModelID != "" {
		modelID = opts.ModelID
	}

	stability := 0.5
	if opts.Stability != nil {
		stability = *opts.Stability
	}
	similarity := 0.75
	if opts.SimilarityBoost != nil {
		similarity = *opts.SimilarityBoost
	}

	payload := elevenLabsRequest{
		Text:    text,
		ModelID: modelID,
		VoiceSettings: elevenLabsVoiceSettings{
			Stability:       stability,
			SimilarityBoost: similarity,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal elevenlabs request: %w", err)
	}

	url := fmt.Sprintf("%s/text-to-speech/%s", e.baseURL, voiceID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("xi-api-key", e.apiKey)

	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("elevenlabs error: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read elevenlabs response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("elevenlabs API error [%d]: %s", resp.StatusCode, string(respBody))
	}

	return "Audio generated successfully", nil
}

// IsAvailable probes the user endpoint.
func (e *ElevenLabsAdapter) IsAvailable(ctx context.Context) bool {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, e.baseURL+"/user", nil)
	if err != nil {
		return false
	}
	httpReq.Header.Set("xi-api-key", e.apiKey)

	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode == http.StatusOK
}

// elevenLabsRequest represents a text-to-speech request.
type elevenLabsRequest struct {
	Text          string                  `json:"text"`
	ModelID       string                  `json:"model_id"`
	VoiceSettings elevenLabsVoiceSettings `json:"voice_settings"`
}

// elevenLabsVoiceSettings tunes the synthesized voice.
type elevenLabsVoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}
