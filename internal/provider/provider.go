// Package provider wraps external generative-AI vendor APIs behind a
// uniform capability interface. Each vendor implements Adapter; the Manager
// owns the configured set and the per-capability selection policy.
package provider

import (
	"context"
	"errors"
	"fmt"
)

// Name identifies a supported vendor.
type Name string

const (
	Gemini     Name = "gemini"
	OpenAI     Name = "openai"
	Anthropic  Name = "anthropic"
	Stability  Name = "stability"
	ElevenLabs Name = "elevenlabs"
)

// AllNames lists every supported vendor in registration order.
var AllNames = []Name{Gemini, OpenAI, Anthropic, Stability, ElevenLabs}

var (
	// ErrNoProvider is returned when no adapter can serve a request.
	ErrNoProvider = errors.New("no AI providers configured")

	// ErrNotSupported is returned when an adapter exists but does not
	// implement the requested capability. No vendor call is attempted.
	ErrNotSupported = errors.New("capability not supported by this vendor")
)

// NoResponsePlaceholder is returned when a vendor call succeeds but yields
// empty content.
const NoResponsePlaceholder = "No response generated"

// TextOptions controls a text generation call.
type TextOptions struct {
	// Model overrides the adapter's default model when non-empty.
	Model string

	// Temperature controls sampling randomness. Nil leaves the vendor default.
	Temperature *float64

	// MaxTokens limits the response length. Zero leaves the vendor default.
	MaxTokens int
}

// ImageOptions controls an image generation call.
type ImageOptions struct {
	// Size is the target dimensions, "WIDTHxHEIGHT" (e.g. "512x512").
	Size string

	// AspectRatio is the requested aspect (e.g. "1:1", "16:9").
	AspectRatio string

	// Quality is the vendor quality tier ("standard", "hd").
	Quality string
}

// VideoOptions controls a video generation call.
type VideoOptions struct {
	AspectRatio string
	Resolution  string
}

// VideoResult is the shape returned by video generation. Video vendors
// acknowledge and queue rather than returning finished assets inline.
type VideoResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// SpeechOptions controls a text-to-speech call.
type SpeechOptions struct {
	// ModelID overrides the TTS model when non-empty.
	ModelID string

	// Stability and SimilarityBoost tune the voice. Nil leaves defaults.
	Stability       *float64
	SimilarityBoost *float64
}

// Adapter is the uniform capability contract over one vendor. Adapters are
// immutable after construction; the credential is fixed at creation.
// Capabilities a vendor does not offer fail with ErrNotSupported without
// attempting a call.
type Adapter interface {
	// Name returns the vendor identifier.
	Name() Name

	// GenerateText produces a completion for the prompt. Vendor and
	// transport failures are wrapped; a successful call with empty content
	// returns NoResponsePlaceholder instead of failing.
	GenerateText(ctx context.Context, prompt string, opts TextOptions) (string, error)

	// GenerateImage produces an image reference (URL or acknowledgement).
	GenerateImage(ctx context.Context, prompt string, opts ImageOptions) (string, error)

	// GenerateVideo queues a video generation and returns an acknowledgement.
	GenerateVideo(ctx context.Context, prompt string, opts VideoOptions) (VideoResult, error)

	// TextToSpeech synthesizes speech and returns an audio reference.
	TextToSpeech(ctx context.Context, text, voiceID string, opts SpeechOptions) (string, error)

	// IsAvailable performs a cheap live probe against the vendor. It never
	// returns an error; any failure reads as unavailable. Availability is
	// probed on every selection, never cached.
	IsAvailable(ctx context.Context) bool
}

// capabilityMatrix is fixed configuration, mirrored by /api/providers.
var capabilityMatrix = map[Name][]string{
	Gemini:     {"text", "image", "video"},
	OpenAI:     {"text", "image"},
	Anthropic:  {"text"},
	Stability:  {"image"},
	ElevenLabs: {"audio"},
}

// Capabilities returns the static capability list for a vendor.
func Capabilities(name Name) []string {
	caps, ok := capabilityMatrix[name]
	if !ok {
		return nil
	}
	out := make([]string, len(caps))
	copy(out, caps)
	return out
}

// Float returns a pointer to v, for optional option fields.
func Float(v float64) *float64 {
	return &v
}

// notSupported wraps ErrNotSupported with the vendor and capability names.
func notSupported(name Name, capability string) error {
	return fmt.Errorf("%s does not support %s generation: %w", name, capability, ErrNotSupported)
}
