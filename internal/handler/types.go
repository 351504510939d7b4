// Package handler provides the HTTP surface of the AuraAI backend.
package handler

// Request schemas. Field names and defaults mirror what the frontend
// already sends.

// MessageRequest is a single conversation turn.
type MessageRequest struct {
	// Role is one of: "system", "user", "assistant".
	Role string `json:"role" binding:"required"`

	// Content is the message text.
	Content string `json:"content"`

	// Assets are optional attachment references. Optional.
	Assets []map[string]string `json:"assets,omitempty"`
}

// ChatRequest is the POST /chat body.
type ChatRequest struct {
	// Messages is the ordered conversation history.
	Messages []MessageRequest `json:"messages"`

	// Context is an optional local context string.
	Context string `json:"context,omitempty"`

	// UseGrounding enables grounded generation. Optional.
	UseGrounding bool `json:"use_grounding,omitempty"`

	// UseMemory enables long-term memory retrieval. Optional.
	UseMemory bool `json:"use_memory,omitempty"`

	// TargetLanguage is the response language. Defaults to "English".
	TargetLanguage string `json:"target_language,omitempty"`

	// Provider overrides provider selection. Optional.
	Provider string `json:"provider,omitempty"`
}

// SynthesisRequest is the POST /synthesize body.
type SynthesisRequest struct {
	Content        string `json:"content" binding:"required"`
	TargetLanguage string `json:"target_language,omitempty"`
	Provider       string `json:"provider,omitempty"`
}

// ImageGenerationRequest is the POST /generate-image body.
type ImageGenerationRequest struct {
	Prompt      string `json:"prompt" binding:"required"`
	AspectRatio string `json:"aspect_ratio,omitempty"`
	Provider    string `json:"provider,omitempty"`
}

// VideoGenerationRequest is the POST /generate-video body.
type VideoGenerationRequest struct {
	Prompt      string `json:"prompt" binding:"required"`
	AspectRatio string `json:"aspect_ratio,omitempty"`
	Resolution  string `json:"resolution,omitempty"`
	Provider    string `json:"provider,omitempty"`
}

// SpeechRequest is the POST /text-to-speech body.
type SpeechRequest struct {
	Text     string `json:"text" binding:"required"`
	VoiceID  string `json:"voice_id,omitempty"`
	Provider string `json:"provider,omitempty"`
}

// MemoryIngestRequest is the POST /ingest body.
type MemoryIngestRequest struct {
	ID       string         `json:"id" binding:"required"`
	Text     string         `json:"text" binding:"required"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// MemoryQueryRequest is the POST /query body.
type MemoryQueryRequest struct {
	Prompt string `json:"prompt" binding:"required"`
	TopK   int    `json:"top_k,omitempty"`
}
