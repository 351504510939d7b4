package handler

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/auraai/aura-backend/internal/memory"
	"github.com/auraai/aura-backend/internal/provider"
)

// Version is the API version reported by /health and /.
const Version = "1.0.0"

const (
	// chatMaxTokens bounds chat completions.
	chatMaxTokens = 2048

	// synthesisMaxTokens bounds synthesis completions.
	synthesisMaxTokens = 1000

	// synthesisInputLimit is the number of characters of input content fed
	// into a synthesis prompt.
	synthesisInputLimit = 5000

	// memoryCommitThreshold is the minimum user-message length for the chat
	// endpoint to auto-commit the message to long-term memory.
	memoryCommitThreshold = 20

	// defaultQueryTopK is the number of memory records joined into chat and
	// query retrieval context.
	defaultQueryTopK = 3
)

// Handler carries the shared dependencies of every HTTP endpoint.
type Handler struct {
	manager         *provider.Manager
	store           *memory.Store
	history         *memory.History
	logger          *slog.Logger
	fallbackEnabled bool
}

// Option is a functional option for configuring Handler.
type Option func(*Handler)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithFallbackEnabled sets the fallback flag surfaced by /api/providers.
func WithFallbackEnabled(enabled bool) Option {
	return func(h *Handler) {
		h.fallbackEnabled = enabled
	}
}

// NewHandler creates a Handler over the provider manager and the two
// in-process stores.
func NewHandler(manager *provider.Manager, store *memory.Store, history *memory.History, opts ...Option) *Handler {
	h := &Handler{
		manager:         manager,
		store:           store,
		history:         history,
		logger:          slog.Default(),
		fallbackEnabled: true,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// HandleChat processes a multimodal chat request: builds a persona prompt
// with optional memory retrieval, calls the selected text provider, records
// the exchange in the history log, and auto-commits long user messages to
// memory.
func (h *Handler) HandleChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, 400, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	language := req.TargetLanguage
	if language == "" {
		language = "English"
	}

	lastUser := lastUserMessage(req.Messages)

	var memoryContext string
	if req.UseMemory && lastUser != "" {
		memoryContext = h.store.Search(lastUser, defaultQueryTopK)
	}

	prompt := buildChatPrompt(req, language, memoryContext)

	adapter := h.manager.TextProvider(c.Request.Context(), provider.Name(req.Provider))
	if adapter == nil {
		errorJSON(c, 503, "No AI provider available")
		return
	}

	text, err := adapter.GenerateText(c.Request.Context(), prompt, provider.TextOptions{
		MaxTokens: chatMaxTokens,
	})
	if err != nil {
		h.logger.Error("chat generation failed",
			slog.String("provider", string(adapter.Name())),
			slog.String("error", err.Error()),
		)
		errorJSON(c, 500, fmt.Sprintf("Chat generation failed: %v", err))
		return
	}

	h.history.Append(req, text)

	if len([]rune(lastUser)) > memoryCommitThreshold {
		h.store.Put("chat-"+uuid.NewString(), lastUser, map[string]any{
			"type": "conversation",
		})
	}

	c.JSON(200, gin.H{
		"response":  text,
		"language":  language,
		"provider":  adapter.Name(),
		"timestamp": timestamp(),
	})
}

// HandleSynthesize summarizes submitted content in the target language.
func (h *Handler) HandleSynthesize(c *gin.Context) {
	var req SynthesisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, 400, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	language := req.TargetLanguage
	if language == "" {
		language = "English"
	}

	content := truncateRunes(req.Content, synthesisInputLimit)
	prompt := fmt.Sprintf("Summarize the following in %s. Be concise.\n\nContent:\n%s", language, content)

	adapter := h.manager.TextProvider(c.Request.Context(), provider.Name(req.Provider))
	if adapter == nil {
		errorJSON(c, 503, "No AI provider available")
		return
	}

	text, err := adapter.GenerateText(c.Request.Context(), prompt, provider.TextOptions{
		MaxTokens: synthesisMaxTokens,
	})
	if err != nil {
		h.logger.Error("synthesis failed",
			slog.String("provider", string(adapter.Name())),
			slog.String("error", err.Error()),
		)
		errorJSON(c, 500, fmt.Sprintf("Synthesis failed: %v", err))
		return
	}

	c.JSON(200, gin.H{
		"synthesis": text,
		"language":  language,
		"provider":  adapter.Name(),
		"timestamp": timestamp(),
	})
}

// HandleGenerateImage routes an image prompt to the selected image vendor.
func (h *Handler) HandleGenerateImage(c *gin.Context) {
	var req ImageGenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, 400, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	aspectRatio := req.AspectRatio
	if aspectRatio == "" {
		aspectRatio = "1:1"
	}

	adapter := h.manager.ImageProvider(c.Request.Context(), provider.Name(req.Provider))
	if adapter == nil {
		errorJSON(c, 503, "No image generation provider available")
		return
	}

	image, err := adapter.GenerateImage(c.Request.Context(), req.Prompt, provider.ImageOptions{
		Size:        "512x512",
		AspectRatio: aspectRatio,
	})
	if err != nil {
		h.logger.Error("image generation failed",
			slog.String("provider", string(adapter.Name())),
			slog.String("error", err.Error()),
		)
		errorJSON(c, 500, fmt.Sprintf("Image generation failed: %v", err))
		return
	}

	c.JSON(200, gin.H{
		"image":        image,
		"prompt":       req.Prompt,
		"aspect_ratio": aspectRatio,
		"provider":     adapter.Name(),
		"timestamp":    timestamp(),
	})
}

// HandleGenerateVideo routes a video prompt to the video vendor. When no
// video provider is available the endpoint does not fail: it returns a queued
// placeholder so the frontend can keep polling.
func (h *Handler) HandleGenerateVideo(c *gin.Context) {
	var req VideoGenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, 400, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	aspectRatio := req.AspectRatio
	if aspectRatio == "" {
		aspectRatio = "16:9"
	}
	resolution := req.Resolution
	if resolution == "" {
		resolution = "1080p"
	}

	result := provider.VideoResult{
		Status:  "pending",
		Message: "Video generation queued",
		Type:    "placeholder",
	}
	providerName := "none"

	adapter := h.manager.VideoProvider(c.Request.Context(), provider.Name(req.Provider))
	if adapter != nil {
		var err error
		result, err = adapter.GenerateVideo(c.Request.Context(), req.Prompt, provider.VideoOptions{
			AspectRatio: aspectRatio,
			Resolution:  resolution,
		})
		if err != nil {
			h.logger.Error("video generation failed",
				slog.String("provider", string(adapter.Name())),
				slog.String("error", err.Error()),
			)
			errorJSON(c, 500, fmt.Sprintf("Video generation failed: %v", err))
			return
		}
		providerName = string(adapter.Name())
	}

	c.JSON(200, gin.H{
		"video":  result,
		"prompt": req.Prompt,
		"config": gin.H{
			"aspect_ratio": aspectRatio,
			"resolution":   resolution,
		},
		"provider":  providerName,
		"timestamp": timestamp(),
	})
}

// HandleTextToSpeech synthesizes speech through the voice vendor.
func (h *Handler) HandleTextToSpeech(c *gin.Context) {
	var req SpeechRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, 400, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	adapter := h.manager.VoiceProvider(c.Request.Context(), provider.Name(req.Provider))
	if adapter == nil {
		errorJSON(c, 503, "No voice provider available")
		return
	}

	audio, err := adapter.TextToSpeech(c.Request.Context(), req.Text, req.VoiceID, provider.SpeechOptions{})
	if err != nil {
		h.logger.Error("speech synthesis failed",
			slog.String("provider", string(adapter.Name())),
			slog.String("error", err.Error()),
		)
		errorJSON(c, 500, fmt.Sprintf("Speech synthesis failed: %v", err))
		return
	}

	voiceID := req.VoiceID
	if voiceID == "" {
		voiceID = provider.DefaultVoiceID
	}

	c.JSON(200, gin.H{
		"audio":     audio,
		"voice_id":  voiceID,
		"provider":  adapter.Name(),
		"timestamp": timestamp(),
	})
}

// intentCategories are the labels HandleDetectIntent accepts from the model.
var intentCategories = map[string]bool{
	"TEXT":  true,
	"IMAGE": true,
	"VIDEO": true,
	"AUDIO": true,
}

// HandleDetectIntent classifies a user query into a generation modality.
// Classification is best-effort: any failure degrades to TEXT with HTTP 200
// so the frontend never blocks on it.
func (h *Handler) HandleDetectIntent(c *gin.Context) {
	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, 400, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	adapter := h.manager.TextProvider(c.Request.Context(), "")
	if adapter == nil {
		c.JSON(200, gin.H{"intent": "TEXT", "error": "no AI provider available"})
		return
	}

	prompt := fmt.Sprintf(
		"Classify the user's request into exactly one category: TEXT, IMAGE, VIDEO, or AUDIO. "+
			"Respond with only the category word.\n\nRequest: %s",
		req.Content,
	)

	text, err := adapter.GenerateText(c.Request.Context(), prompt, provider.TextOptions{
		Temperature: provider.Float(0),
		MaxTokens:   10,
	})
	if err != nil {
		h.logger.Warn("intent detection failed, defaulting to TEXT",
			slog.String("provider", string(adapter.Name())),
			slog.String("error", err.Error()),
		)
		c.JSON(200, gin.H{"intent": "TEXT", "error": err.Error()})
		return
	}

	intent := strings.ToUpper(strings.TrimSpace(text))
	if !intentCategories[intent] {
		intent = "TEXT"
	}

	c.JSON(200, gin.H{"intent": intent})
}

// buildChatPrompt assembles the persona system instruction and flattens the
// conversation into role-prefixed lines.
func buildChatPrompt(req ChatRequest, language, memoryContext string) string {
	var b strings.Builder

	b.WriteString("You are AuraAI, a helpful and knowledgeable multimodal assistant.\n")
	fmt.Fprintf(&b, "Respond in %s.\n", language)

	if memoryContext != "" {
		fmt.Fprintf(&b, "Relevant memories from past conversations: %s\n", memoryContext)
	}
	if req.Context != "" {
		fmt.Fprintf(&b, "Additional context: %s\n", req.Context)
	}

	b.WriteString("\nConversation:\n")
	for _, msg := range req.Messages {
		fmt.Fprintf(&b, "%s: %s\n", msg.Role, msg.Content)
	}

	return b.String()
}

// lastUserMessage returns the content of the most recent user-role message.
func lastUserMessage(messages []MessageRequest) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			return messages[i].Content
		}
	}
	return ""
}

// truncateRunes limits s to at most limit characters.
func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) > limit {
		runes = runes[:limit]
	}
	return string(runes)
}

// timestamp returns the canonical response timestamp.
func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// errorJSON writes the uniform error envelope.
func errorJSON(c *gin.Context, status int, detail string) {
	c.JSON(status, gin.H{
		"detail":    detail,
		"timestamp": timestamp(),
	})
}
