package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/auraai/aura-backend/internal/provider"
)

// defaultHistoryLimit is the chat-history tail size when ?limit is absent.
const defaultHistoryLimit = 50

// HandleRoot serves the endpoint directory.
func (h *Handler) HandleRoot(c *gin.Context) {
	c.JSON(200, gin.H{
		"name":    "AuraAI Backend",
		"version": Version,
		"endpoints": gin.H{
			"chat":           "POST /chat",
			"synthesize":     "POST /synthesize",
			"generate_image": "POST /generate-image",
			"generate_video": "POST /generate-video",
			"text_to_speech": "POST /text-to-speech",
			"detect_intent":  "POST /detect-intent",
			"ingest":         "POST /ingest",
			"query":          "POST /query",
			"upload":         "POST /upload",
			"memory":         "GET /memory/all, DELETE /memory/:id",
			"chat_history":   "GET /chat-history, DELETE /chat-history",
			"providers":      "GET /api/providers",
			"status":         "GET /api/status",
			"health":         "GET /health",
		},
	})
}

// HandleHealth serves the liveness probe.
func (h *Handler) HandleHealth(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":    "healthy",
		"version":   Version,
		"timestamp": timestamp(),
	})
}

// HandleStatus reports runtime counters.
func (h *Handler) HandleStatus(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":              "running",
		"memory_items":        h.store.Len(),
		"chat_history_length": h.history.Len(),
		"timestamp":           timestamp(),
	})
}

// HandleProviders probes every configured vendor and reports availability
// alongside the static capability matrix.
func (h *Handler) HandleProviders(c *gin.Context) {
	status := h.manager.ListAvailable(c.Request.Context())

	providers := make([]gin.H, 0, len(status))
	for _, name := range h.manager.Configured() {
		providers = append(providers, gin.H{
			"name":         name,
			"available":    status[name],
			"capabilities": provider.Capabilities(name),
		})
	}

	c.JSON(200, gin.H{
		"available_providers": providers,
		"primary_provider":    h.manager.Primary(),
		"fallback_enabled":    h.fallbackEnabled,
	})
}

// HandleChatHistory serves the tail of the chat log.
func (h *Handler) HandleChatHistory(c *gin.Context) {
	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			errorJSON(c, 400, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	c.JSON(200, gin.H{
		"total":   h.history.Len(),
		"history": h.history.Tail(limit),
	})
}

// HandleClearChatHistory empties the chat log.
func (h *Handler) HandleClearChatHistory(c *gin.Context) {
	h.history.Clear()

	c.JSON(200, gin.H{
		"status":    "cleared",
		"timestamp": timestamp(),
	})
}
