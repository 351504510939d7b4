package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/auraai/aura-backend/internal/config"
)

// NewRouter wires the middleware chain and every endpoint onto a gin engine.
func NewRouter(h *Handler, cfg *config.Configuration, logger *slog.Logger) *gin.Engine {
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(
		RecoveryMiddleware(logger),
		CORSMiddleware(cfg.CORS.AllowedOrigins),
		LoggingMiddleware(logger),
	)

	router.GET("/", h.HandleRoot)
	router.GET("/health", h.HandleHealth)

	router.POST("/chat", h.HandleChat)
	router.POST("/synthesize", h.HandleSynthesize)
	router.POST("/generate-image", h.HandleGenerateImage)
	router.POST("/generate-video", h.HandleGenerateVideo)
	router.POST("/text-to-speech", h.HandleTextToSpeech)
	router.POST("/detect-intent", h.HandleDetectIntent)

	router.POST("/ingest", h.HandleIngest)
	router.POST("/query", h.HandleQuery)
	router.POST("/upload", h.HandleUpload)
	router.GET("/memory/all", h.HandleListMemory)
	router.DELETE("/memory/:id", h.HandleDeleteMemory)

	router.GET("/chat-history", h.HandleChatHistory)
	router.DELETE("/chat-history", h.HandleClearChatHistory)

	router.GET("/api/status", h.HandleStatus)
	router.GET("/api/providers", h.HandleProviders)

	return router
}
