// Command server runs the AuraAI backend HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/auraai/aura-backend/internal/config"
	"github.com/auraai/aura-backend/internal/handler"
	"github.com/auraai/aura-backend/internal/memory"
	"github.com/auraai/aura-backend/internal/provider"
	"github.com/auraai/aura-backend/internal/security"
	"github.com/auraai/aura-backend/internal/ui"
)

func main() {
	// Development convenience; missing .env is fine.
	_ = godotenv.Load()

	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg)
	slog.SetDefault(logger)

	manager, err := provider.FromConfig(cfg, provider.WithManagerLogger(logger))
	if err != nil {
		if errors.Is(err, provider.ErrNoProvider) {
			fmt.Fprintln(os.Stderr, "At least one AI provider must be configured")
			fmt.Fprintln(os.Stderr, "Set GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY, STABILITY_API_KEY, or ELEVENLABS_API_KEY")
		} else {
			fmt.Fprintf(os.Stderr, "Failed to initialize providers: %v\n", err)
		}
		os.Exit(1)
	}

	store := memory.NewStore()
	history := memory.NewHistory()

	h := handler.NewHandler(manager, store, history,
		handler.WithLogger(logger),
		handler.WithFallbackEnabled(cfg.Providers.FallbackEnabled),
	)
	router := handler.NewRouter(h, cfg, logger)

	ui.PrintBanner(handler.Version)
	for _, name := range manager.Configured() {
		ui.PrintProviderStatus(string(name), name == manager.Primary())
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	go func() {
		ui.PrintListening(addr)
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("primary_provider", string(manager.Primary())),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ui.PrintShutdown()
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", slog.String("error", err.Error()))
	}

	ui.PrintStopped()
}

// setupLogger builds the slog pipeline: level from config, JSON or text
// output, everything wrapped in the redacting handler.
func setupLogger(cfg *config.Configuration) *slog.Logger {
	var level slog.Level
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var inner slog.Handler
	if cfg.Logging.Format == "text" {
		inner = slog.NewTextHandler(os.Stdout, opts)
	} else {
		inner = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(security.NewRedactedHandler(inner))
}
