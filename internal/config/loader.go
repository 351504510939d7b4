// Package config provides configuration management using the Singleton pattern.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

const (
	defaultConfigName = "config"
	defaultConfigType = "yaml"
	envPrefix         = "AURA"
)

// Canonical environment variables. These match what deployments already set
// and take priority over file configuration.
const (
	EnvGeminiKey     = "GEMINI_API_KEY"
	EnvOpenAIKey     = "OPENAI_API_KEY"
	EnvAnthropicKey  = "ANTHROPIC_API_KEY"
	EnvStabilityKey  = "STABILITY_API_KEY"
	EnvElevenLabsKey = "ELEVENLABS_API_KEY"
	EnvPrimary       = "PRIMARY_AI_PROVIDER"
	EnvFallback      = "ENABLE_PROVIDER_FALLBACK"
	EnvOrigins       = "ALLOWED_ORIGINS"
	EnvHost          = "HOST"
	EnvPort          = "PORT"
)

// loadConfig loads the configuration from environment variables and files.
// Priority order (highest to lowest):
//  1. Canonical env vars (GEMINI_API_KEY, PRIMARY_AI_PROVIDER, ...)
//  2. Environment variables prefixed with AURA_
//  3. config.yaml — fallback for local development only
//  4. Default values
func loadConfig(configPath string) (*Configuration, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName(defaultConfigName)
	v.SetConfigType(defaultConfigType)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/aura-backend")
		v.AddConfigPath("$HOME/.aura-backend")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, &ConfigError{
				Op:  "read",
				Err: fmt.Errorf("failed to read config file: %w", err),
			}
		}
		// Config file not found is fine, env vars cover everything.
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &ConfigError{
			Op:  "unmarshal",
			Err: fmt.Errorf("failed to unmarshal config: %w", err),
		}
	}

	applyCanonicalEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout_seconds", 30)
	v.SetDefault("server.write_timeout_seconds", 30)
	v.SetDefault("server.shutdown_timeout_seconds", 15)

	// Provider defaults
	v.SetDefault("providers.primary", "gemini")
	v.SetDefault("providers.fallback_enabled", true)

	// CORS defaults match the local frontend dev servers.
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000", "http://localhost:5173"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// applyCanonicalEnv overlays the canonical environment variables onto the
// configuration. Vendor keys in particular never live in config files.
func applyCanonicalEnv(cfg *Configuration) {
	if key := os.Getenv(EnvGeminiKey); key != "" {
		cfg.Providers.GeminiAPIKey = key
	}
	if key := os.Getenv(EnvOpenAIKey); key != "" {
		cfg.Providers.OpenAIAPIKey = key
	}
	if key := os.Getenv(EnvAnthropicKey); key != "" {
		cfg.Providers.AnthropicAPIKey = key
	}
	if key := os.Getenv(EnvStabilityKey); key != "" {
		cfg.Providers.StabilityAPIKey = key
	}
	if key := os.Getenv(EnvElevenLabsKey); key != "" {
		cfg.Providers.ElevenLabsAPIKey = key
	}

	if primary := os.Getenv(EnvPrimary); primary != "" {
		cfg.Providers.Primary = strings.ToLower(strings.TrimSpace(primary))
	}
	if fallback := os.Getenv(EnvFallback); fallback != "" {
		cfg.Providers.FallbackEnabled = strings.EqualFold(fallback, "true")
	}

	if origins := os.Getenv(EnvOrigins); origins != "" {
		cfg.CORS.AllowedOrigins = splitOrigins(origins)
	}

	if host := os.Getenv(EnvHost); host != "" {
		cfg.Server.Host = host
	}
	if port := os.Getenv(EnvPort); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
}

// splitOrigins parses a comma-separated origins list, dropping empties.
func splitOrigins(s string) []string {
	parts := strings.Split(s, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
