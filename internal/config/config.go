// Package config provides configuration management using the Singleton pattern.
// It loads configuration from environment variables and config.yaml using Viper.
package config

import (
	"fmt"
	"sync"
)

// Vendor names recognized by the providers.primary setting. Kept as plain
// strings here so config does not depend on the provider package.
var knownVendors = []string{"gemini", "openai", "anthropic", "stability", "elevenlabs"}

// Configuration holds all application configuration values.
type Configuration struct {
	// Server configuration
	Server ServerConfig `json:"server" mapstructure:"server"`

	// Providers holds vendor credentials and selection settings.
	Providers ProvidersConfig `json:"providers" mapstructure:"providers"`

	// CORS configuration
	CORS CORSConfig `json:"cors" mapstructure:"cors"`

	// Logging configuration
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	// Host is the server bind address.
	Host string `json:"host" mapstructure:"host"`

	// Port is the server port number.
	Port int `json:"port" mapstructure:"port"`

	// ReadTimeoutSeconds is the maximum duration for reading the entire request.
	ReadTimeoutSeconds int `json:"read_timeout_seconds" mapstructure:"read_timeout_seconds"`

	// WriteTimeoutSeconds is the maximum duration before timing out writes of the response.
	WriteTimeoutSeconds int `json:"write_timeout_seconds" mapstructure:"write_timeout_seconds"`

	// ShutdownTimeoutSeconds is the maximum duration to wait for active connections to finish.
	ShutdownTimeoutSeconds int `json:"shutdown_timeout_seconds" mapstructure:"shutdown_timeout_seconds"`
}

// ProvidersConfig holds per-vendor API keys and selection settings.
// Keys are read once at startup; an empty key means the vendor is not
// configured and its adapter is never constructed.
type ProvidersConfig struct {
	GeminiAPIKey     string `json:"-" mapstructure:"gemini_api_key"`
	OpenAIAPIKey     string `json:"-" mapstructure:"openai_api_key"`
	AnthropicAPIKey  string `json:"-" mapstructure:"anthropic_api_key"`
	StabilityAPIKey  string `json:"-" mapstructure:"stability_api_key"`
	ElevenLabsAPIKey string `json:"-" mapstructure:"elevenlabs_api_key"`

	// Primary is the designated default vendor. When empty or not
	// configured, the first configured vendor becomes primary.
	Primary string `json:"primary" mapstructure:"primary"`

	// FallbackEnabled is surfaced by /api/providers for introspection.
	FallbackEnabled bool `json:"fallback_enabled" mapstructure:"fallback_enabled"`
}

// CORSConfig holds the allowed-origins list.
type CORSConfig struct {
	// AllowedOrigins are the origins permitted to call the API.
	AllowedOrigins []string `json:"allowed_origins" mapstructure:"allowed_origins"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `json:"level" mapstructure:"level"`

	// Format is the log format (json, text).
	Format string `json:"format" mapstructure:"format"`
}

// configInstance holds the singleton configuration instance.
var (
	configInstance *Configuration
	configOnce     sync.Once
	configErr      error
)

// GetConfig returns the singleton Configuration instance.
// It initializes the configuration on first call using the default config path.
// Returns an error if configuration loading fails.
func GetConfig() (*Configuration, error) {
	configOnce.Do(func() {
		configInstance, configErr = loadConfig("")
	})
	return configInstance, configErr
}

// GetConfigWithPath returns the singleton Configuration instance with a custom config path.
// Returns an error if configuration loading fails.
func GetConfigWithPath(configPath string) (*Configuration, error) {
	configOnce.Do(func() {
		configInstance, configErr = loadConfig(configPath)
	})
	return configInstance, configErr
}

// ResetConfig resets the singleton instance.
// This is primarily used for testing purposes.
func ResetConfig() {
	configOnce = sync.Once{}
	configInstance = nil
	configErr = nil
}

// Validate validates the configuration and returns an error if required fields are invalid.
func (c *Configuration) Validate() error {
	var validationErrors []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		validationErrors = append(validationErrors, "server.port must be between 1 and 65535")
	}

	if c.Providers.Primary != "" && !isKnownVendor(c.Providers.Primary) {
		validationErrors = append(validationErrors, fmt.Sprintf(
			"providers.primary '%s' is invalid, must be one of: gemini, openai, anthropic, stability, elevenlabs",
			c.Providers.Primary,
		))
	}

	if c.Logging.Level != "" && !isValidLogLevel(c.Logging.Level) {
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.level '%s' is invalid, must be one of: debug, info, warn, error",
			c.Logging.Level,
		))
	}

	if len(validationErrors) > 0 {
		return &ValidationError{Errors: validationErrors}
	}

	return nil
}

// HasAnyVendorKey reports whether at least one vendor credential is present.
func (c *Configuration) HasAnyVendorKey() bool {
	p := c.Providers
	return p.GeminiAPIKey != "" || p.OpenAIAPIKey != "" || p.AnthropicAPIKey != "" ||
		p.StabilityAPIKey != "" || p.ElevenLabsAPIKey != ""
}

// ConfiguredVendors returns the vendor names with a credential present, in
// fixed registration order.
func (c *Configuration) ConfiguredVendors() []string {
	p := c.Providers
	var out []string
	if p.GeminiAPIKey != "" {
		out = append(out, "gemini")
	}
	if p.OpenAIAPIKey != "" {
		out = append(out, "openai")
	}
	if p.AnthropicAPIKey != "" {
		out = append(out, "anthropic")
	}
	if p.StabilityAPIKey != "" {
		out = append(out, "stability")
	}
	if p.ElevenLabsAPIKey != "" {
		out = append(out, "elevenlabs")
	}
	return out
}

// isKnownVendor checks if the vendor name is recognized.
func isKnownVendor(name string) bool {
	for _, v := range knownVendors {
		if v == name {
			return true
		}
	}
	return false
}

// isValidLogLevel checks if the log level is valid.
func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}
