package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/upb/career-advisor/services/routing"
	"github.com/upb/career-advisor/utils"
)

// Config represents the complete application configuration
type Config struct {
	Server        ServerConfig
	LLM           LLMConfig
	Tools         ToolsConfig
	Observability ObservabilityConfig
	Environment   string `validate:"required"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int           `validate:"gt=0,lte=65535"`
	ReadTimeout     time.Duration `validate:"gt=0"`
	WriteTimeout    time.Duration `validate:"gt=0"`
	ShutdownTimeout time.Duration `validate:"gt=0"`

	// RateLimitPerMinute bounds pipeline runs per client IP; 0 disables it.
	RateLimitPerMinute int `validate:"gte=0"`
	RateLimitBurst     int `validate:"gte=0"`
}

// LLMConfig holds the provider routing configuration. The routed provider is
// OpenRouter; the direct provider is OpenAI.
type LLMConfig struct {
	APIKey           string
	DirectAPIKey     string
	Model            string `validate:"required"`
	BaseURL          string `validate:"required,url"`
	FallbackModels   []string
	FallbackBaseURLs []string
	HTTPReferer      string
	AppTitle         string
	ExtraHeaders     map[string]string
	Timeout          time.Duration `validate:"gt=0"`
	Temperature      float64       `validate:"gte=0,lte=2"`
	MaxTokens        int           `validate:"gte=0"`
}

// ToolsConfig holds agent tool configuration
type ToolsConfig struct {
	BraveAPIKey string
	// KnowledgeBasePath overrides the embedded knowledge base when set.
	KnowledgeBasePath string
}

// ObservabilityConfig holds logging configuration
type ObservabilityConfig struct {
	LogLevel  string `validate:"required,oneof=debug info warn error"`
	LogFormat string `validate:"required,oneof=json console"`
}

// New creates a new Config instance by loading environment variables
func New(ctx context.Context) (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getPort(),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Minute),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),

			RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 6),
			RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 2),
		},
		LLM: LLMConfig{
			APIKey:           getEnv("OPENROUTER_API_KEY", ""),
			DirectAPIKey:     getEnv("OPENAI_API_KEY", ""),
			Model:            getEnv("OPENROUTER_MODEL", "openai/gpt-4o-mini"),
			BaseURL:          getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
			FallbackModels:   getEnvAsList("OPENROUTER_FALLBACK_MODELS"),
			FallbackBaseURLs: getEnvAsList("OPENROUTER_FALLBACK_BASE_URLS"),
			HTTPReferer:      getEnv("OPENROUTER_HTTP_REFERER", ""),
			AppTitle:         getEnv("OPENROUTER_APP_TITLE", ""),
			ExtraHeaders:     getEnvAsMap("OPENROUTER_EXTRA_HEADERS"),
			Timeout:          getEnvAsDuration("LLM_TIMEOUT", 120*time.Second),
			Temperature:      getEnvAsFloat("LLM_TEMPERATURE", 0.7),
			MaxTokens:        getEnvAsInt("LLM_MAX_TOKENS", 0),
		},
		Tools: ToolsConfig{
			BraveAPIKey:       getEnv("BRAVE_API_KEY", ""),
			KnowledgeBasePath: getEnv("KNOWLEDGE_BASE_PATH", ""),
		},
		Observability: ObservabilityConfig{
			LogLevel:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
			LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "console")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if all required configuration fields are set
func (c *Config) Validate() error {
	if err := utils.ValidateStruct(c); err != nil {
		return err
	}

	if c.IsProduction() && c.LLM.APIKey == "" && c.LLM.DirectAPIKey == "" {
		return errors.New("an LLM API key is required in production: set OPENROUTER_API_KEY or OPENAI_API_KEY")
	}

	return nil
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "dev"
}

// Headers returns the attribution and extra headers sent to the routed
// provider, or nil when none are configured. Explicit attribution settings
// win over extra headers of the same name.
func (c *LLMConfig) Headers() map[string]string {
	headers := make(map[string]string, len(c.ExtraHeaders)+2)
	for k, v := range c.ExtraHeaders {
		headers[k] = v
	}
	if c.HTTPReferer != "" {
		headers["HTTP-Referer"] = c.HTTPReferer
	}
	if c.AppTitle != "" {
		headers["X-Title"] = c.AppTitle
	}
	if len(headers) == 0 {
		return nil
	}
	return headers
}

// ProviderConfig builds the routing configuration for a pipeline run.
func (c *LLMConfig) ProviderConfig() routing.ProviderConfig {
	return routing.NewProviderConfig(c.Model, c.BaseURL,
		routing.WithFallbackModels(c.FallbackModels...),
		routing.WithFallbackBaseURLs(c.FallbackBaseURLs...),
		routing.WithHeaders(c.Headers()),
	)
}

// Address returns the HTTP server address
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Helper functions

// getPort returns the server port from PORT or SERVER_PORT env vars (default: 8080)
func getPort() int {
	if value := os.Getenv("PORT"); value != "" {
		if p, err := strconv.Atoi(value); err == nil {
			return p
		}
	}
	if value := os.Getenv("SERVER_PORT"); value != "" {
		if p, err := strconv.Atoi(value); err == nil {
			return p
		}
	}
	return 8080
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma separated value, dropping blank entries.
func getEnvAsList(key string) []string {
	var values []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}

// getEnvAsMap parses "k=v,k=v". Entries without a key are skipped.
func getEnvAsMap(key string) map[string]string {
	var values map[string]string
	for _, part := range getEnvAsList(key) {
		k, v, _ := strings.Cut(part, "=")
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if values == nil {
			values = make(map[string]string)
		}
		values[k] = strings.TrimSpace(v)
	}
	return values
}
