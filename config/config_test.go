package config

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/career-advisor/services/routing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr bool
		check   func(*testing.T, *Config)
	}{
		{
			name: "default configuration",
			envVars: map[string]string{
				"ENVIRONMENT": "development",
			},
			wantErr: false,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "development", cfg.Environment)
				assert.True(t, cfg.IsDevelopment())
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 15*time.Minute, cfg.Server.WriteTimeout)
				assert.Equal(t, 6, cfg.Server.RateLimitPerMinute)
				assert.Equal(t, 2, cfg.Server.RateLimitBurst)
				assert.Equal(t, "openai/gpt-4o-mini", cfg.LLM.Model)
				assert.Equal(t, "https://openrouter.ai/api/v1", cfg.LLM.BaseURL)
				assert.Empty(t, cfg.LLM.FallbackModels)
				assert.Nil(t, cfg.LLM.Headers())
				assert.Equal(t, 120*time.Second, cfg.LLM.Timeout)
				assert.Equal(t, 0.7, cfg.LLM.Temperature)
				assert.Zero(t, cfg.LLM.MaxTokens)
				assert.Equal(t, "info", cfg.Observability.LogLevel)
				assert.Equal(t, "console", cfg.Observability.LogFormat)
			},
		},
		{
			name: "production configuration with routed key",
			envVars: map[string]string{
				"ENVIRONMENT":        "production",
				"PORT":               "9000",
				"OPENROUTER_API_KEY": "sk-or-xxxxx",
			},
			wantErr: false,
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.IsProduction())
				assert.False(t, cfg.IsDevelopment())
				assert.Equal(t, 9000, cfg.Server.Port)
				assert.Equal(t, "0.0.0.0:9000", cfg.Server.Address())
			},
		},
		{
			name: "production without any key",
			envVars: map[string]string{
				"ENVIRONMENT": "production",
			},
			wantErr: true,
		},
		{
			name: "fallback lists and headers",
			envVars: map[string]string{
				"OPENROUTER_FALLBACK_MODELS":    "m2, ,m3,",
				"OPENROUTER_FALLBACK_BASE_URLS": "https://a.example.com/v1",
				"OPENROUTER_HTTP_REFERER":       "https://career.example.com",
				"OPENROUTER_APP_TITLE":          "Career Advisor",
				"OPENROUTER_EXTRA_HEADERS":      "X-Team=ml, =skip, X-Title=overridden",
			},
			wantErr: false,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"m2", "m3"}, cfg.LLM.FallbackModels)
				assert.Equal(t, []string{"https://a.example.com/v1"}, cfg.LLM.FallbackBaseURLs)
				assert.Equal(t, map[string]string{
					"HTTP-Referer": "https://career.example.com",
					"X-Title":      "Career Advisor",
					"X-Team":       "ml",
				}, cfg.LLM.Headers())
			},
		},
		{
			name: "custom llm settings",
			envVars: map[string]string{
				"LLM_TIMEOUT":     "30s",
				"LLM_TEMPERATURE": "0.2",
				"LLM_MAX_TOKENS":  "2048",
				"BRAVE_API_KEY":   "brave-key",
			},
			wantErr: false,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
				assert.Equal(t, 0.2, cfg.LLM.Temperature)
				assert.Equal(t, 2048, cfg.LLM.MaxTokens)
				assert.Equal(t, "brave-key", cfg.Tools.BraveAPIKey)
			},
		},
		{
			name: "observability configuration",
			envVars: map[string]string{
				"LOG_LEVEL":  "DEBUG",
				"LOG_FORMAT": "json",
			},
			wantErr: false,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "debug", cfg.Observability.LogLevel)
				assert.Equal(t, "json", cfg.Observability.LogFormat)
			},
		},
		{
			name: "negative rate limit",
			envVars: map[string]string{
				"RATE_LIMIT_PER_MINUTE": "-1",
			},
			wantErr: true,
		},
		{
			name: "invalid log format",
			envVars: map[string]string{
				"LOG_FORMAT": "text",
			},
			wantErr: true,
		},
		{
			name: "invalid base url",
			envVars: map[string]string{
				"OPENROUTER_BASE_URL": "not a url",
			},
			wantErr: true,
		},
		{
			name: "temperature out of range",
			envVars: map[string]string{
				"LLM_TEMPERATURE": "3.5",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}

			cfg, err := New(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestLLMConfig_ProviderConfig(t *testing.T) {
	llm := LLMConfig{
		Model:            "m1",
		BaseURL:          "u1",
		FallbackModels:   []string{"m2"},
		FallbackBaseURLs: []string{"u2"},
		AppTitle:         "Career Advisor",
	}

	pc := llm.ProviderConfig()

	assert.Equal(t, "m1", pc.Model())
	assert.Equal(t, "u1", pc.BaseURL())
	assert.Equal(t, []string{"m2"}, pc.FallbackModels())
	assert.Equal(t, []string{"u2"}, pc.FallbackBaseURLs())
	assert.Equal(t, map[string]string{"X-Title": "Career Advisor"}, pc.Headers())
	assert.Len(t, routing.PlanAttempts(pc), 8)
}

func TestGetEnvAsMap(t *testing.T) {
	os.Clearenv()
	os.Setenv("TEST_MAP", "a=1, b = 2 ,c,=4")

	assert.Equal(t, map[string]string{"a": "1", "b": "2", "c": ""}, getEnvAsMap("TEST_MAP"))
	assert.Nil(t, getEnvAsMap("TEST_MISSING"))
}

func TestGetEnvHelpers_InvalidValuesUseDefaults(t *testing.T) {
	os.Clearenv()
	os.Setenv("TEST_INT", "abc")
	os.Setenv("TEST_FLOAT", "x")
	os.Setenv("TEST_DURATION", "5 minutes")

	assert.Equal(t, 7, getEnvAsInt("TEST_INT", 7))
	assert.Equal(t, 0.5, getEnvAsFloat("TEST_FLOAT", 0.5))
	assert.Equal(t, time.Second, getEnvAsDuration("TEST_DURATION", time.Second))
}
