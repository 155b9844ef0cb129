package providers

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockProvider is a test implementation of the Provider interface
type MockProvider struct {
	name string
}

func (m *MockProvider) Name() string { return m.name }

func (m *MockProvider) ChatCompletion(_ context.Context, req *ChatRequest) (*ChatResponse, error) {
	return &ChatResponse{Model: req.Model, Provider: m.name, Content: "mock"}, nil
}

func TestProviderError(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		name      string
		err       *ProviderError
		expected  string
		retryable bool
	}{
		{
			name:      "with cause",
			err:       NewProviderError("openrouter", "HTTP_ERROR", "HTTP request failed", 0, true, cause),
			expected:  "openrouter: HTTP request failed: connection refused",
			retryable: true,
		},
		{
			name:     "cause repeats message",
			err:      NewProviderError("openai", "invalid_request_error", "bad model", 400, false, errors.New("bad model")),
			expected: "openai: bad model",
		},
		{
			name:     "without cause",
			err:      NewProviderError("openai", "EMPTY_RESPONSE", "no choices returned", 200, false, nil),
			expected: "openai: no choices returned",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
			assert.Equal(t, tt.retryable, IsRetryable(tt.err))
		})
	}
}

func TestProviderError_Unwrap(t *testing.T) {
	cause := context.DeadlineExceeded
	err := fmt.Errorf("attempt: %w", NewProviderError("openrouter", "HTTP_ERROR", "timeout", 0, true, cause))

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, IsRetryable(err))

	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "openrouter", provErr.Provider)
}

func TestIsRetryable_PlainError(t *testing.T) {
	assert.False(t, IsRetryable(errors.New("boom")))
	assert.False(t, IsRetryable(nil))
}

func TestRetryableStatus(t *testing.T) {
	tests := []struct {
		status   int
		expected bool
	}{
		{200, false},
		{400, false},
		{401, false},
		{429, true},
		{500, true},
		{503, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, RetryableStatus(tt.status), "status %d", tt.status)
	}
}

func TestClientOptions_MergedHeaders(t *testing.T) {
	tests := []struct {
		name     string
		opts     ClientOptions
		expected map[string]string
	}{
		{
			name:     "no headers",
			opts:     ClientOptions{},
			expected: nil,
		},
		{
			name: "extra wins",
			opts: ClientOptions{
				DefaultHeaders: map[string]string{"X-Title": "default", "HTTP-Referer": "https://a"},
				ExtraHeaders:   map[string]string{"X-Title": "extra"},
			},
			expected: map[string]string{"X-Title": "extra", "HTTP-Referer": "https://a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.opts.MergedHeaders())
		})
	}
}

func TestUsage_Add(t *testing.T) {
	u := Usage{PromptTokens: 1, CompletionTokens: 2, TotalTokens: 3}
	u.Add(Usage{PromptTokens: 10, CompletionTokens: 20, TotalTokens: 30})
	assert.Equal(t, Usage{PromptTokens: 11, CompletionTokens: 22, TotalTokens: 33}, u)
}
