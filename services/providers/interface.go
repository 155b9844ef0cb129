package providers

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// Provider is a chat completion backend used by the crew's agents.
type Provider interface {
	// Name returns the provider tag (e.g., "openrouter", "openai")
	Name() string

	// ChatCompletion performs a chat completion request
	ChatCompletion(ctx context.Context, req *ChatRequest) (*ChatResponse, error)
}

// ChatRequest represents a unified chat completion request
type ChatRequest struct {
	// Model identifier (e.g., "openai/gpt-4o-mini")
	Model string `json:"model"`

	// Messages in the conversation
	Messages []Message `json:"messages"`

	// MaxTokens limits the response length; zero leaves the provider default
	MaxTokens int `json:"max_tokens,omitempty"`

	// Temperature controls randomness (0.0 to 2.0)
	Temperature float64 `json:"temperature,omitempty"`

	// Stop sequences
	Stop []string `json:"stop,omitempty"`
}

// Message represents a single message in a conversation
type Message struct {
	// Role can be "system", "user", or "assistant"
	Role string `json:"role"`

	// Content is the message text
	Content string `json:"content"`
}

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatResponse represents a unified chat completion response
type ChatResponse struct {
	ID       string        `json:"id"`
	Model    string        `json:"model"`
	Content  string        `json:"content"`
	Usage    Usage         `json:"usage"`
	Provider string        `json:"provider"`
	Latency  time.Duration `json:"latency"`

	// FinishReason indicates why the completion finished
	FinishReason string `json:"finish_reason"`
}

// Usage represents token usage statistics
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Add accumulates other into u.
func (u *Usage) Add(other Usage) {
	u.PromptTokens += other.PromptTokens
	u.CompletionTokens += other.CompletionTokens
	u.TotalTokens += other.TotalTokens
}

// ClientOptions holds the connection settings a provider is built from.
type ClientOptions struct {
	// APIKey for authentication
	APIKey string

	// BaseURL for the API; empty selects the provider default
	BaseURL string

	// Timeout for a single request
	Timeout time.Duration

	// DefaultHeaders are sent with every request
	DefaultHeaders map[string]string

	// ExtraHeaders are sent with every request and win over DefaultHeaders
	ExtraHeaders map[string]string

	// Logger receives request/response debug logs; nil disables them
	Logger *zap.Logger
}

// MergedHeaders returns DefaultHeaders overlaid with ExtraHeaders.
func (o ClientOptions) MergedHeaders() map[string]string {
	if len(o.DefaultHeaders) == 0 && len(o.ExtraHeaders) == 0 {
		return nil
	}
	merged := make(map[string]string, len(o.DefaultHeaders)+len(o.ExtraHeaders))
	for k, v := range o.DefaultHeaders {
		merged[k] = v
	}
	for k, v := range o.ExtraHeaders {
		merged[k] = v
	}
	return merged
}

// ProviderError represents an error from a provider
type ProviderError struct {
	// Provider that generated the error
	Provider string

	// Code is the error code
	Code string

	// Message is the error message
	Message string

	// StatusCode is the HTTP status code (if applicable)
	StatusCode int

	// Retryable indicates if the request can be retried
	Retryable bool

	// Cause is the underlying error
	Cause error
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	msg := e.Provider + ": " + e.Message
	if e.Cause != nil && e.Cause.Error() != e.Message {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap implements error unwrapping
func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// NewProviderError creates a new provider error
func NewProviderError(provider, code, message string, statusCode int, retryable bool, cause error) *ProviderError {
	return &ProviderError{
		Provider:   provider,
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Retryable:  retryable,
		Cause:      cause,
	}
}

// IsRetryable checks if an error is retryable
func IsRetryable(err error) bool {
	var provErr *ProviderError
	if errors.As(err, &provErr) {
		return provErr.Retryable
	}
	return false
}

// RetryableStatus reports whether an HTTP status code is worth another attempt.
func RetryableStatus(statusCode int) bool {
	return statusCode >= 500 || statusCode == 429
}
