// Package openrouter is the primary-routed chat client. It talks to the
// OpenRouter REST API (or any OpenAI-compatible gateway) with resty.
package openrouter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/upb/career-advisor/services/providers"
	"go.uber.org/zap"
)

const (
	// Name is the provider tag this adapter registers under.
	Name = "openrouter"

	// DefaultBaseURL is used when no base URL is configured.
	DefaultBaseURL = "https://openrouter.ai/api/v1"

	defaultTimeout = 120 * time.Second
)

// Adapter implements providers.Provider for OpenRouter.
type Adapter struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// New builds an adapter. It satisfies providers.Factory.
func New(opts providers.ClientOptions) (providers.Provider, error) {
	return NewAdapter(opts), nil
}

// NewAdapter creates a new OpenRouter adapter
func NewAdapter(opts providers.ClientOptions) *Adapter {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &Adapter{
		httpClient: resty.New(),
		logger:     logger.With(zap.String("provider", Name)),
	}

	// Retries are owned by the attempt planner, so resty never retries here.
	a.httpClient.
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeaders(opts.MergedHeaders())

	if opts.APIKey != "" {
		a.httpClient.SetAuthToken(opts.APIKey)
	}

	a.httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		a.logger.Debug("chat completion request",
			zap.String("method", req.Method),
			zap.String("url", req.URL))
		return nil
	})
	a.httpClient.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		a.logger.Debug("chat completion response",
			zap.Int("status", resp.StatusCode()),
			zap.Duration("duration", resp.Time()))
		return nil
	})

	return a
}

// Name returns the provider name
func (a *Adapter) Name() string {
	return Name
}

// BaseURL returns the endpoint the adapter talks to.
func (a *Adapter) BaseURL() string {
	return a.httpClient.BaseURL
}

// ChatCompletion performs a chat completion request
func (a *Adapter) ChatCompletion(ctx context.Context, req *providers.ChatRequest) (*providers.ChatResponse, error) {
	if req == nil || req.Model == "" {
		return nil, providers.NewProviderError(Name, "INVALID_REQUEST", "model is required", http.StatusBadRequest, false, nil)
	}

	startTime := time.Now()

	var result chatResponse
	var errResp errorResponse

	resp, err := a.httpClient.R().
		SetContext(ctx).
		SetBody(buildRequest(req)).
		SetResult(&result).
		SetError(&errResp).
		Post("/chat/completions")
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, providers.NewProviderError(Name, "CANCELED", "request canceled", 0, false, errors.Join(ctxErr, err))
		}
		return nil, providers.NewProviderError(Name, "HTTP_ERROR", "HTTP request failed", 0, true, err)
	}

	if resp.IsError() {
		return nil, handleErrorResponse(resp.StatusCode(), &errResp, resp.String())
	}

	// OpenRouter reports some upstream failures inside a 200 body.
	if result.Error != nil {
		return nil, providers.NewProviderError(Name, result.Error.code(), result.Error.Message, resp.StatusCode(), true, errors.New(result.Error.Message))
	}
	if len(result.Choices) == 0 {
		return nil, providers.NewProviderError(Name, "EMPTY_RESPONSE", "no choices returned", resp.StatusCode(), true, nil)
	}

	choice := result.Choices[0]
	return &providers.ChatResponse{
		ID:           result.ID,
		Model:        result.Model,
		Content:      choice.Message.Content,
		FinishReason: choice.FinishReason,
		Provider:     Name,
		Latency:      time.Since(startTime),
		Usage: providers.Usage{
			PromptTokens:     result.Usage.PromptTokens,
			CompletionTokens: result.Usage.CompletionTokens,
			TotalTokens:      result.Usage.TotalTokens,
		},
	}, nil
}

func buildRequest(req *providers.ChatRequest) *chatRequest {
	out := &chatRequest{
		Model:    req.Model,
		Messages: make([]message, len(req.Messages)),
		Stop:     req.Stop,
	}
	for i, msg := range req.Messages {
		out.Messages[i] = message{Role: msg.Role, Content: msg.Content}
	}
	if req.MaxTokens > 0 {
		out.MaxTokens = &req.MaxTokens
	}
	if req.Temperature > 0 {
		out.Temperature = &req.Temperature
	}
	return out
}

func handleErrorResponse(statusCode int, errResp *errorResponse, body string) error {
	retryable := providers.RetryableStatus(statusCode)
	if errResp == nil || errResp.Error.Message == "" {
		return providers.NewProviderError(Name, "UNKNOWN_ERROR", fmt.Sprintf("unexpected status %d", statusCode), statusCode, retryable, errors.New(body))
	}
	return providers.NewProviderError(
		Name,
		errResp.Error.code(),
		errResp.Error.Message,
		statusCode,
		retryable,
		errors.New(errResp.Error.Message),
	)
}
