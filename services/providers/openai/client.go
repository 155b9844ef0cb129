// Package openai is the direct chat client. It uses the go-openai SDK against
// any OpenAI-compatible endpoint, sending configured headers on every request.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/upb/career-advisor/services/providers"
	"go.uber.org/zap"
)

// Name is the provider tag this client registers under.
const Name = "openai"

const defaultTimeout = 120 * time.Second

// headerTransport sets fixed headers on outgoing requests.
type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if len(t.headers) > 0 {
		req = req.Clone(req.Context())
		for k, v := range t.headers {
			req.Header.Set(k, v)
		}
	}
	if t.base == nil {
		return http.DefaultTransport.RoundTrip(req)
	}
	return t.base.RoundTrip(req)
}

// Client implements providers.Provider on top of go-openai.
type Client struct {
	client  *openai.Client
	baseURL string
	logger  *zap.Logger
}

// New builds a client. It satisfies providers.Factory.
func New(opts providers.ClientOptions) (providers.Provider, error) {
	return NewClient(opts), nil
}

// NewClient creates a new direct client
func NewClient(opts providers.ClientOptions) *Client {
	config := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		config.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	config.HTTPClient = &http.Client{
		Timeout:   timeout,
		Transport: &headerTransport{base: http.DefaultTransport, headers: opts.MergedHeaders()},
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		client:  openai.NewClientWithConfig(config),
		baseURL: config.BaseURL,
		logger:  logger.With(zap.String("provider", Name)),
	}
}

// Name returns the provider name
func (c *Client) Name() string {
	return Name
}

// BaseURL returns the endpoint the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ChatCompletion performs a chat completion request
func (c *Client) ChatCompletion(ctx context.Context, req *providers.ChatRequest) (*providers.ChatResponse, error) {
	if req == nil || req.Model == "" {
		return nil, providers.NewProviderError(Name, "INVALID_REQUEST", "model is required", http.StatusBadRequest, false, nil)
	}

	startTime := time.Now()
	c.logger.Debug("chat completion request",
		zap.String("model", req.Model),
		zap.Int("messages", len(req.Messages)))

	resp, err := c.client.CreateChatCompletion(ctx, buildRequest(req))
	if err != nil {
		return nil, c.mapError(ctx, err)
	}

	c.logger.Debug("chat completion response",
		zap.String("id", resp.ID),
		zap.Duration("duration", time.Since(startTime)))

	if len(resp.Choices) == 0 {
		return nil, providers.NewProviderError(Name, "EMPTY_RESPONSE", "no choices returned", http.StatusOK, true, nil)
	}

	choice := resp.Choices[0]
	return &providers.ChatResponse{
		ID:           resp.ID,
		Model:        resp.Model,
		Content:      choice.Message.Content,
		FinishReason: string(choice.FinishReason),
		Provider:     Name,
		Latency:      time.Since(startTime),
		Usage: providers.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

func buildRequest(req *providers.ChatRequest) openai.ChatCompletionRequest {
	out := openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    make([]openai.ChatCompletionMessage, len(req.Messages)),
		MaxTokens:   req.MaxTokens,
		Temperature: float32(req.Temperature),
		Stop:        req.Stop,
	}
	for i, msg := range req.Messages {
		out.Messages[i] = openai.ChatCompletionMessage{Role: msg.Role, Content: msg.Content}
	}
	return out
}

func (c *Client) mapError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return providers.NewProviderError(Name, "CANCELED", "request canceled", 0, false, errors.Join(ctxErr, err))
	}

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		code := apiErr.Type
		if code == "" && apiErr.Code != nil {
			code = fmt.Sprint(apiErr.Code)
		}
		if code == "" {
			code = "API_ERROR"
		}
		return providers.NewProviderError(Name, code, apiErr.Message, apiErr.HTTPStatusCode,
			providers.RetryableStatus(apiErr.HTTPStatusCode), err)
	case errors.As(err, &reqErr):
		return providers.NewProviderError(Name, "HTTP_ERROR", fmt.Sprintf("unexpected status %d", reqErr.HTTPStatusCode),
			reqErr.HTTPStatusCode, providers.RetryableStatus(reqErr.HTTPStatusCode), err)
	default:
		return providers.NewProviderError(Name, "HTTP_ERROR", "HTTP request failed", 0, true, err)
	}
}
