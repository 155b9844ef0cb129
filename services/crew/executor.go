package crew

import (
	"context"
	"time"

	"github.com/upb/career-advisor/internal/observability"
	"github.com/upb/career-advisor/services/providers"
	"github.com/upb/career-advisor/services/routing"
	"github.com/upb/career-advisor/services/tools"
	"go.uber.org/zap"
)

const profileLogLimit = 100

// Settings is everything the executor needs besides overrides.
type Settings struct {
	Routing routing.ProviderConfig

	// RoutedAPIKey authenticates the primary-routed provider.
	RoutedAPIKey string

	// DirectAPIKey authenticates the direct provider; empty reuses RoutedAPIKey.
	DirectAPIKey string

	Timeout     time.Duration
	Temperature float64
	MaxTokens   int
}

// Executor builds and kicks off a fresh career advisor crew per attempt.
// It implements routing.Executor.
type Executor struct {
	settings Settings
	registry *providers.Registry
	toolkit  tools.Toolkit
	logger   *zap.Logger
}

var _ routing.Executor = (*Executor)(nil)

// NewExecutor creates an executor. logger may be nil.
func NewExecutor(settings Settings, registry *providers.Registry, tk tools.Toolkit, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{
		settings: settings,
		registry: registry,
		toolkit:  tk,
		logger:   logger,
	}
}

// Resolved is an attempt's effective connection after applying overrides.
type Resolved struct {
	Provider routing.ProviderTag
	Model    string
	BaseURL  string
	Options  providers.ClientOptions
}

// Resolve fills in whatever overrides leave unset from the configuration.
func (e *Executor) Resolve(overrides routing.Overrides) Resolved {
	cfg := e.settings.Routing

	r := Resolved{
		Provider: overrides.Provider,
		Model:    overrides.Model,
		BaseURL:  overrides.BaseURL,
	}
	if r.Provider == "" {
		r.Provider = routing.ProviderRouted
	}
	if r.Model == "" {
		r.Model = cfg.Model()
	}
	if r.BaseURL == "" {
		r.BaseURL = cfg.BaseURL()
	}

	apiKey := overrides.APIKey
	if apiKey == "" {
		apiKey = e.settings.RoutedAPIKey
		if r.Provider == routing.ProviderDirect && e.settings.DirectAPIKey != "" {
			apiKey = e.settings.DirectAPIKey
		}
	}

	r.Options = providers.ClientOptions{
		APIKey:         apiKey,
		BaseURL:        r.BaseURL,
		Timeout:        e.settings.Timeout,
		DefaultHeaders: overrides.DefaultHeaders,
		ExtraHeaders:   overrides.ExtraHeaders,
	}
	// The routed provider always carries the configured attribution headers.
	if r.Provider == routing.ProviderRouted && r.Options.DefaultHeaders == nil {
		r.Options.DefaultHeaders = cfg.Headers()
	}
	return r
}

// Execute implements routing.Executor.
func (e *Executor) Execute(ctx context.Context, profile string, overrides routing.Overrides) (routing.Result, error) {
	logger := observability.LoggerFromContext(ctx, e.logger)
	r := e.Resolve(overrides)
	r.Options.Logger = logger

	client, err := e.registry.New(string(r.Provider), r.Options)
	if err != nil {
		return routing.Result{}, err
	}

	c := NewCareerAdvisorCrew(LLM{
		Client:      client,
		Model:       r.Model,
		Temperature: e.settings.Temperature,
		MaxTokens:   e.settings.MaxTokens,
	}, e.toolkit, logger)

	logger.Info("crew kickoff started",
		zap.String("profile", truncate(observability.RedactPII(profile), profileLogLimit)),
		zap.String("provider", string(r.Provider)),
		zap.String("model", r.Model),
		zap.String("base_url", r.BaseURL))

	out, err := c.Kickoff(ctx, map[string]string{ProfileInput: profile})
	if err != nil {
		return routing.Result{}, err
	}

	for _, task := range c.Tasks {
		if task.Output != nil {
			logger.Info("task output",
				zap.String("task", task.Name),
				zap.String("output", task.Output.Raw))
		}
	}
	logger.Info("crew completed",
		zap.Int("output_length", len(out.Raw)),
		zap.Int("total_tokens", out.TokenUsage.TotalTokens))

	return routing.OutputResult(out.Raw, "", out), nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
