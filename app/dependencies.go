package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/upb/career-advisor/config"
	"github.com/upb/career-advisor/internal/observability"
	"github.com/upb/career-advisor/services/crew"
	"github.com/upb/career-advisor/services/providers"
	"github.com/upb/career-advisor/services/providers/openai"
	"github.com/upb/career-advisor/services/providers/openrouter"
	"github.com/upb/career-advisor/services/routing"
	"github.com/upb/career-advisor/services/tools"
	"go.uber.org/zap"
)

const metricsNamespace = "career_advisor"

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config          *config.Config
	Logger          *zap.Logger
	MetricsRegistry *prometheus.Registry
	Metrics         observability.Metrics

	// Provider Registry
	Providers *providers.Registry

	// Agent tools
	Toolkit tools.Toolkit

	// Pipeline
	Executor *crew.Executor
	Advisor  *routing.Service
}

// NewDependencies creates and wires up all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	deps.initMetrics()

	if err := deps.initProviders(); err != nil {
		return nil, fmt.Errorf("failed to initialize providers: %w", err)
	}

	if err := deps.initTools(cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize tools: %w", err)
	}

	deps.initPipeline(cfg)

	logger.Info("all dependencies initialized successfully",
		zap.Strings("providers", deps.Providers.Names()),
		zap.Strings("tools", deps.Toolkit.Names()))
	return deps, nil
}

// initMetrics creates a private Prometheus registry with Go runtime collectors.
func (d *Dependencies) initMetrics() {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	d.MetricsRegistry = reg
	d.Metrics = observability.NewPrometheusMetrics(reg, metricsNamespace)
}

// initProviders registers the routed and direct provider factories.
func (d *Dependencies) initProviders() error {
	registry := providers.NewRegistry()
	if err := registry.Register(string(routing.ProviderRouted), openrouter.New); err != nil {
		return err
	}
	if err := registry.Register(string(routing.ProviderDirect), openai.New); err != nil {
		return err
	}
	d.Providers = registry
	return nil
}

func (d *Dependencies) initTools(cfg *config.Config) error {
	tk, err := tools.DefaultToolkit(tools.Options{
		BraveAPIKey:       cfg.Tools.BraveAPIKey,
		KnowledgeBasePath: cfg.Tools.KnowledgeBasePath,
	})
	if err != nil {
		return err
	}
	if cfg.Tools.BraveAPIKey == "" {
		d.Logger.Warn("BRAVE_API_KEY not set, web search tool disabled")
	}
	d.Toolkit = tk
	return nil
}

func (d *Dependencies) initPipeline(cfg *config.Config) {
	if cfg.LLM.APIKey == "" && cfg.LLM.DirectAPIKey == "" {
		d.Logger.Warn("no LLM API key configured, provider calls will fail authentication")
	}

	d.Executor = crew.NewExecutor(crew.Settings{
		Routing:      cfg.LLM.ProviderConfig(),
		RoutedAPIKey: cfg.LLM.APIKey,
		DirectAPIKey: cfg.LLM.DirectAPIKey,
		Timeout:      cfg.LLM.Timeout,
		Temperature:  cfg.LLM.Temperature,
		MaxTokens:    cfg.LLM.MaxTokens,
	}, d.Providers, d.Toolkit, d.Logger)

	d.Advisor = routing.NewService(d.Executor, d.Logger, d.Metrics)
}

// ProviderConfig returns the routing configuration for a new run.
func (d *Dependencies) ProviderConfig() routing.ProviderConfig {
	return d.Config.LLM.ProviderConfig()
}

// Close flushes buffered logs.
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")
	// Sync fails on console-backed loggers; nothing else needs releasing.
	_ = d.Logger.Sync()
	return nil
}
