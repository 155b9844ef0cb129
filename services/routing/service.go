package routing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/upb/career-advisor/internal/observability"
	"go.uber.org/zap"
)

// Executor runs the full agent pipeline once under a set of overrides.
type Executor interface {
	Execute(ctx context.Context, profile string, overrides Overrides) (Result, error)
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, profile string, overrides Overrides) (Result, error)

// Execute calls f.
func (f ExecutorFunc) Execute(ctx context.Context, profile string, overrides Overrides) (Result, error) {
	return f(ctx, profile, overrides)
}

// AttemptRecord describes one attempt that was made.
type AttemptRecord struct {
	Index     int            `json:"index"`
	Provider  ProviderTag    `json:"provider"`
	Model     string         `json:"model"`
	BaseURL   string         `json:"base_url"`
	Overrides map[string]any `json:"overrides,omitempty"`
	Duration  time.Duration  `json:"duration"`
	Error     string         `json:"error,omitempty"`
}

// RunReport summarizes a pipeline run.
type RunReport struct {
	RunID         string          `json:"run_id"`
	Text          string          `json:"result"`
	Attempt       int             `json:"attempt"`
	TotalAttempts int             `json:"total_attempts"`
	Attempts      []AttemptRecord `json:"attempts"`
}

// Service drives a pipeline run through its planned attempts.
type Service struct {
	executor Executor
	logger   *zap.Logger
	metrics  observability.Metrics
}

// NewService creates a new routing service. logger and metrics may be nil.
func NewService(executor Executor, logger *zap.Logger, metrics observability.Metrics) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = observability.NopMetrics()
	}
	return &Service{
		executor: executor,
		logger:   logger,
		metrics:  metrics,
	}
}

// Run executes the pipeline for profile and returns the first successful
// attempt's text. It fails only when every planned attempt fails, in which
// case the last attempt's error is returned unchanged.
func (s *Service) Run(ctx context.Context, profile string, cfg ProviderConfig) (string, error) {
	report, err := s.Execute(ctx, profile, cfg)
	if err != nil {
		return "", err
	}
	return report.Text, nil
}

// Execute is Run with a report of every attempt made. The report is returned
// even when the run fails.
//
// Attempts run strictly one after another and each is tried at most once.
// A context that is done before an attempt starts ends the run with ctx.Err().
func (s *Service) Execute(ctx context.Context, profile string, cfg ProviderConfig) (*RunReport, error) {
	runID := observability.RunIDFromContext(ctx)
	if runID == "" {
		runID = uuid.New().String()
		ctx = observability.WithRunID(ctx, runID)
	}
	logger := observability.LoggerFromContext(ctx, s.logger)

	attempts := PlanAttempts(cfg)
	total := len(attempts)
	report := &RunReport{
		RunID:         runID,
		TotalAttempts: total,
		Attempts:      make([]AttemptRecord, 0, total),
	}
	runStart := time.Now()

	logger.Debug("attempts planned", zap.Int("total", total))

	var lastErr error
	for i, attempt := range attempts {
		index := i + 1

		if err := ctx.Err(); err != nil {
			logger.Warn("run canceled before attempt",
				zap.Int("attempt", index),
				zap.Int("total", total),
				zap.Error(err))
			s.metrics.RecordRun(ctx, observability.StatusCanceled, len(report.Attempts), time.Since(runStart))
			return report, err
		}

		sanitized := SanitizeOverrides(attempt.Overrides)
		if !attempt.Overrides.IsEmpty() {
			logger.Info("attempt using overrides",
				zap.Int("attempt", index),
				zap.Int("total", total),
				zap.Any("overrides", sanitized))
		}

		attemptStart := time.Now()
		result, err := s.executor.Execute(ctx, profile, attempt.Overrides)
		elapsed := time.Since(attemptStart)

		record := AttemptRecord{
			Index:     index,
			Provider:  attempt.Provider,
			Model:     attempt.Model,
			BaseURL:   attempt.BaseURL,
			Overrides: sanitized,
			Duration:  elapsed,
		}
		labels := observability.AttemptLabels{
			Provider: string(attempt.Provider),
			Model:    attempt.Model,
		}

		if err != nil {
			lastErr = err
			record.Error = err.Error()
			report.Attempts = append(report.Attempts, record)

			labels.Status = observability.StatusFailure
			s.metrics.RecordAttempt(ctx, labels, elapsed)

			logger.Error("pipeline run failed on attempt",
				zap.Int("attempt", index),
				zap.Int("total", total),
				zap.Any("overrides", sanitized),
				zap.Error(err))
			continue
		}

		text := result.Text()
		report.Attempts = append(report.Attempts, record)
		report.Text = text
		report.Attempt = index

		labels.Status = observability.StatusSuccess
		s.metrics.RecordAttempt(ctx, labels, elapsed)
		s.metrics.RecordRun(ctx, observability.StatusSuccess, index, time.Since(runStart))

		logger.Info("pipeline completed",
			zap.Int("attempt", index),
			zap.String("result_kind", result.Kind.String()),
			zap.Int("output_length", len(text)),
			zap.Duration("elapsed", elapsed))

		if index > 1 {
			logger.Info("fallback succeeded",
				zap.Int("attempt", index),
				zap.Int("total", total),
				zap.Any("overrides", sanitized))
		}

		return report, nil
	}

	s.metrics.RecordRun(ctx, observability.StatusFailure, len(report.Attempts), time.Since(runStart))
	logger.Error("all attempts failed", zap.Int("total", total), zap.Error(lastErr))

	return report, lastErr
}
