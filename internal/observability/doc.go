// Package observability provides structured logging and metrics for the
// career advisor pipeline.
//
// This package implements:
//   - zap logger construction from LOG_LEVEL / LOG_FORMAT
//   - Run ID propagation through context.Context
//   - Prometheus counters and histograms for attempts and runs
//   - PII redaction for user profiles that end up in log lines
package observability
