// Package routing decides which LLM configurations a pipeline run tries and
// in what order, then drives the run through them.
//
// This package provides:
//   - ProviderConfig, the read-only description of the primary endpoint and its fallbacks
//   - PlanAttempts, which expands a ProviderConfig into an ordered, deduplicated attempt list
//   - Sanitize, which redacts header and credential overrides before they are logged
//   - Service, which runs attempts one at a time until one succeeds
//
// Every model/base URL combination on the routed provider is tried before the
// direct provider is touched. Only exhaustion of the whole plan is reported to
// the caller, and it is reported with the last attempt's error.
package routing
