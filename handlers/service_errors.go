package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/upb/career-advisor/services/crew"
	"github.com/upb/career-advisor/services/providers"
	"github.com/upb/career-advisor/services/routing"
	"github.com/upb/career-advisor/utils"
	"go.uber.org/zap"
)

// HandleRunError maps a failed pipeline run to an HTTP response. report may
// be nil when the run never started.
func HandleRunError(w http.ResponseWriter, report *routing.RunReport, err error, logger *zap.Logger) {
	if err == nil {
		return
	}

	details := map[string]interface{}{}
	if report != nil {
		details["run_id"] = report.RunID
		details["attempts"] = len(report.Attempts)
	}
	var provErr *providers.ProviderError
	if errors.As(err, &provErr) {
		details["provider"] = provErr.Provider
		details["code"] = provErr.Code
		if provErr.StatusCode != 0 {
			details["upstream_status"] = provErr.StatusCode
		}
	}

	var status int
	var message string
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		status, message = http.StatusGatewayTimeout, "Career analysis timed out"
	case errors.Is(err, context.Canceled):
		status, message = http.StatusServiceUnavailable, "Career analysis was canceled"
	case errors.Is(err, crew.ErrMissingInput), errors.Is(err, crew.ErrUnsupportedProcess), errors.Is(err, crew.ErrNoTasks):
		logger.Error("pipeline misconfigured", zap.Error(err))
		status, message = http.StatusInternalServerError, "An internal error occurred"
	default:
		status, message = http.StatusBadGateway, "All provider attempts failed: "+err.Error()
	}

	if err := utils.WriteError(w, status, message, details); err != nil {
		logger.Error("failed to write run error response", zap.Error(err))
	}
}

// HandleValidationError handles validation errors from request parsing
func HandleValidationError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if utils.IsValidationError(err) {
		fields := utils.GetValidationFields(err)
		details := make(map[string]interface{})
		for k, v := range fields {
			details[k] = v
		}
		if err := utils.WriteBadRequest(w, "Validation failed", details); err != nil {
			logger.Error("failed to write validation error response", zap.Error(err))
		}
		return
	}

	if err := utils.WriteBadRequest(w, err.Error(), nil); err != nil {
		logger.Error("failed to write validation error response", zap.Error(err))
	}
}
