package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/upb/career-advisor/internal/observability"
	"github.com/upb/career-advisor/services/routing"
	"github.com/upb/career-advisor/utils"
	"go.uber.org/zap"
)

// AdviseRequest is the body of POST /api/v1/advise.
type AdviseRequest struct {
	Profile string `json:"profile" validate:"required,max=8000"`
}

// AdviseResponse is the successful result of a pipeline run.
type AdviseResponse struct {
	RunID         string `json:"run_id"`
	Result        string `json:"result"`
	Attempt       int    `json:"attempt"`
	TotalAttempts int    `json:"total_attempts"`
}

// AttemptView is one planned attempt with sensitive overrides redacted.
type AttemptView struct {
	Index     int                 `json:"index"`
	Provider  routing.ProviderTag `json:"provider"`
	Model     string              `json:"model"`
	BaseURL   string              `json:"base_url"`
	Overrides map[string]any      `json:"overrides,omitempty"`
}

// Advisor runs the career advisor pipeline.
type Advisor interface {
	Execute(ctx context.Context, profile string, cfg routing.ProviderConfig) (*routing.RunReport, error)
}

// AdviseHandler handles career advice HTTP requests
type AdviseHandler struct {
	advisor Advisor
	config  routing.ProviderConfig
	logger  *zap.Logger
}

// NewAdviseHandler creates a new AdviseHandler. Every run uses cfg.
func NewAdviseHandler(advisor Advisor, cfg routing.ProviderConfig, logger *zap.Logger) *AdviseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdviseHandler{
		advisor: advisor,
		config:  cfg,
		logger:  logger,
	}
}

// HandleAdvise handles POST /api/v1/advise
func (h *AdviseHandler) HandleAdvise(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetReqID(ctx)

	var req AdviseRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		h.logger.Warn("failed to parse request body",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteBadRequest(w, err.Error(), nil)
		return
	}
	req.Profile = strings.TrimSpace(req.Profile)

	if err := utils.ValidateStruct(&req); err != nil {
		h.logger.Warn("request validation failed",
			zap.String("request_id", requestID),
			zap.Error(err))
		HandleValidationError(w, err, h.logger)
		return
	}

	if requestID != "" {
		ctx = observability.WithRunID(ctx, requestID)
	}

	report, err := h.advisor.Execute(ctx, req.Profile, h.config)
	if err != nil {
		h.logger.Error("career analysis failed",
			zap.String("request_id", requestID),
			zap.Error(err))
		HandleRunError(w, report, err, h.logger)
		return
	}

	h.logger.Info("career analysis completed",
		zap.String("run_id", report.RunID),
		zap.Int("attempt", report.Attempt),
		zap.Int("total_attempts", report.TotalAttempts),
		zap.Int("result_length", len(report.Text)))

	if err := utils.WriteOK(w, AdviseResponse{
		RunID:         report.RunID,
		Result:        report.Text,
		Attempt:       report.Attempt,
		TotalAttempts: report.TotalAttempts,
	}); err != nil {
		h.logger.Error("failed to write advise response", zap.Error(err))
	}
}

// HandleListAttempts handles GET /api/v1/attempts
func (h *AdviseHandler) HandleListAttempts(w http.ResponseWriter, r *http.Request) {
	_ = utils.WriteOK(w, PlanView(h.config))
}

// PlanView returns the attempts planned for cfg with overrides sanitized.
func PlanView(cfg routing.ProviderConfig) []AttemptView {
	attempts := routing.PlanAttempts(cfg)
	views := make([]AttemptView, len(attempts))
	for i, a := range attempts {
		views[i] = AttemptView{
			Index:     i + 1,
			Provider:  a.Provider,
			Model:     a.Model,
			BaseURL:   a.BaseURL,
			Overrides: routing.SanitizeOverrides(a.Overrides),
		}
	}
	return views
}
