package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/emolog-backend/internal/analyzer"
	"github.com/heartmarshall/emolog-backend/internal/domain"
)

// analysisService defines the minimal interface needed by AnalysisHandler.
type analysisService interface {
	AnalyzeText(ctx context.Context, text string) (analyzer.Result, error)
	PatternsForUser(ctx context.Context, userID uuid.UUID) ([]domain.Pattern, error)
	InsightsForUser(ctx context.Context, userID uuid.UUID) ([]domain.Insight, error)
}

// AnalysisHandler serves ad-hoc analysis and reporting REST endpoints.
type AnalysisHandler struct {
	svc analysisService
	log *slog.Logger
}

// NewAnalysisHandler creates an AnalysisHandler.
func NewAnalysisHandler(svc analysisService, logger *slog.Logger) *AnalysisHandler {
	return &AnalysisHandler{svc: svc, log: logger.With("handler", "analysis")}
}

type analyzeTextRequest struct {
	Text string `json:"text"`
}

type analyzeTextResponse struct {
	PrimaryEmotion string              `json:"primaryEmotion"`
	Confidence     float64             `json:"confidence"`
	AnalysisData   domain.AnalysisData `json:"analysisData"`
}

// Analyze handles POST /api/v1/ai-analysis. The text is classified
// directly without creating a log row.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.svc.AnalyzeText(r.Context(), req.Text)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, analyzeTextResponse{
		PrimaryEmotion: res.Label.String(),
		Confidence:     res.Confidence,
		AnalysisData:   res.Data,
	})
}

// Patterns handles GET /api/v1/ai-analysis/patterns/{userID}.
func (h *AnalysisHandler) Patterns(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("userID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	patterns, err := h.svc.PatternsForUser(r.Context(), userID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, patterns)
}

// Insights handles GET /api/v1/ai-analysis/insights/{userID}.
func (h *AnalysisHandler) Insights(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("userID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	insights, err := h.svc.InsightsForUser(r.Context(), userID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, insights)
}

func (h *AnalysisHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
