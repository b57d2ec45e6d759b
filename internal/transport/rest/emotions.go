package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/emolog-backend/internal/domain"
	"github.com/heartmarshall/emolog-backend/internal/service/emotion"
)

// emotionService defines the minimal interface needed by EmotionHandler.
type emotionService interface {
	Submit(ctx context.Context, input emotion.SubmitInput) (*domain.EmotionLog, *domain.EmotionAnalysis, error)
	GetLog(ctx context.Context, id uuid.UUID) (*domain.EmotionLog, error)
	ListLogs(ctx context.Context, limit, offset int) ([]domain.EmotionLog, error)
	ListLogsByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.EmotionLog, error)
}

// analysisLister reads back the analyses stored for a log.
type analysisLister interface {
	ListByEmotionLog(ctx context.Context, emotionLogID uuid.UUID) ([]domain.EmotionAnalysis, error)
}

// EmotionHandler serves emotion log REST endpoints.
type EmotionHandler struct {
	svc      emotionService
	analyses analysisLister
	log      *slog.Logger
}

// NewEmotionHandler creates an EmotionHandler.
func NewEmotionHandler(svc emotionService, analyses analysisLister, logger *slog.Logger) *EmotionHandler {
	return &EmotionHandler{
		svc:      svc,
		analyses: analyses,
		log:      logger.With("handler", "emotions"),
	}
}

type submitEmotionRequest struct {
	Text string `json:"text"`
}

type emotionLogResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

type analysisResponse struct {
	ID             string               `json:"id"`
	EmotionLogID   string               `json:"emotionLogId"`
	PrimaryEmotion string               `json:"primaryEmotion"`
	Confidence     float64              `json:"confidence"`
	AnalysisData   *domain.AnalysisData `json:"analysisData,omitempty"`
	CreatedAt      time.Time            `json:"createdAt"`
}

type submitEmotionResponse struct {
	Log      emotionLogResponse `json:"log"`
	Analysis *analysisResponse  `json:"analysis,omitempty"`
}

// Submit handles POST /api/v1/emotions.
func (h *EmotionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitEmotionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	log, analysis, err := h.svc.Submit(r.Context(), emotion.SubmitInput{Text: req.Text})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	resp := submitEmotionResponse{Log: toLogResponse(log)}
	if analysis != nil {
		a := toAnalysisResponse(analysis)
		resp.Analysis = &a
	}
	writeJSON(w, http.StatusCreated, resp)
}

// List handles GET /api/v1/emotions?limit=50&offset=0.
func (h *EmotionHandler) List(w http.ResponseWriter, r *http.Request) {
	logs, err := h.svc.ListLogs(r.Context(), queryInt(r, "limit", 0), queryInt(r, "offset", 0))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toLogResponses(logs))
}

// GetByID handles GET /api/v1/emotions/{id}.
func (h *EmotionHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid emotion log id")
		return
	}

	log, err := h.svc.GetLog(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toLogResponse(log))
}

// ListByUser handles GET /api/v1/emotions/user/{userID}.
func (h *EmotionHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("userID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	logs, err := h.svc.ListLogsByUser(r.Context(), userID, queryInt(r, "limit", 0), queryInt(r, "offset", 0))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toLogResponses(logs))
}

// ListAnalyses handles GET /api/v1/emotions/{id}/analyses.
func (h *EmotionHandler) ListAnalyses(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid emotion log id")
		return
	}

	analyses, err := h.analyses.ListByEmotionLog(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	resp := make([]analysisResponse, 0, len(analyses))
	for i := range analyses {
		resp = append(resp, toAnalysisResponse(&analyses[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *EmotionHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already exists")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func toLogResponse(log *domain.EmotionLog) emotionLogResponse {
	return emotionLogResponse{
		ID:        log.ID.String(),
		UserID:    log.UserID.String(),
		Text:      log.Text,
		CreatedAt: log.CreatedAt,
	}
}

func toLogResponses(logs []domain.EmotionLog) []emotionLogResponse {
	resp := make([]emotionLogResponse, 0, len(logs))
	for i := range logs {
		resp = append(resp, toLogResponse(&logs[i]))
	}
	return resp
}

func toAnalysisResponse(a *domain.EmotionAnalysis) analysisResponse {
	return analysisResponse{
		ID:             a.ID.String(),
		EmotionLogID:   a.EmotionLogID.String(),
		PrimaryEmotion: a.PrimaryEmotion.String(),
		Confidence:     a.Confidence,
		AnalysisData:   a.AnalysisData,
		CreatedAt:      a.CreatedAt,
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func queryInt(r *http.Request, name string, fallback int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
