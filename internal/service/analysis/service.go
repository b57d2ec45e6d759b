// Package analysis implements the read side of the pipeline: retrieving
// stored analyses, running ad-hoc classification, and the reporting
// surface (patterns, insights).
package analysis

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/emolog-backend/internal/analyzer"
	"github.com/heartmarshall/emolog-backend/internal/domain"
)

type analysisRepo interface {
	ListByEmotionLog(ctx context.Context, emotionLogID uuid.UUID) ([]domain.EmotionAnalysis, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.EmotionAnalysis, error)
}

type logRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.EmotionLog, error)
}

// Service implements analysis retrieval and reporting.
type Service struct {
	log      *slog.Logger
	analyses analysisRepo
	logs     logRepo
	engine   analyzer.Analyzer
}

// NewService creates the analysis service.
func NewService(logger *slog.Logger, analyses analysisRepo, logs logRepo, engine analyzer.Analyzer) *Service {
	return &Service{
		log:      logger.With("service", "analysis"),
		analyses: analyses,
		logs:     logs,
		engine:   engine,
	}
}
