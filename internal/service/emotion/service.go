// Package emotion implements the intake business logic: accepting user
// text, persisting it as an emotion log, and getting it classified
// either inline (sync) or through the dispatch queue (async).
package emotion

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/emolog-backend/internal/analyzer"
	"github.com/heartmarshall/emolog-backend/internal/domain"
)

type logRepo interface {
	Create(ctx context.Context, log *domain.EmotionLog) (*domain.EmotionLog, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.EmotionLog, error)
	List(ctx context.Context, limit, offset int) ([]domain.EmotionLog, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.EmotionLog, error)
}

type analysisRepo interface {
	Create(ctx context.Context, analysis *domain.EmotionAnalysis) (*domain.EmotionAnalysis, error)
}

type publisher interface {
	Publish(ctx context.Context, msg domain.DispatchMessage) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements emotion intake. The intake mode is fixed at
// construction: sync classifies inline and returns the analysis with
// the response, async enqueues a dispatch message in the same
// transaction that creates the log and returns immediately.
type Service struct {
	log      *slog.Logger
	logs     logRepo
	analyses analysisRepo
	engine   analyzer.Analyzer
	queue    publisher
	tx       txManager
	mode     domain.IntakeMode
}

// NewService creates the emotion intake service. queue and tx may be nil
// only in sync mode.
func NewService(
	logger *slog.Logger,
	logs logRepo,
	analyses analysisRepo,
	engine analyzer.Analyzer,
	queue publisher,
	tx txManager,
	mode domain.IntakeMode,
) *Service {
	return &Service{
		log:      logger.With("service", "emotion"),
		logs:     logs,
		analyses: analyses,
		engine:   engine,
		queue:    queue,
		tx:       tx,
		mode:     mode,
	}
}

// Mode reports the intake mode the service was built with.
func (s *Service) Mode() domain.IntakeMode { return s.mode }

// clampLimit bounds a page size, defaulting from 0 to defaultVal.
func clampLimit(limit, max, defaultVal int) int {
	if limit <= 0 {
		return defaultVal
	}
	if limit > max {
		return max
	}
	return limit
}
