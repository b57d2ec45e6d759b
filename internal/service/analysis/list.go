package analysis

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/emolog-backend/internal/domain"
)

// ListByEmotionLog returns the analyses accumulated for one log, newest
// first. The log itself is checked first so a missing log reports
// ErrNotFound instead of an empty list.
func (s *Service) ListByEmotionLog(ctx context.Context, emotionLogID uuid.UUID) ([]domain.EmotionAnalysis, error) {
	if emotionLogID == uuid.Nil {
		return nil, domain.NewValidationError("emotion_log_id", "required")
	}

	if _, err := s.logs.GetByID(ctx, emotionLogID); err != nil {
		return nil, fmt.Errorf("check emotion log: %w", err)
	}

	return s.analyses.ListByEmotionLog(ctx, emotionLogID)
}

// ListByUser returns every analysis attached to one user's logs, newest
// first.
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.EmotionAnalysis, error) {
	if userID == uuid.Nil {
		return nil, domain.NewValidationError("user_id", "required")
	}
	return s.analyses.ListByUser(ctx, userID)
}
