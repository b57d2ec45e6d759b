package emotion

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/emolog-backend/internal/domain"
)

const (
	maxPageSize     = 200
	defaultPageSize = 50
)

// ListLogs returns logs across all users, newest first.
func (s *Service) ListLogs(ctx context.Context, limit, offset int) ([]domain.EmotionLog, error) {
	if offset < 0 {
		offset = 0
	}
	return s.logs.List(ctx, clampLimit(limit, maxPageSize, defaultPageSize), offset)
}

// ListLogsByUser returns one user's logs, newest first.
func (s *Service) ListLogsByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.EmotionLog, error) {
	if userID == uuid.Nil {
		return nil, domain.NewValidationError("user_id", "required")
	}
	if offset < 0 {
		offset = 0
	}
	return s.logs.ListByUser(ctx, userID, clampLimit(limit, maxPageSize, defaultPageSize), offset)
}
