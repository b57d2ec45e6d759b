package emotion

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/emolog-backend/internal/domain"
)

// GetLog returns a single emotion log by ID.
func (s *Service) GetLog(ctx context.Context, id uuid.UUID) (*domain.EmotionLog, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}
	return s.logs.GetByID(ctx, id)
}
