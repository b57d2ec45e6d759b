package analysis

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/emolog-backend/internal/domain"
)

// PatternsForUser returns recurring emotional patterns for a user.
// Detection is not implemented yet; the endpoint contract is pinned down
// with an empty result.
func (s *Service) PatternsForUser(ctx context.Context, userID uuid.UUID) ([]domain.Pattern, error) {
	if userID == uuid.Nil {
		return nil, domain.NewValidationError("user_id", "required")
	}
	return []domain.Pattern{}, nil
}

// InsightsForUser returns derived observations about a user's emotional
// history. Generation is not implemented yet; the endpoint contract is
// pinned down with an empty result.
func (s *Service) InsightsForUser(ctx context.Context, userID uuid.UUID) ([]domain.Insight, error) {
	if userID == uuid.Nil {
		return nil, domain.NewValidationError("user_id", "required")
	}
	return []domain.Insight{}, nil
}
