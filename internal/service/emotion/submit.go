package emotion

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/emolog-backend/internal/domain"
	"github.com/heartmarshall/emolog-backend/pkg/ctxutil"
)

// Submit accepts a text entry from the authenticated user. The returned
// analysis is non-nil only in sync mode; in async mode classification
// happens later and callers read it back through the analyses listing.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (*domain.EmotionLog, *domain.EmotionAnalysis, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, nil, err
	}

	log := &domain.EmotionLog{
		ID:        uuid.New(),
		UserID:    userID,
		Text:      input.Text,
		CreatedAt: time.Now().UTC(),
	}

	if s.mode == domain.ModeSync {
		return s.submitSync(ctx, log)
	}
	return s.submitAsync(ctx, log)
}

// submitSync classifies inline: the caller gets the analysis with the
// response, at the cost of waiting for the engine.
func (s *Service) submitSync(ctx context.Context, log *domain.EmotionLog) (*domain.EmotionLog, *domain.EmotionAnalysis, error) {
	created, err := s.logs.Create(ctx, log)
	if err != nil {
		return nil, nil, fmt.Errorf("create emotion log: %w", err)
	}

	res, err := s.engine.Analyze(ctx, created.Text)
	if err != nil {
		// The log is already durable; surface it without an analysis
		// rather than failing the whole submission.
		s.log.ErrorContext(ctx, "inline classification failed",
			"emotion_log_id", created.ID.String(), "error", err.Error())
		return created, nil, nil
	}

	analysis, err := s.analyses.Create(ctx, &domain.EmotionAnalysis{
		ID:             uuid.New(),
		EmotionLogID:   created.ID,
		PrimaryEmotion: res.Label,
		Confidence:     res.Confidence,
		AnalysisData:   &res.Data,
		CreatedAt:      time.Now().UTC(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("persist analysis: %w", err)
	}

	s.log.InfoContext(ctx, "emotion log analyzed inline",
		"emotion_log_id", created.ID.String(),
		"emotion", res.Label.String(),
	)
	return created, analysis, nil
}

// submitAsync creates the log and enqueues the dispatch message in one
// transaction, so a stored log always has its classification pending or
// done and an enqueued message always references a durable log.
func (s *Service) submitAsync(ctx context.Context, log *domain.EmotionLog) (*domain.EmotionLog, *domain.EmotionAnalysis, error) {
	var created *domain.EmotionLog
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var createErr error
		created, createErr = s.logs.Create(txCtx, log)
		if createErr != nil {
			return fmt.Errorf("create emotion log: %w", createErr)
		}

		msg := domain.DispatchMessage{
			EmotionLogID: created.ID,
			UserID:       created.UserID,
			Text:         created.Text,
		}
		if pubErr := s.queue.Publish(txCtx, msg); pubErr != nil {
			return fmt.Errorf("publish dispatch message: %w", pubErr)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.log.InfoContext(ctx, "emotion log queued for analysis",
		"emotion_log_id", created.ID.String(),
	)
	return created, nil, nil
}
