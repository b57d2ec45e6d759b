package analysis

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/emolog-backend/internal/analyzer"
	"github.com/heartmarshall/emolog-backend/internal/domain"
)

type mockAnalysisRepo struct {
	listByEmotionLogFn func(ctx context.Context, emotionLogID uuid.UUID) ([]domain.EmotionAnalysis, error)
	listByUserFn       func(ctx context.Context, userID uuid.UUID) ([]domain.EmotionAnalysis, error)
}

func (m *mockAnalysisRepo) ListByEmotionLog(ctx context.Context, emotionLogID uuid.UUID) ([]domain.EmotionAnalysis, error) {
	return m.listByEmotionLogFn(ctx, emotionLogID)
}
func (m *mockAnalysisRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.EmotionAnalysis, error) {
	return m.listByUserFn(ctx, userID)
}

type mockLogRepo struct {
	getByIDFn func(ctx context.Context, id uuid.UUID) (*domain.EmotionLog, error)
}

func (m *mockLogRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.EmotionLog, error) {
	return m.getByIDFn(ctx, id)
}

func TestService_AnalyzeText_HappyPath(t *testing.T) {
	t.Parallel()

	svc := NewService(slog.Default(), &mockAnalysisRepo{}, &mockLogRepo{}, analyzer.NewKeyword())

	res, err := svc.AnalyzeText(context.Background(), "Estoy muy feliz hoy")
	if err != nil {
		t.Fatalf("AnalyzeText: %v", err)
	}
	if res.Label != domain.EmotionJoy {
		t.Errorf("label: got %s, want joy", res.Label)
	}
	if res.Confidence != 0.7 {
		t.Errorf("confidence: got %v, want 0.7", res.Confidence)
	}
}

func TestService_AnalyzeText_EmptyText(t *testing.T) {
	t.Parallel()

	svc := NewService(slog.Default(), &mockAnalysisRepo{}, &mockLogRepo{}, analyzer.NewKeyword())

	_, err := svc.AnalyzeText(context.Background(), "   ")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestService_ListByEmotionLog_HappyPath(t *testing.T) {
	t.Parallel()
	logID := uuid.New()

	logs := &mockLogRepo{
		getByIDFn: func(_ context.Context, id uuid.UUID) (*domain.EmotionLog, error) {
			if id != logID {
				t.Errorf("GetByID called with %s, want %s", id, logID)
			}
			return &domain.EmotionLog{ID: id}, nil
		},
	}
	analyses := &mockAnalysisRepo{
		listByEmotionLogFn: func(_ context.Context, id uuid.UUID) ([]domain.EmotionAnalysis, error) {
			return []domain.EmotionAnalysis{{ID: uuid.New(), EmotionLogID: id}}, nil
		},
	}

	svc := NewService(slog.Default(), analyses, logs, analyzer.NewKeyword())

	got, err := svc.ListByEmotionLog(context.Background(), logID)
	if err != nil {
		t.Fatalf("ListByEmotionLog: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 analysis, got %d", len(got))
	}
}

func TestService_ListByEmotionLog_MissingLog(t *testing.T) {
	t.Parallel()

	logs := &mockLogRepo{
		getByIDFn: func(context.Context, uuid.UUID) (*domain.EmotionLog, error) {
			return nil, domain.ErrNotFound
		},
	}
	analyses := &mockAnalysisRepo{
		listByEmotionLogFn: func(context.Context, uuid.UUID) ([]domain.EmotionAnalysis, error) {
			t.Fatal("analyses should not be listed for a missing log")
			return nil, nil
		},
	}

	svc := NewService(slog.Default(), analyses, logs, analyzer.NewKeyword())

	_, err := svc.ListByEmotionLog(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_ListByEmotionLog_RequiresID(t *testing.T) {
	t.Parallel()

	svc := NewService(slog.Default(), &mockAnalysisRepo{}, &mockLogRepo{}, analyzer.NewKeyword())

	_, err := svc.ListByEmotionLog(context.Background(), uuid.Nil)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestService_Reports_EmptyButNotNil(t *testing.T) {
	t.Parallel()

	svc := NewService(slog.Default(), &mockAnalysisRepo{}, &mockLogRepo{}, analyzer.NewKeyword())
	userID := uuid.New()

	patterns, err := svc.PatternsForUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("PatternsForUser: %v", err)
	}
	if patterns == nil || len(patterns) != 0 {
		t.Errorf("patterns should be an empty non-nil slice, got %v", patterns)
	}

	insights, err := svc.InsightsForUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("InsightsForUser: %v", err)
	}
	if insights == nil || len(insights) != 0 {
		t.Errorf("insights should be an empty non-nil slice, got %v", insights)
	}
}

func TestService_Reports_RequireUserID(t *testing.T) {
	t.Parallel()

	svc := NewService(slog.Default(), &mockAnalysisRepo{}, &mockLogRepo{}, analyzer.NewKeyword())

	if _, err := svc.PatternsForUser(context.Background(), uuid.Nil); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("PatternsForUser: expected ErrValidation, got %v", err)
	}
	if _, err := svc.InsightsForUser(context.Background(), uuid.Nil); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("InsightsForUser: expected ErrValidation, got %v", err)
	}
}
