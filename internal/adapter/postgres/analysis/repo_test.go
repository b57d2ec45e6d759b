package analysis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/emolog-backend/internal/adapter/postgres/analysis"
	"github.com/heartmarshall/emolog-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/emolog-backend/internal/domain"
)

func newRepo(t *testing.T) (*analysis.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return analysis.New(pool), pool
}

func buildAnalysis(emotionLogID uuid.UUID) *domain.EmotionAnalysis {
	return &domain.EmotionAnalysis{
		EmotionLogID:   emotionLogID,
		PrimaryEmotion: domain.EmotionJoy,
		Confidence:     0.7,
		AnalysisData: &domain.AnalysisData{
			Reasoning: "Detectadas palabras relacionadas con alegría",
			Intensity: domain.IntensityMedium,
			Source:    domain.SourceFallback,
			Timestamp: time.Now().UTC().Truncate(time.Microsecond),
			Text:      "estoy feliz",
		},
	}
}

func TestRepo_Create_HappyPath(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	log := testhelper.SeedEmotionLog(t, pool, uuid.New(), "estoy feliz")
	input := buildAnalysis(log.ID)

	got, err := repo.Create(ctx, input)
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	if got.ID == uuid.Nil {
		t.Error("ID should be assigned")
	}
	if got.EmotionLogID != log.ID {
		t.Errorf("EmotionLogID mismatch: got %s, want %s", got.EmotionLogID, log.ID)
	}
	if got.PrimaryEmotion != domain.EmotionJoy {
		t.Errorf("PrimaryEmotion mismatch: got %s, want joy", got.PrimaryEmotion)
	}
	if got.Confidence != 0.7 {
		t.Errorf("Confidence mismatch: got %v, want 0.7", got.Confidence)
	}
	if got.AnalysisData == nil {
		t.Fatal("AnalysisData should round-trip")
	}
	if got.AnalysisData.Source != domain.SourceFallback {
		t.Errorf("Source mismatch: got %s, want fallback", got.AnalysisData.Source)
	}
	if got.AnalysisData.Reasoning != input.AnalysisData.Reasoning {
		t.Errorf("Reasoning mismatch: got %q", got.AnalysisData.Reasoning)
	}
}

func TestRepo_Create_MissingLogIsIntegrityFault(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, buildAnalysis(uuid.New()))
	if !errors.Is(err, domain.ErrIntegrity) {
		t.Fatalf("expected ErrIntegrity for a missing emotion log, got: %v", err)
	}
}

func TestRepo_Create_InvalidAnalysisRejected(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	log := testhelper.SeedEmotionLog(t, pool, uuid.New(), "texto")
	input := buildAnalysis(log.ID)
	input.Confidence = 1.5

	_, err := repo.Create(ctx, input)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got: %v", err)
	}
}

func TestRepo_Create_NilAnalysisData(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	log := testhelper.SeedEmotionLog(t, pool, uuid.New(), "texto")
	input := buildAnalysis(log.ID)
	input.AnalysisData = nil

	got, err := repo.Create(ctx, input)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.AnalysisData != nil {
		t.Errorf("AnalysisData should stay nil, got %+v", got.AnalysisData)
	}
}

func TestRepo_Create_AppendOnly_MultiplePerLog(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	log := testhelper.SeedEmotionLog(t, pool, uuid.New(), "estoy feliz")

	// Two analyses for one log, as redelivery or re-analysis produces.
	first, err := repo.Create(ctx, buildAnalysis(log.ID))
	if err != nil {
		t.Fatalf("Create first: %v", err)
	}
	second, err := repo.Create(ctx, buildAnalysis(log.ID))
	if err != nil {
		t.Fatalf("Create second: %v", err)
	}

	got, err := repo.ListByEmotionLog(ctx, log.ID)
	if err != nil {
		t.Fatalf("ListByEmotionLog: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 analyses, got %d", len(got))
	}

	ids := map[uuid.UUID]bool{got[0].ID: true, got[1].ID: true}
	if !ids[first.ID] || !ids[second.ID] {
		t.Error("both appended analyses should be retained")
	}
}

func TestRepo_ListByEmotionLog_NewestFirst(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	log := testhelper.SeedEmotionLog(t, pool, uuid.New(), "texto")
	base := time.Now().UTC().Truncate(time.Microsecond)
	for i := range 3 {
		a := buildAnalysis(log.ID)
		a.CreatedAt = base.Add(time.Duration(i) * time.Millisecond)
		if _, err := repo.Create(ctx, a); err != nil {
			t.Fatalf("Create[%d]: %v", i, err)
		}
	}

	got, err := repo.ListByEmotionLog(ctx, log.ID)
	if err != nil {
		t.Fatalf("ListByEmotionLog: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 analyses, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].CreatedAt.After(got[i-1].CreatedAt) {
			t.Errorf("analyses not in DESC order at index %d", i)
		}
	}
}

func TestRepo_ListByEmotionLog_EmptyResult(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	got, err := repo.ListByEmotionLog(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("ListByEmotionLog: %v", err)
	}
	if got == nil {
		t.Fatal("result should be an empty slice, not nil")
	}
	if len(got) != 0 {
		t.Errorf("expected 0 analyses, got %d", len(got))
	}
}

func TestRepo_ListByUser_CrossesLogs(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	userID := uuid.New()
	log1 := testhelper.SeedEmotionLog(t, pool, userID, "uno")
	log2 := testhelper.SeedEmotionLog(t, pool, userID, "dos")
	otherLog := testhelper.SeedEmotionLog(t, pool, uuid.New(), "ajeno")

	testhelper.SeedAnalysis(t, pool, log1.ID, domain.EmotionJoy, 0.7)
	testhelper.SeedAnalysis(t, pool, log2.ID, domain.EmotionSadness, 0.7)
	testhelper.SeedAnalysis(t, pool, otherLog.ID, domain.EmotionAnger, 0.7)

	got, err := repo.ListByUser(ctx, userID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 analyses for the user, got %d", len(got))
	}
	for _, a := range got {
		if a.EmotionLogID != log1.ID && a.EmotionLogID != log2.ID {
			t.Errorf("analysis %s belongs to a foreign log", a.ID)
		}
	}
}
