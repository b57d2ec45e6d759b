package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/emolog-backend/internal/domain"
)

// SeedEmotionLog inserts an emotion log for userID and returns it.
func SeedEmotionLog(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, text string) domain.EmotionLog {
	t.Helper()
	ctx := context.Background()

	log := domain.EmotionLog{
		ID:        uuid.New(),
		UserID:    userID,
		Text:      text,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO emotion_logs (id, user_id, text, created_at)
		 VALUES ($1, $2, $3, $4)`,
		log.ID, log.UserID, log.Text, log.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedEmotionLog insert: %v", err)
	}

	return log
}

// SeedAnalysis inserts an analysis row for an existing emotion log and
// returns it.
func SeedAnalysis(t *testing.T, pool *pgxpool.Pool, emotionLogID uuid.UUID, label domain.EmotionLabel, confidence float64) domain.EmotionAnalysis {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	analysis := domain.EmotionAnalysis{
		ID:             uuid.New(),
		EmotionLogID:   emotionLogID,
		PrimaryEmotion: label,
		Confidence:     confidence,
		AnalysisData: &domain.AnalysisData{
			Reasoning: "seeded analysis",
			Intensity: domain.IntensityMedium,
			Source:    domain.SourceFallback,
			Timestamp: now,
		},
		CreatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO emotion_analyses (id, emotion_log_id, primary_emotion, confidence, analysis_data, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		analysis.ID, analysis.EmotionLogID, analysis.PrimaryEmotion.String(), analysis.Confidence, analysis.AnalysisData, analysis.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedAnalysis insert: %v", err)
	}

	return analysis
}
