// Package analyzer implements the emotion classification engine.
//
// Two strategies exist: Keyword is the deterministic local fallback that
// never fails, Claude is the optional remote model that may. Fallback
// composes the two so callers always receive a best-effort result.
package analyzer

import (
	"context"

	"github.com/heartmarshall/emolog-backend/internal/domain"
)

// Result is the outcome of one classification attempt.
type Result struct {
	Label      domain.EmotionLabel
	Confidence float64
	Data       domain.AnalysisData
}

// Analyzer classifies a piece of text into an emotion label with a
// confidence score and supporting evidence.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (Result, error)
}
