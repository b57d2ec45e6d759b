package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/heartmarshall/emolog-backend/internal/analyzer"
	"github.com/heartmarshall/emolog-backend/internal/domain"
)

// AnalyzeText classifies arbitrary text without persisting anything.
// Used by the ad-hoc analysis endpoint.
func (s *Service) AnalyzeText(ctx context.Context, text string) (analyzer.Result, error) {
	if strings.TrimSpace(text) == "" {
		return analyzer.Result{}, domain.NewValidationError("text", "required")
	}

	res, err := s.engine.Analyze(ctx, text)
	if err != nil {
		return analyzer.Result{}, fmt.Errorf("analyze text: %w", err)
	}
	return res, nil
}
