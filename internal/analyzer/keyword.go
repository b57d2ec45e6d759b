package analyzer

import (
	"context"
	"strings"
	"time"

	"github.com/heartmarshall/emolog-backend/internal/domain"
)

const (
	matchedConfidence = 0.7
	// A neutral default carries lower confidence than any classified
	// emotion: absence of signal is weaker evidence than its presence.
	neutralConfidence = 0.6
)

// emotionRule is one ordered keyword rule. Rules are checked in priority
// order and the first rule with a matching keyword wins, regardless of
// how many keywords other rules would match.
type emotionRule struct {
	label     domain.EmotionLabel
	keywords  []string
	reasoning string
}

// rules in fixed priority order: joy > sadness > anger > fear > surprise.
var rules = []emotionRule{
	{
		label:     domain.EmotionJoy,
		keywords:  []string{"feliz", "alegre", "contento", "dichoso", "satisfecho", "orgulloso"},
		reasoning: "Se detectaron palabras relacionadas con felicidad y satisfacción",
	},
	{
		label:     domain.EmotionSadness,
		keywords:  []string{"triste", "solo", "deprimido", "melancólico", "desanimado"},
		reasoning: "Se detectaron palabras relacionadas con tristeza y soledad",
	},
	{
		label:     domain.EmotionAnger,
		keywords:  []string{"enojado", "furioso", "irritado", "molesto", "enfadado"},
		reasoning: "Se detectaron palabras relacionadas con enojo e irritación",
	},
	{
		label:     domain.EmotionFear,
		keywords:  []string{"miedo", "asustado", "aterrado", "preocupado", "ansioso"},
		reasoning: "Se detectaron palabras relacionadas con miedo y preocupación",
	},
	{
		label:     domain.EmotionSurprise,
		keywords:  []string{"sorprendido", "asombrado", "impactado", "increíble", "wow"},
		reasoning: "Se detectaron palabras relacionadas con sorpresa y asombro",
	},
}

const neutralReasoning = "Análisis básico basado en palabras clave"

var intensifiers = []string{"muy", "mucho", "extremadamente", "totalmente", "completamente"}

// Keyword is the deterministic local classifier. It is pure, does no
// I/O, and never returns an error; empty input resolves to neutral.
type Keyword struct{}

// NewKeyword creates the local keyword classifier.
func NewKeyword() *Keyword { return &Keyword{} }

// Analyze classifies text by ordered keyword matching.
func (k *Keyword) Analyze(_ context.Context, text string) (Result, error) {
	normalized := strings.ToLower(text)

	label := domain.EmotionNeutral
	confidence := neutralConfidence
	reasoning := neutralReasoning

	for _, rule := range rules {
		if containsAny(normalized, rule.keywords) {
			label = rule.label
			confidence = matchedConfidence
			reasoning = rule.reasoning
			break
		}
	}

	return Result{
		Label:      label,
		Confidence: confidence,
		Data: domain.AnalysisData{
			Reasoning: reasoning,
			Intensity: intensityOf(normalized),
			Source:    domain.SourceFallback,
			Timestamp: time.Now().UTC(),
			Text:      text,
		},
	}, nil
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// intensityOf derives the intensity tier from intensifier-word count:
// high for more than two, medium for one or two, low for none.
func intensityOf(normalized string) domain.Intensity {
	count := 0
	for _, word := range strings.Fields(normalized) {
		for _, in := range intensifiers {
			if strings.Contains(word, in) {
				count++
				break
			}
		}
	}

	switch {
	case count > 2:
		return domain.IntensityHigh
	case count > 0:
		return domain.IntensityMedium
	default:
		return domain.IntensityLow
	}
}
