package analyzer

import (
	"context"
	"log/slog"
)

// Fallback tries a primary analyzer and degrades to a secondary one on
// any error. With Keyword as the secondary, Analyze never fails: remote
// unavailability is logged and recovered, never surfaced to the caller.
type Fallback struct {
	primary   Analyzer
	secondary Analyzer
	log       *slog.Logger
}

// WithFallback composes primary over secondary.
func WithFallback(primary, secondary Analyzer, log *slog.Logger) *Fallback {
	return &Fallback{
		primary:   primary,
		secondary: secondary,
		log:       log.With("analyzer", "fallback"),
	}
}

// Analyze returns the primary result when available, the secondary
// result otherwise.
func (f *Fallback) Analyze(ctx context.Context, text string) (Result, error) {
	res, err := f.primary.Analyze(ctx, text)
	if err == nil {
		return res, nil
	}

	f.log.WarnContext(ctx, "primary analyzer failed, using fallback",
		slog.String("error", err.Error()),
	)

	return f.secondary.Analyze(ctx, text)
}
