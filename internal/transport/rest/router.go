package rest

import "net/http"

// NewRouter registers every REST route on a fresh mux. Middleware is
// applied by the caller around the returned handler.
func NewRouter(health *HealthHandler, emotions *EmotionHandler, analysis *AnalysisHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)

	mux.HandleFunc("POST /api/v1/emotions", emotions.Submit)
	mux.HandleFunc("GET /api/v1/emotions", emotions.List)
	mux.HandleFunc("GET /api/v1/emotions/{id}", emotions.GetByID)
	mux.HandleFunc("GET /api/v1/emotions/user/{userID}", emotions.ListByUser)
	mux.HandleFunc("GET /api/v1/emotions/{id}/analyses", emotions.ListAnalyses)

	mux.HandleFunc("POST /api/v1/ai-analysis", analysis.Analyze)
	mux.HandleFunc("GET /api/v1/ai-analysis/patterns/{userID}", analysis.Patterns)
	mux.HandleFunc("GET /api/v1/ai-analysis/insights/{userID}", analysis.Insights)

	return mux
}
