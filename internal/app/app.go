package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/emolog-backend/internal/adapter/postgres"
	analysisrepo "github.com/heartmarshall/emolog-backend/internal/adapter/postgres/analysis"
	"github.com/heartmarshall/emolog-backend/internal/adapter/postgres/emotionlog"
	"github.com/heartmarshall/emolog-backend/internal/adapter/postgres/queue"
	"github.com/heartmarshall/emolog-backend/internal/analyzer"
	"github.com/heartmarshall/emolog-backend/internal/config"
	analysissvc "github.com/heartmarshall/emolog-backend/internal/service/analysis"
	"github.com/heartmarshall/emolog-backend/internal/service/emotion"
	"github.com/heartmarshall/emolog-backend/internal/transport/middleware"
	"github.com/heartmarshall/emolog-backend/internal/transport/rest"
)

// Run is the HTTP server entry point. It loads configuration, connects
// to the database, assembles the classification engine and services,
// and serves until the context is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("intake_mode", cfg.IntakeMode().String()),
		slog.Bool("remote_analyzer", cfg.Analyzer.RemoteEnabled()),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	logs := emotionlog.New(pool)
	analyses := analysisrepo.New(pool)
	dispatchQueue := queue.New(pool, cfg.Dispatch.LeaseTimeout)
	tx := postgres.NewTxManager(pool)

	engine := NewAnalyzer(cfg.Analyzer, logger)

	emotionSvc := emotion.NewService(logger, logs, analyses, engine, dispatchQueue, tx, cfg.IntakeMode())
	analysisSvc := analysissvc.NewService(logger, analyses, logs, engine)

	router := rest.NewRouter(
		rest.NewHealthHandler(pool, BuildVersion()),
		rest.NewEmotionHandler(emotionSvc, analysisSvc, logger),
		rest.NewAnalysisHandler(analysisSvc, logger),
	)

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.Identity,
	)(router)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// NewAnalyzer assembles the classification engine: the keyword
// classifier alone, or the remote model with the keyword classifier as
// fallback when an API key is configured.
func NewAnalyzer(cfg config.AnalyzerConfig, logger *slog.Logger) analyzer.Analyzer {
	keyword := analyzer.NewKeyword()
	if !cfg.RemoteEnabled() {
		return keyword
	}
	return analyzer.WithFallback(analyzer.NewClaude(cfg, logger), keyword, logger)
}
