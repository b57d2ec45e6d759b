// Command worker runs the dispatch consumers: it leases queued emotion
// logs, classifies them, persists the analyses, and acknowledges the
// messages. Run it alongside the server whenever intake is async.
//
// Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/heartmarshall/emolog-backend/internal/adapter/postgres"
	analysisrepo "github.com/heartmarshall/emolog-backend/internal/adapter/postgres/analysis"
	"github.com/heartmarshall/emolog-backend/internal/adapter/postgres/queue"
	"github.com/heartmarshall/emolog-backend/internal/app"
	"github.com/heartmarshall/emolog-backend/internal/config"
	"github.com/heartmarshall/emolog-backend/internal/dispatch"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)
	logger.Info("starting dispatch workers",
		slog.String("version", app.BuildVersion()),
		slog.Int("workers", cfg.Dispatch.Workers),
		slog.Int("max_attempts", cfg.Dispatch.MaxAttempts),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	dispatchQueue := queue.New(pool, cfg.Dispatch.LeaseTimeout)
	analyses := analysisrepo.New(pool)
	engine := app.NewAnalyzer(cfg.Analyzer, logger)

	workerCfg := dispatch.WorkerConfig{
		BatchSize:    cfg.Dispatch.BatchSize,
		PollInterval: cfg.Dispatch.PollInterval,
		MaxAttempts:  cfg.Dispatch.MaxAttempts,
	}

	var wg sync.WaitGroup
	for i := 0; i < cfg.Dispatch.Workers; i++ {
		worker := dispatch.NewWorker(logger, dispatchQueue, engine, analyses, workerCfg)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := worker.Run(ctx); err != nil {
				logger.Error("worker stopped", slog.String("error", err.Error()))
			}
		}()
	}

	wg.Wait()
	logger.Info("dispatch workers stopped")
}
