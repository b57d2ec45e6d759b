package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/emolog-backend/internal/analyzer"
	"github.com/heartmarshall/emolog-backend/internal/domain"
)

const (
	defaultBatchSize    = 10
	defaultPollInterval = time.Second
	defaultMaxAttempts  = 5
)

// resultStore persists classification results. Implemented by the
// analysis repository.
type resultStore interface {
	Create(ctx context.Context, analysis *domain.EmotionAnalysis) (*domain.EmotionAnalysis, error)
}

// WorkerConfig defines how the Worker polls and bounds retries.
type WorkerConfig struct {
	BatchSize    int
	PollInterval time.Duration
	// MaxAttempts is the delivery budget per message. A message failing
	// on its MaxAttempts-th delivery is dead-lettered instead of
	// released for another round.
	MaxAttempts int
}

func (c WorkerConfig) withDefaults() WorkerConfig {
	if c.BatchSize <= 0 {
		c.BatchSize = defaultBatchSize
	}
	if c.PollInterval <= 0 {
		c.PollInterval = defaultPollInterval
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = defaultMaxAttempts
	}
	return c
}

// Worker is the dispatch consumer: it leases messages, classifies the
// snapshotted text, persists the analysis, and acknowledges. Each
// message is processed to completion before the next one begins; run
// several Workers for parallelism, with no ordering across logs.
type Worker struct {
	queue    Queue
	analyzer analyzer.Analyzer
	store    resultStore
	cfg      WorkerConfig
	log      *slog.Logger
}

// NewWorker creates a dispatch consumer.
func NewWorker(log *slog.Logger, queue Queue, an analyzer.Analyzer, store resultStore, cfg WorkerConfig) *Worker {
	return &Worker{
		queue:    queue,
		analyzer: an,
		store:    store,
		cfg:      cfg.withDefaults(),
		log:      log.With("component", "dispatch_worker"),
	}
}

// Run polls the queue until the context is cancelled. Infrastructure
// errors (lease failures) are logged and retried after the poll
// interval rather than killing the worker.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		n, err := w.ProcessOnce(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			w.log.ErrorContext(ctx, "lease batch failed", slog.String("error", err.Error()))
		}

		if n == 0 {
			if err := w.sleep(ctx); err != nil {
				return nil
			}
		}
	}
}

// ProcessOnce leases and processes a single batch. Returns the number
// of messages handled (acked, failed, or dead-lettered).
func (w *Worker) ProcessOnce(ctx context.Context) (int, error) {
	msgs, err := w.queue.Lease(ctx, w.cfg.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("lease: %w", err)
	}

	for _, msg := range msgs {
		w.process(ctx, msg)
	}
	return len(msgs), nil
}

// process runs one message to completion: classify, persist, ack. The
// message is acknowledged only after the analysis row is durably
// written; any earlier failure leaves it eligible for redelivery.
func (w *Worker) process(ctx context.Context, msg domain.DispatchMessage) {
	res, err := w.analyzer.Analyze(ctx, msg.Text)
	if err != nil {
		// Cannot happen with the fallback chain, but any future engine
		// may fail; treat as retryable rather than dropping the message.
		w.retryOrDead(ctx, msg, fmt.Errorf("classify: %w", err))
		return
	}

	analysis := &domain.EmotionAnalysis{
		ID:             uuid.New(),
		EmotionLogID:   msg.EmotionLogID,
		PrimaryEmotion: res.Label,
		Confidence:     res.Confidence,
		AnalysisData:   &res.Data,
		CreatedAt:      time.Now().UTC(),
	}

	if _, err := w.store.Create(ctx, analysis); err != nil {
		if errors.Is(err, domain.ErrIntegrity) {
			// The referenced log does not exist; redelivery cannot fix
			// that. Dead-letter and flag for operators.
			w.log.ErrorContext(ctx, "data-integrity fault: analysis references missing emotion log",
				slog.String("message_id", msg.ID.String()),
				slog.String("emotion_log_id", msg.EmotionLogID.String()),
			)
			w.dead(ctx, msg, err)
			return
		}
		w.retryOrDead(ctx, msg, fmt.Errorf("persist analysis: %w", err))
		return
	}

	if err := w.queue.Ack(ctx, msg.ID); err != nil {
		// The analysis is saved but the message stays leased; after the
		// lease expires it will be redelivered and produce a duplicate
		// analysis row, which at-least-once delivery permits.
		w.log.WarnContext(ctx, "ack failed after persist",
			slog.String("message_id", msg.ID.String()),
			slog.String("error", err.Error()),
		)
		return
	}

	w.log.InfoContext(ctx, "message processed",
		slog.String("message_id", msg.ID.String()),
		slog.String("emotion_log_id", msg.EmotionLogID.String()),
		slog.String("emotion", res.Label.String()),
		slog.Int("attempt", msg.Attempts),
	)
}

// retryOrDead releases the message for redelivery while it has budget
// left, and dead-letters it once the attempt budget is exhausted.
func (w *Worker) retryOrDead(ctx context.Context, msg domain.DispatchMessage, cause error) {
	if msg.Attempts >= w.cfg.MaxAttempts {
		w.log.ErrorContext(ctx, "message exhausted retry budget, dead-lettering",
			slog.String("message_id", msg.ID.String()),
			slog.Int("attempts", msg.Attempts),
			slog.String("error", cause.Error()),
		)
		w.dead(ctx, msg, cause)
		return
	}

	w.log.WarnContext(ctx, "message processing failed, releasing for redelivery",
		slog.String("message_id", msg.ID.String()),
		slog.Int("attempt", msg.Attempts),
		slog.String("error", cause.Error()),
	)
	if err := w.queue.Fail(ctx, msg.ID, cause.Error()); err != nil {
		w.log.ErrorContext(ctx, "release failed; message will redeliver after lease expiry",
			slog.String("message_id", msg.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}

func (w *Worker) dead(ctx context.Context, msg domain.DispatchMessage, cause error) {
	if err := w.queue.Dead(ctx, msg.ID, cause.Error()); err != nil {
		w.log.ErrorContext(ctx, "dead-letter failed",
			slog.String("message_id", msg.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}

func (w *Worker) sleep(ctx context.Context) error {
	timer := time.NewTimer(w.cfg.PollInterval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
