package dispatch

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/heartmarshall/emolog-backend/internal/analyzer"
	"github.com/heartmarshall/emolog-backend/internal/domain"
)

type analyzerFunc func(ctx context.Context, text string) (analyzer.Result, error)

func (f analyzerFunc) Analyze(ctx context.Context, text string) (analyzer.Result, error) {
	return f(ctx, text)
}

// stubStore records created analyses and can fail a configurable number
// of times before succeeding.
type stubStore struct {
	mu       sync.Mutex
	created  []*domain.EmotionAnalysis
	failures int
	err      error
}

func (s *stubStore) Create(_ context.Context, a *domain.EmotionAnalysis) (*domain.EmotionAnalysis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failures > 0 {
		s.failures--
		return nil, s.err
	}
	s.created = append(s.created, a)
	return a, nil
}

func (s *stubStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.created)
}

func keywordWorker(t *testing.T, q Queue, store resultStore, cfg WorkerConfig) *Worker {
	t.Helper()
	return NewWorker(slog.Default(), q, analyzer.NewKeyword(), store, cfg)
}

func TestWorker_ProcessOnce_Success(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	q := NewMemory()
	store := &stubStore{}

	msg := testMessage()
	msg.Text = "Estoy muy feliz hoy"
	if err := q.Publish(ctx, msg); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	n, err := keywordWorker(t, q, store, WorkerConfig{}).ProcessOnce(ctx)
	if err != nil {
		t.Fatalf("ProcessOnce: %v", err)
	}
	if n != 1 {
		t.Fatalf("processed: got %d, want 1", n)
	}

	if store.count() != 1 {
		t.Fatalf("stored analyses: got %d, want 1", store.count())
	}
	got := store.created[0]
	if got.EmotionLogID != msg.EmotionLogID {
		t.Error("analysis should reference the message's emotion log")
	}
	if got.PrimaryEmotion != domain.EmotionJoy {
		t.Errorf("emotion: got %s, want joy", got.PrimaryEmotion)
	}
	if got.AnalysisData == nil || got.AnalysisData.Source != domain.SourceFallback {
		t.Error("analysis evidence should carry the fallback source")
	}

	stats, _ := q.Stats(ctx)
	if stats.Done != 1 {
		t.Errorf("message should be acked, stats: %+v", stats)
	}
}

func TestWorker_PersistFailureThenRedelivery(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	q := NewMemory()
	store := &stubStore{failures: 1, err: errors.New("connection reset")}

	if err := q.Publish(ctx, testMessage()); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	w := keywordWorker(t, q, store, WorkerConfig{MaxAttempts: 5})

	// First delivery: persist fails, message is released.
	if _, err := w.ProcessOnce(ctx); err != nil {
		t.Fatalf("ProcessOnce: %v", err)
	}
	if store.count() != 0 {
		t.Fatal("no analysis should exist after the failed attempt")
	}
	stats, _ := q.Stats(ctx)
	if stats.Pending != 1 {
		t.Fatalf("message should be pending for redelivery, stats: %+v", stats)
	}

	// Redelivery succeeds: exactly one analysis in the end.
	if _, err := w.ProcessOnce(ctx); err != nil {
		t.Fatalf("ProcessOnce: %v", err)
	}
	if store.count() != 1 {
		t.Fatalf("stored analyses after recovery: got %d, want exactly 1", store.count())
	}
	stats, _ = q.Stats(ctx)
	if stats.Done != 1 {
		t.Errorf("message should be done, stats: %+v", stats)
	}
}

func TestWorker_ExhaustedRetriesDeadLetters(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	q := NewMemory()
	store := &stubStore{failures: 100, err: errors.New("disk full")}

	if err := q.Publish(ctx, testMessage()); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	w := keywordWorker(t, q, store, WorkerConfig{MaxAttempts: 3})

	for range 3 {
		if _, err := w.ProcessOnce(ctx); err != nil {
			t.Fatalf("ProcessOnce: %v", err)
		}
	}

	stats, _ := q.Stats(ctx)
	if stats.Dead != 1 {
		t.Fatalf("message should be dead-lettered after 3 attempts, stats: %+v", stats)
	}
	if store.count() != 0 {
		t.Error("no analysis should be stored for a dead-lettered message")
	}

	// A dead message is never handed out again.
	n, _ := w.ProcessOnce(ctx)
	if n != 0 {
		t.Errorf("dead message was redelivered, processed %d", n)
	}
}

func TestWorker_IntegrityFaultDeadLettersImmediately(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	q := NewMemory()
	store := &stubStore{failures: 100, err: domain.ErrIntegrity}

	if err := q.Publish(ctx, testMessage()); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	w := keywordWorker(t, q, store, WorkerConfig{MaxAttempts: 5})

	if _, err := w.ProcessOnce(ctx); err != nil {
		t.Fatalf("ProcessOnce: %v", err)
	}

	stats, _ := q.Stats(ctx)
	if stats.Dead != 1 {
		t.Fatalf("integrity fault should dead-letter on the first attempt, stats: %+v", stats)
	}
}

func TestWorker_AnalyzerFailureRetries(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	q := NewMemory()
	store := &stubStore{}

	broken := analyzerFunc(func(context.Context, string) (analyzer.Result, error) {
		return analyzer.Result{}, errors.New("engine offline")
	})

	if err := q.Publish(ctx, testMessage()); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	w := NewWorker(slog.Default(), q, broken, store, WorkerConfig{MaxAttempts: 5})

	if _, err := w.ProcessOnce(ctx); err != nil {
		t.Fatalf("ProcessOnce: %v", err)
	}

	stats, _ := q.Stats(ctx)
	if stats.Pending != 1 {
		t.Errorf("classification failure should release the message, stats: %+v", stats)
	}
	if store.count() != 0 {
		t.Error("nothing should be stored when classification fails")
	}
}

func TestWorker_RedeliveryAfterLostAckDuplicates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clock := &fakeClock{now: time.Now().UTC()}
	q := NewMemory(WithClock(clock), WithLeaseTimeout(time.Minute))
	store := &stubStore{}

	if err := q.Publish(ctx, testMessage()); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	w := keywordWorker(t, q, store, WorkerConfig{MaxAttempts: 5})

	// First consumer persists but its lease times out before the ack is
	// observed (simulated by expiring the lease after processing).
	msgs, _ := q.Lease(ctx, 1)
	if len(msgs) != 1 {
		t.Fatal("expected initial delivery")
	}
	if _, err := store.Create(ctx, &domain.EmotionAnalysis{EmotionLogID: msgs[0].EmotionLogID}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	clock.advance(2 * time.Minute)

	// A second worker redelivers and processes the same message.
	if _, err := w.ProcessOnce(ctx); err != nil {
		t.Fatalf("ProcessOnce: %v", err)
	}

	if store.count() != 2 {
		t.Fatalf("at-least-once redelivery should append a second row, got %d", store.count())
	}
}

func TestWorker_RunStopsOnCancel(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	w := keywordWorker(t, NewMemory(), &stubStore{}, WorkerConfig{PollInterval: 10 * time.Millisecond})

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run should return nil on cancellation, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancellation")
	}
}
