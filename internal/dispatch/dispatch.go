// Package dispatch decouples text intake from classification. Intake
// publishes a self-contained DispatchMessage; a Worker leases messages,
// classifies them, persists the result, and acknowledges.
//
// Delivery is at-least-once: a leased message that is never acknowledged
// becomes eligible for redelivery, so the same message may be processed
// twice. Reprocessing appends an extra analysis row for the same log,
// which the append-only store accepts.
package dispatch

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/emolog-backend/internal/domain"
)

// Publisher enqueues dispatch messages. Publish must succeed even when
// no consumer is running, and must not block on classification.
type Publisher interface {
	Publish(ctx context.Context, msg domain.DispatchMessage) error
}

// Queue is the full consumer-side contract. Lease hands out up to limit
// pending messages, marking them leased and counting the delivery
// attempt. Each leased message must end in exactly one of Ack (done),
// Fail (back to pending, eligible for redelivery), or Dead
// (dead-lettered, no further redelivery); messages leased longer than
// the backend's lease timeout are re-leased to another consumer.
type Queue interface {
	Publisher

	Lease(ctx context.Context, limit int) ([]domain.DispatchMessage, error)
	Ack(ctx context.Context, id uuid.UUID) error
	Fail(ctx context.Context, id uuid.UUID, reason string) error
	Dead(ctx context.Context, id uuid.UUID, reason string) error
}

// StatsProvider is implemented by backends that can report aggregate
// message counts.
type StatsProvider interface {
	Stats(ctx context.Context) (domain.DispatchStats, error)
}

// Clock abstracts time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// SystemClock uses the system time in UTC.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time { return time.Now().UTC() }
