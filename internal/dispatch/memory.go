package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/emolog-backend/internal/domain"
)

const defaultMemoryLeaseTimeout = time.Minute

// Memory is an in-process Queue used by tests and queue-less
// single-process deployments. It keeps the same at-least-once contract
// as the Postgres backend: leased messages whose lease expires are
// handed out again on a later Lease call.
type Memory struct {
	mu           sync.Mutex
	entries      map[uuid.UUID]*memoryEntry
	order        []uuid.UUID
	leaseTimeout time.Duration
	clock        Clock
}

type memoryEntry struct {
	msg       domain.DispatchMessage
	status    domain.DispatchStatus
	leasedAt  time.Time
	lastError string
}

// MemoryOption configures a Memory queue.
type MemoryOption func(*Memory)

// WithLeaseTimeout overrides the redelivery window.
func WithLeaseTimeout(d time.Duration) MemoryOption {
	return func(m *Memory) { m.leaseTimeout = d }
}

// WithClock overrides the clock (tests).
func WithClock(c Clock) MemoryOption {
	return func(m *Memory) { m.clock = c }
}

// NewMemory creates an empty in-memory queue.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		entries:      make(map[uuid.UUID]*memoryEntry),
		leaseTimeout: defaultMemoryLeaseTimeout,
		clock:        SystemClock{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Publish validates and enqueues a message. A zero message ID is
// assigned; succeeds regardless of whether any consumer exists.
func (m *Memory) Publish(_ context.Context, msg domain.DispatchMessage) error {
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("dispatch publish: %w", err)
	}

	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = m.clock.Now()
	}
	msg.Attempts = 0

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[msg.ID] = &memoryEntry{msg: msg, status: domain.DispatchPending}
	m.order = append(m.order, msg.ID)
	return nil
}

// Lease returns up to limit deliverable messages in publish order,
// marking each leased and incrementing its attempt count.
func (m *Memory) Lease(_ context.Context, limit int) ([]domain.DispatchMessage, error) {
	if limit <= 0 {
		return nil, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	var leased []domain.DispatchMessage

	for _, id := range m.order {
		if len(leased) >= limit {
			break
		}
		e := m.entries[id]
		if !m.deliverable(e, now) {
			continue
		}

		e.status = domain.DispatchLeased
		e.leasedAt = now
		e.msg.Attempts++
		leased = append(leased, e.msg)
	}

	return leased, nil
}

func (m *Memory) deliverable(e *memoryEntry, now time.Time) bool {
	switch e.status {
	case domain.DispatchPending:
		return true
	case domain.DispatchLeased:
		// Lease expired: the previous consumer is presumed gone.
		return now.Sub(e.leasedAt) >= m.leaseTimeout
	default:
		return false
	}
}

// Ack marks a leased message as processed.
func (m *Memory) Ack(_ context.Context, id uuid.UUID) error {
	return m.transition(id, domain.DispatchDone, "")
}

// Fail returns a leased message to pending for redelivery.
func (m *Memory) Fail(_ context.Context, id uuid.UUID, reason string) error {
	return m.transition(id, domain.DispatchPending, reason)
}

// Dead dead-letters a message; it will not be delivered again.
func (m *Memory) Dead(_ context.Context, id uuid.UUID, reason string) error {
	return m.transition(id, domain.DispatchDead, reason)
}

func (m *Memory) transition(id uuid.UUID, to domain.DispatchStatus, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return fmt.Errorf("dispatch message %s: %w", id, domain.ErrNotFound)
	}

	e.status = to
	e.leasedAt = time.Time{}
	if reason != "" {
		e.lastError = reason
	}
	return nil
}

// Stats returns aggregate message counts by status.
func (m *Memory) Stats(_ context.Context) (domain.DispatchStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var stats domain.DispatchStats
	for _, e := range m.entries {
		switch e.status {
		case domain.DispatchPending:
			stats.Pending++
		case domain.DispatchLeased:
			stats.Leased++
		case domain.DispatchDone:
			stats.Done++
		case domain.DispatchDead:
			stats.Dead++
		}
		stats.Total++
	}
	return stats, nil
}
