// Package queue implements the dispatch queue on PostgreSQL. Leasing
// uses FOR UPDATE SKIP LOCKED so several consumers can poll the same
// table without handing out the same message twice, and leases that
// outlive the configured timeout are claimed again by the next Lease.
package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/emolog-backend/internal/adapter/postgres"
	"github.com/heartmarshall/emolog-backend/internal/domain"
)

const insertSQL = `
INSERT INTO dispatch_queue (id, emotion_log_id, user_id, text, status, attempts, created_at)
VALUES ($1, $2, $3, $4, 'pending', 0, $5)`

// Lease claims pending messages and expired leases in one statement.
// SKIP LOCKED keeps concurrent consumers from blocking on each other.
const leaseSQL = `
UPDATE dispatch_queue q
SET status = 'leased', leased_at = now(), attempts = q.attempts + 1
FROM (
    SELECT id FROM dispatch_queue
    WHERE status = 'pending'
       OR (status = 'leased' AND leased_at <= now() - make_interval(secs => $2))
    ORDER BY created_at, id
    LIMIT $1
    FOR UPDATE SKIP LOCKED
) picked
WHERE q.id = picked.id
RETURNING q.id, q.emotion_log_id, q.user_id, q.text, q.attempts, q.created_at`

const transitionSQL = `
UPDATE dispatch_queue
SET status = $2, leased_at = NULL, last_error = NULLIF($3, '')
WHERE id = $1 AND status = 'leased'`

const statsSQL = `
SELECT
    count(*) FILTER (WHERE status = 'pending') AS pending,
    count(*) FILTER (WHERE status = 'leased')  AS leased,
    count(*) FILTER (WHERE status = 'done')    AS done,
    count(*) FILTER (WHERE status = 'dead')    AS dead,
    count(*)                                   AS total
FROM dispatch_queue`

// Repo provides dispatch queue persistence backed by PostgreSQL.
type Repo struct {
	pool         *pgxpool.Pool
	leaseTimeout time.Duration
}

// New creates a dispatch queue repository. leaseTimeout is the window a
// leased message stays invisible before it is considered abandoned.
func New(pool *pgxpool.Pool, leaseTimeout time.Duration) *Repo {
	if leaseTimeout <= 0 {
		leaseTimeout = time.Minute
	}
	return &Repo{pool: pool, leaseTimeout: leaseTimeout}
}

type row struct {
	ID           uuid.UUID `db:"id"`
	EmotionLogID uuid.UUID `db:"emotion_log_id"`
	UserID       uuid.UUID `db:"user_id"`
	Text         string    `db:"text"`
	Attempts     int       `db:"attempts"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r row) toDomain() domain.DispatchMessage {
	return domain.DispatchMessage{
		ID:           r.ID,
		EmotionLogID: r.EmotionLogID,
		UserID:       r.UserID,
		Text:         r.Text,
		Attempts:     r.Attempts,
		CreatedAt:    r.CreatedAt,
	}
}

// Publish validates and inserts a pending message. It honors an ambient
// transaction, so intake can enqueue in the same transaction that
// creates the emotion log.
func (r *Repo) Publish(ctx context.Context, msg domain.DispatchMessage) error {
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("dispatch publish: %w", err)
	}

	id := msg.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	createdAt := msg.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	if _, err := q.Exec(ctx, insertSQL, id, msg.EmotionLogID, msg.UserID, msg.Text, createdAt); err != nil {
		return postgres.MapError(err, "dispatch message", id)
	}
	return nil
}

// Lease claims up to limit deliverable messages, oldest first.
func (r *Repo) Lease(ctx context.Context, limit int) ([]domain.DispatchMessage, error) {
	if limit <= 0 {
		return nil, nil
	}

	var rows []row
	q := postgres.QuerierFromCtx(ctx, r.pool)
	if err := pgxscan.Select(ctx, q, &rows, leaseSQL, limit, r.leaseTimeout.Seconds()); err != nil {
		return nil, postgres.MapError(err, "dispatch message", uuid.Nil)
	}

	msgs := make([]domain.DispatchMessage, 0, len(rows))
	for _, rw := range rows {
		msgs = append(msgs, rw.toDomain())
	}
	return msgs, nil
}

// Ack marks a leased message as processed.
func (r *Repo) Ack(ctx context.Context, id uuid.UUID) error {
	return r.transition(ctx, id, domain.DispatchDone, "")
}

// Fail returns a leased message to pending for redelivery.
func (r *Repo) Fail(ctx context.Context, id uuid.UUID, reason string) error {
	return r.transition(ctx, id, domain.DispatchPending, reason)
}

// Dead dead-letters a message; it is kept for inspection but never
// delivered again.
func (r *Repo) Dead(ctx context.Context, id uuid.UUID, reason string) error {
	return r.transition(ctx, id, domain.DispatchDead, reason)
}

func (r *Repo) transition(ctx context.Context, id uuid.UUID, to domain.DispatchStatus, reason string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	tag, err := q.Exec(ctx, transitionSQL, id, to.String(), reason)
	if err != nil {
		return postgres.MapError(err, "dispatch message", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("dispatch message %s is not leased: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Stats returns aggregate message counts by status.
func (r *Repo) Stats(ctx context.Context) (domain.DispatchStats, error) {
	var out struct {
		Pending int `db:"pending"`
		Leased  int `db:"leased"`
		Done    int `db:"done"`
		Dead    int `db:"dead"`
		Total   int `db:"total"`
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	if err := pgxscan.Get(ctx, q, &out, statsSQL); err != nil {
		return domain.DispatchStats{}, fmt.Errorf("dispatch stats: %w", err)
	}

	return domain.DispatchStats{
		Pending: out.Pending,
		Leased:  out.Leased,
		Done:    out.Done,
		Dead:    out.Dead,
		Total:   out.Total,
	}, nil
}
