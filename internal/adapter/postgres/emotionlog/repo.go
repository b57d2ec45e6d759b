// Package emotionlog implements the EmotionLog repository using
// PostgreSQL. Queries are built with squirrel and scanned with scany.
package emotionlog

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/emolog-backend/internal/adapter/postgres"
	"github.com/heartmarshall/emolog-backend/internal/domain"
)

const table = "emotion_logs"

var columns = []string{"id", "user_id", "text", "created_at"}

// Repo provides emotion log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new emotion log repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

type row struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Text      string    `db:"text"`
	CreatedAt time.Time `db:"created_at"`
}

func (r row) toDomain() domain.EmotionLog {
	return domain.EmotionLog{
		ID:        r.ID,
		UserID:    r.UserID,
		Text:      r.Text,
		CreatedAt: r.CreatedAt,
	}
}

// Create inserts a new log row and returns the persisted log. A zero ID
// or CreatedAt is assigned here so callers may pass a bare log.
func (r *Repo) Create(ctx context.Context, log *domain.EmotionLog) (*domain.EmotionLog, error) {
	id := log.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	createdAt := log.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	sql, args, err := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(id, log.UserID, log.Text, createdAt).
		Suffix("RETURNING " + selectColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	var out row
	q := postgres.QuerierFromCtx(ctx, r.pool)
	if err := pgxscan.Get(ctx, q, &out, sql, args...); err != nil {
		return nil, postgres.MapError(err, "emotion log", id)
	}

	created := out.toDomain()
	return &created, nil
}

// GetByID returns a log by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.EmotionLog, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var out row
	q := postgres.QuerierFromCtx(ctx, r.pool)
	if err := pgxscan.Get(ctx, q, &out, sql, args...); err != nil {
		return nil, postgres.MapError(err, "emotion log", id)
	}

	log := out.toDomain()
	return &log, nil
}

// List returns logs across all users, newest first.
func (r *Repo) List(ctx context.Context, limit, offset int) ([]domain.EmotionLog, error) {
	return r.list(ctx, nil, limit, offset)
}

// ListByUser returns one user's logs, newest first.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.EmotionLog, error) {
	return r.list(ctx, squirrel.Eq{"user_id": userID}, limit, offset)
}

func (r *Repo) list(ctx context.Context, where any, limit, offset int) ([]domain.EmotionLog, error) {
	query := postgres.Builder().
		Select(columns...).
		From(table).
		OrderBy("created_at DESC", "id DESC")
	if where != nil {
		query = query.Where(where)
	}
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}
	if offset > 0 {
		query = query.Offset(uint64(offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var rows []row
	q := postgres.QuerierFromCtx(ctx, r.pool)
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "emotion log", uuid.Nil)
	}

	logs := make([]domain.EmotionLog, 0, len(rows))
	for _, rw := range rows {
		logs = append(logs, rw.toDomain())
	}
	return logs, nil
}

func selectColumns() string {
	out := columns[0]
	for _, c := range columns[1:] {
		out += ", " + c
	}
	return out
}
