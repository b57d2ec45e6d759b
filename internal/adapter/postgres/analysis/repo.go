// Package analysis implements the EmotionAnalysis repository using
// PostgreSQL. The table is append-only: rows are inserted and read,
// never updated or deleted.
package analysis

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

const table = "emotion_analyses"

var columns = []string{"id", "emotion_log_id", "primary_emotion", "confidence", "analysis_data", "created_at"}

// Repo provides analysis persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new analysis repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

type row struct {
	ID             uuid.UUID            `db:"id"`
	EmotionLogID   uuid.UUID            `db:"emotion_log_id"`
	PrimaryEmotion string               `db:"primary_emotion"`
	Confidence     float64              `db:"confidence"`
	AnalysisData   *domain.AnalysisData `db:"analysis_data"`
	CreatedAt      time.Time            `db:"created_at"`
}

func (r row) toDomain() domain.EmotionAnalysis {
	return domain.EmotionAnalysis{
		ID:             r.ID,
		EmotionLogID:   r.EmotionLogID,
		PrimaryEmotion: domain.EmotionLabel(r.PrimaryEmotion),
		Confidence:     r.Confidence,
		AnalysisData:   r.AnalysisData,
		CreatedAt:      r.CreatedAt,
	}
}

// Create validates and appends an analysis row. Inserting against a
// missing emotion log is a data-integrity fault reported as
// domain.ErrIntegrity, not ErrNotFound: the reference was broken by the
// producer, and retrying cannot repair it.
func (r *Repo) Create(ctx context.Context, analysis *domain.EmotionAnalysis) (*domain.EmotionAnalysis, error) {
	if err := analysis.Validate(); err != nil {
		return nil, err
	}

	id := analysis.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	createdAt := analysis.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	sql, args, err := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(id, analysis.EmotionLogID, analysis.PrimaryEmotion.String(), analysis.Confidence, analysis.AnalysisData, createdAt).
		Suffix("RETURNING " + selectColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	var out row
	q := postgres.QuerierFromCtx(ctx, r.pool)
	if err := pgxscan.Get(ctx, q, &out, sql, args...); err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("analysis %s references missing emotion log %s: %w",
				id, analysis.EmotionLogID, domain.ErrIntegrity)
		}
		return nil, postgres.MapError(err, "analysis", id)
	}

	created := out.toDomain()
	return &created, nil
}

// ListByEmotionLog returns all analyses for one log, newest first.
func (r *Repo) ListByEmotionLog(ctx context.Context, emotionLogID uuid.UUID) ([]domain.EmotionAnalysis, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"emotion_log_id": emotionLogID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	return r.selectMany(ctx, sql, args)
}

// ListByUser returns all analyses attached to one user's logs, newest
// first.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.EmotionAnalysis, error) {
	sql, args, err := postgres.Builder().
		Select(qualify(columns...)...).
		From(table + " a").
		Join("emotion_logs l ON l.id = a.emotion_log_id").
		Where(squirrel.Eq{"l.user_id": userID}).
		OrderBy("a.created_at DESC", "a.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	return r.selectMany(ctx, sql, args)
}

func (r *Repo) selectMany(ctx context.Context, sql string, args []any) ([]domain.EmotionAnalysis, error) {
	var rows []row
	q := postgres.QuerierFromCtx(ctx, r.pool)
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "analysis", uuid.Nil)
	}

	analyses := make([]domain.EmotionAnalysis, 0, len(rows))
	for _, rw := range rows {
		analyses = append(analyses, rw.toDomain())
	}
	return analyses, nil
}

func selectColumns() string {
	out := columns[0]
	for _, c := range columns[1:] {
		out += ", " + c
	}
	return out
}

func qualify(cols ...string) []string {
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		out = append(out, "a."+c)
	}
	return out
}
