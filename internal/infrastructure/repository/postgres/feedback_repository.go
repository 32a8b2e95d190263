package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/mehtaish/feedback-insight/internal/core/domain"
)

type FeedbackRepository struct {
	db *sql.DB
}

func NewFeedbackRepository(db *sql.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *FeedbackRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026083101)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS feedback (
	id TEXT PRIMARY KEY,
	feedback_text TEXT NOT NULL,
	domain TEXT NOT NULL,
	sentiment_label TEXT NOT NULL,
	sentiment_score DOUBLE PRECISION NOT NULL DEFAULT 0,
	method TEXT NOT NULL,
	suggestion TEXT NOT NULL DEFAULT '',
	suggestion_status TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_feedback_created_at ON feedback(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_feedback_sentiment_label ON feedback(sentiment_label);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *FeedbackRepository) Create(ctx context.Context, fb *domain.Feedback) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO feedback (
	id, feedback_text, domain, sentiment_label, sentiment_score, method, suggestion, suggestion_status, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
`,
		fb.ID, fb.Text, fb.Domain, string(fb.SentimentLabel), fb.SentimentScore, string(fb.Method),
		fb.Suggestion, string(fb.SuggestionStatus), fb.CreatedAt, fb.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

func (r *FeedbackRepository) GetByID(ctx context.Context, id string) (*domain.Feedback, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, feedback_text, domain, sentiment_label, sentiment_score, method, suggestion, suggestion_status, created_at, updated_at
FROM feedback
WHERE id = $1
`, id)

	fb, err := scanFeedback(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrFeedbackNotFound, "get feedback", fmt.Errorf("id %s", id))
		}
		return nil, fmt.Errorf("scan feedback: %w", err)
	}
	return fb, nil
}

func (r *FeedbackRepository) List(ctx context.Context, limit int) ([]domain.Feedback, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, feedback_text, domain, sentiment_label, sentiment_score, method, suggestion, suggestion_status, created_at, updated_at
FROM feedback
ORDER BY created_at DESC
LIMIT $1
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer rows.Close()

	var out []domain.Feedback
	for rows.Next() {
		fb, err := scanFeedback(rows)
		if err != nil {
			return nil, fmt.Errorf("scan feedback row: %w", err)
		}
		out = append(out, *fb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feedback rows: %w", err)
	}
	return out, nil
}

func (r *FeedbackRepository) SaveSuggestion(ctx context.Context, id, suggestion string, status domain.SuggestionStatus) error {
	_, err := r.db.ExecContext(ctx, `
UPDATE feedback
SET suggestion = $2, suggestion_status = $3, updated_at = $4
WHERE id = $1
`, id, suggestion, string(status), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save suggestion: %w", err)
	}
	return nil
}

func (r *FeedbackRepository) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	stats := &domain.DashboardStats{Timeseries: []domain.DayBucket{}}

	row := r.db.QueryRowContext(ctx, `
SELECT
	COUNT(*),
	COALESCE(AVG(sentiment_score), 0),
	COUNT(*) FILTER (WHERE sentiment_label = 'Positive'),
	COUNT(*) FILTER (WHERE sentiment_label = 'Neutral'),
	COUNT(*) FILTER (WHERE sentiment_label = 'Negative')
FROM feedback
`)
	if err := row.Scan(&stats.Total, &stats.AvgScore, &stats.CountPositive, &stats.CountNeutral, &stats.CountNegative); err != nil {
		return nil, fmt.Errorf("scan feedback totals: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day, COUNT(*), AVG(sentiment_score)
FROM feedback
GROUP BY day
ORDER BY day
`)
	if err != nil {
		return nil, fmt.Errorf("query feedback timeseries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bucket domain.DayBucket
		if err := rows.Scan(&bucket.Date, &bucket.Count, &bucket.AvgScore); err != nil {
			return nil, fmt.Errorf("scan timeseries row: %w", err)
		}
		stats.Timeseries = append(stats.Timeseries, bucket)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate timeseries rows: %w", err)
	}
	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFeedback(row rowScanner) (*domain.Feedback, error) {
	var fb domain.Feedback
	var label, method, status string

	err := row.Scan(
		&fb.ID, &fb.Text, &fb.Domain, &label, &fb.SentimentScore, &method,
		&fb.Suggestion, &status, &fb.CreatedAt, &fb.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	fb.SentimentLabel = domain.SentimentLabel(label)
	fb.Method = domain.ClassificationMethod(method)
	fb.SuggestionStatus = domain.SuggestionStatus(status)
	return &fb, nil
}
