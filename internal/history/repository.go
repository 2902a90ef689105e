package history

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lifeline-aid/platform/internal/shared/errors"
	"github.com/lifeline-aid/platform/internal/shared/metrics"
	"github.com/lifeline-aid/platform/internal/triage"
)

// Repository provides database operations for the assessment history
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new history repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Record implements triage.Recorder. It stores the triage decision only.
func (r *Repository) Record(ctx context.Context, a *triage.Assessment) error {
	start := time.Now()

	query := `
		INSERT INTO assessments (
			id, created_at, condition_label, condition_type, confidence_tier,
			priority, triage_color, input_style, backend, elapsed_ms
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)`

	_, err := r.pool.Exec(ctx, query,
		a.ID, a.CreatedAt, a.Condition, string(a.ConditionType), string(a.Tier),
		string(a.Priority), string(a.TriageColor), string(a.InputStyle),
		a.Backend, a.ElapsedMs,
	)

	metrics.RecordDBQuery("history_insert", time.Since(start))
	if err != nil {
		return errors.Wrap(err, "failed to record assessment")
	}

	metrics.RecordHistoryEntry()
	return nil
}

// List lists recorded assessments, newest first, with optional filters.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]Entry, int, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argNum := 1

	if filter.Condition != "" {
		conditions = append(conditions, fmt.Sprintf("condition_label = $%d", argNum))
		args = append(args, filter.Condition)
		argNum++
	}
	if filter.Tier != "" {
		conditions = append(conditions, fmt.Sprintf("confidence_tier = $%d", argNum))
		args = append(args, filter.Tier)
		argNum++
	}
	if filter.Priority != "" {
		conditions = append(conditions, fmt.Sprintf("priority = $%d", argNum))
		args = append(args, filter.Priority)
		argNum++
	}

	where := ""
	for i, c := range conditions {
		if i == 0 {
			where = c
			continue
		}
		where += " AND " + c
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM assessments WHERE " + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, "failed to count assessments")
	}

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	query := fmt.Sprintf(`
		SELECT id, created_at, condition_label, condition_type, confidence_tier,
			priority, triage_color, input_style, backend, elapsed_ms
		FROM assessments
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, where, argNum, argNum+1)
	args = append(args, limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list assessments")
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID, &e.CreatedAt, &e.Condition, &e.ConditionType, &e.Tier,
			&e.Priority, &e.TriageColor, &e.InputStyle, &e.Backend, &e.ElapsedMs,
		); err != nil {
			return nil, 0, errors.Wrap(err, "failed to scan assessment")
		}
		entries = append(entries, e)
	}

	return entries, total, rows.Err()
}

// Stats aggregates recorded assessments by tier, priority and type.
func (r *Repository) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		ByTier:     make(map[string]int),
		ByPriority: make(map[string]int),
		ByType:     make(map[string]int),
	}

	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM assessments`).Scan(&stats.Total); err != nil {
		return nil, errors.Wrap(err, "failed to count assessments")
	}

	if err := r.aggregate(ctx, "confidence_tier", stats.ByTier); err != nil {
		return nil, err
	}
	if err := r.aggregate(ctx, "priority", stats.ByPriority); err != nil {
		return nil, err
	}
	if err := r.aggregate(ctx, "condition_type", stats.ByType); err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *Repository) aggregate(ctx context.Context, column string, into map[string]int) error {
	// column is one of our own identifiers, never user input.
	query := fmt.Sprintf(`SELECT %s, COUNT(*) FROM assessments GROUP BY %s`, column, column)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return errors.Wrap(err, "failed to aggregate "+column)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return errors.Wrap(err, "failed to scan aggregate row")
		}
		into[key] = count
	}
	return rows.Err()
}
