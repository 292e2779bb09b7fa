package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zaheerkhan4077/YTBNICHES/internal/model"
)

type RunRepo struct {
	pool *pgxpool.Pool
}

func NewRunRepo(pool *pgxpool.Pool) *RunRepo {
	return &RunRepo{pool: pool}
}

// Insert records one completed aggregation run. The created-at stamp is
// set here so the stored row and the returned model agree.
func (r *RunRepo) Insert(ctx context.Context, run *model.Run) error {
	stampCreatedAt(run)
	query := `
		INSERT INTO runs (id, mode, region, keywords, days, result_count,
		                  removed_min_views, removed_region, removed_subscribers,
		                  duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.pool.Exec(ctx, query,
		run.ID, run.Mode, run.Region, run.Keywords, run.Days, run.ResultCount,
		run.RemovedByMinViews, run.RemovedByRegion, run.RemovedBySubscribers,
		run.DurationMs, run.CreatedAt,
	)
	return err
}

// stampCreatedAt fills a missing creation time. ListRecent orders by
// created_at, so an unset stamp would sort the row to the distant past.
func stampCreatedAt(run *model.Run) {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
}

// ListRecent returns the newest runs first.
func (r *RunRepo) ListRecent(ctx context.Context, limit int) ([]model.Run, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query := `
		SELECT id, mode, region, keywords, days, result_count,
		       removed_min_views, removed_region, removed_subscribers,
		       duration_ms, created_at
		FROM runs
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []model.Run
	for rows.Next() {
		var run model.Run
		err := rows.Scan(
			&run.ID, &run.Mode, &run.Region, &run.Keywords, &run.Days, &run.ResultCount,
			&run.RemovedByMinViews, &run.RemovedByRegion, &run.RemovedBySubscribers,
			&run.DurationMs, &run.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Totals returns aggregate counters over the whole run history.
func (r *RunRepo) Totals(ctx context.Context) (*model.RunTotals, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE mode = 'keywords'),
		       COUNT(*) FILTER (WHERE mode = 'trending'),
		       COALESCE(SUM(result_count), 0)
		FROM runs`

	var t model.RunTotals
	err := r.pool.QueryRow(ctx, query).Scan(
		&t.TotalRuns, &t.KeywordRuns, &t.TrendingRuns, &t.TotalRecords,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
