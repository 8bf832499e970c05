package repository

import (
	"context"
	"log/slog"
	"time"

	"kpi-service/internal/models"

	"github.com/jmoiron/sqlx"
)

type BaggingRepository struct {
	db *sqlx.DB
}

func NewBaggingRepository(db *sqlx.DB) *BaggingRepository {
	return &BaggingRepository{db: db}
}

// ListRuns returns bagging runs whose whole interval falls in [start, end).
func (r *BaggingRepository) ListRuns(ctx context.Context, start, end time.Time) ([]models.BaggingRun, error) {
	query := `
		SELECT start_time, end_time, bag_count, rework_bags, avg_bag_weight_kg
		FROM bagging
		WHERE start_time >= $1 AND end_time < $2
		ORDER BY start_time
	`

	var runs []models.BaggingRun
	if err := r.db.SelectContext(ctx, &runs, query, start, end); err != nil {
		slog.Error("failed to list bagging runs", "start", start, "end", end, "error", err)
		return nil, err
	}
	return runs, nil
}
