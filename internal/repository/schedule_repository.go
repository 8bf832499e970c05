package repository

import (
	"context"
	"log/slog"
	"time"

	"kpi-service/internal/models"

	"github.com/jmoiron/sqlx"
)

type ScheduleRepository struct {
	db *sqlx.DB
}

func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// ListOrders returns production orders whose start_time falls in [start, end).
// An order's own interval may extend past end; the availability join scopes
// samples to the full order interval.
func (r *ScheduleRepository) ListOrders(ctx context.Context, start, end time.Time) ([]models.Order, error) {
	query := `
		SELECT order_id, line, start_time, end_time
		FROM orders
		WHERE start_time >= $1 AND start_time < $2
		ORDER BY line, start_time
	`

	var orders []models.Order
	if err := r.db.SelectContext(ctx, &orders, query, start, end); err != nil {
		slog.Error("failed to list orders", "start", start, "end", end, "error", err)
		return nil, err
	}
	return orders, nil
}

// ListStateSamples returns 5-minute line state samples in [start, end).
func (r *ScheduleRepository) ListStateSamples(ctx context.Context, start, end time.Time) ([]models.LineStateSample, error) {
	query := `
		SELECT line, timestamp, state
		FROM line_states_5min
		WHERE timestamp >= $1 AND timestamp < $2
		ORDER BY line, timestamp
	`

	var samples []models.LineStateSample
	if err := r.db.SelectContext(ctx, &samples, query, start, end); err != nil {
		slog.Error("failed to list line state samples", "start", start, "end", end, "error", err)
		return nil, err
	}
	return samples, nil
}
