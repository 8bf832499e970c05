package repository

import (
	"context"
	"log/slog"
	"time"

	"kpi-service/internal/models"

	"github.com/jmoiron/sqlx"
)

type DowntimeRepository struct {
	db *sqlx.DB
}

func NewDowntimeRepository(db *sqlx.DB) *DowntimeRepository {
	return &DowntimeRepository{db: db}
}

// ListEvents returns downtime events whose start_time falls in [start, end).
func (r *DowntimeRepository) ListEvents(ctx context.Context, start, end time.Time) ([]models.DowntimeEvent, error) {
	query := `
		SELECT reason_code, start_time, end_time
		FROM downtime_events
		WHERE start_time >= $1 AND start_time < $2
		ORDER BY start_time
	`

	var events []models.DowntimeEvent
	if err := r.db.SelectContext(ctx, &events, query, start, end); err != nil {
		slog.Error("failed to list downtime events", "start", start, "end", end, "error", err)
		return nil, err
	}
	return events, nil
}
