package repository

import (
	"context"
	"log/slog"
	"time"

	"kpi-service/internal/models"

	"github.com/jmoiron/sqlx"
)

type ProcessRepository struct {
	db *sqlx.DB
}

func NewProcessRepository(db *sqlx.DB) *ProcessRepository {
	return &ProcessRepository{db: db}
}

// ListSamples returns 5-minute conditioning samples in [start, end).
func (r *ProcessRepository) ListSamples(ctx context.Context, start, end time.Time) ([]models.ProcessSample, error) {
	query := `
		SELECT timestamp, line, steam_flow_kgph, cond_temp_sp_c, cond_temp_pv_c
		FROM process_signals_5min
		WHERE timestamp >= $1 AND timestamp < $2
		ORDER BY timestamp
	`

	var samples []models.ProcessSample
	if err := r.db.SelectContext(ctx, &samples, query, start, end); err != nil {
		slog.Error("failed to list process samples", "start", start, "end", end, "error", err)
		return nil, err
	}
	return samples, nil
}
