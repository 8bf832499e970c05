package repository

import (
	"context"
	"log/slog"
	"time"

	"kpi-service/internal/models"

	"github.com/jmoiron/sqlx"
)

type EnergyRepository struct {
	db *sqlx.DB
}

func NewEnergyRepository(db *sqlx.DB) *EnergyRepository {
	return &EnergyRepository{db: db}
}

// ListReadings returns one meter's 15-minute readings in [start, end),
// timestamp ascending. The series is served at native cadence; no
// resampling happens anywhere downstream.
func (r *EnergyRepository) ListReadings(ctx context.Context, meterID string, start, end time.Time) ([]models.EnergyReading, error) {
	query := `
		SELECT meter_id, timestamp, kwh, kw
		FROM energy_meters_15min
		WHERE meter_id = $1 AND timestamp >= $2 AND timestamp < $3
		ORDER BY timestamp
	`

	var readings []models.EnergyReading
	if err := r.db.SelectContext(ctx, &readings, query, meterID, start, end); err != nil {
		slog.Error("failed to list energy readings", "meter_id", meterID, "start", start, "end", end, "error", err)
		return nil, err
	}
	return readings, nil
}
