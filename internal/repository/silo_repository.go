package repository

import (
	"context"
	"log/slog"
	"time"

	"kpi-service/internal/models"

	"github.com/jmoiron/sqlx"
)

type SiloRepository struct {
	db *sqlx.DB
}

func NewSiloRepository(db *sqlx.DB) *SiloRepository {
	return &SiloRepository{db: db}
}

// ListSilos returns the static silo-to-material mapping.
func (r *SiloRepository) ListSilos(ctx context.Context) ([]models.Silo, error) {
	query := `SELECT silo_id, material_code FROM silos ORDER BY silo_id`

	var silos []models.Silo
	if err := r.db.SelectContext(ctx, &silos, query); err != nil {
		slog.Error("failed to list silos", "error", err)
		return nil, err
	}
	return silos, nil
}

// ListLevelSamples returns every level sample. The caller reduces these to
// the latest sample per silo; the snapshot is the maximum-timestamp reading,
// not an average over a range.
func (r *SiloRepository) ListLevelSamples(ctx context.Context) ([]models.SiloLevelSample, error) {
	query := `
		SELECT silo_id, timestamp, inventory_t, level_pct
		FROM silo_levels_15min
		ORDER BY silo_id, timestamp
	`

	var samples []models.SiloLevelSample
	if err := r.db.SelectContext(ctx, &samples, query); err != nil {
		slog.Error("failed to list silo level samples", "error", err)
		return nil, err
	}
	return samples, nil
}

// ListEventsSince returns silo events at or after the cutoff.
func (r *SiloRepository) ListEventsSince(ctx context.Context, since time.Time) ([]models.SiloEvent, error) {
	query := `
		SELECT timestamp, event_type
		FROM silo_events
		WHERE timestamp >= $1
		ORDER BY timestamp
	`

	var events []models.SiloEvent
	if err := r.db.SelectContext(ctx, &events, query, since); err != nil {
		slog.Error("failed to list silo events", "since", since, "error", err)
		return nil, err
	}
	return events, nil
}
