package repository

import (
	"context"
	"log/slog"
	"time"

	"kpi-service/internal/models"

	"github.com/jmoiron/sqlx"
)

type QualityRepository struct {
	db *sqlx.DB
}

func NewQualityRepository(db *sqlx.DB) *QualityRepository {
	return &QualityRepository{db: db}
}

// ListResults returns quality inspections in [start, end).
func (r *QualityRepository) ListResults(ctx context.Context, start, end time.Time) ([]models.QualityResult, error) {
	query := `
		SELECT timestamp, disposition
		FROM quality_results
		WHERE timestamp >= $1 AND timestamp < $2
		ORDER BY timestamp
	`

	var results []models.QualityResult
	if err := r.db.SelectContext(ctx, &results, query, start, end); err != nil {
		slog.Error("failed to list quality results", "start", start, "end", end, "error", err)
		return nil, err
	}
	return results, nil
}
