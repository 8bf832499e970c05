package repository

import (
	"context"
	"log/slog"
	"time"

	"kpi-service/internal/models"

	"github.com/jmoiron/sqlx"
)

type BatchRepository struct {
	db *sqlx.DB
}

func NewBatchRepository(db *sqlx.DB) *BatchRepository {
	return &BatchRepository{db: db}
}

// ListBatches returns batches whose start_time falls in [start, end).
func (r *BatchRepository) ListBatches(ctx context.Context, start, end time.Time) ([]models.Batch, error) {
	query := `
		SELECT batch_id, line, product_code, start_time,
		       batch_size_set_kg, batch_size_actual_kg
		FROM batches
		WHERE start_time >= $1 AND start_time < $2
		ORDER BY start_time
	`

	var batches []models.Batch
	if err := r.db.SelectContext(ctx, &batches, query, start, end); err != nil {
		slog.Error("failed to list batches", "start", start, "end", end, "error", err)
		return nil, err
	}
	return batches, nil
}

// ListProductWeighments returns every weighment with a positive target,
// joined to its batch's product code. The adherence analysis covers the
// whole dataset, so no time predicate applies.
func (r *BatchRepository) ListProductWeighments(ctx context.Context) ([]models.ProductWeighment, error) {
	query := `
		SELECT b.product_code, bw.ingredient_code, bw.target_kg, bw.actual_kg
		FROM batch_weighments bw
		JOIN batches b ON bw.batch_id = b.batch_id
		WHERE bw.target_kg > 0
		ORDER BY b.product_code, bw.ingredient_code
	`

	var rows []models.ProductWeighment
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		slog.Error("failed to list product weighments", "error", err)
		return nil, err
	}
	return rows, nil
}

// ListWeighmentsSince returns weighments recorded at or after the cutoff,
// used for the trailing consumption baseline.
func (r *BatchRepository) ListWeighmentsSince(ctx context.Context, since time.Time) ([]models.BatchWeighment, error) {
	query := `
		SELECT weighment_id, batch_id, ingredient_code, target_kg, actual_kg, weigh_time
		FROM batch_weighments
		WHERE weigh_time >= $1
		ORDER BY weigh_time
	`

	var rows []models.BatchWeighment
	if err := r.db.SelectContext(ctx, &rows, query, since); err != nil {
		slog.Error("failed to list weighments", "since", since, "error", err)
		return nil, err
	}
	return rows, nil
}
