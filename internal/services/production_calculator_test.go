package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"kpi-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func mustWindow(t *testing.T, start, end string) Window {
	t.Helper()
	w, err := ResolveWindow(start, end)
	require.NoError(t, err)
	return w
}

func testBatch(line, product string, setKg, actualKg float64) models.Batch {
	return models.Batch{
		Line:              line,
		ProductCode:       product,
		StartTime:         time.Date(2025, 10, 2, 10, 0, 0, 0, time.UTC),
		BatchSizeSetKg:    setKg,
		BatchSizeActualKg: actualKg,
	}
}

type stubBatchSource struct {
	batches []models.Batch
	err     error
}

func (s stubBatchSource) ListBatches(_ context.Context, _, _ time.Time) ([]models.Batch, error) {
	return s.batches, s.err
}

// ============================================================================
// PRODUCTION CALCULATOR
// ============================================================================

func TestProductionCalculator_SingleBatch(t *testing.T) {
	calc := NewProductionCalculator(stubBatchSource{
		batches: []models.Batch{testBatch("L1", "FEED-01", 10000, 9000)},
	}, 0)

	result, err := calc.Compute(context.Background(), mustWindow(t, "", ""))
	require.NoError(t, err)

	kpi := result.(models.ProductionKPI)
	assert.Equal(t, 9.0, kpi.Summary.ActualTons)
	assert.Equal(t, 10.0, kpi.Summary.PlannedTons)
	require.NotNil(t, kpi.Summary.PlanAttainmentPct)
	assert.Equal(t, 90.0, *kpi.Summary.PlanAttainmentPct)

	require.Len(t, kpi.ByLine, 1)
	assert.Equal(t, "L1", kpi.ByLine[0].Line)
	assert.Equal(t, 9.0, kpi.ByLine[0].ActualTons)
	assert.Equal(t, 10.0, kpi.ByLine[0].PlannedTons)
	require.NotNil(t, kpi.ByLine[0].PlanAttainmentPct)
	assert.Equal(t, 90.0, *kpi.ByLine[0].PlanAttainmentPct)
}

func TestProductionCalculator_ZeroPlannedIsNull(t *testing.T) {
	kpi := productionTotals([]models.Batch{testBatch("L1", "FEED-01", 0, 5000)})

	assert.Equal(t, 5.0, kpi.Summary.ActualTons)
	assert.Equal(t, 0.0, kpi.Summary.PlannedTons)
	assert.Nil(t, kpi.Summary.PlanAttainmentPct, "zero planned tons must yield null, not infinity")
	require.Len(t, kpi.ByLine, 1)
	assert.Nil(t, kpi.ByLine[0].PlanAttainmentPct)
}

func TestProductionCalculator_LinesOrderedAscending(t *testing.T) {
	kpi := productionTotals([]models.Batch{
		testBatch("L3", "A", 1000, 1000),
		testBatch("L1", "A", 1000, 1000),
		testBatch("L2", "A", 1000, 1000),
		testBatch("L1", "B", 2000, 1500),
	})

	require.Len(t, kpi.ByLine, 3)
	assert.Equal(t, "L1", kpi.ByLine[0].Line)
	assert.Equal(t, "L2", kpi.ByLine[1].Line)
	assert.Equal(t, "L3", kpi.ByLine[2].Line)

	// L1 totals two batches
	assert.Equal(t, 2.5, kpi.ByLine[0].ActualTons)
	assert.Equal(t, 3.0, kpi.ByLine[0].PlannedTons)
}

func TestProductionCalculator_EmptyWindow(t *testing.T) {
	kpi := productionTotals(nil)

	assert.Equal(t, 0.0, kpi.Summary.ActualTons)
	assert.Nil(t, kpi.Summary.PlanAttainmentPct)
	assert.Empty(t, kpi.ByLine)
}

func TestProductionCalculator_SourceUnavailable(t *testing.T) {
	calc := NewProductionCalculator(stubBatchSource{err: errors.New("connection refused")}, 0)

	_, err := calc.Compute(context.Background(), mustWindow(t, "", ""))
	assert.ErrorIs(t, err, ErrDataSourceUnavailable)
}

func TestProductionCalculator_SourceTimeout(t *testing.T) {
	calc := NewProductionCalculator(stubBatchSource{err: context.DeadlineExceeded}, 0)

	_, err := calc.Compute(context.Background(), mustWindow(t, "", ""))
	assert.ErrorIs(t, err, ErrDataSourceTimeout)
}
