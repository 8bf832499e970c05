package services

import (
	"context"
	"testing"

	"kpi-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAdherenceSource struct {
	rows []models.ProductWeighment
	err  error
}

func (s stubAdherenceSource) ListProductWeighments(_ context.Context) ([]models.ProductWeighment, error) {
	return s.rows, s.err
}

func weighment(product, ingredient string, targetKg, actualKg float64) models.ProductWeighment {
	return models.ProductWeighment{
		ProductCode:    product,
		IngredientCode: ingredient,
		TargetKg:       targetKg,
		ActualKg:       actualKg,
	}
}

// ============================================================================
// TOLERANCE BANDS
// ============================================================================

func TestToleranceFor_PrefixRules(t *testing.T) {
	cases := []struct {
		code string
		want float64
	}{
		{"RM-", 0.5},
		{"RM-X", 0.5},
		{"RM-CORN", 0.5},
		{"LIQ-", 0.6},
		{"LIQ-OIL", 0.6},
		{"LIQX", 1.0},
		{"RMX", 1.0},
		{"ADD-VIT", 1.0},
		{"", 1.0},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, toleranceFor(tc.code), "code %q", tc.code)
	}
}

// ============================================================================
// PER-PRODUCT ADHERENCE
// ============================================================================

func TestAdherenceByProduct_Stats(t *testing.T) {
	rows := []models.ProductWeighment{
		weighment("P1", "RM-A", 100, 100.4), // +0.4%, within 0.5
		weighment("P1", "LIQ-B", 100, 101),  // +1.0%, outside 0.6
	}

	products := adherenceByProduct(rows)
	require.Len(t, products, 1)

	p := products[0]
	assert.Equal(t, "P1", p.ProductCode)
	assert.Equal(t, 2, p.Ingredients)
	assert.Equal(t, 0.7, p.AvgDeviationPct)
	assert.Equal(t, 1.0, p.WorstDeviationPct)
	assert.Equal(t, 50.0, p.CompliancePct)
	assert.Equal(t, "LIQ-B", p.WorstIngredient)
}

func TestAdherenceByProduct_NegativeDeviationUsesAbsolute(t *testing.T) {
	rows := []models.ProductWeighment{
		weighment("P1", "RM-A", 200, 199), // -0.5%, boundary: within 0.5
	}

	products := adherenceByProduct(rows)
	require.Len(t, products, 1)
	assert.Equal(t, 0.5, products[0].AvgDeviationPct)
	assert.Equal(t, 100.0, products[0].CompliancePct, "|deviation| == tolerance is compliant")
}

func TestAdherenceByProduct_ZeroTargetExcluded(t *testing.T) {
	rows := []models.ProductWeighment{
		weighment("P1", "RM-A", 0, 50),
		weighment("P2", "RM-B", 100, 100),
	}

	products := adherenceByProduct(rows)
	require.Len(t, products, 1, "products with no qualifying weighments are omitted, not null")
	assert.Equal(t, "P2", products[0].ProductCode)
}

func TestAdherenceByProduct_WorstIngredientTieBreak(t *testing.T) {
	// ING-A and ING-B end with identical average absolute deviation; the
	// lower code must win regardless of input order.
	rows := []models.ProductWeighment{
		weighment("P1", "ING-B", 100, 101), // 1.0%
		weighment("P1", "ING-A", 100, 99),  // 1.0%
	}

	products := adherenceByProduct(rows)
	require.Len(t, products, 1)
	assert.Equal(t, "ING-A", products[0].WorstIngredient)

	// Reversed input order selects the same ingredient.
	reversed := adherenceByProduct([]models.ProductWeighment{rows[1], rows[0]})
	require.Len(t, reversed, 1)
	assert.Equal(t, "ING-A", reversed[0].WorstIngredient)
}

func TestAdherenceByProduct_ProductOrderAscending(t *testing.T) {
	rows := []models.ProductWeighment{
		weighment("P3", "RM-A", 100, 100),
		weighment("P1", "RM-A", 100, 100),
		weighment("P2", "RM-A", 100, 100),
	}

	products := adherenceByProduct(rows)
	require.Len(t, products, 3)
	assert.Equal(t, "P1", products[0].ProductCode)
	assert.Equal(t, "P2", products[1].ProductCode)
	assert.Equal(t, "P3", products[2].ProductCode)
}

func TestRecipeCalculator_IgnoresWindow(t *testing.T) {
	calc := NewRecipeCalculator(stubAdherenceSource{rows: []models.ProductWeighment{
		weighment("P1", "RM-A", 100, 100),
	}}, 0)

	narrow, err := calc.Compute(context.Background(), mustWindow(t, "2025-10-01", "2025-10-01"))
	require.NoError(t, err)
	wide, err := calc.Compute(context.Background(), mustWindow(t, "2025-01-01", "2025-12-31"))
	require.NoError(t, err)

	assert.Equal(t, narrow, wide, "adherence covers the whole dataset, not the caller's window")
}

func TestRecipeCalculator_SourceTimeout(t *testing.T) {
	calc := NewRecipeCalculator(stubAdherenceSource{err: context.DeadlineExceeded}, 0)
	_, err := calc.Compute(context.Background(), mustWindow(t, "", ""))
	assert.ErrorIs(t, err, ErrDataSourceTimeout)
}
