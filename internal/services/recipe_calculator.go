package services

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"kpi-service/internal/models"
)

type AdherenceSource interface {
	ListProductWeighments(ctx context.Context) ([]models.ProductWeighment, error)
}

// Tolerance bands by ingredient code prefix. Raw materials weigh tightest,
// liquids next, everything else gets the general band.
const (
	toleranceRawMaterialPct = 0.5
	toleranceLiquidPct      = 0.6
	toleranceDefaultPct     = 1.0
)

// RecipeCalculator reports dosing adherence per product: deviation
// statistics, tolerance compliance, and the worst-dosing ingredient.
// The analysis covers the whole current dataset, not the caller's window.
type RecipeCalculator struct {
	weighments AdherenceSource
	timeout    time.Duration
}

func NewRecipeCalculator(weighments AdherenceSource, timeout time.Duration) *RecipeCalculator {
	return &RecipeCalculator{weighments: weighments, timeout: timeout}
}

func (c *RecipeCalculator) Name() string { return SectionRecipe }

func (c *RecipeCalculator) Compute(ctx context.Context, _ Window) (any, error) {
	qctx, cancel := queryCtx(ctx, c.timeout)
	defer cancel()

	rows, err := c.weighments.ListProductWeighments(qctx)
	if err != nil {
		return nil, classifyStoreErr("batch_weighments", err)
	}
	return models.RecipeAdherenceKPI{Products: adherenceByProduct(rows)}, nil
}

func toleranceFor(ingredientCode string) float64 {
	switch {
	case strings.HasPrefix(ingredientCode, "RM-"):
		return toleranceRawMaterialPct
	case strings.HasPrefix(ingredientCode, "LIQ-"):
		return toleranceLiquidPct
	default:
		return toleranceDefaultPct
	}
}

type ingredientStats struct {
	code   string
	absSum float64
	count  int
}

func (s ingredientStats) avgAbs() float64 { return s.absSum / float64(s.count) }

func adherenceByProduct(rows []models.ProductWeighment) []models.ProductAdherence {
	type productStats struct {
		absSum      float64
		worst       float64
		within      int
		count       int
		ingredients map[string]*ingredientStats
	}
	products := make(map[string]*productStats)

	for _, row := range rows {
		if row.TargetKg <= 0 {
			continue
		}
		devPct := 100 * (row.ActualKg - row.TargetKg) / row.TargetKg
		absDev := math.Abs(devPct)

		p, ok := products[row.ProductCode]
		if !ok {
			p = &productStats{ingredients: make(map[string]*ingredientStats)}
			products[row.ProductCode] = p
		}
		p.absSum += absDev
		p.count++
		if absDev > p.worst {
			p.worst = absDev
		}
		if absDev <= toleranceFor(row.IngredientCode) {
			p.within++
		}

		ing, ok := p.ingredients[row.IngredientCode]
		if !ok {
			ing = &ingredientStats{code: row.IngredientCode}
			p.ingredients[row.IngredientCode] = ing
		}
		ing.absSum += absDev
		ing.count++
	}

	out := make([]models.ProductAdherence, 0, len(products))
	for code, p := range products {
		compliance := ratio(100*float64(p.within), float64(p.count), 1)
		out = append(out, models.ProductAdherence{
			ProductCode:       code,
			Ingredients:       len(p.ingredients),
			AvgDeviationPct:   round(p.absSum/float64(p.count), 2),
			WorstDeviationPct: round(p.worst, 2),
			CompliancePct:     *compliance,
			WorstIngredient:   worstIngredient(p.ingredients),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductCode < out[j].ProductCode })
	return out
}

// worstIngredient picks the ingredient with the highest average absolute
// deviation. Ties resolve to the lowest ingredient code so the selection is
// stable across runs.
func worstIngredient(ingredients map[string]*ingredientStats) string {
	var worst *ingredientStats
	for _, ing := range ingredients {
		switch {
		case worst == nil:
			worst = ing
		case ing.avgAbs() > worst.avgAbs():
			worst = ing
		case ing.avgAbs() == worst.avgAbs() && ing.code < worst.code:
			worst = ing
		}
	}
	if worst == nil {
		return ""
	}
	return worst.code
}
