package services

import (
	"context"
	"sort"
	"time"

	"kpi-service/internal/models"
)

type ProductionSource interface {
	ListBatches(ctx context.Context, start, end time.Time) ([]models.Batch, error)
}

// ProductionCalculator reports actual vs planned tonnage and plan
// attainment, overall and per line.
type ProductionCalculator struct {
	batches ProductionSource
	timeout time.Duration
}

func NewProductionCalculator(batches ProductionSource, timeout time.Duration) *ProductionCalculator {
	return &ProductionCalculator{batches: batches, timeout: timeout}
}

func (c *ProductionCalculator) Name() string { return SectionProduction }

func (c *ProductionCalculator) Compute(ctx context.Context, w Window) (any, error) {
	qctx, cancel := queryCtx(ctx, c.timeout)
	defer cancel()

	batches, err := c.batches.ListBatches(qctx, w.Start, w.End)
	if err != nil {
		return nil, classifyStoreErr("batches", err)
	}
	return productionTotals(batches), nil
}

func productionTotals(batches []models.Batch) models.ProductionKPI {
	var actualKg, setKg float64
	perLine := make(map[string]*models.ProductionLineTotals)

	for _, b := range batches {
		actualKg += b.BatchSizeActualKg
		setKg += b.BatchSizeSetKg

		lt, ok := perLine[b.Line]
		if !ok {
			lt = &models.ProductionLineTotals{Line: b.Line}
			perLine[b.Line] = lt
		}
		lt.ActualTons += b.BatchSizeActualKg
		lt.PlannedTons += b.BatchSizeSetKg
	}

	byLine := make([]models.ProductionLineTotals, 0, len(perLine))
	for _, lt := range perLine {
		actual, planned := lt.ActualTons, lt.PlannedTons
		byLine = append(byLine, models.ProductionLineTotals{
			Line:              lt.Line,
			ActualTons:        round(actual/1000, 2),
			PlannedTons:       round(planned/1000, 2),
			PlanAttainmentPct: pct(actual, planned, 2),
		})
	}
	sort.Slice(byLine, func(i, j int) bool { return byLine[i].Line < byLine[j].Line })

	return models.ProductionKPI{
		Summary: models.ProductionTotals{
			ActualTons:        round(actualKg/1000, 2),
			PlannedTons:       round(setKg/1000, 2),
			PlanAttainmentPct: pct(actualKg, setKg, 2),
		},
		ByLine: byLine,
	}
}
