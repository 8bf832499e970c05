package services

import (
	"context"
	"time"

	"kpi-service/internal/models"
)

type BaggingSource interface {
	ListRuns(ctx context.Context, start, end time.Time) ([]models.BaggingRun, error)
}

// PackagingCalculator reports bag totals, rework share, and the mean of
// per-run average bag weights over runs fully inside the window.
type PackagingCalculator struct {
	runs    BaggingSource
	timeout time.Duration
}

func NewPackagingCalculator(runs BaggingSource, timeout time.Duration) *PackagingCalculator {
	return &PackagingCalculator{runs: runs, timeout: timeout}
}

func (c *PackagingCalculator) Name() string { return SectionPackaging }

func (c *PackagingCalculator) Compute(ctx context.Context, w Window) (any, error) {
	qctx, cancel := queryCtx(ctx, c.timeout)
	defer cancel()

	runs, err := c.runs.ListRuns(qctx, w.Start, w.End)
	if err != nil {
		return nil, classifyStoreErr("bagging", err)
	}
	return packagingKPI(runs), nil
}

func packagingKPI(runs []models.BaggingRun) models.PackagingKPI {
	var bags, rework int64
	var weightSum float64
	for _, r := range runs {
		bags += r.BagCount
		rework += r.ReworkBags
		weightSum += r.AvgBagWeightKg
	}

	kpi := models.PackagingKPI{
		TotalBags:     bags,
		ReworkPercent: pct(float64(rework), float64(bags), 2),
	}
	if len(runs) > 0 {
		kpi.AvgBagWeightKg = roundPtr(weightSum/float64(len(runs)), 2)
	}
	return kpi
}
