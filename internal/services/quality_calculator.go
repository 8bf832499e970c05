package services

import (
	"context"
	"time"

	"kpi-service/internal/models"
)

type QualitySource interface {
	ListResults(ctx context.Context, start, end time.Time) ([]models.QualityResult, error)
}

// QualityCalculator reports first-pass yield and hold counts over in-window
// inspections.
type QualityCalculator struct {
	results QualitySource
	timeout time.Duration
}

func NewQualityCalculator(results QualitySource, timeout time.Duration) *QualityCalculator {
	return &QualityCalculator{results: results, timeout: timeout}
}

func (c *QualityCalculator) Name() string { return SectionQuality }

func (c *QualityCalculator) Compute(ctx context.Context, w Window) (any, error) {
	qctx, cancel := queryCtx(ctx, c.timeout)
	defer cancel()

	results, err := c.results.ListResults(qctx, w.Start, w.End)
	if err != nil {
		return nil, classifyStoreErr("quality_results", err)
	}
	return qualityKPI(results), nil
}

func qualityKPI(results []models.QualityResult) models.QualityKPI {
	var accepts, holds int64
	for _, r := range results {
		switch r.Disposition {
		case models.DispositionAccept:
			accepts++
		case models.DispositionHold:
			holds++
		}
	}

	return models.QualityKPI{
		TotalSamples: int64(len(results)),
		FpyPercent:   pct(float64(accepts), float64(len(results)), 2),
		Holds:        holds,
	}
}
