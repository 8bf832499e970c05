package services

import (
	"context"
	"time"

	"kpi-service/internal/models"
)

type EnergySource interface {
	ListReadings(ctx context.Context, meterID string, start, end time.Time) ([]models.EnergyReading, error)
}

// EnergyCalculator reports specific energy consumption against the main
// meter plus the raw demand trend at native 15-minute cadence.
type EnergyCalculator struct {
	readings EnergySource
	batches  ProductionSource
	meterID  string
	timeout  time.Duration
}

func NewEnergyCalculator(readings EnergySource, batches ProductionSource, meterID string, timeout time.Duration) *EnergyCalculator {
	return &EnergyCalculator{readings: readings, batches: batches, meterID: meterID, timeout: timeout}
}

func (c *EnergyCalculator) Name() string { return SectionEnergy }

func (c *EnergyCalculator) Compute(ctx context.Context, w Window) (any, error) {
	qctx, cancel := queryCtx(ctx, c.timeout)
	readings, err := c.readings.ListReadings(qctx, c.meterID, w.Start, w.End)
	cancel()
	if err != nil {
		return nil, classifyStoreErr("energy_meters_15min", err)
	}

	qctx, cancel = queryCtx(ctx, c.timeout)
	batches, err := c.batches.ListBatches(qctx, w.Start, w.End)
	cancel()
	if err != nil {
		return nil, classifyStoreErr("batches", err)
	}

	return energyKPI(readings, productionTonsOf(batches)), nil
}

func productionTonsOf(batches []models.Batch) float64 {
	var kg float64
	for _, b := range batches {
		kg += b.BatchSizeActualKg
	}
	return kg / 1000
}

func energyKPI(readings []models.EnergyReading, tons float64) models.EnergyKPI {
	var kwhSum float64
	trend := make([]models.DemandPoint, 0, len(readings))
	for _, rd := range readings {
		kwhSum += rd.Kwh
		trend = append(trend, models.DemandPoint{
			Timestamp: rd.Timestamp.Format(time.RFC3339),
			DemandKw:  rd.Kw,
		})
	}

	return models.EnergyKPI{
		SecKwhPerT: ratio(kwhSum, tons, 2),
		Trend:      trend,
	}
}
