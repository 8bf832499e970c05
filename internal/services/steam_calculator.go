package services

import (
	"context"
	"math"
	"sort"
	"time"

	"kpi-service/internal/models"
)

type ProcessSource interface {
	ListSamples(ctx context.Context, start, end time.Time) ([]models.ProcessSample, error)
}

// Each 5-minute flow-rate sample carries 5/60 of an hour's worth of mass.
const steamSampleHours = 5.0 / 60.0

// stabilityBandC is the absolute PV-SP deviation still counted as stable.
const stabilityBandC = 2.0

// SteamCalculator reports steam usage per ton and conditioning temperature
// control quality (setpoint tracking and per-line stability).
type SteamCalculator struct {
	samples ProcessSource
	batches ProductionSource
	timeout time.Duration
}

func NewSteamCalculator(samples ProcessSource, batches ProductionSource, timeout time.Duration) *SteamCalculator {
	return &SteamCalculator{samples: samples, batches: batches, timeout: timeout}
}

func (c *SteamCalculator) Name() string { return SectionSteam }

func (c *SteamCalculator) Compute(ctx context.Context, w Window) (any, error) {
	qctx, cancel := queryCtx(ctx, c.timeout)
	samples, err := c.samples.ListSamples(qctx, w.Start, w.End)
	cancel()
	if err != nil {
		return nil, classifyStoreErr("process_signals_5min", err)
	}

	qctx, cancel = queryCtx(ctx, c.timeout)
	batches, err := c.batches.ListBatches(qctx, w.Start, w.End)
	cancel()
	if err != nil {
		return nil, classifyStoreErr("batches", err)
	}

	return steamKPI(samples, productionTonsOf(batches)), nil
}

func steamKPI(samples []models.ProcessSample, tons float64) models.SteamKPI {
	var flowSum, spSum, pvSum float64
	for _, s := range samples {
		flowSum += s.SteamFlowKgph
		spSum += s.CondTempSpC
		pvSum += s.CondTempPvC
	}

	kpi := models.SteamKPI{
		SteamKgPerT: ratio(flowSum*steamSampleHours, tons, 2),
		Stability:   lineStability(samples),
	}

	if len(samples) > 0 {
		n := float64(len(samples))
		avgSp, avgPv := spSum/n, pvSum/n
		kpi.AvgSpC = roundPtr(avgSp, 2)
		kpi.AvgPvC = roundPtr(avgPv, 2)
		kpi.SpVsPvPct = pct(avgPv-avgSp, avgSp, 2)
	}
	return kpi
}

func lineStability(samples []models.ProcessSample) []models.LineStability {
	devsByLine := make(map[string][]float64)
	for _, s := range samples {
		devsByLine[s.Line] = append(devsByLine[s.Line], s.CondTempPvC-s.CondTempSpC)
	}

	out := make([]models.LineStability, 0, len(devsByLine))
	for line, devs := range devsByLine {
		var within float64
		for _, d := range devs {
			if math.Abs(d) <= stabilityBandC {
				within++
			}
		}
		out = append(out, models.LineStability{
			Line:        line,
			Sigma:       roundPtr(popStdDev(devs), 3),
			PctWithin2C: pct(within, float64(len(devs)), 2),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Line < out[j].Line })
	return out
}
