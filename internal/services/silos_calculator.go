package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"kpi-service/internal/models"
)

type SiloSource interface {
	ListSilos(ctx context.Context) ([]models.Silo, error)
	ListLevelSamples(ctx context.Context) ([]models.SiloLevelSample, error)
	ListEventsSince(ctx context.Context, since time.Time) ([]models.SiloEvent, error)
}

type ConsumptionSource interface {
	ListWeighmentsSince(ctx context.Context, since time.Time) ([]models.BatchWeighment, error)
}

// Trailing baseline length for consumption and event tallies.
const consumptionLookbackDays = 7

// minDailyConsumptionT keeps days-of-cover finite for materials with no or
// near-zero recent consumption.
const minDailyConsumptionT = 0.001

// SilosCalculator reports days of cover per material from a point-in-time
// inventory snapshot against a trailing 7-day consumption baseline, plus
// low-level and changeover event counts. Both scopes are relative to now;
// the caller's window does not apply here.
type SilosCalculator struct {
	silos       SiloSource
	consumption ConsumptionSource
	timeout     time.Duration
	now         func() time.Time
}

func NewSilosCalculator(silos SiloSource, consumption ConsumptionSource, timeout time.Duration) *SilosCalculator {
	return &SilosCalculator{silos: silos, consumption: consumption, timeout: timeout, now: time.Now}
}

func (c *SilosCalculator) Name() string { return SectionSilos }

func (c *SilosCalculator) Compute(ctx context.Context, _ Window) (any, error) {
	since := c.now().AddDate(0, 0, -consumptionLookbackDays)

	qctx, cancel := queryCtx(ctx, c.timeout)
	weighments, err := c.consumption.ListWeighmentsSince(qctx, since)
	cancel()
	if err != nil {
		return nil, classifyStoreErr("batch_weighments", err)
	}

	qctx, cancel = queryCtx(ctx, c.timeout)
	silos, err := c.silos.ListSilos(qctx)
	cancel()
	if err != nil {
		return nil, classifyStoreErr("silos", err)
	}

	qctx, cancel = queryCtx(ctx, c.timeout)
	levels, err := c.silos.ListLevelSamples(qctx)
	cancel()
	if err != nil {
		return nil, classifyStoreErr("silo_levels_15min", err)
	}

	qctx, cancel = queryCtx(ctx, c.timeout)
	events, err := c.silos.ListEventsSince(qctx, since)
	cancel()
	if err != nil {
		return nil, classifyStoreErr("silo_events", err)
	}

	return models.SilosKPI{
		Coverage: materialCoverage(silos, latestPerSilo(levels), avgDailyConsumption(weighments)),
		Events:   siloEventCounts(events),
	}, nil
}

// avgDailyConsumption averages each material's daily consumed tonnage over
// the days it was actually consumed, floored at minDailyConsumptionT.
func avgDailyConsumption(weighments []models.BatchWeighment) map[string]float64 {
	daily := make(map[string]map[string]float64)
	for _, wgh := range weighments {
		material := strings.TrimSpace(wgh.IngredientCode)
		day := wgh.WeighTime.UTC().Format("2006-01-02")
		if daily[material] == nil {
			daily[material] = make(map[string]float64)
		}
		daily[material][day] += wgh.ActualKg / 1000
	}

	avg := make(map[string]float64, len(daily))
	for material, days := range daily {
		var sum float64
		for _, tons := range days {
			sum += tons
		}
		a := sum / float64(len(days))
		if a < minDailyConsumptionT {
			a = minDailyConsumptionT
		}
		avg[material] = a
	}
	return avg
}

// latestPerSilo reduces the level stream to the maximum-timestamp sample per
// silo: an indexed reduction, not a per-row lookup.
func latestPerSilo(samples []models.SiloLevelSample) map[string]models.SiloLevelSample {
	latest := make(map[string]models.SiloLevelSample)
	for _, s := range samples {
		cur, ok := latest[s.SiloID]
		if !ok || s.Timestamp.After(cur.Timestamp) {
			latest[s.SiloID] = s
		}
	}
	return latest
}

func materialCoverage(silos []models.Silo, latest map[string]models.SiloLevelSample, avgDaily map[string]float64) []models.MaterialCover {
	type inv struct {
		tons     float64
		levelSum float64
		silos    int
	}
	byMaterial := make(map[string]*inv)

	for _, silo := range silos {
		sample, ok := latest[silo.SiloID]
		if !ok {
			continue
		}
		material := strings.TrimSpace(silo.MaterialCode)
		m, ok := byMaterial[material]
		if !ok {
			m = &inv{}
			byMaterial[material] = m
		}
		m.tons += clampNonNegative(sample.InventoryT)
		m.levelSum += clampNonNegative(sample.LevelPct)
		m.silos++
	}

	out := make([]models.MaterialCover, 0, len(byMaterial))
	for material, m := range byMaterial {
		daily, ok := avgDaily[material]
		if !ok {
			// Inventory with no consumption history still gets a finite
			// cover figure via the floor.
			daily = minDailyConsumptionT
		}
		out = append(out, models.MaterialCover{
			MaterialCode: material,
			InventoryT:   round(m.tons, 2),
			LevelPct:     round(m.levelSum/float64(m.silos), 1),
			DaysOfCover:  round(m.tons/daily, 1),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MaterialCode < out[j].MaterialCode })
	return out
}

func siloEventCounts(events []models.SiloEvent) models.SiloEventCounts {
	var counts models.SiloEventCounts
	for _, e := range events {
		switch e.EventType {
		case models.SiloEventLowLevel:
			counts.LowLevelCount++
		case models.SiloEventChangeover:
			counts.ChangeoverCount++
		}
	}
	return counts
}

func clampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
