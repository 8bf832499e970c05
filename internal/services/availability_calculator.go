package services

import (
	"context"
	"sort"
	"time"

	"kpi-service/internal/models"
)

type ScheduleSource interface {
	ListOrders(ctx context.Context, start, end time.Time) ([]models.Order, error)
	ListStateSamples(ctx context.Context, start, end time.Time) ([]models.LineStateSample, error)
}

// Each 5-minute state sample contributes exactly this many minutes to its
// bucket.
const stateSampleMinutes = 5.0

// AvailabilityCalculator reports RUN time against scheduled time per line.
// Scheduling uses strict inner-join scoping: a state sample counts only if
// its timestamp falls inside some order interval for its line; orphan
// samples are excluded rather than counted as downtime.
type AvailabilityCalculator struct {
	schedule ScheduleSource
	timeout  time.Duration
}

func NewAvailabilityCalculator(schedule ScheduleSource, timeout time.Duration) *AvailabilityCalculator {
	return &AvailabilityCalculator{schedule: schedule, timeout: timeout}
}

func (c *AvailabilityCalculator) Name() string { return SectionAvailability }

func (c *AvailabilityCalculator) Compute(ctx context.Context, w Window) (any, error) {
	qctx, cancel := queryCtx(ctx, c.timeout)
	orders, err := c.schedule.ListOrders(qctx, w.Start, w.End)
	cancel()
	if err != nil {
		return nil, classifyStoreErr("orders", err)
	}
	if len(orders) == 0 {
		return models.AvailabilityKPI{Lines: []models.LineAvailability{}}, nil
	}

	// Orders starting in-window may run past the window end, so the sample
	// fetch spans the whole order envelope.
	envStart, envEnd := orders[0].StartTime, orders[0].EndTime
	for _, o := range orders[1:] {
		if o.StartTime.Before(envStart) {
			envStart = o.StartTime
		}
		if o.EndTime.After(envEnd) {
			envEnd = o.EndTime
		}
	}

	qctx, cancel = queryCtx(ctx, c.timeout)
	samples, err := c.schedule.ListStateSamples(qctx, envStart, envEnd)
	cancel()
	if err != nil {
		return nil, classifyStoreErr("line_states_5min", err)
	}

	return models.AvailabilityKPI{Lines: availabilityByLine(orders, samples)}, nil
}

func availabilityByLine(orders []models.Order, samples []models.LineStateSample) []models.LineAvailability {
	ordersByLine := make(map[string][]models.Order)
	for _, o := range orders {
		ordersByLine[o.Line] = append(ordersByLine[o.Line], o)
	}

	type bucket struct{ run, scheduled float64 }
	buckets := make(map[string]*bucket, len(ordersByLine))
	for line := range ordersByLine {
		buckets[line] = &bucket{}
	}

	for _, s := range samples {
		lineOrders, ok := ordersByLine[s.Line]
		if !ok {
			continue
		}
		scheduled := false
		for _, o := range lineOrders {
			if !s.Timestamp.Before(o.StartTime) && s.Timestamp.Before(o.EndTime) {
				scheduled = true
				break
			}
		}
		if !scheduled {
			continue
		}
		b := buckets[s.Line]
		b.scheduled += stateSampleMinutes
		if s.State == models.LineStateRun {
			b.run += stateSampleMinutes
		}
	}

	out := make([]models.LineAvailability, 0, len(buckets))
	for line, b := range buckets {
		out = append(out, models.LineAvailability{
			Line:               line,
			RunAvailabilityPct: pct(b.run, b.scheduled, 2),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Line < out[j].Line })
	return out
}
