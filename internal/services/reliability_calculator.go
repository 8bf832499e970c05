package services

import (
	"context"
	"sort"
	"time"

	"kpi-service/internal/models"
)

type DowntimeSource interface {
	ListEvents(ctx context.Context, start, end time.Time) ([]models.DowntimeEvent, error)
}

type OrdersSource interface {
	ListOrders(ctx context.Context, start, end time.Time) ([]models.Order, error)
}

const paretoLimit = 10

// ReliabilityCalculator reports the downtime Pareto (top causes by total
// minutes) and overall downtime as a share of scheduled order time.
type ReliabilityCalculator struct {
	downtime DowntimeSource
	orders   OrdersSource
	timeout  time.Duration
}

func NewReliabilityCalculator(downtime DowntimeSource, orders OrdersSource, timeout time.Duration) *ReliabilityCalculator {
	return &ReliabilityCalculator{downtime: downtime, orders: orders, timeout: timeout}
}

func (c *ReliabilityCalculator) Name() string { return SectionReliability }

func (c *ReliabilityCalculator) Compute(ctx context.Context, w Window) (any, error) {
	qctx, cancel := queryCtx(ctx, c.timeout)
	events, err := c.downtime.ListEvents(qctx, w.Start, w.End)
	cancel()
	if err != nil {
		return nil, classifyStoreErr("downtime_events", err)
	}

	qctx, cancel = queryCtx(ctx, c.timeout)
	orders, err := c.orders.ListOrders(qctx, w.Start, w.End)
	cancel()
	if err != nil {
		return nil, classifyStoreErr("orders", err)
	}

	var downMin, schedMin float64
	for _, e := range events {
		downMin += e.EndTime.Sub(e.StartTime).Minutes()
	}
	for _, o := range orders {
		schedMin += o.EndTime.Sub(o.StartTime).Minutes()
	}

	return models.ReliabilityKPI{
		Pareto:      downtimePareto(events),
		DowntimePct: pct(downMin, schedMin, 3),
	}, nil
}

// downtimePareto ranks reason codes by cumulative minutes, largest first,
// capped at paretoLimit rows. Ties keep first-seen event order, which makes
// the ranking deterministic for a fixed snapshot.
func downtimePareto(events []models.DowntimeEvent) []models.DowntimeCause {
	totals := make(map[string]float64)
	order := make([]string, 0)
	for _, e := range events {
		if _, seen := totals[e.ReasonCode]; !seen {
			order = append(order, e.ReasonCode)
		}
		totals[e.ReasonCode] += e.EndTime.Sub(e.StartTime).Minutes()
	}

	pareto := make([]models.DowntimeCause, 0, len(order))
	for _, reason := range order {
		pareto = append(pareto, models.DowntimeCause{Reason: reason, TotalMin: totals[reason]})
	}
	sort.SliceStable(pareto, func(i, j int) bool { return pareto[i].TotalMin > pareto[j].TotalMin })

	if len(pareto) > paretoLimit {
		pareto = pareto[:paretoLimit]
	}
	return pareto
}
