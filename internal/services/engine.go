package services

import (
	"context"
	"fmt"
	"log/slog"

	"kpi-service/internal/models"
	"kpi-service/internal/worker"

	"github.com/google/uuid"
)

// Engine dispatches the calculators concurrently over a bounded worker pool
// and assembles their results. One calculator's failure becomes that
// section's error marker; the other sections still return data. The engine
// never writes and is safe to re-invoke.
type Engine struct {
	pool   *worker.Pool
	cache  *ResultCache
	calcs  []Calculator
	byName map[string]Calculator
}

func NewEngine(pool *worker.Pool, cache *ResultCache, calcs ...Calculator) *Engine {
	byName := make(map[string]Calculator, len(calcs))
	for _, c := range calcs {
		byName[c.Name()] = c
	}
	return &Engine{pool: pool, cache: cache, calcs: calcs, byName: byName}
}

// RunSection computes a single named section with cache read-through.
func (e *Engine) RunSection(ctx context.Context, name string, w Window) (any, error) {
	calc, ok := e.byName[name]
	if !ok {
		return nil, fmt.Errorf("unknown kpi section %q", name)
	}

	var cached any
	if e.cache.Get(ctx, name, w, &cached) {
		return cached, nil
	}

	data, err := calc.Compute(ctx, w)
	if err != nil {
		return nil, err
	}
	e.cache.Set(ctx, name, w, data)
	return data, nil
}

// Run computes every section for the window. The report always covers all
// sections: failed ones carry an error message instead of data.
func (e *Engine) Run(ctx context.Context, w Window) models.KPIOverview {
	runID := uuid.New().String()
	results := make([]models.KPISection, len(e.calcs))

	jobs := make([]worker.Job, len(e.calcs))
	for i, calc := range e.calcs {
		jobs[i] = func(jobCtx context.Context) error {
			data, err := e.RunSection(jobCtx, calc.Name(), w)
			if err != nil {
				slog.Warn("kpi section failed", "run_id", runID, "section", calc.Name(), "error", err)
				results[i] = models.KPISection{Error: err.Error()}
				return err
			}
			results[i] = models.KPISection{Data: data}
			return nil
		}
	}
	e.pool.Run(ctx, jobs)

	sections := make(map[string]models.KPISection, len(e.calcs))
	for i, calc := range e.calcs {
		sections[calc.Name()] = results[i]
	}

	return models.KPIOverview{
		RunID:       runID,
		WindowStart: w.StartDate(),
		WindowEnd:   w.EndDate(),
		Sections:    sections,
	}
}
