package services

import (
	"context"
	"time"
)

// Section names double as route suffixes and cache key prefixes.
const (
	SectionProduction   = "production"
	SectionEnergy       = "energy"
	SectionSteam        = "steam"
	SectionAvailability = "availability"
	SectionQuality      = "quality"
	SectionRecipe       = "recipe-adherence"
	SectionSilos        = "silos"
	SectionReliability  = "reliability"
	SectionPackaging    = "packaging"
)

// Calculator is one KPI computation unit: a pure function of the time window
// and its record streams. Calculators never depend on each other's output,
// so the engine runs them concurrently and isolates their failures.
type Calculator interface {
	Name() string
	Compute(ctx context.Context, w Window) (any, error)
}

// queryCtx bounds a single sub-query against the record store. A calculator
// that outlives the deadline fails with ErrDataSourceTimeout instead of
// hanging; siblings are unaffected.
func queryCtx(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
