package services

import (
	"math"

	"github.com/shopspring/decimal"
)

// Published ratios round half-up at fixed precisions, matching what the
// plant's reporting historically produced. decimal.Round avoids the
// float-truncation off-by-one-cent class of discrepancy.

func round(v float64, places int32) float64 {
	out, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return out
}

func roundPtr(v float64, places int32) *float64 {
	out := round(v, places)
	return &out
}

// ratio returns num/den rounded to places, or nil when den is zero.
// Degenerate ratios are a valid empty aggregate, not an error.
func ratio(num, den float64, places int32) *float64 {
	if den == 0 {
		return nil
	}
	out, _ := decimal.NewFromFloat(num).
		Div(decimal.NewFromFloat(den)).
		Round(places).
		Float64()
	return &out
}

// pct returns 100*num/den rounded to places, or nil when den is zero.
func pct(num, den float64, places int32) *float64 {
	return ratio(100*num, den, places)
}

// popStdDev is the population standard deviation of vs, 0 for an empty input.
func popStdDev(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vs {
		sum += v
	}
	mean := sum / float64(len(vs))

	var sq float64
	for _, v := range vs {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(vs)))
}
