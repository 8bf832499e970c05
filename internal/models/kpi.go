package models

// KPI result records published by the aggregation engine. Ratio fields are
// nullable: a zero denominator yields null, never NaN or an error.

type ProductionTotals struct {
	ActualTons        float64  `json:"actual_tons"`
	PlannedTons       float64  `json:"planned_tons"`
	PlanAttainmentPct *float64 `json:"plan_attainment_pct"`
}

type ProductionLineTotals struct {
	Line              string   `json:"line"`
	ActualTons        float64  `json:"actual_tons"`
	PlannedTons       float64  `json:"planned_tons"`
	PlanAttainmentPct *float64 `json:"plan_attainment_pct"`
}

type ProductionKPI struct {
	Summary ProductionTotals       `json:"summary"`
	ByLine  []ProductionLineTotals `json:"by_line"`
}

type DemandPoint struct {
	Timestamp string  `json:"timestamp"`
	DemandKw  float64 `json:"demand_kw"`
}

type EnergyKPI struct {
	SecKwhPerT *float64      `json:"sec_kwh_per_t"`
	Trend      []DemandPoint `json:"trend"`
}

type LineStability struct {
	Line        string   `json:"line"`
	Sigma       *float64 `json:"sigma"`
	PctWithin2C *float64 `json:"pct_within_2c"`
}

type SteamKPI struct {
	SteamKgPerT *float64        `json:"steam_kg_per_t"`
	AvgSpC      *float64        `json:"avg_sp_c"`
	AvgPvC      *float64        `json:"avg_pv_c"`
	SpVsPvPct   *float64        `json:"sp_vs_pv_pct"`
	Stability   []LineStability `json:"stability"`
}

type LineAvailability struct {
	Line               string   `json:"line_id"`
	RunAvailabilityPct *float64 `json:"run_availability_pct"`
}

type AvailabilityKPI struct {
	Lines []LineAvailability `json:"lines"`
}

type QualityKPI struct {
	TotalSamples int64    `json:"total_samples"`
	FpyPercent   *float64 `json:"fpy_percent"`
	Holds        int64    `json:"holds"`
}

type ProductAdherence struct {
	ProductCode       string  `json:"product_code"`
	Ingredients       int     `json:"ingredients"`
	AvgDeviationPct   float64 `json:"avg_deviation"`
	WorstDeviationPct float64 `json:"worst_deviation"`
	CompliancePct     float64 `json:"compliance_pct"`
	WorstIngredient   string  `json:"worst_ingredient"`
}

type RecipeAdherenceKPI struct {
	Products []ProductAdherence `json:"products"`
}

type MaterialCover struct {
	MaterialCode string  `json:"material_code"`
	InventoryT   float64 `json:"inventory_t"`
	LevelPct     float64 `json:"level_pct"`
	DaysOfCover  float64 `json:"days_of_cover"`
}

type SiloEventCounts struct {
	LowLevelCount   int64 `json:"low_level_count"`
	ChangeoverCount int64 `json:"changeover_count"`
}

type SilosKPI struct {
	Coverage []MaterialCover `json:"coverage"`
	Events   SiloEventCounts `json:"events"`
}

type DowntimeCause struct {
	Reason   string  `json:"reason"`
	TotalMin float64 `json:"total_min"`
}

type ReliabilityKPI struct {
	Pareto      []DowntimeCause `json:"pareto"`
	DowntimePct *float64        `json:"downtime_pct"`
}

type PackagingKPI struct {
	TotalBags      int64    `json:"total_bags"`
	ReworkPercent  *float64 `json:"rework_percent"`
	AvgBagWeightKg *float64 `json:"avg_bag_weight"`
}

// KPISection is one calculator's slot in the combined overview: data on
// success, an error message when that calculator's source failed. Sections
// fail independently of one another.
type KPISection struct {
	Data  any    `json:"data"`
	Error string `json:"error,omitempty"`
}

type KPIOverview struct {
	RunID       string                `json:"run_id"`
	WindowStart string                `json:"window_start"`
	WindowEnd   string                `json:"window_end"`
	Sections    map[string]KPISection `json:"sections"`
}
