package models

import "time"

// Plant-floor record streams. All rows are immutable facts ingested by the
// plant historian; this service only reads them.

type Batch struct {
	BatchID           int64     `json:"batch_id" db:"batch_id"`
	Line              string    `json:"line" db:"line"`
	ProductCode       string    `json:"product_code" db:"product_code"`
	StartTime         time.Time `json:"start_time" db:"start_time"`
	BatchSizeSetKg    float64   `json:"batch_size_set_kg" db:"batch_size_set_kg"`
	BatchSizeActualKg float64   `json:"batch_size_actual_kg" db:"batch_size_actual_kg"`
}

type BatchWeighment struct {
	WeighmentID    int64     `json:"weighment_id" db:"weighment_id"`
	BatchID        int64     `json:"batch_id" db:"batch_id"`
	IngredientCode string    `json:"ingredient_code" db:"ingredient_code"`
	TargetKg       float64   `json:"target_kg" db:"target_kg"`
	ActualKg       float64   `json:"actual_kg" db:"actual_kg"`
	WeighTime      time.Time `json:"weigh_time" db:"weigh_time"`
}

// ProductWeighment is a weighment joined to its batch's product code, the
// shape the adherence analysis works on.
type ProductWeighment struct {
	ProductCode    string  `json:"product_code" db:"product_code"`
	IngredientCode string  `json:"ingredient_code" db:"ingredient_code"`
	TargetKg       float64 `json:"target_kg" db:"target_kg"`
	ActualKg       float64 `json:"actual_kg" db:"actual_kg"`
}

type EnergyReading struct {
	MeterID   string    `json:"meter_id" db:"meter_id"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	Kwh       float64   `json:"kwh" db:"kwh"`
	Kw        float64   `json:"kw" db:"kw"`
}

type ProcessSample struct {
	Timestamp     time.Time `json:"timestamp" db:"timestamp"`
	Line          string    `json:"line" db:"line"`
	SteamFlowKgph float64   `json:"steam_flow_kgph" db:"steam_flow_kgph"`
	CondTempSpC   float64   `json:"cond_temp_sp_c" db:"cond_temp_sp_c"`
	CondTempPvC   float64   `json:"cond_temp_pv_c" db:"cond_temp_pv_c"`
}

const LineStateRun = "RUN"

type LineStateSample struct {
	Line      string    `json:"line" db:"line"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	State     string    `json:"state" db:"state"`
}

type Order struct {
	OrderID   int64     `json:"order_id" db:"order_id"`
	Line      string    `json:"line" db:"line"`
	StartTime time.Time `json:"start_time" db:"start_time"`
	EndTime   time.Time `json:"end_time" db:"end_time"`
}

const (
	DispositionAccept = "ACCEPT"
	DispositionHold   = "HOLD"
	DispositionReject = "REJECT"
)

type QualityResult struct {
	Timestamp   time.Time `json:"timestamp" db:"timestamp"`
	Disposition string    `json:"disposition" db:"disposition"`
}

type Silo struct {
	SiloID       string `json:"silo_id" db:"silo_id"`
	MaterialCode string `json:"material_code" db:"material_code"`
}

type SiloLevelSample struct {
	SiloID     string    `json:"silo_id" db:"silo_id"`
	Timestamp  time.Time `json:"timestamp" db:"timestamp"`
	InventoryT float64   `json:"inventory_t" db:"inventory_t"`
	LevelPct   float64   `json:"level_pct" db:"level_pct"`
}

const (
	SiloEventLowLevel   = "LOW_LEVEL"
	SiloEventChangeover = "CHANGEOVER"
)

type SiloEvent struct {
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	EventType string    `json:"event_type" db:"event_type"`
}

type DowntimeEvent struct {
	ReasonCode string    `json:"reason_code" db:"reason_code"`
	StartTime  time.Time `json:"start_time" db:"start_time"`
	EndTime    time.Time `json:"end_time" db:"end_time"`
}

type BaggingRun struct {
	StartTime      time.Time `json:"start_time" db:"start_time"`
	EndTime        time.Time `json:"end_time" db:"end_time"`
	BagCount       int64     `json:"bag_count" db:"bag_count"`
	ReworkBags     int64     `json:"rework_bags" db:"rework_bags"`
	AvgBagWeightKg float64   `json:"avg_bag_weight_kg" db:"avg_bag_weight_kg"`
}
