// ABOUTME: Derived raw storage and cost impact results
// ABOUTME: Non-finite ratios stay in the Go values and encode as JSON null

package models

import (
	"encoding/json"
	"math"
)

// ErasureCodingDetails records the stripe geometry of an erasure-coded tier.
type ErasureCodingDetails struct {
	DataChunks   int     `json:"data_chunks"`
	CodingChunks int     `json:"coding_chunks"`
	Efficiency   float64 `json:"efficiency"`
}

// TierDetails breaks down the overhead added on top of redundancy.
type TierDetails struct {
	ReplicationFactor int                   `json:"replication_factor,omitempty"`
	ErasureCoding     *ErasureCodingDetails `json:"erasure_coding,omitempty"`
	MetadataOverhead  float64               `json:"metadata_overhead_pb"`
	SpareCapacity     float64               `json:"spare_capacity_pb"`
}

// RawStorageBreakdown is the raw sizing of a single tier.
type RawStorageBreakdown struct {
	UsableCapacityPB   float64     `json:"usable_capacity_pb"`
	RawCapacityPB      float64     `json:"raw_capacity_pb"`
	OverheadPB         float64     `json:"overhead_pb"`
	OverheadPercentage float64     `json:"overhead_percentage"`
	RedundancyType     string      `json:"redundancy_type"`
	Details            TierDetails `json:"details"`
}

func (b RawStorageBreakdown) MarshalJSON() ([]byte, error) {
	type alias RawStorageBreakdown
	return json.Marshal(struct {
		alias
		OverheadPercentage *float64 `json:"overhead_percentage"`
	}{alias(b), finite(b.OverheadPercentage)})
}

// StorageRawCalculation aggregates the per-tier breakdowns.
type StorageRawCalculation struct {
	TierBreakdown     map[string]RawStorageBreakdown `json:"tier_breakdown"`
	TierOrder         []string                       `json:"tier_order"`
	TotalUsablePB     float64                        `json:"total_usable_pb"`
	TotalRawPB        float64                        `json:"total_raw_pb"`
	TotalOverheadPB   float64                        `json:"total_overhead_pb"`
	AverageEfficiency float64                        `json:"average_efficiency"`
	Recommendations   []string                       `json:"recommendations"`
}

func (c StorageRawCalculation) MarshalJSON() ([]byte, error) {
	type alias StorageRawCalculation
	return json.Marshal(struct {
		alias
		AverageEfficiency *float64 `json:"average_efficiency"`
	}{alias(c), finite(c.AverageEfficiency)})
}

// TierCostImpact is the marginal cost of one tier's overhead.
type TierCostImpact struct {
	Capex float64 `json:"capex"`
	Opex  float64 `json:"opex"`
}

// CostImpact is the marginal cost attributable to redundancy, metadata, and spare capacity.
type CostImpact struct {
	AdditionalCapexUSD float64                   `json:"additional_capex_usd"`
	AdditionalOpexUSD  float64                   `json:"additional_opex_usd"`
	CostPerUsablePB    float64                   `json:"cost_per_usable_pb"`
	Breakdown          map[string]TierCostImpact `json:"breakdown"`
}

func (c CostImpact) MarshalJSON() ([]byte, error) {
	type alias CostImpact
	return json.Marshal(struct {
		alias
		CostPerUsablePB *float64 `json:"cost_per_usable_pb"`
	}{alias(c), finite(c.CostPerUsablePB)})
}

// TierCost is the full cost and power draw of a tier's raw footprint.
type TierCost struct {
	Tier          string  `json:"tier"`
	Name          string  `json:"name"`
	RawCapacityPB float64 `json:"raw_capacity_pb"`
	CapexUSD      float64 `json:"capex_usd"`
	AnnualOpexUSD float64 `json:"annual_opex_usd"`
	TCO5YearUSD   float64 `json:"tco_5_year_usd"`
	PowerKW       float64 `json:"power_kw"`
}

// TierCostSummary totals TierCost across tiers in tier order.
type TierCostSummary struct {
	Tiers              []TierCost `json:"tiers"`
	TotalCapexUSD      float64    `json:"total_capex_usd"`
	TotalAnnualOpexUSD float64    `json:"total_annual_opex_usd"`
	TotalTCO5YearUSD   float64    `json:"total_tco_5_year_usd"`
	TotalPowerKW       float64    `json:"total_power_kw"`
}

// finite returns nil for NaN and infinities so JSON encoding does not fail.
func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
