// ABOUTME: Operational sizing that rides along with a storage estimate
// ABOUTME: Checkpoint capacity, storage bandwidth, and the itemized yearly opex

package models

import "encoding/json"

// WorkloadMix splits GPU time across workload types, in percent.
type WorkloadMix struct {
	Training   float64 `json:"training"`
	Inference  float64 `json:"inference"`
	Finetuning float64 `json:"finetuning"`
}

// NewWorkloadMix gives inference whatever training and finetuning leave,
// never less than zero.
func NewWorkloadMix(training, finetuning float64) WorkloadMix {
	return WorkloadMix{
		Training:   training,
		Inference:  max(100-training-finetuning, 0),
		Finetuning: finetuning,
	}
}

// CheckpointRequirements sizes the storage kept for training checkpoints.
type CheckpointRequirements struct {
	ModelSizeTB       float64 `json:"model_size_tb"`
	FrequencyMinutes  float64 `json:"frequency_minutes"`
	Retention         int     `json:"retention"`
	Redundancy        int     `json:"redundancy"`
	StorageRequiredTB float64 `json:"storage_required_tb"`
}

func (c CheckpointRequirements) MarshalJSON() ([]byte, error) {
	type alias CheckpointRequirements
	return json.Marshal(struct {
		alias
		FrequencyMinutes *float64 `json:"frequency_minutes"`
	}{alias(c), finite(c.FrequencyMinutes)})
}

// BandwidthRequirements is the storage throughput a GPU fleet needs, in TB/s.
type BandwidthRequirements struct {
	RequiredTBps        float64 `json:"required_tbps"`
	SustainedTBps       float64 `json:"sustained_tbps"`
	BurstTBps           float64 `json:"burst_tbps"`
	NetworkOverheadTBps float64 `json:"network_overhead_tbps"`
}

// OperatingCosts itemizes yearly opex as power, vendor support, and storage
// administration staff, on top of the raw footprint capex.
type OperatingCosts struct {
	CapexUSD      float64 `json:"capex_usd"`
	PowerUSD      float64 `json:"power_usd"`
	SupportUSD    float64 `json:"support_usd"`
	AdminUSD      float64 `json:"admin_usd"`
	AnnualOpexUSD float64 `json:"annual_opex_usd"`
	TCO5YearUSD   float64 `json:"tco_5_year_usd"`
	CostPerGPU    float64 `json:"cost_per_gpu"`
	CostPerTB     float64 `json:"cost_per_tb"`
}

func (o OperatingCosts) MarshalJSON() ([]byte, error) {
	type alias OperatingCosts
	return json.Marshal(struct {
		alias
		CostPerGPU *float64 `json:"cost_per_gpu"`
		CostPerTB  *float64 `json:"cost_per_tb"`
	}{alias(o), finite(o.CostPerGPU), finite(o.CostPerTB)})
}
