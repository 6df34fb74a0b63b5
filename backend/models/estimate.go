// ABOUTME: Request and response contracts for the storage estimation API
// ABOUTME: Wraps the engine inputs and outputs for JSON transport

package models

import "time"

// RawStorageRequest is the input to raw capacity sizing.
type RawStorageRequest struct {
	TierDistribution      TierDistribution `json:"tier_distribution"`
	TotalUsableCapacityPB float64          `json:"total_usable_capacity_pb"`
}

// RecommendationsRequest adds deployment scale to a sizing request.
type RecommendationsRequest struct {
	RawStorageRequest
	GPUCount int `json:"gpu_count"`
}

// RecommendationsResponse pairs a calculation with its advisories.
type RecommendationsResponse struct {
	Calculation     StorageRawCalculation `json:"calculation"`
	Recommendations []string              `json:"recommendations"`
}

// CostImpactResponse pairs a calculation with its marginal cost.
type CostImpactResponse struct {
	Calculation StorageRawCalculation `json:"calculation"`
	CostImpact  CostImpact            `json:"cost_impact"`
}

// TierValidationRequest lists tiers to check as a combination.
type TierValidationRequest struct {
	Tiers           []string `json:"tiers"`
	TotalCapacityPB float64  `json:"total_capacity_pb"`
}

// TierValidationResponse holds combination findings.
type TierValidationResponse struct {
	Findings []CombinationFinding `json:"findings"`
}

// EstimateRequest drives the full estimation pipeline. Preset and
// TierDistribution are mutually exclusive.
type EstimateRequest struct {
	TierDistribution      TierDistribution `json:"tier_distribution"`
	Preset                string           `json:"preset,omitempty"`
	TotalUsableCapacityPB float64          `json:"total_usable_capacity_pb"`
	GPUCount              int              `json:"gpu_count"`
	Budget                string           `json:"budget,omitempty"`
	TrainingPercent       float64          `json:"training_percent,omitempty"`
	FinetuningPercent     float64          `json:"finetuning_percent,omitempty"`
	PreferredVendor       string           `json:"preferred_vendor,omitempty"`
}

// EstimateResponse is the combined result of every engine component.
type EstimateResponse struct {
	EstimateID       string                 `json:"estimate_id"`
	Preset           string                 `json:"preset,omitempty"`
	TierDistribution TierDistribution       `json:"tier_distribution"`
	GPUCount         int                    `json:"gpu_count"`
	Calculation      StorageRawCalculation  `json:"calculation"`
	Recommendations  []string               `json:"recommendations"`
	CostImpact       CostImpact             `json:"cost_impact"`
	TierCosts        TierCostSummary        `json:"tier_costs"`
	VendorSelection  VendorSelection        `json:"vendor_selection"`
	Findings         []CombinationFinding   `json:"findings"`
	Checkpoints      CheckpointRequirements `json:"checkpoints"`
	Bandwidth        BandwidthRequirements  `json:"bandwidth"`
	OperatingCosts   OperatingCosts         `json:"operating_costs"`
	GeneratedAt      time.Time              `json:"generated_at"`
	Cached           bool                   `json:"cached"`
}
