// ABOUTME: Response and request shapes for the GPU TCO Analyzer API
// ABOUTME: Ratios the backend cannot compute arrive as null and decode to nil pointers

package client

import (
	"time"

	"github.com/nullsector/gpu-tco-analyzer/backend/models"
)

// Distribution maps tier ids to percentages, keeping key order on the wire.
type Distribution = models.TierDistribution

// HealthResponse represents the /api/v1/health endpoint response
type HealthResponse struct {
	Status        string                `json:"status"`
	Architectures int                   `json:"architectures"`
	Vendors       int                   `json:"vendors"`
	Combinations  int                   `json:"combinations"`
	VSphere       string                `json:"vsphere"`
	CacheStatus   map[string]CacheStats `json:"cache_status"`
}

// CacheStats reports one backend cache's effectiveness
type CacheStats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Entries int   `json:"entries"`
}

// Redundancy describes how an architecture protects data
type Redundancy struct {
	Type         string  `json:"type"`
	Label        string  `json:"label"`
	Replicas     int     `json:"replicas,omitempty"`
	DataChunks   int     `json:"data_chunks,omitempty"`
	CodingChunks int     `json:"coding_chunks,omitempty"`
	Efficiency   float64 `json:"efficiency,omitempty"`
}

// CostPerPB holds unit economics in USD per petabyte
type CostPerPB struct {
	Capex      float64 `json:"capex"`
	Opex       float64 `json:"opex"`
	Total5Year float64 `json:"total_5_year"`
}

// Architecture is one row of the storage architecture table
type Architecture struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Category      string     `json:"category"`
	Vendors       []string   `json:"vendors"`
	MediaType     string     `json:"media_type,omitempty"`
	Latency       string     `json:"latency,omitempty"`
	Redundancy    Redundancy `json:"redundancy"`
	RawMultiplier float64    `json:"raw_multiplier,omitempty"`
	CostPerPB     CostPerPB  `json:"cost_per_pb"`
	PowerPerPBKW  float64    `json:"power_per_pb_kw"`
}

// Vendor is a storage vendor profile
type Vendor struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Tier         string  `json:"tier"`
	Architecture string  `json:"architecture"`
	MaxGPUs      int     `json:"max_gpus"`
	CostPerPB    float64 `json:"cost_per_pb"`
}

// Combination is a curated tier distribution usable as an estimate preset
type Combination struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Description    string       `json:"description"`
	Distribution   Distribution `json:"distribution"`
	TotalCostPerPB float64      `json:"total_cost_per_pb"`
	Rationale      string       `json:"rationale"`
}

// EstimateRequest is the input to POST /api/v1/storage/estimate.
// Preset and TierDistribution are mutually exclusive.
type EstimateRequest struct {
	TierDistribution      *Distribution `json:"tier_distribution,omitempty"`
	Preset                string        `json:"preset,omitempty"`
	TotalUsableCapacityPB float64       `json:"total_usable_capacity_pb"`
	GPUCount              int           `json:"gpu_count"`
	Budget                string        `json:"budget,omitempty"`
	TrainingPercent       float64       `json:"training_percent,omitempty"`
	FinetuningPercent     float64       `json:"finetuning_percent,omitempty"`
	PreferredVendor       string        `json:"preferred_vendor,omitempty"`
}

// ErasureCodingDetails is the stripe geometry of an erasure-coded tier
type ErasureCodingDetails struct {
	DataChunks   int     `json:"data_chunks"`
	CodingChunks int     `json:"coding_chunks"`
	Efficiency   float64 `json:"efficiency"`
}

// TierDetails breaks down overhead added on top of redundancy
type TierDetails struct {
	ReplicationFactor int                   `json:"replication_factor,omitempty"`
	ErasureCoding     *ErasureCodingDetails `json:"erasure_coding,omitempty"`
	MetadataOverhead  float64               `json:"metadata_overhead_pb"`
	SpareCapacity     float64               `json:"spare_capacity_pb"`
}

// TierBreakdown is the raw sizing of one tier
type TierBreakdown struct {
	UsableCapacityPB   float64     `json:"usable_capacity_pb"`
	RawCapacityPB      float64     `json:"raw_capacity_pb"`
	OverheadPB         float64     `json:"overhead_pb"`
	OverheadPercentage *float64    `json:"overhead_percentage"`
	RedundancyType     string      `json:"redundancy_type"`
	Details            TierDetails `json:"details"`
}

// Calculation aggregates per-tier raw sizing
type Calculation struct {
	TierBreakdown     map[string]TierBreakdown `json:"tier_breakdown"`
	TierOrder         []string                 `json:"tier_order"`
	TotalUsablePB     float64                  `json:"total_usable_pb"`
	TotalRawPB        float64                  `json:"total_raw_pb"`
	TotalOverheadPB   float64                  `json:"total_overhead_pb"`
	AverageEfficiency *float64                 `json:"average_efficiency"`
	Recommendations   []string                 `json:"recommendations"`
}

// TierCostImpact is the marginal cost of one tier's overhead
type TierCostImpact struct {
	Capex float64 `json:"capex"`
	Opex  float64 `json:"opex"`
}

// CostImpact is the cost attributable to redundancy, metadata, and spare capacity
type CostImpact struct {
	AdditionalCapexUSD float64                   `json:"additional_capex_usd"`
	AdditionalOpexUSD  float64                   `json:"additional_opex_usd"`
	CostPerUsablePB    *float64                  `json:"cost_per_usable_pb"`
	Breakdown          map[string]TierCostImpact `json:"breakdown"`
}

// TierCost is the full cost and power of one tier's raw footprint
type TierCost struct {
	Tier          string  `json:"tier"`
	Name          string  `json:"name"`
	RawCapacityPB float64 `json:"raw_capacity_pb"`
	CapexUSD      float64 `json:"capex_usd"`
	AnnualOpexUSD float64 `json:"annual_opex_usd"`
	TCO5YearUSD   float64 `json:"tco_5_year_usd"`
	PowerKW       float64 `json:"power_kw"`
}

// TierCostSummary totals tier costs
type TierCostSummary struct {
	Tiers              []TierCost `json:"tiers"`
	TotalCapexUSD      float64    `json:"total_capex_usd"`
	TotalAnnualOpexUSD float64    `json:"total_annual_opex_usd"`
	TotalTCO5YearUSD   float64    `json:"total_tco_5_year_usd"`
	TotalPowerKW       float64    `json:"total_power_kw"`
}

// TierAssignment names the vendor serving a logical storage tier
type TierAssignment struct {
	Tier     string `json:"tier"`
	TierName string `json:"tier_name"`
	Vendor   string `json:"vendor"`
}

// VendorSelection is the primary/secondary vendor choice
type VendorSelection struct {
	Primary         string           `json:"primary"`
	Secondary       string           `json:"secondary"`
	Rationale       string           `json:"rationale"`
	TierAssignments []TierAssignment `json:"tier_assignments"`
	ScaleWarnings   []string         `json:"scale_warnings"`
}

// Finding is one tier combination check result
type Finding struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// Checkpoints sizes storage kept for training checkpoints
type Checkpoints struct {
	ModelSizeTB       float64  `json:"model_size_tb"`
	FrequencyMinutes  *float64 `json:"frequency_minutes"`
	Retention         int      `json:"retention"`
	Redundancy        int      `json:"redundancy"`
	StorageRequiredTB float64  `json:"storage_required_tb"`
}

// Bandwidth is the storage throughput the GPU fleet needs, in TB/s
type Bandwidth struct {
	RequiredTBps        float64 `json:"required_tbps"`
	SustainedTBps       float64 `json:"sustained_tbps"`
	BurstTBps           float64 `json:"burst_tbps"`
	NetworkOverheadTBps float64 `json:"network_overhead_tbps"`
}

// OperatingCosts itemizes yearly opex on top of footprint capex
type OperatingCosts struct {
	CapexUSD      float64  `json:"capex_usd"`
	PowerUSD      float64  `json:"power_usd"`
	SupportUSD    float64  `json:"support_usd"`
	AdminUSD      float64  `json:"admin_usd"`
	AnnualOpexUSD float64  `json:"annual_opex_usd"`
	TCO5YearUSD   float64  `json:"tco_5_year_usd"`
	CostPerGPU    *float64 `json:"cost_per_gpu"`
	CostPerTB     *float64 `json:"cost_per_tb"`
}

// EstimateResponse is the combined estimate
type EstimateResponse struct {
	EstimateID       string          `json:"estimate_id"`
	Preset           string          `json:"preset,omitempty"`
	TierDistribution Distribution    `json:"tier_distribution"`
	GPUCount         int             `json:"gpu_count"`
	Calculation      Calculation     `json:"calculation"`
	Recommendations  []string        `json:"recommendations"`
	CostImpact       CostImpact      `json:"cost_impact"`
	TierCosts        TierCostSummary `json:"tier_costs"`
	VendorSelection  VendorSelection `json:"vendor_selection"`
	Findings         []Finding       `json:"findings"`
	Checkpoints      Checkpoints     `json:"checkpoints"`
	Bandwidth        Bandwidth       `json:"bandwidth"`
	OperatingCosts   OperatingCosts  `json:"operating_costs"`
	GeneratedAt      time.Time       `json:"generated_at"`
	Cached           bool            `json:"cached"`
}

// ClusterGPUs summarizes GPUs on one compute cluster
type ClusterGPUs struct {
	Name      string         `json:"name"`
	HostCount int            `json:"host_count"`
	GPUCount  int            `json:"gpu_count"`
	GPUModels map[string]int `json:"gpu_models"`
}

// GPUInventory is the datacenter-wide GPU count from vSphere
type GPUInventory struct {
	Datacenter     string        `json:"datacenter"`
	Clusters       []ClusterGPUs `json:"clusters"`
	TotalGPUCount  int           `json:"total_gpu_count"`
	TotalHostCount int           `json:"total_host_count"`
	Timestamp      string        `json:"timestamp"`
	Cached         bool          `json:"cached"`
}
