// ABOUTME: Vendor profiles, storage tier profiles, and recommended tier combinations
// ABOUTME: Reference data consumed by vendor selection and combination validation

package models

// Vendor tiers.
const (
	VendorTierProduction = "production"
	VendorTierEnterprise = "enterprise"
)

// Finding severities for tier combination checks.
const (
	SeverityWarning    = "warning"
	SeverityError      = "error"
	SeveritySuggestion = "suggestion"
)

// VendorProfile describes a storage vendor's capability and scale envelope.
type VendorProfile struct {
	ID             string   `json:"id" yaml:"id"`
	Name           string   `json:"name" yaml:"name"`
	Tier           string   `json:"tier" yaml:"tier"`
	Throughput     string   `json:"throughput" yaml:"throughput"`
	Latency        string   `json:"latency" yaml:"latency"`
	Architecture   string   `json:"architecture" yaml:"architecture"`
	MaxGPUs        int      `json:"max_gpus" yaml:"max_gpus"`
	CostPerPB      float64  `json:"cost_per_pb" yaml:"cost_per_pb"`
	CostModel      string   `json:"cost_model" yaml:"cost_model"`
	PowerPerPBKW   float64  `json:"power_per_pb_kw" yaml:"power_per_pb_kw"`
	Certifications []string `json:"certifications,omitempty" yaml:"certifications"`
	MinScale       int      `json:"min_scale" yaml:"min_scale"`
	MaxScale       int      `json:"max_scale" yaml:"max_scale"`
}

// Supports reports whether gpuCount falls inside the vendor's recommended scale.
func (v VendorProfile) Supports(gpuCount int) bool {
	return gpuCount >= v.MinScale && gpuCount <= v.MaxScale
}

// TierShares is a storage tier's share of capacity per workload profile.
type TierShares struct {
	TrainingHeavy float64 `json:"training_heavy" yaml:"training_heavy"`
	Balanced      float64 `json:"balanced" yaml:"balanced"`
	CostOptimized float64 `json:"cost_optimized" yaml:"cost_optimized"`
}

// StorageTierProfile is a logical storage tier (hot, warm, cold...) and the vendors that can serve it.
type StorageTierProfile struct {
	ID                 string     `json:"id" yaml:"id"`
	Name               string     `json:"name" yaml:"name"`
	Technology         string     `json:"technology" yaml:"technology"`
	PowerPerPBKW       float64    `json:"power_per_pb_kw" yaml:"power_per_pb_kw"`
	Vendors            []string   `json:"vendors" yaml:"vendors"`
	CostRangeMin       float64    `json:"cost_range_min" yaml:"cost_range_min"`
	CostRangeMax       float64    `json:"cost_range_max" yaml:"cost_range_max"`
	LatencyRequirement string     `json:"latency_requirement" yaml:"latency_requirement"`
	Shares             TierShares `json:"shares" yaml:"shares"`
}

// ScaleThreshold is a GPU count beyond which an architectural concern applies.
type ScaleThreshold struct {
	Name     string `json:"name" yaml:"name"`
	GPUCount int    `json:"gpu_count" yaml:"gpu_count"`
	Warning  string `json:"warning" yaml:"warning"`
	Action   string `json:"action" yaml:"action"`
}

// RecommendedCombination is a curated tier distribution.
type RecommendedCombination struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	Distribution   TierDistribution `json:"distribution"`
	TotalCostPerPB float64          `json:"total_cost_per_pb"`
	Rationale      string           `json:"rationale"`
}

// VendorSelectionInput drives scale-based vendor selection.
type VendorSelectionInput struct {
	GPUCount        int     `json:"gpu_count"`
	Budget          string  `json:"budget,omitempty"` // unlimited, optimized, cost-conscious
	TrainingPercent float64 `json:"training_percent,omitempty"`
	PreferredVendor string  `json:"preferred_vendor,omitempty"` // vendor id or "auto"
}

// TierAssignment names the vendor chosen to serve a storage tier.
type TierAssignment struct {
	Tier     string `json:"tier"`
	TierName string `json:"tier_name"`
	Vendor   string `json:"vendor"`
}

// VendorSelection is the primary/secondary vendor choice for a deployment.
type VendorSelection struct {
	Primary           string           `json:"primary"`
	Secondary         string           `json:"secondary"`
	Rationale         string           `json:"rationale"`
	ApplicableVendors []VendorProfile  `json:"applicable_vendors"`
	TierAssignments   []TierAssignment `json:"tier_assignments"`
	ScaleWarnings     []string         `json:"scale_warnings"`
}

// CombinationFinding is one result of validating a set of tiers.
type CombinationFinding struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}
