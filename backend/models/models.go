// ABOUTME: Shared API response envelopes
// ABOUTME: JSON-serializable structures returned by every handler

package models

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    int    `json:"code"`
}

// CacheStats reports hit rates for one response cache.
type CacheStats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Entries int   `json:"entries"`
}

// HealthResponse reports service status and the size of the loaded catalog.
type HealthResponse struct {
	Status        string                `json:"status"`
	Architectures int                   `json:"architectures"`
	Vendors       int                   `json:"vendors"`
	Combinations  int                   `json:"combinations"`
	VSphere       string                `json:"vsphere"`
	CacheStatus   map[string]CacheStats `json:"cache_status"`
}

// ArchitecturesResponse lists reference architectures in catalog order.
type ArchitecturesResponse struct {
	Architectures []StorageArchitecture `json:"architectures"`
}

// VendorsResponse lists vendor profiles and the logical storage tiers they serve.
type VendorsResponse struct {
	Vendors         []VendorProfile      `json:"vendors"`
	StorageTiers    []StorageTierProfile `json:"storage_tiers"`
	ScaleThresholds []ScaleThreshold     `json:"scale_thresholds"`
}

// CombinationsResponse lists curated tier distributions.
type CombinationsResponse struct {
	Combinations []RecommendedCombination `json:"combinations"`
}
