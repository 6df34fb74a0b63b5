// ABOUTME: Raw storage calculator converting usable capacity targets into raw capacity
// ABOUTME: Sizes each tier by its redundancy model and adds metadata and spare overhead

package services

import (
	"fmt"
	"math"

	"github.com/nullsector/gpu-tco-analyzer/backend/models"
)

// largeECThresholdPB is the usable size above which erasure coding is called out as optimal.
const largeECThresholdPB = 50.0

// ArchitectureLookup resolves tier identifiers against reference data.
// A missing tier reports false and is skipped by every calculator.
type ArchitectureLookup interface {
	Architecture(id string) (models.StorageArchitecture, bool)
}

// StorageCalculator computes raw storage requirements for a tier distribution
type StorageCalculator struct {
	lookup ArchitectureLookup
}

// NewStorageCalculator creates a calculator backed by lookup
func NewStorageCalculator(lookup ArchitectureLookup) *StorageCalculator {
	return &StorageCalculator{lookup: lookup}
}

// CalculateRawStorageRequirements sizes every recognized tier with a positive
// share of totalUsableCapacityPB. Inputs are not validated: negative values
// propagate, and an empty result has a NaN average efficiency.
func (c *StorageCalculator) CalculateRawStorageRequirements(dist models.TierDistribution, totalUsableCapacityPB float64) models.StorageRawCalculation {
	result := models.StorageRawCalculation{
		TierBreakdown:   make(map[string]models.RawStorageBreakdown),
		TierOrder:       []string{},
		Recommendations: []string{},
	}

	for _, share := range dist.Shares() {
		if share.Percentage <= 0 {
			continue
		}
		arch, ok := c.lookup.Architecture(share.Tier)
		if !ok {
			continue
		}
		// A repeated tier id would double count; TierDistribution rules it out.
		if _, seen := result.TierBreakdown[share.Tier]; seen {
			continue
		}

		usable := totalUsableCapacityPB * share.Percentage / 100
		breakdown := c.CalculateTierRawStorage(arch, usable)

		result.TierBreakdown[share.Tier] = breakdown
		result.TierOrder = append(result.TierOrder, share.Tier)
		result.TotalUsablePB += breakdown.UsableCapacityPB
		result.TotalRawPB += breakdown.RawCapacityPB
		result.TotalOverheadPB += breakdown.OverheadPB
		result.Recommendations = append(result.Recommendations, tierAdvisories(arch, usable)...)
	}

	if result.TotalRawPB == 0 {
		result.AverageEfficiency = math.NaN()
	} else {
		result.AverageEfficiency = result.TotalUsablePB / result.TotalRawPB
	}

	return result
}

// CalculateTierRawStorage sizes a single tier holding usablePB of data.
// OverheadPercentage is NaN when the raw size is zero.
func (c *StorageCalculator) CalculateTierRawStorage(arch models.StorageArchitecture, usablePB float64) models.RawStorageBreakdown {
	raw := arch.Redundancy.RawCapacity(usablePB, arch.RawMultiplier)
	details := arch.Redundancy.Details(usablePB)
	raw += details.MetadataOverhead + details.SpareCapacity

	overhead := raw - usablePB
	pct := math.NaN()
	if raw != 0 {
		pct = overhead / raw * 100
	}

	return models.RawStorageBreakdown{
		UsableCapacityPB:   usablePB,
		RawCapacityPB:      raw,
		OverheadPB:         overhead,
		OverheadPercentage: pct,
		RedundancyType:     arch.Redundancy.Label(),
		Details:            details,
	}
}

// tierAdvisories returns the per-tier efficiency advice for arch.
func tierAdvisories(arch models.StorageArchitecture, usablePB float64) []string {
	var recs []string

	switch m := arch.Redundancy.(type) {
	case models.Replication:
		if m.Replicas == 3 {
			recs = append(recs, fmt.Sprintf("%s: Consider erasure coding for better storage efficiency (3x replication = 67%% overhead)", arch.Name))
		}
	case models.ErasureCoding:
		if usablePB > largeECThresholdPB {
			overhead := math.Round((1 - m.Efficiency()) * 100)
			recs = append(recs, fmt.Sprintf("%s: Erasure coding is optimal for large-scale deployments (%.0f%% overhead)", arch.Name, overhead))
		}
	case models.Generic:
		// Published efficiency only; no scheme-specific advice.
	default:
		panic(fmt.Sprintf("unhandled redundancy model %T", m))
	}

	return recs
}
