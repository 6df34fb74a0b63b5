// ABOUTME: Scale-based storage vendor selection for GPU deployments
// ABOUTME: Picks primary and secondary vendors and flags scale thresholds crossed

package services

import (
	"fmt"
	"slices"

	"github.com/nullsector/gpu-tco-analyzer/backend/models"
)

// Vendor selection scale boundaries.
const (
	MegaScaleGPUs        = 100000
	VendorLargeScaleGPUs = 25000
	VendorMidScaleGPUs   = 5000
	trainingHeavyPercent = 70
)

// AutoVendor lets the selector choose vendors from scale.
const AutoVendor = "auto"

// VendorCatalog is the reference data needed for vendor selection.
type VendorCatalog interface {
	Vendor(id string) (models.VendorProfile, bool)
	Vendors() []models.VendorProfile
	StorageTiers() []models.StorageTierProfile
	ScaleThresholds() []models.ScaleThreshold
}

// VendorSelector chooses storage vendors for a deployment
type VendorSelector struct {
	catalog VendorCatalog
}

// NewVendorSelector creates a vendor selector backed by catalog
func NewVendorSelector(catalog VendorCatalog) *VendorSelector {
	return &VendorSelector{catalog: catalog}
}

// Select returns the vendor choice for input along with the vendors whose
// scale envelope covers the GPU count, per-tier assignments and any scale
// threshold warnings.
func (s *VendorSelector) Select(input models.VendorSelectionInput) models.VendorSelection {
	sel := s.choose(input)

	sel.ApplicableVendors = []models.VendorProfile{}
	for _, v := range s.catalog.Vendors() {
		if v.Supports(input.GPUCount) {
			sel.ApplicableVendors = append(sel.ApplicableVendors, v)
		}
	}

	sel.TierAssignments = []models.TierAssignment{}
	for _, tier := range s.catalog.StorageTiers() {
		sel.TierAssignments = append(sel.TierAssignments, models.TierAssignment{
			Tier:     tier.ID,
			TierName: tier.Name,
			Vendor:   assignVendor(tier, sel.Primary, sel.Secondary),
		})
	}

	sel.ScaleWarnings = []string{}
	for _, t := range s.catalog.ScaleThresholds() {
		if input.GPUCount >= t.GPUCount {
			sel.ScaleWarnings = append(sel.ScaleWarnings, t.Warning)
		}
	}

	return sel
}

func (s *VendorSelector) choose(input models.VendorSelectionInput) models.VendorSelection {
	if input.PreferredVendor != "" && input.PreferredVendor != AutoVendor {
		name := input.PreferredVendor
		if v, ok := s.catalog.Vendor(input.PreferredVendor); ok {
			name = v.Name
		}
		return models.VendorSelection{
			Primary:   input.PreferredVendor,
			Secondary: "ceph",
			Rationale: fmt.Sprintf("User selected %s", name),
		}
	}

	switch {
	case input.GPUCount >= MegaScaleGPUs:
		if input.Budget == "unlimited" {
			return models.VendorSelection{
				Primary:   "vastdata",
				Secondary: "ddn",
				Rationale: "Mega-scale deployment requires proven vendors with 100k+ GPU validation",
			}
		}
		return models.VendorSelection{
			Primary:   "weka",
			Secondary: "ceph",
			Rationale: "Cost-optimized mega-scale with software-defined primary storage",
		}
	case input.GPUCount >= VendorLargeScaleGPUs:
		if input.TrainingPercent > trainingHeavyPercent {
			return models.VendorSelection{
				Primary:   "ddn",
				Secondary: "purestorage",
				Rationale: "Training-heavy workload requires parallel filesystem performance",
			}
		}
		return models.VendorSelection{
			Primary:   "purestorage",
			Secondary: "netapp",
			Rationale: "Mixed workload benefits from enterprise NAS/SAN architecture",
		}
	case input.GPUCount >= VendorMidScaleGPUs:
		return models.VendorSelection{
			Primary:   "weka",
			Secondary: "ceph",
			Rationale: "Medium scale deployment with software-defined storage",
		}
	default:
		return models.VendorSelection{
			Primary:   "dell",
			Secondary: "ceph",
			Rationale: "Small scale deployment with traditional enterprise storage",
		}
	}
}

// assignVendor prefers the primary, then the secondary, then the tier's first listed vendor.
func assignVendor(tier models.StorageTierProfile, primary, secondary string) string {
	switch {
	case slices.Contains(tier.Vendors, primary):
		return primary
	case slices.Contains(tier.Vendors, secondary):
		return secondary
	case len(tier.Vendors) > 0:
		return tier.Vendors[0]
	default:
		return ""
	}
}
