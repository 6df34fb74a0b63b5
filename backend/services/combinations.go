// ABOUTME: Tier combination rules checking a set of architectures for TCO and complexity risks
// ABOUTME: Findings are warnings, errors, or suggestions and never block an estimate

package services

import (
	"slices"

	"github.com/nullsector/gpu-tco-analyzer/backend/models"
)

// Combination finding messages.
const (
	MsgExtremeWithoutCostTier = "Consider adding cost-optimized tiers for better TCO. Extreme performance tiers alone may be over-provisioned for cold data."
	MsgTooManyVendors         = "Multiple vendors increase operational complexity. Consider consolidating to 2-3 vendors maximum."
	MsgSingleCostTier         = "Single cost-optimized tier may not meet performance requirements for AI/ML workloads."
	MsgMetadataTier           = "At this scale, consider dedicated metadata tier with VAST or WEKA for optimal performance."
	MsgObjectTier             = "Consider adding S3-compatible object tier for cost-effective long-term archive."
)

const (
	maxVendors           = 3
	metadataTierPB       = 100
	objectTierPB         = 50
	objectArchitectureID = "s3-compatible"
)

// CombinationValidator checks tier combinations against design rules
type CombinationValidator struct {
	lookup ArchitectureLookup
}

// NewCombinationValidator creates a validator backed by lookup
func NewCombinationValidator(lookup ArchitectureLookup) *CombinationValidator {
	return &CombinationValidator{lookup: lookup}
}

// Validate returns findings for tiers holding totalCapacityPB in aggregate.
// Unknown tier ids contribute nothing to category or vendor checks.
func (v *CombinationValidator) Validate(tiers []string, totalCapacityPB float64) []models.CombinationFinding {
	findings := []models.CombinationFinding{}

	var hasExtreme, hasCostOptimized bool
	vendors := make(map[string]struct{})
	for _, id := range tiers {
		arch, ok := v.lookup.Architecture(id)
		if !ok {
			continue
		}
		switch arch.Category {
		case models.CategoryExtreme:
			hasExtreme = true
		case models.CategoryCostOptimized:
			hasCostOptimized = true
		}
		for _, vendor := range arch.Vendors {
			vendors[vendor] = struct{}{}
		}
	}

	if hasExtreme && !hasCostOptimized {
		findings = append(findings, models.CombinationFinding{Severity: models.SeverityWarning, Message: MsgExtremeWithoutCostTier})
	}
	if len(vendors) > maxVendors {
		findings = append(findings, models.CombinationFinding{Severity: models.SeverityWarning, Message: MsgTooManyVendors})
	}
	if len(tiers) == 1 {
		if arch, ok := v.lookup.Architecture(tiers[0]); ok && arch.Category == models.CategoryCostOptimized {
			findings = append(findings, models.CombinationFinding{Severity: models.SeverityError, Message: MsgSingleCostTier})
		}
	}

	if totalCapacityPB > metadataTierPB {
		findings = append(findings, models.CombinationFinding{Severity: models.SeveritySuggestion, Message: MsgMetadataTier})
	}
	if totalCapacityPB > objectTierPB && !slices.Contains(tiers, objectArchitectureID) {
		findings = append(findings, models.CombinationFinding{Severity: models.SeveritySuggestion, Message: MsgObjectTier})
	}

	return findings
}
