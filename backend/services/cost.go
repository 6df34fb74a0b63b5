// ABOUTME: Cost calculator pricing storage overhead and full tier footprints
// ABOUTME: Opex is annual and amortized over a fixed five year horizon

package services

import "github.com/nullsector/gpu-tco-analyzer/backend/models"

// OpexHorizonYears is the amortization period used for blended cost figures.
const OpexHorizonYears = 5

// CostCalculator prices raw storage using reference unit economics
type CostCalculator struct {
	lookup ArchitectureLookup
}

// NewCostCalculator creates a cost calculator backed by lookup
func NewCostCalculator(lookup ArchitectureLookup) *CostCalculator {
	return &CostCalculator{lookup: lookup}
}

// CalculateRawStorageCostImpact prices the overhead of each tier in calc.
// Only overhead is priced, so the result is the marginal cost of redundancy,
// metadata and spare capacity. Tiers are visited in dist order, then any
// remaining tiers of calc. CostPerUsablePB is NaN or Inf when calc has no
// usable capacity.
func (c *CostCalculator) CalculateRawStorageCostImpact(calc models.StorageRawCalculation, dist models.TierDistribution) models.CostImpact {
	impact := models.CostImpact{
		Breakdown: make(map[string]models.TierCostImpact),
	}

	for _, tier := range visitOrder(calc, dist) {
		breakdown := calc.TierBreakdown[tier]
		arch, ok := c.lookup.Architecture(tier)
		if !ok {
			continue
		}

		tierCost := models.TierCostImpact{
			Capex: breakdown.OverheadPB * arch.CostPerPB.Capex,
			Opex:  breakdown.OverheadPB * arch.CostPerPB.Opex,
		}
		impact.Breakdown[tier] = tierCost
		impact.AdditionalCapexUSD += tierCost.Capex
		impact.AdditionalOpexUSD += tierCost.Opex
	}

	impact.CostPerUsablePB = (impact.AdditionalCapexUSD + impact.AdditionalOpexUSD*OpexHorizonYears) / calc.TotalUsablePB
	return impact
}

// CalculateTierCosts prices the full raw footprint and power draw of each
// tier in calc, in tier order.
func (c *CostCalculator) CalculateTierCosts(calc models.StorageRawCalculation) models.TierCostSummary {
	summary := models.TierCostSummary{Tiers: []models.TierCost{}}

	for _, tier := range calc.TierOrder {
		breakdown, ok := calc.TierBreakdown[tier]
		if !ok {
			continue
		}
		arch, ok := c.lookup.Architecture(tier)
		if !ok {
			continue
		}

		raw := breakdown.RawCapacityPB
		tc := models.TierCost{
			Tier:          tier,
			Name:          arch.Name,
			RawCapacityPB: raw,
			CapexUSD:      raw * arch.CostPerPB.Capex,
			AnnualOpexUSD: raw * arch.CostPerPB.Opex,
			PowerKW:       raw * arch.PowerPerPBKW,
		}
		tc.TCO5YearUSD = tc.CapexUSD + tc.AnnualOpexUSD*OpexHorizonYears

		summary.Tiers = append(summary.Tiers, tc)
		summary.TotalCapexUSD += tc.CapexUSD
		summary.TotalAnnualOpexUSD += tc.AnnualOpexUSD
		summary.TotalTCO5YearUSD += tc.TCO5YearUSD
		summary.TotalPowerKW += tc.PowerKW
	}

	return summary
}

// visitOrder lists the tiers of calc, those named by dist first.
func visitOrder(calc models.StorageRawCalculation, dist models.TierDistribution) []string {
	seen := make(map[string]bool, len(calc.TierBreakdown))
	order := make([]string, 0, len(calc.TierBreakdown))

	add := func(tier string) {
		if seen[tier] {
			return
		}
		if _, ok := calc.TierBreakdown[tier]; !ok {
			return
		}
		seen[tier] = true
		order = append(order, tier)
	}

	for _, tier := range dist.TierIDs() {
		add(tier)
	}
	for _, tier := range calc.TierOrder {
		add(tier)
	}
	return order
}
