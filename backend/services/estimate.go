// ABOUTME: Estimate pipeline running every storage calculator for one request
// ABOUTME: Resolves preset combinations and stamps each result with a unique id

package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nullsector/gpu-tco-analyzer/backend/models"
)

var (
	// ErrUnknownPreset is returned when a request names a combination that does not exist.
	ErrUnknownPreset = errors.New("unknown preset")
	// ErrPresetWithDistribution is returned when a request sets both a preset and a distribution.
	ErrPresetWithDistribution = errors.New("preset and tier_distribution are mutually exclusive")
)

// EstimateCatalog is the reference data needed by the estimate pipeline.
type EstimateCatalog interface {
	ArchitectureLookup
	VendorCatalog
	Combination(id string) (models.RecommendedCombination, bool)
}

// EstimateService combines sizing, advice, costing, vendor selection and
// combination checks into one response
type EstimateService struct {
	catalog   EstimateCatalog
	storage   *StorageCalculator
	advisor   *OptimizationAdvisor
	cost      *CostCalculator
	vendors   *VendorSelector
	validator *CombinationValidator
	ops       *OperationsPlanner
	now       func() time.Time
}

// NewEstimateService creates an estimate service backed by catalog
func NewEstimateService(catalog EstimateCatalog) *EstimateService {
	return &EstimateService{
		catalog:   catalog,
		storage:   NewStorageCalculator(catalog),
		advisor:   NewOptimizationAdvisor(),
		cost:      NewCostCalculator(catalog),
		vendors:   NewVendorSelector(catalog),
		validator: NewCombinationValidator(catalog),
		ops:       NewOperationsPlanner(),
		now:       time.Now,
	}
}

// Estimate runs the full pipeline for req.
func (s *EstimateService) Estimate(req models.EstimateRequest) (models.EstimateResponse, error) {
	dist, err := s.resolveDistribution(req)
	if err != nil {
		return models.EstimateResponse{}, err
	}

	calc := s.storage.CalculateRawStorageRequirements(dist, req.TotalUsableCapacityPB)
	tierCosts := s.cost.CalculateTierCosts(calc)

	return models.EstimateResponse{
		EstimateID:       uuid.NewString(),
		Preset:           req.Preset,
		TierDistribution: dist,
		GPUCount:         req.GPUCount,
		Calculation:      calc,
		Recommendations:  s.advisor.Recommend(calc, req.GPUCount),
		CostImpact:       s.cost.CalculateRawStorageCostImpact(calc, dist),
		TierCosts:        tierCosts,
		VendorSelection: s.vendors.Select(models.VendorSelectionInput{
			GPUCount:        req.GPUCount,
			Budget:          req.Budget,
			TrainingPercent: req.TrainingPercent,
			PreferredVendor: req.PreferredVendor,
		}),
		Findings:       s.validator.Validate(activeTiers(dist), req.TotalUsableCapacityPB),
		Checkpoints:    s.ops.CheckpointStorage(req.GPUCount),
		Bandwidth:      s.ops.Bandwidth(req.GPUCount, models.NewWorkloadMix(req.TrainingPercent, req.FinetuningPercent)),
		OperatingCosts: s.ops.OperatingCosts(tierCosts, req.GPUCount),
		GeneratedAt:    s.now().UTC(),
	}, nil
}

func (s *EstimateService) resolveDistribution(req models.EstimateRequest) (models.TierDistribution, error) {
	if req.Preset == "" {
		return req.TierDistribution, nil
	}
	if req.TierDistribution.Len() > 0 {
		return models.TierDistribution{}, ErrPresetWithDistribution
	}
	combo, ok := s.catalog.Combination(req.Preset)
	if !ok {
		return models.TierDistribution{}, fmt.Errorf("%w: %q", ErrUnknownPreset, req.Preset)
	}
	return combo.Distribution, nil
}

// activeTiers lists the tiers of dist with a positive share.
func activeTiers(dist models.TierDistribution) []string {
	var tiers []string
	for _, share := range dist.Shares() {
		if share.Percentage > 0 {
			tiers = append(tiers, share.Tier)
		}
	}
	return tiers
}
