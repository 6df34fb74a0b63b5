// ABOUTME: Optimization advisor adding scale and efficiency guidance to a raw calculation
// ABOUTME: Scale messages are mutually exclusive on GPU count; efficiency checks always run

package services

import "github.com/nullsector/gpu-tco-analyzer/backend/models"

// GPU scale boundaries for storage guidance.
const (
	LargeScaleGPUs  = 50000
	MediumScaleGPUs = 10000
)

// Advisory messages emitted by OptimizationAdvisor.
const (
	MsgLargeScale      = "Large scale (50K+ GPUs): Erasure coding strongly recommended for cost efficiency"
	MsgOptimizeEC      = "Consider optimizing erasure coding schemes - current efficiency is below 70%"
	MsgMediumScale     = "Medium scale (10K+ GPUs): Mix of replication and erasure coding recommended"
	MsgSmallScale      = "Small scale (<10K GPUs): 3-way replication acceptable for simplicity"
	MsgOverheadExceeds = "WARNING: Storage overhead exceeds usable capacity - review configuration"
	MsgLowEfficiency   = "Low storage efficiency detected - consider erasure coding over replication"
)

const (
	optimizeECEfficiency = 0.70
	lowEfficiencyCeiling = 0.50
)

// OptimizationAdvisor produces storage recommendations for a deployment scale
type OptimizationAdvisor struct{}

// NewOptimizationAdvisor creates a new advisor
func NewOptimizationAdvisor() *OptimizationAdvisor {
	return &OptimizationAdvisor{}
}

// Recommend returns the calculation's tier advisories followed by scale and
// efficiency guidance. calc is not modified.
func (a *OptimizationAdvisor) Recommend(calc models.StorageRawCalculation, gpuCount int) []string {
	recs := make([]string, len(calc.Recommendations), len(calc.Recommendations)+4)
	copy(recs, calc.Recommendations)

	switch {
	case gpuCount >= LargeScaleGPUs:
		recs = append(recs, MsgLargeScale)
		if calc.AverageEfficiency < optimizeECEfficiency {
			recs = append(recs, MsgOptimizeEC)
		}
	case gpuCount >= MediumScaleGPUs:
		recs = append(recs, MsgMediumScale)
	default:
		recs = append(recs, MsgSmallScale)
	}

	if calc.TotalOverheadPB > calc.TotalUsablePB {
		recs = append(recs, MsgOverheadExceeds)
	}
	if calc.AverageEfficiency < lowEfficiencyCeiling {
		recs = append(recs, MsgLowEfficiency)
	}

	return recs
}
