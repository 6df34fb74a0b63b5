// ABOUTME: Operations planner sizing checkpoints, storage bandwidth, and itemized opex
// ABOUTME: Everything scales from GPU count and workload mix rather than the tier layout

package services

import (
	"math"

	"github.com/nullsector/gpu-tco-analyzer/backend/models"
)

// Checkpoint sizing.
const (
	gpusPerNode          = 8
	nodeFailureRate      = 0.0065
	minCheckpointMinutes = 1.5
	checkpointReplicas   = 3
)

// checkpointScale maps the smallest GPU count of a scale band to the model
// trained there and how many checkpoints are kept.
type checkpointScale struct {
	minGPUs     int
	modelSizeTB float64
	retention   int
}

// Descending by minGPUs. Model sizes follow 1T, 405B, 70B and 8B parameters.
var checkpointScales = []checkpointScale{
	{minGPUs: 100000, modelSizeTB: 15, retention: 100},
	{minGPUs: 50000, modelSizeTB: 5.29, retention: 100},
	{minGPUs: 10000, modelSizeTB: 0.912, retention: 50},
	{minGPUs: 5000, modelSizeTB: 0.105, retention: 20},
	{minGPUs: math.MinInt, modelSizeTB: 0.1, retention: 20},
}

// Per-GPU storage bandwidth in GiB/s by workload.
const (
	trainingGiBps   = 2.7
	inferenceGiBps  = 0.3
	finetuningGiBps = 2.0

	gibToGB                = 1.074
	burstScaleGPUs         = 50000
	networkOverheadPercent = 0.30
)

// Itemized opex.
const (
	PowerCostPerKWMonth = 350.0
	SupportRate         = 0.20
	AdminCostPerYear    = 150000.0
	GPUsPerAdmin        = 5000
)

// OperationsPlanner sizes the operational side of a GPU storage deployment
type OperationsPlanner struct{}

// NewOperationsPlanner creates a new operations planner
func NewOperationsPlanner() *OperationsPlanner {
	return &OperationsPlanner{}
}

// CheckpointStorage sizes checkpoint capacity for a cluster of gpuCount GPUs.
// Checkpoint frequency follows the expected time between node failures and
// is +Inf for an empty cluster.
func (p *OperationsPlanner) CheckpointStorage(gpuCount int) models.CheckpointRequirements {
	scale := checkpointScales[len(checkpointScales)-1]
	for _, s := range checkpointScales {
		if gpuCount >= s.minGPUs {
			scale = s
			break
		}
	}

	nodes := math.Ceil(float64(gpuCount) / gpusPerNode)
	frequencyHours := 1 / (nodes * nodeFailureRate * 24)

	return models.CheckpointRequirements{
		ModelSizeTB:       scale.modelSizeTB,
		FrequencyMinutes:  math.Max(frequencyHours*60, minCheckpointMinutes),
		Retention:         scale.retention,
		Redundancy:        checkpointReplicas,
		StorageRequiredTB: scale.modelSizeTB * float64(scale.retention) * checkpointReplicas,
	}
}

// Bandwidth sizes sustained and burst storage throughput for gpuCount GPUs
// running mix. Bursts cover checkpoint writes.
func (p *OperationsPlanner) Bandwidth(gpuCount int, mix models.WorkloadMix) models.BandwidthRequirements {
	perGPU := mix.Training/100*trainingGiBps +
		mix.Inference/100*inferenceGiBps +
		mix.Finetuning/100*finetuningGiBps

	sustained := float64(gpuCount) * perGPU * gibToGB / 1000

	burst := 5.0
	if gpuCount > burstScaleGPUs {
		burst = 10
	}
	overhead := sustained * networkOverheadPercent

	return models.BandwidthRequirements{
		RequiredTBps:        sustained + overhead,
		SustainedTBps:       sustained,
		BurstTBps:           sustained * burst,
		NetworkOverheadTBps: overhead,
	}
}

// OperatingCosts prices the raw footprint in costs and itemizes yearly opex
// as power, support on capex, and one storage admin per GPUsPerAdmin GPUs.
// CostPerGPU and CostPerTB are NaN or Inf when there are no GPUs or no raw
// capacity.
func (p *OperationsPlanner) OperatingCosts(costs models.TierCostSummary, gpuCount int) models.OperatingCosts {
	var rawPB float64
	for _, tier := range costs.Tiers {
		rawPB += tier.RawCapacityPB
	}

	admins := 0
	if gpuCount > 0 {
		admins = (gpuCount + GPUsPerAdmin - 1) / GPUsPerAdmin
	}

	oc := models.OperatingCosts{
		CapexUSD:   costs.TotalCapexUSD,
		PowerUSD:   costs.TotalPowerKW * PowerCostPerKWMonth * 12,
		SupportUSD: costs.TotalCapexUSD * SupportRate,
		AdminUSD:   float64(admins) * AdminCostPerYear,
	}
	oc.AnnualOpexUSD = oc.PowerUSD + oc.SupportUSD + oc.AdminUSD
	oc.TCO5YearUSD = oc.CapexUSD + oc.AnnualOpexUSD*OpexHorizonYears
	oc.CostPerGPU = oc.TCO5YearUSD / float64(gpuCount)
	oc.CostPerTB = oc.CapexUSD / (rawPB * 1000)
	return oc
}
