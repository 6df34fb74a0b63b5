package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nullsector/gpu-tco-analyzer/backend/catalog"
	"github.com/nullsector/gpu-tco-analyzer/backend/models"
)

func TestEstimate_WithPreset(t *testing.T) {
	svc := NewEstimateService(catalog.Default())
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	resp, err := svc.Estimate(models.EstimateRequest{
		Preset:                "vast-ceph-optimal",
		TotalUsableCapacityPB: 100,
		GPUCount:              30000,
		TrainingPercent:       80,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if _, err := uuid.Parse(resp.EstimateID); err != nil {
		t.Errorf("Expected a UUID estimate id, got %q", resp.EstimateID)
	}
	if !resp.GeneratedAt.Equal(fixed) {
		t.Errorf("Expected generated_at %v, got %v", fixed, resp.GeneratedAt)
	}
	if got := strings.Join(resp.Calculation.TierOrder, ","); got != "vast-universal,ceph-nvme,ceph-hybrid,ceph-hdd" {
		t.Errorf("Expected preset tier order, got %s", got)
	}
	if !approxEqual(resp.Calculation.TotalUsablePB, 100) {
		t.Errorf("Expected 100 PB usable, got %g", resp.Calculation.TotalUsablePB)
	}
	if resp.VendorSelection.Primary != "ddn" {
		t.Errorf("Expected ddn for training-heavy 30K GPUs, got %s", resp.VendorSelection.Primary)
	}
	if len(resp.TierCosts.Tiers) != 4 {
		t.Errorf("Expected 4 tier costs, got %d", len(resp.TierCosts.Tiers))
	}
	if len(resp.CostImpact.Breakdown) != 4 {
		t.Errorf("Expected 4 priced tiers, got %d", len(resp.CostImpact.Breakdown))
	}
	if resp.Recommendations[len(resp.Recommendations)-1] != MsgMediumScale {
		t.Errorf("Expected medium scale advice last, got %v", resp.Recommendations)
	}
}

func TestEstimate_IncludesOperations(t *testing.T) {
	svc := NewEstimateService(catalog.Default())

	resp, err := svc.Estimate(models.EstimateRequest{
		Preset:                "cost-optimized-scale",
		TotalUsableCapacityPB: 50,
		GPUCount:              12000,
		TrainingPercent:       60,
		FinetuningPercent:     20,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !approxEqual(resp.Checkpoints.StorageRequiredTB, 136.8) {
		t.Errorf("Expected 70B checkpoint sizing, got %g TB", resp.Checkpoints.StorageRequiredTB)
	}

	// 60% x 2.7 + 20% x 0.3 + 20% x 2.0 GiB/s per GPU
	wantSustained := 12000 * (0.6*2.7 + 0.2*0.3 + 0.2*2.0) * 1.074 / 1000
	if !approxEqual(resp.Bandwidth.SustainedTBps, wantSustained) {
		t.Errorf("Expected %g TB/s sustained, got %g", wantSustained, resp.Bandwidth.SustainedTBps)
	}

	oc := resp.OperatingCosts
	if !approxEqual(oc.CapexUSD, resp.TierCosts.TotalCapexUSD) {
		t.Errorf("Expected capex from tier costs %g, got %g", resp.TierCosts.TotalCapexUSD, oc.CapexUSD)
	}
	if !approxEqual(oc.PowerUSD, resp.TierCosts.TotalPowerKW*350*12) {
		t.Errorf("Expected power priced from tier power draw, got %g", oc.PowerUSD)
	}
	// 12,000 GPUs need three admins
	if !approxEqual(oc.AdminUSD, 450000) {
		t.Errorf("Expected admin 450,000, got %g", oc.AdminUSD)
	}
	if !approxEqual(oc.CostPerGPU, oc.TCO5YearUSD/12000) {
		t.Errorf("Expected cost per GPU from 5-year TCO, got %g", oc.CostPerGPU)
	}
}

func TestEstimate_WithDistribution(t *testing.T) {
	svc := NewEstimateService(catalog.Default())

	resp, err := svc.Estimate(models.EstimateRequest{
		TierDistribution: models.NewTierDistribution(
			models.TierShare{Tier: "ceph-hdd", Percentage: 100},
			models.TierShare{Tier: "made-up", Percentage: 0},
		),
		TotalUsableCapacityPB: 10,
		GPUCount:              500,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	found := false
	for _, f := range resp.Findings {
		if f.Message == MsgSingleCostTier && f.Severity == models.SeverityError {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected single cost-optimized tier error, got %v", resp.Findings)
	}
	if resp.Preset != "" {
		t.Errorf("Expected no preset, got %s", resp.Preset)
	}
}

func TestEstimate_UnknownPreset(t *testing.T) {
	_, err := NewEstimateService(catalog.Default()).Estimate(models.EstimateRequest{Preset: "nope"})
	if !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("Expected ErrUnknownPreset, got %v", err)
	}
}

func TestEstimate_PresetAndDistribution(t *testing.T) {
	_, err := NewEstimateService(catalog.Default()).Estimate(models.EstimateRequest{
		Preset:           "vast-ceph-optimal",
		TierDistribution: models.NewTierDistribution(models.TierShare{Tier: "ceph-hdd", Percentage: 100}),
	})
	if !errors.Is(err, ErrPresetWithDistribution) {
		t.Errorf("Expected ErrPresetWithDistribution, got %v", err)
	}
}

func TestEstimate_UniqueIDs(t *testing.T) {
	svc := NewEstimateService(catalog.Default())
	a, _ := svc.Estimate(models.EstimateRequest{})
	b, _ := svc.Estimate(models.EstimateRequest{})
	if a.EstimateID == b.EstimateID {
		t.Error("Expected distinct estimate ids")
	}
}

func TestActiveTiers(t *testing.T) {
	d := dist(
		models.TierShare{Tier: "a", Percentage: 10},
		models.TierShare{Tier: "b", Percentage: 0},
		models.TierShare{Tier: "c", Percentage: -5},
		models.TierShare{Tier: "d", Percentage: 90},
	)
	if got := strings.Join(activeTiers(d), ","); got != "a,d" {
		t.Errorf("Expected a,d, got %s", got)
	}
}
