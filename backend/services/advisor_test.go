package services

import (
	"math"
	"slices"
	"testing"

	"github.com/nullsector/gpu-tco-analyzer/backend/models"
)

// Scenario: 60K GPUs at 60% efficiency
func TestRecommend_LargeScaleLowEfficiency(t *testing.T) {
	calc := models.StorageRawCalculation{
		TotalUsablePB:     60,
		TotalRawPB:        100,
		TotalOverheadPB:   40,
		AverageEfficiency: 0.60,
	}

	recs := NewOptimizationAdvisor().Recommend(calc, 60000)

	if !slices.Contains(recs, MsgLargeScale) {
		t.Errorf("Expected large scale message, got %v", recs)
	}
	if !slices.Contains(recs, MsgOptimizeEC) {
		t.Errorf("Expected optimize erasure coding message, got %v", recs)
	}
	if slices.Contains(recs, MsgMediumScale) || slices.Contains(recs, MsgSmallScale) {
		t.Errorf("Expected scale messages to be exclusive, got %v", recs)
	}
	if slices.Contains(recs, MsgLowEfficiency) {
		t.Errorf("Expected no low efficiency warning at 60%%, got %v", recs)
	}
}

func TestRecommend_ScaleBoundaries(t *testing.T) {
	calc := models.StorageRawCalculation{TotalUsablePB: 80, TotalRawPB: 100, TotalOverheadPB: 20, AverageEfficiency: 0.8}

	tests := []struct {
		gpus int
		want string
	}{
		{0, MsgSmallScale},
		{9999, MsgSmallScale},
		{10000, MsgMediumScale},
		{49999, MsgMediumScale},
		{50000, MsgLargeScale},
	}

	advisor := NewOptimizationAdvisor()
	for _, tt := range tests {
		recs := advisor.Recommend(calc, tt.gpus)
		if len(recs) != 1 || recs[0] != tt.want {
			t.Errorf("%d GPUs: expected [%q], got %v", tt.gpus, tt.want, recs)
		}
	}
}

func TestRecommend_OverheadAndEfficiencyWarnings(t *testing.T) {
	calc := models.StorageRawCalculation{
		TotalUsablePB:     10,
		TotalRawPB:        30.7,
		TotalOverheadPB:   20.7,
		AverageEfficiency: 10 / 30.7,
		Recommendations:   []string{"Hot: Consider erasure coding for better storage efficiency (3x replication = 67% overhead)"},
	}

	recs := NewOptimizationAdvisor().Recommend(calc, 1000)

	want := []string{
		calc.Recommendations[0],
		MsgSmallScale,
		MsgOverheadExceeds,
		MsgLowEfficiency,
	}
	if !slices.Equal(recs, want) {
		t.Errorf("Expected %v, got %v", want, recs)
	}
}

func TestRecommend_DoesNotMutateInput(t *testing.T) {
	original := []string{"tier advice"}
	calc := models.StorageRawCalculation{
		Recommendations:   original,
		AverageEfficiency: 0.9,
		TotalUsablePB:     9,
		TotalRawPB:        10,
		TotalOverheadPB:   1,
	}

	recs := NewOptimizationAdvisor().Recommend(calc, 100)
	recs[0] = "changed"

	if len(calc.Recommendations) != 1 || calc.Recommendations[0] != "tier advice" {
		t.Errorf("Expected input recommendations unchanged, got %v", calc.Recommendations)
	}
}

func TestRecommend_NaNEfficiencyTriggersNoThresholds(t *testing.T) {
	calc := models.StorageRawCalculation{AverageEfficiency: math.NaN()}

	recs := NewOptimizationAdvisor().Recommend(calc, 75000)

	if !slices.Equal(recs, []string{MsgLargeScale}) {
		t.Errorf("Expected only the large scale message, got %v", recs)
	}
}
