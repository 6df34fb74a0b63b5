package services

import (
	"testing"

	"github.com/nullsector/gpu-tco-analyzer/backend/catalog"
	"github.com/nullsector/gpu-tco-analyzer/backend/models"
)

func findingMessages(findings []models.CombinationFinding) map[string]string {
	out := make(map[string]string, len(findings))
	for _, f := range findings {
		out[f.Message] = f.Severity
	}
	return out
}

func TestValidate_CombinationRules(t *testing.T) {
	validator := NewCombinationValidator(catalog.Default())

	tests := []struct {
		name     string
		tiers    []string
		capacity float64
		want     map[string]string
	}{
		{
			name:     "extreme tier alone",
			tiers:    []string{"vast-universal", "pure-flashblade"},
			capacity: 10,
			want:     map[string]string{MsgExtremeWithoutCostTier: models.SeverityWarning},
		},
		{
			name:     "high-performance pair",
			tiers:    []string{"pure-flashblade", "netapp-aff"},
			capacity: 10,
			want:     map[string]string{},
		},
		{
			name:     "extreme with cost tier across four vendors",
			tiers:    []string{"vast-universal", "ceph-hdd"},
			capacity: 10,
			want:     map[string]string{MsgTooManyVendors: models.SeverityWarning},
		},
		{
			name:     "single cost-optimized tier",
			tiers:    []string{"ceph-hdd"},
			capacity: 10,
			want:     map[string]string{MsgSingleCostTier: models.SeverityError},
		},
		{
			name:     "many vendors",
			tiers:    []string{"weka-parallel", "pure-flashblade", "netapp-aff", "dell-powerscale", "ceph-hdd"},
			capacity: 10,
			want:     map[string]string{MsgTooManyVendors: models.SeverityWarning},
		},
		{
			name:     "large without object tier",
			tiers:    []string{"ceph-hybrid", "ceph-hdd"},
			capacity: 120,
			want: map[string]string{
				MsgMetadataTier: models.SeveritySuggestion,
				MsgObjectTier:   models.SeveritySuggestion,
			},
		},
		{
			name:     "medium with object tier",
			tiers:    []string{"ceph-hybrid", "s3-compatible"},
			capacity: 75,
			want:     map[string]string{MsgTooManyVendors: models.SeverityWarning},
		},
		{
			name:     "unknown tiers ignored",
			tiers:    []string{"tape", "glacier"},
			capacity: 1,
			want:     map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := findingMessages(validator.Validate(tt.tiers, tt.capacity))
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %d findings, got %v", len(tt.want), got)
			}
			for msg, severity := range tt.want {
				if got[msg] != severity {
					t.Errorf("Expected %s finding %q, got %q", severity, msg, got[msg])
				}
			}
		})
	}
}

func TestValidate_EmptyFindingsNotNil(t *testing.T) {
	findings := NewCombinationValidator(catalog.Default()).Validate(nil, 0)
	if findings == nil {
		t.Error("Expected empty slice, got nil")
	}
}
