package models

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestRedundancyModels_Labels(t *testing.T) {
	tests := []struct {
		model RedundancyModel
		kind  string
		label string
	}{
		{Replication{Replicas: 3}, RedundancyReplication, "3-way replication"},
		{ErasureCoding{DataChunks: 8, CodingChunks: 3}, RedundancyErasureCoding, "Erasure coding 8+3"},
		{Generic{Efficiency: 0.9, RedundancyLabel: "Erasure coding 17+2"}, RedundancyGeneric, "Erasure coding 17+2"},
	}

	for _, tt := range tests {
		if tt.model.Kind() != tt.kind {
			t.Errorf("Expected kind %s, got %s", tt.kind, tt.model.Kind())
		}
		if tt.model.Label() != tt.label {
			t.Errorf("Expected label %q, got %q", tt.label, tt.model.Label())
		}
	}
}

func TestErasureCoding_EfficiencyInOpenUnitInterval(t *testing.T) {
	for d := 1; d <= 20; d++ {
		for c := 1; c <= 6; c++ {
			eff := ErasureCoding{DataChunks: d, CodingChunks: c}.Efficiency()
			want := float64(d) / float64(d+c)
			if eff != want {
				t.Errorf("%d+%d: expected efficiency %g, got %g", d, c, want, eff)
			}
			if eff <= 0 || eff >= 1 {
				t.Errorf("%d+%d: expected efficiency in (0,1), got %g", d, c, eff)
			}
		}
	}
}

func TestRedundancyModels_RawCapacity(t *testing.T) {
	if got := (Replication{Replicas: 3}).RawCapacity(10, 3); got != 30 {
		t.Errorf("Expected replication raw 30, got %g", got)
	}
	if got := (ErasureCoding{DataChunks: 8, CodingChunks: 3}).RawCapacity(8, 1.375); got != 11 {
		t.Errorf("Expected erasure coding raw 11, got %g", got)
	}
	if got := (Generic{Efficiency: 0.5}).RawCapacity(10, 99); got != 20 {
		t.Errorf("Expected generic raw 20 ignoring multiplier, got %g", got)
	}
}

func TestRedundancyModels_Details(t *testing.T) {
	rep := Replication{Replicas: 3}.Details(100)
	if rep.ReplicationFactor != 3 || rep.MetadataOverhead != 2 || rep.SpareCapacity != 5 {
		t.Errorf("Unexpected replication details: %+v", rep)
	}
	if rep.ErasureCoding != nil {
		t.Error("Expected no erasure coding details for replication")
	}

	ec := ErasureCoding{DataChunks: 8, CodingChunks: 3}.Details(100)
	if ec.ErasureCoding == nil {
		t.Fatal("Expected erasure coding details")
	}
	if ec.MetadataOverhead != 3 || ec.SpareCapacity != 5 {
		t.Errorf("Unexpected erasure coding overheads: %+v", ec)
	}

	gen := Generic{Efficiency: 0.9}.Details(100)
	if gen.MetadataOverhead != 2 || gen.SpareCapacity != 3 {
		t.Errorf("Unexpected generic overheads: %+v", gen)
	}
}

func TestStorageArchitecture_Validate(t *testing.T) {
	valid := StorageArchitecture{
		ID:            "ceph-nvme",
		Name:          "Ceph NVMe",
		Category:      CategoryHighPerformance,
		Redundancy:    Replication{Replicas: 3},
		RawMultiplier: 3,
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Expected valid architecture, got %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*StorageArchitecture)
		wantErr string
	}{
		{"missing id", func(a *StorageArchitecture) { a.ID = "" }, "<unnamed>"},
		{"unknown category", func(a *StorageArchitecture) { a.Category = "bulk" }, `unknown category "bulk"`},
		{"nil redundancy", func(a *StorageArchitecture) { a.Redundancy = nil }, "redundancy model is required"},
		{"multiplier below one", func(a *StorageArchitecture) { a.RawMultiplier = 0.5 }, "raw_multiplier >= 1"},
		{"negative cost", func(a *StorageArchitecture) { a.CostPerPB.Capex = -1 }, "non-negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := valid
			tt.mutate(&a)
			err := a.Validate()
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestStorageArchitecture_MarshalRedundancy(t *testing.T) {
	a := StorageArchitecture{
		ID:         "ceph-hdd",
		Redundancy: ErasureCoding{DataChunks: 8, CodingChunks: 3},
	}
	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(string(data), `"redundancy":{"type":"erasure_coding","label":"Erasure coding 8+3","data_chunks":8,"coding_chunks":3`) {
		t.Errorf("Unexpected redundancy encoding: %s", data)
	}
}

func TestCalculation_NonFiniteRatiosEncodeAsNull(t *testing.T) {
	calc := StorageRawCalculation{
		TierBreakdown: map[string]RawStorageBreakdown{
			"empty": {OverheadPercentage: math.NaN()},
		},
		AverageEfficiency: math.NaN(),
	}
	data, err := json.Marshal(calc)
	if err != nil {
		t.Fatalf("Expected NaN ratios to encode, got error: %v", err)
	}
	if !strings.Contains(string(data), `"average_efficiency":null`) {
		t.Errorf("Expected average_efficiency null, got %s", data)
	}
	if !strings.Contains(string(data), `"overhead_percentage":null`) {
		t.Errorf("Expected overhead_percentage null, got %s", data)
	}

	impact := CostImpact{CostPerUsablePB: math.Inf(1)}
	data, err = json.Marshal(impact)
	if err != nil {
		t.Fatalf("Expected Inf ratio to encode, got error: %v", err)
	}
	if !strings.Contains(string(data), `"cost_per_usable_pb":null`) {
		t.Errorf("Expected cost_per_usable_pb null, got %s", data)
	}
}

func TestCalculation_FiniteRatiosEncodeOnce(t *testing.T) {
	data, err := json.Marshal(RawStorageBreakdown{OverheadPercentage: 50})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if strings.Count(string(data), "overhead_percentage") != 1 {
		t.Errorf("Expected a single overhead_percentage key, got %s", data)
	}
	if !strings.Contains(string(data), `"overhead_percentage":50`) {
		t.Errorf("Expected overhead_percentage 50, got %s", data)
	}
}

func TestVendorProfile_Supports(t *testing.T) {
	v := VendorProfile{MinScale: 1000, MaxScale: 50000}
	if !v.Supports(1000) || !v.Supports(50000) {
		t.Error("Expected scale bounds to be inclusive")
	}
	if v.Supports(999) || v.Supports(50001) {
		t.Error("Expected counts outside the envelope to be unsupported")
	}
}
