package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestTierDistribution_SetKeepsFirstPosition(t *testing.T) {
	d := NewTierDistribution(
		TierShare{Tier: "hotTier", Percentage: 30},
		TierShare{Tier: "coldTier", Percentage: 70},
	)
	d.Set("hotTier", 40)

	ids := d.TierIDs()
	if len(ids) != 2 || ids[0] != "hotTier" || ids[1] != "coldTier" {
		t.Errorf("Expected [hotTier coldTier], got %v", ids)
	}
	if pct, _ := d.Get("hotTier"); pct != 40 {
		t.Errorf("Expected hotTier to be 40, got %g", pct)
	}
	if d.Total() != 110 {
		t.Errorf("Expected total 110, got %g", d.Total())
	}
}

func TestTierDistribution_GetMissing(t *testing.T) {
	var d TierDistribution
	if _, ok := d.Get("warmTier"); ok {
		t.Error("Expected missing tier to report absent")
	}
	if d.Len() != 0 {
		t.Errorf("Expected empty distribution, got %d entries", d.Len())
	}
}

func TestTierDistribution_SharesIsCopy(t *testing.T) {
	d := NewTierDistribution(TierShare{Tier: "hotTier", Percentage: 100})
	shares := d.Shares()
	shares[0].Percentage = 1

	if pct, _ := d.Get("hotTier"); pct != 100 {
		t.Errorf("Expected distribution to be unaffected by copy mutation, got %g", pct)
	}
}

func TestTierDistribution_UnmarshalKeepsKeyOrder(t *testing.T) {
	var d TierDistribution
	err := json.Unmarshal([]byte(`{"warmTier": 20, "hotTier": 10, "archiveTier": 70}`), &d)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	got := strings.Join(d.TierIDs(), ",")
	if got != "warmTier,hotTier,archiveTier" {
		t.Errorf("Expected warmTier,hotTier,archiveTier, got %s", got)
	}
}

func TestTierDistribution_UnmarshalDuplicateKey(t *testing.T) {
	var d TierDistribution
	if err := json.Unmarshal([]byte(`{"a": 10, "b": 20, "a": 30}`), &d); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := strings.Join(d.TierIDs(), ","); got != "a,b" {
		t.Errorf("Expected a,b, got %s", got)
	}
	if pct, _ := d.Get("a"); pct != 30 {
		t.Errorf("Expected last value 30 for duplicate key, got %g", pct)
	}
}

func TestTierDistribution_UnmarshalRejectsNonObject(t *testing.T) {
	tests := []string{`[1,2]`, `"hotTier"`, `{"hotTier": "lots"}`}
	for _, input := range tests {
		var d TierDistribution
		if err := json.Unmarshal([]byte(input), &d); err == nil {
			t.Errorf("Expected error for %s", input)
		}
	}
}

func TestTierDistribution_UnmarshalNull(t *testing.T) {
	d := NewTierDistribution(TierShare{Tier: "hotTier", Percentage: 100})
	if err := json.Unmarshal([]byte(`null`), &d); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if d.Len() != 0 {
		t.Errorf("Expected null to clear the distribution, got %d entries", d.Len())
	}
}

func TestTierDistribution_MarshalRoundTripOrder(t *testing.T) {
	d := NewTierDistribution(
		TierShare{Tier: "z", Percentage: 1},
		TierShare{Tier: "a", Percentage: 2},
	)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if string(data) != `{"z":1,"a":2}` {
		t.Errorf("Expected insertion-ordered object, got %s", data)
	}
}

func TestTierDistribution_EmbeddedInRequest(t *testing.T) {
	var req RecommendationsRequest
	body := `{"tier_distribution": {"ceph-nvme": 60, "ceph-hdd": 40}, "total_usable_capacity_pb": 25, "gpu_count": 12000}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if req.TotalUsableCapacityPB != 25 {
		t.Errorf("Expected 25 PB, got %g", req.TotalUsableCapacityPB)
	}
	if req.GPUCount != 12000 {
		t.Errorf("Expected 12000 GPUs, got %d", req.GPUCount)
	}
	if got := strings.Join(req.TierDistribution.TierIDs(), ","); got != "ceph-nvme,ceph-hdd" {
		t.Errorf("Expected ceph-nvme,ceph-hdd, got %s", got)
	}
}
