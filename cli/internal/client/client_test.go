// ABOUTME: Tests for the GPU TCO Analyzer API client
// ABOUTME: Uses httptest to mock backend responses

package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nullsector/gpu-tco-analyzer/backend/models"
)

func TestHealth_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/health" {
			t.Errorf("expected path /api/v1/health, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(HealthResponse{
			Status:        "ok",
			Architectures: 10,
			VSphere:       "not_configured",
		})
	}))
	defer server.Close()

	c := New(server.URL)
	resp, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("expected status ok, got %s", resp.Status)
	}
	if resp.Architectures != 10 {
		t.Errorf("expected 10 architectures, got %d", resp.Architectures)
	}
}

func TestHealth_ConnectionError(t *testing.T) {
	c := New("http://localhost:99999")
	_, err := c.Health(context.Background())
	if err == nil {
		t.Error("expected connection error, got nil")
	}
}

func TestHealth_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "internal error"})
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Health(context.Background())
	if err == nil {
		t.Fatal("expected error for non-OK status, got nil")
	}
	if !strings.Contains(err.Error(), "internal error") {
		t.Errorf("expected backend message in error, got %v", err)
	}
}

func TestHealth_NonJSONError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, "<html>bad gateway</html>")
	}))
	defer server.Close()

	_, err := New(server.URL).Health(context.Background())
	if err == nil || !strings.Contains(err.Error(), "status 502") {
		t.Errorf("expected status 502 error, got %v", err)
	}
}

func TestHealth_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
	}))
	defer server.Close()

	c := New(server.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	_, err := c.Health(ctx)
	if err == nil || err.Error() != "request canceled" {
		t.Errorf("expected request canceled, got %v", err)
	}
}

func TestHealth_ContextTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
	}))
	defer server.Close()

	c := New(server.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := c.Health(ctx)
	if err == nil {
		t.Error("expected error for timed out context, got nil")
	}
}

func TestArchitectures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/catalog/architectures" {
			t.Errorf("expected path /api/v1/catalog/architectures, got %s", r.URL.Path)
		}
		io.WriteString(w, `{"architectures": [
			{"id": "ceph-hdd", "name": "Ceph HDD", "category": "cost-optimized",
			 "redundancy": {"type": "erasure_coding", "label": "Erasure coding 8+3", "data_chunks": 8, "coding_chunks": 3, "efficiency": 0.727},
			 "raw_multiplier": 1.375, "cost_per_pb": {"capex": 150000, "opex": 30000, "total_5_year": 300000}}
		]}`)
	}))
	defer server.Close()

	archs, err := New(server.URL).Architectures(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(archs) != 1 {
		t.Fatalf("expected 1 architecture, got %d", len(archs))
	}
	if archs[0].Redundancy.Label != "Erasure coding 8+3" {
		t.Errorf("expected EC label, got %q", archs[0].Redundancy.Label)
	}
	if archs[0].Redundancy.DataChunks != 8 {
		t.Errorf("expected 8 data chunks, got %d", archs[0].Redundancy.DataChunks)
	}
}

func TestVendors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/catalog/vendors" {
			t.Errorf("expected path /api/v1/catalog/vendors, got %s", r.URL.Path)
		}
		io.WriteString(w, `{"vendors": [{"id": "weka", "name": "WEKA", "max_gpus": 100000}], "storage_tiers": []}`)
	}))
	defer server.Close()

	vendors, err := New(server.URL).Vendors(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vendors) != 1 || vendors[0].ID != "weka" {
		t.Errorf("expected weka vendor, got %+v", vendors)
	}
}

func TestCombinations_KeepsDistributionOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"combinations": [{"id": "vast-ceph-optimal", "name": "VAST + Ceph",
			"distribution": {"vast-universal": 15, "ceph-nvme": 10, "ceph-hybrid": 25, "ceph-hdd": 50}}]}`)
	}))
	defer server.Close()

	combos, err := New(server.URL).Combinations(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := strings.Join(combos[0].Distribution.TierIDs(), ",")
	if got != "vast-universal,ceph-nvme,ceph-hybrid,ceph-hdd" {
		t.Errorf("expected distribution order preserved, got %s", got)
	}
}

func TestEstimate_SendsOrderedDistribution(t *testing.T) {
	var received string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected JSON content type, got %q", ct)
		}
		b, _ := io.ReadAll(r.Body)
		received = string(b)
		io.WriteString(w, `{"estimate_id": "abc", "calculation": {"average_efficiency": null, "total_raw_pb": 12.5},
			"cost_impact": {"cost_per_usable_pb": null}}`)
	}))
	defer server.Close()

	dist := models.NewTierDistribution(
		models.TierShare{Tier: "ceph-nvme", Percentage: 20},
		models.TierShare{Tier: "ceph-hdd", Percentage: 80},
	)
	resp, err := New(server.URL).Estimate(context.Background(), &EstimateRequest{
		TierDistribution:      &dist,
		TotalUsableCapacityPB: 10,
		GPUCount:              2000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(received, `"tier_distribution":{"ceph-nvme":20,"ceph-hdd":80}`) {
		t.Errorf("expected ordered distribution in body, got %s", received)
	}
	if strings.Contains(received, "preset") {
		t.Errorf("expected empty preset to be omitted, got %s", received)
	}
	if resp.Calculation.AverageEfficiency != nil {
		t.Errorf("expected null average efficiency to decode as nil, got %v", *resp.Calculation.AverageEfficiency)
	}
	if resp.CostImpact.CostPerUsablePB != nil {
		t.Error("expected null cost per usable PB to decode as nil")
	}
	if resp.Calculation.TotalRawPB != 12.5 {
		t.Errorf("expected 12.5 PB raw, got %g", resp.Calculation.TotalRawPB)
	}
}

func TestEstimate_DecodesOperations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"estimate_id": "abc",
			"checkpoints": {"model_size_tb": 0.1, "frequency_minutes": null, "retention": 20, "redundancy": 3, "storage_required_tb": 6},
			"bandwidth": {"required_tbps": 37.7, "sustained_tbps": 29, "burst_tbps": 145, "network_overhead_tbps": 8.7},
			"operating_costs": {"capex_usd": 1000000, "annual_opex_usd": 542000, "cost_per_gpu": null, "cost_per_tb": 100}}`)
	}))
	defer server.Close()

	resp, err := New(server.URL).Estimate(context.Background(), &EstimateRequest{Preset: "vast-ceph-optimal"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Checkpoints.FrequencyMinutes != nil {
		t.Error("expected null checkpoint frequency to decode as nil")
	}
	if resp.Checkpoints.StorageRequiredTB != 6 {
		t.Errorf("expected 6 TB of checkpoints, got %g", resp.Checkpoints.StorageRequiredTB)
	}
	if resp.Bandwidth.BurstTBps != 145 {
		t.Errorf("expected 145 TB/s burst, got %g", resp.Bandwidth.BurstTBps)
	}
	if resp.OperatingCosts.CostPerGPU != nil {
		t.Error("expected null cost per GPU to decode as nil")
	}
	if resp.OperatingCosts.CostPerTB == nil || *resp.OperatingCosts.CostPerTB != 100 {
		t.Errorf("expected cost per TB 100, got %v", resp.OperatingCosts.CostPerTB)
	}
}

func TestEstimate_PresetOmitsDistribution(t *testing.T) {
	var received string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		received = string(b)
		io.WriteString(w, `{"estimate_id": "abc"}`)
	}))
	defer server.Close()

	_, err := New(server.URL).Estimate(context.Background(), &EstimateRequest{Preset: "vast-ceph-optimal"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(received, "tier_distribution") {
		t.Errorf("expected tier_distribution to be omitted, got %s", received)
	}
}

func TestEstimate_BadRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error": "unknown preset: \"tape\"", "code": 400}`)
	}))
	defer server.Close()

	_, err := New(server.URL).Estimate(context.Background(), &EstimateRequest{Preset: "tape"})
	if err == nil || !strings.Contains(err.Error(), "unknown preset") {
		t.Errorf("expected unknown preset error, got %v", err)
	}
}

func TestGPUInventory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/inventory/gpus" {
			t.Errorf("expected path /api/v1/inventory/gpus, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(GPUInventory{
			Datacenter:    "dc1",
			TotalGPUCount: 4096,
			Clusters:      []ClusterGPUs{{Name: "gpu-a", HostCount: 512, GPUCount: 4096}},
		})
	}))
	defer server.Close()

	inv, err := New(server.URL).GPUInventory(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.TotalGPUCount != 4096 {
		t.Errorf("expected 4096 GPUs, got %d", inv.TotalGPUCount)
	}
}
