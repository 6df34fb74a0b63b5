package catalog

import (
	"strings"
	"testing"

	"github.com/nullsector/gpu-tco-analyzer/backend/models"
)

func TestDefault_LoadsEmbeddedCatalog(t *testing.T) {
	c := Default()

	if got := len(c.Architectures()); got != 10 {
		t.Errorf("Expected 10 architectures, got %d", got)
	}
	if got := len(c.Vendors()); got != 7 {
		t.Errorf("Expected 7 vendors, got %d", got)
	}
	if got := len(c.Combinations()); got != 4 {
		t.Errorf("Expected 4 combinations, got %d", got)
	}
	if got := len(c.StorageTiers()); got != 5 {
		t.Errorf("Expected 5 storage tiers, got %d", got)
	}
	if got := len(c.ScaleThresholds()); got != 4 {
		t.Errorf("Expected 4 scale thresholds, got %d", got)
	}

	if first := c.Architectures()[0].ID; first != "vast-universal" {
		t.Errorf("Expected catalog order to start with vast-universal, got %s", first)
	}
}

func TestDefault_ReturnsSameInstance(t *testing.T) {
	if Default() != Default() {
		t.Error("Expected Default to load the embedded catalog once")
	}
}

func TestDefault_RedundancyModels(t *testing.T) {
	c := Default()

	tests := []struct {
		id      string
		kind    string
		label   string
		rawMult float64
	}{
		{"ceph-nvme", models.RedundancyReplication, "3-way replication", 3.0},
		{"ceph-hybrid", models.RedundancyErasureCoding, "Erasure coding 8+3", 1.375},
		{"ceph-hdd", models.RedundancyErasureCoding, "Erasure coding 8+3", 1.375},
		{"vast-universal", models.RedundancyGeneric, "Erasure coding 17+2", 0},
		{"s3-compatible", models.RedundancyGeneric, "11 9s durability", 0},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			arch, ok := c.Architecture(tt.id)
			if !ok {
				t.Fatalf("Expected architecture %s to exist", tt.id)
			}
			if arch.Redundancy.Kind() != tt.kind {
				t.Errorf("Expected kind %s, got %s", tt.kind, arch.Redundancy.Kind())
			}
			if arch.Redundancy.Label() != tt.label {
				t.Errorf("Expected label %q, got %q", tt.label, arch.Redundancy.Label())
			}
			if arch.RawMultiplier != tt.rawMult {
				t.Errorf("Expected raw multiplier %g, got %g", tt.rawMult, arch.RawMultiplier)
			}
		})
	}
}

func TestDefault_CombinationKeepsTierOrder(t *testing.T) {
	combo, ok := Default().Combination("vast-ceph-optimal")
	if !ok {
		t.Fatal("Expected vast-ceph-optimal combination")
	}

	want := []string{"vast-universal", "ceph-nvme", "ceph-hybrid", "ceph-hdd"}
	got := combo.Distribution.TierIDs()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Expected tier order %v, got %v", want, got)
	}
	if combo.Distribution.Total() != 100 {
		t.Errorf("Expected distribution to total 100, got %g", combo.Distribution.Total())
	}
}

func TestArchitecture_UnknownIsAbsent(t *testing.T) {
	if _, ok := Default().Architecture("tape-library"); ok {
		t.Error("Expected unknown architecture lookup to report absent")
	}
}

func TestLoad_RejectsMalformedEntries(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "erasure coding without data chunks",
			yaml: `
architectures:
  - id: broken-ec
    name: Broken EC
    category: balanced
    redundancy: {type: erasure_coding, coding_chunks: 3}
    raw_multiplier: 1.375
`,
			wantErr: "data_chunks >= 1",
		},
		{
			name: "replication without replicas",
			yaml: `
architectures:
  - id: broken-rep
    name: Broken Replication
    category: balanced
    redundancy: {type: replication}
    raw_multiplier: 3
`,
			wantErr: "replicas >= 1",
		},
		{
			name: "generic efficiency above one",
			yaml: `
architectures:
  - id: broken-generic
    name: Broken Generic
    category: balanced
    redundancy: {type: generic, efficiency: 1.5, label: magic}
`,
			wantErr: "efficiency in (0,1]",
		},
		{
			name: "unknown redundancy type",
			yaml: `
architectures:
  - id: mirror
    name: Mirror
    category: balanced
    redundancy: {type: mirroring}
`,
			wantErr: `unknown redundancy type "mirroring"`,
		},
		{
			name: "unknown field",
			yaml: `
architectures:
  - id: typo
    name: Typo
    category: balanced
    redundancy: {type: generic, efficiency: 0.9, label: x}
    cost_per_tb: {capex: 1}
`,
			wantErr: "cost_per_tb",
		},
		{
			name: "duplicate architecture id",
			yaml: `
architectures:
  - id: dup
    name: First
    category: balanced
    redundancy: {type: generic, efficiency: 0.9, label: x}
  - id: dup
    name: Second
    category: balanced
    redundancy: {type: generic, efficiency: 0.9, label: x}
`,
			wantErr: "duplicate id",
		},
		{
			name: "combination with unknown tier",
			yaml: `
architectures:
  - id: only
    name: Only
    category: balanced
    redundancy: {type: generic, efficiency: 0.9, label: x}
combinations:
  - id: bad-combo
    name: Bad
    distribution:
      only: 50
      missing: 50
`,
			wantErr: `unknown architecture "missing"`,
		},
		{
			name: "vendor scale inverted",
			yaml: `
vendors:
  - id: backwards
    name: Backwards
    min_scale: 1000
    max_scale: 10
`,
			wantErr: "min_scale 1000 exceeds max_scale 10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %q", tt.wantErr, err.Error())
			}
			if !Error.Has(err) {
				t.Errorf("Expected catalog error class, got %v", err)
			}
		})
	}
}

func TestLoad_ReportsEveryProblem(t *testing.T) {
	yamlData := `
architectures:
  - id: a
    name: A
    category: balanced
    redundancy: {type: erasure_coding, data_chunks: 0, coding_chunks: 0}
    raw_multiplier: 0.5
`
	_, err := Load([]byte(yamlData))
	if err == nil {
		t.Fatal("Expected error, got nil")
	}

	for _, want := range []string{"data_chunks", "coding_chunks", "raw_multiplier"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Expected error to mention %s, got %q", want, err.Error())
		}
	}
}

func TestMustLoad_PanicsOnMalformedData(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected MustLoad to panic")
		}
	}()
	MustLoad([]byte("architectures: [{id: x, name: X, category: balanced, redundancy: {type: erasure_coding}}]"))
}

func TestLoad_EmptyDocument(t *testing.T) {
	c, err := Load(nil)
	if err != nil {
		t.Fatalf("Expected empty catalog, got error: %v", err)
	}
	if len(c.Architectures()) != 0 {
		t.Errorf("Expected no architectures, got %d", len(c.Architectures()))
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile("/nonexistent/catalog.yaml")
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	if !Error.Has(err) {
		t.Errorf("Expected catalog error class, got %v", err)
	}
}

func TestNew_SyntheticData(t *testing.T) {
	c, err := New(Data{
		Architectures: []models.StorageArchitecture{
			{
				ID:            "hotTier",
				Name:          "Hot",
				Category:      models.CategoryBalanced,
				Redundancy:    models.Replication{Replicas: 3},
				RawMultiplier: 3,
			},
		},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	arch, ok := c.Architecture("hotTier")
	if !ok {
		t.Fatal("Expected hotTier to resolve")
	}
	if arch.Name != "Hot" {
		t.Errorf("Expected name Hot, got %s", arch.Name)
	}
}
