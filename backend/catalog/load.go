// ABOUTME: YAML loading for the reference catalog, including the embedded default
// ABOUTME: Unknown fields and malformed redundancy definitions fail the load

package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/nullsector/gpu-tco-analyzer/backend/models"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

var defaultCatalog = sync.OnceValue(func() *Catalog {
	return MustLoad(defaultCatalogYAML)
})

// Default returns the embedded reference catalog.
func Default() *Catalog {
	return defaultCatalog()
}

type fileSpec struct {
	Architectures   []architectureSpec          `yaml:"architectures"`
	Vendors         []models.VendorProfile      `yaml:"vendors"`
	StorageTiers    []models.StorageTierProfile `yaml:"storage_tiers"`
	Combinations    []combinationSpec           `yaml:"combinations"`
	ScaleThresholds []models.ScaleThreshold     `yaml:"scale_thresholds"`
}

type architectureSpec struct {
	ID            string         `yaml:"id"`
	Name          string         `yaml:"name"`
	Category      string         `yaml:"category"`
	Description   string         `yaml:"description"`
	Vendors       []string       `yaml:"vendors"`
	MediaType     string         `yaml:"media_type"`
	Latency       string         `yaml:"latency"`
	Redundancy    redundancySpec `yaml:"redundancy"`
	RawMultiplier float64        `yaml:"raw_multiplier"`
	CostPerPB     struct {
		Capex      float64 `yaml:"capex"`
		Opex       float64 `yaml:"opex"`
		Total5Year float64 `yaml:"total_5_year"`
	} `yaml:"cost_per_pb"`
	PowerPerPBKW float64 `yaml:"power_per_pb_kw"`
	Scalability  struct {
		MinCapacityPB float64 `yaml:"min_capacity_pb"`
		MaxCapacityPB float64 `yaml:"max_capacity_pb"`
		SweetSpotPB   float64 `yaml:"sweet_spot_pb"`
	} `yaml:"scalability"`
}

type redundancySpec struct {
	Type         string  `yaml:"type"`
	Replicas     int     `yaml:"replicas"`
	DataChunks   int     `yaml:"data_chunks"`
	CodingChunks int     `yaml:"coding_chunks"`
	Efficiency   float64 `yaml:"efficiency"`
	Label        string  `yaml:"label"`
}

type combinationSpec struct {
	ID             string    `yaml:"id"`
	Name           string    `yaml:"name"`
	Description    string    `yaml:"description"`
	Distribution   yaml.Node `yaml:"distribution"`
	TotalCostPerPB float64   `yaml:"total_cost_per_pb"`
	Rationale      string    `yaml:"rationale"`
}

// model converts the file representation to a redundancy model.
func (r redundancySpec) model() (models.RedundancyModel, error) {
	switch r.Type {
	case models.RedundancyReplication:
		return models.Replication{Replicas: r.Replicas}, nil
	case models.RedundancyErasureCoding:
		return models.ErasureCoding{DataChunks: r.DataChunks, CodingChunks: r.CodingChunks}, nil
	case models.RedundancyGeneric:
		return models.Generic{Efficiency: r.Efficiency, RedundancyLabel: r.Label}, nil
	case "":
		return nil, errors.New("redundancy type is required")
	default:
		return nil, fmt.Errorf("unknown redundancy type %q", r.Type)
	}
}

func (a architectureSpec) architecture() (models.StorageArchitecture, error) {
	redundancy, err := a.Redundancy.model()
	if err != nil {
		return models.StorageArchitecture{}, fmt.Errorf("architecture %s: %w", a.ID, err)
	}
	return models.StorageArchitecture{
		ID:            a.ID,
		Name:          a.Name,
		Category:      a.Category,
		Description:   a.Description,
		Vendors:       a.Vendors,
		MediaType:     a.MediaType,
		Latency:       a.Latency,
		Redundancy:    redundancy,
		RawMultiplier: a.RawMultiplier,
		CostPerPB: models.CostPerPB{
			Capex:      a.CostPerPB.Capex,
			Opex:       a.CostPerPB.Opex,
			Total5Year: a.CostPerPB.Total5Year,
		},
		PowerPerPBKW: a.PowerPerPBKW,
		Scalability: models.Scalability{
			MinCapacityPB: a.Scalability.MinCapacityPB,
			MaxCapacityPB: a.Scalability.MaxCapacityPB,
			SweetSpotPB:   a.Scalability.SweetSpotPB,
		},
	}, nil
}

// distribution decodes a YAML mapping while keeping key order.
func distribution(node yaml.Node) (models.TierDistribution, error) {
	var d models.TierDistribution
	if node.Kind == 0 {
		return d, nil
	}
	if node.Kind != yaml.MappingNode {
		return d, fmt.Errorf("distribution must be a mapping (line %d)", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		var pct float64
		if err := val.Decode(&pct); err != nil {
			return d, fmt.Errorf("tier %q: %w", key.Value, err)
		}
		d.Set(key.Value, pct)
	}
	return d, nil
}

// Load parses and validates a YAML catalog.
func Load(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var spec fileSpec
	if err := dec.Decode(&spec); err != nil && !errors.Is(err, io.EOF) {
		return nil, Error.Wrap(fmt.Errorf("parse: %w", err))
	}

	var problems []error
	d := Data{
		Vendors:         spec.Vendors,
		StorageTiers:    spec.StorageTiers,
		ScaleThresholds: spec.ScaleThresholds,
	}

	for _, a := range spec.Architectures {
		arch, err := a.architecture()
		if err != nil {
			problems = append(problems, err)
			continue
		}
		d.Architectures = append(d.Architectures, arch)
	}

	for _, c := range spec.Combinations {
		dist, err := distribution(c.Distribution)
		if err != nil {
			problems = append(problems, fmt.Errorf("combination %s: %w", c.ID, err))
			continue
		}
		d.Combinations = append(d.Combinations, models.RecommendedCombination{
			ID:             c.ID,
			Name:           c.Name,
			Description:    c.Description,
			Distribution:   dist,
			TotalCostPerPB: c.TotalCostPerPB,
			Rationale:      c.Rationale,
		})
	}

	if err := errors.Join(problems...); err != nil {
		return nil, Error.Wrap(err)
	}
	return New(d)
}

// LoadFile reads a YAML catalog from path.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Error.Wrap(fmt.Errorf("read %s: %w", path, err))
	}
	return Load(data)
}

// MustLoad is Load for static data that must be well formed. It panics on error.
func MustLoad(data []byte) *Catalog {
	c, err := Load(data)
	if err != nil {
		panic(err)
	}
	return c
}
