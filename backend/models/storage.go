// ABOUTME: Storage architecture reference types and the closed set of redundancy models
// ABOUTME: Replication, ErasureCoding, and Generic each know how to size raw capacity

package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Redundancy model kinds as they appear in catalog files and API responses.
const (
	RedundancyReplication   = "replication"
	RedundancyErasureCoding = "erasure_coding"
	RedundancyGeneric       = "generic"
)

// Architecture categories.
const (
	CategoryExtreme         = "extreme"
	CategoryHighPerformance = "high-performance"
	CategoryBalanced        = "balanced"
	CategoryCostOptimized   = "cost-optimized"
)

// RedundancyModel describes how a tier protects data. The set of
// implementations is closed: the unexported marker keeps other packages from
// adding variants, and every variant must provide the full sizing contract.
type RedundancyModel interface {
	// Kind returns one of the Redundancy* constants.
	Kind() string
	// Label is the human-readable redundancy type for a breakdown.
	Label() string
	// RawCapacity returns the redundancy-inflated size of usablePB before
	// metadata and spare capacity are added.
	RawCapacity(usablePB, rawMultiplier float64) float64
	// Details returns the metadata/spare breakdown for usablePB.
	Details(usablePB float64) TierDetails
	// Validate reports a structurally inconsistent definition.
	Validate(rawMultiplier float64) error

	redundancyModel()
}

// Replication stores Replicas full copies of every object.
type Replication struct {
	Replicas int
}

func (Replication) redundancyModel() {}

func (r Replication) Kind() string { return RedundancyReplication }

func (r Replication) Label() string { return fmt.Sprintf("%d-way replication", r.Replicas) }

func (r Replication) RawCapacity(usablePB, rawMultiplier float64) float64 {
	return usablePB * rawMultiplier
}

func (r Replication) Details(usablePB float64) TierDetails {
	return TierDetails{
		ReplicationFactor: r.Replicas,
		MetadataOverhead:  usablePB * 0.02,
		SpareCapacity:     usablePB * 0.05,
	}
}

func (r Replication) Validate(rawMultiplier float64) error {
	var errs []error
	if r.Replicas < 1 {
		errs = append(errs, fmt.Errorf("replication requires replicas >= 1, got %d", r.Replicas))
	}
	if rawMultiplier < 1 {
		errs = append(errs, fmt.Errorf("replication requires raw_multiplier >= 1, got %g", rawMultiplier))
	}
	return errors.Join(errs...)
}

func (r Replication) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string `json:"type"`
		Label    string `json:"label"`
		Replicas int    `json:"replicas"`
	}{r.Kind(), r.Label(), r.Replicas})
}

// ErasureCoding stripes data across DataChunks data and CodingChunks parity chunks.
type ErasureCoding struct {
	DataChunks   int
	CodingChunks int
}

func (ErasureCoding) redundancyModel() {}

func (e ErasureCoding) Kind() string { return RedundancyErasureCoding }

func (e ErasureCoding) Label() string {
	return fmt.Sprintf("Erasure coding %d+%d", e.DataChunks, e.CodingChunks)
}

// Efficiency is the usable fraction of the stripe, d/(d+c).
func (e ErasureCoding) Efficiency() float64 {
	return float64(e.DataChunks) / float64(e.DataChunks+e.CodingChunks)
}

func (e ErasureCoding) RawCapacity(usablePB, rawMultiplier float64) float64 {
	return usablePB * rawMultiplier
}

func (e ErasureCoding) Details(usablePB float64) TierDetails {
	return TierDetails{
		ErasureCoding: &ErasureCodingDetails{
			DataChunks:   e.DataChunks,
			CodingChunks: e.CodingChunks,
			Efficiency:   e.Efficiency(),
		},
		MetadataOverhead: usablePB * 0.03,
		SpareCapacity:    usablePB * 0.05,
	}
}

func (e ErasureCoding) Validate(rawMultiplier float64) error {
	var errs []error
	if e.DataChunks < 1 {
		errs = append(errs, fmt.Errorf("erasure coding requires data_chunks >= 1, got %d", e.DataChunks))
	}
	if e.CodingChunks < 1 {
		errs = append(errs, fmt.Errorf("erasure coding requires coding_chunks >= 1, got %d", e.CodingChunks))
	}
	if rawMultiplier < 1 {
		errs = append(errs, fmt.Errorf("erasure coding requires raw_multiplier >= 1, got %g", rawMultiplier))
	}
	return errors.Join(errs...)
}

func (e ErasureCoding) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type         string  `json:"type"`
		Label        string  `json:"label"`
		DataChunks   int     `json:"data_chunks"`
		CodingChunks int     `json:"coding_chunks"`
		Efficiency   float64 `json:"efficiency"`
	}{e.Kind(), e.Label(), e.DataChunks, e.CodingChunks, e.Efficiency()})
}

// Generic covers vendor systems that only publish a usable-to-raw ratio.
type Generic struct {
	Efficiency      float64
	RedundancyLabel string
}

func (Generic) redundancyModel() {}

func (g Generic) Kind() string { return RedundancyGeneric }

func (g Generic) Label() string { return g.RedundancyLabel }

// RawCapacity ignores rawMultiplier and divides by the published efficiency.
func (g Generic) RawCapacity(usablePB, _ float64) float64 {
	return usablePB / g.Efficiency
}

func (g Generic) Details(usablePB float64) TierDetails {
	return TierDetails{
		MetadataOverhead: usablePB * 0.02,
		SpareCapacity:    usablePB * 0.03,
	}
}

func (g Generic) Validate(_ float64) error {
	if g.Efficiency <= 0 || g.Efficiency > 1 {
		return fmt.Errorf("generic redundancy requires efficiency in (0,1], got %g", g.Efficiency)
	}
	return nil
}

func (g Generic) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type       string  `json:"type"`
		Label      string  `json:"label"`
		Efficiency float64 `json:"efficiency"`
	}{g.Kind(), g.Label(), g.Efficiency})
}

// CostPerPB holds unit economics in USD per petabyte. Opex is annual.
type CostPerPB struct {
	Capex      float64 `json:"capex"`
	Opex       float64 `json:"opex"`
	Total5Year float64 `json:"total_5_year"`
}

// Scalability is the capacity envelope a vendor supports for an architecture.
type Scalability struct {
	MinCapacityPB float64 `json:"min_capacity_pb"`
	MaxCapacityPB float64 `json:"max_capacity_pb"`
	SweetSpotPB   float64 `json:"sweet_spot_pb"`
}

// StorageArchitecture is one entry in the reference architecture table.
type StorageArchitecture struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Description   string          `json:"description,omitempty"`
	Vendors       []string        `json:"vendors"`
	MediaType     string          `json:"media_type,omitempty"`
	Latency       string          `json:"latency,omitempty"`
	Redundancy    RedundancyModel `json:"redundancy"`
	RawMultiplier float64         `json:"raw_multiplier,omitempty"`
	CostPerPB     CostPerPB       `json:"cost_per_pb"`
	PowerPerPBKW  float64         `json:"power_per_pb_kw"`
	Scalability   Scalability     `json:"scalability"`
}

// Validate checks that the definition is internally consistent.
func (a StorageArchitecture) Validate() error {
	var errs []error
	if a.ID == "" {
		errs = append(errs, errors.New("id is required"))
	}
	if a.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	switch a.Category {
	case CategoryExtreme, CategoryHighPerformance, CategoryBalanced, CategoryCostOptimized:
	default:
		errs = append(errs, fmt.Errorf("unknown category %q", a.Category))
	}
	if a.Redundancy == nil {
		errs = append(errs, errors.New("redundancy model is required"))
	} else if err := a.Redundancy.Validate(a.RawMultiplier); err != nil {
		errs = append(errs, err)
	}
	if a.CostPerPB.Capex < 0 || a.CostPerPB.Opex < 0 {
		errs = append(errs, fmt.Errorf("cost_per_pb must be non-negative, got capex=%g opex=%g", a.CostPerPB.Capex, a.CostPerPB.Opex))
	}

	if err := errors.Join(errs...); err != nil {
		id := a.ID
		if id == "" {
			id = "<unnamed>"
		}
		return fmt.Errorf("architecture %s: %w", id, err)
	}
	return nil
}
