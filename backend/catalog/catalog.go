// ABOUTME: Immutable reference catalog of storage architectures, vendors, and tier combinations
// ABOUTME: Validated once at construction and shared read-only by every calculator

package catalog

import (
	"errors"
	"fmt"

	"github.com/nullsector/gpu-tco-analyzer/backend/models"
	"github.com/zeebo/errs"
)

// Error is the error class for malformed reference data.
var Error = errs.Class("catalog")

// Data is the raw content of a catalog before validation.
type Data struct {
	Architectures   []models.StorageArchitecture
	Vendors         []models.VendorProfile
	StorageTiers    []models.StorageTierProfile
	Combinations    []models.RecommendedCombination
	ScaleThresholds []models.ScaleThreshold
}

// Catalog is read-only after New returns and safe for concurrent use.
type Catalog struct {
	architectures map[string]models.StorageArchitecture
	archOrder     []string
	vendors       map[string]models.VendorProfile
	vendorOrder   []string
	combinations  map[string]models.RecommendedCombination
	comboOrder    []string
	storageTiers  []models.StorageTierProfile
	thresholds    []models.ScaleThreshold
}

// New validates d and builds a catalog. Every problem found is reported.
func New(d Data) (*Catalog, error) {
	c := &Catalog{
		architectures: make(map[string]models.StorageArchitecture, len(d.Architectures)),
		vendors:       make(map[string]models.VendorProfile, len(d.Vendors)),
		combinations:  make(map[string]models.RecommendedCombination, len(d.Combinations)),
	}

	var problems []error

	for _, a := range d.Architectures {
		if err := a.Validate(); err != nil {
			problems = append(problems, err)
			continue
		}
		if _, dup := c.architectures[a.ID]; dup {
			problems = append(problems, fmt.Errorf("architecture %s: duplicate id", a.ID))
			continue
		}
		a.Vendors = append([]string(nil), a.Vendors...)
		c.architectures[a.ID] = a
		c.archOrder = append(c.archOrder, a.ID)
	}

	for _, v := range d.Vendors {
		switch {
		case v.ID == "":
			problems = append(problems, errors.New("vendor: id is required"))
			continue
		case v.MinScale > v.MaxScale:
			problems = append(problems, fmt.Errorf("vendor %s: min_scale %d exceeds max_scale %d", v.ID, v.MinScale, v.MaxScale))
			continue
		}
		if _, dup := c.vendors[v.ID]; dup {
			problems = append(problems, fmt.Errorf("vendor %s: duplicate id", v.ID))
			continue
		}
		c.vendors[v.ID] = v
		c.vendorOrder = append(c.vendorOrder, v.ID)
	}

	for _, combo := range d.Combinations {
		if combo.ID == "" {
			problems = append(problems, errors.New("combination: id is required"))
			continue
		}
		if _, dup := c.combinations[combo.ID]; dup {
			problems = append(problems, fmt.Errorf("combination %s: duplicate id", combo.ID))
			continue
		}
		for _, tier := range combo.Distribution.TierIDs() {
			if _, ok := c.architectures[tier]; !ok {
				problems = append(problems, fmt.Errorf("combination %s: unknown architecture %q", combo.ID, tier))
			}
		}
		c.combinations[combo.ID] = combo
		c.comboOrder = append(c.comboOrder, combo.ID)
	}

	for _, t := range d.ScaleThresholds {
		if t.GPUCount <= 0 {
			problems = append(problems, fmt.Errorf("scale threshold %s: gpu_count must be positive", t.Name))
		}
	}

	if err := errors.Join(problems...); err != nil {
		return nil, Error.Wrap(err)
	}

	c.storageTiers = append([]models.StorageTierProfile(nil), d.StorageTiers...)
	c.thresholds = append([]models.ScaleThreshold(nil), d.ScaleThresholds...)
	return c, nil
}

// Architecture looks up a storage architecture by id.
func (c *Catalog) Architecture(id string) (models.StorageArchitecture, bool) {
	a, ok := c.architectures[id]
	return a, ok
}

// Architectures returns every architecture in catalog order.
func (c *Catalog) Architectures() []models.StorageArchitecture {
	out := make([]models.StorageArchitecture, 0, len(c.archOrder))
	for _, id := range c.archOrder {
		out = append(out, c.architectures[id])
	}
	return out
}

// Vendor looks up a vendor profile by id.
func (c *Catalog) Vendor(id string) (models.VendorProfile, bool) {
	v, ok := c.vendors[id]
	return v, ok
}

// Vendors returns every vendor profile in catalog order.
func (c *Catalog) Vendors() []models.VendorProfile {
	out := make([]models.VendorProfile, 0, len(c.vendorOrder))
	for _, id := range c.vendorOrder {
		out = append(out, c.vendors[id])
	}
	return out
}

// Combination looks up a recommended combination by id.
func (c *Catalog) Combination(id string) (models.RecommendedCombination, bool) {
	combo, ok := c.combinations[id]
	return combo, ok
}

// Combinations returns every recommended combination in catalog order.
func (c *Catalog) Combinations() []models.RecommendedCombination {
	out := make([]models.RecommendedCombination, 0, len(c.comboOrder))
	for _, id := range c.comboOrder {
		out = append(out, c.combinations[id])
	}
	return out
}

// StorageTiers returns the logical storage tier profiles.
func (c *Catalog) StorageTiers() []models.StorageTierProfile {
	return append([]models.StorageTierProfile(nil), c.storageTiers...)
}

// ScaleThresholds returns GPU scale thresholds in catalog order.
func (c *Catalog) ScaleThresholds() []models.ScaleThreshold {
	return append([]models.ScaleThreshold(nil), c.thresholds...)
}
