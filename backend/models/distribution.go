// ABOUTME: Ordered tier distribution mapping tier identifiers to percentages
// ABOUTME: Preserves insertion order through JSON so advisories follow the caller's tier order

package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// TierShare is one tier's percentage of the usable capacity target.
type TierShare struct {
	Tier       string  `json:"tier"`
	Percentage float64 `json:"percentage"`
}

// TierDistribution maps tier identifiers to percentages in insertion order.
// Re-setting an existing tier keeps its original position.
type TierDistribution struct {
	shares []TierShare
}

// NewTierDistribution builds a distribution from shares in order.
func NewTierDistribution(shares ...TierShare) TierDistribution {
	var d TierDistribution
	for _, s := range shares {
		d.Set(s.Tier, s.Percentage)
	}
	return d
}

// Set assigns pct to tier, appending the tier if it is new.
func (d *TierDistribution) Set(tier string, pct float64) {
	for i := range d.shares {
		if d.shares[i].Tier == tier {
			d.shares[i].Percentage = pct
			return
		}
	}
	d.shares = append(d.shares, TierShare{Tier: tier, Percentage: pct})
}

// Get returns the percentage assigned to tier.
func (d TierDistribution) Get(tier string) (float64, bool) {
	for _, s := range d.shares {
		if s.Tier == tier {
			return s.Percentage, true
		}
	}
	return 0, false
}

// Shares returns a copy of the entries in insertion order.
func (d TierDistribution) Shares() []TierShare {
	out := make([]TierShare, len(d.shares))
	copy(out, d.shares)
	return out
}

// TierIDs returns tier identifiers in insertion order.
func (d TierDistribution) TierIDs() []string {
	ids := make([]string, len(d.shares))
	for i, s := range d.shares {
		ids[i] = s.Tier
	}
	return ids
}

// Len returns the number of tiers.
func (d TierDistribution) Len() int {
	return len(d.shares)
}

// Total sums every percentage, including non-positive ones.
func (d TierDistribution) Total() float64 {
	var total float64
	for _, s := range d.shares {
		total += s.Percentage
	}
	return total
}

// MarshalJSON encodes the distribution as a JSON object in insertion order.
func (d TierDistribution) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range d.shares {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(s.Tier)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(s.Percentage)
		if err != nil {
			return nil, fmt.Errorf("tier %q: %w", s.Tier, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping key order.
func (d *TierDistribution) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*d = TierDistribution{}
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("tier distribution must be a JSON object")
	}

	var out TierDistribution
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		tier, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected tier key %v", keyTok)
		}
		var pct float64
		if err := dec.Decode(&pct); err != nil {
			return fmt.Errorf("tier %q: %w", tier, err)
		}
		out.Set(tier, pct)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*d = out
	return nil
}
