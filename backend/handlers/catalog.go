// ABOUTME: HTTP handlers exposing the reference catalog
// ABOUTME: Architectures, vendors, and combinations are returned in catalog order

package handlers

import (
	"net/http"

	"github.com/nullsector/gpu-tco-analyzer/backend/models"
)

// ListArchitectures returns the storage architecture table.
func (h *Handler) ListArchitectures(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, models.ArchitecturesResponse{
		Architectures: h.catalog.Architectures(),
	})
}

// ListVendors returns vendor profiles with the storage tiers and scale
// thresholds used by vendor selection.
func (h *Handler) ListVendors(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, models.VendorsResponse{
		Vendors:         h.catalog.Vendors(),
		StorageTiers:    h.catalog.StorageTiers(),
		ScaleThresholds: h.catalog.ScaleThresholds(),
	})
}

// ListCombinations returns the recommended tier combinations.
func (h *Handler) ListCombinations(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, models.CombinationsResponse{
		Combinations: h.catalog.Combinations(),
	})
}
