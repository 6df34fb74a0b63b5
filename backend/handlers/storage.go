// ABOUTME: HTTP handlers for raw storage sizing, cost impact, and full estimates
// ABOUTME: Each endpoint decodes a request, runs the engine, and returns JSON

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/nullsector/gpu-tco-analyzer/backend/models"
	"github.com/nullsector/gpu-tco-analyzer/backend/services"
)

// CalculateRawStorage sizes raw capacity for a tier distribution.
func (h *Handler) CalculateRawStorage(w http.ResponseWriter, r *http.Request) {
	var req models.RawStorageRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	calc := h.storage.CalculateRawStorageRequirements(req.TierDistribution, req.TotalUsableCapacityPB)
	h.writeJSON(w, http.StatusOK, calc)
}

// StorageRecommendations sizes raw capacity and adds scale-aware advice.
func (h *Handler) StorageRecommendations(w http.ResponseWriter, r *http.Request) {
	var req models.RecommendationsRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	calc := h.storage.CalculateRawStorageRequirements(req.TierDistribution, req.TotalUsableCapacityPB)
	h.writeJSON(w, http.StatusOK, models.RecommendationsResponse{
		Calculation:     calc,
		Recommendations: h.advisor.Recommend(calc, req.GPUCount),
	})
}

// StorageCostImpact sizes raw capacity and prices the overhead.
func (h *Handler) StorageCostImpact(w http.ResponseWriter, r *http.Request) {
	var req models.RawStorageRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	calc := h.storage.CalculateRawStorageRequirements(req.TierDistribution, req.TotalUsableCapacityPB)
	h.writeJSON(w, http.StatusOK, models.CostImpactResponse{
		Calculation: calc,
		CostImpact:  h.cost.CalculateRawStorageCostImpact(calc, req.TierDistribution),
	})
}

// Estimate runs the full estimation pipeline. Identical requests within the
// estimate cache TTL return the cached response.
func (h *Handler) Estimate(w http.ResponseWriter, r *http.Request) {
	var req models.EstimateRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	cacheKey, err := estimateCacheKey(req)
	if err != nil {
		slog.Error("Failed to build estimate cache key", "error", err)
		h.writeError(w, "Failed to process estimate", http.StatusInternalServerError)
		return
	}

	if cached, found := h.estimateCache.Get(cacheKey); found {
		slog.Debug("Estimate cache hit", "estimate_id", cached.EstimateID)
		cached.Cached = true
		h.writeJSON(w, http.StatusOK, cached)
		return
	}
	slog.Debug("Estimate cache miss")

	resp, err := h.estimates.Estimate(req)
	if err != nil {
		if errors.Is(err, services.ErrUnknownPreset) || errors.Is(err, services.ErrPresetWithDistribution) {
			h.writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
		slog.Error("Estimate failed", "error", err)
		h.writeError(w, "Failed to process estimate", http.StatusInternalServerError)
		return
	}

	h.estimateCache.Set(cacheKey, resp)
	h.writeJSON(w, http.StatusOK, resp)
}

// estimateCacheKey is the canonical JSON encoding of req. Distribution keys
// keep their request order, so reordered tiers are a different estimate.
func estimateCacheKey(req models.EstimateRequest) (string, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	return "estimate:" + string(b), nil
}

// SelectVendors chooses primary and secondary vendors for a deployment scale.
func (h *Handler) SelectVendors(w http.ResponseWriter, r *http.Request) {
	var input models.VendorSelectionInput
	if !h.decodeJSON(w, r, &input) {
		return
	}

	h.writeJSON(w, http.StatusOK, h.vendors.Select(input))
}

// ValidateTiers checks a set of tiers against the combination rules.
func (h *Handler) ValidateTiers(w http.ResponseWriter, r *http.Request) {
	var req models.TierValidationRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	h.writeJSON(w, http.StatusOK, models.TierValidationResponse{
		Findings: h.validator.Validate(req.Tiers, req.TotalCapacityPB),
	})
}
