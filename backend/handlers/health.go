// ABOUTME: HTTP handler for the health endpoint
// ABOUTME: Reports catalog size, vSphere configuration, and cache effectiveness

package handlers

import (
	"net/http"

	"github.com/nullsector/gpu-tco-analyzer/backend/cache"
	"github.com/nullsector/gpu-tco-analyzer/backend/models"
)

// Health returns API health status including catalog and cache status.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := models.HealthResponse{
		Status:        "ok",
		Architectures: len(h.catalog.Architectures()),
		Vendors:       len(h.catalog.Vendors()),
		Combinations:  len(h.catalog.Combinations()),
		VSphere:       "not_configured",
		CacheStatus: map[string]models.CacheStats{
			"estimate":  cacheStats(h.estimateCache.Stats()),
			"inventory": cacheStats(h.inventoryCache.Stats()),
		},
	}

	if h.inventory != nil {
		resp.VSphere = "configured"
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func cacheStats(s cache.Stats) models.CacheStats {
	return models.CacheStats{Hits: s.Hits, Misses: s.Misses, Entries: s.Entries}
}
