// ABOUTME: HTTP handler for GPU inventory discovery from vSphere
// ABOUTME: Results are cached so repeated estimates do not hit vCenter

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

const inventoryCacheKey = "inventory:gpus"

// GetGPUInventory returns GPU counts per cluster from vCenter.
func (h *Handler) GetGPUInventory(w http.ResponseWriter, r *http.Request) {
	if h.inventory == nil {
		h.writeError(w, "vSphere not configured. Set VSPHERE_HOST, VSPHERE_USERNAME, VSPHERE_PASSWORD, and VSPHERE_DATACENTER environment variables.", http.StatusServiceUnavailable)
		return
	}

	if cached, found := h.inventoryCache.Get(inventoryCacheKey); found {
		slog.Debug("Inventory cache hit")
		cached.Cached = true
		h.writeJSON(w, http.StatusOK, cached)
		return
	}

	// The client holds a single session, so discovery runs one at a time.
	h.inventoryMutex.Lock()
	defer h.inventoryMutex.Unlock()

	// Another request may have filled the cache while this one waited.
	if cached, found := h.inventoryCache.Get(inventoryCacheKey); found {
		cached.Cached = true
		h.writeJSON(w, http.StatusOK, cached)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), inventoryTimeout)
	defer cancel()

	if err := h.inventory.Connect(ctx); err != nil {
		slog.Error("vSphere connection failed", "error", err)
		h.writeError(w, "Inventory service temporarily unavailable", http.StatusServiceUnavailable)
		return
	}
	defer func() {
		// Logout must still run when the request context is already done.
		logoutCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := h.inventory.Disconnect(logoutCtx); err != nil {
			slog.Warn("vSphere logout failed", "error", err)
		}
	}()

	inv, err := h.inventory.GetGPUInventory(ctx)
	if err != nil {
		slog.Error("vSphere GPU inventory fetch failed", "error", err)
		h.writeError(w, "Failed to retrieve GPU inventory", http.StatusInternalServerError)
		return
	}

	slog.Info("GPU inventory discovered",
		"clusters", len(inv.Clusters),
		"hosts", inv.TotalHostCount,
		"gpus", inv.TotalGPUCount)

	h.inventoryCache.Set(inventoryCacheKey, inv)
	h.writeJSON(w, http.StatusOK, inv)
}
