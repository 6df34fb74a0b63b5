// ABOUTME: HTTP handlers for the storage TCO API endpoints
// ABOUTME: Holds shared dependencies and JSON request/response helpers

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/nullsector/gpu-tco-analyzer/backend/cache"
	"github.com/nullsector/gpu-tco-analyzer/backend/catalog"
	"github.com/nullsector/gpu-tco-analyzer/backend/config"
	"github.com/nullsector/gpu-tco-analyzer/backend/models"
	"github.com/nullsector/gpu-tco-analyzer/backend/services"
)

// maxRequestBodySize limits JSON request bodies to 1MB
const maxRequestBodySize = 1 << 20

// inventoryTimeout bounds a single vCenter discovery run.
const inventoryTimeout = 30 * time.Second

// InventorySource discovers GPUs from a virtualization platform.
type InventorySource interface {
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
	GetGPUInventory(ctx context.Context) (models.GPUInventory, error)
}

type Handler struct {
	cfg            *config.Config
	catalog        *catalog.Catalog
	storage        *services.StorageCalculator
	advisor        *services.OptimizationAdvisor
	cost           *services.CostCalculator
	vendors        *services.VendorSelector
	validator      *services.CombinationValidator
	estimates      *services.EstimateService
	estimateCache  *cache.Cache[models.EstimateResponse]
	inventoryCache *cache.Cache[models.GPUInventory]
	inventory      InventorySource
	inventoryMutex sync.Mutex
}

// NewHandler wires every calculator to cat. A nil catalog falls back to the
// embedded default; a nil config disables caching and inventory discovery.
func NewHandler(cfg *config.Config, cat *catalog.Catalog) *Handler {
	if cat == nil {
		cat = catalog.Default()
	}
	if cfg == nil {
		cfg = &config.Config{}
	}

	h := &Handler{
		cfg:            cfg,
		catalog:        cat,
		storage:        services.NewStorageCalculator(cat),
		advisor:        services.NewOptimizationAdvisor(),
		cost:           services.NewCostCalculator(cat),
		vendors:        services.NewVendorSelector(cat),
		validator:      services.NewCombinationValidator(cat),
		estimates:      services.NewEstimateService(cat),
		estimateCache:  cache.New[models.EstimateResponse](time.Duration(cfg.EstimateCacheTTL) * time.Second),
		inventoryCache: cache.New[models.GPUInventory](time.Duration(cfg.VSphereCacheTTL) * time.Second),
	}

	// vSphere client is optional
	if cfg.VSphereConfigured() {
		h.inventory = services.NewVSphereClient(services.VSphereCredentials{
			Host:       cfg.VSphereHost,
			Username:   cfg.VSphereUsername,
			Password:   cfg.VSpherePassword,
			Datacenter: cfg.VSphereDatacenter,
			Insecure:   cfg.VSphereInsecure,
		}, cfg.VSphereConcurrency)
	}

	return h
}

// Close stops the background cache sweepers.
func (h *Handler) Close() {
	h.estimateCache.Close()
	h.inventoryCache.Close()
}

// decodeJSON reads a size-limited JSON body into v. It writes the error
// response itself and reports whether decoding succeeded.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.writeError(w, "Request body too large", http.StatusBadRequest)
			return false
		}
		slog.Debug("Rejected request body", "path", r.URL.Path, "error", err)
		h.writeError(w, "Invalid JSON", http.StatusBadRequest)
		return false
	}
	return true
}

// writeJSON encodes data before writing the status so an unencodable value,
// such as an infinite capacity from overflowing input, becomes a 500.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		slog.Error("Failed to encode response", "error", err)
		buf.Reset()
		status = http.StatusInternalServerError
		json.NewEncoder(&buf).Encode(models.ErrorResponse{
			Error: "Result cannot be represented as JSON",
			Code:  status,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	h.writeJSON(w, code, models.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
