// ABOUTME: Declarative route table for API endpoints
// ABOUTME: Defines all routes with their HTTP methods and handlers

package handlers

import "net/http"

// Route defines an API endpoint with its HTTP method and handler.
type Route struct {
	Method  string           // HTTP method (GET, POST, etc.)
	Path    string           // URL path (e.g., "/api/v1/health")
	Handler http.HandlerFunc // Handler function
}

// Routes returns all API routes for registration.
func (h *Handler) Routes() []Route {
	return []Route{
		// Health
		{Method: http.MethodGet, Path: "/api/v1/health", Handler: h.Health},

		// Reference catalog
		{Method: http.MethodGet, Path: "/api/v1/catalog/architectures", Handler: h.ListArchitectures},
		{Method: http.MethodGet, Path: "/api/v1/catalog/vendors", Handler: h.ListVendors},
		{Method: http.MethodGet, Path: "/api/v1/catalog/combinations", Handler: h.ListCombinations},

		// Storage engine
		{Method: http.MethodPost, Path: "/api/v1/storage/raw", Handler: h.CalculateRawStorage},
		{Method: http.MethodPost, Path: "/api/v1/storage/recommendations", Handler: h.StorageRecommendations},
		{Method: http.MethodPost, Path: "/api/v1/storage/cost-impact", Handler: h.StorageCostImpact},
		{Method: http.MethodPost, Path: "/api/v1/storage/estimate", Handler: h.Estimate},

		// Vendors and tier combinations
		{Method: http.MethodPost, Path: "/api/v1/vendors/select", Handler: h.SelectVendors},
		{Method: http.MethodPost, Path: "/api/v1/tiers/validate", Handler: h.ValidateTiers},

		// Inventory
		{Method: http.MethodGet, Path: "/api/v1/inventory/gpus", Handler: h.GetGPUInventory},

		// Documentation
		{Method: http.MethodGet, Path: "/api/v1/openapi.yaml", Handler: h.OpenAPISpec},
	}
}
