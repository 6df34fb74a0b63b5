// ABOUTME: JSON error response helper for middleware
// ABOUTME: Writes the same ErrorResponse envelope the handlers return

package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/nullsector/gpu-tco-analyzer/backend/models"
)

// writeJSONError writes an error response as JSON with the given status code.
func writeJSONError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(models.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
