// ABOUTME: Entry point for the GPU TCO analyzer backend service
// ABOUTME: Serves the storage capacity and cost engine over an HTTP JSON API

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nullsector/gpu-tco-analyzer/backend/catalog"
	"github.com/nullsector/gpu-tco-analyzer/backend/config"
	"github.com/nullsector/gpu-tco-analyzer/backend/handlers"
	"github.com/nullsector/gpu-tco-analyzer/backend/logger"
	"github.com/nullsector/gpu-tco-analyzer/backend/middleware"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Initialize structured logging
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		slog.Error("Failed to load storage catalog", "file", cfg.CatalogFile, "error", err)
		os.Exit(1)
	}

	slog.Info("Starting GPU TCO Analyzer Backend")
	slog.Info("Catalog loaded",
		"architectures", len(cat.Architectures()),
		"vendors", len(cat.Vendors()),
		"combinations", len(cat.Combinations()))
	if cfg.VSphereConfigured() {
		slog.Info("vSphere configured", "host", cfg.VSphereHost, "datacenter", cfg.VSphereDatacenter)
	} else {
		slog.Info("vSphere not configured, GPU inventory discovery disabled")
	}

	h := handlers.NewHandler(cfg, cat)
	defer h.Close()

	mux := http.NewServeMux()
	registerRoutes(mux, h, cfg)

	addr := ":" + cfg.Port
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Server listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}

// loadCatalog returns the catalog override named by CATALOG_FILE, or the
// embedded reference catalog.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogFile == "" {
		return catalog.Default(), nil
	}
	return catalog.LoadFile(cfg.CatalogFile)
}

// registerRoutes mounts every API route behind logging, CORS, and rate
// limiting. The estimate endpoint gets its own, tighter limit.
func registerRoutes(mux *http.ServeMux, h *handlers.Handler, cfg *config.Config) {
	var defaultLimiter, estimateLimiter *middleware.RateLimiter
	if cfg.RateLimitEnabled {
		defaultLimiter = middleware.NewRateLimiter(cfg.RateLimitDefault, time.Minute)
		estimateLimiter = middleware.NewRateLimiter(cfg.RateLimitEstimate, time.Minute)
		slog.Info("Rate limiting enabled", "default", cfg.RateLimitDefault, "estimate", cfg.RateLimitEstimate)
	}

	cors := middleware.CORS(cfg.CORSAllowedOrigins)

	for _, route := range h.Routes() {
		limiter := defaultLimiter
		if route.Path == "/api/v1/storage/estimate" {
			limiter = estimateLimiter
		}

		handler := middleware.Chain(route.Handler,
			middleware.LogRequest,
			cors,
			middleware.RateLimit(limiter, middleware.ClientIP),
		)
		mux.HandleFunc(route.Method+" "+route.Path, handler)

		// Preflight requests match no method pattern, so give each path an OPTIONS route.
		if route.Method != http.MethodGet {
			mux.HandleFunc(http.MethodOptions+" "+route.Path, middleware.Chain(route.Handler, cors))
		}
	}
}
