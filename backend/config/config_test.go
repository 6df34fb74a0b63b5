package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Cleanup(withCleanEnv(t, nil))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Port)
	}
	if cfg.CacheTTL != 300 {
		t.Errorf("Expected default cache TTL 300, got %d", cfg.CacheTTL)
	}
	if cfg.EstimateCacheTTL != 60 {
		t.Errorf("Expected default estimate cache TTL 60, got %d", cfg.EstimateCacheTTL)
	}
	if !cfg.RateLimitEnabled {
		t.Error("Expected rate limiting enabled by default")
	}
	if cfg.RateLimitDefault != 100 || cfg.RateLimitEstimate != 30 {
		t.Errorf("Expected rate limits 100/30, got %d/%d", cfg.RateLimitDefault, cfg.RateLimitEstimate)
	}
	if cfg.VSphereCacheTTL != 300 || cfg.VSphereConcurrency != 8 {
		t.Errorf("Expected vSphere TTL 300 and concurrency 8, got %d/%d", cfg.VSphereCacheTTL, cfg.VSphereConcurrency)
	}
	if cfg.CatalogFile != "" {
		t.Errorf("Expected no catalog override, got %s", cfg.CatalogFile)
	}
	if cfg.VSphereConfigured() {
		t.Error("Expected vSphere to be unconfigured")
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Cleanup(withCleanEnv(t, map[string]string{
		"PORT":                 "9090",
		"CORS_ALLOWED_ORIGINS": "https://tco.example.com, http://localhost:5173,",
		"RATE_LIMIT_ENABLED":   "false",
		"RATE_LIMIT_ESTIMATE":  "5",
		"CATALOG_FILE":         "/etc/gpu-tco/catalog.yaml",
		"VSPHERE_HOST":         "vcenter.example.com",
		"VSPHERE_USERNAME":     "admin@vsphere.local",
		"VSPHERE_PASSWORD":     "secret",
		"VSPHERE_DATACENTER":   "DC1",
		"VSPHERE_CONCURRENCY":  "16",
	}))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Port)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
		t.Errorf("Expected 2 trimmed origins, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RateLimitEnabled {
		t.Error("Expected rate limiting disabled")
	}
	if cfg.RateLimitEstimate != 5 {
		t.Errorf("Expected estimate rate limit 5, got %d", cfg.RateLimitEstimate)
	}
	if cfg.CatalogFile != "/etc/gpu-tco/catalog.yaml" {
		t.Errorf("Expected catalog override, got %s", cfg.CatalogFile)
	}
	if !cfg.VSphereConfigured() {
		t.Error("Expected vSphere to be configured")
	}
	if cfg.VSphereConcurrency != 16 {
		t.Errorf("Expected concurrency 16, got %d", cfg.VSphereConcurrency)
	}
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	t.Cleanup(withCleanEnv(t, map[string]string{
		"CACHE_TTL":          "soon",
		"RATE_LIMIT_ENABLED": "maybe",
	}))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.CacheTTL != 300 {
		t.Errorf("Expected unparsable TTL to use default 300, got %d", cfg.CacheTTL)
	}
	if !cfg.RateLimitEnabled {
		t.Error("Expected unparsable bool to use default true")
	}
}

func TestLoadConfig_Validation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"rate limit zero", map[string]string{"RATE_LIMIT_DEFAULT": "0"}, "RATE_LIMIT_DEFAULT must be between 1 and 10000"},
		{"rate limit too high", map[string]string{"RATE_LIMIT_ESTIMATE": "10001"}, "RATE_LIMIT_ESTIMATE must be between 1 and 10000"},
		{"negative ttl", map[string]string{"ESTIMATE_CACHE_TTL": "-1"}, "ESTIMATE_CACHE_TTL must not be negative"},
		{"no concurrency", map[string]string{"VSPHERE_CONCURRENCY": "0"}, "VSPHERE_CONCURRENCY must be at least 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(withCleanEnv(t, tt.env))

			_, err := Load()
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestLoadConfig_DotEnv(t *testing.T) {
	t.Cleanup(withCleanEnv(t, map[string]string{"PORT": "7000"}))

	dir := t.TempDir()
	content := "PORT=9999\nRATE_LIMIT_ESTIMATE=12\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}
	t.Chdir(dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.Port != "7000" {
		t.Errorf("Expected existing PORT to win over .env, got %s", cfg.Port)
	}
	if cfg.RateLimitEstimate != 12 {
		t.Errorf("Expected RATE_LIMIT_ESTIMATE from .env, got %d", cfg.RateLimitEstimate)
	}
}
