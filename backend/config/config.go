// ABOUTME: Configuration loader for the TCO backend service
// ABOUTME: Loads settings from environment variables (and an optional .env) with defaults

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port               string
	CacheTTL           int      // seconds, default for general cache
	EstimateCacheTTL   int      // seconds, for computed estimates (default 60s)
	CORSAllowedOrigins []string // allowed CORS origins (empty = allow any origin)

	// Rate Limiting
	RateLimitEnabled  bool // Enable rate limiting (default: true)
	RateLimitDefault  int  // Requests per minute for read endpoints (default: 100)
	RateLimitEstimate int  // Requests per minute for calculation endpoints (default: 30)

	// Reference data override; empty uses the embedded catalog
	CatalogFile string

	// vSphere (optional)
	VSphereHost        string
	VSphereUsername    string
	VSpherePassword    string
	VSphereDatacenter  string
	VSphereInsecure    bool
	VSphereCacheTTL    int // seconds, default 300 (5 min)
	VSphereConcurrency int // hosts queried in parallel (default 8)
}

// VSphereConfigured returns true if vSphere credentials are set
func (c *Config) VSphereConfigured() bool {
	return c.VSphereHost != "" && c.VSphereUsername != "" && c.VSpherePassword != "" && c.VSphereDatacenter != ""
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first without overriding variables already set.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	} else if err == nil {
		slog.Debug("Loaded environment from .env")
	}

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		CacheTTL:           getEnvInt("CACHE_TTL", 300),
		EstimateCacheTTL:   getEnvInt("ESTIMATE_CACHE_TTL", 60),
		CORSAllowedOrigins: getEnvStringList("CORS_ALLOWED_ORIGINS"),

		RateLimitEnabled:  getEnvBool("RATE_LIMIT_ENABLED", true),
		RateLimitDefault:  getEnvInt("RATE_LIMIT_DEFAULT", 100),
		RateLimitEstimate: getEnvInt("RATE_LIMIT_ESTIMATE", 30),

		CatalogFile: os.Getenv("CATALOG_FILE"),

		VSphereHost:        os.Getenv("VSPHERE_HOST"),
		VSphereUsername:    os.Getenv("VSPHERE_USERNAME"),
		VSpherePassword:    os.Getenv("VSPHERE_PASSWORD"),
		VSphereDatacenter:  os.Getenv("VSPHERE_DATACENTER"),
		VSphereInsecure:    getEnvBool("VSPHERE_INSECURE", false),
		VSphereCacheTTL:    getEnvInt("VSPHERE_CACHE_TTL", 300),
		VSphereConcurrency: getEnvInt("VSPHERE_CONCURRENCY", 8),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	for _, rl := range []struct {
		name  string
		value int
	}{
		{"RATE_LIMIT_DEFAULT", c.RateLimitDefault},
		{"RATE_LIMIT_ESTIMATE", c.RateLimitEstimate},
	} {
		if rl.value < 1 || rl.value > 10000 {
			return fmt.Errorf("%s must be between 1 and 10000, got %d", rl.name, rl.value)
		}
	}

	for _, ttl := range []struct {
		name  string
		value int
	}{
		{"CACHE_TTL", c.CacheTTL},
		{"ESTIMATE_CACHE_TTL", c.EstimateCacheTTL},
		{"VSPHERE_CACHE_TTL", c.VSphereCacheTTL},
	} {
		if ttl.value < 0 {
			return fmt.Errorf("%s must not be negative, got %d", ttl.name, ttl.value)
		}
	}

	if c.VSphereConcurrency < 1 {
		return fmt.Errorf("VSPHERE_CONCURRENCY must be at least 1, got %d", c.VSphereConcurrency)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvStringList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
