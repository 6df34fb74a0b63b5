// ABOUTME: Keeps the most recent plan requests so the TUI can repeat them
// ABOUTME: Stores estimate requests as JSON in the XDG config directory

package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"

	"github.com/nullsector/gpu-tco-analyzer/cli/internal/client"
)

// MaxEntries is the maximum number of plans to keep
const MaxEntries = 5

// History manages the list of recently run estimate requests
type History struct {
	configDir string
	entries   []client.EstimateRequest
}

type historyData struct {
	Plans []client.EstimateRequest `json:"plans"`
}

// New creates a history store rooted at configDir. An empty configDir
// keeps history in memory only.
func New(configDir string) *History {
	return &History{configDir: configDir}
}

// DefaultConfigDir returns the default config directory following XDG spec
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gpu-tco")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gpu-tco")
}

func (h *History) configFile() string {
	return filepath.Join(h.configDir, "plans.json")
}

// Load reads saved plans from disk, newest first. A missing or corrupt file
// yields an empty list.
func (h *History) Load() ([]client.EstimateRequest, error) {
	if h.configDir == "" {
		if h.entries == nil {
			h.entries = []client.EstimateRequest{}
		}
		return h.entries, nil
	}

	data, err := os.ReadFile(h.configFile())
	if os.IsNotExist(err) {
		h.entries = []client.EstimateRequest{}
		return h.entries, nil
	}
	if err != nil {
		return nil, err
	}

	var saved historyData
	if err := json.Unmarshal(data, &saved); err != nil {
		h.entries = []client.EstimateRequest{}
		return h.entries, nil
	}
	h.entries = saved.Plans
	if h.entries == nil {
		h.entries = []client.EstimateRequest{}
	}
	return h.entries, nil
}

// Save writes plans to disk, trimmed to MaxEntries
func (h *History) Save(plans []client.EstimateRequest) error {
	if len(plans) > MaxEntries {
		plans = plans[:MaxEntries]
	}
	h.entries = plans

	if h.configDir == "" {
		return nil
	}
	if err := os.MkdirAll(h.configDir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(historyData{Plans: plans}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(h.configFile(), data, 0644)
}

// Add puts a plan at the front of the list, dropping an identical older copy
func (h *History) Add(plan client.EstimateRequest) error {
	if h.entries == nil {
		if _, err := h.Load(); err != nil {
			h.entries = []client.EstimateRequest{}
		}
	}

	plans := make([]client.EstimateRequest, 0, len(h.entries)+1)
	plans = append(plans, plan)
	for _, p := range h.entries {
		if !reflect.DeepEqual(p, plan) {
			plans = append(plans, p)
		}
	}
	return h.Save(plans)
}

// Latest returns the most recent plan, if any
func (h *History) Latest() (client.EstimateRequest, bool) {
	if h.entries == nil {
		h.Load()
	}
	if len(h.entries) == 0 {
		return client.EstimateRequest{}, false
	}
	return h.entries[0], true
}
