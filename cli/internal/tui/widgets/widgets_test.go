// ABOUTME: Tests for report widgets
// ABOUTME: Covers severity mapping, bar sizing, and block layout

package widgets

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/nullsector/gpu-tco-analyzer/cli/internal/tui/icons"
)

func TestLevelForSeverity(t *testing.T) {
	tests := map[string]StatusLevel{
		"error":      StatusCritical,
		"warning":    StatusWarning,
		"suggestion": StatusInfo,
		"other":      StatusNeutral,
	}
	for severity, want := range tests {
		if got := LevelForSeverity(severity); got != want {
			t.Errorf("LevelForSeverity(%q): expected %d, got %d", severity, want, got)
		}
	}
}

func TestSeverityBadge(t *testing.T) {
	if !strings.Contains(SeverityBadge("warning"), "WARN") {
		t.Error("expected WARN badge for warning")
	}
	if !strings.Contains(SeverityBadge("suggestion"), "TIP") {
		t.Error("expected TIP badge for suggestion")
	}
}

func TestEfficiencyLevel(t *testing.T) {
	tests := []struct {
		eff  float64
		want StatusLevel
	}{
		{0.33, StatusCritical},
		{0.65, StatusWarning},
		{0.73, StatusOK},
	}
	for _, tt := range tests {
		if got := EfficiencyLevel(tt.eff); got != tt.want {
			t.Errorf("EfficiencyLevel(%g): expected %d, got %d", tt.eff, tt.want, got)
		}
	}
}

func TestShareBar_FillsWidth(t *testing.T) {
	segments := []Segment{
		{Label: "ceph-nvme", Value: 33, Color: lipgloss.Color("#8B5CF6")},
		{Label: "skipped", Value: 0, Color: lipgloss.Color("#0EA5E9")},
		{Label: "ceph-hdd", Value: 67, Color: lipgloss.Color("#10B981")},
	}

	out := ShareBar(segments, 30)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected bar and legend lines, got %d", len(lines))
	}
	if got := lipgloss.Width(lines[0]); got != 30 {
		t.Errorf("expected bar width 30, got %d", got)
	}
	if strings.Contains(lines[1], "skipped") {
		t.Error("expected zero-value segment left out of legend")
	}
	if !strings.Contains(lines[1], "ceph-hdd 67%") {
		t.Errorf("expected ceph-hdd share in legend, got %q", lines[1])
	}
}

func TestShareBar_Empty(t *testing.T) {
	if got := lipgloss.Width(ShareBar(nil, 12)); got != 12 {
		t.Errorf("expected empty bar width 12, got %d", got)
	}
}

func TestMetricBlock_Width(t *testing.T) {
	cfg := DefaultMetricBlockConfig()
	block := MetricBlock(icons.Storage, "Raw capacity", "30.7 PB", "from 10 PB usable", cfg)

	for i, line := range strings.Split(block, "\n") {
		if got := lipgloss.Width(line); got != cfg.Width {
			t.Errorf("line %d: expected width %d, got %d", i, cfg.Width, got)
		}
	}
	if !strings.Contains(block, "30.7 PB") {
		t.Error("expected value in block")
	}
}

func TestMetricBlockWithBar(t *testing.T) {
	block := MetricBlockWithBar(icons.Gauge, "Efficiency", 65, StatusWarning, "usable / raw", DefaultMetricBlockConfig())
	if !strings.Contains(block, " 65%") {
		t.Errorf("expected percentage in block, got:\n%s", block)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Erasure coding 8+3", 10); got != "Erasure..." {
		t.Errorf("expected Erasure..., got %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Errorf("expected short, got %q", got)
	}
}
