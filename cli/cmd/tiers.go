// ABOUTME: Catalog commands for gpu-tco CLI
// ABOUTME: Lists storage architectures and the curated tier presets

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/nullsector/gpu-tco-analyzer/cli/internal/client"
	"github.com/nullsector/gpu-tco-analyzer/cli/internal/format"
	"github.com/spf13/cobra"
)

var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "List storage architectures",
	Long:  `List every storage architecture in the backend catalog with its redundancy scheme, raw multiplier, and unit cost.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runTiers(ctx, os.Stdout); exitCode != exitOK {
			os.Exit(exitCode)
		}
	},
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List recommended tier combinations",
	Long:  `List the curated tier distributions accepted by "gpu-tco estimate --preset".`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runPresets(ctx, os.Stdout); exitCode != exitOK {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(tiersCmd)
	rootCmd.AddCommand(presetsCmd)
}

// runTiers fetches the architecture table and returns exit code
func runTiers(ctx context.Context, w io.Writer) int {
	archs, err := client.New(GetAPIURL()).Architectures(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitError
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(archs, "", "  ")
		fmt.Fprintln(w, string(data))
		return exitOK
	}
	fmt.Fprintln(w, formatTiersHuman(archs))
	return exitOK
}

// runPresets fetches the curated combinations and returns exit code
func runPresets(ctx context.Context, w io.Writer) int {
	combos, err := client.New(GetAPIURL()).Combinations(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitError
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(combos, "", "  ")
		fmt.Fprintln(w, string(data))
		return exitOK
	}
	fmt.Fprintln(w, formatPresetsHuman(combos))
	return exitOK
}

// formatTiersHuman renders the architecture catalog as a table
func formatTiersHuman(archs []client.Architecture) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "CATEGORY", "REDUNDANCY", "RAW X", "CAPEX/PB", "OPEX/PB/YR", "KW/PB")
	for _, a := range archs {
		multiplier := "-"
		if a.Redundancy.Type != "generic" && a.RawMultiplier > 0 {
			multiplier = format.Decimal(a.RawMultiplier, 3)
		}
		t.Row(
			a.ID,
			a.Name,
			a.Category,
			a.Redundancy.Label,
			multiplier,
			format.USD(a.CostPerPB.Capex),
			format.USD(a.CostPerPB.Opex),
			format.Decimal(a.PowerPerPBKW, 1),
		)
	}
	return t.String()
}

// formatPresetsHuman renders each preset with its distribution in order
func formatPresetsHuman(combos []client.Combination) string {
	var sb strings.Builder
	for i, c := range combos {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "%s  %s\n", c.ID, c.Name)
		if c.Description != "" {
			fmt.Fprintf(&sb, "  %s\n", c.Description)
		}
		shares := make([]string, 0, c.Distribution.Len())
		for _, s := range c.Distribution.Shares() {
			shares = append(shares, fmt.Sprintf("%s %s%%", s.Tier, format.Decimal(s.Percentage, 1)))
		}
		fmt.Fprintf(&sb, "  Tiers:     %s\n", strings.Join(shares, ", "))
		fmt.Fprintf(&sb, "  Cost/PB:   %s", format.USD(c.TotalCostPerPB))
		if c.Rationale != "" {
			fmt.Fprintf(&sb, "\n  Rationale: %s", c.Rationale)
		}
	}
	return sb.String()
}
