// ABOUTME: Estimate command for gpu-tco CLI
// ABOUTME: Sizes raw storage, overhead cost, and vendors for a GPU deployment

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/nullsector/gpu-tco-analyzer/cli/internal/client"
	"github.com/nullsector/gpu-tco-analyzer/cli/internal/format"
	"github.com/spf13/cobra"
)

var (
	estUsablePB          float64
	estGPUs              int
	estTiers             []string
	estPreset            string
	estBudget            string
	estTrainingPct       float64
	estFinetuningPct     float64
	estVendor            string
	estGPUsFromInventory bool
	estFailOnWarning     bool
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate raw storage and overhead cost",
	Long: `Estimate raw storage, redundancy overhead cost, and vendor selection for a
GPU datacenter.

Give the tier mix either with one --tier flag per tier (order is kept) or with
--preset naming a curated combination (see "gpu-tco presets").

Exit codes:
  0 - Estimate produced
  1 - --fail-on-warning set and a WARNING recommendation or a warning/error finding was reported
  2 - Error (connectivity, invalid input)`,
	Example: `  gpu-tco estimate --usable-pb 50 --gpus 12000 --preset vast-ceph-optimal
  gpu-tco estimate --usable-pb 10 --gpus 2000 --tier ceph-nvme=20 --tier ceph-hdd=80`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runEstimate(ctx, os.Stdout)
		if exitCode != exitOK {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(estimateCmd)
	f := estimateCmd.Flags()
	f.Float64Var(&estUsablePB, "usable-pb", 0, "Total usable capacity in petabytes")
	f.IntVar(&estGPUs, "gpus", 0, "Number of GPUs served by the storage")
	f.StringArrayVar(&estTiers, "tier", nil, "Tier share as id=percent (repeatable, order is kept)")
	f.StringVar(&estPreset, "preset", "", "Curated tier combination id")
	f.StringVar(&estBudget, "budget", "", "Budget class (unlimited, optimized, cost-conscious)")
	f.Float64Var(&estTrainingPct, "training-pct", 0, "Share of the workload that is training (0-100)")
	f.Float64Var(&estFinetuningPct, "finetuning-pct", 0, "Share of the workload that is finetuning (0-100); the rest is inference")
	f.StringVar(&estVendor, "vendor", "", "Preferred primary vendor id, or auto")
	f.BoolVar(&estGPUsFromInventory, "gpus-from-inventory", false, "Take the GPU count from the backend's vSphere inventory")
	f.BoolVar(&estFailOnWarning, "fail-on-warning", false, "Exit 1 when warnings are reported")
}

// runEstimate executes the estimate and returns exit code
func runEstimate(ctx context.Context, w io.Writer) int {
	req, err := buildEstimateRequest()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitError
	}

	c := client.New(GetAPIURL())

	if estGPUsFromInventory {
		inv, err := c.GPUInventory(ctx)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitError
		}
		req.GPUCount = inv.TotalGPUCount
		if !IsJSONOutput() {
			fmt.Fprintf(w, "GPU count from %s inventory: %s\n\n", inv.Datacenter, format.Count(inv.TotalGPUCount))
		}
	}

	resp, err := c.Estimate(ctx, req)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitError
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatEstimateHuman(resp))
	}

	if estFailOnWarning && hasWarnings(resp) {
		return exitAdvisory
	}
	return exitOK
}

// buildEstimateRequest validates flags and assembles the request body
func buildEstimateRequest() (*client.EstimateRequest, error) {
	var problems []error
	if estUsablePB <= 0 {
		problems = append(problems, errors.New("--usable-pb must be greater than 0"))
	}
	if estGPUs < 0 {
		problems = append(problems, errors.New("--gpus must not be negative"))
	}
	if estGPUsFromInventory && estGPUs > 0 {
		problems = append(problems, errors.New("--gpus and --gpus-from-inventory are mutually exclusive"))
	}
	if estTrainingPct < 0 || estTrainingPct > 100 {
		problems = append(problems, errors.New("--training-pct must be between 0 and 100"))
	}
	if estFinetuningPct < 0 || estFinetuningPct > 100 {
		problems = append(problems, errors.New("--finetuning-pct must be between 0 and 100"))
	} else if estTrainingPct+estFinetuningPct > 100 {
		problems = append(problems, errors.New("--training-pct and --finetuning-pct must not exceed 100 together"))
	}
	switch {
	case estPreset != "" && len(estTiers) > 0:
		problems = append(problems, errors.New("--preset and --tier are mutually exclusive"))
	case estPreset == "" && len(estTiers) == 0:
		problems = append(problems, errors.New("one of --preset or --tier is required"))
	}

	req := &client.EstimateRequest{
		Preset:                estPreset,
		TotalUsableCapacityPB: estUsablePB,
		GPUCount:              estGPUs,
		Budget:                estBudget,
		TrainingPercent:       estTrainingPct,
		FinetuningPercent:     estFinetuningPct,
		PreferredVendor:       estVendor,
	}
	if len(estTiers) > 0 {
		dist, err := parseTierFlags(estTiers)
		if err != nil {
			problems = append(problems, err)
		} else {
			req.TierDistribution = &dist
		}
	}

	if err := errors.Join(problems...); err != nil {
		return nil, err
	}
	return req, nil
}

// parseTierFlags turns id=percent pairs into an ordered distribution
func parseTierFlags(values []string) (client.Distribution, error) {
	var dist client.Distribution
	for _, v := range values {
		id, pct, ok := strings.Cut(v, "=")
		id = strings.TrimSpace(id)
		if !ok || id == "" {
			return client.Distribution{}, fmt.Errorf("invalid --tier %q: expected id=percent", v)
		}
		p, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(pct), "%"), 64)
		if err != nil {
			return client.Distribution{}, fmt.Errorf("invalid --tier %q: percent is not a number", v)
		}
		dist.Set(id, p)
	}
	return dist, nil
}

// hasWarnings reports whether the estimate carries a WARNING recommendation
// or a warning/error combination finding.
func hasWarnings(resp *client.EstimateResponse) bool {
	for _, r := range resp.Recommendations {
		if strings.HasPrefix(r, "WARNING:") {
			return true
		}
	}
	for _, f := range resp.Findings {
		if f.Severity == "warning" || f.Severity == "error" {
			return true
		}
	}
	return false
}

// formatEstimateHuman renders the estimate as sections of plain text and tables
func formatEstimateHuman(resp *client.EstimateResponse) string {
	var sb strings.Builder
	calc := resp.Calculation

	header := "Estimate " + resp.EstimateID
	if resp.Preset != "" {
		header += " (preset " + resp.Preset + ")"
	}
	if resp.Cached {
		header += " [cached]"
	}
	sb.WriteString(header + "\n\n")

	fmt.Fprintf(&sb, "GPUs:          %s\n", format.Count(resp.GPUCount))
	fmt.Fprintf(&sb, "Usable:        %s\n", format.PB(calc.TotalUsablePB))
	fmt.Fprintf(&sb, "Raw:           %s\n", format.PB(calc.TotalRawPB))
	fmt.Fprintf(&sb, "Overhead:      %s\n", format.PB(calc.TotalOverheadPB))
	fmt.Fprintf(&sb, "Efficiency:    %s\n\n", format.Ratio(calc.AverageEfficiency))

	tiers := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("TIER", "USABLE", "RAW", "OVERHEAD", "OVERHEAD %", "REDUNDANCY")
	for _, id := range calc.TierOrder {
		b, ok := calc.TierBreakdown[id]
		if !ok {
			continue
		}
		tiers.Row(id, format.PB(b.UsableCapacityPB), format.PB(b.RawCapacityPB), format.PB(b.OverheadPB),
			format.Percent(b.OverheadPercentage), b.RedundancyType)
	}
	sb.WriteString(tiers.String() + "\n\n")

	sb.WriteString("Overhead cost\n")
	fmt.Fprintf(&sb, "  Capex:           %s\n", format.USD(resp.CostImpact.AdditionalCapexUSD))
	fmt.Fprintf(&sb, "  Opex per year:   %s\n", format.USD(resp.CostImpact.AdditionalOpexUSD))
	fmt.Fprintf(&sb, "  Per usable PB:   %s\n\n", format.PerPB(resp.CostImpact.CostPerUsablePB))

	if len(resp.TierCosts.Tiers) > 0 {
		costs := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("TIER", "CAPEX", "OPEX/YR", "5-YEAR TCO", "POWER")
		for _, tc := range resp.TierCosts.Tiers {
			costs.Row(tc.Tier, format.USD(tc.CapexUSD), format.USD(tc.AnnualOpexUSD), format.USD(tc.TCO5YearUSD), format.KW(tc.PowerKW))
		}
		costs.Row("total", format.USD(resp.TierCosts.TotalCapexUSD), format.USD(resp.TierCosts.TotalAnnualOpexUSD),
			format.USD(resp.TierCosts.TotalTCO5YearUSD), format.KW(resp.TierCosts.TotalPowerKW))
		sb.WriteString(costs.String() + "\n\n")
	}

	oc := resp.OperatingCosts
	sb.WriteString("Operating costs\n")
	fmt.Fprintf(&sb, "  Capex:           %s\n", format.USD(oc.CapexUSD))
	fmt.Fprintf(&sb, "  Power/yr:        %s\n", format.USD(oc.PowerUSD))
	fmt.Fprintf(&sb, "  Support/yr:      %s\n", format.USD(oc.SupportUSD))
	fmt.Fprintf(&sb, "  Admin/yr:        %s\n", format.USD(oc.AdminUSD))
	fmt.Fprintf(&sb, "  Annual opex:     %s\n", format.USD(oc.AnnualOpexUSD))
	fmt.Fprintf(&sb, "  5-year TCO:      %s\n", format.USD(oc.TCO5YearUSD))
	fmt.Fprintf(&sb, "  Per GPU:         %s\n", format.PerGPU(oc.CostPerGPU))
	fmt.Fprintf(&sb, "  Per raw TB:      %s\n\n", format.PerTB(oc.CostPerTB))

	cp := resp.Checkpoints
	fmt.Fprintf(&sb, "Checkpoints:   %s (%s model x %d kept x %d copies), every %s\n",
		format.TB(cp.StorageRequiredTB), format.TB(cp.ModelSizeTB), cp.Retention, cp.Redundancy, format.Minutes(cp.FrequencyMinutes))
	bw := resp.Bandwidth
	fmt.Fprintf(&sb, "Bandwidth:     %s required (%s sustained, %s burst)\n\n",
		format.TBps(bw.RequiredTBps), format.TBps(bw.SustainedTBps), format.TBps(bw.BurstTBps))

	vs := resp.VendorSelection
	if vs.Primary != "" {
		fmt.Fprintf(&sb, "Vendors:       %s (primary), %s (secondary)\n", vs.Primary, vs.Secondary)
		fmt.Fprintf(&sb, "Rationale:     %s\n", vs.Rationale)
		for _, a := range vs.TierAssignments {
			fmt.Fprintf(&sb, "  %-24s %s\n", a.TierName, a.Vendor)
		}
		for _, warn := range vs.ScaleWarnings {
			fmt.Fprintf(&sb, "  ! %s\n", warn)
		}
		sb.WriteString("\n")
	}

	if len(resp.Findings) > 0 {
		sb.WriteString("Tier checks\n")
		for _, f := range resp.Findings {
			fmt.Fprintf(&sb, "  [%s] %s\n", f.Severity, f.Message)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Recommendations")
	for _, r := range resp.Recommendations {
		fmt.Fprintf(&sb, "\n  - %s", r)
	}
	return sb.String()
}
