// ABOUTME: Renders an estimate response as the scrollable plan report
// ABOUTME: Lays out metric blocks, tier shares, cost tables, vendors, and advisories

package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/nullsector/gpu-tco-analyzer/cli/internal/client"
	"github.com/nullsector/gpu-tco-analyzer/cli/internal/format"
	"github.com/nullsector/gpu-tco-analyzer/cli/internal/tui/icons"
	"github.com/nullsector/gpu-tco-analyzer/cli/internal/tui/styles"
	"github.com/nullsector/gpu-tco-analyzer/cli/internal/tui/widgets"
)

const minWidth = 60

// Render lays the estimate out for a terminal of the given width.
func Render(resp *client.EstimateResponse, width int) string {
	if resp == nil {
		return ""
	}
	width = max(width, minWidth)

	sections := []string{
		renderSummary(resp, width),
		renderShares(resp, width),
		renderTiers(resp),
		renderCosts(resp),
		renderOperations(resp),
		renderVendors(resp),
		renderAdvisories(resp),
	}

	var out []string
	for _, s := range sections {
		if s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, "\n\n")
}

func renderSummary(resp *client.EstimateResponse, width int) string {
	calc := resp.Calculation
	cfg := widgets.DefaultMetricBlockConfig()

	source := "custom tier mix"
	if resp.Preset != "" {
		source = "preset " + resp.Preset
	}

	efficiency := widgets.MetricBlock(icons.Gauge, "Efficiency", format.NotAvailable, "usable / raw", cfg)
	if calc.AverageEfficiency != nil {
		eff := *calc.AverageEfficiency
		efficiency = widgets.MetricBlockWithBar(icons.Gauge, "Efficiency", eff*100, widgets.EfficiencyLevel(eff), "usable / raw", cfg)
	}

	blocks := []string{
		widgets.MetricBlock(icons.GPU, "GPUs", format.Count(resp.GPUCount), source, cfg),
		widgets.MetricBlock(icons.Storage, "Raw capacity", format.PB(calc.TotalRawPB), format.PB(calc.TotalUsablePB)+" usable", cfg),
		efficiency,
		widgets.MetricBlock(icons.Cost, "5-year TCO", format.USD(resp.TierCosts.TotalTCO5YearUSD), format.USD(resp.TierCosts.TotalCapexUSD)+" capex", cfg),
		widgets.MetricBlock(icons.Power, "Power", format.KW(resp.TierCosts.TotalPowerKW), "all tiers", cfg),
	}

	// Wrap blocks onto as many rows as the width allows
	perRow := max(1, width/(cfg.Width+1))
	var rows []string
	for i := 0; i < len(blocks); i += perRow {
		end := min(i+perRow, len(blocks))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, spaced(blocks[i:end])...))
	}

	header := styles.Title.Render(fmt.Sprintf("%s Estimate %s", icons.App.String(), resp.EstimateID))
	if resp.Cached {
		header += " " + widgets.Badge("CACHED", widgets.StatusNeutral)
	}
	return header + "\n" + strings.Join(rows, "\n")
}

func spaced(blocks []string) []string {
	out := make([]string, 0, len(blocks)*2)
	for i, b := range blocks {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, b)
	}
	return out
}

func renderShares(resp *client.EstimateResponse, width int) string {
	calc := resp.Calculation
	segments := make([]widgets.Segment, 0, len(calc.TierOrder))
	for i, id := range calc.TierOrder {
		b, ok := calc.TierBreakdown[id]
		if !ok {
			continue
		}
		segments = append(segments, widgets.Segment{Label: id, Value: b.RawCapacityPB, Color: styles.TierColor(i)})
	}
	if len(segments) == 0 {
		return ""
	}
	return styles.Section.Render("Raw capacity by tier") + "\n" + widgets.ShareBar(segments, width-4)
}

func renderTiers(resp *client.EstimateResponse) string {
	calc := resp.Calculation
	if len(calc.TierOrder) == 0 {
		return ""
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.Muted)).
		Headers("Tier", "Usable", "Raw", "Overhead", "Overhead %", "Redundancy")
	for _, id := range calc.TierOrder {
		b, ok := calc.TierBreakdown[id]
		if !ok {
			continue
		}
		t.Row(id, format.PB(b.UsableCapacityPB), format.PB(b.RawCapacityPB), format.PB(b.OverheadPB),
			format.Percent(b.OverheadPercentage), b.RedundancyType)
	}
	return styles.Section.Render(icons.Tier.String()+" Raw storage") + "\n" + t.String()
}

func renderCosts(resp *client.EstimateResponse) string {
	ci := resp.CostImpact
	var sb strings.Builder
	sb.WriteString(styles.Section.Render(icons.Cost.String() + " Redundancy overhead cost"))
	fmt.Fprintf(&sb, "\n%s %s   %s %s   %s %s",
		styles.LabelStyle.Render("Capex"), styles.ValueStyle.Render(format.USD(ci.AdditionalCapexUSD)),
		styles.LabelStyle.Render("Opex/yr"), styles.ValueStyle.Render(format.USD(ci.AdditionalOpexUSD)),
		styles.LabelStyle.Render("Per usable PB"), styles.ValueStyle.Render(format.PerPB(ci.CostPerUsablePB)))

	if len(resp.TierCosts.Tiers) > 0 {
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(styles.Muted)).
			Headers("Tier", "Capex", "Opex/yr", "5-year TCO", "Power")
		for _, tc := range resp.TierCosts.Tiers {
			name := tc.Name
			if name == "" {
				name = tc.Tier
			}
			t.Row(name, format.USD(tc.CapexUSD), format.USD(tc.AnnualOpexUSD), format.USD(tc.TCO5YearUSD), format.KW(tc.PowerKW))
		}
		sb.WriteString("\n" + t.String())
	}
	return sb.String()
}

func renderOperations(resp *client.EstimateResponse) string {
	oc := resp.OperatingCosts
	cp := resp.Checkpoints
	bw := resp.Bandwidth

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.Muted)).
		Headers("Power/yr", "Support/yr", "Admin/yr", "Annual opex", "5-year TCO", "Per GPU", "Per raw TB").
		Row(format.USD(oc.PowerUSD), format.USD(oc.SupportUSD), format.USD(oc.AdminUSD), format.USD(oc.AnnualOpexUSD),
			format.USD(oc.TCO5YearUSD), format.PerGPU(oc.CostPerGPU), format.PerTB(oc.CostPerTB))

	var sb strings.Builder
	sb.WriteString(styles.Section.Render(icons.Power.String() + " Operations"))
	fmt.Fprintf(&sb, "\n%s %s   %s %s   %s %s",
		styles.LabelStyle.Render("Checkpoints"), styles.ValueStyle.Render(format.TB(cp.StorageRequiredTB)),
		styles.LabelStyle.Render("every"), styles.ValueStyle.Render(format.Minutes(cp.FrequencyMinutes)),
		styles.LabelStyle.Render("kept"), styles.ValueStyle.Render(fmt.Sprintf("%d x %d copies", cp.Retention, cp.Redundancy)))
	fmt.Fprintf(&sb, "\n%s %s   %s %s   %s %s",
		styles.LabelStyle.Render("Bandwidth"), styles.ValueStyle.Render(format.TBps(bw.RequiredTBps)),
		styles.LabelStyle.Render("sustained"), styles.ValueStyle.Render(format.TBps(bw.SustainedTBps)),
		styles.LabelStyle.Render("burst"), styles.ValueStyle.Render(format.TBps(bw.BurstTBps)))
	sb.WriteString("\n" + t.String())
	return sb.String()
}

func renderVendors(resp *client.EstimateResponse) string {
	vs := resp.VendorSelection
	if vs.Primary == "" {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(styles.Section.Render(icons.Vendor.String() + " Vendors"))
	fmt.Fprintf(&sb, "\n%s %s   %s %s\n%s",
		styles.LabelStyle.Render("Primary"), styles.ValueStyle.Render(vs.Primary),
		styles.LabelStyle.Render("Secondary"), styles.ValueStyle.Render(vs.Secondary),
		styles.LabelStyle.Render(vs.Rationale))
	for _, a := range vs.TierAssignments {
		fmt.Fprintf(&sb, "\n  %-24s %s", a.TierName, a.Vendor)
	}
	for _, w := range vs.ScaleWarnings {
		sb.WriteString("\n" + widgets.StatusText(w, widgets.StatusWarning))
	}
	return sb.String()
}

func renderAdvisories(resp *client.EstimateResponse) string {
	if len(resp.Findings) == 0 && len(resp.Recommendations) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(styles.Section.Render(icons.Info.String() + " Advisories"))
	for _, f := range resp.Findings {
		sb.WriteString("\n" + widgets.SeverityBadge(f.Severity) + " " + f.Message)
	}
	for _, r := range resp.Recommendations {
		level := widgets.StatusInfo
		if strings.HasPrefix(r, "WARNING:") {
			level = widgets.StatusCritical
		}
		sb.WriteString("\n" + widgets.StatusText(r, level))
	}
	return sb.String()
}
