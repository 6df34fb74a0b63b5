// ABOUTME: Stacked bar showing how capacity splits across storage tiers
// ABOUTME: Each tier gets a colored segment proportional to its share

package widgets

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Segment is one tier's slice of a stacked bar.
type Segment struct {
	Label string
	Value float64
	Color lipgloss.Color
}

// ShareBar renders segments side by side, each sized by its share of the
// total, followed by a legend line. Non-positive values are left out.
func ShareBar(segments []Segment, width int) string {
	if width <= 0 {
		width = 40
	}

	var total float64
	for _, s := range segments {
		if s.Value > 0 {
			total += s.Value
		}
	}
	if total == 0 {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#374151")).Render(strings.Repeat("░", width))
	}

	var bar, legend strings.Builder
	used := 0
	last := -1
	for i, s := range segments {
		if s.Value > 0 {
			last = i
		}
	}
	for i, s := range segments {
		if s.Value <= 0 {
			continue
		}
		cells := int(math.Round(s.Value / total * float64(width)))
		if i == last {
			cells = width - used
		}
		cells = min(max(cells, 0), width-used)
		used += cells

		style := lipgloss.NewStyle().Foreground(s.Color)
		bar.WriteString(style.Render(strings.Repeat("█", cells)))
		if legend.Len() > 0 {
			legend.WriteString("  ")
		}
		legend.WriteString(style.Render("■") + fmt.Sprintf(" %s %.0f%%", s.Label, s.Value/total*100))
	}

	return bar.String() + "\n" + legend.String()
}
