// ABOUTME: Status badge widgets for quick visual status indication
// ABOUTME: Maps finding severities and efficiency levels to colored badges

package widgets

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/nullsector/gpu-tco-analyzer/cli/internal/tui/icons"
)

// StatusLevel represents the severity of a status
type StatusLevel int

const (
	StatusOK StatusLevel = iota
	StatusWarning
	StatusCritical
	StatusInfo
	StatusNeutral
)

// Badge colors
var (
	BadgeOKBg      = lipgloss.Color("#10B981")
	BadgeOKFg      = lipgloss.Color("#FFFFFF")
	BadgeWarnBg    = lipgloss.Color("#F59E0B")
	BadgeWarnFg    = lipgloss.Color("#000000")
	BadgeCritBg    = lipgloss.Color("#EF4444")
	BadgeCritFg    = lipgloss.Color("#FFFFFF")
	BadgeInfoBg    = lipgloss.Color("#3B82F6")
	BadgeInfoFg    = lipgloss.Color("#FFFFFF")
	BadgeNeutralBg = lipgloss.Color("#6B7280")
	BadgeNeutralFg = lipgloss.Color("#FFFFFF")
)

func levelColors(level StatusLevel) (bg, fg lipgloss.Color) {
	switch level {
	case StatusOK:
		return BadgeOKBg, BadgeOKFg
	case StatusWarning:
		return BadgeWarnBg, BadgeWarnFg
	case StatusCritical:
		return BadgeCritBg, BadgeCritFg
	case StatusInfo:
		return BadgeInfoBg, BadgeInfoFg
	default:
		return BadgeNeutralBg, BadgeNeutralFg
	}
}

// Badge renders a colored status badge
func Badge(text string, level StatusLevel) string {
	bg, fg := levelColors(level)
	return lipgloss.NewStyle().
		Background(bg).
		Foreground(fg).
		Padding(0, 1).
		Bold(true).
		Render(text)
}

// LevelForSeverity maps a combination finding severity to a status level.
func LevelForSeverity(severity string) StatusLevel {
	switch severity {
	case "error":
		return StatusCritical
	case "warning":
		return StatusWarning
	case "suggestion":
		return StatusInfo
	default:
		return StatusNeutral
	}
}

// SeverityBadge renders a finding severity as an upper-case badge.
func SeverityBadge(severity string) string {
	label := map[string]string{"error": "ERROR", "warning": "WARN", "suggestion": "TIP"}[severity]
	if label == "" {
		label = "--"
	}
	return Badge(label, LevelForSeverity(severity))
}

// EfficiencyLevel grades a storage efficiency ratio. Below 0.5 the advisor
// flags low efficiency and below 0.7 large deployments are told to revisit
// erasure coding.
func EfficiencyLevel(efficiency float64) StatusLevel {
	switch {
	case efficiency < 0.5:
		return StatusCritical
	case efficiency < 0.7:
		return StatusWarning
	default:
		return StatusOK
	}
}

// StatusIcon returns the appropriate icon for a status level
func StatusIcon(level StatusLevel) string {
	bg, _ := levelColors(level)
	style := lipgloss.NewStyle().Foreground(bg)
	switch level {
	case StatusOK:
		return style.Render(icons.CheckOK.String())
	case StatusWarning:
		return style.Render(icons.Warning.String())
	case StatusCritical:
		return style.Render(icons.Critical.String())
	case StatusInfo:
		return style.Render(icons.Info.String())
	default:
		return style.Render("•")
	}
}

// StatusText returns styled status text with icon
func StatusText(text string, level StatusLevel) string {
	bg, _ := levelColors(level)
	return fmt.Sprintf("%s %s", StatusIcon(level), lipgloss.NewStyle().Foreground(bg).Render(text))
}
