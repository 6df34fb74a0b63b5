// ABOUTME: Start menu for the plan TUI
// ABOUTME: Chooses where the GPU count comes from or repeats the last plan

package menu

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// Source is how the next plan gets its starting values
type Source int

const (
	SourceVSphere Source = iota
	SourceManual
	SourceRepeat
)

// SourceSelectedMsg is sent once the user confirms a choice
type SourceSelectedMsg struct {
	Source Source
}

// CancelledMsg is sent when the user leaves the menu
type CancelledMsg struct{}

type option struct {
	label   string
	value   Source
	enabled bool
}

// Menu is the start menu model
type Menu struct {
	options  []option
	selected Source
	form     *huh.Form
	err      string
}

// New creates the start menu. The vSphere entry is only selectable when the
// backend reports vSphere as configured, and repeat only when a previous
// plan exists.
func New(vsphereConfigured, hasHistory bool) *Menu {
	m := &Menu{
		options: []option{
			{label: "Discover GPU count from vSphere", value: SourceVSphere, enabled: vsphereConfigured},
			{label: "Enter GPU count manually", value: SourceManual, enabled: true},
			{label: "Repeat last plan", value: SourceRepeat, enabled: hasHistory},
		},
		selected: SourceManual,
	}
	if vsphereConfigured {
		m.selected = SourceVSphere
	}
	m.form = m.createForm()
	return m
}

func (m *Menu) createForm() *huh.Form {
	var options []huh.Option[Source]
	for _, opt := range m.options {
		label := opt.label
		if !opt.enabled {
			label = fmt.Sprintf("%s (unavailable)", label)
		}
		options = append(options, huh.NewOption(label, opt.value))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[Source]().
				Title("Start a storage plan").
				Options(options...).
				Value(&m.selected),
		),
	).WithTheme(huh.ThemeBase()).WithShowHelp(false)
}

// Init implements tea.Model
func (m *Menu) Init() tea.Cmd {
	return m.form.Init()
}

// Update implements tea.Model
func (m *Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && (key.String() == "q" || key.String() == "esc") {
		return m, func() tea.Msg { return CancelledMsg{} }
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if !m.enabled(m.selected) {
		// Rebuild the form so the user can pick again
		m.err = fmt.Sprintf("%s is unavailable", m.label(m.selected))
		m.form = m.createForm()
		return m, m.form.Init()
	}

	m.err = ""
	selected := m.selected
	return m, func() tea.Msg { return SourceSelectedMsg{Source: selected} }
}

// View implements tea.Model
func (m *Menu) View() string {
	if m.err != "" {
		return m.form.View() + "\n" + m.err
	}
	return m.form.View()
}

func (m *Menu) enabled(s Source) bool {
	for _, opt := range m.options {
		if opt.value == s {
			return opt.enabled
		}
	}
	return false
}

func (m *Menu) label(s Source) string {
	for _, opt := range m.options {
		if opt.value == s {
			return opt.label
		}
	}
	return s.String()
}

// String returns the string representation of a Source
func (s Source) String() string {
	switch s {
	case SourceVSphere:
		return "vsphere"
	case SourceManual:
		return "manual"
	case SourceRepeat:
		return "repeat"
	default:
		return "unknown"
	}
}
