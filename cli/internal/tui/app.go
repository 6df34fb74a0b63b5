// ABOUTME: Main TUI application model for gpu-tco plan
// ABOUTME: Runs menu, wizard, spinner, and report screens inside one frame

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/nullsector/gpu-tco-analyzer/cli/internal/client"
	"github.com/nullsector/gpu-tco-analyzer/cli/internal/format"
	"github.com/nullsector/gpu-tco-analyzer/cli/internal/tui/debuglog"
	"github.com/nullsector/gpu-tco-analyzer/cli/internal/tui/history"
	"github.com/nullsector/gpu-tco-analyzer/cli/internal/tui/icons"
	"github.com/nullsector/gpu-tco-analyzer/cli/internal/tui/menu"
	"github.com/nullsector/gpu-tco-analyzer/cli/internal/tui/report"
	"github.com/nullsector/gpu-tco-analyzer/cli/internal/tui/styles"
	"github.com/nullsector/gpu-tco-analyzer/cli/internal/tui/wizard"
)

// Screen represents the current screen being displayed
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenLoading
	ScreenWizard
	ScreenEstimating
	ScreenReport
)

const (
	minTerminalWidth = 80
	requestTimeout   = 45 * time.Second

	// header + newline + newline + footer
	frameOverhead = 4
)

// Messages
type catalogLoadedMsg struct {
	catalog  wizard.Catalog
	gpuCount int
	err      error
}

type estimateDoneMsg struct {
	estimate *client.EstimateResponse
	err      error
}

// App is the main TUI application model
type App struct {
	client            *client.Client
	vsphereConfigured bool
	history           *history.History

	screen       Screen
	menu         *menu.Menu
	wizardScreen *wizard.Wizard
	spinner      spinner.Model
	viewport     viewport.Model

	catalog     wizard.Catalog
	gpuCount    int
	lastRequest *client.EstimateRequest
	estimate    *client.EstimateResponse
	notice      string
	err         error
	lastUpdate  time.Time

	width  int
	height int
}

// New creates a new TUI application. Plans are remembered in store.
func New(apiClient *client.Client, vsphereConfigured bool, store *history.History) *App {
	if store == nil {
		store = history.New("")
	}
	_, hasHistory := store.Latest()

	return &App{
		client:            apiClient,
		vsphereConfigured: vsphereConfigured,
		history:           store,
		screen:            ScreenMenu,
		menu:              menu.New(vsphereConfigured, hasHistory),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.Primary)),
		),
		viewport: viewport.New(minTerminalWidth, 20),
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return a.menu.Init()
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.viewport.Width = a.frameWidth()
		a.viewport.Height = a.contentHeight()
		if a.estimate != nil {
			a.viewport.SetContent(report.Render(a.estimate, a.frameWidth()))
		}
		if a.wizardScreen != nil {
			a.wizardScreen.SetWidth(a.frameWidth())
			return a.updateWizard(msg)
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch a.screen {
		case ScreenMenu:
			return a.updateMenu(msg)
		case ScreenWizard:
			return a.updateWizard(msg)
		case ScreenReport:
			return a.updateReport(msg)
		case ScreenLoading, ScreenEstimating:
			if a.err != nil {
				return a.updateError(msg)
			}
		}
		return a, nil

	case spinner.TickMsg:
		if a.screen != ScreenLoading && a.screen != ScreenEstimating {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case menu.SourceSelectedMsg:
		return a.handleSourceSelected(msg)

	case menu.CancelledMsg:
		return a, tea.Quit

	case catalogLoadedMsg:
		return a.handleCatalogLoaded(msg)

	case wizard.WizardCompleteMsg:
		a.wizardScreen = nil
		return a, a.runEstimate(msg.Input)

	case wizard.WizardCancelledMsg:
		a.wizardScreen = nil
		return a.backToMenu()

	case estimateDoneMsg:
		return a.handleEstimateDone(msg)

	default:
		// huh forms need their internal messages
		switch a.screen {
		case ScreenMenu:
			return a.updateMenu(msg)
		case ScreenWizard:
			return a.updateWizard(msg)
		}
	}

	return a, nil
}

func (a *App) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.menu == nil {
		return a, nil
	}
	model, cmd := a.menu.Update(msg)
	a.menu = model.(*menu.Menu)
	return a, cmd
}

func (a *App) updateWizard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.wizardScreen == nil {
		return a, nil
	}
	model, cmd := a.wizardScreen.Update(msg)
	a.wizardScreen = model.(*wizard.Wizard)
	return a, cmd
}

func (a *App) updateReport(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "w":
		return a, a.startWizard()
	case "r":
		if a.lastRequest != nil {
			return a, a.runEstimate(a.lastRequest)
		}
	case "b":
		return a.backToMenu()
	}

	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return a, cmd
}

func (a *App) updateError(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "b", "esc":
		return a.backToMenu()
	}
	return a, nil
}

func (a *App) backToMenu() (tea.Model, tea.Cmd) {
	_, hasHistory := a.history.Latest()
	a.menu = menu.New(a.vsphereConfigured, hasHistory)
	a.screen = ScreenMenu
	a.err = nil
	return a, a.menu.Init()
}

func (a *App) handleSourceSelected(msg menu.SourceSelectedMsg) (tea.Model, tea.Cmd) {
	a.err = nil
	a.notice = ""

	if msg.Source == menu.SourceRepeat {
		if last, ok := a.history.Latest(); ok {
			return a, a.runEstimate(&last)
		}
	}

	a.screen = ScreenLoading
	return a, tea.Batch(a.spinner.Tick, a.loadCatalog(msg.Source == menu.SourceVSphere))
}

func (a *App) handleCatalogLoaded(msg catalogLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		debuglog.Error("load catalog", msg.err)
		a.err = msg.err
		return a, nil
	}
	a.catalog = msg.catalog
	a.gpuCount = msg.gpuCount
	return a, a.startWizard()
}

func (a *App) handleEstimateDone(msg estimateDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		debuglog.Error("estimate", msg.err)
		a.err = msg.err
		return a, nil
	}

	a.estimate = msg.estimate
	a.lastUpdate = time.Now()
	a.viewport.Width = a.frameWidth()
	a.viewport.Height = a.contentHeight()
	a.viewport.SetContent(report.Render(a.estimate, a.frameWidth()))
	a.viewport.GotoTop()
	a.screen = ScreenReport

	if a.lastRequest != nil {
		if err := a.history.Add(*a.lastRequest); err != nil {
			debuglog.Error("save plan history", err)
		}
	}
	return a, nil
}

// startWizard transitions to the wizard screen
func (a *App) startWizard() tea.Cmd {
	a.wizardScreen = wizard.New(a.catalog, a.gpuCount)
	a.wizardScreen.SetWidth(a.frameWidth())
	a.screen = ScreenWizard
	return a.wizardScreen.Init()
}

// loadCatalog fetches the wizard choices, and the GPU count when asked to
// discover it. Inventory failures fall back to the default GPU count.
func (a *App) loadCatalog(discoverGPUs bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var cat wizard.Catalog
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			cat.Presets, err = a.client.Combinations(gctx)
			return err
		})
		g.Go(func() (err error) {
			cat.Architectures, err = a.client.Architectures(gctx)
			return err
		})
		g.Go(func() (err error) {
			cat.Vendors, err = a.client.Vendors(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return catalogLoadedMsg{err: err}
		}

		msg := catalogLoadedMsg{catalog: cat}
		if discoverGPUs {
			inv, err := a.client.GPUInventory(ctx)
			if err != nil {
				debuglog.Warn("GPU inventory unavailable, using defaults: %v", err)
			} else {
				msg.gpuCount = inv.TotalGPUCount
				debuglog.Log("GPU inventory loaded", "datacenter", inv.Datacenter, "gpus", inv.TotalGPUCount)
			}
		}
		return msg
	}
}

// runEstimate shows the spinner and calls the backend
func (a *App) runEstimate(input *client.EstimateRequest) tea.Cmd {
	a.lastRequest = input
	a.err = nil
	a.screen = ScreenEstimating

	c := a.client
	return tea.Batch(a.spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		debuglog.Log("estimate requested", "preset", input.Preset, "gpus", input.GPUCount, "usable_pb", input.TotalUsableCapacityPB)
		resp, err := c.Estimate(ctx, input)
		return estimateDoneMsg{estimate: resp, err: err}
	})
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenMenu:
		content = a.viewMenu()
	case ScreenLoading:
		content = a.viewBusy("Loading storage catalog")
	case ScreenWizard:
		if a.wizardScreen != nil {
			content = a.wizardScreen.View()
		}
	case ScreenEstimating:
		content = a.viewBusy("Estimating storage")
	case ScreenReport:
		content = a.viewport.View()
	}

	return a.wrapWithFrame(content)
}

func (a *App) viewMenu() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.App.String() + " GPU storage TCO plan"))
	sb.WriteString("\n")
	if a.menu != nil {
		sb.WriteString(a.menu.View())
	}
	return sb.String()
}

func (a *App) viewBusy(label string) string {
	if a.err != nil {
		return styles.StatusCritical.Render("Error: "+a.err.Error()) + "\n" +
			styles.Help.Render("b back to menu, q quit")
	}
	return styles.Panel.Render(a.spinner.View() + " " + label + "...")
}

// frameWidth is the usable width inside the frame
func (a *App) frameWidth() int {
	return max(a.width-1, minTerminalWidth)
}

// contentHeight calculates the height available between header and footer
func (a *App) contentHeight() int {
	return max(a.height-frameOverhead, 5)
}

// headerContext summarizes the active plan for the header
func (a *App) headerContext() string {
	switch {
	case a.estimate != nil && a.screen == ScreenReport:
		if a.estimate.Preset != "" {
			return a.estimate.Preset + " · " + format.Count(a.estimate.GPUCount) + " GPUs"
		}
		return "custom mix · " + format.Count(a.estimate.GPUCount) + " GPUs"
	case a.gpuCount > 0 && a.screen == ScreenWizard:
		return format.Count(a.gpuCount) + " GPUs from vSphere"
	default:
		return ""
	}
}

// renderHeader creates the header bar with app branding and context
func (a *App) renderHeader() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	left := fmt.Sprintf(" %s %s ", icons.App.String(), titleStyle.Render("GPU TCO Analyzer"))
	right := ""
	if ctx := a.headerContext(); ctx != "" {
		right = " " + contextStyle.Render(ctx) + " "
	}

	fill := max(0, width-4-lipgloss.Width(left)-lipgloss.Width(right)) // ╭─ and ─╮
	return borderStyle.Render("╭─") + left + borderStyle.Render(strings.Repeat("─", fill)) + right + borderStyle.Render("─╮")
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	quit := icons.Quit.String() + " Quit"
	back := "b " + icons.Back.String() + " Back"

	var shortcuts []string
	switch a.screen {
	case ScreenMenu:
		shortcuts = []string{"↑↓ Navigate", "Enter Select", "q " + quit}
	case ScreenWizard:
		shortcuts = []string{"Tab Next", "Enter Confirm", "Esc " + icons.Back.String() + " Cancel"}
	case ScreenReport:
		shortcuts = []string{"↑↓ Scroll", "w " + icons.Wizard.String() + " New plan", "r Rerun", back, "q " + quit}
	default:
		if a.err != nil {
			shortcuts = []string{back, "q " + quit}
		} else {
			shortcuts = []string{"ctrl+c " + quit}
		}
	}

	styled := make([]string, 0, len(shortcuts))
	for _, s := range shortcuts {
		if key, label, ok := strings.Cut(s, " "); ok {
			styled = append(styled, keyStyle.Render(key)+" "+labelStyle.Render(label))
		} else {
			styled = append(styled, s)
		}
	}
	left := " " + strings.Join(styled, "  ") + " "

	right := ""
	if !a.lastUpdate.IsZero() && a.screen == ScreenReport {
		right = " " + statusStyle.Render("Estimated "+formatTimeSince(a.lastUpdate)) + " "
	}

	fill := max(0, width-4-lipgloss.Width(left)-lipgloss.Width(right)) // ╰─ and ─╯
	return borderStyle.Render("╰─") + left + borderStyle.Render(strings.Repeat("─", fill)) + right + borderStyle.Render("─╯")
}

// formatTimeSince formats a duration since the given time in human-readable form
func formatTimeSince(t time.Time) string {
	d := time.Since(t)

	switch {
	case d < 5*time.Second:
		return "just now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder
	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())
	return sb.String()
}

// Run starts the TUI
func Run(apiClient *client.Client, vsphereConfigured bool) error {
	configDir := history.DefaultConfigDir()
	if err := debuglog.Init(configDir); err != nil {
		configDir = ""
	}
	defer debuglog.Close()

	app := New(apiClient, vsphereConfigured, history.New(configDir))
	_, err := tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}
