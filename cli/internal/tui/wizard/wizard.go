// ABOUTME: Storage planning wizard as a bubbletea model
// ABOUTME: Collects deployment size, tier mix, and vendor preferences across three huh forms

package wizard

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/nullsector/gpu-tco-analyzer/cli/internal/client"
	"github.com/nullsector/gpu-tco-analyzer/cli/internal/tui/icons"
	"github.com/nullsector/gpu-tco-analyzer/cli/internal/tui/styles"
)

// CustomPreset is the preset select value that switches to a hand-written tier mix.
const CustomPreset = "custom"

const (
	defaultUsablePB      = "10"
	defaultGPUCount      = "8192"
	defaultTrainingPct   = "70"
	defaultFinetuningPct = "10"
)

// WizardCompleteMsg is sent when the wizard finishes successfully
type WizardCompleteMsg struct {
	Input *client.EstimateRequest
}

// WizardCancelledMsg is sent when the wizard is cancelled
type WizardCancelledMsg struct{}

// Catalog is the reference data the wizard offers as choices.
type Catalog struct {
	Presets       []client.Combination
	Architectures []client.Architecture
	Vendors       []client.Vendor
}

// Wizard manages the storage planning flow as a bubbletea model
type Wizard struct {
	catalog Catalog
	input   *client.EstimateRequest
	form    *huh.Form
	step    int
	custom  bool
	width   int

	// Form field values (strings for huh)
	usablePB    string
	gpuCount    string
	trainingPct string
	finetunePct string
	preset      string
	customTiers string
	budget      string
	vendor      string
}

// Step names for progress indicator
var stepNames = []string{"Deployment", "Tier Mix", "Vendors"}

// createTheme returns the huh theme used by every wizard step
func createTheme() *huh.Theme {
	t := huh.ThemeBase()

	sky := lipgloss.Color("#0EA5E9")
	skyLight := lipgloss.Color("#38BDF8")
	blue := lipgloss.Color("#3B82F6")
	gray := lipgloss.Color("#9CA3AF")
	grayLight := lipgloss.Color("#E5E7EB")
	red := lipgloss.Color("#F87171")
	slate := lipgloss.Color("#334155")

	t.Group.Title = lipgloss.NewStyle().Foreground(sky).Bold(true).MarginBottom(1)
	t.Group.Description = lipgloss.NewStyle().Foreground(gray).MarginBottom(1)

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(sky)
	t.Focused.Title = lipgloss.NewStyle().Foreground(skyLight).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(gray)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(red).SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(red)

	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(sky).SetString("> ")
	t.Focused.Option = lipgloss.NewStyle().Foreground(grayLight)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(sky).Bold(true)
	t.Focused.NextIndicator = lipgloss.NewStyle().Foreground(sky).MarginLeft(1).SetString("→")
	t.Focused.PrevIndicator = lipgloss.NewStyle().Foreground(sky).MarginRight(1).SetString("←")

	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(sky)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(gray)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(sky)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(grayLight)

	t.Focused.FocusedButton = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(blue).
		Padding(0, 2).
		MarginRight(1)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(gray).
		Background(slate).
		Padding(0, 2).
		MarginRight(1)

	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().Foreground(gray)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(gray).SetString("  ")
	t.Blurred.Option = lipgloss.NewStyle().Foreground(gray)

	return t
}

var budgetOptions = []huh.Option[string]{
	huh.NewOption("Optimized (default)", ""),
	huh.NewOption("Unlimited", "unlimited"),
	huh.NewOption("Cost-conscious", "cost-conscious"),
}

// New creates a wizard. A positive gpuCount (for example from vSphere
// inventory) replaces the default GPU count.
func New(cat Catalog, gpuCount int) *Wizard {
	w := &Wizard{
		catalog:     cat,
		input:       &client.EstimateRequest{},
		step:        1,
		usablePB:    defaultUsablePB,
		gpuCount:    defaultGPUCount,
		trainingPct: defaultTrainingPct,
		finetunePct: defaultFinetuningPct,
		preset:      CustomPreset,
		vendor:      "auto",
	}
	if gpuCount > 0 {
		w.gpuCount = strconv.Itoa(gpuCount)
	}
	if len(cat.Presets) > 0 {
		w.preset = cat.Presets[0].ID
	}

	w.form = w.createStep1Form()
	return w
}

func (w *Wizard) createStep1Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Usable capacity (PB)").
				Description("Total usable storage the cluster needs").
				Placeholder("e.g., 50").
				CharLimit(8).
				Value(&w.usablePB).
				Validate(validatePositiveFloat),
			huh.NewInput().
				Title("GPU count").
				Description("GPUs served by this storage").
				Placeholder("e.g., 12000").
				CharLimit(7).
				Value(&w.gpuCount).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Training share (%)").
				Description("Portion of the workload that is model training").
				CharLimit(5).
				Value(&w.trainingPct).
				Validate(validatePercentage),
			huh.NewInput().
				Title("Finetuning share (%)").
				Description("Portion that is finetuning; the rest is inference").
				CharLimit(5).
				Value(&w.finetunePct).
				Validate(w.validateFinetuning),
		).Title("Step 1: Deployment").
			Description("Size the GPU deployment the storage must serve"),
	).WithTheme(createTheme())
}

func (w *Wizard) createStep2Form() *huh.Form {
	options := make([]huh.Option[string], 0, len(w.catalog.Presets)+1)
	for _, p := range w.catalog.Presets {
		label := p.Name
		if p.TotalCostPerPB > 0 {
			label = fmt.Sprintf("%s ($%s/PB)", p.Name, humanize.Comma(int64(p.TotalCostPerPB)))
		}
		options = append(options, huh.NewOption(label, p.ID))
	}
	options = append(options, huh.NewOption("Custom tier mix", CustomPreset))

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Tier combination").
				Description("Use ↑/↓ to select, Enter to confirm").
				Options(options...).
				Value(&w.preset),
		).Title("Step 2: Tier Mix").
			Description("Pick a curated combination or enter your own"),
	).WithTheme(createTheme())
}

func (w *Wizard) createCustomTiersForm() *huh.Form {
	ids := make([]string, 0, len(w.catalog.Architectures))
	for _, a := range w.catalog.Architectures {
		ids = append(ids, a.ID)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Tier shares").
				Description("Comma-separated id=percent, e.g. ceph-nvme=20, ceph-hdd=80\nTiers: " + strings.Join(ids, ", ")).
				CharLimit(400).
				Lines(3).
				Value(&w.customTiers).
				Validate(func(s string) error {
					_, err := w.parseTiers(s)
					return err
				}),
		).Title("Step 2: Tier Mix").
			Description("Tiers are sized in the order given"),
	).WithTheme(createTheme())
}

func (w *Wizard) createStep3Form() *huh.Form {
	vendorOptions := []huh.Option[string]{huh.NewOption("Let the selector decide", "auto")}
	for _, v := range w.catalog.Vendors {
		vendorOptions = append(vendorOptions, huh.NewOption(v.Name, v.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Budget").
				Description("Steers vendor choice for mega-scale deployments").
				Options(budgetOptions...).
				Value(&w.budget),
			huh.NewSelect[string]().
				Title("Preferred vendor").
				Description("Primary vendor, with Ceph as secondary").
				Options(vendorOptions...).
				Value(&w.vendor),
		).Title("Step 3: Vendors").
			Description("Shape the primary and secondary vendor selection"),
	).WithTheme(createTheme())
}

// Init implements tea.Model
func (w *Wizard) Init() tea.Cmd {
	return w.form.Init()
}

// Update implements tea.Model
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		form, cmd := w.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			w.form = f
		}
		return w, cmd

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return w, func() tea.Msg { return WizardCancelledMsg{} }
		}
	}

	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	if w.form.State == huh.StateCompleted {
		return w.advanceStep()
	}

	return w, cmd
}

func (w *Wizard) advanceStep() (tea.Model, tea.Cmd) {
	switch w.step {
	case 1:
		w.input.TotalUsableCapacityPB, _ = strconv.ParseFloat(strings.TrimSpace(w.usablePB), 64)
		w.input.GPUCount, _ = strconv.Atoi(strings.TrimSpace(w.gpuCount))
		w.input.TrainingPercent, _ = strconv.ParseFloat(strings.TrimSpace(w.trainingPct), 64)
		w.input.FinetuningPercent, _ = strconv.ParseFloat(strings.TrimSpace(w.finetunePct), 64)
		w.step = 2
		w.form = w.createStep2Form()
		return w, w.form.Init()

	case 2:
		if w.preset == CustomPreset && !w.custom {
			w.custom = true
			w.form = w.createCustomTiersForm()
			return w, w.form.Init()
		}
		if w.preset == CustomPreset {
			dist, _ := w.parseTiers(w.customTiers)
			w.input.TierDistribution = &dist
			w.input.Preset = ""
		} else {
			w.input.Preset = w.preset
			w.input.TierDistribution = nil
		}
		w.step = 3
		w.form = w.createStep3Form()
		return w, w.form.Init()

	case 3:
		w.input.Budget = w.budget
		w.input.PreferredVendor = w.vendor
		input := w.input
		return w, func() tea.Msg {
			return WizardCompleteMsg{Input: input}
		}
	}

	return w, nil
}

// Step returns the current step number, starting at 1
func (w *Wizard) Step() int {
	return w.step
}

// SetWidth sets the wizard width for proper rendering
func (w *Wizard) SetWidth(width int) {
	w.width = width
}

// View implements tea.Model
func (w *Wizard) View() string {
	var sb strings.Builder
	sb.WriteString(w.renderProgress())
	sb.WriteString("\n\n")
	sb.WriteString(w.form.View())
	return sb.String()
}

// renderProgress renders the step progress indicator
func (w *Wizard) renderProgress() string {
	width := max(w.width-1, 60)

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary)

	var steps []string
	for i, name := range stepNames {
		stepNum := i + 1
		var indicator string
		var nameStyle lipgloss.Style

		switch {
		case stepNum < w.step:
			indicator = lipgloss.NewStyle().Foreground(styles.Secondary).Render(icons.CheckOK.String())
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		case stepNum == w.step:
			indicator = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Render("●")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
		default:
			indicator = lipgloss.NewStyle().Foreground(styles.Muted).Render("○")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		}

		steps = append(steps, fmt.Sprintf("%s %s", indicator, nameStyle.Render(name)))
	}
	stepsLine := strings.Join(steps, "    ")

	// "│  " + bar + " │"
	barWidth := width - 5
	filledWidth := (w.step * barWidth) / len(stepNames)
	progressBar := lipgloss.NewStyle().Foreground(styles.Primary).Render(strings.Repeat("━", filledWidth)) +
		lipgloss.NewStyle().Foreground(styles.Surface).Render(strings.Repeat("─", barWidth-filledWidth))

	title := "Progress"
	topBorder := "┌─ " + titleStyle.Render(title) + " " + strings.Repeat("─", max(0, width-5-lipgloss.Width(title))) + "┐"
	stepsLinePadded := "│ " + stepsLine + strings.Repeat(" ", max(0, width-4-lipgloss.Width(stepsLine))) + " │"
	progressLine := "│  " + progressBar + " │"
	bottomBorder := "└" + strings.Repeat("─", width-2) + "┘"

	return borderStyle.Render(strings.Join([]string{topBorder, stepsLinePadded, progressLine, bottomBorder}, "\n"))
}

// GetInput returns the collected estimate request
func (w *Wizard) GetInput() *client.EstimateRequest {
	return w.input
}

// parseTiers reads "id=pct, id=pct" into an ordered distribution. Tier ids
// must exist in the catalog when the catalog lists architectures.
func (w *Wizard) parseTiers(s string) (client.Distribution, error) {
	known := make(map[string]bool, len(w.catalog.Architectures))
	for _, a := range w.catalog.Architectures {
		known[a.ID] = true
	}

	var dist client.Distribution
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '\n' }) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, pct, ok := strings.Cut(part, "=")
		id = strings.TrimSpace(id)
		if !ok || id == "" {
			return client.Distribution{}, fmt.Errorf("%q: expected id=percent", part)
		}
		if len(known) > 0 && !known[id] {
			return client.Distribution{}, fmt.Errorf("unknown tier %q", id)
		}
		p, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(pct), "%"), 64)
		if err != nil || p <= 0 || p > 100 {
			return client.Distribution{}, fmt.Errorf("%q: percent must be between 0 and 100", part)
		}
		dist.Set(id, p)
	}
	if dist.Len() == 0 {
		return client.Distribution{}, fmt.Errorf("enter at least one tier")
	}
	return dist, nil
}

func validatePositiveInt(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return fmt.Errorf("must be a positive number")
	}
	return nil
}

func validatePositiveFloat(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("must be a positive number")
	}
	return nil
}

func validatePercentage(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 || v > 100 {
		return fmt.Errorf("must be between 0 and 100")
	}
	return nil
}

// validateFinetuning also keeps training plus finetuning within 100%.
func (w *Wizard) validateFinetuning(s string) error {
	if err := validatePercentage(s); err != nil {
		return err
	}
	training, _ := strconv.ParseFloat(strings.TrimSpace(w.trainingPct), 64)
	finetuning, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if training+finetuning > 100 {
		return fmt.Errorf("training and finetuning together must not exceed 100")
	}
	return nil
}
