// Package tui provides the interactive Bubble Tea dashboard for facast.
package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/facastdev/facast/internal/cli"
	"github.com/facastdev/facast/internal/model"
	"github.com/facastdev/facast/internal/pipeline"
	"github.com/facastdev/facast/internal/tui/components"
	"github.com/facastdev/facast/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DataLoadedMsg is sent when the load pipeline finishes.
type DataLoadedMsg struct {
	Session  *pipeline.Session
	LoadTime time.Duration
}

// App is the root Bubble Tea model.
type App struct {
	opts pipeline.Options

	// Data
	session  *pipeline.Session
	loaded   bool
	loadTime time.Duration

	// UI state
	width     int
	height    int
	activeTab int
	showRecs  bool

	// What-if state, per indicator
	input        textinput.Model
	inputFocused bool
	whatif       map[model.Indicator][]model.Figure
	whatifTarget map[model.Indicator]float64
	whatifErr    string

	spinner spinner.Model
}

const minTerminalWidth = 60

// NewApp creates a new dashboard model.
func NewApp(opts pipeline.Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	in := textinput.New()
	in.Placeholder = "annual total"
	in.CharLimit = 16
	in.Width = 20

	return App{
		opts:         opts,
		spinner:      sp,
		input:        in,
		whatif:       make(map[model.Indicator][]model.Figure),
		whatifTarget: make(map[model.Indicator]float64),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		loadDataCmd(a.opts),
		a.spinner.Tick,
	)
}

func loadDataCmd(opts pipeline.Options) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		s := pipeline.Load(opts)
		return DataLoadedMsg{Session: s, LoadTime: time.Since(start)}
	}
}

func (a App) activeIndicator() model.Indicator {
	return model.AllIndicators[a.activeTab]
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case DataLoadedMsg:
		a.session = msg.Session
		a.loaded = true
		a.loadTime = msg.LoadTime
		return a, nil

	case spinner.TickMsg:
		if a.loaded {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The what-if input swallows everything except escape and enter.
	if a.inputFocused {
		switch msg.String() {
		case "esc":
			a.inputFocused = false
			a.input.Blur()
			a.whatifErr = ""
			return a, nil
		case "enter":
			a.applyWhatIf()
			return a, nil
		default:
			var cmd tea.Cmd
			a.input, cmd = a.input.Update(msg)
			return a, cmd
		}
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "tab", "right", "l":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil

	case "shift+tab", "left", "h":
		a.activeTab = (a.activeTab + len(components.Tabs) - 1) % len(components.Tabs)
		return a, nil

	case "a":
		if !a.loaded {
			return a, nil
		}
		a.inputFocused = true
		a.whatifErr = ""
		a.input.SetValue("")
		return a, a.input.Focus()

	case "c":
		a.showRecs = !a.showRecs
		return a, nil

	case "r":
		if !a.loaded {
			return a, nil
		}
		a.loaded = false
		return a, tea.Batch(loadDataCmd(a.opts), a.spinner.Tick)

	case "1", "2", "3", "4":
		a.activeTab = int(msg.String()[0] - '1')
		return a, nil
	}

	if len(msg.String()) == 1 {
		if idx := components.TabIdxByKey(rune(msg.String()[0])); idx >= 0 {
			a.activeTab = idx
			return a, nil
		}
	}

	return a, nil
}

// applyWhatIf parses the entered annual total and redistributes it across
// the active indicator's projection model.
func (a *App) applyWhatIf() {
	raw := strings.TrimSpace(a.input.Value())
	target, err := strconv.ParseFloat(raw, 64)
	if err != nil || target < 0 {
		a.whatifErr = fmt.Sprintf("not a valid annual total: %q", raw)
		return
	}

	ind := a.activeIndicator()
	figures, err := a.session.Redistribute(ind, target)
	if err != nil {
		a.whatifErr = err.Error()
		return
	}

	monthly, daily := pipeline.MonthlySplit(target)
	figures = append(figures,
		model.Figure{Label: "Monthly average", Value: monthly, Unit: ind.Unit()},
		model.Figure{Label: "Daily average", Value: daily, Unit: ind.Unit()},
	)

	a.whatif[ind] = figures
	a.whatifTarget[ind] = target
	a.whatifErr = ""
	a.inputFocused = false
	a.input.Blur()
}

// View implements tea.Model.
func (a App) View() string {
	if a.width > 0 && a.width < minTerminalWidth {
		return fmt.Sprintf("\n  Terminal too narrow (%d cols, need %d).\n", a.width, minTerminalWidth)
	}

	if !a.loaded {
		return fmt.Sprintf("\n  %s Loading consumption data...\n", a.spinner.View())
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(components.RenderTabBar(a.activeTab))
	b.WriteString("\n\n")
	b.WriteString(a.viewIndicator())
	b.WriteString("\n")
	b.WriteString(components.RenderStatusBar(a.contentWidth(), a.session.DataDir))

	return b.String()
}

func (a App) contentWidth() int {
	w := a.width
	if w <= 0 {
		w = 80
	}
	if w > 120 {
		w = 120
	}
	return w
}

func (a App) viewIndicator() string {
	t := theme.Active
	ind := a.activeIndicator()
	width := a.contentWidth() - 2

	if err, ok := a.session.Errors[ind]; ok {
		body := lipgloss.NewStyle().Foreground(t.Red).Render(err.Error())
		return components.ContentCard(ind.Title(), body, width)
	}
	if !a.session.Available(ind) {
		return components.ContentCard(ind.Title(), "No data.", width)
	}

	var sections []string

	sections = append(sections, a.viewChart(ind, width))

	figures, err := a.session.Figures(ind)
	if err == nil {
		sections = append(sections, a.viewFigures(ind, figures, width))
	}

	sections = append(sections, a.viewWhatIf(ind, width))

	if a.showRecs {
		var lines []string
		for _, rec := range pipeline.Recommendations(ind) {
			lines = append(lines, "• "+rec)
		}
		sections = append(sections, components.ContentCard("Advice", strings.Join(lines, "\n"), width))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a App) viewChart(ind model.Indicator, width int) string {
	color := indicatorColor(ind)
	inner := width - 4

	switch ind {
	case model.Electricity:
		return components.ContentCard("Daily consumption",
			components.SeriesChart(a.session.ElectricitySeries, color, inner), width)
	case model.Water:
		return components.ContentCard("Daily consumption",
			components.SeriesChart(a.session.WaterSeries, color, inner), width)
	case model.Materials:
		return components.ContentCard("Spend by material",
			components.CategoryBars(a.session.Materials.Ledger, color, inner/2), width)
	default:
		return components.ContentCard("Spend by service",
			components.CategoryBars(a.session.Services.Ledger, color, inner/2), width)
	}
}

func (a App) viewFigures(ind model.Indicator, figures []model.Figure, width int) string {
	// Headline cards for the first three figures, plain rows for the rest.
	headline := figures
	var rest []model.Figure
	if len(headline) > 3 {
		headline, rest = figures[:3], figures[3:]
	}

	labels := make([]string, len(headline))
	values := make([]string, len(headline))
	for i, f := range headline {
		labels[i] = f.Label
		values[i] = cli.FormatFigure(f.Value, f.Unit)
	}
	out := components.FigureCardRow(labels, values, width)

	if len(rest) > 0 {
		out += "\n" + components.ContentCard("", figureRows(rest), width)
	}

	if skipped := a.session.Skipped[ind]; skipped > 0 {
		t := theme.Active
		out += "\n" + lipgloss.NewStyle().Foreground(t.TextDim).
			Render(fmt.Sprintf("  %d malformed rows skipped", skipped))
	}

	return out
}

func (a App) viewWhatIf(ind model.Indicator, width int) string {
	t := theme.Active

	var body strings.Builder
	if a.inputFocused {
		body.WriteString("Annual total to redistribute: " + a.input.View())
	} else {
		body.WriteString(lipgloss.NewStyle().Foreground(t.TextDim).
			Render("Press [a] to redistribute a hypothetical annual total."))
	}

	if a.whatifErr != "" {
		body.WriteString("\n" + lipgloss.NewStyle().Foreground(t.Red).Render(a.whatifErr))
	}

	if figures, ok := a.whatif[ind]; ok {
		body.WriteString("\n" + lipgloss.NewStyle().Foreground(t.TextMuted).
			Render(fmt.Sprintf("For %s:", cli.FormatFigure(a.whatifTarget[ind], ind.Unit()))))
		body.WriteString("\n" + figureRows(figures))
	}

	return components.ContentCard("What-if", body.String(), width)
}

func figureRows(figures []model.Figure) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

	labelW := 0
	for _, f := range figures {
		if len(f.Label) > labelW {
			labelW = len(f.Label)
		}
	}

	var b strings.Builder
	for _, f := range figures {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", labelW+2, f.Label)))
		b.WriteString(valueStyle.Render(cli.FormatFigure(f.Value, f.Unit)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func indicatorColor(ind model.Indicator) lipgloss.Color {
	t := theme.Active
	switch ind {
	case model.Electricity:
		return t.Blue
	case model.Water:
		return t.Green
	case model.Materials:
		return t.Orange
	case model.Services:
		return t.Purple
	default:
		return t.Accent
	}
}
