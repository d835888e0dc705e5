package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"trainingload/internal/activity"
	"trainingload/internal/analysis"
	"trainingload/internal/service"
)

// PaceModel is the pace prediction and history screen model
type PaceModel struct {
	queryService *service.QueryService
	units        Units
	report       *analysis.PaceReport
	viewport     viewport.Model
	loading      bool
	err          error
	width        int
	height       int
	ready        bool
}

// NewPaceModel creates a new pace model
func NewPaceModel(qs *service.QueryService, units Units, width, height int) PaceModel {
	m := PaceModel{
		queryService: qs,
		units:        units,
		loading:      true,
		width:        width,
		height:       height,
	}

	if width > 0 && height > 0 {
		m.viewport = viewport.New(width, height-6)
		m.ready = true
	}

	return m
}

// Init initializes the pace screen
func (m PaceModel) Init() tea.Cmd {
	return m.loadPace
}

type paceLoadedMsg struct {
	report *analysis.PaceReport
	err    error
}

func (m PaceModel) loadPace() tea.Msg {
	report, err := m.queryService.GetPaceReport()
	if err != nil {
		return paceLoadedMsg{err: err}
	}
	return paceLoadedMsg{report: &report}
}

// Update handles messages
func (m PaceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case paceLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.report = msg.report
		if m.ready {
			m.viewport.SetContent(m.renderContent())
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-6)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 6
		}
		if m.report != nil {
			m.viewport.SetContent(m.renderContent())
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.loadPace
		}
	}

	// Handle viewport scrolling
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the pace screen
func (m PaceModel) View() string {
	if m.loading {
		return "\n  Loading pace history..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	footer := statusStyle.Render("  j/k or arrows: scroll  r: refresh")

	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), footer)
}

func (m PaceModel) renderContent() string {
	if m.report == nil || len(m.report.History) == 0 {
		return m.renderEmptyState()
	}

	var sections []string

	sections = append(sections, "")
	sections = append(sections, cardTitleStyle.Render("Pace Prediction"))
	sections = append(sections, m.renderPrediction())

	if len(m.report.History) >= minChartDays {
		sections = append(sections, m.renderChart())
	}

	sections = append(sections, m.renderHistoryTable())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m PaceModel) renderEmptyState() string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, cardTitleStyle.Render("Pace Prediction"))
	lines = append(lines, "")

	emptyStyle := lipgloss.NewStyle().Foreground(mutedColor)
	lines = append(lines, emptyStyle.Render("  No qualifying runs yet."))
	lines = append(lines, "")
	lines = append(lines, emptyStyle.Render("  Runs over the minimum distance with an average speed set the pace zones."))
	lines = append(lines, "")

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m PaceModel) renderPrediction() string {
	var lines []string
	best := m.report.Prediction.BestSpeed

	paceStyle := lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	mutedStyle := lipgloss.NewStyle().Foreground(mutedColor)

	if !m.report.Prediction.Available() {
		lines = append(lines, mutedStyle.Render("  No qualifying run inside the prediction window."))
		lines = append(lines, "")
		return strings.Join(lines, "\n")
	}

	lines = append(lines, fmt.Sprintf("  Race pace: %s", paceStyle.Render(m.units.FormatSpeedWithUnit(best))))
	lines = append(lines, fmt.Sprintf("  Zone 2:    %s",
		m.units.FormatBand(best, analysis.Zone2FastFraction, analysis.Zone2SlowFraction)))
	lines = append(lines, fmt.Sprintf("  Easy:      %s",
		m.units.FormatBand(best, analysis.EasyFastFraction, analysis.EasySlowFraction)))
	lines = append(lines, mutedStyle.Render(fmt.Sprintf("  Best speed %.2f m/s from %d qualifying runs", best, m.report.Qualifying)))
	lines = append(lines, "")

	return strings.Join(lines, "\n")
}

func (m PaceModel) renderChart() string {
	title := cardTitleStyle.Render(fmt.Sprintf("Pace History (%s)", m.units.PaceLabel()))

	paces := m.units.ConvertPaceData(analysis.PaceHistoryMinPerKm(m.report.History))
	graph := asciigraph.Plot(paces,
		asciigraph.Height(8),
		asciigraph.Width(chartWidth),
		asciigraph.Precision(2),
		asciigraph.SeriesColors(asciigraph.Orange),
	)

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, graph))
}

func (m PaceModel) renderHistoryTable() string {
	var lines []string

	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(secondaryColor)
	lines = append(lines, sectionStyle.Render("── Runs "+strings.Repeat("─", 32)))

	header := fmt.Sprintf("  %-12s  %10s  %8s", "Date", "Pace", "m/s")
	lines = append(lines, lipgloss.NewStyle().Foreground(primaryColor).Render(header))

	// Newest first
	for i := len(m.report.History) - 1; i >= 0; i-- {
		s := m.report.History[i]
		lines = append(lines, fmt.Sprintf("  %-12s  %10s  %8.2f",
			s.Date.Format(activity.DateLayout),
			m.units.FormatSpeed(s.SpeedMPS),
			s.SpeedMPS,
		))
	}

	lines = append(lines, "")
	return strings.Join(lines, "\n")
}
