package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"

	"trainingload/internal/activity"
	"trainingload/internal/analysis"
	"trainingload/internal/service"
)

const (
	chartWidth   = 60
	chartHeight  = 10
	ctlStepDays  = 1
	atlStepDays  = 1
	minChartDays = 2
)

// DashboardModel is the dashboard screen model
type DashboardModel struct {
	queryService *service.QueryService
	units        Units
	constants    TimeConstants
	data         *service.DashboardData
	loading      bool
	err          error
}

// NewDashboardModel creates a new dashboard model
func NewDashboardModel(qs *service.QueryService, units Units, constants TimeConstants) DashboardModel {
	return DashboardModel{
		queryService: qs,
		units:        units,
		constants:    constants,
		loading:      true,
	}
}

// Init initializes the dashboard
func (m DashboardModel) Init() tea.Cmd {
	return m.loadData(m.constants)
}

// Constants returns the time constants currently shown
func (m DashboardModel) Constants() TimeConstants {
	return m.constants
}

func (m DashboardModel) loadData(tc TimeConstants) tea.Cmd {
	qs := m.queryService
	return func() tea.Msg {
		data, err := qs.GetDashboardData(tc.CTLDays, tc.ATLDays)
		return dashboardDataMsg{constants: tc, data: data, err: err}
	}
}

func (m DashboardModel) reloadData(tc TimeConstants) tea.Cmd {
	qs := m.queryService
	return func() tea.Msg {
		if err := qs.Reload(); err != nil {
			return dashboardDataMsg{constants: tc, err: err}
		}
		data, err := qs.GetDashboardData(tc.CTLDays, tc.ATLDays)
		return dashboardDataMsg{constants: tc, data: data, err: err}
	}
}

type dashboardDataMsg struct {
	constants TimeConstants
	data      *service.DashboardData
	err       error
}

// Update handles messages
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		// Drop results for constants the user has already moved past
		if msg.constants != m.constants {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		m.data = msg.data
	case tea.KeyMsg:
		next := m.constants
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.reloadData(m.constants)
		case "[":
			next = next.AdjustCTL(-ctlStepDays)
		case "]":
			next = next.AdjustCTL(ctlStepDays)
		case "-":
			next = next.AdjustATL(-atlStepDays)
		case "=", "+":
			next = next.AdjustATL(atlStepDays)
		}
		if next != m.constants {
			m.constants = next
			return m, m.loadData(next)
		}
	}
	return m, nil
}

// View renders the dashboard
func (m DashboardModel) View() string {
	if m.loading && m.data == nil {
		return "\n  Loading dashboard..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if m.data == nil || !m.data.HasData() {
		return m.renderEmptyState()
	}

	var sections []string

	// Top row: fitness and pace side by side
	fitnessCard := m.renderFitnessCard()
	paceCard := m.renderPaceCard()
	topRow := lipgloss.JoinHorizontal(lipgloss.Top, fitnessCard, "  ", paceCard)
	sections = append(sections, topRow)

	sections = append(sections, cardStyle.Render(m.constants.View()))

	if len(m.data.Trends) >= minChartDays {
		sections = append(sections, m.renderTrendChart())
	}

	sections = append(sections, m.renderSourceLine())

	help := statusStyle.Render("[ ] fitness days  - = fatigue days  r reload  2 pace history")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m DashboardModel) renderEmptyState() string {
	mutedStyle := lipgloss.NewStyle().Foreground(mutedColor)
	dir := m.queryService.Dir()

	msg := fmt.Sprintf("  No activity data found in %s.", dir)
	if m.data != nil && m.data.Missing {
		msg = fmt.Sprintf("  Activity directory %s does not exist.", dir)
	}

	lines := []string{
		"",
		cardTitleStyle.Render("Training Load"),
		mutedStyle.Render(msg),
		mutedStyle.Render("  Add activity JSON files and press 'r' to reload."),
	}
	if m.data != nil && len(m.data.Skipped) > 0 {
		lines = append(lines, warningStyle.Render(
			fmt.Sprintf("  %d files could not be read.", len(m.data.Skipped))))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m DashboardModel) renderFitnessCard() string {
	title := cardTitleStyle.Render("Current Form")
	cur := m.data.Current

	lines := []string{
		RenderMetric("Fitness (CTL)", fmt.Sprintf("%.1f", cur.CTL), ""),
		RenderMetric("Fatigue (ATL)", fmt.Sprintf("%.1f", cur.ATL), ""),
		RenderMetric("Form (TSB)", fmt.Sprintf("%.1f", cur.TSB), ""),
		RenderMetric("Ramp (7d)", fmt.Sprintf("%.1f", cur.Ramp), formatSigned(cur.Ramp)),
		RenderMetric("Load (7d)", fmt.Sprintf("%.0f", m.data.RecentLoad), ""),
		"",
		formZoneStyle(m.data.FormZone).Render(string(m.data.FormZone)),
		lipgloss.NewStyle().Foreground(mutedColor).Render(m.data.FormDescription),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(38).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderPaceCard() string {
	title := cardTitleStyle.Render("Pace Zones")
	best := m.data.Pace.BestSpeed

	lines := []string{
		RenderMetric("Race pace", m.units.FormatSpeedWithUnit(best), ""),
		RenderMetric("Zone 2", m.units.FormatBand(best, analysis.Zone2FastFraction, analysis.Zone2SlowFraction), ""),
		RenderMetric("Easy", m.units.FormatBand(best, analysis.EasyFastFraction, analysis.EasySlowFraction), ""),
		"",
		lipgloss.NewStyle().Foreground(mutedColor).Render(
			fmt.Sprintf("%d qualifying runs", m.data.QualifyingRuns)),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(44).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderTrendChart() string {
	title := cardTitleStyle.Render(fmt.Sprintf("Fitness / Fatigue / Form - %s days",
		humanize.Comma(int64(len(m.data.Trends)))))

	ctl := make([]float64, len(m.data.Trends))
	atl := make([]float64, len(m.data.Trends))
	tsb := make([]float64, len(m.data.Trends))
	for i, t := range m.data.Trends {
		ctl[i], atl[i], tsb[i] = t.CTL, t.ATL, t.TSB
	}

	graph := asciigraph.PlotMany([][]float64{ctl, atl, tsb},
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red, asciigraph.Green),
		asciigraph.SeriesLegends("Fitness", "Fatigue", "Form"),
	)

	first := m.data.Trends[0].Date.Format(activity.DateLayout)
	last := m.data.Trends[len(m.data.Trends)-1].Date.Format(activity.DateLayout)
	axis := lipgloss.NewStyle().Foreground(mutedColor).Render(fmt.Sprintf("%s .. %s", first, last))

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, graph, axis))
}

func (m DashboardModel) renderSourceLine() string {
	d := m.data
	line := fmt.Sprintf("%s activities", humanize.Comma(int64(d.ActivityCount)))
	if !d.LastActivity.IsZero() {
		line += fmt.Sprintf(", last %s", humanize.Time(d.LastActivity))
	}
	if !d.LoadedAt.IsZero() {
		line += fmt.Sprintf(", loaded %s", humanize.Time(d.LoadedAt))
	}

	rendered := statusStyle.Render(line)
	if n := len(d.Skipped); n > 0 {
		rendered = lipgloss.JoinVertical(lipgloss.Left, rendered,
			warningStyle.Render(fmt.Sprintf("%d files skipped (see log)", n)))
	}
	return rendered
}

// formZoneStyle colors the form zone like the chart bands
func formZoneStyle(zone analysis.FormZone) lipgloss.Style {
	switch zone {
	case analysis.FormZoneHighRisk:
		return lipgloss.NewStyle().Bold(true).Foreground(errorColor)
	case analysis.FormZoneOptimal:
		return lipgloss.NewStyle().Bold(true).Foreground(secondaryColor)
	default:
		return lipgloss.NewStyle().Bold(true).Foreground(mutedColor)
	}
}

func formatSigned(v float64) string {
	switch {
	case v > 0:
		return "↑"
	case v < 0:
		return "↓"
	default:
		return "→"
	}
}
