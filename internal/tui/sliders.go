package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"trainingload/internal/config"
)

const sliderWidth = 20

// TimeConstants are the dashboard's adjustable CTL/ATL days
type TimeConstants struct {
	CTLDays int
	ATLDays int
}

// NewTimeConstants starts from the configured values, which may lie
// outside the slider ranges
func NewTimeConstants(cfg config.TrendConfig) TimeConstants {
	return TimeConstants{CTLDays: cfg.CTLDays, ATLDays: cfg.ATLDays}
}

// AdjustCTL moves the fitness constant by delta days within its range
func (tc TimeConstants) AdjustCTL(delta int) TimeConstants {
	tc.CTLDays = step(tc.CTLDays, delta, config.MinCTLDays, config.MaxCTLDays)
	return tc
}

// AdjustATL moves the fatigue constant by delta days within its range
func (tc TimeConstants) AdjustATL(delta int) TimeConstants {
	tc.ATLDays = step(tc.ATLDays, delta, config.MinATLDays, config.MaxATLDays)
	return tc
}

// step adds delta to v and clamps the result to [lo, hi]. A value that
// already lies outside the range can move toward it but never further away.
func step(v, delta, lo, hi int) int {
	return clamp(v+delta, min(lo, v), max(hi, v))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// renderSlider draws one labeled slider
func renderSlider(label string, value, lo, hi int) string {
	percent := float64(value-lo) / float64(hi-lo)
	return lipgloss.JoinHorizontal(
		lipgloss.Left,
		metricLabelStyle.Render(label),
		RenderProgressBar(percent, sliderWidth),
		metricValueStyle.Render(fmt.Sprintf(" %3d days", value)),
	)
}

// View renders both sliders
func (tc TimeConstants) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		renderSlider("Fitness (CTL) [ ]", tc.CTLDays, config.MinCTLDays, config.MaxCTLDays),
		renderSlider("Fatigue (ATL) - =", tc.ATLDays, config.MinATLDays, config.MaxATLDays),
	)
}
