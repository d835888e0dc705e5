package service

import (
	"time"

	"trainingload/internal/activity"
	"trainingload/internal/analysis"
)

// DashboardData contains all data needed for the dashboard
type DashboardData struct {
	// Time constants the trend was computed with
	CTLDays int
	ATLDays int

	// Current fitness
	Current         analysis.FitnessMetrics
	FormZone        analysis.FormZone
	FormDescription string
	RecentLoad      float64 // summed load over the last RecentDays days of the series

	// Pace
	Pace           analysis.PacePrediction
	PaceSummary    analysis.PaceSummary
	PaceHistory    []analysis.PaceSample
	QualifyingRuns int

	// Source
	ActivityCount int
	Skipped       []activity.SkippedFile
	Missing       bool
	LastActivity  time.Time
	LoadedAt      time.Time

	// For charts
	Trends []analysis.FitnessMetrics
}

// HasData reports whether any activity was loaded
func (d *DashboardData) HasData() bool {
	return d.ActivityCount > 0
}

// GetDashboardData fetches all data needed for the dashboard
func (q *QueryService) GetDashboardData(ctlDays, atlDays int) (*DashboardData, error) {
	if err := analysis.ValidateTimeConstants(ctlDays, atlDays); err != nil {
		return nil, err
	}

	snap, err := q.snapshot()
	if err != nil {
		return nil, err
	}
	return q.dashboardData(snap, ctlDays, atlDays)
}

// dashboardData builds the dashboard from a single snapshot so a
// concurrent Reload cannot mix two loads
func (q *QueryService) dashboardData(snap dataSnapshot, ctlDays, atlDays int) (*DashboardData, error) {
	trends, err := q.trends(snap, ctlDays, atlDays)
	if err != nil {
		return nil, err
	}
	pace := q.paceReport(snap)
	result := snap.result

	current := analysis.GetCurrentFitness(trends)
	data := &DashboardData{
		CTLDays:         ctlDays,
		ATLDays:         atlDays,
		Current:         current,
		FormZone:        analysis.ClassifyForm(current.TSB),
		FormDescription: analysis.FormDescription(current.TSB),
		RecentLoad:      recentLoad(trends, RecentDays),
		Pace:            pace.Prediction,
		PaceSummary:     pace.Prediction.Summary(),
		PaceHistory:     pace.History,
		QualifyingRuns:  pace.Qualifying,
		ActivityCount:   len(result.Activities),
		Skipped:         result.Skipped,
		Missing:         result.Missing,
		LastActivity:    result.LastActivity(),
		LoadedAt:        snap.loadedAt,
		Trends:          trends,
	}

	return data, nil
}

// recentLoad sums the load of the last n days of the trend
func recentLoad(trends []analysis.FitnessMetrics, n int) float64 {
	start := len(trends) - n
	if start < 0 {
		start = 0
	}

	var total float64
	for _, m := range trends[start:] {
		total += m.Load
	}
	return total
}
