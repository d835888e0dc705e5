package store

import "time"

// Export describes one saved snapshot
type Export struct {
	ID            string
	CreatedAt     time.Time
	SourceDir     string
	CTLDays       int
	ATLDays       int
	ActivityCount int
	SkippedCount  int
}

// DailyTrend is one row of the daily table
type DailyTrend struct {
	Date    time.Time
	Load    float64
	Fitness float64
	Fatigue float64
	Form    float64
	Ramp    float64
}

// PaceSample is one qualifying run
type PaceSample struct {
	Date     time.Time
	SpeedMPS float64
}

// PacePrediction is the stored pace zone snapshot
type PacePrediction struct {
	BestSpeedMPS float64
	RacePace     string
	Zone2Pace    string
	EasyPace     string
}

// Snapshot groups everything written by a single export
type Snapshot struct {
	Export     Export
	Trends     []DailyTrend
	Samples    []PaceSample
	Prediction *PacePrediction
}
