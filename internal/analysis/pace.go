package analysis

import (
	"fmt"
	"math"
	"sort"
	"time"

	"trainingload/internal/activity"
)

// PacePlaceholder is shown wherever a pace cannot be computed
const PacePlaceholder = "-"

// Defaults for the best-speed scan
const (
	DefaultPaceWindowDays = 90
	DefaultMinRunDistance = 5000.0 // meters, exclusive
	MetersPerKm           = 1000.0
	SecondsPerMinute      = 60
)

// Speed fractions of the best qualifying speed, fast end first
const (
	Zone2FastFraction = 0.88
	Zone2SlowFraction = 0.80
	EasyFastFraction  = 0.78
	EasySlowFraction  = 0.70
)

// PaceOptions controls which runs qualify for the pace scan
type PaceOptions struct {
	WindowDays  int     // trailing window for the best-speed search
	MinDistance float64 // runs must be strictly longer than this (meters)
	// WindowHistory applies WindowDays to the history as well.
	// By default the history covers every qualifying run.
	WindowHistory bool
	Now           time.Time // reference time; zero means time.Now()
}

// DefaultPaceOptions returns the standard 90-day / 5 km scan settings
func DefaultPaceOptions() PaceOptions {
	return PaceOptions{
		WindowDays:  DefaultPaceWindowDays,
		MinDistance: DefaultMinRunDistance,
	}
}

// Cutoff returns the first calendar day inside the trailing window
func (o PaceOptions) Cutoff() time.Time {
	now := o.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return today.AddDate(0, 0, -o.WindowDays)
}

// PaceSample is one qualifying run for the pace history chart
type PaceSample struct {
	Date     time.Time
	SpeedMPS float64
}

// PaceBand is a pace range, fast end first
type PaceBand struct {
	Fast string
	Slow string
}

// String renders the band as "4:44 - 5:12 /km", or the placeholder
func (b PaceBand) String() string {
	if b.Fast == PacePlaceholder || b.Slow == PacePlaceholder {
		return PacePlaceholder
	}
	return fmt.Sprintf("%s - %s /km", b.Fast, b.Slow)
}

// PacePrediction is the pace zone snapshot derived from the best speed
type PacePrediction struct {
	BestSpeed float64 // m/s, 0 when no run qualified
	Race      string
	Zone2     PaceBand
	Easy      PaceBand
}

// Available reports whether any run qualified for the prediction
func (p PacePrediction) Available() bool {
	return p.BestSpeed > 0
}

// RacePace renders the race pace with its unit, or the placeholder
func (p PacePrediction) RacePace() string {
	if p.Race == PacePlaceholder {
		return PacePlaceholder
	}
	return p.Race + " /km"
}

// PaceSummary is the flat record handed to the presentation layer
type PaceSummary struct {
	RacePace  string `json:"race_pace"`
	Zone2Pace string `json:"zone2_pace"`
	EasyPace  string `json:"easy_pace"`
}

// Summary flattens the prediction into display strings
func (p PacePrediction) Summary() PaceSummary {
	return PaceSummary{
		RacePace:  p.RacePace(),
		Zone2Pace: p.Zone2.String(),
		EasyPace:  p.Easy.String(),
	}
}

// PaceReport holds both outputs of a single run scan
type PaceReport struct {
	Prediction PacePrediction
	History    []PaceSample
	Qualifying int // runs passing the type and distance filter
}

// FormatPace converts m/s into "M:SS" per kilometer.
// Non-positive or non-finite speeds map to the placeholder.
func FormatPace(speedMPS float64) string {
	if speedMPS <= 0 || math.IsNaN(speedMPS) || math.IsInf(speedMPS, 0) {
		return PacePlaceholder
	}

	secondsPerKm := MetersPerKm / speedMPS
	minutes := int(math.Floor(secondsPerKm / SecondsPerMinute))
	seconds := int(math.Floor(math.Mod(secondsPerKm, SecondsPerMinute)))
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// PredictPaces derives the race, zone 2 and easy paces from a best speed
func PredictPaces(bestSpeed float64) PacePrediction {
	if bestSpeed <= 0 {
		return PacePrediction{
			Race:  PacePlaceholder,
			Zone2: PaceBand{Fast: PacePlaceholder, Slow: PacePlaceholder},
			Easy:  PaceBand{Fast: PacePlaceholder, Slow: PacePlaceholder},
		}
	}

	return PacePrediction{
		BestSpeed: bestSpeed,
		Race:      FormatPace(bestSpeed),
		Zone2: PaceBand{
			Fast: FormatPace(bestSpeed * Zone2FastFraction),
			Slow: FormatPace(bestSpeed * Zone2SlowFraction),
		},
		Easy: PaceBand{
			Fast: FormatPace(bestSpeed * EasyFastFraction),
			Slow: FormatPace(bestSpeed * EasySlowFraction),
		},
	}
}

// QualifiesForPace reports whether an activity is a run longer than minDistance
func QualifiesForPace(a activity.Activity, minDistance float64) bool {
	return a.Type == activity.TypeRun && a.Distance > minDistance
}

// ScanRuns walks the activities once and produces both the pace prediction
// (best speed inside the trailing window) and the chronological history.
func ScanRuns(activities []activity.Activity, opts PaceOptions) PaceReport {
	cutoff := opts.Cutoff()

	var report PaceReport
	var best float64

	for _, a := range activities {
		if !QualifiesForPace(a, opts.MinDistance) {
			continue
		}
		report.Qualifying++

		speed := a.Speed()
		inWindow := !a.StartDate.Before(cutoff)

		if inWindow && speed > best {
			best = speed
		}

		if speed > 0 && (inWindow || !opts.WindowHistory) {
			report.History = append(report.History, PaceSample{
				Date:     a.StartDate,
				SpeedMPS: speed,
			})
		}
	}

	sort.SliceStable(report.History, func(i, j int) bool {
		return report.History[i].Date.Before(report.History[j].Date)
	})

	report.Prediction = PredictPaces(best)
	return report
}

// PaceHistoryMinPerKm converts the history into minutes per kilometer for charts
func PaceHistoryMinPerKm(history []PaceSample) []float64 {
	paces := make([]float64, len(history))
	for i, s := range history {
		if s.SpeedMPS > 0 {
			paces[i] = MetersPerKm / s.SpeedMPS / SecondsPerMinute
		}
	}
	return paces
}
