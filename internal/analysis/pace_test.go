package analysis

import (
	"math"
	"testing"
	"time"

	"trainingload/internal/activity"
)

func floatPtr(f float64) *float64 {
	return &f
}

func run(date time.Time, distance, speed float64) activity.Activity {
	return activity.Activity{
		StartDate:    date,
		Type:         activity.TypeRun,
		Distance:     distance,
		AverageSpeed: floatPtr(speed),
	}
}

var paceNow = time.Date(2024, 6, 30, 15, 0, 0, 0, time.UTC)

func testPaceOptions() PaceOptions {
	opts := DefaultPaceOptions()
	opts.Now = paceNow
	return opts
}

func TestFormatPace(t *testing.T) {
	tests := []struct {
		speed float64
		want  string
	}{
		{2.5, "6:40"},
		{3.0, "5:33"},
		{4.0, "4:10"},
		{5.0, "3:20"},
		{2.64, "6:18"},
		{2.4, "6:56"},
		{0, PacePlaceholder},
		{-1.5, PacePlaceholder},
		{math.NaN(), PacePlaceholder},
		{math.Inf(1), PacePlaceholder},
	}

	for _, tt := range tests {
		if got := FormatPace(tt.speed); got != tt.want {
			t.Errorf("FormatPace(%v) = %q, want %q", tt.speed, got, tt.want)
		}
	}
}

func TestPredictPaces(t *testing.T) {
	p := PredictPaces(3.0)

	if !p.Available() {
		t.Fatal("Available() = false, want true")
	}
	if p.Race != "5:33" {
		t.Errorf("Race = %q, want 5:33", p.Race)
	}
	if p.Zone2.Fast != FormatPace(2.64) || p.Zone2.Slow != FormatPace(2.4) {
		t.Errorf("Zone2 = %+v, want [%s, %s]", p.Zone2, FormatPace(2.64), FormatPace(2.4))
	}
	if p.Easy.Fast != FormatPace(3.0*0.78) || p.Easy.Slow != FormatPace(3.0*0.70) {
		t.Errorf("Easy = %+v", p.Easy)
	}

	summary := p.Summary()
	if summary.RacePace != "5:33 /km" {
		t.Errorf("RacePace = %q, want %q", summary.RacePace, "5:33 /km")
	}
	if summary.Zone2Pace != "6:18 - 6:56 /km" {
		t.Errorf("Zone2Pace = %q, want %q", summary.Zone2Pace, "6:18 - 6:56 /km")
	}
	if summary.EasyPace != "7:07 - 7:56 /km" {
		t.Errorf("EasyPace = %q, want %q", summary.EasyPace, "7:07 - 7:56 /km")
	}
}

func TestPredictPaces_Unavailable(t *testing.T) {
	p := PredictPaces(0)

	if p.Available() {
		t.Error("Available() = true, want false")
	}
	want := PaceSummary{RacePace: PacePlaceholder, Zone2Pace: PacePlaceholder, EasyPace: PacePlaceholder}
	if got := p.Summary(); got != want {
		t.Errorf("Summary() = %+v, want %+v", got, want)
	}
}

func TestScanRuns_BestSpeedIgnoresShortRuns(t *testing.T) {
	recent := paceNow.AddDate(0, 0, -10)
	activities := []activity.Activity{
		run(recent, 6000, 3.0),
		run(recent, 4000, 4.5), // below threshold, faster
	}

	report := ScanRuns(activities, testPaceOptions())

	if report.Prediction.BestSpeed != 3.0 {
		t.Errorf("BestSpeed = %v, want 3.0", report.Prediction.BestSpeed)
	}
	if report.Prediction.Race != "5:33" {
		t.Errorf("Race = %q, want 5:33", report.Prediction.Race)
	}
	if report.Qualifying != 1 {
		t.Errorf("Qualifying = %d, want 1", report.Qualifying)
	}
}

func TestScanRuns_Qualification(t *testing.T) {
	recent := paceNow.AddDate(0, 0, -1)
	ride := run(recent, 40000, 9.0)
	ride.Type = activity.TypeRide

	tests := []struct {
		name       string
		activities []activity.Activity
		wantBest   float64
	}{
		{"exactly 5000m does not qualify", []activity.Activity{run(recent, 5000, 3.5)}, 0},
		{"just over 5000m qualifies", []activity.Activity{run(recent, 5000.1, 3.5)}, 3.5},
		{"rides are ignored", []activity.Activity{ride}, 0},
		{"zero speed never wins", []activity.Activity{run(recent, 8000, 0)}, 0},
		{"missing speed never wins", []activity.Activity{{StartDate: recent, Type: activity.TypeRun, Distance: 8000}}, 0},
		{"max of several", []activity.Activity{run(recent, 8000, 2.9), run(recent, 10000, 3.2), run(recent, 6000, 3.1)}, 3.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := ScanRuns(tt.activities, testPaceOptions())
			if report.Prediction.BestSpeed != tt.wantBest {
				t.Errorf("BestSpeed = %v, want %v", report.Prediction.BestSpeed, tt.wantBest)
			}
			if tt.wantBest == 0 && report.Prediction.Race != PacePlaceholder {
				t.Errorf("Race = %q, want placeholder", report.Prediction.Race)
			}
		})
	}
}

func TestScanRuns_Window(t *testing.T) {
	cutoff := testPaceOptions().Cutoff()
	activities := []activity.Activity{
		run(cutoff.AddDate(0, 0, -1), 10000, 4.0), // just outside the window
		run(cutoff, 10000, 3.0),                   // first day inside
	}

	report := ScanRuns(activities, testPaceOptions())
	if report.Prediction.BestSpeed != 3.0 {
		t.Errorf("BestSpeed = %v, want 3.0", report.Prediction.BestSpeed)
	}

	// history is not windowed by default
	if len(report.History) != 2 {
		t.Fatalf("len(History) = %d, want 2", len(report.History))
	}

	opts := testPaceOptions()
	opts.WindowHistory = true
	windowed := ScanRuns(activities, opts)
	if len(windowed.History) != 1 || windowed.History[0].SpeedMPS != 3.0 {
		t.Errorf("windowed History = %+v, want only the in-window run", windowed.History)
	}
}

func TestScanRuns_HistoryOrder(t *testing.T) {
	early := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	activities := []activity.Activity{
		run(late, 7000, 3.4),
		run(early, 9000, 2.8),
		run(late, 3000, 5.0), // too short
		run(early, 12000, 0), // no speed
	}

	report := ScanRuns(activities, testPaceOptions())

	if len(report.History) != 2 {
		t.Fatalf("len(History) = %d, want 2", len(report.History))
	}
	if !report.History[0].Date.Equal(early) || report.History[0].SpeedMPS != 2.8 {
		t.Errorf("History[0] = %+v, want early run", report.History[0])
	}
	if !report.History[1].Date.Equal(late) || report.History[1].SpeedMPS != 3.4 {
		t.Errorf("History[1] = %+v, want late run", report.History[1])
	}
}

func TestScanRuns_NoActivities(t *testing.T) {
	report := ScanRuns(nil, testPaceOptions())

	if report.Prediction.Available() {
		t.Error("prediction should be unavailable")
	}
	if len(report.History) != 0 {
		t.Errorf("len(History) = %d, want 0", len(report.History))
	}
}

func TestPaceOptionsCutoff(t *testing.T) {
	opts := PaceOptions{WindowDays: 90, Now: time.Date(2024, 6, 30, 23, 59, 0, 0, time.UTC)}
	want := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	if got := opts.Cutoff(); !got.Equal(want) {
		t.Errorf("Cutoff() = %v, want %v", got, want)
	}
}

func TestPaceHistoryMinPerKm(t *testing.T) {
	got := PaceHistoryMinPerKm([]PaceSample{{SpeedMPS: 1000.0 / 300}, {SpeedMPS: 0}})
	if math.Abs(got[0]-5) > 1e-9 {
		t.Errorf("pace[0] = %v, want 5", got[0])
	}
	if got[1] != 0 {
		t.Errorf("pace[1] = %v, want 0", got[1])
	}
}
