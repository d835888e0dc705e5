package analysis

import (
	"errors"
	"fmt"
	"math"
	"time"

	"trainingload/internal/activity"
)

// Default time constants for the Banister model
const (
	DefaultCTLDays = 42
	DefaultATLDays = 7

	// RampDays is the look-back for the fitness ramp rate
	RampDays = 7
)

// Form zone boundaries (TSB)
const (
	FormHighRiskBelow = -30.0
	FormOptimalBelow  = -10.0
)

// ErrInvalidTimeConstant is returned when a CTL or ATL time constant is < 1
var ErrInvalidTimeConstant = errors.New("time constant must be at least 1 day")

// FitnessMetrics represents CTL/ATL/TSB for a day
type FitnessMetrics struct {
	Date time.Time
	Load float64
	CTL  float64 // Chronic Training Load - "Fitness"
	ATL  float64 // Acute Training Load - "Fatigue"
	TSB  float64 // Training Stress Balance (CTL - ATL) - "Form"
	Ramp float64 // CTL change over the last RampDays days
}

// ValidateTimeConstants checks CTL and ATL days before they reach exp(-1/n)
func ValidateTimeConstants(ctlDays, atlDays int) error {
	if ctlDays < 1 {
		return fmt.Errorf("ctl days %d: %w", ctlDays, ErrInvalidTimeConstant)
	}
	if atlDays < 1 {
		return fmt.Errorf("atl days %d: %w", atlDays, ErrInvalidTimeConstant)
	}
	return nil
}

// DecayFactor returns exp(-1/days), the share of yesterday's value kept today
func DecayFactor(days int) float64 {
	return math.Exp(-1.0 / float64(days))
}

// CalculateFitnessTrend computes CTL/ATL/TSB/ramp from a contiguous,
// ascending daily load series such as the one returned by
// activity.DailyLoads. Both values start from zero on the day before the
// series. The input is read only.
func CalculateFitnessTrend(dailyLoads []activity.DailyLoad, ctlDays, atlDays int) ([]FitnessMetrics, error) {
	if err := ValidateTimeConstants(ctlDays, atlDays); err != nil {
		return nil, err
	}
	if len(dailyLoads) == 0 {
		return nil, nil
	}

	// EMA decay constants
	ctlDecay := DecayFactor(ctlDays)
	atlDecay := DecayFactor(atlDays)

	metrics := make([]FitnessMetrics, len(dailyLoads))
	var ctl, atl float64

	for i, dl := range dailyLoads {
		ctl = ctl*ctlDecay + dl.Load*(1-ctlDecay)
		atl = atl*atlDecay + dl.Load*(1-atlDecay)

		var ramp float64
		if i >= RampDays {
			ramp = ctl - metrics[i-RampDays].CTL
		}

		metrics[i] = FitnessMetrics{
			Date: dl.Date,
			Load: dl.Load,
			CTL:  ctl,
			ATL:  atl,
			TSB:  ctl - atl,
			Ramp: ramp,
		}
	}

	return metrics, nil
}

// GetCurrentFitness returns the most recent CTL/ATL/TSB values
func GetCurrentFitness(metrics []FitnessMetrics) FitnessMetrics {
	if len(metrics) == 0 {
		return FitnessMetrics{}
	}
	return metrics[len(metrics)-1]
}

// FormZone classifies a TSB value into the chart bands
type FormZone string

const (
	FormZoneHighRisk FormZone = "High Risk"
	FormZoneOptimal  FormZone = "Optimal"
	FormZoneOther    FormZone = "Other"
)

// ClassifyForm returns the form zone for a TSB value
func ClassifyForm(tsb float64) FormZone {
	switch {
	case tsb < FormHighRiskBelow:
		return FormZoneHighRisk
	case tsb < FormOptimalBelow:
		return FormZoneOptimal
	default:
		return FormZoneOther
	}
}

// FormDescription returns a human-readable description of TSB
func FormDescription(tsb float64) string {
	switch {
	case tsb > 25:
		return "Very fresh (possibly detrained)"
	case tsb > 10:
		return "Fresh and ready to race"
	case tsb > 0:
		return "Neutral - good for training"
	case tsb > -10:
		return "Slightly fatigued"
	case tsb > -25:
		return "Tired but building fitness"
	default:
		return "Very fatigued - rest needed"
	}
}
