package tui

import (
	"fmt"
	"math"

	"trainingload/internal/analysis"
	"trainingload/internal/config"
)

const (
	metersPerMile = 1609.34
	metersPerKm   = 1000.0
)

// Units provides pace formatting based on user preferences
type Units struct {
	cfg config.DisplayConfig
}

// NewUnits creates a new Units helper with the given display config
func NewUnits(cfg config.DisplayConfig) Units {
	return Units{cfg: cfg}
}

// IsMiles returns true if paces are shown per mile
func (u Units) IsMiles() bool {
	return u.cfg.PaceUnit == "min/mi"
}

// PaceLabel returns the pace unit label ("min/mi" or "min/km")
func (u Units) PaceLabel() string {
	if u.IsMiles() {
		return "min/mi"
	}
	return "min/km"
}

// DistanceLabel returns the short unit label ("mi" or "km")
func (u Units) DistanceLabel() string {
	if u.IsMiles() {
		return "mi"
	}
	return "km"
}

// FormatSpeed formats a speed in m/s as pace in the preferred unit
func (u Units) FormatSpeed(speedMPS float64) string {
	if !u.IsMiles() {
		return analysis.FormatPace(speedMPS)
	}
	if speedMPS <= 0 || math.IsNaN(speedMPS) || math.IsInf(speedMPS, 0) {
		return analysis.PacePlaceholder
	}

	paceSeconds := metersPerMile / speedMPS
	mins := int(paceSeconds) / 60
	secs := int(paceSeconds) % 60
	return fmt.Sprintf("%d:%02d", mins, secs)
}

// FormatSpeedWithUnit formats pace with the unit label
func (u Units) FormatSpeedWithUnit(speedMPS float64) string {
	pace := u.FormatSpeed(speedMPS)
	if pace == analysis.PacePlaceholder {
		return pace
	}
	return pace + " /" + u.DistanceLabel()
}

// FormatBand formats a pace range from a best speed and two fractions of it
func (u Units) FormatBand(bestSpeed, fastFraction, slowFraction float64) string {
	if bestSpeed <= 0 {
		return analysis.PacePlaceholder
	}
	return fmt.Sprintf("%s - %s /%s",
		u.FormatSpeed(bestSpeed*fastFraction),
		u.FormatSpeed(bestSpeed*slowFraction),
		u.DistanceLabel())
}

// ConvertPaceData converts min/km chart values to min/mi if needed
func (u Units) ConvertPaceData(paceMinPerKm []float64) []float64 {
	if !u.IsMiles() {
		return paceMinPerKm
	}
	converted := make([]float64, len(paceMinPerKm))
	for i, p := range paceMinPerKm {
		converted[i] = p * metersPerMile / metersPerKm
	}
	return converted
}
