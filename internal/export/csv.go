// Package export writes the derived tables to CSV files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/multierr"

	"trainingload/internal/activity"
	"trainingload/internal/analysis"
)

// File names written by WriteDir
const (
	DailyFileName = "daily_load.csv"
	PaceFileName  = "pace_history.csv"
)

var (
	dailyHeader = []string{"date", "load", "fitness", "fatigue", "form", "ramp"}
	paceHeader  = []string{"date", "speed_mps", "pace_min_km"}
)

// WriteDaily writes one row per day of the fitness trend
func WriteDaily(w io.Writer, metrics []analysis.FitnessMetrics) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(dailyHeader); err != nil {
		return err
	}

	for _, m := range metrics {
		record := []string{
			m.Date.Format(activity.DateLayout),
			formatFloat(m.Load),
			formatFloat(m.CTL),
			formatFloat(m.ATL),
			formatFloat(m.TSB),
			formatFloat(m.Ramp),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WritePace writes the pace history in chart order
func WritePace(w io.Writer, history []analysis.PaceSample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(paceHeader); err != nil {
		return err
	}

	for _, s := range history {
		record := []string{
			s.Date.Format(activity.DateLayout),
			formatFloat(s.SpeedMPS),
			analysis.FormatPace(s.SpeedMPS),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteDir writes both tables into dir and returns the written paths
func WriteDir(dir string, metrics []analysis.FitnessMetrics, history []analysis.PaceSample) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}

	dailyPath := filepath.Join(dir, DailyFileName)
	if err := writeFile(dailyPath, func(w io.Writer) error { return WriteDaily(w, metrics) }); err != nil {
		return nil, fmt.Errorf("writing %s: %w", DailyFileName, err)
	}

	pacePath := filepath.Join(dir, PaceFileName)
	if err := writeFile(pacePath, func(w io.Writer) error { return WritePace(w, history) }); err != nil {
		return nil, fmt.Errorf("writing %s: %w", PaceFileName, err)
	}

	return []string{dailyPath, pacePath}, nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	return write(f)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
