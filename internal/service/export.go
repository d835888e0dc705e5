package service

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"trainingload/internal/export"
	"trainingload/internal/store"
)

// BuildSnapshot converts the current trend and pace scan into store rows
func (q *QueryService) BuildSnapshot(ctlDays, atlDays int) (*store.Snapshot, error) {
	data, err := q.GetDashboardData(ctlDays, atlDays)
	if err != nil {
		return nil, err
	}

	snap := &store.Snapshot{
		Export: store.Export{
			CreatedAt:     q.now(),
			SourceDir:     q.dir,
			CTLDays:       ctlDays,
			ATLDays:       atlDays,
			ActivityCount: data.ActivityCount,
			SkippedCount:  len(data.Skipped),
		},
		Trends:  make([]store.DailyTrend, len(data.Trends)),
		Samples: make([]store.PaceSample, len(data.PaceHistory)),
	}

	for i, m := range data.Trends {
		snap.Trends[i] = store.DailyTrend{
			Date:    m.Date,
			Load:    m.Load,
			Fitness: m.CTL,
			Fatigue: m.ATL,
			Form:    m.TSB,
			Ramp:    m.Ramp,
		}
	}
	for i, s := range data.PaceHistory {
		snap.Samples[i] = store.PaceSample{Date: s.Date, SpeedMPS: s.SpeedMPS}
	}

	if data.Pace.Available() {
		snap.Prediction = &store.PacePrediction{
			BestSpeedMPS: data.Pace.BestSpeed,
			RacePace:     data.PaceSummary.RacePace,
			Zone2Pace:    data.PaceSummary.Zone2Pace,
			EasyPace:     data.PaceSummary.EasyPace,
		}
	}

	return snap, nil
}

// ExportSQLite saves the current snapshot into the database at path and
// returns the export id
func (q *QueryService) ExportSQLite(path string, ctlDays, atlDays int) (id string, err error) {
	snap, err := q.BuildSnapshot(ctlDays, atlDays)
	if err != nil {
		return "", err
	}

	s, err := store.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		err = multierr.Append(err, s.Close())
	}()

	id, err = s.SaveSnapshot(snap)
	if err != nil {
		return "", fmt.Errorf("saving export: %w", err)
	}

	log.WithFields(log.Fields{
		"path":  path,
		"id":    id,
		"days":  len(snap.Trends),
		"paces": len(snap.Samples),
	}).Info("sqlite export written")

	return id, nil
}

// ExportCSV writes the daily and pace tables into dir
func (q *QueryService) ExportCSV(dir string, ctlDays, atlDays int) ([]string, error) {
	data, err := q.GetDashboardData(ctlDays, atlDays)
	if err != nil {
		return nil, err
	}

	paths, err := export.WriteDir(dir, data.Trends, data.PaceHistory)
	if err != nil {
		return nil, err
	}

	log.WithField("dir", dir).Info("csv export written")
	return paths, nil
}
