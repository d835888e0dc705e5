package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// SaveSnapshot writes an export with its trend rows, pace samples and
// prediction in a single transaction. An empty Export.ID is replaced by a
// fresh UUID and a zero CreatedAt by the current time; the stored ID is
// returned.
func (s *Store) SaveSnapshot(snap *Snapshot) (string, error) {
	exp := snap.Export
	if exp.ID == "" {
		exp.ID = uuid.NewString()
	}
	if exp.CreatedAt.IsZero() {
		exp.CreatedAt = time.Now()
	}

	err := s.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`
			INSERT INTO exports (id, created_at, source_dir, ctl_days, atl_days,
				activity_count, skipped_count)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, exp.ID, exp.CreatedAt.UTC().Format(time.RFC3339), exp.SourceDir,
			exp.CTLDays, exp.ATLDays, exp.ActivityCount, exp.SkippedCount); err != nil {
			return fmt.Errorf("inserting export: %w", err)
		}

		if err := insertTrends(tx, exp.ID, snap.Trends); err != nil {
			return err
		}
		if err := insertSamples(tx, exp.ID, snap.Samples); err != nil {
			return err
		}

		if p := snap.Prediction; p != nil {
			if _, err := tx.Exec(`
				INSERT INTO pace_predictions (export_id, best_speed_mps, race_pace,
					zone2_pace, easy_pace)
				VALUES (?, ?, ?, ?, ?)
			`, exp.ID, p.BestSpeedMPS, p.RacePace, p.Zone2Pace, p.EasyPace); err != nil {
				return fmt.Errorf("inserting pace prediction: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return exp.ID, nil
}

func insertTrends(tx *sql.Tx, exportID string, trends []DailyTrend) error {
	if len(trends) == 0 {
		return nil
	}

	stmt, err := tx.Prepare(`
		INSERT INTO daily_trends (export_id, date, load, fitness, fatigue, form, ramp)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing trend insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range trends {
		if _, err := stmt.Exec(exportID, t.Date.Format(dateLayout),
			t.Load, t.Fitness, t.Fatigue, t.Form, t.Ramp); err != nil {
			return fmt.Errorf("inserting trend %s: %w", t.Date.Format(dateLayout), err)
		}
	}
	return nil
}

func insertSamples(tx *sql.Tx, exportID string, samples []PaceSample) error {
	if len(samples) == 0 {
		return nil
	}

	stmt, err := tx.Prepare(`
		INSERT INTO pace_samples (export_id, seq, date, speed_mps)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing pace sample insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range samples {
		if _, err := stmt.Exec(exportID, i, p.Date.Format(dateLayout), p.SpeedMPS); err != nil {
			return fmt.Errorf("inserting pace sample %d: %w", i, err)
		}
	}
	return nil
}

// LatestExport returns the most recently created export
func (s *Store) LatestExport() (*Export, error) {
	row := s.db.QueryRow(`
		SELECT id, created_at, source_dir, ctl_days, atl_days, activity_count, skipped_count
		FROM exports
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`)
	return scanExport(row)
}

// GetExport returns a single export by ID
func (s *Store) GetExport(id string) (*Export, error) {
	row := s.db.QueryRow(`
		SELECT id, created_at, source_dir, ctl_days, atl_days, activity_count, skipped_count
		FROM exports
		WHERE id = ?
	`, id)
	return scanExport(row)
}

// ListExports returns all exports, newest first
func (s *Store) ListExports() ([]Export, error) {
	rows, err := s.db.Query(`
		SELECT id, created_at, source_dir, ctl_days, atl_days, activity_count, skipped_count
		FROM exports
		ORDER BY created_at DESC, rowid DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exports []Export
	for rows.Next() {
		e, err := scanExport(rows)
		if err != nil {
			return nil, err
		}
		exports = append(exports, *e)
	}
	return exports, rows.Err()
}

// DeleteExport removes an export and everything saved with it
func (s *Store) DeleteExport(id string) error {
	result, err := s.db.Exec("DELETE FROM exports WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNoExport
	}
	return nil
}

// GetDailyTrends returns the trend rows of an export in date order
func (s *Store) GetDailyTrends(exportID string) ([]DailyTrend, error) {
	rows, err := s.db.Query(`
		SELECT date, load, fitness, fatigue, form, ramp
		FROM daily_trends
		WHERE export_id = ?
		ORDER BY date
	`, exportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trends []DailyTrend
	for rows.Next() {
		var t DailyTrend
		var date string
		if err := rows.Scan(&date, &t.Load, &t.Fitness, &t.Fatigue, &t.Form, &t.Ramp); err != nil {
			return nil, err
		}
		if t.Date, err = time.Parse(dateLayout, date); err != nil {
			return nil, fmt.Errorf("parsing trend date %q: %w", date, err)
		}
		trends = append(trends, t)
	}
	return trends, rows.Err()
}

// GetPaceSamples returns the pace samples of an export in saved order
func (s *Store) GetPaceSamples(exportID string) ([]PaceSample, error) {
	rows, err := s.db.Query(`
		SELECT date, speed_mps
		FROM pace_samples
		WHERE export_id = ?
		ORDER BY seq
	`, exportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []PaceSample
	for rows.Next() {
		var p PaceSample
		var date string
		if err := rows.Scan(&date, &p.SpeedMPS); err != nil {
			return nil, err
		}
		if p.Date, err = time.Parse(dateLayout, date); err != nil {
			return nil, fmt.Errorf("parsing sample date %q: %w", date, err)
		}
		samples = append(samples, p)
	}
	return samples, rows.Err()
}

// GetPacePrediction returns the pace snapshot of an export.
// Returns nil without error when the export has none.
func (s *Store) GetPacePrediction(exportID string) (*PacePrediction, error) {
	var p PacePrediction
	err := s.db.QueryRow(`
		SELECT best_speed_mps, race_pace, zone2_pace, easy_pace
		FROM pace_predictions
		WHERE export_id = ?
	`, exportID).Scan(&p.BestSpeedMPS, &p.RacePace, &p.Zone2Pace, &p.EasyPace)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadSnapshot reads back a complete export
func (s *Store) LoadSnapshot(exportID string) (*Snapshot, error) {
	exp, err := s.GetExport(exportID)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{Export: *exp}
	if snap.Trends, err = s.GetDailyTrends(exportID); err != nil {
		return nil, fmt.Errorf("loading trends: %w", err)
	}
	if snap.Samples, err = s.GetPaceSamples(exportID); err != nil {
		return nil, fmt.Errorf("loading pace samples: %w", err)
	}
	if snap.Prediction, err = s.GetPacePrediction(exportID); err != nil {
		return nil, fmt.Errorf("loading pace prediction: %w", err)
	}
	return snap, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExport(row rowScanner) (*Export, error) {
	var e Export
	var createdAt string

	err := row.Scan(&e.ID, &createdAt, &e.SourceDir, &e.CTLDays, &e.ATLDays,
		&e.ActivityCount, &e.SkippedCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoExport
	}
	if err != nil {
		return nil, err
	}

	if e.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
	}
	return &e, nil
}
