package store

import "database/sql"

// migrate runs all database migrations
func migrate(db *sql.DB) error {
	migrations := []string{
		// One row per export run
		`CREATE TABLE IF NOT EXISTS exports (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			source_dir TEXT NOT NULL,
			ctl_days INTEGER NOT NULL,
			atl_days INTEGER NOT NULL,
			activity_count INTEGER NOT NULL,
			skipped_count INTEGER NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_exports_created_at ON exports(created_at)`,

		// The contiguous daily series with the derived trend values
		`CREATE TABLE IF NOT EXISTS daily_trends (
			export_id TEXT NOT NULL REFERENCES exports(id) ON DELETE CASCADE,
			date TEXT NOT NULL,
			load REAL NOT NULL,
			fitness REAL NOT NULL,
			fatigue REAL NOT NULL,
			form REAL NOT NULL,
			ramp REAL NOT NULL,
			PRIMARY KEY (export_id, date)
		)`,

		// Qualifying runs in chart order
		`CREATE TABLE IF NOT EXISTS pace_samples (
			export_id TEXT NOT NULL REFERENCES exports(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			date TEXT NOT NULL,
			speed_mps REAL NOT NULL,
			PRIMARY KEY (export_id, seq)
		)`,

		// Pace zone snapshot, at most one per export
		`CREATE TABLE IF NOT EXISTS pace_predictions (
			export_id TEXT PRIMARY KEY REFERENCES exports(id) ON DELETE CASCADE,
			best_speed_mps REAL NOT NULL,
			race_pace TEXT NOT NULL,
			zone2_pace TEXT NOT NULL,
			easy_pace TEXT NOT NULL
		)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}

	return nil
}
