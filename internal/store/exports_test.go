package store

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

// setupTestStore creates an in-memory store for testing
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	s, err := NewTestStore(sqlDB)
	if err != nil {
		sqlDB.Close()
		t.Fatalf("Failed to prepare test database: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func testSnapshot() *Snapshot {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return &Snapshot{
		Export: Export{
			CreatedAt:     time.Date(2024, 3, 3, 12, 0, 0, 0, time.UTC),
			SourceDir:     "activities/activities",
			CTLDays:       42,
			ATLDays:       7,
			ActivityCount: 2,
			SkippedCount:  1,
		},
		Trends: []DailyTrend{
			{Date: day, Load: 50, Fitness: 1.17, Fatigue: 6.63, Form: -5.46},
			{Date: day.AddDate(0, 0, 1), Load: 0, Fitness: 1.15, Fatigue: 5.74, Form: -4.59},
			{Date: day.AddDate(0, 0, 2), Load: 75, Fitness: 2.89, Fatigue: 14.93, Form: -12.04},
		},
		Samples: []PaceSample{
			{Date: day, SpeedMPS: 3.0},
			{Date: day.AddDate(0, 0, 2), SpeedMPS: 3.2},
		},
		Prediction: &PacePrediction{
			BestSpeedMPS: 3.2,
			RacePace:     "5:12 /km",
			Zone2Pace:    "5:55 - 6:30 /km",
			EasyPace:     "6:40 - 7:26 /km",
		},
	}
}

func TestSaveSnapshot_RoundTrip(t *testing.T) {
	s := setupTestStore(t)

	id, err := s.SaveSnapshot(testSnapshot())
	if err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}
	if id == "" {
		t.Fatal("SaveSnapshot() returned empty id")
	}

	got, err := s.LoadSnapshot(id)
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}

	if got.Export.ID != id {
		t.Errorf("Export.ID = %q, want %q", got.Export.ID, id)
	}
	if got.Export.CTLDays != 42 || got.Export.ATLDays != 7 {
		t.Errorf("time constants = %d/%d, want 42/7", got.Export.CTLDays, got.Export.ATLDays)
	}
	if got.Export.SkippedCount != 1 {
		t.Errorf("SkippedCount = %d, want 1", got.Export.SkippedCount)
	}
	if !got.Export.CreatedAt.Equal(time.Date(2024, 3, 3, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("CreatedAt = %v", got.Export.CreatedAt)
	}

	if len(got.Trends) != 3 {
		t.Fatalf("len(Trends) = %d, want 3", len(got.Trends))
	}
	if got.Trends[2].Load != 75 || got.Trends[2].Form != -12.04 {
		t.Errorf("Trends[2] = %+v", got.Trends[2])
	}
	if !got.Trends[1].Date.Equal(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Trends[1].Date = %v, want 2024-03-02", got.Trends[1].Date)
	}

	if len(got.Samples) != 2 || got.Samples[1].SpeedMPS != 3.2 {
		t.Errorf("Samples = %+v", got.Samples)
	}

	if got.Prediction == nil {
		t.Fatal("Prediction = nil")
	}
	if got.Prediction.RacePace != "5:12 /km" {
		t.Errorf("RacePace = %q, want 5:12 /km", got.Prediction.RacePace)
	}
}

func TestSaveSnapshot_KeepsExplicitID(t *testing.T) {
	s := setupTestStore(t)

	snap := testSnapshot()
	snap.Export.ID = "fixed-id"

	id, err := s.SaveSnapshot(snap)
	if err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}
	if id != "fixed-id" {
		t.Errorf("id = %q, want fixed-id", id)
	}

	// Same ID again violates the primary key and must leave nothing behind
	snap.Trends = append(snap.Trends, DailyTrend{Date: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)})
	if _, err := s.SaveSnapshot(snap); err == nil {
		t.Fatal("SaveSnapshot() with duplicate id should fail")
	}

	trends, err := s.GetDailyTrends("fixed-id")
	if err != nil {
		t.Fatalf("GetDailyTrends() error = %v", err)
	}
	if len(trends) != 3 {
		t.Errorf("len(trends) = %d, want 3 after rolled back save", len(trends))
	}
}

func TestSaveSnapshot_NoPrediction(t *testing.T) {
	s := setupTestStore(t)

	snap := testSnapshot()
	snap.Prediction = nil
	snap.Samples = nil

	id, err := s.SaveSnapshot(snap)
	if err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}

	pred, err := s.GetPacePrediction(id)
	if err != nil {
		t.Fatalf("GetPacePrediction() error = %v", err)
	}
	if pred != nil {
		t.Errorf("GetPacePrediction() = %+v, want nil", pred)
	}

	samples, err := s.GetPaceSamples(id)
	if err != nil {
		t.Fatalf("GetPaceSamples() error = %v", err)
	}
	if len(samples) != 0 {
		t.Errorf("len(samples) = %d, want 0", len(samples))
	}
}

func TestLatestExport(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.LatestExport(); !errors.Is(err, ErrNoExport) {
		t.Fatalf("LatestExport() on empty store error = %v, want ErrNoExport", err)
	}

	older := testSnapshot()
	older.Export.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := testSnapshot()
	newer.Export.CreatedAt = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	if _, err := s.SaveSnapshot(newer); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SaveSnapshot(older); err != nil {
		t.Fatal(err)
	}

	latest, err := s.LatestExport()
	if err != nil {
		t.Fatalf("LatestExport() error = %v", err)
	}
	if !latest.CreatedAt.Equal(newer.Export.CreatedAt) {
		t.Errorf("LatestExport().CreatedAt = %v, want %v", latest.CreatedAt, newer.Export.CreatedAt)
	}

	all, err := s.ListExports()
	if err != nil {
		t.Fatalf("ListExports() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("len(ListExports()) = %d, want 2", len(all))
	}
}

func TestDeleteExport_Cascades(t *testing.T) {
	s := setupTestStore(t)

	id, err := s.SaveSnapshot(testSnapshot())
	if err != nil {
		t.Fatal(err)
	}

	if err := s.DeleteExport(id); err != nil {
		t.Fatalf("DeleteExport() error = %v", err)
	}
	if err := s.DeleteExport(id); !errors.Is(err, ErrNoExport) {
		t.Errorf("second DeleteExport() error = %v, want ErrNoExport", err)
	}

	trends, err := s.GetDailyTrends(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(trends) != 0 {
		t.Errorf("len(trends) = %d after delete, want 0", len(trends))
	}
	if _, err := s.GetExport(id); !errors.Is(err, ErrNoExport) {
		t.Errorf("GetExport() error = %v, want ErrNoExport", err)
	}
}

func TestOpen_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "export.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, err := s.SaveSnapshot(testSnapshot()); err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// Reopening must keep data and tolerate re-running migrations
	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s.Close()

	exports, err := s.ListExports()
	if err != nil {
		t.Fatal(err)
	}
	if len(exports) != 1 {
		t.Errorf("len(ListExports()) = %d, want 1", len(exports))
	}
}
