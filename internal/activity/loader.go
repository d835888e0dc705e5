package activity

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// StreamsMarker marks files holding raw sensor traces rather than summaries
const StreamsMarker = "_streams"

var (
	// ErrNotObject is returned when an activity file is not a JSON object
	ErrNotObject = errors.New("not a JSON object")
	// ErrMissingStartDate is returned when start_date is absent or empty
	ErrMissingStartDate = errors.New("missing start_date")
	// ErrMissingType is returned when type is absent or empty
	ErrMissingType = errors.New("missing type")
	// ErrInvalidStartDate is returned when start_date cannot be parsed
	ErrInvalidStartDate = errors.New("invalid start_date")
	// ErrNegativeValue is returned for negative distance or moving time
	ErrNegativeValue = errors.New("negative distance or moving_time")
)

// startDateLayouts are tried in order; naive timestamps are read as UTC
var startDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	DateLayout,
}

// SkippedFile records an activity file that was left out of a load
type SkippedFile struct {
	Name string
	Err  error
}

// LoadResult is the outcome of scanning an activity source
type LoadResult struct {
	Activities []Activity
	Skipped    []SkippedFile
	Missing    bool // source directory does not exist
}

// Empty reports whether the load produced no usable activity
func (r *LoadResult) Empty() bool {
	return r == nil || len(r.Activities) == 0
}

// DailyLoads aggregates the loaded activities into a gap-filled daily series
func (r *LoadResult) DailyLoads() []DailyLoad {
	if r.Empty() {
		return nil
	}
	return DailyLoads(r.Activities)
}

// LastActivity returns the most recent activity date, or zero time if none
func (r *LoadResult) LastActivity() time.Time {
	var last time.Time
	if r == nil {
		return last
	}
	for _, a := range r.Activities {
		if a.StartDate.After(last) {
			last = a.StartDate
		}
	}
	return last
}

// LoadDir reads every activity file in dir.
// A missing directory yields an empty result with Missing set, not an error.
func LoadDir(dir string) (*LoadResult, error) {
	return LoadFS(os.DirFS(dir))
}

// LoadFS reads every activity file at the root of fsys.
// Individual bad files are skipped and reported in the result; only a
// failure to list the source itself is returned as an error.
func LoadFS(fsys fs.FS) (*LoadResult, error) {
	result := &LoadResult{}

	entries, err := fs.ReadDir(fsys, ".")
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn("activity directory not found, no data to load")
		result.Missing = true
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing activity files: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !isActivityFile(name) {
			continue
		}

		a, err := readActivity(fsys, name)
		if err != nil {
			log.WithField("file", name).Warnf("skipping activity file: %s", err)
			result.Skipped = append(result.Skipped, SkippedFile{Name: name, Err: err})
			continue
		}
		result.Activities = append(result.Activities, *a)
	}

	log.WithFields(log.Fields{
		"activities": len(result.Activities),
		"skipped":    len(result.Skipped),
	}).Debug("activity files loaded")

	return result, nil
}

// isActivityFile reports whether name is an activity summary file
func isActivityFile(name string) bool {
	return path.Ext(name) == ".json" && !strings.Contains(name, StreamsMarker)
}

func readActivity(fsys fs.FS, name string) (*Activity, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return ParseActivity(name, data)
}

// ParseActivity decodes a single activity summary
func ParseActivity(name string, data []byte) (*Activity, error) {
	trimmed := strings.TrimSpace(string(data))
	if !strings.HasPrefix(trimmed, "{") {
		return nil, ErrNotObject
	}

	var raw rawActivity
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding activity: %w", err)
	}

	if raw.StartDate == nil || *raw.StartDate == "" {
		return nil, ErrMissingStartDate
	}
	if raw.Type == nil || *raw.Type == "" {
		return nil, ErrMissingType
	}
	if raw.Distance < 0 || raw.MovingTime < 0 {
		return nil, ErrNegativeValue
	}

	date, err := ParseStartDate(*raw.StartDate)
	if err != nil {
		return nil, err
	}

	return &Activity{
		File:             name,
		StartDate:        date,
		Type:             *raw.Type,
		MovingTime:       raw.MovingTime,
		Distance:         raw.Distance,
		AverageWatts:     raw.AverageWatts,
		AverageHeartrate: raw.AverageHeartrate,
		AverageSpeed:     raw.AverageSpeed,
	}, nil
}

// ParseStartDate parses an ISO-8601 timestamp and returns its UTC calendar date
func ParseStartDate(s string) (time.Time, error) {
	for _, layout := range startDateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return truncateDay(t), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidStartDate, s)
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
