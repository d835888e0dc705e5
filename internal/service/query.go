package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"

	"trainingload/internal/activity"
	"trainingload/internal/analysis"
)

// QueryService loads the activity directory and answers the read-only
// queries of the dashboard, the summary and the exports.
// It is safe for concurrent use.
type QueryService struct {
	dir      string
	paceOpts analysis.PaceOptions
	cache    *freecache.Cache
	now      Clock

	mu         sync.RWMutex
	loaded     bool
	result     *activity.LoadResult
	daily      []activity.DailyLoad
	generation uint64
	loadedAt   time.Time
}

// NewQueryService creates a new query service over an activity directory.
// Nothing is read until the first query or an explicit Reload.
func NewQueryService(dir string, paceOpts analysis.PaceOptions, cacheSizeMB int) *QueryService {
	if cacheSizeMB < MinCacheSizeMB {
		cacheSizeMB = MinCacheSizeMB
	}
	return &QueryService{
		dir:      dir,
		paceOpts: paceOpts,
		cache:    freecache.NewCache(cacheSizeMB * megabyte),
		now:      time.Now,
	}
}

// Dir returns the activity directory the service reads
func (q *QueryService) Dir() string {
	return q.dir
}

// Reload re-reads the activity directory and drops every memoized trend
func (q *QueryService) Reload() error {
	result, err := activity.LoadDir(q.dir)
	if err != nil {
		return fmt.Errorf("loading activities from %s: %w", q.dir, err)
	}
	daily := result.DailyLoads()

	q.mu.Lock()
	q.result = result
	q.daily = daily
	q.generation++
	q.loaded = true
	q.loadedAt = q.now()
	q.mu.Unlock()

	q.cache.Clear()

	log.WithFields(log.Fields{
		"dir":        q.dir,
		"activities": len(result.Activities),
		"skipped":    len(result.Skipped),
		"days":       len(daily),
	}).Info("activities loaded")

	return nil
}

// dataSnapshot is one consistent load of the activity directory
type dataSnapshot struct {
	result     *activity.LoadResult
	daily      []activity.DailyLoad
	generation uint64
	loadedAt   time.Time
}

// ensureLoaded performs the first load lazily
func (q *QueryService) ensureLoaded() error {
	q.mu.RLock()
	loaded := q.loaded
	q.mu.RUnlock()

	if loaded {
		return nil
	}
	return q.Reload()
}

// snapshot returns the loaded data as of a single load. Queries that
// combine several results compute all of them from one snapshot.
func (q *QueryService) snapshot() (dataSnapshot, error) {
	if err := q.ensureLoaded(); err != nil {
		return dataSnapshot{}, err
	}

	q.mu.RLock()
	defer q.mu.RUnlock()
	return dataSnapshot{
		result:     q.result,
		daily:      q.daily,
		generation: q.generation,
		loadedAt:   q.loadedAt,
	}, nil
}

// GetDailyLoads returns the gap-filled daily load series
func (q *QueryService) GetDailyLoads() ([]activity.DailyLoad, error) {
	snap, err := q.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.daily, nil
}

// GetTrends returns the fitness trend for the given time constants.
// Results are memoized per (dataset, ctlDays, atlDays) until the next Reload.
func (q *QueryService) GetTrends(ctlDays, atlDays int) ([]analysis.FitnessMetrics, error) {
	if err := analysis.ValidateTimeConstants(ctlDays, atlDays); err != nil {
		return nil, err
	}

	snap, err := q.snapshot()
	if err != nil {
		return nil, err
	}
	return q.trends(snap, ctlDays, atlDays)
}

// trends computes or recalls the trend of snap. The constants must
// already be validated.
func (q *QueryService) trends(snap dataSnapshot, ctlDays, atlDays int) ([]analysis.FitnessMetrics, error) {
	cacheKey := trendCacheKey(snap.generation, ctlDays, atlDays)
	if cached, err := q.cache.Get([]byte(cacheKey)); err == nil {
		metrics, err := decodeTrend(cached, snap.daily)
		if err == nil {
			log.Tracef("found trend %s in cache", cacheKey)
			return metrics, nil
		}
		log.Errorf("failed to decode cached trend %s: %s", cacheKey, err)
	}

	metrics, err := analysis.CalculateFitnessTrend(snap.daily, ctlDays, atlDays)
	if err != nil {
		return nil, err
	}

	if err := q.cache.Set([]byte(cacheKey), encodeTrend(metrics), TrendCacheExpire); err != nil {
		// Long histories can exceed the per-entry limit; the result is still valid
		log.Debugf("trend %s not cached: %s", cacheKey, err)
	} else {
		log.Debugf("trend cache set: %s", cacheKey)
	}

	return metrics, nil
}

// GetPaceReport scans the loaded runs for the prediction and history
func (q *QueryService) GetPaceReport() (analysis.PaceReport, error) {
	snap, err := q.snapshot()
	if err != nil {
		return analysis.PaceReport{}, err
	}
	return q.paceReport(snap), nil
}

func (q *QueryService) paceReport(snap dataSnapshot) analysis.PaceReport {
	opts := q.paceOpts
	if opts.Now.IsZero() {
		opts.Now = q.now()
	}
	return analysis.ScanRuns(snap.result.Activities, opts)
}

// CacheStats reports memo hits and misses since the last reload
func (q *QueryService) CacheStats() (hits, misses int64) {
	return q.cache.HitCount(), q.cache.MissCount()
}

func trendCacheKey(gen uint64, ctlDays, atlDays int) string {
	return fmt.Sprintf("trend::%d::%d::%d", gen, ctlDays, atlDays)
}
