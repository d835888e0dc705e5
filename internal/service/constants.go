package service

import "time"

const (
	// Cache sizing
	megabyte           = 1024 * 1024
	MinCacheSizeMB     = 1
	TrendCacheExpire   = 0 // entries live until the next reload evicts them
	trendValuesPerDay  = 4 // ctl, atl, tsb, ramp
	bytesPerTrendValue = 8

	// RecentDays is the window for the "last N days" load figure
	RecentDays = 7
)

// Clock returns the current time; tests replace it
type Clock func() time.Time
