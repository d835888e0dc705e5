package activity

import "time"

// Activity types the rest of the app cares about
const (
	TypeRun  = "Run"
	TypeRide = "Ride"
)

// DateLayout is the calendar date format used for keys and exports
const DateLayout = "2006-01-02"

// Activity represents one exercise session read from an activity file
type Activity struct {
	File             string
	StartDate        time.Time // UTC midnight of the start day
	Type             string
	MovingTime       float64  // seconds
	Distance         float64  // meters
	AverageWatts     *float64 // nullable
	AverageHeartrate *float64 // nullable
	AverageSpeed     *float64 // m/s, nullable
}

// Speed returns the average speed in m/s, or 0 when the file had none
func (a Activity) Speed() float64 {
	if a.AverageSpeed == nil {
		return 0
	}
	return *a.AverageSpeed
}

// rawActivity mirrors the subset of the Strava activity summary we read.
// Required fields are pointers so that absence can be told apart from zero.
type rawActivity struct {
	StartDate        *string  `json:"start_date"`
	Type             *string  `json:"type"`
	Distance         float64  `json:"distance"`    // meters
	MovingTime       float64  `json:"moving_time"` // seconds
	AverageWatts     *float64 `json:"average_watts"`
	AverageHeartrate *float64 `json:"average_heartrate"`
	AverageSpeed     *float64 `json:"average_speed"` // m/s
}

// DailyLoad represents the summed training load for a single calendar day
type DailyLoad struct {
	Date time.Time
	Load float64
}
