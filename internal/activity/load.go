package activity

// Heuristic load model constants. There is no FTP or max HR here, so effort
// is scaled against fixed "solid effort" reference values.
const (
	LoadPointsPerHour  = 50.0
	ReferencePowerW    = 200.0
	ReferenceHeartrate = 140.0
)

// Load calculates a TSS-like load score for a single activity.
// Power takes priority over heart rate; a zero reading counts as absent.
func Load(a Activity) float64 {
	base := (a.MovingTime / 3600) * LoadPointsPerHour

	switch {
	case a.AverageWatts != nil && *a.AverageWatts != 0:
		return base * (*a.AverageWatts / ReferencePowerW)
	case a.AverageHeartrate != nil && *a.AverageHeartrate != 0:
		return base * (*a.AverageHeartrate / ReferenceHeartrate)
	default:
		return base
	}
}
