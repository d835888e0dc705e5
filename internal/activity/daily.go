package activity

// DailyLoads sums activity loads per UTC day and fills every missing day
// between the first and last activity with zero load.
// The input slice is not modified.
func DailyLoads(activities []Activity) []DailyLoad {
	if len(activities) == 0 {
		return nil
	}

	// Create map of loads by date
	loadMap := make(map[string]float64)
	startDate := truncateDay(activities[0].StartDate)
	endDate := startDate
	for _, a := range activities {
		day := truncateDay(a.StartDate)
		loadMap[day.Format(DateLayout)] += Load(a) // Sum multiple activities on same day

		if day.Before(startDate) {
			startDate = day
		}
		if day.After(endDate) {
			endDate = day
		}
	}

	days := int(endDate.Sub(startDate).Hours()/24) + 1
	series := make([]DailyLoad, 0, days)
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		series = append(series, DailyLoad{
			Date: d,
			Load: loadMap[d.Format(DateLayout)], // 0 if no activity
		})
	}

	return series
}
