package service

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"trainingload/internal/activity"
	"trainingload/internal/analysis"
)

// WriteSummary prints the plain-text snapshot used by the -summary mode
func WriteSummary(w io.Writer, dir string, data *DashboardData, now time.Time) error {
	var b strings.Builder

	if !data.HasData() {
		if data.Missing {
			fmt.Fprintf(&b, "Activity directory %s not found.\n", dir)
		} else {
			fmt.Fprintf(&b, "No activity data found in %s.\n", dir)
		}
		writeSkipped(&b, data.Skipped)
		_, err := io.WriteString(w, b.String())
		return err
	}

	fmt.Fprintf(&b, "Activities:    %s loaded", humanize.Comma(int64(data.ActivityCount)))
	if n := len(data.Skipped); n > 0 {
		fmt.Fprintf(&b, ", %s skipped", humanize.Comma(int64(n)))
	}
	b.WriteString("\n")

	last := data.LastActivity
	fmt.Fprintf(&b, "Last activity: %s (%s)\n",
		last.Format(activity.DateLayout), humanize.RelTime(last, now, "ago", "from now"))
	fmt.Fprintf(&b, "Days tracked:  %s\n\n", humanize.Comma(int64(len(data.Trends))))

	cur := data.Current
	fmt.Fprintf(&b, "Fitness (CTL %dd): %6.1f\n", data.CTLDays, cur.CTL)
	fmt.Fprintf(&b, "Fatigue (ATL %dd): %6.1f\n", data.ATLDays, cur.ATL)
	fmt.Fprintf(&b, "Form (TSB):        %+6.1f  %s, %s\n", cur.TSB, data.FormZone, data.FormDescription)
	fmt.Fprintf(&b, "Ramp (%dd):         %+6.1f\n", analysis.RampDays, cur.Ramp)
	fmt.Fprintf(&b, "Load last %dd:     %6.0f\n\n", RecentDays, data.RecentLoad)

	fmt.Fprintf(&b, "Race pace:  %s\n", data.PaceSummary.RacePace)
	fmt.Fprintf(&b, "Zone 2:     %s\n", data.PaceSummary.Zone2Pace)
	fmt.Fprintf(&b, "Easy:       %s\n", data.PaceSummary.EasyPace)
	fmt.Fprintf(&b, "Pace runs:  %d qualifying, %d in history\n", data.QualifyingRuns, len(data.PaceHistory))

	writeSkipped(&b, data.Skipped)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeSkipped(b *strings.Builder, skipped []activity.SkippedFile) {
	if len(skipped) == 0 {
		return
	}
	b.WriteString("\nSkipped files:\n")
	for _, s := range skipped {
		fmt.Fprintf(b, "  %s: %s\n", s.Name, s.Err)
	}
}
