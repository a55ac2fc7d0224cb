package usecase

import (
	"time"

	"github.com/gigmetric/earnmap/internal/pkg/models"
)

// ApportionStats counts jobs the apportioner could not split.
type ApportionStats struct {
	// ZeroDurationJobs covers jobs whose interval spans zero whole
	// minutes; splitting one would divide by zero, so it is excluded
	// and surfaced here instead.
	ZeroDurationJobs int
	// SkippedNoArea covers jobs whose pickup coordinate never resolved
	// to a single area; their rows would have no heatmap cell to land in.
	SkippedNoArea int
}

// ApportionJobs splits every job into one row per local clock hour the
// ride touches. The first hour gets (60 - pickup minute), intermediate
// hours get 60, the last hour gets the dropoff minute; a ride inside a
// single hour keeps its full earnings on one row with
// (dropoff minute - pickup minute). Multi-hour earnings are prorated by
// minutes-in-hour over total minutes, so per job the shares add back up
// to the job's total. Day labels follow the walk across midnight.
func ApportionJobs(jobs []models.Job) ([]models.JobHourRow, ApportionStats) {
	var stats ApportionStats
	var rows []models.JobHourRow

	for _, j := range jobs {
		if !j.PickupArea.Usable() {
			stats.SkippedNoArea++
			continue
		}
		if j.DropoffLocal.Before(j.PickupLocal) {
			// Inverted timestamps are the error filter's to count;
			// there is just nothing here to split.
			continue
		}

		jobRows := splitHours(j)

		total := 0
		for _, r := range jobRows {
			total += r.Minutes
		}
		if total <= 0 {
			stats.ZeroDurationJobs++
			continue
		}

		if len(jobRows) == 1 {
			jobRows[0].Earnings = j.TotalEarnings
		} else {
			for i := range jobRows {
				jobRows[i].Earnings = float64(jobRows[i].Minutes) / float64(total) * j.TotalEarnings
			}
		}
		rows = append(rows, jobRows...)
	}

	return rows, stats
}

func splitHours(j models.Job) []models.JobHourRow {
	start := j.PickupLocal
	end := j.DropoffLocal

	first := time.Date(start.Year(), start.Month(), start.Day(), start.Hour(), 0, 0, 0, start.Location())

	var rows []models.JobHourRow
	for h := first; h.Before(end); h = h.Add(time.Hour) {
		minutes := 60
		if h.Equal(first) {
			minutes = 60 - start.Minute()
		}
		if sameClockHour(h, end) {
			if h.Equal(first) {
				minutes = end.Minute() - start.Minute()
			} else {
				minutes = end.Minute()
			}
		}
		if minutes <= 0 {
			continue
		}

		rows = append(rows, models.JobHourRow{
			JobID:    j.ID,
			DriverID: j.DriverID,
			AreaID:   j.PickupArea.AreaID,
			Date:     h.Format("2006-01-02"),
			Weekday:  h.Weekday(),
			Hour:     h.Hour(),
			Minutes:  minutes,
		})
	}
	return rows
}

func sameClockHour(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() &&
		a.Day() == b.Day() && a.Hour() == b.Hour()
}
